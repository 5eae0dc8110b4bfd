package main

import (
	"log"

	"multibank/internal/domain/sync"
	"multibank/internal/infrastructure/banking"
	"multibank/internal/infrastructure/crypto"
	"multibank/internal/infrastructure/kafka"
	"multibank/internal/infrastructure/postgres"
	httphandlers "multibank/internal/interfaces/http"
	"multibank/internal/shared/config"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	DB *postgres.DB

	// Handlers
	ConnectionHandler  *httphandlers.ConnectionHandler
	SyncHandler        *httphandlers.SyncHandler
	AccountHandler     *httphandlers.AccountHandler
	TransactionHandler *httphandlers.TransactionHandler

	// Sync engine (for the scheduler)
	SyncService    *sync.Service
	ConnectionRepo *postgres.ConnectionRepository

	publisher *kafka.Publisher
}

// NewDependencies initializes all application dependencies.
func NewDependencies(cfg *config.Config) (*Dependencies, error) {
	// Connect to database
	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}
	log.Println("Connected to database")

	// Initialize the token vault
	encryptor, err := crypto.NewEncryptor(cfg.Encryption.Secret)
	if err != nil {
		return nil, err
	}

	// Initialize repositories
	connectionRepo := postgres.NewConnectionRepository(db)
	accountRepo := postgres.NewAccountRepository(db)
	cardRepo := postgres.NewCardRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)
	syncStore := postgres.NewSyncStore(db)

	// Initialize banking API client
	bankingClient := banking.NewClient(banking.Config{
		BaseURL:        cfg.Banking.BaseURL,
		RequestingBank: cfg.Banking.RequestingBank,
		Timeout:        cfg.Banking.Timeout,
	})

	// Initialize Kafka publisher (if enabled)
	var publisher *kafka.Publisher
	var syncPublisher sync.Publisher
	if cfg.Kafka.Enabled {
		publisher = kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		syncPublisher = publisher
		log.Printf("Kafka publisher enabled (topic=%s)", cfg.Kafka.Topic)
	}

	// Initialize the sync engine
	syncService := sync.NewService(connectionRepo, syncStore, bankingClient, encryptor, sync.Config{
		ClientID:    cfg.Banking.ClientID,
		PassTimeout: cfg.Sync.PassTimeout,
		Publisher:   syncPublisher,
	})

	// Initialize handlers
	connectionHandler := httphandlers.NewConnectionHandler(connectionRepo, encryptor)
	syncHandler := httphandlers.NewSyncHandler(syncService)
	accountHandler := httphandlers.NewAccountHandler(accountRepo, cardRepo)
	transactionHandler := httphandlers.NewTransactionHandler(transactionRepo)

	return &Dependencies{
		DB:                 db,
		ConnectionHandler:  connectionHandler,
		SyncHandler:        syncHandler,
		AccountHandler:     accountHandler,
		TransactionHandler: transactionHandler,
		SyncService:        syncService,
		ConnectionRepo:     connectionRepo,
		publisher:          publisher,
	}, nil
}

// Close releases all resources held by dependencies.
func (d *Dependencies) Close() {
	if d.publisher != nil {
		if err := d.publisher.Close(); err != nil {
			log.Printf("Error closing Kafka publisher: %v", err)
		}
	}
	if d.DB != nil {
		d.DB.Close()
	}
}
