package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"multibank/internal/domain/sync"
	"multibank/internal/infrastructure/banking"
	"multibank/internal/infrastructure/crypto"
	"multibank/internal/infrastructure/postgres"
	"multibank/internal/shared/config"
)

const usage = `Multibank Admin CLI - Management commands for the Multibank API

Usage:
  admin <command> [options]

Commands:
  migrate         Apply pending database migrations
  encrypt-token   Encrypt a bank token for manual database inserts
  sync            Run a sync pass for one bank connection

Examples:
  # Apply migrations from the default directory
  admin migrate

  # Apply migrations from a custom directory
  admin migrate --path=./migrations

  # Encrypt a token with the configured secret
  admin encrypt-token --token=raw-access-token

  # Sync connection 7 owned by user 3
  admin sync --user-id=3 --connection-id=7

  # Sync with a custom timeout
  admin sync --user-id=3 --connection-id=7 --timeout=10m
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage + "\n")
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "migrate":
		runMigrate(os.Args[2:])
	case "encrypt-token":
		runEncryptToken(os.Args[2:])
	case "sync":
		runSync(os.Args[2:])
	case "help", "-h", "--help":
		fmt.Print(usage + "\n")
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		fmt.Print(usage + "\n")
		os.Exit(1)
	}
}

func runMigrate(args []string) {
	fs := flag.NewFlagSet("migrate", flag.ExitOnError)

	path := fs.String("path", "migrations", "Directory containing migration files")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Connected to database")

	if err := db.RunMigrations(*path); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migrations applied")
}

func runEncryptToken(args []string) {
	fs := flag.NewFlagSet("encrypt-token", flag.ExitOnError)

	token := fs.String("token", "", "Token value to encrypt")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *token == "" {
		fmt.Println("Error: must specify --token")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	encryptor, err := crypto.NewEncryptor(cfg.Encryption.Secret)
	if err != nil {
		log.Fatalf("Failed to create encryptor: %v", err)
	}

	ciphertext, err := encryptor.Encrypt(*token)
	if err != nil {
		log.Fatalf("Encryption failed: %v", err)
	}

	fmt.Println(ciphertext)
}

func runSync(args []string) {
	fs := flag.NewFlagSet("sync", flag.ExitOnError)

	userID := fs.Int64("user-id", 0, "Owner of the connection")
	connectionID := fs.Int64("connection-id", 0, "Connection to sync")
	timeoutStr := fs.String("timeout", "10m", "Timeout for the operation (e.g., 5m, 1h)")

	fs.Usage = func() {
		fmt.Println("Usage: admin sync [options]")
		fmt.Println("\nOptions:")
		fs.PrintDefaults()
		fmt.Println("\nExamples:")
		fmt.Println("  admin sync --user-id=3 --connection-id=7")
		fmt.Println("  admin sync --user-id=3 --connection-id=7 --timeout=10m")
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if *userID <= 0 || *connectionID <= 0 {
		fmt.Println("Error: must specify --user-id and --connection-id")
		fs.Usage()
		os.Exit(1)
	}

	timeout, err := time.ParseDuration(*timeoutStr)
	if err != nil {
		log.Fatalf("Invalid timeout format: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Connected to database")

	encryptor, err := crypto.NewEncryptor(cfg.Encryption.Secret)
	if err != nil {
		log.Fatalf("Failed to create encryptor: %v", err)
	}

	connectionRepo := postgres.NewConnectionRepository(db)
	syncStore := postgres.NewSyncStore(db)

	bankingClient := banking.NewClient(banking.Config{
		BaseURL:        cfg.Banking.BaseURL,
		RequestingBank: cfg.Banking.RequestingBank,
		Timeout:        cfg.Banking.Timeout,
	})

	syncService := sync.NewService(connectionRepo, syncStore, bankingClient, encryptor, sync.Config{
		ClientID:    cfg.Banking.ClientID,
		PassTimeout: cfg.Sync.PassTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	log.Printf("Starting sync for connection %d (user %d)", *connectionID, *userID)
	startTime := time.Now()

	result, err := syncService.SyncConnection(ctx, *userID, *connectionID)
	if err != nil {
		if result != nil && result.Message != "" {
			log.Fatalf("Sync failed: %s: %v", result.Message, err)
		}
		log.Fatalf("Sync failed: %v", err)
	}

	fmt.Printf("\n=== Connection %d ===\n", *connectionID)
	fmt.Printf("  Status:        %s\n", result.Status)
	fmt.Printf("  Accounts:      %d\n", result.Synced.Accounts)
	fmt.Printf("  Cards:         %d\n", result.Synced.Cards)
	fmt.Printf("  Transactions:  %d\n", result.Synced.Transactions)

	elapsed := time.Since(startTime)
	log.Printf("Sync completed in %v", elapsed)
}
