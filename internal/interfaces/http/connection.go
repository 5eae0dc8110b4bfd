package http

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"multibank/internal/domain/connection"
	"multibank/internal/shared/middleware"
)

// TokenEncryptor seals bank tokens before they reach storage.
type TokenEncryptor interface {
	Encrypt(plaintext string) (string, error)
}

// ConnectionHandler manages linked bank connections.
type ConnectionHandler struct {
	connections connection.Repository
	encryptor   TokenEncryptor
}

// NewConnectionHandler creates a new bank connection handler
func NewConnectionHandler(connections connection.Repository, encryptor TokenEncryptor) *ConnectionHandler {
	return &ConnectionHandler{connections: connections, encryptor: encryptor}
}

// ConnectBankRequest is the payload for linking a new bank.
type ConnectBankRequest struct {
	BankName       string `json:"bankName"`
	BankIdentifier string `json:"bankIdentifier"`
	AccessToken    string `json:"accessToken"`
	RefreshToken   string `json:"refreshToken"`
	TokenType      string `json:"tokenType"`
	ExpiresIn      int64  `json:"expiresIn"` // seconds, optional
}

// HandleConnectBank links a new bank for the authenticated user. Tokens
// are encrypted before the connection row is written; plaintext never
// reaches the database.
func (h *ConnectionHandler) HandleConnectBank(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req ConnectBankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.TokenType == "" {
		req.TokenType = "Bearer"
	}

	encryptedAccess, err := h.encryptor.Encrypt(req.AccessToken)
	if err != nil {
		log.Printf("Error encrypting access token for user %d: %v", userID, err)
		http.Error(w, "Failed to secure credentials", http.StatusInternalServerError)
		return
	}
	var encryptedRefresh string
	if req.RefreshToken != "" {
		encryptedRefresh, err = h.encryptor.Encrypt(req.RefreshToken)
		if err != nil {
			log.Printf("Error encrypting refresh token for user %d: %v", userID, err)
			http.Error(w, "Failed to secure credentials", http.StatusInternalServerError)
			return
		}
	}

	var expiresAt *time.Time
	if req.ExpiresIn > 0 {
		t := time.Now().UTC().Add(time.Duration(req.ExpiresIn) * time.Second)
		expiresAt = &t
	}

	params := connection.CreateParams{
		UserID:         userID,
		BankName:       req.BankName,
		BankIdentifier: req.BankIdentifier,
		AccessToken:    encryptedAccess,
		RefreshToken:   encryptedRefresh,
		TokenType:      req.TokenType,
		ExpiresAt:      expiresAt,
	}
	if err := params.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := h.connections.Create(r.Context(), params)
	if err != nil {
		log.Printf("Error creating bank connection for user %d: %v", userID, err)
		http.Error(w, "Failed to connect bank", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(conn)
}

// HandleListConnections returns all bank connections for the authenticated user
func (h *ConnectionHandler) HandleListConnections(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	connections, err := h.connections.ListByUserID(r.Context(), userID)
	if err != nil {
		log.Printf("Error listing bank connections for user %d: %v", userID, err)
		http.Error(w, "Failed to list bank connections", http.StatusInternalServerError)
		return
	}

	if connections == nil {
		connections = []*connection.BankConnection{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(connections)
}

// HandleDisconnectBank soft-disables a bank connection
func (h *ConnectionHandler) HandleDisconnectBank(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	connectionID, ok := pathID(w, r)
	if !ok {
		return
	}

	err := h.connections.Deactivate(r.Context(), connectionID, userID)
	if err == connection.ErrNotFound {
		http.Error(w, "Bank connection not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("Error disconnecting bank %d for user %d: %v", connectionID, userID, err)
		http.Error(w, "Failed to disconnect bank", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
