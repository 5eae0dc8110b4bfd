package http

import (
	"encoding/json"
	"log"
	"net/http"

	"multibank/internal/domain/account"
	"multibank/internal/domain/card"
	"multibank/internal/shared/middleware"
)

// AccountHandler serves synced accounts and cards.
type AccountHandler struct {
	accounts account.Repository
	cards    card.Repository
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accounts account.Repository, cards card.Repository) *AccountHandler {
	return &AccountHandler{accounts: accounts, cards: cards}
}

// HandleListAccounts returns all accounts for the authenticated user
func (h *AccountHandler) HandleListAccounts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	accounts, err := h.accounts.ListByUserID(r.Context(), userID)
	if err != nil {
		log.Printf("Error listing accounts for user %d: %v", userID, err)
		http.Error(w, "Failed to list accounts", http.StatusInternalServerError)
		return
	}

	if accounts == nil {
		accounts = []*account.Account{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(accounts)
}

// HandleAccountByID returns a specific account, scoped to its owner
func (h *AccountHandler) HandleAccountByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	accountID, ok := pathID(w, r)
	if !ok {
		return
	}

	acc, err := h.accounts.GetByID(r.Context(), accountID)
	if err == account.ErrAccountNotFound {
		http.Error(w, "Account not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("Error getting account %d: %v", accountID, err)
		http.Error(w, "Failed to get account", http.StatusInternalServerError)
		return
	}

	if acc.UserID != userID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(acc)
}

// HandleListCards returns all cards for the authenticated user
func (h *AccountHandler) HandleListCards(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	cards, err := h.cards.ListByUserID(r.Context(), userID)
	if err != nil {
		log.Printf("Error listing cards for user %d: %v", userID, err)
		http.Error(w, "Failed to list cards", http.StatusInternalServerError)
		return
	}

	if cards == nil {
		cards = []*card.Card{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cards)
}
