package http

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"multibank/internal/domain/transaction"
	"multibank/internal/shared/middleware"
)

const (
	defaultTransactionLimit = 50
	maxTransactionLimit     = 200
)

// TransactionHandler serves synced transactions.
type TransactionHandler struct {
	transactions transaction.Repository
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactions transaction.Repository) *TransactionHandler {
	return &TransactionHandler{transactions: transactions}
}

// HandleListTransactions returns the user's transactions, newest first.
// Supports ?accountId=, ?category=, ?limit= and ?offset= query parameters.
func (h *TransactionHandler) HandleListTransactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	filter, err := parseListFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	transactions, err := h.transactions.ListByUserID(r.Context(), userID, filter)
	if err != nil {
		log.Printf("Error listing transactions for user %d: %v", userID, err)
		http.Error(w, "Failed to list transactions", http.StatusInternalServerError)
		return
	}

	if transactions == nil {
		transactions = []*transaction.Transaction{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(transactions)
}

// HandleTransactionByID returns a specific transaction, scoped to its owner
func (h *TransactionHandler) HandleTransactionByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	transactionID, ok := pathID(w, r)
	if !ok {
		return
	}

	txn, err := h.transactions.GetByID(r.Context(), transactionID)
	if err == transaction.ErrTransactionNotFound {
		http.Error(w, "Transaction not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("Error getting transaction %d: %v", transactionID, err)
		http.Error(w, "Failed to get transaction", http.StatusInternalServerError)
		return
	}

	if txn.UserID != userID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(txn)
}

func parseListFilter(r *http.Request) (transaction.ListFilter, error) {
	filter := transaction.ListFilter{Limit: defaultTransactionLimit}
	query := r.URL.Query()

	if raw := query.Get("accountId"); raw != "" {
		accountID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || accountID <= 0 {
			return filter, errInvalidParam("accountId")
		}
		filter.AccountID = &accountID
	}

	if category := query.Get("category"); category != "" {
		filter.Category = &category
	}

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return filter, errInvalidParam("limit")
		}
		if limit > maxTransactionLimit {
			limit = maxTransactionLimit
		}
		filter.Limit = limit
	}

	if raw := query.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return filter, errInvalidParam("offset")
		}
		filter.Offset = offset
	}

	return filter, nil
}

type errInvalidParam string

func (e errInvalidParam) Error() string {
	return "invalid " + string(e) + " parameter"
}
