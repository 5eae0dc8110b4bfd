package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"multibank/internal/domain/connection"
	"multibank/internal/domain/sync"
	"multibank/internal/shared/middleware"
)

// SyncService runs one sync pass for a bank connection.
type SyncService interface {
	SyncConnection(ctx context.Context, userID, connectionID int64) (*sync.Result, error)
}

// SyncHandler triggers on-demand bank syncs.
type SyncHandler struct {
	syncService SyncService
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(syncService SyncService) *SyncHandler {
	return &SyncHandler{syncService: syncService}
}

// HandleSyncBank runs a sync pass for the connection in the path.
// A pass already running returns 409; an upstream or storage failure
// surfaces as 502 with the error result in the body.
func (h *SyncHandler) HandleSyncBank(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
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

	result, err := h.syncService.SyncConnection(r.Context(), userID, connectionID)
	switch {
	case errors.Is(err, connection.ErrNotFound):
		http.Error(w, "Bank connection not found", http.StatusNotFound)
		return
	case errors.Is(err, sync.ErrSyncInProgress):
		http.Error(w, "Sync already in progress for this connection", http.StatusConflict)
		return
	case err != nil:
		log.Printf("Sync failed for connection %d (user %d): %v", connectionID, userID, err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		if result == nil {
			result = &sync.Result{Status: sync.StatusError, Message: "sync failed"}
		}
		json.NewEncoder(w).Encode(result)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// pathID extracts the {id} path segment as an int64, writing a 400
// response when it is missing or malformed.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.PathValue("id")
	if raw == "" {
		http.Error(w, "ID is required", http.StatusBadRequest)
		return 0, false
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
