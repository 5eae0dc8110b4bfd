package main

import (
	"net/http"

	httphandlers "multibank/internal/interfaces/http"
	"multibank/internal/shared/middleware"
)

// SetupRoutes configures all HTTP routes and returns the final handler with middleware.
func SetupRoutes(deps *Dependencies) http.Handler {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", httphandlers.HandleHealth)

	// Protected routes: identity comes from the gateway via X-User-ID
	identity := middleware.Identity

	mux.Handle("/api/banks/connect", identity(http.HandlerFunc(deps.ConnectionHandler.HandleConnectBank)))
	mux.Handle("/api/banks/connections", identity(http.HandlerFunc(deps.ConnectionHandler.HandleListConnections)))
	mux.Handle("/api/banks/connections/{id}", identity(http.HandlerFunc(deps.ConnectionHandler.HandleDisconnectBank)))
	mux.Handle("/api/banks/sync/{id}", identity(http.HandlerFunc(deps.SyncHandler.HandleSyncBank)))
	mux.Handle("/api/accounts", identity(http.HandlerFunc(deps.AccountHandler.HandleListAccounts)))
	mux.Handle("/api/accounts/{id}", identity(http.HandlerFunc(deps.AccountHandler.HandleAccountByID)))
	mux.Handle("/api/cards", identity(http.HandlerFunc(deps.AccountHandler.HandleListCards)))
	mux.Handle("/api/transactions", identity(http.HandlerFunc(deps.TransactionHandler.HandleListTransactions)))
	mux.Handle("/api/transactions/{id}", identity(http.HandlerFunc(deps.TransactionHandler.HandleTransactionByID)))

	// Apply global middleware
	return middleware.Logging(middleware.Telemetry(middleware.Tracing(mux)))
}
