package main

import (
	"net/http"

	"nestegg/internal/shared/middleware"
)

// SetupRoutes configures all HTTP routes and returns the final handler with middleware.
func SetupRoutes(deps *Dependencies) http.Handler {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", handleHealth)

	// Protected routes
	authMiddleware := middleware.Auth(deps.JWT)

	mux.Handle("/api/items", authMiddleware(http.HandlerFunc(deps.ItemHandler.HandleItems)))
	mux.Handle("/api/items/{id}", authMiddleware(http.HandlerFunc(deps.ItemHandler.HandleDisconnectItem)))
	mux.Handle("/api/sync/accounts", authMiddleware(http.HandlerFunc(deps.SyncHandler.HandleSyncAccounts)))
	mux.Handle("/api/sync/transactions", authMiddleware(http.HandlerFunc(deps.SyncHandler.HandleSyncTransactions)))
	mux.Handle("/api/spending/summary", authMiddleware(http.HandlerFunc(deps.SummaryHandler.HandleSpendingSummary)))
	mux.Handle("/api/devices", authMiddleware(http.HandlerFunc(deps.UserHandler.HandleRegisterDevice)))
	mux.Handle("/api/user", authMiddleware(http.HandlerFunc(deps.UserHandler.HandleDeleteUser)))

	// Apply global middleware
	return middleware.Logging(middleware.CORS(middleware.Tracing(mux)))
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
