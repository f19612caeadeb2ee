package http

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"nestegg/internal/domain/summary"
	"nestegg/internal/domain/sync"
	"nestegg/internal/shared/middleware"
)

type SyncHandler struct {
	accountSync     *sync.AccountSyncService
	transactionSync *sync.TransactionSyncService
	summaryService  *summary.Service
}

func NewSyncHandler(accountSync *sync.AccountSyncService, transactionSync *sync.TransactionSyncService, summaryService *summary.Service) *SyncHandler {
	return &SyncHandler{
		accountSync:     accountSync,
		transactionSync: transactionSync,
		summaryService:  summaryService,
	}
}

// HandleSyncAccounts handles POST /api/sync/accounts. Partial failure is
// success:true with a non-empty errors list.
func (h *SyncHandler) HandleSyncAccounts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	result, err := h.accountSync.SyncAccounts(r.Context(), userID)
	if err != nil {
		log.Printf("Error syncing accounts for user %d: %v", userID, err)
		http.Error(w, "Failed to sync accounts", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"success":     true,
		"syncedCount": result.TotalSynced,
		"errors":      result.ItemErrors,
	})
}

// HandleSyncTransactions handles POST /api/sync/transactions with the
// implicit trailing 90-day window. The response carries the category spending
// summary over the synced range.
func (h *SyncHandler) HandleSyncTransactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	result, err := h.transactionSync.SyncTransactions(r.Context(), userID, time.Time{}, time.Time{})
	if err != nil {
		log.Printf("Error syncing transactions for user %d: %v", userID, err)
		http.Error(w, "Failed to sync transactions", http.StatusInternalServerError)
		return
	}

	spending, err := h.summaryService.Summarize(r.Context(), userID, result.StartDate, result.EndDate)
	if err != nil {
		log.Printf("Error summarizing spending for user %d: %v", userID, err)
		http.Error(w, "Failed to compute summary", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"success":          true,
		"transactionCount": result.TotalSynced,
		"dateRange": map[string]string{
			"start": result.StartDate.Format("2006-01-02"),
			"end":   result.EndDate.Format("2006-01-02"),
		},
		"summary": spending,
		"merged":  result.TotalSynced,
		"skipped": result.Skipped,
		"errors":  result.ItemErrors,
	})
}
