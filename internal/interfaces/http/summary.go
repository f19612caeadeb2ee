package http

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"nestegg/internal/domain/summary"
	"nestegg/internal/shared/middleware"
)

type SummaryHandler struct {
	summaryService *summary.Service
}

func NewSummaryHandler(summaryService *summary.Service) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService}
}

// HandleSpendingSummary handles GET /api/spending/summary?start=&end=
// (dates in 2006-01-02 form, both optional)
func (h *SummaryHandler) HandleSpendingSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	start, err := parseDateParam(r, "start")
	if err != nil {
		http.Error(w, "Invalid start date (expected YYYY-MM-DD)", http.StatusBadRequest)
		return
	}
	end, err := parseDateParam(r, "end")
	if err != nil {
		http.Error(w, "Invalid end date (expected YYYY-MM-DD)", http.StatusBadRequest)
		return
	}

	// One-sided ranges get the missing bound filled in, so a lone start never
	// turns into a degenerate empty query.
	if !start.IsZero() && end.IsZero() {
		end = time.Now()
	}
	if start.IsZero() && !end.IsZero() {
		start = end.AddDate(0, 0, -90)
	}
	if !start.IsZero() && end.Before(start) {
		http.Error(w, "End date before start date", http.StatusBadRequest)
		return
	}

	result, err := h.summaryService.Summarize(r.Context(), userID, start, end)
	if err != nil {
		log.Printf("Error summarizing spending for user %d: %v", userID, err)
		http.Error(w, "Failed to compute summary", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func parseDateParam(r *http.Request, name string) (time.Time, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", value)
}
