package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"nestegg/internal/domain/notify"
	"nestegg/internal/domain/revoke"
	"nestegg/internal/shared/middleware"
)

type UserHandler struct {
	revokeService *revoke.Service
	notifyService *notify.Service
}

func NewUserHandler(revokeService *revoke.Service, notifyService *notify.Service) *UserHandler {
	return &UserHandler{revokeService: revokeService, notifyService: notifyService}
}

// HandleDeleteUser handles DELETE /api/user. Every credential is revoked
// independently and all local rows go regardless.
func (h *UserHandler) HandleDeleteUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	revokedCount, err := h.revokeService.DeleteAllUserData(r.Context(), userID)
	if err != nil {
		log.Printf("Error deleting data for user %d: %v", userID, err)
		http.Error(w, "Failed to delete user data", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"success":      true,
		"revokedCount": revokedCount,
	})
}

type RegisterDeviceRequest struct {
	Token string `json:"token"`
}

// HandleRegisterDevice handles POST /api/devices
func (h *UserHandler) HandleRegisterDevice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req RegisterDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if _, err := h.notifyService.RegisterDevice(r.Context(), userID, req.Token); err != nil {
		if errors.Is(err, notify.ErrInvalidToken) {
			http.Error(w, "Device token is required", http.StatusBadRequest)
			return
		}
		log.Printf("Error registering device for user %d: %v", userID, err)
		http.Error(w, "Failed to register device", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]any{"success": true})
}
