// Package http exposes the JSON API.
package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"nestegg/internal/domain/revoke"
	"nestegg/internal/domain/vault"
	"nestegg/internal/models"
	"nestegg/internal/shared/middleware"
)

type ItemHandler struct {
	vaultService  *vault.Service
	revokeService *revoke.Service
}

func NewItemHandler(vaultService *vault.Service, revokeService *revoke.Service) *ItemHandler {
	return &ItemHandler{vaultService: vaultService, revokeService: revokeService}
}

type RegisterItemRequest struct {
	ExternalItemID   string `json:"externalItemId"`
	AccessCredential string `json:"accessCredential"`
	InstitutionName  string `json:"institutionName"`
	InstitutionID    string `json:"institutionId"`
}

// ItemResponse mirrors the item without its credential
type ItemResponse struct {
	ID              string `json:"id"`
	ExternalItemID  string `json:"externalItemId"`
	InstitutionName string `json:"institutionName"`
	InstitutionID   string `json:"institutionId"`
	Status          string `json:"status"`
}

func toItemResponse(item *models.Item) ItemResponse {
	return ItemResponse{
		ID:              item.ID,
		ExternalItemID:  item.ExternalItemID,
		InstitutionName: item.InstitutionName,
		InstitutionID:   item.InstitutionID,
		Status:          string(item.Status),
	}
}

// HandleItems routes /api/items by method
func (h *ItemHandler) HandleItems(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleListItems(w, r)
	case http.MethodPost:
		h.handleRegisterItem(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *ItemHandler) handleListItems(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	items, err := h.vaultService.ListItems(r.Context(), userID)
	if err != nil {
		log.Printf("Error listing items for user %d: %v", userID, err)
		http.Error(w, "Failed to list items", http.StatusInternalServerError)
		return
	}

	response := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toItemResponse(item))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (h *ItemHandler) handleRegisterItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req RegisterItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	item, err := h.vaultService.RegisterItem(r.Context(), models.CreateItemParams{
		UserID:           userID,
		ExternalItemID:   req.ExternalItemID,
		AccessCredential: req.AccessCredential,
		InstitutionName:  req.InstitutionName,
		InstitutionID:    req.InstitutionID,
	})
	if err != nil {
		if errors.Is(err, vault.ErrDuplicateItem) {
			http.Error(w, "Item already linked", http.StatusConflict)
			return
		}
		if req.ExternalItemID == "" || req.AccessCredential == "" {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("Error registering item for user %d: %v", userID, err)
		http.Error(w, "Failed to register item", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toItemResponse(item))
}

// HandleDisconnectItem handles DELETE /api/items/{id}
func (h *ItemHandler) HandleDisconnectItem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	itemID := r.PathValue("id")
	if itemID == "" {
		http.Error(w, "Item ID is required", http.StatusBadRequest)
		return
	}

	result, err := h.revokeService.DisconnectItem(r.Context(), userID, itemID)
	if err != nil {
		if errors.Is(err, vault.ErrItemNotFound) {
			http.Error(w, "Item not found", http.StatusNotFound)
			return
		}
		log.Printf("Error disconnecting item %s for user %d: %v", itemID, userID, err)
		http.Error(w, "Failed to disconnect item", http.StatusInternalServerError)
		return
	}

	message := "Account disconnected"
	if !result.Revoked {
		message = "Account disconnected, but the connection could not be revoked upstream"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"message": message,
	})
}
