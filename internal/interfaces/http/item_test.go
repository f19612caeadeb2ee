package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"nestegg/internal/domain/revoke"
	"nestegg/internal/domain/vault"
	"nestegg/internal/models"
	"nestegg/internal/shared/middleware"
)

func authedRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, int64(1))
	return req.WithContext(ctx)
}

func newItemHandler(itemRepo models.ItemRepository, client *MockClient) *ItemHandler {
	if client == nil {
		client = &MockClient{}
	}
	vaultService := vault.NewService(itemRepo)
	revokeService := revoke.NewService(
		client,
		itemRepo,
		&MockAccountRepo{},
		&MockTransactionRepo{},
		&MockSyncStatusRepo{},
		&MockDeviceTokenRepo{},
		nil,
	)
	return NewItemHandler(vaultService, revokeService)
}

func TestHandleRegisterItem(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		createFunc func(ctx context.Context, params models.CreateItemParams) (*models.Item, error)
		wantStatus int
	}{
		{
			name: "valid request",
			body: `{"externalItemId":"ext-1","accessCredential":"tok-1","institutionName":"First Bank"}`,
			createFunc: func(ctx context.Context, params models.CreateItemParams) (*models.Item, error) {
				return &models.Item{
					ID:               "item-1",
					UserID:           params.UserID,
					ExternalItemID:   params.ExternalItemID,
					AccessCredential: params.AccessCredential,
					InstitutionName:  params.InstitutionName,
					Status:           models.ItemStatusConnected,
				}, nil
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "duplicate item",
			body: `{"externalItemId":"ext-1","accessCredential":"tok-1"}`,
			createFunc: func(ctx context.Context, params models.CreateItemParams) (*models.Item, error) {
				return nil, vault.ErrDuplicateItem
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "missing external item id",
			body:       `{"accessCredential":"tok-1"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing credential",
			body:       `{"externalItemId":"ext-1"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid body",
			body:       `not json`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newItemHandler(&MockItemRepo{CreateFunc: tt.createFunc}, nil)

			req := authedRequest(http.MethodPost, "/api/items", tt.body)
			rec := httptest.NewRecorder()
			handler.HandleItems(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusCreated {
				var resp ItemResponse
				if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if resp.ID != "item-1" {
					t.Errorf("ID = %q, want item-1", resp.ID)
				}
				if strings.Contains(rec.Body.String(), "tok-1") {
					t.Error("response leaked the access credential")
				}
			}
		})
	}
}

func TestHandleListItems(t *testing.T) {
	itemRepo := &MockItemRepo{
		ListByUserIDFunc: func(ctx context.Context, userID int64) ([]*models.Item, error) {
			return []*models.Item{
				{ID: "item-1", UserID: userID, ExternalItemID: "ext-1", AccessCredential: "secret", InstitutionName: "First Bank", Status: models.ItemStatusConnected},
			}, nil
		},
	}
	handler := newItemHandler(itemRepo, nil)

	req := authedRequest(http.MethodGet, "/api/items", "")
	rec := httptest.NewRecorder()
	handler.HandleItems(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp []ItemResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 1 {
		t.Fatalf("len(resp) = %d, want 1", len(resp))
	}
	if strings.Contains(rec.Body.String(), "secret") {
		t.Error("response leaked the access credential")
	}
}

func TestHandleItems_Unauthenticated(t *testing.T) {
	handler := newItemHandler(&MockItemRepo{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/items", nil)
	rec := httptest.NewRecorder()
	handler.HandleItems(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestHandleDisconnectItem(t *testing.T) {
	ownedItem := &models.Item{
		ID:               "item-1",
		UserID:           1,
		AccessCredential: "tok-1",
		InstitutionName:  "First Bank",
		Status:           models.ItemStatusConnected,
	}

	tests := []struct {
		name        string
		getByIDFunc func(ctx context.Context, id string) (*models.Item, error)
		revokeFunc  func(ctx context.Context, accessToken string) error
		wantStatus  int
		wantMessage string
	}{
		{
			name: "success",
			getByIDFunc: func(ctx context.Context, id string) (*models.Item, error) {
				return ownedItem, nil
			},
			wantStatus:  http.StatusOK,
			wantMessage: "Account disconnected",
		},
		{
			name: "revocation fails upstream",
			getByIDFunc: func(ctx context.Context, id string) (*models.Item, error) {
				return ownedItem, nil
			},
			revokeFunc: func(ctx context.Context, accessToken string) error {
				return errors.New("aggregator down")
			},
			wantStatus:  http.StatusOK,
			wantMessage: "could not be revoked upstream",
		},
		{
			name: "unknown item",
			getByIDFunc: func(ctx context.Context, id string) (*models.Item, error) {
				return nil, nil
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "someone else's item",
			getByIDFunc: func(ctx context.Context, id string) (*models.Item, error) {
				other := *ownedItem
				other.UserID = 42
				return &other, nil
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			itemRepo := &MockItemRepo{GetByIDFunc: tt.getByIDFunc}
			client := &MockClient{RevokeAccessFunc: tt.revokeFunc}
			handler := newItemHandler(itemRepo, client)

			req := authedRequest(http.MethodDelete, "/api/items/item-1", "")
			req.SetPathValue("id", "item-1")
			rec := httptest.NewRecorder()
			handler.HandleDisconnectItem(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantMessage != "" && !strings.Contains(rec.Body.String(), tt.wantMessage) {
				t.Errorf("body %q missing %q", rec.Body.String(), tt.wantMessage)
			}
		})
	}
}
