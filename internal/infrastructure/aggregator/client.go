// Package aggregator implements the client for the external account-aggregation
// service. Every call authenticates with the client credentials plus the item's
// access token; a failed call is reported to the caller and treated there as a
// per-item failure, never a batch abort.
package aggregator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultTimeout   = 60 * time.Second
	balancesPath     = "/accounts/balance/get"
	transactionsPath = "/transactions/get"
	removeItemPath   = "/item/remove"

	dateLayout = "2006-01-02"
)

// Client handles communication with the aggregation API
type Client struct {
	httpClient *http.Client
	baseURL    string
	clientID   string
	secret     string
}

// Ensure Client implements ClientInterface
var _ ClientInterface = (*Client)(nil)

// NewClient creates a new aggregator API client
func NewClient(baseURL, clientID, secret string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		baseURL:  baseURL,
		clientID: clientID,
		secret:   secret,
	}
}

// Account represents an account as reported by the aggregator
type Account struct {
	AccountID string   `json:"account_id"`
	Name      string   `json:"name"`
	Type      string   `json:"type"`
	Subtype   string   `json:"subtype"`
	Balances  Balances `json:"balances"`
}

// Balances holds the aggregator-reported balance fields
type Balances struct {
	Current   float64  `json:"current"`
	Available *float64 `json:"available"`
}

// Transaction represents a transaction as reported by the aggregator.
// Amount uses the aggregator's convention: positive for outflows.
type Transaction struct {
	TransactionID string   `json:"transaction_id"`
	AccountID     string   `json:"account_id"`
	DateString    string   `json:"date"` // "2006-01-02"
	Amount        float64  `json:"amount"`
	MerchantName  string   `json:"merchant_name"`
	Name          string   `json:"name"`
	Category      []string `json:"category"`
	Pending       bool     `json:"pending"`
}

// GetDate parses and returns the transaction date
func (t *Transaction) GetDate() (time.Time, error) {
	parsed, err := time.Parse(dateLayout, t.DateString)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse date '%s': %w", t.DateString, err)
	}
	return parsed, nil
}

// Merchant returns the best available display name for the counterparty
func (t *Transaction) Merchant() string {
	if t.MerchantName != "" {
		return t.MerchantName
	}
	if t.Name != "" {
		return t.Name
	}
	return "Unknown"
}

type accountsResponse struct {
	Accounts  []Account `json:"accounts"`
	RequestID string    `json:"request_id"`
}

type transactionsResponse struct {
	Transactions      []Transaction `json:"transactions"`
	TotalTransactions int           `json:"total_transactions"`
	RequestID         string        `json:"request_id"`
}

type errorResponse struct {
	ErrorType    string `json:"error_type"`
	ErrorCode    string `json:"error_code"`
	ErrorMessage string `json:"error_message"`
	RequestID    string `json:"request_id"`
}

// ListAccounts fetches current balances for every account under one access token
func (c *Client) ListAccounts(ctx context.Context, accessToken string) ([]Account, error) {
	body := map[string]any{
		"client_id":    c.clientID,
		"secret":       c.secret,
		"access_token": accessToken,
	}

	var resp accountsResponse
	if err := c.post(ctx, balancesPath, body, &resp); err != nil {
		return nil, err
	}

	return resp.Accounts, nil
}

// ListTransactions fetches transactions in [startDate, endDate] for one access token
func (c *Client) ListTransactions(ctx context.Context, accessToken string, startDate, endDate time.Time) ([]Transaction, error) {
	body := map[string]any{
		"client_id":    c.clientID,
		"secret":       c.secret,
		"access_token": accessToken,
		"start_date":   startDate.Format(dateLayout),
		"end_date":     endDate.Format(dateLayout),
	}

	var resp transactionsResponse
	if err := c.post(ctx, transactionsPath, body, &resp); err != nil {
		return nil, err
	}

	return resp.Transactions, nil
}

// RevokeAccess invalidates an access token at the aggregator
func (c *Client) RevokeAccess(ctx context.Context, accessToken string) error {
	body := map[string]any{
		"client_id":    c.clientID,
		"secret":       c.secret,
		"access_token": accessToken,
	}

	var resp struct {
		Removed   bool   `json:"removed"`
		RequestID string `json:"request_id"`
	}
	if err := c.post(ctx, removeItemPath, body, &resp); err != nil {
		return err
	}

	if !resp.Removed {
		return fmt.Errorf("aggregator did not confirm removal")
	}
	return nil
}

// post sends a JSON request and decodes the response into out
func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if err := json.Unmarshal(raw, &errResp); err != nil {
			return fmt.Errorf("aggregator request failed with status %d: %s", resp.StatusCode, string(raw))
		}
		return fmt.Errorf("aggregator error (status %d): %s - %s", resp.StatusCode, errResp.ErrorCode, errResp.ErrorMessage)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return nil
}
