// Package firebase implements push delivery over Firebase Cloud Messaging.
package firebase

import (
	"context"
	"fmt"
	"log"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// FCM caps multicast batches at 500 tokens.
const batchLimit = 500

// TokenDeactivator marks an invalid registration token inactive. Provided by
// the caller so this package stays decoupled from the token store.
type TokenDeactivator func(ctx context.Context, token string) error

// Client sends push notifications through FCM
type Client struct {
	msgClient   *messaging.Client
	deactivator TokenDeactivator
}

// NewClient initializes a Firebase app from a service-account credentials file.
// deactivator may be nil.
func NewClient(ctx context.Context, credentialsFile string, deactivator TokenDeactivator) (*Client, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	msgClient, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase messaging client: %w", err)
	}

	return &Client{msgClient: msgClient, deactivator: deactivator}, nil
}

// SendMulticast delivers one notification to every token, batching to the FCM
// limit. Unregistered or malformed tokens are deactivated, not treated as a
// send failure.
func (c *Client) SendMulticast(ctx context.Context, tokens []string, title, body string, data map[string]string) error {
	if len(tokens) == 0 {
		return nil
	}

	var success, failure int
	for start := 0; start < len(tokens); start += batchLimit {
		end := start + batchLimit
		if end > len(tokens) {
			end = len(tokens)
		}
		batch := tokens[start:end]

		msg := &messaging.MulticastMessage{
			Tokens: batch,
			Notification: &messaging.Notification{
				Title: title,
				Body:  body,
			},
			Data: data,
		}

		resp, err := c.msgClient.SendEachForMulticast(ctx, msg)
		if err != nil {
			return fmt.Errorf("failed to send FCM multicast: %w", err)
		}

		success += resp.SuccessCount
		failure += resp.FailureCount
		for i, sendResp := range resp.Responses {
			if sendResp.Error == nil {
				continue
			}
			if messaging.IsUnregistered(sendResp.Error) || messaging.IsInvalidArgument(sendResp.Error) {
				log.Printf("Invalid FCM token (deactivating): %s", batch[i])
				c.deactivateToken(ctx, batch[i])
			} else {
				log.Printf("FCM send error: %v", sendResp.Error)
			}
		}
	}

	log.Printf("FCM multicast: %d success, %d failure", success, failure)
	return nil
}

func (c *Client) deactivateToken(ctx context.Context, token string) {
	if c.deactivator == nil {
		return
	}
	if err := c.deactivator(ctx, token); err != nil {
		log.Printf("Failed to deactivate FCM token %s: %v", token, err)
	}
}
