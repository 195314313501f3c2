package tasks

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Task describes one HTTP callback the queue should deliver: the ingestion
// pipeline's URL and an arbitrary payload, serialized as base64 JSON.
type Task struct {
	URL     string `json:"url"`
	Payload any    `json:"-"`
}

type enqueueRequest struct {
	URL       string `json:"url"`
	Body      string `json:"body"`
	OIDCToken string `json:"oidcToken,omitempty"`
}

// Client enqueues HTTP callback tasks against a task-queue endpoint.
type Client struct {
	endpoint   string
	oidcToken  string
	httpClient *http.Client
	logger     zerolog.Logger
}

// Enqueuer is the surface the file service consumes.
type Enqueuer interface {
	Enqueue(ctx context.Context, task Task) error
}

func NewClient(endpoint, oidcToken string) *Client {
	return &Client{
		endpoint:   endpoint,
		oidcToken:  oidcToken,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     log.With().Str("component", "taskQueue").Logger(),
	}
}

// Enqueue submits the task. The payload is JSON-marshaled and base64-encoded
// into the task body; the OIDC token authenticates the eventual callback.
func (c *Client) Enqueue(ctx context.Context, task Task) error {
	if c.endpoint == "" {
		return fmt.Errorf("task queue endpoint not configured")
	}

	payloadJSON, err := json.Marshal(task.Payload)
	if err != nil {
		return fmt.Errorf("marshaling task payload: %w", err)
	}

	reqBody, err := json.Marshal(enqueueRequest{
		URL:       task.URL,
		Body:      base64.StdEncoding.EncodeToString(payloadJSON),
		OIDCToken: c.oidcToken,
	})
	if err != nil {
		return fmt.Errorf("marshaling enqueue request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("enqueueing task: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		c.logger.Error().Int("status", resp.StatusCode).Str("url", task.URL).Msg("Task queue returned non-success status")
		return fmt.Errorf("task queue returned status %d", resp.StatusCode)
	}

	c.logger.Debug().Str("url", task.URL).Msg("Task enqueued")
	return nil
}
