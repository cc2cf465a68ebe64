// Package nlu is the HTTP client for the external language-understanding
// service. The service receives the raw command text and replies with an
// intent tag, extracted fields, and a conversational response.
package nlu

import (
	"bytes"
	"context"
	"encoding/json/v2"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/shopmateapp/shopmate-server/internal/assistant"
)

// Client implements assistant.Understander against a remote NLU service.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      *slog.Logger
}

// NewClient creates a client for the service at baseURL.
// Rate limited to 2 requests per second with a small burst, which is
// plenty for humans typing commands and keeps a misbehaving client from
// hammering the service.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		rateLimiter: rate.NewLimiter(rate.Every(500*time.Millisecond), 5),
		logger:      logger,
	}
}

type understandRequest struct {
	Command    string `json:"command"`
	Privileged bool   `json:"privileged"`
}

// Understand sends the command text to the service and decodes the
// interpretation it returns.
func (c *Client) Understand(ctx context.Context, command string, privileged bool) (*assistant.Interpretation, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	body, err := json.Marshal(understandRequest{Command: command, Privileged: privileged})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/understand", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("sending command to NLU service", "command_length", len(command))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("understand request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("understand failed: status %d", resp.StatusCode)
	}

	var in assistant.Interpretation
	if err := json.UnmarshalRead(resp.Body, &in); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	c.logger.Debug("NLU interpretation", "intent", in.Tag)
	return &in, nil
}
