// Package accounts provides an HTTP client for the sibling accounts service.
// The client is read-only: this service queries accounts to decide whether a
// client may be deleted, and never mutates account data.
package accounts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/acmebank/clientms/internal/platform/logger"
	"github.com/google/uuid"
)

// ErrUnavailable is returned when the accounts service cannot be reached or
// responds with an error. Callers must treat this as "unknown" rather than
// "no accounts": a delete gated on this lookup must not proceed.
var ErrUnavailable = errors.New("accounts service unavailable")

// Account mirrors the accounts service wire representation.
type Account struct {
	ID            string `json:"id"`
	AccountNumber string `json:"accountNumber"`
	Balance       string `json:"balance"`
	Type          string `json:"type"`
	ClientID      string `json:"clientId"`
}

// Client queries the accounts service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new accounts service client.
// baseURL is the root of the accounts service (no trailing slash needed);
// timeout bounds each request. If logger is nil, a default logger is used.
func NewClient(baseURL string, timeout time.Duration, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: log.With(slog.String("component", "accounts_client")),
	}
}

// ByClientID retrieves the accounts recorded for the given client.
// The accounts service is expected to filter by clientId server-side, but
// callers must not rely on that; re-filter the returned slice before acting
// on it. Transport failures and non-2xx responses wrap ErrUnavailable.
func (c *Client) ByClientID(ctx context.Context, clientID uuid.UUID) ([]Account, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	endpoint := fmt.Sprintf("%s/cuentas?clienteId=%s", c.baseURL, url.QueryEscape(clientID.String()))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("accounts lookup failed",
			slog.String("client_id", clientID.String()),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		log.Warn("accounts lookup returned error status",
			slog.String("client_id", clientID.String()),
			slog.Int("status_code", resp.StatusCode))
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	var accounts []Account
	if err := json.NewDecoder(resp.Body).Decode(&accounts); err != nil {
		log.Warn("accounts lookup returned malformed body",
			slog.String("client_id", clientID.String()),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: decoding response: %v", ErrUnavailable, err)
	}

	log.Debug("accounts lookup completed",
		slog.String("client_id", clientID.String()),
		slog.Int("account_count", len(accounts)))
	return accounts, nil
}
