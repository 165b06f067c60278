package kiotviet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

// ErrMissingToken is returned when the token endpoint answers 200 but the
// body carries no access_token field.
var ErrMissingToken = errors.New("kiotviet: token response missing access_token")

// Config for the KiotViet API client.
type Config struct {
	Retailer     string
	ClientID     string
	ClientSecret string
	BaseURL      string
	AuthURL      string
	Timeout      time.Duration // per-request timeout, defaults to 30s
	MaxRetries   int           // retries for transient failures, defaults to 3
}

// Client talks to the KiotViet public API. The bearer token is acquired
// lazily on the first call and reused until a 401 forces a refresh.
type Client struct {
	cfg        Config
	httpClient *http.Client

	mu          sync.Mutex
	accessToken string
}

// NewClient builds a client with explicit timeouts applied.
func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Authenticate performs the client-credentials grant against the auth
// endpoint and stores the resulting bearer token.
func (c *Client) Authenticate(ctx context.Context) error {
	form := url.Values{}
	form.Set("scopes", "PublicApi.Access")
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.AuthURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("token endpoint returned HTTP %d: %s", resp.StatusCode, string(body))
	}

	var tok tokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return fmt.Errorf("failed to parse token response: %w", err)
	}
	if tok.AccessToken == "" {
		return ErrMissingToken
	}

	c.mu.Lock()
	c.accessToken = tok.AccessToken
	c.mu.Unlock()
	return nil
}

func (c *Client) token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken
}

func (c *Client) ensureToken(ctx context.Context) error {
	if c.token() != "" {
		return nil
	}
	return c.Authenticate(ctx)
}

// GetInvoices fetches one page of invoices modified inside [from, to].
// The date range is expanded to day boundaries (00:00:00 / 23:59:59).
func (c *Client) GetInvoices(ctx context.Context, from, to time.Time, pageSize, currentItem int) (*InvoicePage, error) {
	if err := c.ensureToken(ctx); err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("lastModifiedFrom", from.Format("2006-01-02")+"T00:00:00")
	params.Set("lastModifiedTo", to.Format("2006-01-02")+"T23:59:59")
	params.Set("pageSize", strconv.Itoa(pageSize))
	params.Set("currentItem", strconv.Itoa(currentItem))
	params.Set("includeInvoiceDetail", "true")

	endpoint := c.cfg.BaseURL + "/invoices?" + params.Encode()

	body, err := c.doGet(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch invoices: %w", err)
	}

	var page InvoicePage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("failed to parse invoice page: %w", err)
	}
	return &page, nil
}

// doGet executes an authenticated GET with bounded retries. Network errors
// and 5xx/429 responses are retried with exponential backoff; a 401 triggers
// a single re-authentication before the request is repeated.
func (c *Client) doGet(ctx context.Context, endpoint string) ([]byte, error) {
	var lastErr error
	reauthed := false

	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<uint(attempt-1)) * time.Second
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		c.setHeaders(req)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("request failed: %w", err)
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("failed to read response: %w", err)
			continue
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			return body, nil
		case resp.StatusCode == http.StatusUnauthorized && !reauthed:
			// Token expired mid-session: refresh once and retry immediately.
			reauthed = true
			if err := c.Authenticate(ctx); err != nil {
				return nil, fmt.Errorf("re-authentication failed: %w", err)
			}
			attempt--
			continue
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			lastErr = fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
			continue
		default:
			return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
		}
	}

	return nil, fmt.Errorf("giving up after %d retries: %w", c.cfg.MaxRetries, lastErr)
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Retailer", c.cfg.Retailer)
	req.Header.Set("Authorization", "Bearer "+c.token())
	req.Header.Set("Content-Type", "application/json")
}
