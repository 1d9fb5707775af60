// Package relay forwards contact form submissions to a Formspree-style
// form relay endpoint.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tradesy30/portfolio/internal/logger"
)

const maxErrorBody = 4000

var ErrMissingFormID = errors.New("relay: form id required")

type Config struct {
	BaseURL string
	FormID  string
	Timeout time.Duration
}

// Message is the payload relayed for one contact submission.
type Message struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
	// Subject and ReplyTo use the relay's special field names.
	Subject string `json:"_subject,omitempty"`
	ReplyTo string `json:"_replyto,omitempty"`
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// Client posts each message exactly once; failures are not retried.
type Client struct {
	log        *logger.Logger
	endpoint   string
	httpClient *http.Client
}

func New(log *logger.Logger, cfg Config, opts ...Option) (*Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	formID := strings.TrimSpace(cfg.FormID)
	if formID == "" {
		return nil, ErrMissingFormID
	}
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = "https://formspree.io/f"
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("relay: invalid base url: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	c := &Client{
		log:        log.With("client", "FormRelay"),
		endpoint:   base + "/" + url.PathEscape(formID),
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Endpoint is the URL submissions are posted to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

type errorItem struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Code    string `json:"code,omitempty"`
}

type errorResponse struct {
	Error  string      `json:"error"`
	Errors []errorItem `json:"errors"`
}

// HTTPError is returned when the relay answers with a non-2xx status.
type HTTPError struct {
	StatusCode int
	Body       string
	Messages   []string
}

func (e *HTTPError) Error() string {
	if e == nil {
		return "relay: <nil error>"
	}
	if len(e.Messages) > 0 {
		return fmt.Sprintf("relay http %d: %s", e.StatusCode, strings.Join(e.Messages, "; "))
	}
	msg := strings.TrimSpace(e.Body)
	if msg == "" {
		msg = "<empty body>"
	}
	if len(msg) > maxErrorBody {
		msg = msg[:maxErrorBody] + "..."
	}
	return fmt.Sprintf("relay http %d: %s", e.StatusCode, msg)
}

// Send posts msg to the relay.
func (c *Client) Send(ctx context.Context, msg Message) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(msg); err != nil {
		return fmt.Errorf("relay: encode: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &buf)
	if err != nil {
		return fmt.Errorf("relay: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("relay: post: %w", err)
	}
	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	_ = resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		he := &HTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
		var er errorResponse
		if json.Unmarshal(raw, &er) == nil {
			for _, item := range er.Errors {
				if m := strings.TrimSpace(item.Message); m != "" {
					he.Messages = append(he.Messages, m)
				}
			}
			if len(he.Messages) == 0 && strings.TrimSpace(er.Error) != "" {
				he.Messages = append(he.Messages, strings.TrimSpace(er.Error))
			}
		}
		return he
	}
	if readErr != nil {
		c.log.Warn("relay response body unreadable", "error", readErr)
	}

	c.log.Debug("submission relayed", "status", resp.StatusCode, "duration_ms", time.Since(start).Milliseconds())
	return nil
}
