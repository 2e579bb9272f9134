package chatbot

import (
	"bytes"
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
	"unicode/utf8"

	"opschat/pkg/config"
	"opschat/pkg/logging"
	"opschat/pkg/version"

	"github.com/google/uuid"
)

const (
	// MaxReplyBytes bounds the response body. Charts arrive as base64 data
	// URIs, so this is far above what text replies need.
	MaxReplyBytes = 8 << 20

	errorPreviewLen = 200
)

// ErrReplyTooLarge is returned when the body exceeds MaxReplyBytes.
var ErrReplyTooLarge = errors.New("chatbot reply exceeds size limit")

// Client talks to the chatbot endpoint.
type Client struct {
	base       *url.URL
	chatURL    string
	httpClient *http.Client
	userAgent  string
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if strings.TrimSpace(ua) != "" {
			c.userAgent = ua
		}
	}
}

// NewClient creates a client for cfg.Endpoint + cfg.ChatPath.
func NewClient(cfg config.Config, opts ...Option) (*Client, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("chatbot endpoint is required")
	}
	base, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid chatbot endpoint: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("chatbot endpoint must use http or https, got %q", endpoint)
	}
	if base.Host == "" {
		return nil, fmt.Errorf("chatbot endpoint must include a host, got %q", endpoint)
	}
	if cfg.RequestTimeoutSeconds < 0 {
		return nil, fmt.Errorf("request_timeout_seconds must not be negative")
	}

	chatPath := cfg.ChatPath
	if strings.TrimSpace(chatPath) == "" {
		chatPath = config.DefaultChatPath
	}

	c := &Client{
		base:    base,
		chatURL: base.JoinPath(chatPath).String(),
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeoutSeconds) * time.Second,
		},
		userAgent: version.UserAgent(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ChatURL returns the full URL requests are sent to.
func (c *Client) ChatURL() string {
	return c.chatURL
}

// Send posts message with a fresh request ID.
func (c *Client) Send(ctx context.Context, message string) (Reply, error) {
	return c.SendWithID(ctx, uuid.NewString(), message)
}

// SendWithID posts message and decodes the reply. id is sent as
// X-Request-ID and attached to every log line for the call.
func (c *Client) SendWithID(ctx context.Context, id, message string) (Reply, error) {
	logger := slog.Default().With("request_id", id)

	payload, err := json.Marshal(Request{Message: message})
	if err != nil {
		return Reply{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	logging.Trace(ctx, logger, "chatbot_request_body", "json", string(payload))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.chatURL, bytes.NewReader(payload))
	if err != nil {
		return Reply{}, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("X-Request-ID", id)

	logger.Debug("chatbot_request", "url", c.chatURL, "message_length", len(message))
	start := time.Now()

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		logger.Warn("chatbot_request_failed", "error", err)
		return Reply{}, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxReplyBytes+1))
	if err != nil {
		logger.Warn("chatbot_read_failed", "error", err, "status_code", resp.StatusCode)
		return Reply{}, fmt.Errorf("failed to read response: %w", err)
	}
	if len(body) > MaxReplyBytes {
		logger.Warn("chatbot_reply_too_large", "limit_bytes", MaxReplyBytes)
		return Reply{}, ErrReplyTooLarge
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		preview := previewBody(body)
		logger.Warn("chatbot_error_status",
			"status_code", resp.StatusCode,
			"response_preview", preview)
		return Reply{}, &StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(preview),
		}
	}

	logging.Trace(ctx, logger, "chatbot_reply_body", "json", string(body))

	var wire wireReply
	if err := json.Unmarshal(body, &wire); err != nil {
		logger.Warn("chatbot_decode_failed", "error", err, "content_type", resp.Header.Get("Content-Type"))
		return Reply{}, fmt.Errorf("failed to decode response: %w", err)
	}
	reply := wire.reply()

	logger.Debug("chatbot_reply",
		"status_code", resp.StatusCode,
		"bytes", len(body),
		"has_chart", reply.HasChart(),
		"alert_count", len(reply.Alerts),
		"duration_ms", time.Since(start).Milliseconds())

	return reply, nil
}

// ResolveChart turns a relative chart path into an absolute URL on the
// endpoint host. Absolute URLs and data URIs are returned unchanged; a
// reference that does not parse as a URL resolves to "".
func (c *Client) ResolveChart(src string) string {
	src = strings.TrimSpace(src)
	if src == "" || IsDataURI(src) {
		return src
	}
	ref, err := url.Parse(src)
	if err != nil {
		return ""
	}
	if ref.IsAbs() {
		return src
	}
	return c.base.ResolveReference(ref).String()
}

// previewBody cuts body to errorPreviewLen bytes on a rune boundary.
func previewBody(body []byte) string {
	if len(body) <= errorPreviewLen {
		return strings.ToValidUTF8(string(body), "\uFFFD")
	}
	cut := errorPreviewLen
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return strings.ToValidUTF8(string(body[:cut]), "\uFFFD") + "..."
}
