package sdk

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
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout bounds every request that does not set its own timeout.
const DefaultTimeout = 30 * time.Second

// RequestIDHeader carries a per-request correlation ID.
const RequestIDHeader = "X-Request-ID"

// Client provides a high-level interface to the ERP REST API.
// It owns the request/response pipeline: bearer token attachment, envelope
// unwrapping, error classification, user notification and auth-failure recovery.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenReader
	onAuthFail AuthFailureHandler
	notifier   Notifier
	messages   Messages
	logger     *slog.Logger
	timeout    time.Duration

	// handlingAuthError guards re-entry into the auth recovery routine.
	handlingAuthError atomic.Bool
}

// ClientOptions configures SDK client construction.
type ClientOptions struct {
	HTTPClient  *http.Client
	Tokens      TokenReader
	AuthHandler AuthFailureHandler
	Notifier    Notifier
	Messages    Messages
	Logger      *slog.Logger
	Timeout     time.Duration
}

// ClientOption mutates ClientOptions.
type ClientOption func(*ClientOptions)

// WithHTTPClient overrides the HTTP client used for API calls.
// Its transport is wrapped so the bearer token is still attached.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(opts *ClientOptions) {
		opts.HTTPClient = client
	}
}

// WithTokenSource sets where the bearer token is read from on every request.
func WithTokenSource(tokens TokenReader) ClientOption {
	return func(opts *ClientOptions) {
		opts.Tokens = tokens
	}
}

// WithAuthFailureHandler installs the routine run when the session is found to be stale.
func WithAuthFailureHandler(handler AuthFailureHandler) ClientOption {
	return func(opts *ClientOptions) {
		opts.AuthHandler = handler
	}
}

// WithNotifier sets the sink for user-facing failure messages.
func WithNotifier(n Notifier) ClientOption {
	return func(opts *ClientOptions) {
		opts.Notifier = n
	}
}

// WithMessages sets the message catalog used for error text.
func WithMessages(m Messages) ClientOption {
	return func(opts *ClientOptions) {
		opts.Messages = m
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(opts *ClientOptions) {
		opts.Logger = logger
	}
}

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(opts *ClientOptions) {
		opts.Timeout = d
	}
}

// NewClient creates a new ERP SDK client that communicates with the API at baseURL.
// An http.Client is created automatically when one is not supplied.
func NewClient(baseURL string, optFns ...ClientOption) *Client {
	opts := ClientOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{}
	}
	if opts.Tokens == nil {
		opts.Tokens = StaticToken("")
	}
	if opts.Notifier == nil {
		opts.Notifier = NopNotifier{}
	}
	if opts.Messages == nil {
		opts.Messages = DefaultMessages()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	wrapped := *opts.HTTPClient
	wrapped.Transport = &bearerTransport{base: opts.HTTPClient.Transport, tokens: opts.Tokens}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &wrapped,
		tokens:     opts.Tokens,
		onAuthFail: opts.AuthHandler,
		notifier:   opts.Notifier,
		messages:   opts.Messages,
		logger:     opts.Logger,
		timeout:    opts.Timeout,
	}
}

// BaseURL returns the resolved API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// HandlingAuthError reports whether an auth recovery is currently running.
func (c *Client) HandlingAuthError() bool {
	return c.handlingAuthError.Load()
}

// Request describes one API call.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	// Body is JSON-encoded unless a raw body was attached with a multipart upload.
	Body any
	// Timeout overrides the client default for this call.
	Timeout time.Duration
	// SkipAuthRecovery keeps 401/403 from triggering logout and redirect.
	SkipAuthRecovery bool
	// Silent suppresses the failure notification.
	Silent bool

	rawBody     io.Reader
	contentType string
}

// Do sends the request and decodes the (envelope-unwrapped) payload into out.
// out may be nil, a *json.RawMessage, or any JSON-decodable pointer.
// Failures are returned as *APIError after the pipeline has notified the user
// and, where applicable, run auth recovery.
func (c *Client) Do(ctx context.Context, r *Request, out any) error {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = c.timeout
	}
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	httpReq, err := c.newHTTPRequest(reqCtx, r)
	if err != nil {
		return c.fail(ctx, r, c.configError(err))
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return c.fail(ctx, r, c.transportError(reqCtx, err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.fail(ctx, r, c.transportError(reqCtx, err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.fail(ctx, r, c.responseError(resp.StatusCode, body))
	}

	if err := decodePayload(body, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", r.Method, r.Path, err)
	}
	return nil
}

func (c *Client) newHTTPRequest(ctx context.Context, r *Request) (*http.Request, error) {
	if strings.TrimSpace(r.Path) == "" {
		return nil, errEmptyPath
	}
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}

	target, err := url.Parse(c.baseURL + "/" + strings.TrimLeft(r.Path, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid request path %q: %w", r.Path, err)
	}
	if len(r.Query) > 0 {
		target.RawQuery = r.Query.Encode()
	}

	var body io.Reader
	contentType := ""
	switch {
	case r.rawBody != nil:
		body = r.rawBody
		contentType = r.contentType
	case r.Body != nil:
		data, err := json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set(RequestIDHeader, uuid.NewString())
	return req, nil
}

// fail routes a classified failure through auth recovery and notification.
func (c *Client) fail(ctx context.Context, r *Request, apiErr *APIError) error {
	authHandled := false

	switch apiErr.Status {
	case http.StatusUnauthorized:
		if !r.SkipAuthRecovery {
			c.recoverSession(ctx, c.messages.Text(MsgSessionExpired))
			authHandled = true
		}
	case http.StatusForbidden:
		if !r.SkipAuthRecovery && c.hasToken(ctx) {
			warning := firstNonEmpty(apiErr.Detail, apiErr.Title, c.messages.Text(MsgSessionExpired))
			c.recoverSession(ctx, warning)
			authHandled = true
		}
	}

	c.logger.Debug("api request failed",
		"method", r.Method,
		"path", r.Path,
		"status", apiErr.Status,
		"kind", apiErr.Kind,
		"message", apiErr.Message,
	)

	suppress := apiErr.Status == http.StatusUnauthorized ||
		(apiErr.Status == http.StatusForbidden && authHandled)
	if !suppress && !r.Silent {
		c.notifier.Error(apiErr.Message)
	}

	return apiErr
}

// recoverSession runs the auth failure handler at most once at a time.
// It returns false when another recovery was already in flight.
func (c *Client) recoverSession(ctx context.Context, warning string) bool {
	if !c.handlingAuthError.CompareAndSwap(false, true) {
		return false
	}
	defer c.handlingAuthError.Store(false)

	c.notifier.Warning(warning)

	if c.onAuthFail == nil {
		return true
	}
	if err := c.onAuthFail.HandleAuthFailure(context.WithoutCancel(ctx)); err != nil {
		c.logger.Warn("auth recovery did not complete", "error", err)
	}
	return true
}

func (c *Client) hasToken(ctx context.Context) bool {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		c.logger.Warn("read token", "error", err)
		return false
	}
	return token != ""
}

// get is a convenience wrapper for GET requests.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query}, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body}, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body}, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path}, nil)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

var errEmptyPath = errors.New("request path is required")
