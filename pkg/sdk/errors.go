package sdk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// ErrorKind categorizes a failed API call.
type ErrorKind string

const (
	// KindValidation is a 400 with field-level or request errors.
	KindValidation ErrorKind = "validation"
	// KindUnauthorized is a 401: the session is no longer valid.
	KindUnauthorized ErrorKind = "unauthorized"
	// KindForbidden is a 403.
	KindForbidden ErrorKind = "forbidden"
	// KindNotFound is a 404.
	KindNotFound ErrorKind = "not_found"
	// KindServer is any 5xx.
	KindServer ErrorKind = "server"
	// KindTimeout means the request deadline elapsed before a response arrived.
	KindTimeout ErrorKind = "timeout"
	// KindNetwork means the server could not be reached.
	KindNetwork ErrorKind = "network"
	// KindConfig means the request could not be built.
	KindConfig ErrorKind = "config"
	// KindOther covers remaining non-2xx statuses.
	KindOther ErrorKind = "other"
)

// FieldError is a single validation failure reported by the backend.
type FieldError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// errorBody mirrors the backend's problem-detail error response.
type errorBody struct {
	Type     string       `json:"type,omitempty"`
	Title    string       `json:"title,omitempty"`
	Status   int          `json:"status,omitempty"`
	Detail   string       `json:"detail,omitempty"`
	Instance string       `json:"instance,omitempty"`
	Errors   []FieldError `json:"errors,omitempty"`
}

// APIError is the single error type produced by the request pipeline.
// Message is the human-readable text already shown to the user (unless suppressed).
type APIError struct {
	Status  int
	Kind    ErrorKind
	Message string
	Title   string
	Detail  string
	Errors  []FieldError
	Cause   error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the transport-level cause, if any.
func (e *APIError) Unwrap() error {
	return e.Cause
}

// StatusOf extracts the HTTP status from an error returned by the client.
// It returns 0 for transport failures and non-API errors.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// IsKind reports whether err is an *APIError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

// responseError classifies a non-2xx response.
// Precedence: field errors > status-specific body field > per-status default > fallback.
func (c *Client) responseError(status int, raw []byte) *APIError {
	var body errorBody
	if len(raw) > 0 {
		// Non-JSON error bodies fall through to the per-status defaults.
		_ = json.Unmarshal(raw, &body)
	}

	apiErr := &APIError{
		Status: status,
		Title:  body.Title,
		Detail: body.Detail,
		Errors: body.Errors,
	}

	switch status {
	case http.StatusBadRequest:
		apiErr.Kind = KindValidation
		apiErr.Message = firstNonEmpty(body.Title, c.messages.Text(MsgBadRequest))
	case http.StatusUnauthorized:
		apiErr.Kind = KindUnauthorized
		apiErr.Message = c.messages.Text(MsgSessionExpired)
	case http.StatusForbidden:
		apiErr.Kind = KindForbidden
		apiErr.Message = firstNonEmpty(body.Detail, body.Title, c.messages.Text(MsgNoPermission))
	case http.StatusNotFound:
		apiErr.Kind = KindNotFound
		apiErr.Message = c.messages.Text(MsgNotFound)
	case http.StatusInternalServerError:
		apiErr.Kind = KindServer
		apiErr.Message = firstNonEmpty(body.Title, c.messages.Text(MsgServerError))
	default:
		apiErr.Kind = KindOther
		if status >= 500 {
			apiErr.Kind = KindServer
		}
		apiErr.Message = firstNonEmpty(body.Title, c.messages.Text(MsgStatusFailed, status))
	}

	if joined := joinFieldErrors(body.Errors); joined != "" {
		apiErr.Message = joined
	}
	if apiErr.Message == "" {
		apiErr.Message = c.messages.Text(MsgRequestFailed)
	}
	return apiErr
}

// transportError distinguishes timeouts from connectivity failures.
func (c *Client) transportError(ctx context.Context, err error) *APIError {
	apiErr := &APIError{Cause: err}
	if isTimeout(ctx, err) {
		apiErr.Kind = KindTimeout
		apiErr.Message = c.messages.Text(MsgTimeout)
		return apiErr
	}
	apiErr.Kind = KindNetwork
	apiErr.Message = c.messages.Text(MsgNetwork)
	return apiErr
}

func (c *Client) configError(err error) *APIError {
	return &APIError{
		Kind:    KindConfig,
		Message: c.messages.Text(MsgRequestConfig),
		Cause:   err,
	}
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func joinFieldErrors(fieldErrs []FieldError) string {
	if len(fieldErrs) == 0 {
		return ""
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if strings.TrimSpace(fe.Message) != "" {
			msgs = append(msgs, fe.Message)
		}
	}
	return strings.Join(msgs, ", ")
}
