package sdk

import "fmt"

// MessageKey identifies a user-facing message emitted by the request pipeline.
type MessageKey string

const (
	MsgRequestFailed  MessageKey = "request.failed"
	MsgBadRequest     MessageKey = "request.badRequest"
	MsgSessionExpired MessageKey = "auth.sessionExpired"
	MsgNoPermission   MessageKey = "common.noPermission"
	MsgNotFound       MessageKey = "request.notFound"
	MsgServerError    MessageKey = "request.serverError"
	MsgStatusFailed   MessageKey = "request.statusFailed"
	MsgTimeout        MessageKey = "request.timeout"
	MsgNetwork        MessageKey = "request.network"
	MsgRequestConfig  MessageKey = "request.config"
	MsgLoginSuccess   MessageKey = "auth.loginSuccess"
)

// Messages resolves message keys to display text.
type Messages interface {
	Text(key MessageKey, args ...any) string
}

// MessageMap is a Messages backed by printf-style templates.
type MessageMap map[MessageKey]string

// Text implements Messages. Unknown keys render as the key itself.
func (m MessageMap) Text(key MessageKey, args ...any) string {
	tmpl, ok := m[key]
	if !ok {
		return string(key)
	}
	if len(args) == 0 {
		return tmpl
	}
	return fmt.Sprintf(tmpl, args...)
}

// DefaultMessages returns the built-in English catalog.
func DefaultMessages() MessageMap {
	return MessageMap{
		MsgRequestFailed:  "Request failed",
		MsgBadRequest:     "Invalid request parameters",
		MsgSessionExpired: "Your session has expired, please log in again",
		MsgNoPermission:   "You do not have permission to access this resource, please contact an administrator",
		MsgNotFound:       "The requested resource does not exist",
		MsgServerError:    "Server error",
		MsgStatusFailed:   "Request failed (%d)",
		MsgTimeout:        "Request timed out, please try again later",
		MsgNetwork:        "Network unreachable, please check your connection",
		MsgRequestConfig:  "Request configuration error",
		MsgLoginSuccess:   "Login successful",
	}
}
