package sdk

import "context"

// AuthFailureHandler is invoked when a response proves the current session stale
// (401, or 403 while a token is held). Implementations log the user out and
// navigate to the login route. The client never depends on the session store directly.
type AuthFailureHandler interface {
	HandleAuthFailure(ctx context.Context) error
}

// AuthFailureHandlerFunc adapts a function to AuthFailureHandler.
type AuthFailureHandlerFunc func(ctx context.Context) error

// HandleAuthFailure implements AuthFailureHandler.
func (f AuthFailureHandlerFunc) HandleAuthFailure(ctx context.Context) error {
	return f(ctx)
}

// TokenReader yields the bearer token to attach to outgoing requests.
// An empty token with a nil error means "not logged in".
type TokenReader interface {
	Token(ctx context.Context) (string, error)
}

// TokenReaderFunc adapts a function to TokenReader.
type TokenReaderFunc func(ctx context.Context) (string, error)

// Token implements TokenReader.
func (f TokenReaderFunc) Token(ctx context.Context) (string, error) {
	return f(ctx)
}

// StaticToken is a fixed token, useful for scripts and tests.
type StaticToken string

// Token implements TokenReader.
func (t StaticToken) Token(context.Context) (string, error) {
	return string(t), nil
}
