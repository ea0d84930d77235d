package sdk

import (
	"net/http"

	"golang.org/x/oauth2"
)

// bearerTransport reads the token on every round trip so that a token written
// by another component (or another process sharing the store) is picked up
// without rebuilding the client.
type bearerTransport struct {
	base   http.RoundTripper
	tokens TokenReader
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	token, err := t.tokens.Token(req.Context())
	if err != nil || token == "" {
		return t.transport().RoundTrip(req)
	}

	authed := req.Clone(req.Context())
	(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}).SetAuthHeader(authed)
	return t.transport().RoundTrip(authed)
}

func (t *bearerTransport) transport() http.RoundTripper {
	if t.base != nil {
		return t.base
	}
	return http.DefaultTransport
}
