package sdk

import (
	"net/url"
	"strings"
)

const (
	// ProductionAPIPath is the API prefix when the client is served alongside the backend.
	ProductionAPIPath = "/api"
	// DevelopmentBaseURL is the default API location for local development.
	DevelopmentBaseURL = "http://localhost:8080/api"
)

// ResolveBaseURL picks the API base URL.
// Resolution order: explicit override, then the production relative path joined
// to origin, then the development default.
func ResolveBaseURL(override string, production bool, origin string) string {
	if v := strings.TrimSpace(override); v != "" {
		return strings.TrimRight(v, "/")
	}
	if production {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			return ProductionAPIPath
		}
		joined, err := url.JoinPath(origin, ProductionAPIPath)
		if err != nil {
			return ProductionAPIPath
		}
		return joined
	}
	return DevelopmentBaseURL
}
