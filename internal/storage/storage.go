// Package storage persists the client's session and navigation state.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Persisted keys.
const (
	KeyToken    = "token"
	KeyUser     = "user"
	KeyTabViews = "tab-views"
	KeyLocale   = "locale"
)

// DefaultProfile is used when no profile is configured.
const DefaultProfile = "default"

// ErrInvalidProfile is returned for profile names that cannot name a state file.
var ErrInvalidProfile = errors.New("invalid profile name")

// Store is a string key-value store that survives process restarts.
// Get reports ok=false for a missing key; that is not an error.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// GetJSON decodes the JSON value stored under key into v.
// It returns ok=false when the key is absent.
func GetJSON(ctx context.Context, s Store, key string, v any) (bool, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return true, fmt.Errorf("decode %q: %w", key, err)
	}
	return true, nil
}

// SetJSON stores v under key as JSON.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	return s.Set(ctx, key, string(data))
}

// Options selects and configures a Store implementation.
type Options struct {
	// URL selects the backend: empty or file:// for the state file,
	// memory:// for a process-local map, redis:// or rediss:// for Redis.
	URL string
	// Dir holds the state file. Defaults to ~/.erpctl.
	Dir string
	// Profile namespaces state so several logins can coexist.
	Profile string
}

// Open builds the Store described by opts.
func Open(ctx context.Context, opts Options) (Store, error) {
	profile := strings.TrimSpace(opts.Profile)
	if profile == "" {
		profile = DefaultProfile
	}
	if err := ValidateProfile(profile); err != nil {
		return nil, err
	}

	url := strings.TrimSpace(opts.URL)
	switch {
	case strings.HasPrefix(url, "redis://"), strings.HasPrefix(url, "rediss://"):
		return NewRedisStoreFromURL(ctx, url, profile)
	case url == "memory://":
		return NewMemoryStore(), nil
	case url == "" || strings.HasPrefix(url, "file://"):
		dir := strings.TrimPrefix(url, "file://")
		if dir == "" {
			dir = opts.Dir
		}
		if dir == "" {
			var err error
			if dir, err = DefaultDir(); err != nil {
				return nil, err
			}
		}
		return NewFileStore(filepath.Join(dir, stateFileName(profile)))
	default:
		return nil, fmt.Errorf("unsupported store URL %q", url)
	}
}

// DefaultDir returns ~/.erpctl.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, ".erpctl"), nil
}

// ValidateProfile rejects names with path separators or relative path elements.
func ValidateProfile(profile string) error {
	if profile == "." || profile == ".." || strings.ContainsAny(profile, `/\`) || strings.ContainsRune(profile, 0) {
		return fmt.Errorf("%w %q: must not contain path separators", ErrInvalidProfile, profile)
	}
	return nil
}

func stateFileName(profile string) string {
	if profile == DefaultProfile {
		return "state.json"
	}
	return "state." + profile + ".json"
}
