// Package session holds the authenticated user's token and profile.
package session

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/liyang960414/erp/internal/storage"
	"github.com/liyang960414/erp/pkg/sdk"
)

// AuthAPI is the subset of the ERP API the session needs.
type AuthAPI interface {
	Login(ctx context.Context, req sdk.LoginRequest) (*sdk.LoginResponse, error)
	CurrentUser(ctx context.Context) (*sdk.UserProfile, error)
	Logout(ctx context.Context) error
}

// Store owns the session: token, current profile and the role and
// permission sets derived from it. Remote failures never escape Store;
// they end either in cached data or in a forced logout.
type Store struct {
	kv       storage.Store
	api      AuthAPI
	notifier sdk.Notifier
	messages sdk.Messages
	logger   *slog.Logger

	mu          sync.RWMutex
	token       string
	user        *sdk.UserProfile
	roles       map[string]struct{}
	permissions map[string]struct{}
	loading     bool
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithNotifier sets where the login confirmation is shown.
func WithNotifier(n sdk.Notifier) Option {
	return func(s *Store) { s.notifier = n }
}

// WithMessages sets the catalog for user-facing text.
func WithMessages(m sdk.Messages) Option {
	return func(s *Store) { s.messages = m }
}

// NewStore creates a Store and restores the token from kv.
// The profile is not restored until InitUser or FetchProfile runs.
func NewStore(ctx context.Context, kv storage.Store, api AuthAPI, opts ...Option) *Store {
	s := &Store{
		kv:       kv,
		api:      api,
		notifier: sdk.NopNotifier{},
		messages: sdk.DefaultMessages(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	token, _, err := kv.Get(ctx, storage.KeyToken)
	if err != nil {
		s.logger.Warn("failed to restore token", "error", err)
	}
	s.token = token
	return s
}

// IsAuthenticated reports whether a token is held.
func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}

// Token returns the in-memory token.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the current profile, or nil. Profiles are replaced wholesale
// and never mutated, so the returned value is safe to read.
func (s *Store) User() *sdk.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Loading reports whether a login is in progress.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// HasRole reports whether the current profile holds the named role.
func (s *Store) HasRole(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.roles[name]
	return ok
}

// HasPermission reports whether any role of the current profile grants the named permission.
func (s *Store) HasPermission(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.permissions[name]
	return ok
}

// Login authenticates with the backend. On success the token and a
// provisional profile are stored and persisted before the full profile is
// fetched. It reports whether the user ends up authenticated.
func (s *Store) Login(ctx context.Context, req sdk.LoginRequest) bool {
	s.setLoading(true)
	defer s.setLoading(false)

	resp, err := s.api.Login(ctx, req)
	if err != nil {
		s.logger.Error("login failed", "username", req.Username, "error", err)
		return false
	}

	s.mu.Lock()
	s.token = resp.Token
	s.mu.Unlock()
	s.persist(ctx, storage.KeyToken, resp.Token)

	provisional := resp.ProvisionalProfile()
	s.setUser(provisional)
	s.persistUser(ctx, provisional)

	s.FetchProfile(ctx)

	if !s.IsAuthenticated() {
		return false
	}
	s.notifier.Success(s.messages.Text(sdk.MsgLoginSuccess))
	return true
}

// FetchProfile replaces the profile with the backend's. A 401 or 403 logs
// the user out. Other failures fall back to the persisted profile, and
// log out when there is none or it cannot be decoded.
func (s *Store) FetchProfile(ctx context.Context) {
	if !s.IsAuthenticated() {
		return
	}

	profile, err := s.api.CurrentUser(ctx)
	if err == nil {
		s.setUser(profile)
		s.persistUser(ctx, profile)
		return
	}

	s.logger.Error("failed to fetch user profile", "error", err)
	switch sdk.StatusOf(err) {
	case http.StatusUnauthorized, http.StatusForbidden:
		s.Logout(ctx)
		return
	}

	var cached sdk.UserProfile
	ok, err := storage.GetJSON(ctx, s.kv, storage.KeyUser, &cached)
	if err != nil {
		s.logger.Error("failed to read cached user profile", "error", err)
		s.Logout(ctx)
		return
	}
	if !ok {
		s.Logout(ctx)
		return
	}
	s.setUser(&cached)
}

// Logout clears local state and its persisted copy first, then tells the
// backend. The remote call is best effort.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	s.token = ""
	s.setUserLocked(nil)
	s.mu.Unlock()

	for _, key := range []string{storage.KeyToken, storage.KeyUser} {
		if err := s.kv.Remove(ctx, key); err != nil {
			s.logger.Warn("failed to clear persisted session", "key", key, "error", err)
		}
	}

	if err := s.api.Logout(ctx); err != nil {
		s.logger.Warn("remote logout failed, local session already cleared", "error", err)
	}
}

// InitUser restores the profile from storage when a token is held.
// Decode failures are logged and leave the profile unset.
func (s *Store) InitUser(ctx context.Context) {
	if !s.IsAuthenticated() {
		return
	}

	var cached sdk.UserProfile
	ok, err := storage.GetJSON(ctx, s.kv, storage.KeyUser, &cached)
	if err != nil {
		s.logger.Error("failed to restore user profile", "error", err)
		return
	}
	if ok {
		s.setUser(&cached)
	}
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = v
}

func (s *Store) setUser(u *sdk.UserProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setUserLocked(u)
}

// setUserLocked replaces the profile and rebuilds the capability sets.
func (s *Store) setUserLocked(u *sdk.UserProfile) {
	s.user = u
	s.roles = make(map[string]struct{})
	s.permissions = make(map[string]struct{})
	if u == nil {
		return
	}
	for _, role := range u.Roles {
		s.roles[role.Name] = struct{}{}
		for _, perm := range role.Permissions {
			s.permissions[perm.Name] = struct{}{}
		}
	}
}

func (s *Store) persistUser(ctx context.Context, u *sdk.UserProfile) {
	if err := storage.SetJSON(ctx, s.kv, storage.KeyUser, u); err != nil {
		s.logger.Warn("failed to persist user profile", "error", err)
	}
}

func (s *Store) persist(ctx context.Context, key, value string) {
	if err := s.kv.Set(ctx, key, value); err != nil {
		s.logger.Warn("failed to persist session", "key", key, "error", err)
	}
}
