package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/liyang960414/erp/internal/router"
)

// Logouter ends the session.
type Logouter interface {
	Logout(ctx context.Context)
}

// TabResetter resets navigation tabs.
type TabResetter interface {
	ClearTabs(ctx context.Context)
}

// Navigator moves to a route.
type Navigator interface {
	Push(ctx context.Context, path string) (router.Location, error)
}

var errRecoveryUnbound = errors.New("auth recovery is not bound to a session")

// Recovery handles stale sessions reported by the API client: it logs
// out, resets the tabs and navigates to the login route.
type Recovery struct {
	logger *slog.Logger

	mu        sync.RWMutex
	session   Logouter
	tabs      TabResetter
	navigator Navigator
}

// NewRecovery returns a Recovery bound to the given components.
func NewRecovery(session Logouter, tabs TabResetter, navigator Navigator, logger *slog.Logger) *Recovery {
	r := &Recovery{logger: logger}
	r.Bind(session, tabs, navigator)
	return r
}

// Bind attaches the components recovery drives.
func (r *Recovery) Bind(session Logouter, tabs TabResetter, navigator Navigator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.session = session
	r.tabs = tabs
	r.navigator = navigator
}

// HandleAuthFailure implements sdk.AuthFailureHandler.
func (r *Recovery) HandleAuthFailure(ctx context.Context) error {
	r.mu.RLock()
	session, tabs, navigator := r.session, r.tabs, r.navigator
	r.mu.RUnlock()

	if session == nil || navigator == nil {
		return errRecoveryUnbound
	}

	session.Logout(ctx)
	if tabs != nil {
		tabs.ClearTabs(ctx)
	}

	loc, err := navigator.Push(ctx, router.LoginPath)
	if err != nil {
		return fmt.Errorf("navigate to login: %w", err)
	}
	if r.logger != nil {
		r.logger.Debug("session recovered", "location", loc.Path)
	}
	return nil
}
