// Package tabs tracks the routes a user has opened, in display order.
package tabs

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/liyang960414/erp/internal/storage"
)

const (
	// HomePath is the pinned first tab.
	HomePath = "/home"
	// HomeName is the route name of the home tab.
	HomeName = "home"
	// DefaultHomeTitle labels the home tab when no translation is supplied.
	DefaultHomeTitle = "首页"
)

// Tab is one opened route.
type Tab struct {
	Path     string `json:"path"`
	Title    string `json:"title"`
	Name     string `json:"name"`
	Closable bool   `json:"closable"`
}

// Route describes a navigation target to open as a tab.
type Route struct {
	Path  string
	Name  string
	Title string
}

// Store holds the tab list and the active tab. The home tab is always
// present, never closable, and first whenever the list is rebuilt.
// Every mutation persists the full list; the active pointer is not persisted.
type Store struct {
	kv        storage.Store
	logger    *slog.Logger
	homeTitle string

	mu     sync.RWMutex
	tabs   []Tab
	active string
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithHomeTitle sets the label of a home tab created by the store.
func WithHomeTitle(title string) Option {
	return func(s *Store) {
		if title != "" {
			s.homeTitle = title
		}
	}
}

// NewStore loads the persisted tab list, repairing it so home is present,
// first and pinned, and duplicate paths are dropped.
func NewStore(ctx context.Context, kv storage.Store, opts ...Option) *Store {
	s := &Store{
		kv:        kv,
		logger:    slog.Default(),
		homeTitle: DefaultHomeTitle,
		active:    HomePath,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.tabs = s.load(ctx)
	return s
}

// Tabs returns a copy of the tab list in display order.
func (s *Store) Tabs() []Tab {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.tabs)
}

// Active returns the path of the highlighted tab.
func (s *Store) Active() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// HasTabs reports whether any tab is open.
func (s *Store) HasTabs() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tabs) > 0
}

// AddTab opens route as a tab, or activates it when already open.
// A home tab is always placed first; other tabs append.
func (s *Store) AddTab(ctx context.Context, route Route) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexLocked(route.Path) >= 0 {
		s.active = route.Path
		s.persistLocked(ctx)
		return
	}

	name := route.Name
	if name == "" {
		name = route.Path
	}
	title := route.Title
	if title == "" {
		title = name
	}
	tab := Tab{Path: route.Path, Title: title, Name: name, Closable: route.Path != HomePath}

	if route.Path == HomePath {
		s.tabs = slices.Insert(s.tabs, 0, tab)
	} else {
		s.tabs = append(s.tabs, tab)
	}
	s.active = route.Path
	s.persistLocked(ctx)
}

// RemoveTab closes the tab at path. Missing or pinned tabs are left alone.
// Closing the active tab activates the tab that takes its index, or the one
// before it.
func (s *Store) RemoveTab(ctx context.Context, path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(path)
	if idx < 0 || !s.tabs[idx].Closable {
		return
	}
	s.tabs = slices.Delete(s.tabs, idx, idx+1)

	switch {
	case len(s.tabs) == 0:
		s.tabs = []Tab{s.homeTab()}
		s.active = HomePath
	case s.active == path:
		if idx < len(s.tabs) {
			s.active = s.tabs[idx].Path
		} else {
			s.active = s.tabs[idx-1].Path
		}
	}
	s.persistLocked(ctx)
}

// CloseOtherTabs keeps only path and pinned tabs, and activates path.
func (s *Store) CloseOtherTabs(ctx context.Context, path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tabs = slices.DeleteFunc(s.tabs, func(t Tab) bool {
		return t.Path != path && t.Closable
	})
	s.ensureHomeLocked()
	s.active = path
	if s.indexLocked(path) < 0 {
		s.active = HomePath
	}
	s.persistLocked(ctx)
}

// CloseAllTabs keeps only pinned tabs and activates home.
func (s *Store) CloseAllTabs(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tabs = slices.DeleteFunc(s.tabs, func(t Tab) bool { return t.Closable })
	s.ensureHomeLocked()
	s.active = HomePath
	s.persistLocked(ctx)
}

// ClearTabs resets to the single home tab. Used on logout.
func (s *Store) ClearTabs(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tabs = []Tab{s.homeTab()}
	s.active = HomePath
	s.persistLocked(ctx)
}

// InitTabs ensures home exists and the active pointer names an open tab.
func (s *Store) InitTabs(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexLocked(HomePath) < 0 {
		s.tabs = slices.Insert(s.tabs, 0, s.homeTab())
		s.persistLocked(ctx)
	}
	if s.active == "" || s.indexLocked(s.active) < 0 {
		s.active = HomePath
	}
}

// SetActiveTab highlights path without persisting anything.
// Unknown paths fall back to home.
func (s *Store) SetActiveTab(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexLocked(path) < 0 {
		path = HomePath
	}
	s.active = path
}

// Retitle relabels the open tabs, e.g. after the display language changes.
// title returns the new title for a path, or false to keep the current one.
func (s *Store) Retitle(ctx context.Context, title func(path string) (string, bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tabs {
		t, ok := title(s.tabs[i].Path)
		if !ok || t == "" {
			continue
		}
		s.tabs[i].Title = t
		if s.tabs[i].Path == HomePath {
			s.homeTitle = t
		}
	}
	s.persistLocked(ctx)
}

func (s *Store) load(ctx context.Context) []Tab {
	var stored []Tab
	if _, err := storage.GetJSON(ctx, s.kv, storage.KeyTabViews, &stored); err != nil {
		s.logger.Error("failed to load tabs", "error", err)
		stored = nil
	}
	return s.repair(stored)
}

// repair puts home first and pinned, drops duplicate and empty paths.
func (s *Store) repair(stored []Tab) []Tab {
	home := s.homeTab()
	out := []Tab{home}
	seen := map[string]bool{HomePath: true}
	for _, t := range stored {
		if t.Path == "" || seen[t.Path] {
			continue
		}
		seen[t.Path] = true
		out = append(out, t)
	}
	return out
}

func (s *Store) homeTab() Tab {
	return Tab{Path: HomePath, Title: s.homeTitle, Name: HomeName, Closable: false}
}

func (s *Store) ensureHomeLocked() {
	if s.indexLocked(HomePath) < 0 {
		s.tabs = slices.Insert(s.tabs, 0, s.homeTab())
	}
}

func (s *Store) indexLocked(path string) int {
	return slices.IndexFunc(s.tabs, func(t Tab) bool { return t.Path == path })
}

func (s *Store) persistLocked(ctx context.Context) {
	if err := storage.SetJSON(ctx, s.kv, storage.KeyTabViews, s.tabs); err != nil {
		s.logger.Warn("failed to persist tabs", "error", err)
	}
}
