// Package router resolves navigation targets and runs the auth and role
// guards around every navigation.
package router

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"sync"

	"github.com/liyang960414/erp/internal/tabs"
	"github.com/liyang960414/erp/pkg/sdk"
)

// maxRedirects bounds guard redirect chains.
const maxRedirects = 8

var (
	ErrRouteNotFound = errors.New("route not found")
	ErrRedirectLoop  = errors.New("too many redirects")
)

// Session is what the guards need to know about the user.
type Session interface {
	IsAuthenticated() bool
	User() *sdk.UserProfile
	InitUser(ctx context.Context)
	HasRole(name string) bool
}

// Tabs receives completed navigations.
type Tabs interface {
	AddTab(ctx context.Context, route tabs.Route)
	ClearTabs(ctx context.Context)
}

// Location is the outcome of a navigation.
type Location struct {
	// Requested is the path passed to Push.
	Requested string
	// Path is where navigation ended after redirects.
	Path  string
	Route Route
}

// Redirected reports whether the guards sent navigation elsewhere.
func (l Location) Redirected() bool {
	return l.Requested != l.Path
}

// Router navigates between routes.
type Router struct {
	routes   map[string]Route
	order    []Route
	session  Session
	tabs     Tabs
	notifier sdk.Notifier
	messages func() sdk.Messages
	logger   *slog.Logger

	mu      sync.RWMutex
	current Location
}

// Option configures a Router.
type Option func(*Router)

// WithRoutes replaces the default route table.
func WithRoutes(routes []Route) Option {
	return func(r *Router) { r.setRoutes(routes) }
}

// WithNotifier sets where guard notices are shown.
func WithNotifier(n sdk.Notifier) Option {
	return func(r *Router) { r.notifier = n }
}

// WithMessageLoader supplies the localized catalog. The loader runs at most
// once, on the first navigation that needs a message.
func WithMessageLoader(load func() sdk.Messages) Option {
	return func(r *Router) { r.messages = sync.OnceValue(load) }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) { r.logger = logger }
}

// New creates a Router over session and tab state.
func New(session Session, tabStore Tabs, opts ...Option) *Router {
	r := &Router{
		session:  session,
		tabs:     tabStore,
		notifier: sdk.NopNotifier{},
		messages: sync.OnceValue(func() sdk.Messages { return sdk.DefaultMessages() }),
		logger:   slog.Default(),
	}
	r.setRoutes(DefaultRoutes())
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Routes returns the route table in declaration order.
func (r *Router) Routes() []Route {
	return append([]Route(nil), r.order...)
}

// Resolve looks up the route for p without running guards.
func (r *Router) Resolve(p string) (Route, bool) {
	route, ok := r.routes[normalize(p)]
	return route, ok
}

// Current returns the last completed navigation.
func (r *Router) Current() Location {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Title returns the localized title of route.
func (r *Router) Title(route Route) string {
	if route.Meta.Title == "" {
		return route.Name
	}
	return r.messages().Text(sdk.MessageKey(route.Meta.Title))
}

// Push navigates to p. Guards may redirect; redirects run the guards again.
func (r *Router) Push(ctx context.Context, p string) (Location, error) {
	requested := normalize(p)
	target := requested

	for hop := 0; hop <= maxRedirects; hop++ {
		route, ok := r.routes[target]
		if !ok {
			return Location{}, fmt.Errorf("%w: %s", ErrRouteNotFound, target)
		}
		if route.Redirect != "" {
			target = normalize(route.Redirect)
			continue
		}

		if next, allowed := r.beforeEach(ctx, route); !allowed {
			r.logger.Debug("navigation redirected", "from", route.Path, "to", next)
			target = next
			continue
		}

		r.afterEach(ctx, route)
		loc := Location{Requested: requested, Path: route.Path, Route: route}
		r.mu.Lock()
		r.current = loc
		r.mu.Unlock()
		return loc, nil
	}
	return Location{}, fmt.Errorf("%w: navigating to %s", ErrRedirectLoop, requested)
}

func (r *Router) setRoutes(routes []Route) {
	r.routes = make(map[string]Route, len(routes))
	r.order = make([]Route, 0, len(routes))
	for _, route := range routes {
		route.Path = normalize(route.Path)
		r.routes[route.Path] = route
		r.order = append(r.order, route)
	}
}

func normalize(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return RootPath
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}
