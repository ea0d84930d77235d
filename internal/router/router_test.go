package router_test

import (
	"context"
	"errors"
	"testing"

	"github.com/liyang960414/erp/internal/i18n"
	"github.com/liyang960414/erp/internal/router"
	"github.com/liyang960414/erp/internal/session"
	"github.com/liyang960414/erp/internal/storage"
	"github.com/liyang960414/erp/internal/tabs"
	"github.com/liyang960414/erp/pkg/sdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopAuthAPI struct{}

func (nopAuthAPI) Login(context.Context, sdk.LoginRequest) (*sdk.LoginResponse, error) {
	return nil, errors.New("not implemented")
}
func (nopAuthAPI) CurrentUser(context.Context) (*sdk.UserProfile, error) {
	return nil, errors.New("not implemented")
}
func (nopAuthAPI) Logout(context.Context) error { return nil }

type errorNotifier struct {
	sdk.NopNotifier
	errors []string
}

func (n *errorNotifier) Error(msg string) { n.errors = append(n.errors, msg) }

type fixture struct {
	router   *router.Router
	session  *session.Store
	tabs     *tabs.Store
	notifier *errorNotifier
	loads    *int
}

// newFixture builds a router over a session restored from storage.
// An empty token means logged out.
func newFixture(t *testing.T, token string, roles ...string) fixture {
	t.Helper()
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	if token != "" {
		require.NoError(t, kv.Set(ctx, storage.KeyToken, token))
		profile := sdk.UserProfile{ID: 1, Username: "alice"}
		for _, name := range roles {
			profile.Roles = append(profile.Roles, sdk.Role{Name: name})
		}
		require.NoError(t, storage.SetJSON(ctx, kv, storage.KeyUser, profile))
	}

	sess := session.NewStore(ctx, kv, nopAuthAPI{})
	tabStore := tabs.NewStore(ctx, kv)
	notifier := &errorNotifier{}
	loads := 0
	r := router.New(sess, tabStore,
		router.WithNotifier(notifier),
		router.WithMessageLoader(func() sdk.Messages {
			loads++
			return i18n.NewTranslator(i18n.ZhCN)
		}),
	)
	return fixture{router: r, session: sess, tabs: tabStore, notifier: notifier, loads: &loads}
}

func tabPaths(s *tabs.Store) []string {
	var out []string
	for _, t := range s.Tabs() {
		out = append(out, t.Path)
	}
	return out
}

func TestPush_AllowedRouteAddsTab(t *testing.T) {
	f := newFixture(t, "abc", "USER")

	loc, err := f.router.Push(context.Background(), "/orders")
	require.NoError(t, err)
	assert.Equal(t, "/orders", loc.Path)
	assert.False(t, loc.Redirected())
	assert.Equal(t, []string{"/home", "/orders"}, tabPaths(f.tabs))
	assert.Equal(t, "/orders", f.tabs.Active())
	assert.Equal(t, "订单管理", f.tabs.Tabs()[1].Title)
	assert.Equal(t, loc, f.router.Current())
}

func TestPush_GuardRestoresUserFromStorage(t *testing.T) {
	f := newFixture(t, "abc", "ADMIN")
	require.Nil(t, f.session.User())

	loc, err := f.router.Push(context.Background(), "/system/roles")
	require.NoError(t, err)
	assert.Equal(t, "/system/roles", loc.Path)
	require.NotNil(t, f.session.User())
	assert.Equal(t, "alice", f.session.User().Username)
}

func TestPush_RoleMismatchRedirectsHome(t *testing.T) {
	f := newFixture(t, "abc", "USER")
	ctx := context.Background()

	loc, err := f.router.Push(ctx, "/system/roles")
	require.NoError(t, err)
	assert.Equal(t, "/home", loc.Path)
	assert.True(t, loc.Redirected())
	assert.NotContains(t, tabPaths(f.tabs), "/system/roles")
	assert.Equal(t, []string{"没有权限访问，请联系管理员"}, f.notifier.errors)

	_, err = f.router.Push(ctx, "/system/audit-logs")
	require.NoError(t, err)
	assert.Equal(t, 1, *f.loads, "catalog loaded once, on first use")
}

func TestPush_RoleCheckIsAnyOf(t *testing.T) {
	f := newFixture(t, "abc", "AUDITOR")
	routes := append(router.DefaultRoutes(), router.Route{
		Path: "/reports",
		Name: "reports",
		Meta: router.Meta{RequiresAuth: true, Roles: []string{"ADMIN", "AUDITOR"}},
	})
	r := router.New(f.session, f.tabs, router.WithRoutes(routes))

	loc, err := r.Push(context.Background(), "/reports")
	require.NoError(t, err)
	assert.Equal(t, "/reports", loc.Path)
	assert.Equal(t, "reports", f.tabs.Tabs()[1].Title, "untitled routes use their name")
}

func TestPush_UnauthenticatedGoesToLoginAndClearsTabs(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	require.NoError(t, storage.SetJSON(ctx, kv, storage.KeyTabViews, []tabs.Tab{
		{Path: "/home", Name: "home"},
		{Path: "/orders", Name: "orders", Closable: true},
	}))
	sess := session.NewStore(ctx, kv, nopAuthAPI{})
	tabStore := tabs.NewStore(ctx, kv)
	r := router.New(sess, tabStore)
	require.Equal(t, []string{"/home", "/orders"}, tabPaths(tabStore))

	loc, err := r.Push(ctx, "/orders")
	require.NoError(t, err)
	assert.Equal(t, router.LoginPath, loc.Path)
	assert.Equal(t, []string{"/home"}, tabPaths(tabStore))
}

func TestPush_LoginWhileAuthenticatedGoesHome(t *testing.T) {
	f := newFixture(t, "abc", "USER")

	loc, err := f.router.Push(context.Background(), "/login")
	require.NoError(t, err)
	assert.Equal(t, "/home", loc.Path)
	assert.Equal(t, "/login", loc.Requested)
}

func TestPush_LoginDoesNotAddTab(t *testing.T) {
	f := newFixture(t, "")

	loc, err := f.router.Push(context.Background(), "/login")
	require.NoError(t, err)
	assert.Equal(t, "/login", loc.Path)
	assert.Equal(t, []string{"/home"}, tabPaths(f.tabs))
}

func TestPush_RootRedirectsHome(t *testing.T) {
	f := newFixture(t, "abc")

	for _, p := range []string{"/", "", "home", "/home/"} {
		loc, err := f.router.Push(context.Background(), p)
		require.NoError(t, err, p)
		assert.Equal(t, "/home", loc.Path, p)
	}
}

func TestPush_UnknownRoute(t *testing.T) {
	f := newFixture(t, "abc")
	_, err := f.router.Push(context.Background(), "/nope")
	assert.ErrorIs(t, err, router.ErrRouteNotFound)
}

func TestPush_RedirectLoop(t *testing.T) {
	f := newFixture(t, "abc", "USER")
	routes := []router.Route{
		{Path: "/login", Name: "login"},
		{Path: "/home", Name: "home", Meta: router.Meta{RequiresAuth: true, Roles: []string{"ADMIN"}}},
	}
	r := router.New(f.session, f.tabs, router.WithRoutes(routes))

	_, err := r.Push(context.Background(), "/home")
	assert.ErrorIs(t, err, router.ErrRedirectLoop)
}
