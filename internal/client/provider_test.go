package client_test

import (
	"context"
	"testing"

	"github.com/liyang960414/erp/internal/client"
	"github.com/liyang960414/erp/internal/erptest"
	"github.com/liyang960414/erp/internal/router"
	"github.com/liyang960414/erp/internal/storage"
	"github.com/liyang960414/erp/pkg/sdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProvider(t *testing.T, backend *erptest.Server, opts client.Options) (*client.Provider, *recordingNotifier) {
	t.Helper()
	notifier := &recordingNotifier{}
	opts.BaseURL = backend.APIURL()
	opts.Notifier = notifier
	if opts.StoreURL == "" && opts.Token == "" {
		opts.StoreURL = "file://" + t.TempDir()
	}
	if opts.Locale == "" {
		opts.Locale = "en"
	}
	p := client.NewProvider(opts)
	t.Cleanup(func() { _ = p.Close() })
	return p, notifier
}

func TestProvider_LoginNavigateLogout(t *testing.T) {
	ctx := context.Background()
	backend := erptest.New(t)
	backend.AddUser("alice", "pw", erptest.AdminRole)

	p, _ := newProvider(t, backend, client.Options{})
	app, err := p.App(ctx)
	require.NoError(t, err)

	again, err := p.App(ctx)
	require.NoError(t, err)
	assert.Same(t, app, again)

	require.True(t, app.Session.Login(ctx, sdk.LoginRequest{Username: "alice", Password: "pw"}))

	loc, err := app.Router.Push(ctx, "/system/roles")
	require.NoError(t, err)
	assert.Equal(t, "/system/roles", loc.Path)
	assert.Equal(t, "Roles", app.Tabs.Tabs()[1].Title)

	require.NoError(t, p.Logout(ctx))
	assert.False(t, app.Session.IsAuthenticated())
	assert.Len(t, app.Tabs.Tabs(), 1)
	assert.Equal(t, router.LoginPath, app.Router.Current().Path)
}

func TestProvider_SessionSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	backend := erptest.New(t)
	backend.AddUser("alice", "pw", erptest.UserRole)
	storeURL := "file://" + t.TempDir()

	first, _ := newProvider(t, backend, client.Options{StoreURL: storeURL})
	app, err := first.App(ctx)
	require.NoError(t, err)
	require.True(t, app.Session.Login(ctx, sdk.LoginRequest{Username: "alice", Password: "pw"}))
	_, err = app.Router.Push(ctx, "/orders")
	require.NoError(t, err)

	second, _ := newProvider(t, backend, client.Options{StoreURL: storeURL})
	restored, err := second.App(ctx)
	require.NoError(t, err)
	assert.True(t, restored.Session.IsAuthenticated())
	assert.Equal(t, []string{"/home", "/orders"}, []string{restored.Tabs.Tabs()[0].Path, restored.Tabs.Tabs()[1].Path})

	me, err := restored.API.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice", me.Username)
}

func TestProvider_EphemeralToken(t *testing.T) {
	ctx := context.Background()
	backend := erptest.New(t)
	backend.AddUser("bob", "pw", erptest.UserRole)

	p, _ := newProvider(t, backend, client.Options{Token: backend.IssueToken("bob")})
	api, err := p.SDKClient(ctx)
	require.NoError(t, err)

	me, err := api.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, "bob", me.Username)

	app, err := p.App(ctx)
	require.NoError(t, err)
	assert.IsType(t, &storage.MemoryStore{}, app.Store)
}

func TestProvider_ForbiddenWithTokenLogsOut(t *testing.T) {
	ctx := context.Background()
	backend := erptest.New(t)
	backend.AddUser("bob", "pw", erptest.UserRole)

	p, notifier := newProvider(t, backend, client.Options{})
	app, err := p.App(ctx)
	require.NoError(t, err)
	require.True(t, app.Session.Login(ctx, sdk.LoginRequest{Username: "bob", Password: "pw"}))

	_, err = app.API.ListRoles(ctx)
	assert.True(t, sdk.IsKind(err, sdk.KindForbidden))
	assert.False(t, app.Session.IsAuthenticated())
	assert.Equal(t, []string{"Access denied"}, notifier.warnings)
	assert.Empty(t, notifier.errors)
	assert.Equal(t, router.LoginPath, app.Router.Current().Path)
}

func TestProvider_BadStoreURL(t *testing.T) {
	backend := erptest.New(t)
	p, _ := newProvider(t, backend, client.Options{StoreURL: "ftp://nowhere"})
	_, err := p.App(context.Background())
	assert.ErrorContains(t, err, "unable to open session storage")
}
