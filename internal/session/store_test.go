package session_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/liyang960414/erp/internal/erptest"
	"github.com/liyang960414/erp/internal/session"
	"github.com/liyang960414/erp/internal/storage"
	"github.com/liyang960414/erp/pkg/sdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAuthAPI is a scripted AuthAPI.
type fakeAuthAPI struct {
	mu          sync.Mutex
	loginResp   *sdk.LoginResponse
	loginErr    error
	profile     *sdk.UserProfile
	profileErr  error
	logoutErr   error
	logoutCalls int
}

func (f *fakeAuthAPI) Login(_ context.Context, _ sdk.LoginRequest) (*sdk.LoginResponse, error) {
	return f.loginResp, f.loginErr
}

func (f *fakeAuthAPI) CurrentUser(context.Context) (*sdk.UserProfile, error) {
	return f.profile, f.profileErr
}

func (f *fakeAuthAPI) Logout(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.logoutCalls++
	return f.logoutErr
}

type successNotifier struct {
	sdk.NopNotifier
	successes []string
}

func (n *successNotifier) Success(msg string) { n.successes = append(n.successes, msg) }

var adminProfile = &sdk.UserProfile{
	ID:       1,
	Username: "alice",
	Roles: []sdk.Role{{
		ID:          1,
		Name:        "ADMIN",
		Permissions: []sdk.Permission{{ID: 1, Name: "user:write"}},
	}},
}

func seededStore(t *testing.T, token string, user *sdk.UserProfile) *storage.MemoryStore {
	t.Helper()
	kv := storage.NewMemoryStore()
	ctx := context.Background()
	if token != "" {
		require.NoError(t, kv.Set(ctx, storage.KeyToken, token))
	}
	if user != nil {
		require.NoError(t, storage.SetJSON(ctx, kv, storage.KeyUser, user))
	}
	return kv
}

func TestStore_RestoresTokenAtConstruction(t *testing.T) {
	kv := seededStore(t, "abc", nil)
	s := session.NewStore(context.Background(), kv, &fakeAuthAPI{})

	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "abc", s.Token())
	assert.Nil(t, s.User(), "profile waits for InitUser")
}

func TestStore_Login(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	api := &fakeAuthAPI{
		loginResp: &sdk.LoginResponse{Token: "abc", UserID: 1, Username: "alice", Roles: []string{"ADMIN"}},
		profile:   adminProfile,
	}
	notifier := &successNotifier{}
	s := session.NewStore(ctx, kv, api, session.WithNotifier(notifier))

	ok := s.Login(ctx, sdk.LoginRequest{Username: "alice", Password: "pw"})
	require.True(t, ok)
	assert.True(t, s.IsAuthenticated())
	assert.False(t, s.Loading())
	assert.Equal(t, adminProfile, s.User())
	assert.True(t, s.HasPermission("user:write"))
	assert.Equal(t, []string{"Login successful"}, notifier.successes)

	token, found, err := kv.Get(ctx, storage.KeyToken)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "abc", token)

	var persisted sdk.UserProfile
	found, err = storage.GetJSON(ctx, kv, storage.KeyUser, &persisted)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, *adminProfile, persisted)
}

func TestStore_LoginFailureReturnsFalse(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	api := &fakeAuthAPI{loginErr: &sdk.APIError{Status: http.StatusUnauthorized, Kind: sdk.KindUnauthorized}}
	notifier := &successNotifier{}
	s := session.NewStore(ctx, kv, api, session.WithNotifier(notifier))

	assert.False(t, s.Login(ctx, sdk.LoginRequest{Username: "alice", Password: "wrong"}))
	assert.False(t, s.IsAuthenticated())
	assert.False(t, s.Loading())
	assert.Empty(t, notifier.successes)

	_, found, err := kv.Get(ctx, storage.KeyToken)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStore_LoginKeepsProvisionalProfileWhenFetchFails(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryStore()
	api := &fakeAuthAPI{
		loginResp:  &sdk.LoginResponse{Token: "abc", UserID: 9, Username: "bob", Roles: []string{"USER"}},
		profileErr: &sdk.APIError{Status: http.StatusInternalServerError, Kind: sdk.KindServer},
	}
	s := session.NewStore(ctx, kv, api)

	require.True(t, s.Login(ctx, sdk.LoginRequest{Username: "bob", Password: "pw"}))
	require.NotNil(t, s.User())
	assert.Equal(t, int64(9), s.User().ID)
	assert.Equal(t, []sdk.Role{{ID: 0, Name: "USER", Description: ""}}, s.User().Roles)
	assert.True(t, s.HasRole("USER"))
}

func TestStore_FetchProfile(t *testing.T) {
	tests := []struct {
		name        string
		cached      *sdk.UserProfile
		corrupt     bool
		profileErr  error
		wantAuthed  bool
		wantUser    *sdk.UserProfile
		wantLogouts int
	}{
		{
			name:       "success replaces profile",
			wantAuthed: true,
			wantUser:   adminProfile,
		},
		{
			name:        "401 logs out",
			cached:      adminProfile,
			profileErr:  &sdk.APIError{Status: http.StatusUnauthorized},
			wantLogouts: 1,
		},
		{
			name:        "403 logs out",
			cached:      adminProfile,
			profileErr:  &sdk.APIError{Status: http.StatusForbidden},
			wantLogouts: 1,
		},
		{
			name:       "server error falls back to cache",
			cached:     adminProfile,
			profileErr: &sdk.APIError{Status: http.StatusInternalServerError},
			wantAuthed: true,
			wantUser:   adminProfile,
		},
		{
			name:       "network error falls back to cache",
			cached:     adminProfile,
			profileErr: &sdk.APIError{Kind: sdk.KindNetwork, Cause: errors.New("dial tcp: refused")},
			wantAuthed: true,
			wantUser:   adminProfile,
		},
		{
			name:        "no cache logs out",
			profileErr:  &sdk.APIError{Status: http.StatusInternalServerError},
			wantLogouts: 1,
		},
		{
			name:        "corrupt cache logs out",
			corrupt:     true,
			profileErr:  &sdk.APIError{Status: http.StatusInternalServerError},
			wantLogouts: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			kv := seededStore(t, "abc", tt.cached)
			if tt.corrupt {
				require.NoError(t, kv.Set(ctx, storage.KeyUser, "{broken"))
			}
			api := &fakeAuthAPI{profile: adminProfile, profileErr: tt.profileErr}
			if tt.profileErr != nil {
				api.profile = nil
			}
			s := session.NewStore(ctx, kv, api)

			s.FetchProfile(ctx)

			assert.Equal(t, tt.wantAuthed, s.IsAuthenticated())
			assert.Equal(t, tt.wantUser, s.User())
			assert.Equal(t, tt.wantLogouts, api.logoutCalls)
		})
	}
}

func TestStore_FetchProfileWithoutTokenIsNoop(t *testing.T) {
	api := &fakeAuthAPI{profileErr: errors.New("must not be called")}
	s := session.NewStore(context.Background(), storage.NewMemoryStore(), api)
	s.FetchProfile(context.Background())
	assert.Nil(t, s.User())
	assert.Zero(t, api.logoutCalls)
}

func TestStore_LogoutClearsStateEvenWhenRemoteFails(t *testing.T) {
	ctx := context.Background()
	kv := seededStore(t, "abc", adminProfile)
	api := &fakeAuthAPI{logoutErr: &sdk.APIError{Kind: sdk.KindNetwork}}
	s := session.NewStore(ctx, kv, api)
	s.InitUser(ctx)
	require.True(t, s.HasRole("ADMIN"))

	s.Logout(ctx)

	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.Token())
	assert.Nil(t, s.User())
	assert.False(t, s.HasRole("ADMIN"))
	assert.False(t, s.HasPermission("user:write"))
	assert.Equal(t, 1, api.logoutCalls)

	for _, key := range []string{storage.KeyToken, storage.KeyUser} {
		_, found, err := kv.Get(ctx, key)
		require.NoError(t, err)
		assert.False(t, found, key)
	}
}

func TestStore_InitUser(t *testing.T) {
	ctx := context.Background()

	t.Run("restores with token", func(t *testing.T) {
		s := session.NewStore(ctx, seededStore(t, "abc", adminProfile), &fakeAuthAPI{})
		s.InitUser(ctx)
		s.InitUser(ctx)
		assert.Equal(t, adminProfile, s.User())
		assert.True(t, s.HasRole("ADMIN"))
	})

	t.Run("ignores cached user without token", func(t *testing.T) {
		s := session.NewStore(ctx, seededStore(t, "", adminProfile), &fakeAuthAPI{})
		s.InitUser(ctx)
		assert.Nil(t, s.User())
	})

	t.Run("corrupt cache leaves profile unset", func(t *testing.T) {
		kv := seededStore(t, "abc", nil)
		require.NoError(t, kv.Set(ctx, storage.KeyUser, "not json"))
		s := session.NewStore(ctx, kv, &fakeAuthAPI{})
		s.InitUser(ctx)
		assert.Nil(t, s.User())
		assert.True(t, s.IsAuthenticated())
	})
}

func TestStore_PredicatesWithoutProfile(t *testing.T) {
	s := session.NewStore(context.Background(), storage.NewMemoryStore(), &fakeAuthAPI{})
	assert.False(t, s.HasRole("ADMIN"))
	assert.False(t, s.HasPermission("user:read"))
}

func TestStore_LoginAgainstBackend(t *testing.T) {
	ctx := context.Background()
	backend := erptest.New(t)
	backend.AddUser("alice", "pw", erptest.AdminRole)

	kv := storage.NewMemoryStore()
	client := sdk.NewClient(backend.APIURL(), sdk.WithTokenSource(sdk.TokenReaderFunc(func(ctx context.Context) (string, error) {
		token, _, err := kv.Get(ctx, storage.KeyToken)
		return token, err
	})))
	s := session.NewStore(ctx, kv, client)

	require.True(t, s.Login(ctx, sdk.LoginRequest{Username: "alice", Password: "pw"}))
	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, int32(1), backend.ProfileCalls.Load(), "profile fetched with the stored token")
	require.NotNil(t, s.User())
	assert.Equal(t, "alice@example.com", s.User().Email)
	assert.True(t, s.HasPermission("audit:read"))

	var persisted sdk.UserProfile
	found, err := storage.GetJSON(ctx, kv, storage.KeyUser, &persisted)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, *s.User(), persisted)

	backend.FailLogout.Store(true)
	s.Logout(ctx)
	assert.False(t, s.IsAuthenticated())
	assert.Equal(t, int32(1), backend.LogoutCalls.Load())
}
