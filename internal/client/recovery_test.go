package client_test

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/liyang960414/erp/internal/client"
	"github.com/liyang960414/erp/internal/erptest"
	"github.com/liyang960414/erp/internal/router"
	"github.com/liyang960414/erp/internal/session"
	"github.com/liyang960414/erp/internal/storage"
	"github.com/liyang960414/erp/internal/tabs"
	"github.com/liyang960414/erp/pkg/sdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// barrierTransport holds matching requests until n of them are in flight.
type barrierTransport struct {
	suffix  string
	arrived *sync.WaitGroup
}

func (b *barrierTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if strings.HasSuffix(req.URL.Path, b.suffix) {
		b.arrived.Done()
		b.arrived.Wait()
	}
	return http.DefaultTransport.RoundTrip(req)
}

// gatedNavigator counts pushes and blocks the first until released.
type gatedNavigator struct {
	next    client.Navigator
	release chan struct{}
	pushes  atomic.Int32
}

func (g *gatedNavigator) Push(ctx context.Context, path string) (router.Location, error) {
	if g.pushes.Add(1) == 1 {
		<-g.release
	}
	return g.next.Push(ctx, path)
}

type recordingNotifier struct {
	mu       sync.Mutex
	warnings []string
	errors   []string
}

func (n *recordingNotifier) Success(string) {}
func (n *recordingNotifier) Warning(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.warnings = append(n.warnings, msg)
}
func (n *recordingNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

func TestRecovery_ConcurrentUnauthorizedRecoversOnce(t *testing.T) {
	const inFlight = 3
	ctx := context.Background()

	backend := erptest.New(t)
	backend.AddUser("alice", "pw", erptest.UserRole)
	token := backend.IssueToken("alice")
	backend.Revoke("alice")

	kv := storage.NewMemoryStore()
	require.NoError(t, kv.Set(ctx, storage.KeyToken, token))
	require.NoError(t, storage.SetJSON(ctx, kv, storage.KeyTabViews, []tabs.Tab{
		{Path: "/home", Name: "home"},
		{Path: "/orders", Name: "orders", Closable: true},
	}))

	var arrived sync.WaitGroup
	arrived.Add(inFlight)
	notifier := &recordingNotifier{}
	recovery := &client.Recovery{}
	api := sdk.NewClient(backend.APIURL(),
		sdk.WithHTTPClient(&http.Client{Transport: &barrierTransport{suffix: "/users/me", arrived: &arrived}}),
		sdk.WithTokenSource(client.StorageTokens(kv)),
		sdk.WithAuthFailureHandler(recovery),
		sdk.WithNotifier(notifier),
	)
	sess := session.NewStore(ctx, kv, api)
	tabStore := tabs.NewStore(ctx, kv)
	nav := &gatedNavigator{next: router.New(sess, tabStore), release: make(chan struct{})}
	recovery.Bind(sess, tabStore, nav)

	done := make(chan error, inFlight)
	for i := 0; i < inFlight; i++ {
		go func() {
			_, err := api.CurrentUser(ctx)
			done <- err
		}()
	}

	for i := 0; i < inFlight-1; i++ {
		select {
		case err := <-done:
			assert.True(t, sdk.IsKind(err, sdk.KindUnauthorized))
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for concurrent 401s")
		}
	}
	close(nav.release)
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("recovery did not finish")
	}

	assert.Equal(t, int32(1), nav.pushes.Load())
	assert.Equal(t, int32(1), backend.LogoutCalls.Load())
	assert.Len(t, notifier.warnings, 1)
	assert.Empty(t, notifier.errors)

	assert.False(t, sess.IsAuthenticated())
	assert.Nil(t, sess.User())
	assert.Equal(t, []tabs.Tab{{Path: "/home", Title: tabs.DefaultHomeTitle, Name: "home"}}, tabStore.Tabs())
	_, found, err := kv.Get(ctx, storage.KeyToken)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRecovery_Unbound(t *testing.T) {
	err := (&client.Recovery{}).HandleAuthFailure(context.Background())
	assert.Error(t, err)
}
