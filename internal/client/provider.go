// Package client assembles the session, navigation and API client for a command.
package client

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/liyang960414/erp/internal/i18n"
	"github.com/liyang960414/erp/internal/notify"
	"github.com/liyang960414/erp/internal/router"
	"github.com/liyang960414/erp/internal/session"
	"github.com/liyang960414/erp/internal/storage"
	"github.com/liyang960414/erp/internal/tabs"
	"github.com/liyang960414/erp/pkg/sdk"
)

// Options configures a Provider.
type Options struct {
	BaseURL  string
	StoreURL string
	StateDir string
	Profile  string
	Timeout  time.Duration
	Locale   string
	// Token is an ephemeral bearer token that bypasses stored state.
	Token string

	HTTPClient *http.Client
	Notifier   sdk.Notifier
	Logger     *slog.Logger
}

// App is the wired set of client components.
type App struct {
	Store    storage.Store
	Locale   *i18n.Store
	API      *sdk.Client
	Session  *session.Store
	Tabs     *tabs.Store
	Router   *router.Router
	Notifier sdk.Notifier
	Recovery *Recovery
}

// Provider lazily builds the App the first time a command needs it.
type Provider struct {
	opts Options

	appOnce sync.Once
	app     *App
	appErr  error
}

// NewProvider constructs a Provider. Nothing is opened until App is called.
func NewProvider(opts Options) *Provider {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Notifier == nil {
		opts.Notifier = notify.NewTerminal(nil)
	}
	return &Provider{opts: opts}
}

// App returns the wired components, building them on first use.
func (p *Provider) App(ctx context.Context) (*App, error) {
	p.appOnce.Do(func() {
		p.app, p.appErr = p.build(ctx)
	})
	if p.appErr != nil {
		return nil, p.appErr
	}
	return p.app, nil
}

// SDKClient returns the API client.
func (p *Provider) SDKClient(ctx context.Context) (*sdk.Client, error) {
	app, err := p.App(ctx)
	if err != nil {
		return nil, err
	}
	return app.API, nil
}

// Logout ends the session the same way a stale-session response does.
func (p *Provider) Logout(ctx context.Context) error {
	app, err := p.App(ctx)
	if err != nil {
		return err
	}
	return app.Recovery.HandleAuthFailure(ctx)
}

// Close releases the session store's connections, if any.
func (p *Provider) Close() error {
	if p.app == nil {
		return nil
	}
	if c, ok := p.app.Store.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (p *Provider) build(ctx context.Context) (*App, error) {
	logger := p.opts.Logger

	kv, err := p.openStore(ctx)
	if err != nil {
		return nil, err
	}

	locale := i18n.NewStore(ctx, kv, p.opts.Locale, logger)

	// The API client reports stale sessions to recovery, which needs the
	// session and router built on top of the client. Bind closes the loop.
	recovery := &Recovery{logger: logger}
	api := sdk.NewClient(p.opts.BaseURL,
		sdk.WithHTTPClient(p.httpClient()),
		sdk.WithTimeout(p.opts.Timeout),
		sdk.WithTokenSource(StorageTokens(kv)),
		sdk.WithAuthFailureHandler(recovery),
		sdk.WithNotifier(p.opts.Notifier),
		sdk.WithMessages(locale),
		sdk.WithLogger(logger),
	)

	sess := session.NewStore(ctx, kv, api,
		session.WithLogger(logger),
		session.WithNotifier(p.opts.Notifier),
		session.WithMessages(locale),
	)
	tabStore := tabs.NewStore(ctx, kv,
		tabs.WithLogger(logger),
		tabs.WithHomeTitle(locale.T(i18n.KeyMenuHome)),
	)
	tabStore.InitTabs(ctx)

	r := router.New(sess, tabStore,
		router.WithNotifier(p.opts.Notifier),
		router.WithMessageLoader(func() sdk.Messages { return locale }),
		router.WithLogger(logger),
	)
	recovery.Bind(sess, tabStore, r)

	return &App{
		Store:    kv,
		Locale:   locale,
		API:      api,
		Session:  sess,
		Tabs:     tabStore,
		Router:   r,
		Notifier: p.opts.Notifier,
		Recovery: recovery,
	}, nil
}

func (p *Provider) openStore(ctx context.Context) (storage.Store, error) {
	// Priority 1: ephemeral token (CI, scripts). Nothing is persisted.
	if p.opts.Token != "" {
		kv := storage.NewMemoryStore()
		if err := kv.Set(ctx, storage.KeyToken, p.opts.Token); err != nil {
			return nil, err
		}
		return kv, nil
	}

	// Priority 2: configured store.
	ctx, cancel := ensureTimeout(ctx, 5*time.Second)
	defer cancel()
	kv, err := storage.Open(ctx, storage.Options{
		URL:     p.opts.StoreURL,
		Dir:     p.opts.StateDir,
		Profile: p.opts.Profile,
	})
	if err != nil {
		return nil, errors.Join(errors.New("unable to open session storage"), err)
	}
	return kv, nil
}

func (p *Provider) httpClient() *http.Client {
	if p.opts.HTTPClient != nil {
		return p.opts.HTTPClient
	}
	return &http.Client{}
}

// StorageTokens reads the bearer token from persistent storage on every call,
// independent of any in-memory session copy.
func StorageTokens(kv storage.Store) sdk.TokenReader {
	return sdk.TokenReaderFunc(func(ctx context.Context) (string, error) {
		token, _, err := kv.Get(ctx, storage.KeyToken)
		return token, err
	})
}

func ensureTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}

	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}

	return context.WithTimeout(ctx, timeout)
}
