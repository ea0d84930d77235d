// Package nav holds the navigation commands: open a page and manage tabs.
package nav

import (
	"context"
	"io"
	"strconv"

	"github.com/liyang960414/erp/internal/client"
	"github.com/liyang960414/erp/internal/config"
	"github.com/liyang960414/erp/internal/view"
)

func app(ctx context.Context) (*client.App, error) {
	cfg := config.MustFromContext(ctx)
	return cfg.ClientProvider.App(ctx)
}

// render navigates to path and prints the tab strip followed by the page
// the guards settled on.
func render(ctx context.Context, w io.Writer, a *client.App, path string) error {
	loc, err := a.Router.Push(ctx, path)
	if err != nil {
		return err
	}

	cfg := config.MustFromContext(ctx)
	pages := view.NewPages(a.API, a.Session,
		view.WithSettings(
			view.Field{Name: "API", Value: a.API.BaseURL()},
			view.Field{Name: "Store", Value: storeName(cfg.StoreURL)},
			view.Field{Name: "Profile", Value: cfg.Profile},
			view.Field{Name: "Locale", Value: a.Locale.Locale().Label()},
			view.Field{Name: "Timeout", Value: cfg.Timeout.String()},
			view.Field{Name: "Non-interactive", Value: strconv.FormatBool(cfg.NonInteractive)},
		),
	)

	if strip := view.TabStrip(a.Tabs.Tabs(), loc.Path); strip != "" && a.Session.IsAuthenticated() {
		if _, err := io.WriteString(w, strip+"\n\n"); err != nil {
			return err
		}
	}
	return pages.Render(ctx, w, loc.Path, a.Router.Title(loc.Route))
}

func storeName(url string) string {
	if url == "" {
		return "file"
	}
	return url
}
