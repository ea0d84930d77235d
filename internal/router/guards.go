package router

import (
	"context"
	"slices"

	"github.com/liyang960414/erp/internal/tabs"
	"github.com/liyang960414/erp/pkg/sdk"
)

// beforeEach decides whether navigation to route may proceed.
// When it may not, it returns the path to go to instead.
func (r *Router) beforeEach(ctx context.Context, route Route) (string, bool) {
	if r.session.User() == nil && r.session.IsAuthenticated() {
		r.session.InitUser(ctx)
	}
	authenticated := r.session.IsAuthenticated()

	switch {
	case route.Meta.RequiresAuth && !authenticated:
		r.tabs.ClearTabs(ctx)
		return LoginPath, false

	case route.Path == LoginPath && authenticated:
		return HomePath, false

	case route.Meta.RequiresAuth && len(route.Meta.Roles) > 0:
		if slices.ContainsFunc(route.Meta.Roles, r.session.HasRole) {
			return "", true
		}
		r.notifier.Error(r.messages().Text(sdk.MsgNoPermission))
		return HomePath, false
	}
	return "", true
}

// afterEach records completed navigations to authenticated pages as tabs.
func (r *Router) afterEach(ctx context.Context, route Route) {
	if !route.Meta.RequiresAuth || route.Path == LoginPath {
		return
	}
	r.tabs.AddTab(ctx, tabs.Route{
		Path:  route.Path,
		Name:  route.Name,
		Title: r.Title(route),
	})
}
