package view

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/liyang960414/erp/internal/router"
	"github.com/liyang960414/erp/pkg/sdk"
)

// ErrNoPage is returned when a route has nothing to render.
var ErrNoPage = errors.New("no page for route")

// DefaultPageSize is used by list pages.
const DefaultPageSize = 20

// API is the subset of the ERP client the pages read from.
type API interface {
	ListUsers(ctx context.Context, q sdk.PageQuery) (*sdk.Page[sdk.User], error)
	ListRoles(ctx context.Context) ([]sdk.Role, error)
	ListPermissions(ctx context.Context) ([]sdk.Permission, error)
	ListAuditLogs(ctx context.Context, q sdk.AuditLogQuery) (*sdk.Page[sdk.AuditLog], error)
	ListImportTasks(ctx context.Context, q sdk.ImportTaskQuery) (*sdk.Page[sdk.ImportTaskSummary], error)
	ListMaterials(ctx context.Context) ([]sdk.Material, error)
	ListSaleOrders(ctx context.Context, q sdk.SaleOrderQuery) (*sdk.Page[sdk.SaleOrder], error)
}

// Session is the signed-in user as the pages see it.
type Session interface {
	User() *sdk.UserProfile
	HasRole(name string) bool
}

// Field is a name/value row on the settings page.
type Field struct {
	Name  string
	Value string
}

type pageFunc func(ctx context.Context, w io.Writer) error

// Pages renders the page behind each route.
type Pages struct {
	api      API
	session  Session
	settings []Field
	logger   *slog.Logger
	pages    map[string]pageFunc
}

// Option configures Pages.
type Option func(*Pages)

// WithSettings sets the rows shown on the settings page.
func WithSettings(fields ...Field) Option {
	return func(p *Pages) {
		p.settings = fields
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pages) {
		p.logger = logger
	}
}

// NewPages builds the page table.
func NewPages(api API, session Session, opts ...Option) *Pages {
	p := &Pages{api: api, session: session, logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	p.pages = map[string]pageFunc{
		router.LoginPath:       p.login,
		router.HomePath:        p.home,
		"/users/list":          p.users,
		"/products":            p.products,
		"/orders":              p.orders,
		"/system/settings":     p.systemSettings,
		"/system/permissions":  p.permissions,
		"/system/roles":        p.roles,
		"/system/audit-logs":   p.auditLogs,
		"/system/import-tasks": p.importTasks,
	}
	return p
}

// Has reports whether path has a page.
func (p *Pages) Has(path string) bool {
	_, ok := p.pages[path]
	return ok
}

// Render writes the page for path under title.
func (p *Pages) Render(ctx context.Context, w io.Writer, path, title string) error {
	render, ok := p.pages[path]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoPage, path)
	}
	Heading(w, title)
	return render(ctx, w)
}

func (p *Pages) login(_ context.Context, w io.Writer) error {
	_, err := fmt.Fprintln(w, "Sign in with: erpctl auth login")
	return err
}

// home loads its counters concurrently. A counter that fails to load is
// shown as "-"; the request pipeline has already told the user why.
func (p *Pages) home(ctx context.Context, w io.Writer) error {
	if u := p.session.User(); u != nil {
		name := u.FullName
		if name == "" {
			name = u.Username
		}
		fmt.Fprintf(w, "Welcome, %s\n\n", name)
	}

	admin := p.session.HasRole(router.RoleAdmin)
	var materials, orders, users, tasks string

	var g errgroup.Group
	g.Go(func() error {
		list, err := p.api.ListMaterials(ctx)
		materials = p.count(err, int64(len(list)), "materials")
		return nil
	})
	g.Go(func() error {
		page, err := p.api.ListSaleOrders(ctx, sdk.SaleOrderQuery{PageQuery: sdk.PageQuery{Size: 1}})
		orders = p.count(err, total(page), "sale orders")
		return nil
	})
	if admin {
		g.Go(func() error {
			page, err := p.api.ListUsers(ctx, sdk.PageQuery{Size: 1})
			users = p.count(err, total(page), "users")
			return nil
		})
		g.Go(func() error {
			page, err := p.api.ListImportTasks(ctx, sdk.ImportTaskQuery{PageQuery: sdk.PageQuery{Size: 1}})
			tasks = p.count(err, total(page), "import tasks")
			return nil
		})
	}
	_ = g.Wait()

	t := newTable(w, "METRIC", "COUNT")
	t.row("Materials", materials)
	t.row("Sale orders", orders)
	if admin {
		t.row("Users", users)
		t.row("Import tasks", tasks)
	}
	return t.flush()
}

func (p *Pages) count(err error, n int64, what string) string {
	if err != nil {
		p.logger.Debug("dashboard counter unavailable", "counter", what, "error", err)
		return ""
	}
	return strconv.FormatInt(n, 10)
}

func total[T any](page *sdk.Page[T]) int64 {
	if page == nil {
		return 0
	}
	return page.TotalElements
}

func (p *Pages) users(ctx context.Context, w io.Writer) error {
	page, err := p.api.ListUsers(ctx, sdk.PageQuery{Size: DefaultPageSize})
	if err != nil {
		return err
	}
	if err := Users(w, page.Content); err != nil {
		return err
	}
	Footer(w, page)
	return nil
}

func (p *Pages) products(ctx context.Context, w io.Writer) error {
	materials, err := p.api.ListMaterials(ctx)
	if err != nil {
		return err
	}
	return Materials(w, materials)
}

func (p *Pages) orders(ctx context.Context, w io.Writer) error {
	page, err := p.api.ListSaleOrders(ctx, sdk.SaleOrderQuery{PageQuery: sdk.PageQuery{Size: DefaultPageSize}})
	if err != nil {
		return err
	}
	if err := SaleOrders(w, page.Content); err != nil {
		return err
	}
	Footer(w, page)
	return nil
}

func (p *Pages) systemSettings(_ context.Context, w io.Writer) error {
	t := newTable(w, "SETTING", "VALUE")
	for _, f := range p.settings {
		t.row(f.Name, f.Value)
	}
	return t.flush()
}

func (p *Pages) permissions(ctx context.Context, w io.Writer) error {
	perms, err := p.api.ListPermissions(ctx)
	if err != nil {
		return err
	}
	return Permissions(w, perms)
}

func (p *Pages) roles(ctx context.Context, w io.Writer) error {
	roles, err := p.api.ListRoles(ctx)
	if err != nil {
		return err
	}
	return Roles(w, roles)
}

func (p *Pages) auditLogs(ctx context.Context, w io.Writer) error {
	page, err := p.api.ListAuditLogs(ctx, sdk.AuditLogQuery{PageQuery: sdk.PageQuery{Size: DefaultPageSize}})
	if err != nil {
		return err
	}
	if err := AuditLogs(w, page.Content); err != nil {
		return err
	}
	Footer(w, page)
	return nil
}

func (p *Pages) importTasks(ctx context.Context, w io.Writer) error {
	page, err := p.api.ListImportTasks(ctx, sdk.ImportTaskQuery{PageQuery: sdk.PageQuery{Size: DefaultPageSize}})
	if err != nil {
		return err
	}
	if err := ImportTasks(w, page.Content); err != nil {
		return err
	}
	Footer(w, page)
	return nil
}
