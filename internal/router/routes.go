package router

import (
	"github.com/liyang960414/erp/internal/i18n"
	"github.com/liyang960414/erp/internal/tabs"
)

const (
	RootPath  = "/"
	LoginPath = "/login"
	HomePath  = tabs.HomePath

	RoleAdmin = "ADMIN"
)

// Meta is the route metadata consumed by the guards.
type Meta struct {
	RequiresAuth bool
	// Roles, when set, admits users holding at least one of them.
	Roles []string
	// Title is the message key used to label the route's tab.
	Title string
}

// Route is a navigable path.
type Route struct {
	Path string
	Name string
	Meta Meta
	// Redirect sends navigation on to another path before any guard runs.
	Redirect string
}

// DefaultRoutes is the client's route table.
func DefaultRoutes() []Route {
	admin := []string{RoleAdmin}
	return []Route{
		{Path: LoginPath, Name: "login", Meta: Meta{Title: i18n.KeyMenuLogin}},
		{Path: RootPath, Redirect: HomePath, Meta: Meta{RequiresAuth: true}},
		{Path: HomePath, Name: tabs.HomeName, Meta: Meta{RequiresAuth: true, Title: i18n.KeyMenuHome}},
		{Path: "/users/list", Name: "userList", Meta: Meta{RequiresAuth: true, Roles: admin, Title: i18n.KeyMenuUserList}},
		{Path: "/products", Name: "products", Meta: Meta{RequiresAuth: true, Title: i18n.KeyMenuProducts}},
		{Path: "/orders", Name: "orders", Meta: Meta{RequiresAuth: true, Title: i18n.KeyMenuOrders}},
		{Path: "/system/settings", Name: "systemSettings", Meta: Meta{RequiresAuth: true, Roles: admin, Title: i18n.KeyMenuSettings}},
		{Path: "/system/permissions", Name: "permissions", Meta: Meta{RequiresAuth: true, Roles: admin, Title: i18n.KeyMenuPermissions}},
		{Path: "/system/roles", Name: "roles", Meta: Meta{RequiresAuth: true, Roles: admin, Title: i18n.KeyMenuRoles}},
		{Path: "/system/audit-logs", Name: "auditLogs", Meta: Meta{RequiresAuth: true, Roles: admin, Title: i18n.KeyMenuAuditLogs}},
		{Path: "/system/import-tasks", Name: "importTasks", Meta: Meta{RequiresAuth: true, Roles: admin, Title: i18n.KeyMenuImportTasks}},
	}
}
