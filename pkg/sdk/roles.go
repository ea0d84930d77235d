package sdk

import (
	"context"
	"fmt"
)

// CreateRoleInput creates a role.
type CreateRoleInput struct {
	Name            string   `json:"name"`
	Description     string   `json:"description,omitempty"`
	PermissionNames []string `json:"permissionNames,omitempty"`
}

// UpdateRoleInput updates a role's description and permission set.
type UpdateRoleInput struct {
	Description     *string  `json:"description,omitempty"`
	PermissionNames []string `json:"permissionNames,omitempty"`
}

// ListRolesPage returns one page of roles.
func (c *Client) ListRolesPage(ctx context.Context, q PageQuery) (*Page[Role], error) {
	var page Page[Role]
	if err := c.get(ctx, "/roles", q.values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ListRoles returns every role.
func (c *Client) ListRoles(ctx context.Context) ([]Role, error) {
	var roles []Role
	if err := c.get(ctx, "/roles/list", nil, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

// GetRole fetches a role by ID.
func (c *Client) GetRole(ctx context.Context, id int64) (*Role, error) {
	var role Role
	if err := c.get(ctx, fmt.Sprintf("/roles/%d", id), nil, &role); err != nil {
		return nil, err
	}
	return &role, nil
}

// CreateRole creates a role.
func (c *Client) CreateRole(ctx context.Context, input CreateRoleInput) (*Role, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("role name is required")
	}
	var role Role
	if err := c.post(ctx, "/roles", input, &role); err != nil {
		return nil, err
	}
	return &role, nil
}

// UpdateRole updates a role.
func (c *Client) UpdateRole(ctx context.Context, id int64, input UpdateRoleInput) (*Role, error) {
	var role Role
	if err := c.put(ctx, fmt.Sprintf("/roles/%d", id), input, &role); err != nil {
		return nil, err
	}
	return &role, nil
}

// DeleteRole deletes a role.
func (c *Client) DeleteRole(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/roles/%d", id))
}

// ListPermissionsPage returns one page of permissions.
func (c *Client) ListPermissionsPage(ctx context.Context, q PageQuery) (*Page[Permission], error) {
	var page Page[Permission]
	if err := c.get(ctx, "/permissions", q.values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ListPermissions returns every permission.
func (c *Client) ListPermissions(ctx context.Context) ([]Permission, error) {
	var perms []Permission
	if err := c.get(ctx, "/permissions/list", nil, &perms); err != nil {
		return nil, err
	}
	return perms, nil
}

// GetPermission fetches a permission by ID.
func (c *Client) GetPermission(ctx context.Context, id int64) (*Permission, error) {
	var perm Permission
	if err := c.get(ctx, fmt.Sprintf("/permissions/%d", id), nil, &perm); err != nil {
		return nil, err
	}
	return &perm, nil
}
