package sdk

import (
	"context"
	"fmt"
	"net/http"
)

// RoleSummary is the compact role reference embedded in users.
type RoleSummary struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// User is an account as managed by administrators.
type User struct {
	ID                    int64         `json:"id"`
	Username              string        `json:"username"`
	Email                 string        `json:"email"`
	FullName              string        `json:"fullName,omitempty"`
	Enabled               bool          `json:"enabled"`
	AccountNonExpired     bool          `json:"accountNonExpired"`
	AccountNonLocked      bool          `json:"accountNonLocked"`
	CredentialsNonExpired bool          `json:"credentialsNonExpired"`
	CreatedAt             *Time         `json:"createdAt,omitempty"`
	UpdatedAt             *Time         `json:"updatedAt,omitempty"`
	Roles                 []RoleSummary `json:"roles"`
}

// CreateUserInput creates a user.
type CreateUserInput struct {
	Username  string   `json:"username"`
	Password  string   `json:"password"`
	Email     string   `json:"email"`
	FullName  string   `json:"fullName,omitempty"`
	Enabled   *bool    `json:"enabled,omitempty"`
	RoleNames []string `json:"roleNames,omitempty"`
}

// UpdateUserInput patches a user; nil fields are left unchanged.
type UpdateUserInput struct {
	Email                 *string  `json:"email,omitempty"`
	FullName              *string  `json:"fullName,omitempty"`
	Enabled               *bool    `json:"enabled,omitempty"`
	AccountNonExpired     *bool    `json:"accountNonExpired,omitempty"`
	AccountNonLocked      *bool    `json:"accountNonLocked,omitempty"`
	CredentialsNonExpired *bool    `json:"credentialsNonExpired,omitempty"`
	RoleNames             []string `json:"roleNames,omitempty"`
}

// ListUsers returns one page of users.
func (c *Client) ListUsers(ctx context.Context, q PageQuery) (*Page[User], error) {
	var page Page[User]
	if err := c.get(ctx, "/users", q.values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetUser fetches a user by ID.
func (c *Client) GetUser(ctx context.Context, id int64) (*User, error) {
	var user User
	if err := c.get(ctx, fmt.Sprintf("/users/%d", id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser creates a user.
func (c *Client) CreateUser(ctx context.Context, input CreateUserInput) (*User, error) {
	if input.Username == "" {
		return nil, fmt.Errorf("username is required")
	}
	var user User
	if err := c.post(ctx, "/users", input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser updates a user.
func (c *Client) UpdateUser(ctx context.Context, id int64, input UpdateUserInput) (*User, error) {
	var user User
	if err := c.put(ctx, fmt.Sprintf("/users/%d", id), input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser deletes a user.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/users/%d", id))
}

// ChangePassword sets a new password for a user. The backend takes the bare
// password as the JSON body.
func (c *Client) ChangePassword(ctx context.Context, id int64, newPassword string) error {
	return c.Do(ctx, &Request{
		Method: http.MethodPut,
		Path:   fmt.Sprintf("/users/%d/password", id),
		Body:   newPassword,
	}, nil)
}
