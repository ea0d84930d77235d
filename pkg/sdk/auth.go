package sdk

import (
	"context"
	"net/http"
)

// LoginRequest carries username/password credentials.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned by POST /auth/login.
type LoginResponse struct {
	Token     string   `json:"token"`
	TokenType string   `json:"tokenType"`
	UserID    int64    `json:"userId"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	FullName  string   `json:"fullName"`
	Roles     []string `json:"roles"`
}

// RegisterRequest creates a self-service account.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	FullName string `json:"fullName,omitempty"`
}

// Permission is a named capability granted through a role.
type Permission struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Role groups permissions.
type Role struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Permissions []Permission `json:"permissions,omitempty"`
}

// UserProfile is the authenticated user as returned by GET /users/me.
type UserProfile struct {
	ID                    int64  `json:"id"`
	Username              string `json:"username"`
	Email                 string `json:"email"`
	FullName              string `json:"fullName"`
	Enabled               bool   `json:"enabled"`
	AccountNonExpired     bool   `json:"accountNonExpired"`
	AccountNonLocked      bool   `json:"accountNonLocked"`
	CredentialsNonExpired bool   `json:"credentialsNonExpired"`
	Roles                 []Role `json:"roles"`
}

// ProvisionalProfile builds a profile from a login response. Role names are
// wrapped as roles with ID 0 and no description or permissions.
func (r *LoginResponse) ProvisionalProfile() *UserProfile {
	roles := make([]Role, 0, len(r.Roles))
	for _, name := range r.Roles {
		roles = append(roles, Role{ID: 0, Name: name, Description: ""})
	}
	return &UserProfile{
		ID:       r.UserID,
		Username: r.Username,
		Email:    r.Email,
		FullName: r.FullName,
		Roles:    roles,
	}
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.post(ctx, "/auth/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	var user User
	if err := c.post(ctx, "/auth/register", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CurrentUser fetches the authoritative profile of the token holder.
func (c *Client) CurrentUser(ctx context.Context) (*UserProfile, error) {
	var profile UserProfile
	if err := c.get(ctx, "/users/me", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Logout notifies the backend that the token is being discarded.
// It never triggers auth recovery and never notifies; callers treat it as best effort.
func (c *Client) Logout(ctx context.Context) error {
	return c.Do(ctx, &Request{
		Method:           http.MethodPost,
		Path:             "/auth/logout",
		SkipAuthRecovery: true,
		Silent:           true,
	}, nil)
}
