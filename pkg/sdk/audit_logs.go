package sdk

import (
	"context"
	"net/url"
)

// AuditLog is one recorded user action.
type AuditLog struct {
	ID            int64  `json:"id"`
	Username      string `json:"username"`
	UserID        int64  `json:"userId"`
	Action        string `json:"action"`
	Module        string `json:"module"`
	ResourceType  string `json:"resourceType,omitempty"`
	ResourceID    string `json:"resourceId,omitempty"`
	Description   string `json:"description,omitempty"`
	RequestMethod string `json:"requestMethod,omitempty"`
	RequestURI    string `json:"requestUri,omitempty"`
	IPAddress     string `json:"ipAddress,omitempty"`
	Status        string `json:"status"`
	ErrorMessage  string `json:"errorMessage,omitempty"`
	CreatedAt     Time   `json:"createdAt"`
}

// AuditLogQuery filters the audit log; zero values are omitted.
type AuditLogQuery struct {
	PageQuery
	Username  string
	Action    string
	Module    string
	Status    string
	StartTime string
	EndTime   string
}

func (q AuditLogQuery) values() url.Values {
	v := url.Values{}
	q.PageQuery.apply(v)
	setIfNotEmpty(v, "username", q.Username)
	setIfNotEmpty(v, "action", q.Action)
	setIfNotEmpty(v, "module", q.Module)
	setIfNotEmpty(v, "status", q.Status)
	setIfNotEmpty(v, "startTime", q.StartTime)
	setIfNotEmpty(v, "endTime", q.EndTime)
	return v
}

// ListAuditLogs queries the audit log with any combination of filters.
func (c *Client) ListAuditLogs(ctx context.Context, q AuditLogQuery) (*Page[AuditLog], error) {
	var page Page[AuditLog]
	if err := c.get(ctx, "/audit-logs", q.values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ListAuditLogsByUsername returns entries recorded for one user.
func (c *Client) ListAuditLogsByUsername(ctx context.Context, username string, q PageQuery) (*Page[AuditLog], error) {
	return c.auditLogsBy(ctx, "username", username, q)
}

// ListAuditLogsByAction returns entries for one action type.
func (c *Client) ListAuditLogsByAction(ctx context.Context, action string, q PageQuery) (*Page[AuditLog], error) {
	return c.auditLogsBy(ctx, "action", action, q)
}

// ListAuditLogsByModule returns entries for one module.
func (c *Client) ListAuditLogsByModule(ctx context.Context, module string, q PageQuery) (*Page[AuditLog], error) {
	return c.auditLogsBy(ctx, "module", module, q)
}

func (c *Client) auditLogsBy(ctx context.Context, dimension, value string, q PageQuery) (*Page[AuditLog], error) {
	var page Page[AuditLog]
	path := "/audit-logs/" + dimension + "/" + url.PathEscape(value)
	if err := c.get(ctx, path, q.values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}
