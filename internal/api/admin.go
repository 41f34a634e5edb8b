package api

import (
	"context"
	"net/http"

	"github.com/covtrace/tracetriage/internal/model"
)

// Admin-only endpoints. There is exactly one contract per resource here;
// role gating happens in the UI through model.CanPerform and again
// server-side.

// UserList is one page of user accounts.
type UserList struct {
	Items []model.User `json:"items"`
	model.Page
}

// ListUsers fetches one page of user accounts.
func (c *Client) ListUsers(ctx context.Context, page, pageSize int) (*UserList, error) {
	var out UserList
	if err := c.do(ctx, http.MethodGet, "/users", pageQuery(page, pageSize), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type updateUserRequest struct {
	Role model.Role `json:"role"`
}

// SetUserRole changes a user's role.
func (c *Client) SetUserRole(ctx context.Context, id string, role model.Role) (*model.User, error) {
	var out model.User
	if err := c.do(ctx, http.MethodPatch, "/users/"+id, nil, updateUserRequest{Role: role}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUser removes a user account.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/users/"+id, nil, nil, nil)
}

// AuditLogList is one page of audit entries.
type AuditLogList struct {
	Items []model.AuditEntry `json:"items"`
	model.Page
}

// AuditLog fetches one page of the audit log, newest first.
func (c *Client) AuditLog(ctx context.Context, page, pageSize int) (*AuditLogList, error) {
	var out AuditLogList
	if err := c.do(ctx, http.MethodGet, "/audit-log", pageQuery(page, pageSize), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
