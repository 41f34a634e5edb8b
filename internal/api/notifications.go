package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/covtrace/tracetriage/internal/model"
)

// NotificationList is the recent-notifications payload.
type NotificationList struct {
	Items       []model.Notification `json:"items"`
	UnreadCount int                  `json:"unread_count"`
}

// Notifications fetches the most recent notifications together with the
// unread count. limit 0 uses the server default.
func (c *Client) Notifications(ctx context.Context, limit int) (*NotificationList, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", fmt.Sprint(limit))
	}
	var out NotificationList
	if err := c.do(ctx, http.MethodGet, "/notifications", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type unreadCountResponse struct {
	Count int `json:"count"`
}

// UnreadCount fetches only the unread counter; this is the cheap call the
// ambient poll issues every interval.
func (c *Client) UnreadCount(ctx context.Context) (int, error) {
	var out unreadCountResponse
	if err := c.do(ctx, http.MethodGet, "/notifications/unread-count", nil, nil, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

// MarkNotificationRead marks one notification read.
func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPatch, "/notifications/"+id+"/read", nil, nil, nil)
}

// MarkAllNotificationsRead marks every notification read.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.do(ctx, http.MethodPatch, "/notifications/mark-all-read", nil, nil, nil)
}
