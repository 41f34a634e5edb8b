// Package notify holds the client-side notification state behind the
// unread badge and the dropdown. The ambient unread-count poll and the
// on-demand list fetch both land here; mark-read is optimistic.
package notify

import "github.com/covtrace/tracetriage/internal/model"

// Center caches the unread count and the most recent notifications.
type Center struct {
	items  []model.Notification
	unread int
}

// NewCenter creates an empty center.
func NewCenter() *Center {
	return &Center{}
}

// Items returns the cached notification list, newest first.
func (c *Center) Items() []model.Notification {
	return c.items
}

// Unread returns the cached unread count.
func (c *Center) Unread() int {
	return c.unread
}

// SetUnread installs a freshly polled unread count.
func (c *Center) SetUnread(n int) {
	if n < 0 {
		n = 0
	}
	c.unread = n
}

// Replace installs a freshly fetched list and count, replacing whatever
// was cached. Called when the dropdown opens.
func (c *Center) Replace(items []model.Notification, unread int) {
	c.items = items
	c.SetUnread(unread)
}

// MarkRead optimistically flips one notification to read and decrements
// the unread counter, floored at zero. It returns false when the id is
// unknown or already read, in which case nothing changes and no API call
// should be made.
func (c *Center) MarkRead(id string) bool {
	for i := range c.items {
		if c.items[i].ID != id {
			continue
		}
		if c.items[i].Read {
			return false
		}
		c.items[i].Read = true
		if c.unread > 0 {
			c.unread--
		}
		return true
	}
	return false
}

// MarkAllRead optimistically flips every cached notification to read and
// zeroes the counter.
func (c *Center) MarkAllRead() {
	for i := range c.items {
		c.items[i].Read = true
	}
	c.unread = 0
}
