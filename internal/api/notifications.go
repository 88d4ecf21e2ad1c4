package api

import (
	"context"
	"net/http"
)

// Notifications performs the catch-up fetch of the authenticated user's
// notification history.
func (c *HTTPClient) Notifications(ctx context.Context) ([]Notification, error) {
	var out []Notification
	if err := c.do(ctx, http.MethodGet, "/notifications", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkNotificationRead flags a single notification as read.
func (c *HTTPClient) MarkNotificationRead(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPatch, "/notifications/"+id+"/read", nil, nil, nil)
}
