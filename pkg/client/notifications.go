package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/poultrypro/poultryctl/pkg/domain"
)

// ListNotifications returns the authenticated user's notifications.
func (c *Client) ListNotifications(ctx context.Context) ([]domain.Notification, error) {
	var resp Response[[]domain.Notification]
	if err := c.get(ctx, "/notifications", &resp); err != nil {
		return nil, fmt.Errorf("client.ListNotifications: %w", err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("client.ListNotifications: %w", resp.failure())
	}
	return value(&resp), nil
}

// MarkNotificationRead marks a notification as read by ID.
func (c *Client) MarkNotificationRead(ctx context.Context, notificationID string) error {
	if err := c.put(ctx, "/notifications/"+url.PathEscape(notificationID)+"/read", nil, nil); err != nil {
		return fmt.Errorf("client.MarkNotificationRead: %w", err)
	}
	return nil
}

// RegisterPushToken registers a device push token for the current user.
func (c *Client) RegisterPushToken(ctx context.Context, token string) error {
	if err := c.post(ctx, "/notifications/push-token", map[string]string{"token": token}, nil); err != nil {
		return fmt.Errorf("client.RegisterPushToken: %w", err)
	}
	return nil
}
