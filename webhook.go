package fiscaldocs

import (
	"context"

	"github.com/fiscaldocs/client-go/internal/api"
)

// Webhook is a webhook subscription record.
type Webhook = api.Webhook

// ListWebhooks lists webhook subscriptions.
func (c *Client) ListWebhooks(ctx context.Context) ([]Webhook, error) {
	return c.api.ListWebhooks(ctx)
}

// GetWebhook retrieves a webhook subscription by id.
func (c *Client) GetWebhook(ctx context.Context, webhookID string) (*Webhook, error) {
	return c.api.GetWebhook(ctx, webhookID)
}

// CreateWebhook registers a webhook subscription.
func (c *Client) CreateWebhook(ctx context.Context, hook Webhook) (*Webhook, error) {
	return c.api.CreateWebhook(ctx, hook)
}

// DeleteWebhook removes a webhook subscription.
func (c *Client) DeleteWebhook(ctx context.Context, webhookID string) error {
	return c.api.DeleteWebhook(ctx, webhookID)
}
