package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/poultrypro/poultryctl/pkg/domain"
)

// SupplierFilters narrows a feed supplier listing by area.
type SupplierFilters struct {
	City    string
	State   string
	Country string
}

func (f SupplierFilters) query() string {
	params := url.Values{}
	if f.City != "" {
		params.Set("city", f.City)
	}
	if f.State != "" {
		params.Set("state", f.State)
	}
	if f.Country != "" {
		params.Set("country", f.Country)
	}
	if len(params) == 0 {
		return ""
	}
	return "?" + params.Encode()
}

// PlaceFeedOrderRequest is the payload for ordering feed from a supplier.
type PlaceFeedOrderRequest struct {
	SupplierID     string                 `json:"supplier_id"`
	Items          []domain.FeedOrderItem `json:"items"`
	DeliveryOption *domain.DeliveryOption `json:"delivery_option,omitempty"`
	Notes          string                 `json:"notes,omitempty"`
}

// FeedSuppliers fetches feed suppliers, optionally filtered by area.
func (c *Client) FeedSuppliers(ctx context.Context, filters SupplierFilters) ([]domain.FeedSupplier, error) {
	var resp Response[[]domain.FeedSupplier]
	if err := c.get(ctx, "/feed/suppliers"+filters.query(), &resp); err != nil {
		return nil, fmt.Errorf("client.FeedSuppliers: %w", err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("client.FeedSuppliers: %w", resp.failure())
	}
	return value(&resp), nil
}

// FeedProducts returns a supplier's catalog.
func (c *Client) FeedProducts(ctx context.Context, supplierID string) ([]domain.FeedProduct, error) {
	var resp Response[[]domain.FeedProduct]
	if err := c.get(ctx, "/feed/suppliers/"+url.PathEscape(supplierID)+"/products", &resp); err != nil {
		return nil, fmt.Errorf("client.FeedProducts: %w", err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("client.FeedProducts: %w", resp.failure())
	}
	return value(&resp), nil
}

// PlaceFeedOrder submits a feed order.
func (c *Client) PlaceFeedOrder(ctx context.Context, req PlaceFeedOrderRequest) (*domain.FeedOrder, error) {
	var resp Response[domain.FeedOrder]
	if err := c.post(ctx, "/feed/orders", req, &resp); err != nil {
		return nil, fmt.Errorf("client.PlaceFeedOrder: %w", err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("client.PlaceFeedOrder: %w", resp.failure())
	}
	return resp.Data, nil
}

// FeedInventory returns current feed stock levels for a farm.
func (c *Client) FeedInventory(ctx context.Context, farmID string) ([]domain.FeedInventory, error) {
	var resp Response[[]domain.FeedInventory]
	if err := c.get(ctx, "/feed/inventory/"+url.PathEscape(farmID), &resp); err != nil {
		return nil, fmt.Errorf("client.FeedInventory: %w", err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("client.FeedInventory: %w", resp.failure())
	}
	return value(&resp), nil
}
