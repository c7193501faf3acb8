package client

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/poultrypro/poultryctl/pkg/domain"
)

// FarmAnalytics returns the aggregated summary for a farm over a named
// period ("week", "month", "quarter", "year").
func (c *Client) FarmAnalytics(ctx context.Context, farmID, period string) (*domain.FarmAnalytics, error) {
	params := url.Values{}
	params.Set("period", period)

	var resp Response[domain.FarmAnalytics]
	if err := c.get(ctx, "/analytics/farm/"+url.PathEscape(farmID)+"?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("client.FarmAnalytics: %w", err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("client.FarmAnalytics: %w", resp.failure())
	}
	return resp.Data, nil
}

// ProductionMetrics returns daily production records for a farm between two dates.
func (c *Client) ProductionMetrics(ctx context.Context, farmID string, start, end time.Time) ([]domain.ProductionRecord, error) {
	params := url.Values{}
	params.Set("start", start.Format(time.RFC3339))
	params.Set("end", end.Format(time.RFC3339))

	var resp Response[[]domain.ProductionRecord]
	if err := c.get(ctx, "/analytics/production/"+url.PathEscape(farmID)+"?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("client.ProductionMetrics: %w", err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("client.ProductionMetrics: %w", resp.failure())
	}
	return value(&resp), nil
}

// MarketPrices returns current market prices, optionally scoped to a location.
func (c *Client) MarketPrices(ctx context.Context, location string) ([]domain.MarketPrice, error) {
	path := "/market/prices"
	if location != "" {
		params := url.Values{}
		params.Set("location", location)
		path += "?" + params.Encode()
	}

	var resp Response[[]domain.MarketPrice]
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, fmt.Errorf("client.MarketPrices: %w", err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("client.MarketPrices: %w", resp.failure())
	}
	return value(&resp), nil
}
