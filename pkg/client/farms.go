package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/poultrypro/poultryctl/pkg/domain"
)

// CreateFarmRequest is the payload for registering a new farm.
type CreateFarmRequest struct {
	Name           string          `json:"name"`
	Location       domain.Location `json:"location"`
	TotalBirds     int             `json:"total_birds"`
	FarmType       domain.FarmType `json:"farm_type"`
	Certifications []string        `json:"certifications,omitempty"`
}

// UpdateFarmRequest carries the mutable fields of a farm. Zero fields are
// omitted from the request body.
type UpdateFarmRequest struct {
	Name           string           `json:"name,omitempty"`
	Location       *domain.Location `json:"location,omitempty"`
	TotalBirds     int              `json:"total_birds,omitempty"`
	FarmType       domain.FarmType  `json:"farm_type,omitempty"`
	Certifications []string         `json:"certifications,omitempty"`
}

// ListFarms returns the farms visible to the authenticated user.
func (c *Client) ListFarms(ctx context.Context) ([]domain.Farm, error) {
	var resp Response[[]domain.Farm]
	if err := c.get(ctx, "/farms", &resp); err != nil {
		return nil, fmt.Errorf("client.ListFarms: %w", err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("client.ListFarms: %w", resp.failure())
	}
	return value(&resp), nil
}

// CreateFarm registers a new farm.
func (c *Client) CreateFarm(ctx context.Context, req CreateFarmRequest) (*domain.Farm, error) {
	var resp Response[domain.Farm]
	if err := c.post(ctx, "/farms", req, &resp); err != nil {
		return nil, fmt.Errorf("client.CreateFarm: %w", err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("client.CreateFarm: %w", resp.failure())
	}
	return resp.Data, nil
}

// UpdateFarm applies a partial update to a farm by ID.
func (c *Client) UpdateFarm(ctx context.Context, farmID string, req UpdateFarmRequest) (*domain.Farm, error) {
	var resp Response[domain.Farm]
	if err := c.put(ctx, "/farms/"+url.PathEscape(farmID), req, &resp); err != nil {
		return nil, fmt.Errorf("client.UpdateFarm: %w", err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("client.UpdateFarm: %w", resp.failure())
	}
	return resp.Data, nil
}
