package client

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/poultrypro/poultryctl/pkg/domain"
)

// ServiceFilters narrows a marketplace service listing.
type ServiceFilters struct {
	Type      string
	Specialty string
	City      string
	MaxPrice  float64
}

func (f ServiceFilters) query() string {
	params := url.Values{}
	if f.Type != "" {
		params.Set("type", f.Type)
	}
	if f.Specialty != "" {
		params.Set("specialty", f.Specialty)
	}
	if f.City != "" {
		params.Set("city", f.City)
	}
	if f.MaxPrice > 0 {
		params.Set("max_price", fmt.Sprintf("%g", f.MaxPrice))
	}
	if len(params) == 0 {
		return ""
	}
	return "?" + params.Encode()
}

// BookServiceRequest is the payload for booking a service.
type BookServiceRequest struct {
	ScheduledDate time.Time `json:"scheduled_date"`
	Notes         string    `json:"notes,omitempty"`
}

// ListServices fetches marketplace services with optional filters.
func (c *Client) ListServices(ctx context.Context, filters ServiceFilters) ([]domain.Service, error) {
	var resp Response[[]domain.Service]
	if err := c.get(ctx, "/services"+filters.query(), &resp); err != nil {
		return nil, fmt.Errorf("client.ListServices: %w", err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("client.ListServices: %w", resp.failure())
	}
	return value(&resp), nil
}

// BookService books a service by ID.
func (c *Client) BookService(ctx context.Context, serviceID string, req BookServiceRequest) (*domain.ServiceBooking, error) {
	var resp Response[domain.ServiceBooking]
	if err := c.post(ctx, "/services/"+url.PathEscape(serviceID)+"/book", req, &resp); err != nil {
		return nil, fmt.Errorf("client.BookService: %w", err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("client.BookService: %w", resp.failure())
	}
	return resp.Data, nil
}

// ListBookings returns the authenticated user's service bookings.
func (c *Client) ListBookings(ctx context.Context) ([]domain.ServiceBooking, error) {
	var resp Response[[]domain.ServiceBooking]
	if err := c.get(ctx, "/bookings", &resp); err != nil {
		return nil, fmt.Errorf("client.ListBookings: %w", err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("client.ListBookings: %w", resp.failure())
	}
	return value(&resp), nil
}
