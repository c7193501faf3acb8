package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/poultrypro/poultryctl/pkg/domain"
)

// CreateCustomerRequest is the payload for adding a customer to the CRM.
type CreateCustomerRequest struct {
	Name         string           `json:"name"`
	Type         string           `json:"type"`
	Email        string           `json:"email"`
	Phone        string           `json:"phone"`
	Location     *domain.Location `json:"location,omitempty"`
	PaymentTerms string           `json:"payment_terms,omitempty"`
	CreditLimit  float64          `json:"credit_limit,omitempty"`
}

// UpdateCustomerRequest carries the mutable fields of a customer record.
type UpdateCustomerRequest struct {
	Name         string           `json:"name,omitempty"`
	Type         string           `json:"type,omitempty"`
	Email        string           `json:"email,omitempty"`
	Phone        string           `json:"phone,omitempty"`
	Location     *domain.Location `json:"location,omitempty"`
	PaymentTerms string           `json:"payment_terms,omitempty"`
	CreditLimit  float64          `json:"credit_limit,omitempty"`
}

// ListCustomers returns the authenticated user's customers.
func (c *Client) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	var resp Response[[]domain.Customer]
	if err := c.get(ctx, "/customers", &resp); err != nil {
		return nil, fmt.Errorf("client.ListCustomers: %w", err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("client.ListCustomers: %w", resp.failure())
	}
	return value(&resp), nil
}

// CreateCustomer adds a new customer.
func (c *Client) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*domain.Customer, error) {
	var resp Response[domain.Customer]
	if err := c.post(ctx, "/customers", req, &resp); err != nil {
		return nil, fmt.Errorf("client.CreateCustomer: %w", err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("client.CreateCustomer: %w", resp.failure())
	}
	return resp.Data, nil
}

// UpdateCustomer applies a partial update to a customer by ID.
func (c *Client) UpdateCustomer(ctx context.Context, customerID string, req UpdateCustomerRequest) (*domain.Customer, error) {
	var resp Response[domain.Customer]
	if err := c.put(ctx, "/customers/"+url.PathEscape(customerID), req, &resp); err != nil {
		return nil, fmt.Errorf("client.UpdateCustomer: %w", err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("client.UpdateCustomer: %w", resp.failure())
	}
	return resp.Data, nil
}

// CustomerOrders returns a customer's order history.
func (c *Client) CustomerOrders(ctx context.Context, customerID string) ([]domain.Order, error) {
	var resp Response[[]domain.Order]
	if err := c.get(ctx, "/customers/"+url.PathEscape(customerID)+"/orders", &resp); err != nil {
		return nil, fmt.Errorf("client.CustomerOrders: %w", err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("client.CustomerOrders: %w", resp.failure())
	}
	return value(&resp), nil
}
