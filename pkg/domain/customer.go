package domain

import "time"

// Customer is a buyer of farm produce (restaurant, retail, distributor, individual).
type Customer struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Type          string     `json:"type"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	Location      *Location  `json:"location,omitempty"`
	TotalRevenue  float64    `json:"total_revenue"`
	LastOrderDate *time.Time `json:"last_order_date,omitempty"`
	PaymentTerms  string     `json:"payment_terms,omitempty"`
	CreditLimit   float64    `json:"credit_limit"`
}

// Order is a produce order placed by a customer against a farmer.
type Order struct {
	ID            string      `json:"id"`
	CustomerID    string      `json:"customer_id"`
	FarmerID      string      `json:"farmer_id"`
	Items         []OrderItem `json:"items"`
	TotalAmount   float64     `json:"total_amount"`
	Status        string      `json:"status"`
	OrderDate     time.Time   `json:"order_date"`
	DeliveryDate  *time.Time  `json:"delivery_date,omitempty"`
	PaymentMethod string      `json:"payment_method,omitempty"`
	PaymentStatus string      `json:"payment_status"`
	Notes         string      `json:"notes,omitempty"`
}

// OrderItem is a single line in an order.
type OrderItem struct {
	ID          string         `json:"id"`
	ProductType string         `json:"product_type"` // eggs, meat, live-birds
	Quantity    float64        `json:"quantity"`
	Unit        string         `json:"unit"`
	UnitPrice   float64        `json:"unit_price"`
	TotalPrice  float64        `json:"total_price"`
	Specs       map[string]any `json:"specifications,omitempty"`
}
