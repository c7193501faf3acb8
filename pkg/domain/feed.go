package domain

import "time"

// FeedSupplier is a vendor of poultry feed.
type FeedSupplier struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Location        Location         `json:"location"`
	Rating          float64          `json:"rating"`
	Products        []FeedProduct    `json:"products,omitempty"`
	MinimumOrder    float64          `json:"minimum_order"`
	DeliveryOptions []DeliveryOption `json:"delivery_options,omitempty"`
	PaymentTerms    string           `json:"payment_terms,omitempty"`
	Certifications  []string         `json:"certifications,omitempty"`
}

// FeedProduct is a feed SKU offered by a supplier.
type FeedProduct struct {
	ID           string           `json:"id"`
	SupplierID   string           `json:"supplier_id"`
	Name         string           `json:"name"`
	Type         string           `json:"type"` // starter, grower, layer, finisher, supplement
	Price        float64          `json:"price"`
	Unit         string           `json:"unit"`
	Nutrition    *NutritionalInfo `json:"nutritional_info,omitempty"`
	Ingredients  []string         `json:"ingredients,omitempty"`
	ShelfLife    int              `json:"shelf_life"` // days
	Availability bool             `json:"availability"`
}

// NutritionalInfo is the composition breakdown of a feed product.
// All fields except Energy are percentages; Energy is kcal/kg.
type NutritionalInfo struct {
	Protein    float64 `json:"protein"`
	Fat        float64 `json:"fat"`
	Fiber      float64 `json:"fiber"`
	Moisture   float64 `json:"moisture"`
	Ash        float64 `json:"ash"`
	Calcium    float64 `json:"calcium"`
	Phosphorus float64 `json:"phosphorus"`
	Energy     float64 `json:"energy"`
}

// DeliveryOption describes how a supplier can fulfil an order.
type DeliveryOption struct {
	Type          string  `json:"type"`
	Cost          float64 `json:"cost"`
	EstimatedDays int     `json:"estimated_days"`
	MinimumOrder  float64 `json:"minimum_order"`
}

// FeedOrder is a feed purchase placed by a farmer against a supplier.
type FeedOrder struct {
	ID             string          `json:"id"`
	SupplierID     string          `json:"supplier_id"`
	FarmerID       string          `json:"farmer_id"`
	Items          []FeedOrderItem `json:"items"`
	TotalAmount    float64         `json:"total_amount"`
	Status         string          `json:"status"`
	OrderDate      time.Time       `json:"order_date"`
	DeliveryDate   *time.Time      `json:"delivery_date,omitempty"`
	DeliveryOption *DeliveryOption `json:"delivery_option,omitempty"`
	PaymentStatus  string          `json:"payment_status"`
}

// FeedOrderItem is a single line in a feed order.
type FeedOrderItem struct {
	ProductID  string  `json:"product_id"`
	Quantity   float64 `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	TotalPrice float64 `json:"total_price"`
}

// FeedInventory is the stock level of one feed product at a farm.
type FeedInventory struct {
	ID           string    `json:"id"`
	FarmID       string    `json:"farm_id"`
	ProductID    string    `json:"product_id"`
	CurrentStock float64   `json:"current_stock"`
	MinimumStock float64   `json:"minimum_stock"`
	MaximumStock float64   `json:"maximum_stock"`
	Unit         string    `json:"unit"`
	CostPerUnit  float64   `json:"cost_per_unit"`
	ExpiryDate   time.Time `json:"expiry_date"`
	StorageSpot  string    `json:"location,omitempty"`
	LastUpdated  time.Time `json:"last_updated"`
}
