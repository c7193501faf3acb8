package domain

import "time"

// Service is a bookable offering from a provider (vet visit, consulting, etc).
type Service struct {
	ID           string                `json:"id"`
	ProviderID   string                `json:"provider_id"`
	Type         string                `json:"type"`
	Name         string                `json:"name"`
	Description  string                `json:"description,omitempty"`
	Price        float64               `json:"price"`
	Duration     int                   `json:"duration"` // minutes
	Availability []ServiceAvailability `json:"availability,omitempty"`
	Rating       float64               `json:"rating"`
	Specialties  []string              `json:"specialties,omitempty"`
}

// ServiceAvailability is a weekly availability window for a service.
type ServiceAvailability struct {
	DayOfWeek   int    `json:"day_of_week"` // 0-6, Sunday first
	StartTime   string `json:"start_time"`  // HH:mm
	EndTime     string `json:"end_time"`    // HH:mm
	IsAvailable bool   `json:"is_available"`
}

// ServiceBooking is a scheduled appointment against a service.
type ServiceBooking struct {
	ID            string    `json:"id"`
	ServiceID     string    `json:"service_id"`
	FarmerID      string    `json:"farmer_id"`
	ProviderID    string    `json:"provider_id"`
	ScheduledDate time.Time `json:"scheduled_date"`
	Status        string    `json:"status"`
	Notes         string    `json:"notes,omitempty"`
	TotalCost     float64   `json:"total_cost"`
	PaymentStatus string    `json:"payment_status"`
}

// Review is a rating left against a service or supplier.
type Review struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	ServiceID   string    `json:"service_id,omitempty"`
	SupplierID  string    `json:"supplier_id,omitempty"`
	Rating      int       `json:"rating"` // 1-5
	Comment     string    `json:"comment,omitempty"`
	CreatedDate time.Time `json:"created_date"`
	Helpful     int       `json:"helpful"`
}
