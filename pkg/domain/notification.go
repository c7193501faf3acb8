package domain

import "time"

// Notification represents a single notification event for a user.
type Notification struct {
	ID          string         `json:"id"`
	UserID      string         `json:"user_id"`
	Type        string         `json:"type"` // alert, reminder, update, promotion
	Title       string         `json:"title"`
	Message     string         `json:"message"`
	Data        map[string]any `json:"data,omitempty"`
	Read        bool           `json:"read"`
	CreatedDate time.Time      `json:"created_date"`
	ExpiryDate  *time.Time     `json:"expiry_date,omitempty"`
}
