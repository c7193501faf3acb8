package domain

import "time"

// Role identifies what a user does on the platform.
type Role string

// Known user roles.
const (
	RoleFarmer       Role = "farmer"
	RoleVeterinarian Role = "veterinarian"
	RoleSupplier     Role = "supplier"
	RoleCustomer     Role = "customer"
)

// User represents a registered PoultryPro account.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	FarmID       string    `json:"farm_id,omitempty"`
	ProfileImage string    `json:"profile_image,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Location     *Location `json:"location,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
