package domain

import "time"

// FarmType distinguishes what a farm produces.
type FarmType string

// Known farm types.
const (
	FarmTypeBroiler FarmType = "broiler"
	FarmTypeLayer   FarmType = "layer"
	FarmTypeMixed   FarmType = "mixed"
)

// Location is a physical address with coordinates.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
	City      string  `json:"city"`
	State     string  `json:"state"`
	Country   string  `json:"country"`
	ZipCode   string  `json:"zip_code"`
}

// Farm represents a poultry farm and its coops.
type Farm struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	OwnerID         string    `json:"owner_id"`
	Location        Location  `json:"location"`
	TotalBirds      int       `json:"total_birds"`
	FarmType        FarmType  `json:"farm_type"`
	EstablishedDate time.Time `json:"established_date"`
	Certifications  []string  `json:"certifications,omitempty"`
	Coops           []Coop    `json:"coops,omitempty"`
}

// Coop is a single housing unit within a farm.
type Coop struct {
	ID               string    `json:"id"`
	FarmID           string    `json:"farm_id"`
	Name             string    `json:"name"`
	Capacity         int       `json:"capacity"`
	CurrentBirds     int       `json:"current_birds"`
	CoopType         string    `json:"coop_type"`
	ConstructionDate time.Time `json:"construction_date"`
	LastCleaning     time.Time `json:"last_cleaning"`
}
