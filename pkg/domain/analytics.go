package domain

import "time"

// FarmAnalytics is the aggregated performance summary for a farm over a period.
type FarmAnalytics struct {
	FarmID          string    `json:"farm_id"`
	Period          string    `json:"period"`
	EggProduction   int       `json:"egg_production"`
	FeedConsumption float64   `json:"feed_consumption"`
	Mortality       int       `json:"mortality"`
	MortalityRate   float64   `json:"mortality_rate"`
	Revenue         float64   `json:"revenue"`
	Expenses        float64   `json:"expenses"`
	GeneratedAt     time.Time `json:"generated_at"`
}

// ProductionRecord is one day's production log for a coop.
type ProductionRecord struct {
	ID               string    `json:"id"`
	FarmID           string    `json:"farm_id"`
	CoopID           string    `json:"coop_id"`
	Date             time.Time `json:"date"`
	EggProduction    int       `json:"egg_production"`
	FeedConsumption  float64   `json:"feed_consumption"`
	WaterConsumption float64   `json:"water_consumption"`
	Mortality        int       `json:"mortality"`
	Notes            string    `json:"notes,omitempty"`
	RecordedBy       string    `json:"recorded_by"`
}

// MarketPrice is a quoted price for a product type at a market.
type MarketPrice struct {
	ID          string    `json:"id"`
	ProductType string    `json:"product_type"`
	Price       float64   `json:"price"`
	Unit        string    `json:"unit"`
	Market      string    `json:"market"`
	Location    *Location `json:"location,omitempty"`
	Date        time.Time `json:"date"`
	Source      string    `json:"source,omitempty"`
}
