package domain

import "time"

type RentalType string

const (
	RentalTypeShortTerm RentalType = "short_term"
	RentalTypeLongTerm  RentalType = "long_term"
)

type Property struct {
	ID            int32      `json:"id"`
	HostID        int32      `json:"host_id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Address       string     `json:"address"`
	City          string     `json:"city"`
	Country       string     `json:"country"`
	RentalType    RentalType `json:"rental_type"`
	PricePerNight *float64   `json:"price_per_night"`
	PricePerMonth *float64   `json:"price_per_month"`
	MaxGuests     int32      `json:"max_guests"`
	Bedrooms      int32      `json:"bedrooms"`
	Bathrooms     int32      `json:"bathrooms"`
	Amenities     []string   `json:"amenities"`
	Images        []string   `json:"images"`
	IsActive      bool       `json:"is_active"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type PropertyFilter struct {
	City       string
	RentalType RentalType
}
