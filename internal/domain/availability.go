package domain

import "time"

// AvailabilityOverride is a manual per-day layer on top of booking occupancy.
// Date is a calendar day formatted as 2006-01-02.
type AvailabilityOverride struct {
	ID            int32     `json:"id"`
	PropertyID    int32     `json:"property_id"`
	Date          string    `json:"date"`
	Available     bool      `json:"available"`
	PriceOverride *float64  `json:"price_override"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type UnavailableReason string

const (
	ReasonBooked  UnavailableReason = "booked"
	ReasonBlocked UnavailableReason = "blocked"
)

type CalendarDay struct {
	Date          string             `json:"date"`
	Available     bool               `json:"available"`
	Reason        *UnavailableReason `json:"reason"`
	PriceOverride *float64           `json:"price_override"`
}
