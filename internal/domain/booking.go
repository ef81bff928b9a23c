package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}

// Holds reports whether a booking in this status occupies its dates.
func (s BookingStatus) Holds() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed
}

// Booking occupies the half-open interval [CheckIn, CheckOut).
type Booking struct {
	ID              int32         `json:"id"`
	PropertyID      int32         `json:"property_id"`
	GuestID         int32         `json:"guest_id"`
	CheckIn         time.Time     `json:"check_in"`
	CheckOut        time.Time     `json:"check_out"`
	GuestsCount     int32         `json:"guests_count"`
	SpecialRequests string        `json:"special_requests"`
	TotalAmount     float64       `json:"total_amount"`
	RentalType      RentalType    `json:"rental_type"`
	Status          BookingStatus `json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// Overlaps is the half-open intersection test used for the no double booking rule.
func (b *Booking) Overlaps(checkIn, checkOut time.Time) bool {
	return b.CheckOut.After(checkIn) && b.CheckIn.Before(checkOut)
}
