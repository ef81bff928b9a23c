package utils

import (
	"time"

	"staybook-backend/internal/domain"
)

// Error codes reported when a property cannot be priced.
const (
	CodeMissingNightPrice = "MISSING_NIGHT_PRICE"
	CodeMissingMonthPrice = "MISSING_MONTH_PRICE"
	CodeInvalidRentalType = "INVALID_RENTAL_TYPE"
)

// CalculateBookingTotal prices a stay on a property.
// Short term stays pay the nightly rate for every started day, long term stays
// pay one monthly rate regardless of length.
func CalculateBookingTotal(property *domain.Property, checkIn, checkOut time.Time) (float64, error) {
	switch property.RentalType {
	case domain.RentalTypeShortTerm:
		if property.PricePerNight == nil {
			return 0, domain.NewValidationError(CodeMissingNightPrice, "property has no nightly price")
		}
		days := CeilDays(checkIn, checkOut)
		return float64(days) * *property.PricePerNight, nil
	case domain.RentalTypeLongTerm:
		if property.PricePerMonth == nil {
			return 0, domain.NewValidationError(CodeMissingMonthPrice, "property has no monthly price")
		}
		return *property.PricePerMonth, nil
	default:
		return 0, domain.NewValidationError(CodeInvalidRentalType, "unsupported rental type %q", property.RentalType)
	}
}

// ValidatePricing checks that the rate required by the rental type is present.
func ValidatePricing(rentalType domain.RentalType, pricePerNight, pricePerMonth *float64) error {
	switch rentalType {
	case domain.RentalTypeShortTerm:
		if pricePerNight == nil || *pricePerNight <= 0 {
			return domain.NewValidationError(CodeMissingNightPrice, "short term listings need a positive nightly price")
		}
	case domain.RentalTypeLongTerm:
		if pricePerMonth == nil || *pricePerMonth <= 0 {
			return domain.NewValidationError(CodeMissingMonthPrice, "long term listings need a positive monthly price")
		}
	default:
		return domain.NewValidationError(CodeInvalidRentalType, "rental type must be short_term or long_term")
	}
	return nil
}
