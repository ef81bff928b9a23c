package service

import (
	"context"
	"time"

	"staybook-backend/internal/domain"
	"staybook-backend/internal/logger"
	"staybook-backend/internal/repository"
	"staybook-backend/internal/utils"
)

// CalendarSettings bound the ranges accepted by calendar and override operations.
type CalendarSettings struct {
	DefaultDays  int
	MaxRangeDays int
}

type availabilityService struct {
	availabilityRepo repository.AvailabilityRepository
	bookingRepo      repository.BookingRepository
	propertyRepo     repository.PropertyRepository
	access           propertyAccess
	settings         CalendarSettings
	now              func() time.Time
}

func NewAvailabilityService(
	availabilityRepo repository.AvailabilityRepository,
	bookingRepo repository.BookingRepository,
	propertyRepo repository.PropertyRepository,
	supervisionRepo repository.SupervisionRepository,
	settings CalendarSettings,
) AvailabilityService {
	if settings.DefaultDays <= 0 {
		settings.DefaultDays = 60
	}
	return &availabilityService{
		availabilityRepo: availabilityRepo,
		bookingRepo:      bookingRepo,
		propertyRepo:     propertyRepo,
		access:           propertyAccess{supervisionRepo: supervisionRepo},
		settings:         settings,
		now:              time.Now,
	}
}

func (s *availabilityService) Calendar(ctx context.Context, propertyID int32, fromRaw, toRaw string) (days []domain.CalendarDay, err error) {
	logger.EnterMethod(ctx, "availabilityService.Calendar", "property_id", propertyID, "from", fromRaw, "to", toRaw)
	defer func() { exit(ctx, "availabilityService.Calendar", err, "days", len(days)) }()

	from := utils.TruncateDay(s.now())
	if fromRaw != "" {
		if from, err = utils.ParseDay(fromRaw); err != nil {
			return nil, domain.NewValidationError("", "invalid from: %v", err)
		}
	}
	to := from.AddDate(0, 0, s.settings.DefaultDays)
	if toRaw != "" {
		if to, err = utils.ParseDay(toRaw); err != nil {
			return nil, domain.NewValidationError("", "invalid to: %v", err)
		}
	}
	if err := s.checkRange(from, to); err != nil {
		return nil, err
	}

	property, err := s.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if !property.IsActive {
		return nil, domain.NewNotFoundError("property not found")
	}

	bookings, err := s.bookingRepo.ListActiveInRange(ctx, propertyID, from, to)
	if err != nil {
		return nil, err
	}
	overrides, err := s.availabilityRepo.ListInRange(ctx, propertyID, from, to)
	if err != nil {
		return nil, err
	}
	return buildCalendar(from, to, bookings, overrides), nil
}

// buildCalendar merges holding bookings and overrides into one entry per day.
// Bookings win over overrides, a blocked override wins over its price.
func buildCalendar(from, to time.Time, bookings []domain.Booking, overrides []domain.AvailabilityOverride) []domain.CalendarDay {
	booked := make(map[string]bool)
	for _, b := range bookings {
		if !b.Status.Holds() || !b.Overlaps(from, to) {
			continue
		}
		// Only the part of the stay inside [from, to) is expanded.
		start, end := utils.TruncateDay(b.CheckIn), b.CheckOut
		if start.Before(from) {
			start = from
		}
		if end.After(to) {
			end = to
		}
		for _, d := range utils.DaysBetween(start, end) {
			booked[utils.FormatDay(d)] = true
		}
	}
	byDay := make(map[string]domain.AvailabilityOverride, len(overrides))
	for _, o := range overrides {
		byDay[o.Date] = o
	}

	days := utils.DaysBetween(from, to)
	calendar := make([]domain.CalendarDay, 0, len(days))
	for _, d := range days {
		key := utils.FormatDay(d)
		day := domain.CalendarDay{Date: key, Available: true}
		if booked[key] {
			reason := domain.ReasonBooked
			day.Available = false
			day.Reason = &reason
		} else if o, ok := byDay[key]; ok {
			if !o.Available {
				reason := domain.ReasonBlocked
				day.Available = false
				day.Reason = &reason
			} else {
				day.PriceOverride = o.PriceOverride
			}
		}
		calendar = append(calendar, day)
	}
	return calendar
}

func (s *availabilityService) BulkSet(ctx context.Context, auth domain.AuthContext, input BulkOverrideInput) (n int, err error) {
	logger.EnterMethod(ctx, "availabilityService.BulkSet", "property_id", input.PropertyID, "from", input.From, "to", input.To, "available", input.Available)
	defer func() { exit(ctx, "availabilityService.BulkSet", err, "days", n) }()

	from, to, err := s.parseRange(input.From, input.To)
	if err != nil {
		return 0, err
	}
	if input.PriceOverride != nil && *input.PriceOverride < 0 {
		return 0, domain.NewValidationError("", "price override cannot be negative")
	}
	if _, err := s.manageable(ctx, auth, input.PropertyID); err != nil {
		return 0, err
	}

	days := utils.DaysBetween(from, to)
	if input.Available && input.PriceOverride == nil {
		if _, err := s.availabilityRepo.DeleteDays(ctx, input.PropertyID, days); err != nil {
			return 0, err
		}
		return len(days), nil
	}
	if err := s.availabilityRepo.UpsertDays(ctx, input.PropertyID, days, input.Available, input.PriceOverride); err != nil {
		return 0, err
	}
	return len(days), nil
}

func (s *availabilityService) BulkClear(ctx context.Context, auth domain.AuthContext, propertyID int32, fromRaw, toRaw string) (n int64, err error) {
	logger.EnterMethod(ctx, "availabilityService.BulkClear", "property_id", propertyID, "from", fromRaw, "to", toRaw)
	defer func() { exit(ctx, "availabilityService.BulkClear", err, "deleted", n) }()

	from, to, err := s.parseRange(fromRaw, toRaw)
	if err != nil {
		return 0, err
	}
	if _, err := s.manageable(ctx, auth, propertyID); err != nil {
		return 0, err
	}
	return s.availabilityRepo.DeleteRange(ctx, propertyID, from, to)
}

func (s *availabilityService) ListOverrides(ctx context.Context, auth domain.AuthContext, propertyID int32) ([]domain.AvailabilityOverride, error) {
	if _, err := s.manageable(ctx, auth, propertyID); err != nil {
		return nil, err
	}
	return s.availabilityRepo.ListByProperty(ctx, propertyID)
}

func (s *availabilityService) manageable(ctx context.Context, auth domain.AuthContext, propertyID int32) (*domain.Property, error) {
	property, err := s.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if err := s.access.requireManage(ctx, auth, property); err != nil {
		return nil, err
	}
	return property, nil
}

func (s *availabilityService) parseRange(fromRaw, toRaw string) (time.Time, time.Time, error) {
	from, err := utils.ParseDay(fromRaw)
	if err != nil {
		return time.Time{}, time.Time{}, domain.NewValidationError("", "invalid from: %v", err)
	}
	to, err := utils.ParseDay(toRaw)
	if err != nil {
		return time.Time{}, time.Time{}, domain.NewValidationError("", "invalid to: %v", err)
	}
	if err := s.checkRange(from, to); err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}

func (s *availabilityService) checkRange(from, to time.Time) error {
	if !to.After(from) {
		return domain.NewValidationError("", "to must be after from")
	}
	if s.settings.MaxRangeDays > 0 && to.After(from.AddDate(0, 0, s.settings.MaxRangeDays)) {
		return domain.NewValidationError("", "range cannot exceed %d days", s.settings.MaxRangeDays)
	}
	return nil
}
