package service

import (
	"context"
	"fmt"
	"time"

	"staybook-backend/internal/domain"
	"staybook-backend/internal/logger"
	"staybook-backend/internal/repository"
	"staybook-backend/internal/utils"
)

type bookingService struct {
	bookingRepo  repository.BookingRepository
	propertyRepo repository.PropertyRepository
	userRepo     repository.UserRepository
	access       propertyAccess
	emailSvc     EmailService
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	propertyRepo repository.PropertyRepository,
	userRepo repository.UserRepository,
	supervisionRepo repository.SupervisionRepository,
	emailSvc EmailService,
) BookingService {
	return &bookingService{
		bookingRepo:  bookingRepo,
		propertyRepo: propertyRepo,
		userRepo:     userRepo,
		access:       propertyAccess{supervisionRepo: supervisionRepo},
		emailSvc:     emailSvc,
	}
}

func (s *bookingService) Create(ctx context.Context, auth domain.AuthContext, input BookingInput) (b *domain.Booking, err error) {
	logger.EnterMethod(ctx, "bookingService.Create", "guest_id", auth.SubjectID, "property_id", input.PropertyID)
	defer func() { exit(ctx, "bookingService.Create", err) }()

	checkIn, checkOut, err := parseStay(input.CheckIn, input.CheckOut)
	if err != nil {
		return nil, err
	}
	if input.GuestsCount < 1 {
		return nil, domain.NewValidationError("", "guests count must be at least 1")
	}
	if input.PropertyID == 0 {
		return nil, domain.NewValidationError("", "property id is required")
	}

	property, err := s.propertyRepo.GetByID(ctx, input.PropertyID)
	if err != nil {
		return nil, err
	}
	if !property.IsActive {
		return nil, domain.NewNotFoundError("property not found")
	}
	if property.MaxGuests > 0 && input.GuestsCount > property.MaxGuests {
		return nil, domain.NewValidationError("", "property accepts at most %d guests", property.MaxGuests)
	}
	if property.HostID == auth.SubjectID {
		return nil, domain.NewValidationError("", "hosts cannot book their own property")
	}

	if err := s.ensureFree(ctx, property.ID, checkIn, checkOut, 0); err != nil {
		return nil, err
	}
	total, err := utils.CalculateBookingTotal(property, checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	b = &domain.Booking{
		PropertyID:      property.ID,
		GuestID:         auth.SubjectID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		GuestsCount:     input.GuestsCount,
		SpecialRequests: input.SpecialRequests,
		TotalAmount:     total,
		RentalType:      property.RentalType,
		Status:          domain.BookingStatusPending,
	}
	if err := s.bookingRepo.Create(ctx, b); err != nil {
		return nil, err
	}

	host, hostErr := s.userRepo.GetByID(ctx, property.HostID)
	guest, guestErr := s.userRepo.GetByID(ctx, auth.SubjectID)
	if hostErr == nil && guestErr == nil {
		notifyFailed(ctx, "booking_requested", s.emailSvc.SendBookingRequested(ctx, host, guest, property, b))
	}
	return b, nil
}

func (s *bookingService) Modify(ctx context.Context, auth domain.AuthContext, id int32, patch BookingPatch) (b *domain.Booking, err error) {
	logger.EnterMethod(ctx, "bookingService.Modify", "booking_id", id)
	defer func() { exit(ctx, "bookingService.Modify", err) }()

	b, err = s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.GuestID != auth.SubjectID {
		return nil, domain.NewForbiddenError("only the guest may modify this booking")
	}

	checkIn, checkOut := b.CheckIn, b.CheckOut
	if patch.CheckIn != nil {
		if checkIn, err = utils.ParseInstant(*patch.CheckIn); err != nil {
			return nil, domain.NewValidationError("", "invalid check-in: %v", err)
		}
	}
	if patch.CheckOut != nil {
		if checkOut, err = utils.ParseInstant(*patch.CheckOut); err != nil {
			return nil, domain.NewValidationError("", "invalid check-out: %v", err)
		}
	}
	if !checkOut.After(checkIn) {
		return nil, domain.NewValidationError("", "check-out must be after check-in")
	}

	var property *domain.Property
	if patch.GuestsCount != nil {
		if *patch.GuestsCount < 1 {
			return nil, domain.NewValidationError("", "guests count must be at least 1")
		}
		if property, err = s.propertyRepo.GetByID(ctx, b.PropertyID); err != nil {
			return nil, err
		}
		if property.MaxGuests > 0 && *patch.GuestsCount > property.MaxGuests {
			return nil, domain.NewValidationError("", "property accepts at most %d guests", property.MaxGuests)
		}
		b.GuestsCount = *patch.GuestsCount
	}
	if patch.SpecialRequests != nil {
		b.SpecialRequests = *patch.SpecialRequests
	}

	if err := s.ensureFree(ctx, b.PropertyID, checkIn, checkOut, b.ID); err != nil {
		return nil, err
	}

	if !checkIn.Equal(b.CheckIn) || !checkOut.Equal(b.CheckOut) {
		if property == nil {
			if property, err = s.propertyRepo.GetByID(ctx, b.PropertyID); err != nil {
				return nil, err
			}
		}
		if b.TotalAmount, err = utils.CalculateBookingTotal(property, checkIn, checkOut); err != nil {
			return nil, err
		}
		b.CheckIn, b.CheckOut = checkIn, checkOut
	}

	if err := s.bookingRepo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *bookingService) ChangeStatus(ctx context.Context, auth domain.AuthContext, id int32, status string) (b *domain.Booking, err error) {
	logger.EnterMethod(ctx, "bookingService.ChangeStatus", "booking_id", id, "status", status)
	defer func() { exit(ctx, "bookingService.ChangeStatus", err) }()

	next := domain.BookingStatus(status)
	if !next.Valid() {
		return nil, domain.NewValidationError("", "unknown booking status %q", status)
	}

	b, err = s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	property, err := s.propertyRepo.GetByID(ctx, b.PropertyID)
	if err != nil {
		return nil, err
	}
	if err := s.access.requireManage(ctx, auth, property); err != nil {
		return nil, err
	}

	if err := s.bookingRepo.UpdateStatus(ctx, b.ID, next); err != nil {
		return nil, err
	}
	b.Status = next

	if guest, err := s.userRepo.GetByID(ctx, b.GuestID); err == nil {
		notifyFailed(ctx, "booking_status_changed", s.emailSvc.SendBookingStatusChanged(ctx, guest, property, b))
	}
	return b, nil
}

func (s *bookingService) Cancel(ctx context.Context, auth domain.AuthContext, id int32) (err error) {
	logger.EnterMethod(ctx, "bookingService.Cancel", "booking_id", id)
	defer func() { exit(ctx, "bookingService.Cancel", err) }()

	b, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if b.GuestID != auth.SubjectID {
		return domain.NewForbiddenError("only the guest may cancel this booking")
	}
	return s.bookingRepo.Delete(ctx, b.ID)
}

func (s *bookingService) Get(ctx context.Context, auth domain.AuthContext, id int32) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.GuestID == auth.SubjectID || auth.IsAdmin() {
		return b, nil
	}
	property, err := s.propertyRepo.GetByID(ctx, b.PropertyID)
	if err != nil {
		return nil, err
	}
	ok, err := s.access.canManage(ctx, auth, property)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.NewForbiddenError("not allowed to view this booking")
	}
	return b, nil
}

func (s *bookingService) ListMine(ctx context.Context, auth domain.AuthContext) ([]domain.Booking, error) {
	return s.bookingRepo.ListByGuest(ctx, auth.SubjectID)
}

func (s *bookingService) ListReceived(ctx context.Context, auth domain.AuthContext) ([]domain.Booking, error) {
	return s.bookingRepo.ListByHost(ctx, auth.SubjectID)
}

func (s *bookingService) ListAll(ctx context.Context, auth domain.AuthContext) ([]domain.Booking, error) {
	if !auth.IsAdmin() {
		return nil, domain.NewForbiddenError("admin role required")
	}
	return s.bookingRepo.ListAll(ctx)
}

// ensureFree returns Conflict when another holding booking intersects the stay.
func (s *bookingService) ensureFree(ctx context.Context, propertyID int32, checkIn, checkOut time.Time, excludeID int32) error {
	overlap, err := s.bookingRepo.HasOverlap(ctx, propertyID, checkIn, checkOut, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check overlapping bookings: %w", err)
	}
	if overlap {
		return domain.NewConflictError("property is already booked for the requested dates")
	}
	return nil
}

func parseStay(checkInRaw, checkOutRaw string) (time.Time, time.Time, error) {
	checkIn, err := utils.ParseInstant(checkInRaw)
	if err != nil {
		return time.Time{}, time.Time{}, domain.NewValidationError("", "invalid check-in: %v", err)
	}
	checkOut, err := utils.ParseInstant(checkOutRaw)
	if err != nil {
		return time.Time{}, time.Time{}, domain.NewValidationError("", "invalid check-out: %v", err)
	}
	if !checkOut.After(checkIn) {
		return time.Time{}, time.Time{}, domain.NewValidationError("", "check-out must be after check-in")
	}
	return checkIn, checkOut, nil
}
