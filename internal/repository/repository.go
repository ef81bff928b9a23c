package repository

import (
	"context"
	"time"

	"staybook-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type RoleRepository interface {
	ListByUser(ctx context.Context, userID int32) ([]domain.RoleAssignment, error)
	// Grant creates the assignment or reactivates an inactive one.
	Grant(ctx context.Context, userID int32, role domain.Role) error
	SetActive(ctx context.Context, userID int32, role domain.Role, active bool) error
}

type PropertyRepository interface {
	Create(ctx context.Context, property *domain.Property) error
	GetByID(ctx context.Context, id int32) (*domain.Property, error)
	Update(ctx context.Context, property *domain.Property) error
	SoftDelete(ctx context.Context, id int32) error
	ListActive(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, error)
	ListByHost(ctx context.Context, hostID int32) ([]domain.Property, error)
}

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int32) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
	UpdateStatus(ctx context.Context, id int32, status domain.BookingStatus) error
	Delete(ctx context.Context, id int32) error
	// HasOverlap reports whether a pending or confirmed booking on the property
	// intersects [checkIn, checkOut). excludeID 0 excludes nothing.
	HasOverlap(ctx context.Context, propertyID int32, checkIn, checkOut time.Time, excludeID int32) (bool, error)
	ListActiveInRange(ctx context.Context, propertyID int32, from, to time.Time) ([]domain.Booking, error)
	ListByGuest(ctx context.Context, guestID int32) ([]domain.Booking, error)
	ListByHost(ctx context.Context, hostID int32) ([]domain.Booking, error)
	ListAll(ctx context.Context) ([]domain.Booking, error)
	CompleteFinished(ctx context.Context, before time.Time) (int64, error)
}

type AvailabilityRepository interface {
	ListByProperty(ctx context.Context, propertyID int32) ([]domain.AvailabilityOverride, error)
	ListInRange(ctx context.Context, propertyID int32, from, to time.Time) ([]domain.AvailabilityOverride, error)
	// UpsertDays writes one row per day in a single transaction.
	UpsertDays(ctx context.Context, propertyID int32, days []time.Time, available bool, priceOverride *float64) error
	DeleteDays(ctx context.Context, propertyID int32, days []time.Time) (int64, error)
	DeleteRange(ctx context.Context, propertyID int32, from, to time.Time) (int64, error)
	DeleteBefore(ctx context.Context, day time.Time) (int64, error)
}

type SupervisionRepository interface {
	Create(ctx context.Context, s *domain.Supervision) error
	GetByID(ctx context.Context, id int32) (*domain.Supervision, error)
	GetByPropertyAndSupervisor(ctx context.Context, propertyID, supervisorID int32) (*domain.Supervision, error)
	Delete(ctx context.Context, id int32) error
	ListForUser(ctx context.Context, userID int32) ([]domain.Supervision, error)
}

type VerificationRepository interface {
	Create(ctx context.Context, req *domain.VerificationRequest) error
	GetByID(ctx context.Context, id int32) (*domain.VerificationRequest, error)
	GetLatestByUser(ctx context.Context, userID int32) (*domain.VerificationRequest, error)
	HasPending(ctx context.Context, userID int32) (bool, error)
	ListPending(ctx context.Context) ([]domain.VerificationRequest, error)
	// Approve marks the request approved and the owner verified in one transaction.
	Approve(ctx context.Context, id, reviewerID int32, note string) error
	Reject(ctx context.Context, id, reviewerID int32, note string) error
	// Delete removes the request, reverting the owner's verified flag first when it was approved.
	Delete(ctx context.Context, req *domain.VerificationRequest) error
}
