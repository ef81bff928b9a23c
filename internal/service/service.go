package service

import (
	"context"
	"io"

	"staybook-backend/internal/domain"
)

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, string, error)
	Login(ctx context.Context, phone, password string) (*domain.User, string, error) // user carries active roles
}

type UserService interface {
	Me(ctx context.Context, auth domain.AuthContext) (*domain.User, error)
	UpdateProfile(ctx context.Context, auth domain.AuthContext, patch ProfilePatch) (*domain.User, error)
	SetRole(ctx context.Context, auth domain.AuthContext, userID int32, role domain.Role, active bool) error
	// ActiveRoles is used by the transport layer to build an AuthContext.
	ActiveRoles(ctx context.Context, userID int32) ([]domain.Role, error)
}

type PropertyService interface {
	Create(ctx context.Context, auth domain.AuthContext, property *domain.Property) error
	List(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, error)
	Get(ctx context.Context, id int32) (*domain.Property, error)
	Update(ctx context.Context, auth domain.AuthContext, id int32, patch PropertyPatch) (*domain.Property, error)
	Delete(ctx context.Context, auth domain.AuthContext, id int32) error
	ListMine(ctx context.Context, auth domain.AuthContext) ([]domain.Property, error)
}

type BookingService interface {
	Create(ctx context.Context, auth domain.AuthContext, input BookingInput) (*domain.Booking, error)
	Modify(ctx context.Context, auth domain.AuthContext, id int32, patch BookingPatch) (*domain.Booking, error)
	ChangeStatus(ctx context.Context, auth domain.AuthContext, id int32, status string) (*domain.Booking, error)
	Cancel(ctx context.Context, auth domain.AuthContext, id int32) error
	Get(ctx context.Context, auth domain.AuthContext, id int32) (*domain.Booking, error)
	ListMine(ctx context.Context, auth domain.AuthContext) ([]domain.Booking, error)
	ListReceived(ctx context.Context, auth domain.AuthContext) ([]domain.Booking, error)
	ListAll(ctx context.Context, auth domain.AuthContext) ([]domain.Booking, error)
}

type AvailabilityService interface {
	// Calendar renders one entry per day in [from, to). Empty bounds use the configured default window.
	Calendar(ctx context.Context, propertyID int32, from, to string) ([]domain.CalendarDay, error)
	BulkSet(ctx context.Context, auth domain.AuthContext, input BulkOverrideInput) (int, error)
	BulkClear(ctx context.Context, auth domain.AuthContext, propertyID int32, from, to string) (int64, error)
	ListOverrides(ctx context.Context, auth domain.AuthContext, propertyID int32) ([]domain.AvailabilityOverride, error)
}

type SupervisionService interface {
	// Assign returns the link and whether it was newly created.
	Assign(ctx context.Context, auth domain.AuthContext, propertyID int32, phone string) (*domain.Supervision, bool, error)
	Revoke(ctx context.Context, auth domain.AuthContext, id int32) error
	List(ctx context.Context, auth domain.AuthContext) ([]domain.Supervision, error)
}

type VerificationService interface {
	Submit(ctx context.Context, auth domain.AuthContext, documentRefs []string, note string) (*domain.VerificationRequest, error)
	Mine(ctx context.Context, auth domain.AuthContext) (*domain.VerificationRequest, error)
	ListPending(ctx context.Context, auth domain.AuthContext) ([]domain.VerificationRequest, error)
	Get(ctx context.Context, auth domain.AuthContext, id int32) (*domain.VerificationRequest, error)
	Approve(ctx context.Context, auth domain.AuthContext, id int32, note string) (*domain.VerificationRequest, error)
	Reject(ctx context.Context, auth domain.AuthContext, id int32, note string) (*domain.VerificationRequest, error)
	Withdraw(ctx context.Context, auth domain.AuthContext, id int32) error

	UploadDocument(ctx context.Context, auth domain.AuthContext, filename, contentType string, body io.Reader) (string, error)
	OpenDocument(ctx context.Context, auth domain.AuthContext, key string) (io.ReadCloser, error)
}

type EmailService interface {
	SendBookingRequested(ctx context.Context, host, guest *domain.User, property *domain.Property, booking *domain.Booking) error
	SendBookingStatusChanged(ctx context.Context, guest *domain.User, property *domain.Property, booking *domain.Booking) error
	SendVerificationDecision(ctx context.Context, user *domain.User, req *domain.VerificationRequest) error
}

type RegisterInput struct {
	PhoneNumber string
	Name        string
	Password    string
	Email       string
}

// ProfilePatch fields left nil are not changed.
type ProfilePatch struct {
	Name      *string
	Email     *string
	Bio       *string
	AvatarURL *string
	BirthDate *string
}

type PropertyPatch struct {
	Title         *string
	Description   *string
	Address       *string
	City          *string
	Country       *string
	RentalType    *domain.RentalType
	PricePerNight *float64
	PricePerMonth *float64
	MaxGuests     *int32
	Bedrooms      *int32
	Bathrooms     *int32
	Amenities     []string
	Images        []string
}

type BookingInput struct {
	PropertyID      int32
	CheckIn         string
	CheckOut        string
	GuestsCount     int32
	SpecialRequests string
}

type BookingPatch struct {
	CheckIn         *string
	CheckOut        *string
	GuestsCount     *int32
	SpecialRequests *string
}

type BulkOverrideInput struct {
	PropertyID    int32
	From          string
	To            string
	Available     bool
	PriceOverride *float64
}
