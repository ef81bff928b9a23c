package http

import (
	"context"
	"io"

	"staybook-backend/internal/domain"
	"staybook-backend/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, input service.RegisterInput) (*domain.User, string, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*domain.User), args.String(1), args.Error(2)
}
func (m *MockAuthService) Login(ctx context.Context, phone, password string) (*domain.User, string, error) {
	args := m.Called(ctx, phone, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*domain.User), args.String(1), args.Error(2)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Me(ctx context.Context, auth domain.AuthContext) (*domain.User, error) {
	args := m.Called(ctx, auth)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) UpdateProfile(ctx context.Context, auth domain.AuthContext, patch service.ProfilePatch) (*domain.User, error) {
	args := m.Called(ctx, auth, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) SetRole(ctx context.Context, auth domain.AuthContext, userID int32, role domain.Role, active bool) error {
	args := m.Called(ctx, auth, userID, role, active)
	return args.Error(0)
}
func (m *MockUserService) ActiveRoles(ctx context.Context, userID int32) ([]domain.Role, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Role), args.Error(1)
}

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) Create(ctx context.Context, auth domain.AuthContext, input service.BookingInput) (*domain.Booking, error) {
	args := m.Called(ctx, auth, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) Modify(ctx context.Context, auth domain.AuthContext, id int32, patch service.BookingPatch) (*domain.Booking, error) {
	args := m.Called(ctx, auth, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) ChangeStatus(ctx context.Context, auth domain.AuthContext, id int32, status string) (*domain.Booking, error) {
	args := m.Called(ctx, auth, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) Cancel(ctx context.Context, auth domain.AuthContext, id int32) error {
	args := m.Called(ctx, auth, id)
	return args.Error(0)
}
func (m *MockBookingService) Get(ctx context.Context, auth domain.AuthContext, id int32) (*domain.Booking, error) {
	args := m.Called(ctx, auth, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) ListMine(ctx context.Context, auth domain.AuthContext) ([]domain.Booking, error) {
	args := m.Called(ctx, auth)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingService) ListReceived(ctx context.Context, auth domain.AuthContext) ([]domain.Booking, error) {
	args := m.Called(ctx, auth)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingService) ListAll(ctx context.Context, auth domain.AuthContext) ([]domain.Booking, error) {
	args := m.Called(ctx, auth)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockAvailabilityService struct {
	mock.Mock
}

func (m *MockAvailabilityService) Calendar(ctx context.Context, propertyID int32, from, to string) ([]domain.CalendarDay, error) {
	args := m.Called(ctx, propertyID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CalendarDay), args.Error(1)
}
func (m *MockAvailabilityService) BulkSet(ctx context.Context, auth domain.AuthContext, input service.BulkOverrideInput) (int, error) {
	args := m.Called(ctx, auth, input)
	return args.Int(0), args.Error(1)
}
func (m *MockAvailabilityService) BulkClear(ctx context.Context, auth domain.AuthContext, propertyID int32, from, to string) (int64, error) {
	args := m.Called(ctx, auth, propertyID, from, to)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockAvailabilityService) ListOverrides(ctx context.Context, auth domain.AuthContext, propertyID int32) ([]domain.AvailabilityOverride, error) {
	args := m.Called(ctx, auth, propertyID)
	return args.Get(0).([]domain.AvailabilityOverride), args.Error(1)
}

type MockVerificationService struct {
	mock.Mock
}

func (m *MockVerificationService) Submit(ctx context.Context, auth domain.AuthContext, documentRefs []string, note string) (*domain.VerificationRequest, error) {
	args := m.Called(ctx, auth, documentRefs, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VerificationRequest), args.Error(1)
}
func (m *MockVerificationService) Mine(ctx context.Context, auth domain.AuthContext) (*domain.VerificationRequest, error) {
	args := m.Called(ctx, auth)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VerificationRequest), args.Error(1)
}
func (m *MockVerificationService) ListPending(ctx context.Context, auth domain.AuthContext) ([]domain.VerificationRequest, error) {
	args := m.Called(ctx, auth)
	return args.Get(0).([]domain.VerificationRequest), args.Error(1)
}
func (m *MockVerificationService) Get(ctx context.Context, auth domain.AuthContext, id int32) (*domain.VerificationRequest, error) {
	args := m.Called(ctx, auth, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VerificationRequest), args.Error(1)
}
func (m *MockVerificationService) Approve(ctx context.Context, auth domain.AuthContext, id int32, note string) (*domain.VerificationRequest, error) {
	args := m.Called(ctx, auth, id, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VerificationRequest), args.Error(1)
}
func (m *MockVerificationService) Reject(ctx context.Context, auth domain.AuthContext, id int32, note string) (*domain.VerificationRequest, error) {
	args := m.Called(ctx, auth, id, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VerificationRequest), args.Error(1)
}
func (m *MockVerificationService) Withdraw(ctx context.Context, auth domain.AuthContext, id int32) error {
	args := m.Called(ctx, auth, id)
	return args.Error(0)
}
func (m *MockVerificationService) UploadDocument(ctx context.Context, auth domain.AuthContext, filename, contentType string, body io.Reader) (string, error) {
	args := m.Called(ctx, auth, filename, contentType, body)
	return args.String(0), args.Error(1)
}
func (m *MockVerificationService) OpenDocument(ctx context.Context, auth domain.AuthContext, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, auth, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}
