package service_test

import (
	"context"
	"time"

	"staybook-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type MockRoleRepo struct {
	mock.Mock
}

func (m *MockRoleRepo) ListByUser(ctx context.Context, userID int32) ([]domain.RoleAssignment, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.RoleAssignment), args.Error(1)
}
func (m *MockRoleRepo) Grant(ctx context.Context, userID int32, role domain.Role) error {
	args := m.Called(ctx, userID, role)
	return args.Error(0)
}
func (m *MockRoleRepo) SetActive(ctx context.Context, userID int32, role domain.Role, active bool) error {
	args := m.Called(ctx, userID, role, active)
	return args.Error(0)
}

type MockPropertyRepo struct {
	mock.Mock
}

func (m *MockPropertyRepo) Create(ctx context.Context, p *domain.Property) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPropertyRepo) GetByID(ctx context.Context, id int32) (*domain.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}
func (m *MockPropertyRepo) Update(ctx context.Context, p *domain.Property) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockPropertyRepo) SoftDelete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockPropertyRepo) ListActive(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Property), args.Error(1)
}
func (m *MockPropertyRepo) ListByHost(ctx context.Context, hostID int32) ([]domain.Property, error) {
	args := m.Called(ctx, hostID)
	return args.Get(0).([]domain.Property), args.Error(1)
}

type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockBookingRepo) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) Update(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockBookingRepo) UpdateStatus(ctx context.Context, id int32, status domain.BookingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockBookingRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockBookingRepo) HasOverlap(ctx context.Context, propertyID int32, checkIn, checkOut time.Time, excludeID int32) (bool, error) {
	args := m.Called(ctx, propertyID, checkIn, checkOut, excludeID)
	return args.Bool(0), args.Error(1)
}
func (m *MockBookingRepo) ListActiveInRange(ctx context.Context, propertyID int32, from, to time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, propertyID, from, to)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListByGuest(ctx context.Context, guestID int32) ([]domain.Booking, error) {
	args := m.Called(ctx, guestID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListByHost(ctx context.Context, hostID int32) ([]domain.Booking, error) {
	args := m.Called(ctx, hostID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListAll(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) CompleteFinished(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

type MockAvailabilityRepo struct {
	mock.Mock
}

func (m *MockAvailabilityRepo) ListByProperty(ctx context.Context, propertyID int32) ([]domain.AvailabilityOverride, error) {
	args := m.Called(ctx, propertyID)
	return args.Get(0).([]domain.AvailabilityOverride), args.Error(1)
}
func (m *MockAvailabilityRepo) ListInRange(ctx context.Context, propertyID int32, from, to time.Time) ([]domain.AvailabilityOverride, error) {
	args := m.Called(ctx, propertyID, from, to)
	return args.Get(0).([]domain.AvailabilityOverride), args.Error(1)
}
func (m *MockAvailabilityRepo) UpsertDays(ctx context.Context, propertyID int32, days []time.Time, available bool, priceOverride *float64) error {
	args := m.Called(ctx, propertyID, days, available, priceOverride)
	return args.Error(0)
}
func (m *MockAvailabilityRepo) DeleteDays(ctx context.Context, propertyID int32, days []time.Time) (int64, error) {
	args := m.Called(ctx, propertyID, days)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockAvailabilityRepo) DeleteRange(ctx context.Context, propertyID int32, from, to time.Time) (int64, error) {
	args := m.Called(ctx, propertyID, from, to)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockAvailabilityRepo) DeleteBefore(ctx context.Context, day time.Time) (int64, error) {
	args := m.Called(ctx, day)
	return args.Get(0).(int64), args.Error(1)
}

type MockSupervisionRepo struct {
	mock.Mock
}

func (m *MockSupervisionRepo) Create(ctx context.Context, s *domain.Supervision) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
func (m *MockSupervisionRepo) GetByID(ctx context.Context, id int32) (*domain.Supervision, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Supervision), args.Error(1)
}
func (m *MockSupervisionRepo) GetByPropertyAndSupervisor(ctx context.Context, propertyID, supervisorID int32) (*domain.Supervision, error) {
	args := m.Called(ctx, propertyID, supervisorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Supervision), args.Error(1)
}
func (m *MockSupervisionRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockSupervisionRepo) ListForUser(ctx context.Context, userID int32) ([]domain.Supervision, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Supervision), args.Error(1)
}

type MockVerificationRepo struct {
	mock.Mock
}

func (m *MockVerificationRepo) Create(ctx context.Context, req *domain.VerificationRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockVerificationRepo) GetByID(ctx context.Context, id int32) (*domain.VerificationRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VerificationRequest), args.Error(1)
}
func (m *MockVerificationRepo) GetLatestByUser(ctx context.Context, userID int32) (*domain.VerificationRequest, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VerificationRequest), args.Error(1)
}
func (m *MockVerificationRepo) HasPending(ctx context.Context, userID int32) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}
func (m *MockVerificationRepo) ListPending(ctx context.Context) ([]domain.VerificationRequest, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.VerificationRequest), args.Error(1)
}
func (m *MockVerificationRepo) Approve(ctx context.Context, id, reviewerID int32, note string) error {
	args := m.Called(ctx, id, reviewerID, note)
	return args.Error(0)
}
func (m *MockVerificationRepo) Reject(ctx context.Context, id, reviewerID int32, note string) error {
	args := m.Called(ctx, id, reviewerID, note)
	return args.Error(0)
}
func (m *MockVerificationRepo) Delete(ctx context.Context, req *domain.VerificationRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendBookingRequested(ctx context.Context, host, guest *domain.User, property *domain.Property, booking *domain.Booking) error {
	args := m.Called(ctx, host, guest, property, booking)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingStatusChanged(ctx context.Context, guest *domain.User, property *domain.Property, booking *domain.Booking) error {
	args := m.Called(ctx, guest, property, booking)
	return args.Error(0)
}
func (m *MockEmailService) SendVerificationDecision(ctx context.Context, user *domain.User, req *domain.VerificationRequest) error {
	args := m.Called(ctx, user, req)
	return args.Error(0)
}
