package service_test

import (
	"context"
	"runtime"
	"testing"
	"time"

	"staybook-backend/internal/domain"
	"staybook-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type availabilityFixture struct {
	overrides    *MockAvailabilityRepo
	bookings     *MockBookingRepo
	properties   *MockPropertyRepo
	supervisions *MockSupervisionRepo
	svc          service.AvailabilityService
}

func newAvailabilityFixture() *availabilityFixture {
	f := &availabilityFixture{
		overrides:    new(MockAvailabilityRepo),
		bookings:     new(MockBookingRepo),
		properties:   new(MockPropertyRepo),
		supervisions: new(MockSupervisionRepo),
	}
	f.svc = service.NewAvailabilityService(f.overrides, f.bookings, f.properties, f.supervisions,
		service.CalendarSettings{DefaultDays: 60, MaxRangeDays: 366})
	return f
}

func TestAvailabilityService_Calendar(t *testing.T) {
	ctx := context.Background()

	t.Run("MergesBookingsAndOverrides", func(t *testing.T) {
		f := newAvailabilityFixture()
		from, to := utcDay(2024, 6, 1), utcDay(2024, 6, 10)
		f.properties.On("GetByID", mock.Anything, int32(3)).Return(shortTermProperty(), nil)
		f.bookings.On("ListActiveInRange", mock.Anything, int32(3), from, to).Return([]domain.Booking{
			{ID: 1, PropertyID: 3, CheckIn: time.Date(2024, 6, 1, 15, 0, 0, 0, time.UTC), CheckOut: time.Date(2024, 6, 5, 11, 0, 0, 0, time.UTC), Status: domain.BookingStatusConfirmed},
		}, nil)
		f.overrides.On("ListInRange", mock.Anything, int32(3), from, to).Return([]domain.AvailabilityOverride{
			{PropertyID: 3, Date: "2024-06-03", Available: false},
			{PropertyID: 3, Date: "2024-06-07", Available: false},
			{PropertyID: 3, Date: "2024-06-08", Available: true, PriceOverride: price(99)},
		}, nil)

		days, err := f.svc.Calendar(ctx, 3, "2024-06-01", "2024-06-10")
		require.NoError(t, err)
		require.Len(t, days, 9)

		reasons := map[string]string{}
		for _, d := range days {
			if d.Reason != nil {
				reasons[d.Date] = string(*d.Reason)
				assert.False(t, d.Available, d.Date)
			} else {
				assert.True(t, d.Available, d.Date)
			}
		}
		assert.Equal(t, map[string]string{
			"2024-06-01": "booked",
			"2024-06-02": "booked",
			"2024-06-03": "booked",
			"2024-06-04": "booked",
			"2024-06-07": "blocked",
		}, reasons)

		assert.Equal(t, "2024-06-01", days[0].Date)
		assert.Equal(t, "2024-06-09", days[8].Date)
		assert.Nil(t, days[4].PriceOverride)
		require.NotNil(t, days[7].PriceOverride)
		assert.Equal(t, 99.0, *days[7].PriceOverride)
	})

	t.Run("DefaultWindow", func(t *testing.T) {
		f := newAvailabilityFixture()
		f.properties.On("GetByID", mock.Anything, int32(3)).Return(shortTermProperty(), nil)
		f.bookings.On("ListActiveInRange", mock.Anything, int32(3), mock.Anything, mock.Anything).Return([]domain.Booking{}, nil)
		f.overrides.On("ListInRange", mock.Anything, int32(3), mock.Anything, mock.Anything).Return([]domain.AvailabilityOverride{}, nil)

		days, err := f.svc.Calendar(ctx, 3, "", "")
		require.NoError(t, err)
		assert.Len(t, days, 60)
		assert.Equal(t, time.Now().UTC().Format("2006-01-02"), days[0].Date)
		for _, d := range days {
			assert.True(t, d.Available)
			assert.Nil(t, d.PriceOverride)
		}
	})

	t.Run("BadRanges", func(t *testing.T) {
		f := newAvailabilityFixture()
		_, err := f.svc.Calendar(ctx, 3, "nope", "2024-06-10")
		assert.ErrorIs(t, err, domain.ErrValidation)
		_, err = f.svc.Calendar(ctx, 3, "2024-06-10", "2024-06-10")
		assert.ErrorIs(t, err, domain.ErrValidation)
		_, err = f.svc.Calendar(ctx, 3, "2024-01-01", "2025-06-01")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("UnknownProperty", func(t *testing.T) {
		f := newAvailabilityFixture()
		f.properties.On("GetByID", mock.Anything, int32(4)).Return(nil, domain.NewNotFoundError("property not found"))
		_, err := f.svc.Calendar(ctx, 4, "2024-06-01", "2024-06-10")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("HugeRangeRejectedCheaply", func(t *testing.T) {
		f := newAvailabilityFixture()
		var err error
		allocated := allocatedBytes(func() {
			_, err = f.svc.Calendar(ctx, 3, "0001-01-01", "9999-12-31")
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Less(t, allocated, uint64(1<<20))
		f.properties.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)

		f.properties.On("GetByID", mock.Anything, int32(3)).Return(nil, domain.NewNotFoundError("property not found"))
		_, err = f.svc.Calendar(ctx, 3, "2024-01-01", "2025-01-01")
		assert.ErrorIs(t, err, domain.ErrNotFound, "366 days is still accepted")
	})

	t.Run("LongBookingClippedToWindow", func(t *testing.T) {
		f := newAvailabilityFixture()
		from, to := utcDay(2024, 6, 1), utcDay(2024, 6, 3)
		f.properties.On("GetByID", mock.Anything, int32(3)).Return(shortTermProperty(), nil)
		f.bookings.On("ListActiveInRange", mock.Anything, int32(3), from, to).Return([]domain.Booking{
			{ID: 1, PropertyID: 3, CheckIn: utcDay(2000, 1, 1), CheckOut: utcDay(4000, 1, 1), Status: domain.BookingStatusConfirmed},
		}, nil)
		f.overrides.On("ListInRange", mock.Anything, int32(3), from, to).Return([]domain.AvailabilityOverride{}, nil)

		var days []domain.CalendarDay
		var err error
		allocated := allocatedBytes(func() {
			days, err = f.svc.Calendar(ctx, 3, "2024-06-01", "2024-06-03")
		})
		require.NoError(t, err)
		assert.Less(t, allocated, uint64(1<<20))
		require.Len(t, days, 2)
		for _, d := range days {
			assert.False(t, d.Available, d.Date)
			require.NotNil(t, d.Reason)
			assert.Equal(t, domain.ReasonBooked, *d.Reason)
		}
	})
}

func TestAvailabilityService_BulkSet(t *testing.T) {
	ctx := context.Background()
	host := domain.AuthContext{SubjectID: 10, Roles: []domain.Role{domain.RoleHost}}
	days := []time.Time{utcDay(2024, 6, 1), utcDay(2024, 6, 2), utcDay(2024, 6, 3)}

	t.Run("BlockUpserts", func(t *testing.T) {
		f := newAvailabilityFixture()
		f.properties.On("GetByID", mock.Anything, int32(3)).Return(shortTermProperty(), nil)
		f.overrides.On("UpsertDays", mock.Anything, int32(3), days, false, (*float64)(nil)).Return(nil)

		n, err := f.svc.BulkSet(ctx, host, service.BulkOverrideInput{PropertyID: 3, From: "2024-06-01", To: "2024-06-04", Available: false})
		require.NoError(t, err)
		assert.Equal(t, 3, n)
	})

	t.Run("AvailableWithoutPriceClears", func(t *testing.T) {
		f := newAvailabilityFixture()
		f.properties.On("GetByID", mock.Anything, int32(3)).Return(shortTermProperty(), nil)
		f.overrides.On("DeleteDays", mock.Anything, int32(3), days).Return(int64(1), nil)

		_, err := f.svc.BulkSet(ctx, host, service.BulkOverrideInput{PropertyID: 3, From: "2024-06-01", To: "2024-06-04", Available: true})
		require.NoError(t, err)
		f.overrides.AssertNotCalled(t, "UpsertDays", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("PriceOverrideUpserts", func(t *testing.T) {
		f := newAvailabilityFixture()
		f.properties.On("GetByID", mock.Anything, int32(3)).Return(shortTermProperty(), nil)
		p := price(75)
		f.overrides.On("UpsertDays", mock.Anything, int32(3), days, true, p).Return(nil)

		_, err := f.svc.BulkSet(ctx, host, service.BulkOverrideInput{PropertyID: 3, From: "2024-06-01", To: "2024-06-04", Available: true, PriceOverride: p})
		assert.NoError(t, err)
	})

	t.Run("Validation", func(t *testing.T) {
		f := newAvailabilityFixture()
		_, err := f.svc.BulkSet(ctx, host, service.BulkOverrideInput{PropertyID: 3, From: "2024-06-04", To: "2024-06-01"})
		assert.ErrorIs(t, err, domain.ErrValidation)
		_, err = f.svc.BulkSet(ctx, host, service.BulkOverrideInput{PropertyID: 3, From: "2024-01-01", To: "2025-01-03"})
		assert.ErrorIs(t, err, domain.ErrValidation)
		_, err = f.svc.BulkSet(ctx, host, service.BulkOverrideInput{PropertyID: 3, From: "2024-06-01", To: "2024-06-04", Available: true, PriceOverride: price(-1)})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("StrangerForbidden", func(t *testing.T) {
		f := newAvailabilityFixture()
		f.properties.On("GetByID", mock.Anything, int32(3)).Return(shortTermProperty(), nil)

		_, err := f.svc.BulkSet(ctx, domain.AuthContext{SubjectID: 44}, service.BulkOverrideInput{PropertyID: 3, From: "2024-06-01", To: "2024-06-04"})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("InactiveSupervisionForbidden", func(t *testing.T) {
		f := newAvailabilityFixture()
		f.properties.On("GetByID", mock.Anything, int32(3)).Return(shortTermProperty(), nil)
		f.supervisions.On("GetByPropertyAndSupervisor", mock.Anything, int32(3), int32(30)).Return(&domain.Supervision{ID: 2, Active: false}, nil)

		supervisor := domain.AuthContext{SubjectID: 30, Roles: []domain.Role{domain.RoleSupervisor}}
		_, err := f.svc.BulkSet(ctx, supervisor, service.BulkOverrideInput{PropertyID: 3, From: "2024-06-01", To: "2024-06-04"})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestAvailabilityService_BulkClearAndList(t *testing.T) {
	ctx := context.Background()
	host := domain.AuthContext{SubjectID: 10}

	f := newAvailabilityFixture()
	f.properties.On("GetByID", mock.Anything, int32(3)).Return(shortTermProperty(), nil)
	f.overrides.On("DeleteRange", mock.Anything, int32(3), utcDay(2024, 6, 1), utcDay(2024, 7, 1)).Return(int64(4), nil)
	f.overrides.On("ListByProperty", mock.Anything, int32(3)).Return([]domain.AvailabilityOverride{{Date: "2024-07-02"}}, nil)

	n, err := f.svc.BulkClear(ctx, host, 3, "2024-06-01", "2024-07-01")
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)

	list, err := f.svc.ListOverrides(ctx, host, 3)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = f.svc.ListOverrides(ctx, domain.AuthContext{SubjectID: 11}, 3)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// allocatedBytes reports the heap bytes allocated while fn runs.
func allocatedBytes(fn func()) uint64 {
	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	fn()
	runtime.ReadMemStats(&after)
	return after.TotalAlloc - before.TotalAlloc
}
