package postgres_test

import (
	"context"
	"testing"
	"time"

	"staybook-backend/internal/domain"
	"staybook-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bookingRowColumns = []string{"id", "property_id", "guest_id", "check_in", "check_out", "guests_count", "special_requests", "total_amount", "rental_type", "status", "created_at", "updated_at"}

func TestBookingRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewBookingRepository(db)
	ctx := context.Background()
	checkIn := time.Date(2030, 1, 10, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2030, 1, 13, 0, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		b := &domain.Booking{PropertyID: 3, GuestID: 7, CheckIn: checkIn, CheckOut: checkOut, GuestsCount: 2,
			TotalAmount: 300, RentalType: domain.RentalTypeShortTerm, Status: domain.BookingStatusPending}

		mock.ExpectQuery("INSERT INTO bookings").
			WithArgs(int32(3), int32(7), checkIn, checkOut, int32(2), "", 300.0, domain.RentalTypeShortTerm, domain.BookingStatusPending, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

		err := repo.Create(ctx, b)
		assert.NoError(t, err)
		assert.Equal(t, int32(11), b.ID)
	})

	t.Run("ExclusionViolationIsConflict", func(t *testing.T) {
		b := &domain.Booking{PropertyID: 3, GuestID: 8, CheckIn: checkIn, CheckOut: checkOut, GuestsCount: 1,
			TotalAmount: 300, RentalType: domain.RentalTypeShortTerm, Status: domain.BookingStatusPending}

		mock.ExpectQuery("INSERT INTO bookings").
			WillReturnError(&pq.Error{Code: "23P01"})

		err := repo.Create(ctx, b)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewBookingRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		rows := sqlmock.NewRows(bookingRowColumns).
			AddRow(5, 3, 7, time.Date(2030, 1, 10, 0, 0, 0, 0, time.UTC), time.Date(2030, 1, 13, 0, 0, 0, 0, time.UTC), 2, "late arrival", 300.0, "short_term", "confirmed", now, now)
		mock.ExpectQuery("SELECT (.+) FROM bookings b WHERE b.id = \\$1").
			WithArgs(int32(5)).
			WillReturnRows(rows)

		b, err := repo.GetByID(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, int32(5), b.ID)
		assert.Equal(t, domain.BookingStatusConfirmed, b.Status)
		assert.Equal(t, "late arrival", b.SpecialRequests)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM bookings b WHERE b.id = \\$1").
			WithArgs(int32(6)).
			WillReturnRows(sqlmock.NewRows(bookingRowColumns))

		b, err := repo.GetByID(ctx, 6)
		assert.Nil(t, b)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestBookingRepository_HasOverlap(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewBookingRepository(db)
	checkIn := time.Date(2030, 2, 1, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2030, 2, 4, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(int32(3), checkIn, checkOut, int32(9)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	overlap, err := repo.HasOverlap(context.Background(), 3, checkIn, checkOut, 9)
	assert.NoError(t, err)
	assert.True(t, overlap)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewBookingRepository(db)
	ctx := context.Background()

	mock.ExpectExec("UPDATE bookings SET status").
		WithArgs(domain.BookingStatusCancelled, sqlmock.AnyArg(), int32(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.UpdateStatus(ctx, 4, domain.BookingStatusCancelled))

	mock.ExpectExec("UPDATE bookings SET status").
		WithArgs(domain.BookingStatusCancelled, sqlmock.AnyArg(), int32(40)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.UpdateStatus(ctx, 40, domain.BookingStatusCancelled), domain.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_ListByHost(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewBookingRepository(db)
	now := time.Now()
	rows := sqlmock.NewRows(bookingRowColumns).
		AddRow(1, 3, 7, now, now.Add(48*time.Hour), 1, "", 200.0, "short_term", "pending", now, now).
		AddRow(2, 4, 8, now, now.Add(24*time.Hour), 2, "", 100.0, "short_term", "confirmed", now, now)
	mock.ExpectQuery("SELECT (.+) FROM bookings b JOIN properties p").
		WithArgs(int32(2)).
		WillReturnRows(rows)

	bookings, err := repo.ListByHost(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, bookings, 2)
	assert.Equal(t, int32(4), bookings[1].PropertyID)
}

func TestBookingRepository_CompleteFinished(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewBookingRepository(db)
	before := time.Date(2030, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec("UPDATE bookings SET status = 'completed'").
		WithArgs(sqlmock.AnyArg(), before).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.CompleteFinished(context.Background(), before)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
