package postgres

import (
	"context"
	"database/sql"
	"time"

	"staybook-backend/internal/domain"
	"staybook-backend/internal/logger"
	"staybook-backend/internal/repository"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `b.id, b.property_id, b.guest_id, b.check_in, b.check_out, b.guests_count, b.special_requests, b.total_amount, b.rental_type, b.status, b.created_at, b.updated_at`

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `INSERT INTO bookings (property_id, guest_id, check_in, check_out, guests_count, special_requests, total_amount, rental_type, status, created_at, updated_at) 
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now
	err := r.db.QueryRowContext(ctx, query, b.PropertyID, b.GuestID, b.CheckIn, b.CheckOut, b.GuestsCount, b.SpecialRequests, b.TotalAmount, b.RentalType, b.Status, b.CreatedAt, b.UpdatedAt).Scan(&b.ID)
	return mapError(err, "booking")
}

func (r *bookingRepository) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings b WHERE b.id = $1`
	b := &domain.Booking{}
	if err := scanBooking(r.db.QueryRowContext(ctx, query, id), b); err != nil {
		return nil, mapError(err, "booking")
	}
	return b, nil
}

func (r *bookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	query := `UPDATE bookings SET check_in=$1, check_out=$2, guests_count=$3, special_requests=$4, total_amount=$5, updated_at=$6 WHERE id=$7`
	b.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, query, b.CheckIn, b.CheckOut, b.GuestsCount, b.SpecialRequests, b.TotalAmount, b.UpdatedAt, b.ID)
	if err != nil {
		return mapError(err, "booking")
	}
	return requireRow(res, "booking")
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id int32, status domain.BookingStatus) error {
	query := `UPDATE bookings SET status=$1, updated_at=$2 WHERE id=$3`
	res, err := r.db.ExecContext(ctx, query, status, time.Now().UTC(), id)
	if err != nil {
		return mapError(err, "booking")
	}
	return requireRow(res, "booking")
}

func (r *bookingRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res, "booking")
}

func (r *bookingRepository) HasOverlap(ctx context.Context, propertyID int32, checkIn, checkOut time.Time, excludeID int32) (bool, error) {
	query := `SELECT EXISTS (
	            SELECT 1 FROM bookings
	            WHERE property_id = $1
	              AND status IN ('pending', 'confirmed')
	              AND NOT (check_out <= $2 OR check_in >= $3)
	              AND id <> $4
	          )`
	var exists bool
	err := r.db.QueryRowContext(ctx, query, propertyID, checkIn, checkOut, excludeID).Scan(&exists)
	return exists, err
}

func (r *bookingRepository) ListActiveInRange(ctx context.Context, propertyID int32, from, to time.Time) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings b
	          WHERE b.property_id = $1 AND b.status IN ('pending', 'confirmed') AND b.check_out > $2 AND b.check_in < $3
	          ORDER BY b.check_in`
	return r.list(ctx, query, propertyID, from, to)
}

func (r *bookingRepository) ListByGuest(ctx context.Context, guestID int32) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings b WHERE b.guest_id = $1 ORDER BY b.created_at DESC`
	return r.list(ctx, query, guestID)
}

func (r *bookingRepository) ListByHost(ctx context.Context, hostID int32) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings b JOIN properties p ON p.id = b.property_id
	          WHERE p.host_id = $1 ORDER BY b.created_at DESC`
	return r.list(ctx, query, hostID)
}

func (r *bookingRepository) ListAll(ctx context.Context) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings b ORDER BY b.created_at DESC`
	return r.list(ctx, query)
}

// CompleteFinished moves confirmed stays whose check-out has passed to completed.
func (r *bookingRepository) CompleteFinished(ctx context.Context, before time.Time) (int64, error) {
	query := `UPDATE bookings SET status = 'completed', updated_at = $1 WHERE status = 'confirmed' AND check_out < $2`
	logger.DatabaseCall("CompleteFinished", query, "before", before)
	res, err := r.db.ExecContext(ctx, query, time.Now().UTC(), before)
	if err != nil {
		logger.DatabaseResult("CompleteFinished", 0, err)
		return 0, err
	}
	n, err := res.RowsAffected()
	logger.DatabaseResult("CompleteFinished", n, err)
	return n, err
}

func (r *bookingRepository) list(ctx context.Context, query string, args ...interface{}) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := []domain.Booking{}
	for rows.Next() {
		var b domain.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func scanBooking(row rowScanner, b *domain.Booking) error {
	err := row.Scan(&b.ID, &b.PropertyID, &b.GuestID, &b.CheckIn, &b.CheckOut, &b.GuestsCount, &b.SpecialRequests, &b.TotalAmount, &b.RentalType, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return err
	}
	b.CheckIn = b.CheckIn.UTC()
	b.CheckOut = b.CheckOut.UTC()
	return nil
}
