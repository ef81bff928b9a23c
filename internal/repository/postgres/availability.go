package postgres

import (
	"context"
	"database/sql"
	"time"

	"staybook-backend/internal/domain"
	"staybook-backend/internal/logger"
	"staybook-backend/internal/repository"
	"staybook-backend/internal/utils"

	"github.com/lib/pq"
)

type availabilityRepository struct {
	db *sql.DB
}

func NewAvailabilityRepository(db *sql.DB) repository.AvailabilityRepository {
	return &availabilityRepository{db: db}
}

const overrideColumns = `id, property_id, day, available, price_override, created_at, updated_at`

func (r *availabilityRepository) ListByProperty(ctx context.Context, propertyID int32) ([]domain.AvailabilityOverride, error) {
	query := `SELECT ` + overrideColumns + ` FROM availability_overrides WHERE property_id = $1 ORDER BY day`
	return r.list(ctx, query, propertyID)
}

func (r *availabilityRepository) ListInRange(ctx context.Context, propertyID int32, from, to time.Time) ([]domain.AvailabilityOverride, error) {
	query := `SELECT ` + overrideColumns + ` FROM availability_overrides WHERE property_id = $1 AND day >= $2 AND day < $3 ORDER BY day`
	return r.list(ctx, query, propertyID, utils.FormatDay(from), utils.FormatDay(to))
}

func (r *availabilityRepository) UpsertDays(ctx context.Context, propertyID int32, days []time.Time, available bool, priceOverride *float64) error {
	query := `INSERT INTO availability_overrides (property_id, day, available, price_override, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $5)
	          ON CONFLICT (property_id, day) DO UPDATE SET available = EXCLUDED.available, price_override = EXCLUDED.price_override, updated_at = EXCLUDED.updated_at`
	logger.DatabaseCall("UpsertDays", query, "property_id", propertyID, "days", len(days))
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, query)
		if err != nil {
			return err
		}
		defer stmt.Close()

		now := time.Now().UTC()
		for _, d := range days {
			if _, err := stmt.ExecContext(ctx, propertyID, utils.FormatDay(d), available, priceOverride, now); err != nil {
				return err
			}
		}
		return nil
	})
	logger.DatabaseResult("UpsertDays", int64(len(days)), err)
	return mapError(err, "availability override")
}

func (r *availabilityRepository) DeleteDays(ctx context.Context, propertyID int32, days []time.Time) (int64, error) {
	formatted := make([]string, len(days))
	for i, d := range days {
		formatted[i] = utils.FormatDay(d)
	}
	query := `DELETE FROM availability_overrides WHERE property_id = $1 AND day = ANY($2::date[])`
	return r.exec(ctx, "DeleteDays", query, propertyID, pq.Array(formatted))
}

func (r *availabilityRepository) DeleteRange(ctx context.Context, propertyID int32, from, to time.Time) (int64, error) {
	query := `DELETE FROM availability_overrides WHERE property_id = $1 AND day >= $2 AND day < $3`
	return r.exec(ctx, "DeleteRange", query, propertyID, utils.FormatDay(from), utils.FormatDay(to))
}

func (r *availabilityRepository) DeleteBefore(ctx context.Context, day time.Time) (int64, error) {
	query := `DELETE FROM availability_overrides WHERE day < $1`
	return r.exec(ctx, "DeleteBefore", query, utils.FormatDay(day))
}

func (r *availabilityRepository) exec(ctx context.Context, operation, query string, args ...interface{}) (int64, error) {
	logger.DatabaseCall(operation, query)
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.DatabaseResult(operation, 0, err)
		return 0, err
	}
	n, err := res.RowsAffected()
	logger.DatabaseResult(operation, n, err)
	return n, err
}

func (r *availabilityRepository) list(ctx context.Context, query string, args ...interface{}) ([]domain.AvailabilityOverride, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	overrides := []domain.AvailabilityOverride{}
	for rows.Next() {
		var o domain.AvailabilityOverride
		var day time.Time
		var price sql.NullFloat64
		if err := rows.Scan(&o.ID, &o.PropertyID, &day, &o.Available, &price, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		o.Date = utils.FormatDay(day)
		o.PriceOverride = nullableFloat(price)
		overrides = append(overrides, o)
	}
	return overrides, rows.Err()
}
