package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"staybook-backend/internal/domain"
	"staybook-backend/internal/repository"

	"github.com/lib/pq"
)

type propertyRepository struct {
	db *sql.DB
}

func NewPropertyRepository(db *sql.DB) repository.PropertyRepository {
	return &propertyRepository{db: db}
}

const propertyColumns = `id, host_id, title, description, address, city, country, rental_type, price_per_night, price_per_month, max_guests, bedrooms, bathrooms, amenities, images, is_active, created_at, updated_at`

func (r *propertyRepository) Create(ctx context.Context, p *domain.Property) error {
	query := `INSERT INTO properties (host_id, title, description, address, city, country, rental_type, price_per_night, price_per_month, max_guests, bedrooms, bathrooms, amenities, images, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17) RETURNING id`
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	p.IsActive = true
	err := r.db.QueryRowContext(ctx, query,
		p.HostID, p.Title, p.Description, p.Address, p.City, p.Country, p.RentalType,
		p.PricePerNight, p.PricePerMonth, p.MaxGuests, p.Bedrooms, p.Bathrooms,
		pq.Array(nonNil(p.Amenities)), pq.Array(nonNil(p.Images)), p.IsActive, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	return mapError(err, "property")
}

func (r *propertyRepository) GetByID(ctx context.Context, id int32) (*domain.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1`
	p, err := scanProperty(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err, "property")
	}
	return p, nil
}

func (r *propertyRepository) Update(ctx context.Context, p *domain.Property) error {
	query := `UPDATE properties SET title=$1, description=$2, address=$3, city=$4, country=$5, rental_type=$6, price_per_night=$7, price_per_month=$8,
	          max_guests=$9, bedrooms=$10, bathrooms=$11, amenities=$12, images=$13, updated_at=$14 WHERE id=$15`
	p.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, query,
		p.Title, p.Description, p.Address, p.City, p.Country, p.RentalType, p.PricePerNight, p.PricePerMonth,
		p.MaxGuests, p.Bedrooms, p.Bathrooms, pq.Array(nonNil(p.Amenities)), pq.Array(nonNil(p.Images)), p.UpdatedAt, p.ID,
	)
	if err != nil {
		return mapError(err, "property")
	}
	return requireRow(res, "property")
}

func (r *propertyRepository) SoftDelete(ctx context.Context, id int32) error {
	query := `UPDATE properties SET is_active = FALSE, updated_at = $1 WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return requireRow(res, "property")
}

func (r *propertyRepository) ListActive(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE is_active = TRUE`
	var args []interface{}
	if filter.City != "" {
		args = append(args, filter.City)
		query += fmt.Sprintf(" AND LOWER(city) = LOWER($%d)", len(args))
	}
	if filter.RentalType != "" {
		args = append(args, filter.RentalType)
		query += fmt.Sprintf(" AND rental_type = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"
	return r.list(ctx, query, args...)
}

func (r *propertyRepository) ListByHost(ctx context.Context, hostID int32) ([]domain.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE host_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, hostID)
}

func (r *propertyRepository) list(ctx context.Context, query string, args ...interface{}) ([]domain.Property, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	properties := []domain.Property{}
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		properties = append(properties, *p)
	}
	return properties, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProperty(row rowScanner) (*domain.Property, error) {
	p := &domain.Property{}
	var night, month sql.NullFloat64
	err := row.Scan(&p.ID, &p.HostID, &p.Title, &p.Description, &p.Address, &p.City, &p.Country, &p.RentalType,
		&night, &month, &p.MaxGuests, &p.Bedrooms, &p.Bathrooms,
		pq.Array(&p.Amenities), pq.Array(&p.Images), &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.PricePerNight = nullableFloat(night)
	p.PricePerMonth = nullableFloat(month)
	return p, nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
