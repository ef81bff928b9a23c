package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"staybook-backend/internal/domain"
	"staybook-backend/internal/logger"
	"staybook-backend/internal/repository"

	"github.com/lib/pq"
)

//go:embed schema.sql
var schemaSQL string

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.RoleRepository
	repository.PropertyRepository
	repository.BookingRepository
	repository.AvailabilityRepository
	repository.SupervisionRepository
	repository.VerificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		RoleRepository:         NewRoleRepository(db),
		PropertyRepository:     NewPropertyRepository(db),
		BookingRepository:      NewBookingRepository(db),
		AvailabilityRepository: NewAvailabilityRepository(db),
		SupervisionRepository:  NewSupervisionRepository(db),
		VerificationRepository: NewVerificationRepository(db),
	}
}

// Migrate applies the embedded schema. Every statement is idempotent.
func (s *Store) Migrate(ctx context.Context) error {
	logger.DatabaseCall("Migrate", "schema.sql")
	_, err := s.db.ExecContext(ctx, schemaSQL)
	logger.DatabaseResult("Migrate", 0, err)
	if err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// Postgres error codes the repositories translate into domain conflicts.
const (
	pqUniqueViolation    = "23505"
	pqExclusionViolation = "23P01"
)

// mapError turns driver level errors into domain error kinds.
func mapError(err error, entity string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewNotFoundError("%s not found", entity)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			return domain.NewConflictError("%s already exists", entity)
		case pqExclusionViolation:
			return domain.NewConflictError("%s overlaps an existing %s", entity, entity)
		}
	}
	return err
}

// withTx runs fn inside a transaction, committing only when fn succeeds.
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// nullableFloat converts NUMERIC NULL scans into optional values.
func nullableFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
