package postgres

import (
	"context"
	"database/sql"
	"time"

	"staybook-backend/internal/domain"
	"staybook-backend/internal/repository"
)

type supervisionRepository struct {
	db *sql.DB
}

func NewSupervisionRepository(db *sql.DB) repository.SupervisionRepository {
	return &supervisionRepository{db: db}
}

const supervisionColumns = `id, property_id, supervisor_id, assigned_by, active, created_at`

func (r *supervisionRepository) Create(ctx context.Context, s *domain.Supervision) error {
	query := `INSERT INTO supervisions (property_id, supervisor_id, assigned_by, active, created_at) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	s.CreatedAt = time.Now().UTC()
	err := r.db.QueryRowContext(ctx, query, s.PropertyID, s.SupervisorID, s.AssignedBy, s.Active, s.CreatedAt).Scan(&s.ID)
	return mapError(err, "supervision")
}

func (r *supervisionRepository) GetByID(ctx context.Context, id int32) (*domain.Supervision, error) {
	query := `SELECT ` + supervisionColumns + ` FROM supervisions WHERE id = $1`
	return scanSupervision(r.db.QueryRowContext(ctx, query, id))
}

func (r *supervisionRepository) GetByPropertyAndSupervisor(ctx context.Context, propertyID, supervisorID int32) (*domain.Supervision, error) {
	query := `SELECT ` + supervisionColumns + ` FROM supervisions WHERE property_id = $1 AND supervisor_id = $2`
	return scanSupervision(r.db.QueryRowContext(ctx, query, propertyID, supervisorID))
}

func (r *supervisionRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM supervisions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res, "supervision")
}

func (r *supervisionRepository) ListForUser(ctx context.Context, userID int32) ([]domain.Supervision, error) {
	query := `SELECT ` + supervisionColumns + ` FROM supervisions WHERE supervisor_id = $1 OR assigned_by = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	links := []domain.Supervision{}
	for rows.Next() {
		var s domain.Supervision
		if err := rows.Scan(&s.ID, &s.PropertyID, &s.SupervisorID, &s.AssignedBy, &s.Active, &s.CreatedAt); err != nil {
			return nil, err
		}
		links = append(links, s)
	}
	return links, rows.Err()
}

func scanSupervision(row *sql.Row) (*domain.Supervision, error) {
	s := &domain.Supervision{}
	if err := row.Scan(&s.ID, &s.PropertyID, &s.SupervisorID, &s.AssignedBy, &s.Active, &s.CreatedAt); err != nil {
		return nil, mapError(err, "supervision")
	}
	return s, nil
}
