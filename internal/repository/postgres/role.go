package postgres

import (
	"context"
	"database/sql"
	"time"

	"staybook-backend/internal/domain"
	"staybook-backend/internal/repository"
)

type roleRepository struct {
	db *sql.DB
}

func NewRoleRepository(db *sql.DB) repository.RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) ListByUser(ctx context.Context, userID int32) ([]domain.RoleAssignment, error) {
	query := `SELECT user_id, role, active, created_at, updated_at FROM user_roles WHERE user_id = $1 ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []domain.RoleAssignment
	for rows.Next() {
		var ra domain.RoleAssignment
		if err := rows.Scan(&ra.UserID, &ra.Role, &ra.Active, &ra.CreatedAt, &ra.UpdatedAt); err != nil {
			return nil, err
		}
		roles = append(roles, ra)
	}
	return roles, rows.Err()
}

func (r *roleRepository) Grant(ctx context.Context, userID int32, role domain.Role) error {
	query := `INSERT INTO user_roles (user_id, role, active, created_at, updated_at) VALUES ($1, $2, TRUE, $3, $3)
	          ON CONFLICT (user_id, role) DO UPDATE SET active = TRUE, updated_at = EXCLUDED.updated_at
	          WHERE user_roles.active = FALSE`
	_, err := r.db.ExecContext(ctx, query, userID, role, time.Now().UTC())
	return mapError(err, "role")
}

func (r *roleRepository) SetActive(ctx context.Context, userID int32, role domain.Role, active bool) error {
	if active {
		return r.Grant(ctx, userID, role)
	}
	query := `UPDATE user_roles SET active = FALSE, updated_at = $1 WHERE user_id = $2 AND role = $3`
	res, err := r.db.ExecContext(ctx, query, time.Now().UTC(), userID, role)
	if err != nil {
		return err
	}
	return requireRow(res, "role assignment")
}
