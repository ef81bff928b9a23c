package postgres

import (
	"context"
	"database/sql"
	"time"

	"staybook-backend/internal/domain"
	"staybook-backend/internal/repository"
	"staybook-backend/internal/utils"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, phone_number, COALESCE(email, ''), password_hash, name, COALESCE(bio, ''), COALESCE(avatar_url, ''), birth_date, is_verified, created_at, updated_at`

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (phone_number, email, password_hash, name, bio, avatar_url, birth_date, is_verified, created_at, updated_at) 
	          VALUES ($1, NULLIF($2, ''), $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7, $8, $9, $10) RETURNING id`
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	err := r.db.QueryRowContext(ctx, query, u.PhoneNumber, u.Email, u.PasswordHash, u.Name, u.Bio, u.AvatarURL, u.BirthDate, u.IsVerified, u.CreatedAt, u.UpdatedAt).Scan(&u.ID)
	return mapError(err, "user")
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *userRepository) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE phone_number = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, phone))
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET email=NULLIF($1, ''), name=$2, bio=NULLIF($3, ''), avatar_url=NULLIF($4, ''), birth_date=$5, updated_at=$6 WHERE id=$7`
	u.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, query, u.Email, u.Name, u.Bio, u.AvatarURL, u.BirthDate, u.UpdatedAt, u.ID)
	if err != nil {
		return mapError(err, "user")
	}
	return requireRow(res, "user")
}

func (r *userRepository) scanOne(row *sql.Row) (*domain.User, error) {
	u := &domain.User{}
	var birthDate sql.NullTime
	err := row.Scan(&u.ID, &u.PhoneNumber, &u.Email, &u.PasswordHash, &u.Name, &u.Bio, &u.AvatarURL, &birthDate, &u.IsVerified, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, mapError(err, "user")
	}
	if birthDate.Valid {
		s := utils.FormatDay(birthDate.Time)
		u.BirthDate = &s
	}
	return u, nil
}

// requireRow reports NotFound when an UPDATE or DELETE matched nothing.
func requireRow(res sql.Result, entity string) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.NewNotFoundError("%s not found", entity)
	}
	return nil
}
