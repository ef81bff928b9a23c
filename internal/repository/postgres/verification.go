package postgres

import (
	"context"
	"database/sql"
	"time"

	"staybook-backend/internal/domain"
	"staybook-backend/internal/logger"
	"staybook-backend/internal/repository"

	"github.com/lib/pq"
)

type verificationRepository struct {
	db *sql.DB
}

func NewVerificationRepository(db *sql.DB) repository.VerificationRepository {
	return &verificationRepository{db: db}
}

const verificationColumns = `id, user_id, document_refs, note, status, reviewer_id, review_note, reviewed_at, created_at, updated_at`

func (r *verificationRepository) Create(ctx context.Context, v *domain.VerificationRequest) error {
	query := `INSERT INTO verification_requests (user_id, document_refs, note, status, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $5) RETURNING id`
	now := time.Now().UTC()
	v.CreatedAt = now
	v.UpdatedAt = now
	err := r.db.QueryRowContext(ctx, query, v.UserID, pq.Array(v.DocumentRefs), v.Note, v.Status, now).Scan(&v.ID)
	return mapError(err, "pending verification request")
}

func (r *verificationRepository) GetByID(ctx context.Context, id int32) (*domain.VerificationRequest, error) {
	query := `SELECT ` + verificationColumns + ` FROM verification_requests WHERE id = $1`
	v := &domain.VerificationRequest{}
	if err := scanVerification(r.db.QueryRowContext(ctx, query, id), v); err != nil {
		return nil, mapError(err, "verification request")
	}
	return v, nil
}

func (r *verificationRepository) GetLatestByUser(ctx context.Context, userID int32) (*domain.VerificationRequest, error) {
	query := `SELECT ` + verificationColumns + ` FROM verification_requests WHERE user_id = $1 ORDER BY created_at DESC, id DESC LIMIT 1`
	v := &domain.VerificationRequest{}
	if err := scanVerification(r.db.QueryRowContext(ctx, query, userID), v); err != nil {
		return nil, mapError(err, "verification request")
	}
	return v, nil
}

func (r *verificationRepository) HasPending(ctx context.Context, userID int32) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM verification_requests WHERE user_id = $1 AND status = 'pending')`, userID).Scan(&exists)
	return exists, err
}

func (r *verificationRepository) ListPending(ctx context.Context) ([]domain.VerificationRequest, error) {
	query := `SELECT ` + verificationColumns + ` FROM verification_requests WHERE status = 'pending' ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := []domain.VerificationRequest{}
	for rows.Next() {
		var v domain.VerificationRequest
		if err := scanVerification(rows, &v); err != nil {
			return nil, err
		}
		requests = append(requests, v)
	}
	return requests, rows.Err()
}

func (r *verificationRepository) Approve(ctx context.Context, id, reviewerID int32, note string) error {
	logger.DatabaseCall("ApproveVerification", "verification_requests+users", "id", id)
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		var userID int32
		now := time.Now().UTC()
		err := tx.QueryRowContext(ctx,
			`UPDATE verification_requests SET status = 'approved', reviewer_id = $1, review_note = $2, reviewed_at = $3, updated_at = $3
			 WHERE id = $4 AND status = 'pending' RETURNING user_id`,
			reviewerID, note, now, id).Scan(&userID)
		if err == sql.ErrNoRows {
			return domain.NewValidationError("", "not pending")
		}
		if err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `UPDATE users SET is_verified = TRUE, updated_at = $1 WHERE id = $2`, now, userID)
		if err != nil {
			return err
		}
		return requireRow(res, "user")
	})
	logger.DatabaseResult("ApproveVerification", 0, err)
	return err
}

func (r *verificationRepository) Reject(ctx context.Context, id, reviewerID int32, note string) error {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`UPDATE verification_requests SET status = 'rejected', reviewer_id = $1, review_note = $2, reviewed_at = $3, updated_at = $3
		 WHERE id = $4 AND status = 'pending'`,
		reviewerID, note, now, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.NewValidationError("", "not pending")
	}
	return nil
}

func (r *verificationRepository) Delete(ctx context.Context, v *domain.VerificationRequest) error {
	logger.DatabaseCall("DeleteVerification", "verification_requests+users", "id", v.ID, "status", v.Status)
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		if v.Status == domain.VerificationStatusApproved {
			if _, err := tx.ExecContext(ctx, `UPDATE users SET is_verified = FALSE, updated_at = $1 WHERE id = $2`, time.Now().UTC(), v.UserID); err != nil {
				return err
			}
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM verification_requests WHERE id = $1`, v.ID)
		if err != nil {
			return err
		}
		return requireRow(res, "verification request")
	})
	logger.DatabaseResult("DeleteVerification", 0, err)
	return err
}

func scanVerification(row rowScanner, v *domain.VerificationRequest) error {
	var reviewer sql.NullInt32
	var reviewedAt sql.NullTime
	err := row.Scan(&v.ID, &v.UserID, pq.Array(&v.DocumentRefs), &v.Note, &v.Status, &reviewer, &v.ReviewNote, &reviewedAt, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return err
	}
	if reviewer.Valid {
		id := reviewer.Int32
		v.ReviewerID = &id
	}
	if reviewedAt.Valid {
		t := reviewedAt.Time
		v.ReviewedAt = &t
	}
	return nil
}
