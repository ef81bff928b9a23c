package domain

import "time"

type VerificationStatus string

const (
	VerificationStatusPending  VerificationStatus = "pending"
	VerificationStatusApproved VerificationStatus = "approved"
	VerificationStatusRejected VerificationStatus = "rejected"
)

type VerificationRequest struct {
	ID           int32              `json:"id"`
	UserID       int32              `json:"user_id"`
	DocumentRefs []string           `json:"document_refs"`
	Note         string             `json:"note"`
	Status       VerificationStatus `json:"status"`
	ReviewerID   *int32             `json:"reviewer_id,omitempty"`
	ReviewNote   string             `json:"review_note,omitempty"`
	ReviewedAt   *time.Time         `json:"reviewed_at,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}
