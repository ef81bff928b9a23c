package domain

import "time"

type User struct {
	ID           int32     `json:"id"`
	PhoneNumber  string    `json:"phone_number"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Bio          string    `json:"bio,omitempty"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	BirthDate    *string   `json:"birth_date,omitempty"`
	IsVerified   bool      `json:"is_verified"`
	Roles        []Role    `json:"roles,omitempty"` // Populated when needed
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
