package domain

import (
	"time"

	"github.com/google/uuid"
)

const UnknownUserName = "Unknown User"

type User struct {
	ID                      uuid.UUID  `json:"id" db:"id"`
	Email                   string     `json:"email" db:"email"`
	PasswordHash            string     `json:"-" db:"password_hash"`
	Username                *string    `json:"username,omitempty" db:"username"`
	EmailName               string     `json:"email_name" db:"email_name"`
	Description             *string    `json:"user_description,omitempty" db:"user_description"`
	Municipality            *string    `json:"municipality,omitempty" db:"municipality"`
	AvatarURL               *string    `json:"avatar_url,omitempty" db:"avatar_url"`
	IsEmailVerified         bool       `json:"is_email_verified" db:"is_email_verified"`
	EmailVerificationToken  *string    `json:"-" db:"email_verification_token"`
	EmailVerificationSentAt *time.Time `json:"-" db:"email_verification_sent_at"`
	PasswordResetToken      *string    `json:"-" db:"password_reset_token"`
	PasswordResetExpiresAt  *time.Time `json:"-" db:"password_reset_expires_at"`
	CreatedAt               time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt               time.Time  `json:"updated_at" db:"updated_at"`
}

// DisplayName prefers the chosen username, then the local part of the email.
func (u *User) DisplayName() string {
	if u == nil {
		return UnknownUserName
	}
	return DisplayName(u.Username, u.EmailName)
}

func DisplayName(username *string, emailName string) string {
	if username != nil && *username != "" {
		return *username
	}
	if emailName != "" {
		return emailName
	}
	return UnknownUserName
}

func (u *User) Public() PublicProfile {
	return PublicProfile{
		ID:           u.ID,
		DisplayName:  u.DisplayName(),
		Username:     u.Username,
		Description:  u.Description,
		Municipality: u.Municipality,
		AvatarURL:    u.AvatarURL,
		CreatedAt:    u.CreatedAt,
	}
}

type PublicProfile struct {
	ID           uuid.UUID `json:"id"`
	DisplayName  string    `json:"display_name"`
	Username     *string   `json:"username,omitempty"`
	Description  *string   `json:"user_description,omitempty"`
	Municipality *string   `json:"municipality,omitempty"`
	AvatarURL    *string   `json:"avatar_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Username string `json:"username,omitempty" validate:"omitempty,min=2,max=50"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileInput struct {
	Username     *string `json:"username,omitempty" validate:"omitempty,min=2,max=50"`
	Description  *string `json:"user_description,omitempty" validate:"omitempty,max=2000"`
	Municipality *string `json:"municipality,omitempty" validate:"omitempty,max=100"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}
