package dto

import (
	"time"

	"trekora/internal/entity"
)

type RequestVerificationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyEmailRequest struct {
	Token string `json:"token" validate:"required"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	ExpiresIn   int64        `json:"expires_in"`
	User        UserResponse `json:"user"`
}

type ResendStatusResponse struct {
	Allowed             bool  `json:"allowed"`
	RemainingCooldownMs int64 `json:"remaining_cooldown_ms"`
}

type SessionStatusResponse struct {
	Authenticated bool          `json:"authenticated"`
	User          *UserResponse `json:"user,omitempty"`
}

type LogoutAllResponse struct {
	Revoked int64 `json:"revoked"`
}

type ErrorResponse struct {
	Message    string `json:"message"`
	CooldownMs int64  `json:"cooldown_ms,omitempty"`
}

type UserResponse struct {
	ID              string     `json:"id"`
	Email           string     `json:"email"`
	Name            *string    `json:"name,omitempty"`
	PhotoURL        *string    `json:"photo_url,omitempty"`
	Provider        string     `json:"provider"`
	EmailVerifiedAt *time.Time `json:"email_verified_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func UserResponseFromEntity(user *entity.User) UserResponse {
	return UserResponse{
		ID:              user.ID.String(),
		Email:           user.Email,
		Name:            user.Name,
		PhotoURL:        user.PhotoURL,
		Provider:        string(user.Provider),
		EmailVerifiedAt: user.EmailVerifiedAt,
		CreatedAt:       user.CreatedAt,
		UpdatedAt:       user.UpdatedAt,
	}
}
