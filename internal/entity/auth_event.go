package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AuthAction string

const (
	VerificationRequested AuthAction = "verification_requested"
	EmailVerified         AuthAction = "email_verified"
	GoogleLogin           AuthAction = "google_login"
	Logout                AuthAction = "logout"
	SessionsRevoked       AuthAction = "sessions_revoked"
)

type AuthEvent struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	UserID *uuid.UUID `gorm:"type:uuid;index"`
	User   *User      `gorm:"constraint:OnDelete:SET NULL"`

	IPAddress *string    `gorm:"type:varchar(45)"`
	Action    AuthAction `gorm:"type:varchar(40);not null"`

	Metadata datatypes.JSON

	CreatedAt time.Time
}
