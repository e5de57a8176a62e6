package entity

import (
	"time"

	"github.com/google/uuid"
)

// VerificationToken is a single-use email signup credential. Only the SHA-256
// hash of the raw token is stored; the raw value leaves the system once, in
// the verification email.
type VerificationToken struct {
	ID    uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email string    `gorm:"type:varchar(255);not null;index"`

	TokenHash string `gorm:"type:text;not null;index"`

	ExpiresAt time.Time
	CreatedAt time.Time
}
