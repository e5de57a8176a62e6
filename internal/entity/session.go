package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session backs one signed access token. The row is authoritative: a JWT
// whose signature still verifies is dead as soon as its row is gone.
type Session struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index"`
	User   User      `gorm:"constraint:OnDelete:CASCADE"`

	TokenHash string `gorm:"type:text;not null;index"`

	IPAddress *string `gorm:"type:varchar(45)"`
	UserAgent *string `gorm:"type:text"`

	ExpiresAt time.Time
	CreatedAt time.Time
}
