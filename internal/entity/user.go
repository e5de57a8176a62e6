package entity

import (
	"time"

	"github.com/google/uuid"
)

type AuthProvider string

const (
	ProviderEmail  AuthProvider = "email"
	ProviderGoogle AuthProvider = "google"
)

type User struct {
	ID       uuid.UUID    `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email    string       `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name     *string      `gorm:"type:varchar(255)"`
	PhotoURL *string      `gorm:"type:text"`
	Provider AuthProvider `gorm:"type:varchar(20);default:'email';not null"`

	// Set by the identity provider on OAuth logins, absent for email signups.
	GoogleUID *string `gorm:"type:varchar(128);uniqueIndex"`

	EmailVerifiedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	Sessions []Session
}

func (u *User) IsVerified() bool {
	return u.EmailVerifiedAt != nil
}
