package service

import (
	"context"
	"time"
)

type AuthConfig struct {
	SessionTTL           time.Duration
	VerificationTokenTTL time.Duration
	ResendCooldown       time.Duration
}

type EmailSender interface {
	SendVerificationEmail(ctx context.Context, email string, token string) error
}

// IdentityVerifier checks an opaque OAuth identity token and returns the
// verified identity behind it.
type IdentityVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*ExternalIdentity, error)
}

type ExternalIdentity struct {
	UID      string
	Email    string
	Name     string
	PhotoURL string
}

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}
