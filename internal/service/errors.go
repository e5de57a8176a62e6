package service

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrAlreadyVerified   = errors.New("email already verified")
	ErrTokenNotFound     = errors.New("verification token not found")
	ErrTokenExpired      = errors.New("verification token expired")
	ErrInvalidIDToken    = errors.New("invalid identity token")
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailNotDelivered = errors.New("verification email could not be delivered")
)

// CooldownError reports how long the caller must wait before the next
// verification token can be issued for the same email.
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("verification resend allowed in %s", e.Remaining.Round(time.Second))
}

func AsCooldown(err error) (*CooldownError, bool) {
	var cooldown *CooldownError
	if errors.As(err, &cooldown) {
		return cooldown, true
	}
	return nil, false
}
