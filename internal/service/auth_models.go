package service

import (
	"time"

	"trekora/internal/entity"

	"github.com/google/uuid"
)

type LoginResult struct {
	AccessToken string
	ExpiresIn   int64
	SessionID   uuid.UUID
	User        *entity.User
}

type ResendStatus struct {
	Allowed   bool
	Remaining time.Duration
}
