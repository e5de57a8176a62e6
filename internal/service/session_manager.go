package service

import (
	"context"

	"trekora/internal/entity"
	"trekora/internal/repository"
	"trekora/internal/utils"

	"github.com/google/uuid"
)

// SessionManager mints signed session tokens and checks them against the
// session store. The store is the source of truth: revoking a row kills the
// token regardless of its signature.
type SessionManager struct {
	jwt      *utils.JWTManager
	sessions repository.SessionRepository
	clock    Clock
}

func NewSessionManager(jwt *utils.JWTManager, sessions repository.SessionRepository, clock Clock) *SessionManager {
	if clock == nil {
		clock = RealClock{}
	}
	return &SessionManager{jwt: jwt, sessions: sessions, clock: clock}
}

func (m *SessionManager) Issue(ctx context.Context, user *entity.User, ipAddress *string, userAgent *string) (string, *entity.Session, error) {
	sessionID := uuid.New()
	signed, ttl, err := m.jwt.IssueSessionToken(user.ID.String(), user.Email, sessionID.String())
	if err != nil {
		return "", nil, err
	}

	session := &entity.Session{
		ID:        sessionID,
		UserID:    user.ID,
		TokenHash: utils.HashToken(signed),
		IPAddress: ipAddress,
		UserAgent: userAgent,
		ExpiresAt: m.clock.Now().Add(ttl),
	}
	if err := m.sessions.Create(ctx, session); err != nil {
		return "", nil, err
	}
	return signed, session, nil
}

// Verify returns the decoded claims for a live session, or (nil, nil) for
// anything invalid: bad signature, expired claim, revoked or expired row.
// A row past its expiry is deleted on the way out, independent of the sweep.
func (m *SessionManager) Verify(ctx context.Context, signedToken string) (*utils.SessionClaims, error) {
	claims, err := m.jwt.ParseSessionToken(signedToken)
	if err != nil {
		return nil, nil
	}

	session, err := m.sessions.FindByTokenHash(ctx, utils.HashToken(signedToken))
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}
	if session.ExpiresAt.Before(m.clock.Now()) {
		_ = m.sessions.DeleteByID(ctx, session.ID)
		return nil, nil
	}
	return claims, nil
}

func (m *SessionManager) Revoke(ctx context.Context, signedToken string) (bool, error) {
	removed, err := m.sessions.DeleteByTokenHash(ctx, utils.HashToken(signedToken))
	if err != nil {
		return false, err
	}
	return removed > 0, nil
}

func (m *SessionManager) RevokeAll(ctx context.Context, userID uuid.UUID) (int64, error) {
	return m.sessions.DeleteAllByUser(ctx, userID)
}
