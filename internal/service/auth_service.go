package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"trekora/internal/entity"
	"trekora/internal/repository"
	"trekora/internal/utils"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AuthService struct {
	users         repository.UserRepository
	verifications repository.VerificationTokenRepository
	authEvents    repository.AuthEventRepository

	sessions    *SessionManager
	emailSender EmailSender
	google      IdentityVerifier
	clock       Clock
	config      AuthConfig
}

func NewAuthService(
	users repository.UserRepository,
	verifications repository.VerificationTokenRepository,
	authEvents repository.AuthEventRepository,
	sessions *SessionManager,
	emailSender EmailSender,
	google IdentityVerifier,
	clock Clock,
	config AuthConfig,
) *AuthService {
	if clock == nil {
		clock = RealClock{}
	}
	return &AuthService{
		users:         users,
		verifications: verifications,
		authEvents:    authEvents,
		sessions:      sessions,
		emailSender:   emailSender,
		google:        google,
		clock:         clock,
		config:        config,
	}
}

// RequestVerification issues a fresh single-use signup token for the email
// and mails it. Issuing replaces any prior tokens for the same address, so at
// most one is active after the call.
func (s *AuthService) RequestVerification(ctx context.Context, email string, ipAddress *string) error {
	email = utils.NormalizeEmail(email)
	if email == "" {
		return ErrInvalidInput
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user != nil && user.IsVerified() {
		return ErrAlreadyVerified
	}

	latest, err := s.verifications.LatestByEmail(ctx, email)
	if err != nil {
		return err
	}
	if latest != nil {
		elapsed := s.clock.Now().Sub(latest.CreatedAt)
		if elapsed < s.resendCooldown() {
			return &CooldownError{Remaining: s.resendCooldown() - elapsed}
		}
	}

	rawToken, err := utils.GenerateRandomToken(32)
	if err != nil {
		return err
	}

	if err := s.verifications.DeleteByEmail(ctx, email); err != nil {
		return err
	}

	if user == nil {
		user = &entity.User{
			Email:    email,
			Provider: entity.ProviderEmail,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return err
		}
	}

	verification := &entity.VerificationToken{
		Email:     email,
		TokenHash: utils.HashToken(rawToken),
		ExpiresAt: s.clock.Now().Add(s.verificationTokenTTL()),
	}
	if err := s.verifications.Create(ctx, verification); err != nil {
		return err
	}

	if s.emailSender != nil {
		if err := s.emailSender.SendVerificationEmail(ctx, email, rawToken); err != nil {
			return fmt.Errorf("%w: %v", ErrEmailNotDelivered, err)
		}
	}

	_ = s.logEvent(ctx, &user.ID, ipAddress, entity.VerificationRequested, nil)
	return nil
}

// ResendStatus reports whether a new token may be issued for the email right
// now, without issuing one.
func (s *AuthService) ResendStatus(ctx context.Context, email string) (*ResendStatus, error) {
	email = utils.NormalizeEmail(email)
	if email == "" {
		return nil, ErrInvalidInput
	}

	latest, err := s.verifications.LatestByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return &ResendStatus{Allowed: true}, nil
	}
	elapsed := s.clock.Now().Sub(latest.CreatedAt)
	if elapsed >= s.resendCooldown() {
		return &ResendStatus{Allowed: true}, nil
	}
	return &ResendStatus{Allowed: false, Remaining: s.resendCooldown() - elapsed}, nil
}

// ConsumeVerification redeems a raw token: the owning user comes back
// verified and the token row is gone, atomically. A forged or already-used
// token is indistinguishable from a missing one.
func (s *AuthService) ConsumeVerification(ctx context.Context, rawToken string) (*entity.User, error) {
	rawToken = strings.TrimSpace(rawToken)
	if rawToken == "" {
		return nil, ErrInvalidInput
	}

	verification, err := s.verifications.FindByHash(ctx, utils.HashToken(rawToken))
	if err != nil {
		return nil, err
	}
	if verification == nil {
		return nil, ErrTokenNotFound
	}

	now := s.clock.Now()
	if now.After(verification.ExpiresAt) {
		_ = s.verifications.DeleteByID(ctx, verification.ID)
		return nil, ErrTokenExpired
	}

	if err := s.verifications.Consume(ctx, verification.ID, verification.Email, now); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, verification.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// VerifyEmail consumes a verification token and opens a session for the
// now-verified user.
func (s *AuthService) VerifyEmail(ctx context.Context, rawToken string, ipAddress *string, userAgent *string) (*LoginResult, error) {
	user, err := s.ConsumeVerification(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	result, err := s.openSession(ctx, user, ipAddress, userAgent)
	if err != nil {
		return nil, err
	}

	_ = s.logEvent(ctx, &user.ID, ipAddress, entity.EmailVerified, nil)
	return result, nil
}

// LoginWithGoogle verifies the OAuth identity token, creates or updates the
// user it belongs to (auto-verified) and opens a session.
func (s *AuthService) LoginWithGoogle(ctx context.Context, idToken string, ipAddress *string, userAgent *string) (*LoginResult, error) {
	if s.google == nil {
		return nil, ErrInvalidIDToken
	}
	if strings.TrimSpace(idToken) == "" {
		return nil, ErrInvalidInput
	}

	identity, err := s.google.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, ErrInvalidIDToken
	}

	user, err := s.upsertGoogleUser(ctx, identity)
	if err != nil {
		return nil, err
	}

	result, err := s.openSession(ctx, user, ipAddress, userAgent)
	if err != nil {
		return nil, err
	}

	_ = s.logEvent(ctx, &user.ID, ipAddress, entity.GoogleLogin, map[string]any{"uid": identity.UID})
	return result, nil
}

// Logout revokes the session behind the presented token. Revoking a session
// that is already gone is not an error.
func (s *AuthService) Logout(ctx context.Context, signedToken string, userID *uuid.UUID, ipAddress *string) (bool, error) {
	revoked, err := s.sessions.Revoke(ctx, signedToken)
	if err != nil {
		return false, err
	}
	if revoked {
		_ = s.logEvent(ctx, userID, ipAddress, entity.Logout, nil)
	}
	return revoked, nil
}

func (s *AuthService) LogoutAll(ctx context.Context, userID uuid.UUID, ipAddress *string) (int64, error) {
	count, err := s.sessions.RevokeAll(ctx, userID)
	if err != nil {
		return 0, err
	}
	_ = s.logEvent(ctx, &userID, ipAddress, entity.SessionsRevoked, map[string]any{"count": count})
	return count, nil
}

func (s *AuthService) CurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *AuthService) upsertGoogleUser(ctx context.Context, identity *ExternalIdentity) (*entity.User, error) {
	user, err := s.users.FindByGoogleUID(ctx, identity.UID)
	if err != nil {
		return nil, err
	}
	if user == nil && identity.Email != "" {
		// Link a prior email signup to the Google identity.
		user, err = s.users.FindByEmail(ctx, utils.NormalizeEmail(identity.Email))
		if err != nil {
			return nil, err
		}
	}

	now := s.clock.Now()
	if user == nil {
		user = &entity.User{
			Email:           utils.NormalizeEmail(identity.Email),
			Provider:        entity.ProviderGoogle,
			GoogleUID:       &identity.UID,
			EmailVerifiedAt: &now,
		}
		applyProfile(user, identity)
		if err := s.users.Create(ctx, user); err != nil {
			return nil, err
		}
		return user, nil
	}

	user.GoogleUID = &identity.UID
	if user.EmailVerifiedAt == nil {
		user.EmailVerifiedAt = &now
	}
	applyProfile(user, identity)
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func applyProfile(user *entity.User, identity *ExternalIdentity) {
	if identity.Name != "" {
		name := identity.Name
		user.Name = &name
	}
	if identity.PhotoURL != "" {
		photo := identity.PhotoURL
		user.PhotoURL = &photo
	}
}

func (s *AuthService) openSession(ctx context.Context, user *entity.User, ipAddress *string, userAgent *string) (*LoginResult, error) {
	signed, session, err := s.sessions.Issue(ctx, user, ipAddress, userAgent)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		AccessToken: signed,
		ExpiresIn:   int64(session.ExpiresAt.Sub(s.clock.Now()).Seconds()),
		SessionID:   session.ID,
		User:        user,
	}, nil
}

func (s *AuthService) logEvent(
	ctx context.Context,
	userID *uuid.UUID,
	ipAddress *string,
	action entity.AuthAction,
	metadata map[string]any,
) error {
	if s.authEvents == nil {
		return nil
	}
	var payload datatypes.JSON
	if metadata != nil {
		bytes, err := json.Marshal(metadata)
		if err != nil {
			return err
		}
		payload = datatypes.JSON(bytes)
	}

	event := &entity.AuthEvent{
		UserID:    userID,
		IPAddress: ipAddress,
		Action:    action,
		Metadata:  payload,
	}
	return s.authEvents.Log(ctx, event)
}

func (s *AuthService) resendCooldown() time.Duration {
	if s.config.ResendCooldown > 0 {
		return s.config.ResendCooldown
	}
	return 60 * time.Second
}

func (s *AuthService) verificationTokenTTL() time.Duration {
	if s.config.VerificationTokenTTL > 0 {
		return s.config.VerificationTokenTTL
	}
	return 24 * time.Hour
}
