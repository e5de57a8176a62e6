package service

import (
	"context"
	"sort"
	"time"

	"trekora/internal/entity"

	"github.com/google/uuid"
)

// --- clock ---

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// --- users ---

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if user, ok := r.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByGoogleUID(_ context.Context, uid string) (*entity.User, error) {
	for _, user := range r.users {
		if user.GoogleUID != nil && *user.GoogleUID == uid {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

// --- verification tokens ---

type fakeVerificationRepo struct {
	tokens map[uuid.UUID]*entity.VerificationToken
	users  *fakeUserRepo
	clock  *fakeClock
}

func newFakeVerificationRepo(users *fakeUserRepo, clock *fakeClock) *fakeVerificationRepo {
	return &fakeVerificationRepo{
		tokens: make(map[uuid.UUID]*entity.VerificationToken),
		users:  users,
		clock:  clock,
	}
}

func (r *fakeVerificationRepo) Create(_ context.Context, token *entity.VerificationToken) error {
	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}
	if token.CreatedAt.IsZero() {
		token.CreatedAt = r.clock.Now()
	}
	copied := *token
	r.tokens[token.ID] = &copied
	return nil
}

func (r *fakeVerificationRepo) FindByHash(_ context.Context, tokenHash string) (*entity.VerificationToken, error) {
	for _, token := range r.tokens {
		if token.TokenHash == tokenHash {
			copied := *token
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeVerificationRepo) LatestByEmail(_ context.Context, email string) (*entity.VerificationToken, error) {
	var matches []*entity.VerificationToken
	for _, token := range r.tokens {
		if token.Email == email {
			matches = append(matches, token)
		}
	}
	if len(matches) == 0 {
		return nil, nil
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})
	copied := *matches[0]
	return &copied, nil
}

func (r *fakeVerificationRepo) DeleteByEmail(_ context.Context, email string) error {
	for id, token := range r.tokens {
		if token.Email == email {
			delete(r.tokens, id)
		}
	}
	return nil
}

func (r *fakeVerificationRepo) DeleteByID(_ context.Context, id uuid.UUID) error {
	delete(r.tokens, id)
	return nil
}

func (r *fakeVerificationRepo) Consume(ctx context.Context, id uuid.UUID, email string, verifiedAt time.Time) error {
	user, err := r.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user != nil {
		user.EmailVerifiedAt = &verifiedAt
		if err := r.users.Update(ctx, user); err != nil {
			return err
		}
	}
	delete(r.tokens, id)
	return nil
}

func (r *fakeVerificationRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	var removed int64
	for id, token := range r.tokens {
		if token.ExpiresAt.Before(now) {
			delete(r.tokens, id)
			removed++
		}
	}
	return removed, nil
}

func (r *fakeVerificationRepo) countByEmail(email string) int {
	count := 0
	for _, token := range r.tokens {
		if token.Email == email {
			count++
		}
	}
	return count
}

// --- sessions ---

type fakeSessionRepo struct {
	sessions map[uuid.UUID]*entity.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[uuid.UUID]*entity.Session)}
}

func (r *fakeSessionRepo) Create(_ context.Context, session *entity.Session) error {
	copied := *session
	r.sessions[session.ID] = &copied
	return nil
}

func (r *fakeSessionRepo) FindByTokenHash(_ context.Context, hash string) (*entity.Session, error) {
	for _, session := range r.sessions {
		if session.TokenHash == hash {
			copied := *session
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeSessionRepo) DeleteByID(_ context.Context, sessionID uuid.UUID) error {
	delete(r.sessions, sessionID)
	return nil
}

func (r *fakeSessionRepo) DeleteByTokenHash(_ context.Context, hash string) (int64, error) {
	var removed int64
	for id, session := range r.sessions {
		if session.TokenHash == hash {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed, nil
}

func (r *fakeSessionRepo) DeleteAllByUser(_ context.Context, userID uuid.UUID) (int64, error) {
	var removed int64
	for id, session := range r.sessions {
		if session.UserID == userID {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed, nil
}

func (r *fakeSessionRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	var removed int64
	for id, session := range r.sessions {
		if session.ExpiresAt.Before(now) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed, nil
}

// --- auth events ---

type fakeEventRepo struct {
	events []*entity.AuthEvent
}

func (r *fakeEventRepo) Log(_ context.Context, event *entity.AuthEvent) error {
	copied := *event
	r.events = append(r.events, &copied)
	return nil
}

// --- email ---

type sentEmail struct {
	email string
	token string
}

type fakeEmailSender struct {
	sent []sentEmail
	err  error
}

func (s *fakeEmailSender) SendVerificationEmail(_ context.Context, email string, token string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, sentEmail{email: email, token: token})
	return nil
}

// --- identity ---

type fakeIdentityVerifier struct {
	identity *ExternalIdentity
	err      error
}

func (v *fakeIdentityVerifier) VerifyIDToken(_ context.Context, _ string) (*ExternalIdentity, error) {
	if v.err != nil {
		return nil, v.err
	}
	return v.identity, nil
}
