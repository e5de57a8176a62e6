package service

import (
	"context"
	"time"

	"trekora/internal/repository"

	"github.com/sirupsen/logrus"
)

// CleanupScheduler sweeps expired verification tokens and sessions in the
// background. Both lookups do their own lazy expiry check, so a missed sweep
// only costs storage, never correctness.
type CleanupScheduler struct {
	Verifications repository.VerificationTokenRepository
	Sessions      repository.SessionRepository
	Logger        *logrus.Logger
	Clock         Clock

	TokenInterval   time.Duration
	SessionInterval time.Duration
}

func NewCleanupScheduler(
	verifications repository.VerificationTokenRepository,
	sessions repository.SessionRepository,
	logger *logrus.Logger,
) *CleanupScheduler {
	return &CleanupScheduler{
		Verifications:   verifications,
		Sessions:        sessions,
		Logger:          logger,
		Clock:           RealClock{},
		TokenInterval:   10 * time.Minute,
		SessionInterval: 60 * time.Minute,
	}
}

// Start launches both sweeps. They run until ctx is cancelled; a failed sweep
// is logged and retried on the next tick.
func (c *CleanupScheduler) Start(ctx context.Context) {
	go c.loop(ctx, c.tokenInterval(), c.sweepTokens)
	go c.loop(ctx, c.sessionInterval(), c.sweepSessions)
}

func (c *CleanupScheduler) loop(ctx context.Context, interval time.Duration, sweep func(context.Context)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sweep(ctx)
		}
	}
}

func (c *CleanupScheduler) sweepTokens(ctx context.Context) {
	removed, err := c.Verifications.DeleteExpired(ctx, c.now())
	if err != nil {
		c.log().WithError(err).Error("verification token sweep failed")
		return
	}
	if removed > 0 {
		c.log().WithField("removed", removed).Info("expired verification tokens swept")
	}
}

func (c *CleanupScheduler) sweepSessions(ctx context.Context) {
	removed, err := c.Sessions.DeleteExpired(ctx, c.now())
	if err != nil {
		c.log().WithError(err).Error("session sweep failed")
		return
	}
	if removed > 0 {
		c.log().WithField("removed", removed).Info("expired sessions swept")
	}
}

func (c *CleanupScheduler) tokenInterval() time.Duration {
	if c.TokenInterval > 0 {
		return c.TokenInterval
	}
	return 10 * time.Minute
}

func (c *CleanupScheduler) sessionInterval() time.Duration {
	if c.SessionInterval > 0 {
		return c.SessionInterval
	}
	return 60 * time.Minute
}

func (c *CleanupScheduler) now() time.Time {
	if c.Clock == nil {
		return time.Now()
	}
	return c.Clock.Now()
}

func (c *CleanupScheduler) log() *logrus.Logger {
	if c.Logger == nil {
		return logrus.StandardLogger()
	}
	return c.Logger
}
