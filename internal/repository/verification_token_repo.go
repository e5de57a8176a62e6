package repository

import (
	"context"
	"errors"
	"time"

	"trekora/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VerificationTokenRepository interface {
	Create(ctx context.Context, token *entity.VerificationToken) error
	FindByHash(ctx context.Context, tokenHash string) (*entity.VerificationToken, error)
	LatestByEmail(ctx context.Context, email string) (*entity.VerificationToken, error)
	DeleteByEmail(ctx context.Context, email string) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
	Consume(ctx context.Context, id uuid.UUID, email string, verifiedAt time.Time) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type verificationTokenRepository struct {
	db *gorm.DB
}

func NewVerificationTokenRepository(db *gorm.DB) VerificationTokenRepository {
	return &verificationTokenRepository{db: db}
}

func (r *verificationTokenRepository) Create(ctx context.Context, t *entity.VerificationToken) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *verificationTokenRepository) FindByHash(ctx context.Context, tokenHash string) (*entity.VerificationToken, error) {
	var token entity.VerificationToken
	err := r.db.WithContext(ctx).
		Where("token_hash = ?", tokenHash).
		First(&token).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &token, err
}

func (r *verificationTokenRepository) LatestByEmail(ctx context.Context, email string) (*entity.VerificationToken, error) {
	var token entity.VerificationToken
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Order("created_at DESC").
		First(&token).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &token, err
}

func (r *verificationTokenRepository) DeleteByEmail(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).
		Where("email = ?", email).
		Delete(&entity.VerificationToken{}).
		Error
}

func (r *verificationTokenRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&entity.VerificationToken{}).
		Error
}

// Consume marks the owning user verified and removes the token row in one
// transaction, so a crash cannot leave a verified user with a live token or
// a consumed token with an unverified user.
func (r *verificationTokenRepository) Consume(ctx context.Context, id uuid.UUID, email string, verifiedAt time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Model(&entity.User{}).
			Where("email = ?", email).
			Update("email_verified_at", &verifiedAt).
			Error; err != nil {
			return err
		}
		return tx.
			Where("id = ?", id).
			Delete(&entity.VerificationToken{}).
			Error
	})
}

func (r *verificationTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&entity.VerificationToken{})
	return result.RowsAffected, result.Error
}
