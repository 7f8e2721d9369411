package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"wearhouse/internal/domain"
)

// UserRepository adds the auth-specific lookups on top of the generic layer:
// by email, by stored refresh token, and the single-token session writes.
type UserRepository struct {
	*Repository[domain.User]
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{Repository: New[domain.User](db)}
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.FindOne(ctx, Filter{"email": email}, "")
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	u, err := r.GetByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	return u != nil, nil
}

// GetByRefreshToken finds the user whose stored refresh token equals token
// exactly. Rotated-away and revoked tokens no longer match anything.
func (r *UserRepository) GetByRefreshToken(ctx context.Context, token string) (*domain.User, error) {
	return r.FindOne(ctx, Filter{"refresh_token": token}, "")
}

// SetRefreshToken overwrites the stored refresh token, revoking whatever
// session held the previous value.
func (r *UserRepository) SetRefreshToken(ctx context.Context, userID uint64, token string) error {
	return r.DB().WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", userID).
		Update("refresh_token", token).Error
}

// ClearRefreshToken is idempotent: clearing an already-empty token is fine.
func (r *UserRepository) ClearRefreshToken(ctx context.Context, userID uint64) error {
	return r.DB().WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", userID).
		Update("refresh_token", nil).Error
}

func (r *UserRepository) TouchLastLogin(ctx context.Context, userID uint64, at time.Time) error {
	return r.DB().WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", userID).
		Update("last_login", at).Error
}

// IsDuplicateKey reports whether err is the store's unique-constraint
// violation, the backstop for concurrent registrations with one email.
func IsDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
