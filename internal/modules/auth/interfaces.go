package auth

import (
	"context"
	"time"

	"wearhouse/internal/domain"
	"wearhouse/internal/pkg/token"
)

// UserRepositoryInterface — only the methods the auth service uses.
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id uint64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	GetByRefreshToken(ctx context.Context, refreshToken string) (*domain.User, error)
	SetRefreshToken(ctx context.Context, userID uint64, refreshToken string) error
	ClearRefreshToken(ctx context.Context, userID uint64) error
	TouchLastLogin(ctx context.Context, userID uint64, at time.Time) error
}

// TokenServiceInterface — signing and refresh verification.
type TokenServiceInterface interface {
	SignAccess(userID uint64) (string, error)
	SignRefresh(userID uint64) (string, error)
	VerifyRefresh(tokenStr string) (*token.Claims, error)
	RefreshTTL() time.Duration
}
