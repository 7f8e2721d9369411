package auth

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"wearhouse/internal/domain"
	"wearhouse/internal/pkg/response"
	"wearhouse/internal/pkg/token"
	"wearhouse/internal/pkg/validator"
	"wearhouse/internal/repository"
)

// One generic message for both unknown email and wrong password, so the
// response never reveals whether an account exists.
const msgInvalidCredentials = "invalid email or password"

const minPasswordLength = 6

// Service contains all business logic for authentication. Every method
// returns the uniform response envelope; controllers only serialize it.
type Service struct {
	users  UserRepositoryInterface
	tokens TokenServiceInterface
}

func NewService(users UserRepositoryInterface, tokens TokenServiceInterface) *Service {
	return &Service{users: users, tokens: tokens}
}

// Register creates an account with role=user. The existence pre-check is a
// fast path for a friendly Conflict message; the unique index on email is the
// real guarantee under concurrent registrations.
func (s *Service) Register(ctx context.Context, req RegisterRequest) *response.Response {
	if len(req.Password) < minPasswordLength {
		return response.BadRequest("password must be at least 6 characters")
	}
	if !validator.IsEmail(req.Email) {
		return response.BadRequest("invalid email format")
	}

	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		log.Printf("auth.register email check error=%q", err)
		return response.InternalError("failed to register user")
	}
	if exists {
		return response.Conflict("email is already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return response.InternalError("failed to register user")
	}

	user := &domain.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		IsActive:     true,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		if repository.IsDuplicateKey(err) {
			return response.Conflict("email is already registered")
		}
		if errors.Is(err, domain.ErrValidation) {
			return response.BadRequest(err.Error())
		}
		log.Printf("auth.register create error=%q", err)
		return response.InternalError("failed to register user")
	}

	return response.Created("user registered", RegisterData{User: created.Public()})
}

// Login verifies credentials and issues a token pair. Storing the refresh
// token overwrites any previous one: a second login revokes the first session.
func (s *Service) Login(ctx context.Context, req LoginRequest) *response.Response {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		log.Printf("auth.login lookup error=%q", err)
		return response.InternalError("failed to login")
	}
	if user == nil {
		return response.Unauthorized(msgInvalidCredentials)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return response.Unauthorized(msgInvalidCredentials)
	}
	if !user.IsActive {
		return response.Forbidden("account is deactivated")
	}

	accessToken, err := s.tokens.SignAccess(user.ID)
	if err != nil {
		return response.InternalError("failed to login")
	}
	refreshToken, err := s.tokens.SignRefresh(user.ID)
	if err != nil {
		return response.InternalError("failed to login")
	}

	if err := s.users.SetRefreshToken(ctx, user.ID, refreshToken); err != nil {
		log.Printf("auth.login store refresh error=%q", err)
		return response.InternalError("failed to login")
	}
	now := time.Now()
	if err := s.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		log.Printf("auth.login touch last login error=%q", err)
		return response.InternalError("failed to login")
	}
	user.LastLogin = &now

	pub := user.Public()
	return response.OK("login successful", SessionData{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         &pub,
	})
}

// Refresh rotates the token pair. The old refresh token must verify
// cryptographically AND equal the stored value exactly — a rotated-away or
// revoked token still verifies but no longer matches anything.
func (s *Service) Refresh(ctx context.Context, refreshToken string) *response.Response {
	if refreshToken == "" {
		return response.Unauthorized("refresh token required")
	}

	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		if errors.Is(err, token.ErrTokenExpired) {
			return response.Unauthorized("refresh token expired")
		}
		return response.Forbidden("invalid refresh token")
	}

	user, err := s.users.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		log.Printf("auth.refresh lookup error=%q", err)
		return response.InternalError("failed to refresh token")
	}
	if user == nil {
		return response.Forbidden("refresh token is no longer active")
	}
	// Stored-token / decoded-id cross-check.
	if claims.UserID != user.ID {
		return response.Forbidden("refresh token does not belong to this user")
	}

	accessToken, err := s.tokens.SignAccess(user.ID)
	if err != nil {
		return response.InternalError("failed to refresh token")
	}
	newRefresh, err := s.tokens.SignRefresh(user.ID)
	if err != nil {
		return response.InternalError("failed to refresh token")
	}
	if err := s.users.SetRefreshToken(ctx, user.ID, newRefresh); err != nil {
		log.Printf("auth.refresh rotate error=%q", err)
		return response.InternalError("failed to refresh token")
	}

	return response.OK("token refreshed", SessionData{
		AccessToken:  accessToken,
		RefreshToken: newRefresh,
	})
}

// Logout clears the stored refresh token unconditionally. Outstanding access
// tokens stay valid until their own expiry; only future refreshes are blocked.
func (s *Service) Logout(ctx context.Context, userID uint64) *response.Response {
	if err := s.users.ClearRefreshToken(ctx, userID); err != nil {
		log.Printf("auth.logout error=%q", err)
		return response.InternalError("failed to logout")
	}
	return response.OK("logged out", nil)
}

func (s *Service) Profile(ctx context.Context, userID uint64) *response.Response {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		log.Printf("auth.profile error=%q", err)
		return response.InternalError("failed to load profile")
	}
	if user == nil {
		return response.NotFound("user not found")
	}
	return response.OK("profile retrieved", ProfileData{User: user.Public()})
}
