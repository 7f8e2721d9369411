package token

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrTokenExpired means the token verified but is past its expiry.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid covers bad signatures and malformed tokens.
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims carry only the user id. Roles are looked up server-side so a token
// never outlives a role change.
type Claims struct {
	UserID uint64 `json:"id"`
	jwtlib.RegisteredClaims
}

// Service signs and verifies the two token kinds. Access and refresh tokens
// are structurally identical but use different secrets and lifetimes, so one
// kind never verifies as the other.
type Service struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func New(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *Service {
	return &Service{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (s *Service) AccessTTL() time.Duration  { return s.accessTTL }
func (s *Service) RefreshTTL() time.Duration { return s.refreshTTL }

func (s *Service) SignAccess(userID uint64) (string, error) {
	return sign(userID, s.accessSecret, s.accessTTL)
}

func (s *Service) SignRefresh(userID uint64) (string, error) {
	return sign(userID, s.refreshSecret, s.refreshTTL)
}

func (s *Service) VerifyAccess(tokenStr string) (*Claims, error) {
	return verify(tokenStr, s.accessSecret)
}

func (s *Service) VerifyRefresh(tokenStr string) (*Claims, error) {
	return verify(tokenStr, s.refreshSecret)
}

func sign(userID uint64, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwtlib.RegisteredClaims{
			// Unique id per token: two tokens for the same user signed in
			// the same second must still differ, or rotation cannot tell
			// the new refresh token from the one it replaces.
			ID:        uuid.NewString(),
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func verify(tokenStr string, secret []byte) (*Claims, error) {
	token, err := jwtlib.ParseWithClaims(tokenStr, &Claims{}, func(t *jwtlib.Token) (any, error) {
		return secret, nil
	}, jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == 0 {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
