package auth

import "wearhouse/internal/domain"

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=30"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// RegisterData is the envelope payload of a successful registration.
type RegisterData struct {
	User domain.PublicUser `json:"user"`
}

// SessionData carries the issued token pair. The HTTP layer additionally sets
// the refresh token as a scoped cookie; the raw value stays in the body so
// non-browser clients can use it.
type SessionData struct {
	AccessToken  string             `json:"accessToken"`
	RefreshToken string             `json:"refreshToken"`
	User         *domain.PublicUser `json:"user,omitempty"`
}

type ProfileData struct {
	User domain.PublicUser `json:"user"`
}
