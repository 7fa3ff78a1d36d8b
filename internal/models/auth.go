package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RegisterRequest creates a new mahasiswa or dosen account.
type RegisterRequest struct {
	Nama        string   `json:"nama" validate:"required,max=255"`
	Email       string   `json:"email" validate:"required,email,max=255"`
	Username    string   `json:"username" validate:"required,max=50"`
	Password    string   `json:"password" validate:"required,min=6"`
	Role        UserRole `json:"role" validate:"required,oneof=mahasiswa dosen"`
	NPM         string   `json:"npm" validate:"required_if=Role mahasiswa,omitempty,max=20"`
	Konsentrasi string   `json:"konsentrasi" validate:"required_if=Role mahasiswa,omitempty,max=255"`
}

// LoginRequest holds credentials for authenticating a user. The login field
// accepts either a username or an email address.
type LoginRequest struct {
	Login     string `json:"username" validate:"required"`
	Password  string `json:"password" validate:"required,min=6"`
	IP        string `json:"-"`
	UserAgent string `json:"-"`
}

// NPMLoginRequest authenticates a mahasiswa with username/email plus NPM.
// The NPM travels in the password field for form compatibility.
type NPMLoginRequest struct {
	Login     string `json:"username" validate:"required"`
	NPM       string `json:"password" validate:"required"`
	IP        string `json:"-"`
	UserAgent string `json:"-"`
}

// LoginResponse returns the issued tokens and user info.
type LoginResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresIn    int64     `json:"expires_in"`
	User         UserInfo  `json:"user"`
	IssuedAt     time.Time `json:"issued_at"`
}

// RefreshTokenRequest exchanges a refresh token for a new access token.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
	IP           string `json:"-"`
	UserAgent    string `json:"-"`
}

// RefreshTokenResponse returns the refreshed tokens.
type RefreshTokenResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresIn    int64     `json:"expires_in"`
	IssuedAt     time.Time `json:"issued_at"`
}

// ChangePasswordRequest payload for updating password.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// UserInfo describes the authenticated user in responses.
type UserInfo struct {
	ID          string   `json:"id"`
	Nama        string   `json:"nama"`
	Email       string   `json:"email"`
	Username    string   `json:"username"`
	Role        UserRole `json:"role"`
	NPM         *string  `json:"npm,omitempty"`
	Konsentrasi *string  `json:"konsentrasi,omitempty"`
}

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	UserID string   `json:"user_id"`
	Role   UserRole `json:"role"`
	Email  string   `json:"email"`
	Nama   string   `json:"nama"`
	jwt.RegisteredClaims
}
