package dto

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RegisterRequest represents a new account in the API request
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents local credentials in the API request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshTokenRequest carries the refresh token being exchanged
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenResponse carries a freshly issued token pair
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// UserResponse represents a user in API responses; the password hash never leaves the service layer
type UserResponse struct {
	ID                string    `json:"id"`
	Username          string    `json:"username"`
	Email             string    `json:"email"`
	DisplayName       string    `json:"display_name,omitempty"`
	ProfilePictureURL string    `json:"profile_picture,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// AuthResponse pairs the authenticated user with its token pair
type AuthResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

// AuthClaims are the JWT claims this service issues and validates
type AuthClaims struct {
	UserID    string `json:"uid"`
	TokenType string `json:"token_type"` // "access" or "refresh"
	jwt.RegisteredClaims
}

// GoogleUserInfo is the profile document returned by Google's userinfo endpoint
type GoogleUserInfo struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}
