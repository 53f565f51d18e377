package domain

import (
	"time"
)

// User represents a domain user object
type User struct {
	ID                string
	Username          string
	Email             string
	PasswordHash      string
	GoogleID          string
	DisplayName       string
	ProfilePictureURL string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Validate validates the user
func (u *User) Validate() error {
	if u.Email == "" {
		return NewInvalidInputError("email is required")
	}
	if u.Username == "" {
		return NewInvalidInputError("username is required")
	}
	// Local accounts carry a password hash, Google accounts a google ID.
	if u.PasswordHash == "" && u.GoogleID == "" {
		return NewInvalidInputError("either a password or a google account is required")
	}
	return nil
}
