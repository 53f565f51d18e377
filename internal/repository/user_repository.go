package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"wellspring/internal/domain"
	"wellspring/internal/repository/models"
	"wellspring/internal/util"

	"github.com/jmoiron/sqlx"
)

// UserDatabaseAdapter implements domain.UserRepository using sqlx.DB
type UserDatabaseAdapter struct {
	db *sqlx.DB
}

// NewUserDatabaseAdapter creates a new instance of UserDatabaseAdapter
func NewUserDatabaseAdapter(db *sqlx.DB) domain.UserRepository {
	return &UserDatabaseAdapter{db: db}
}

const userColumns = `id, username, email, password_hash, google_id, display_name, profile_picture_url, created_at, updated_at`

func (a *UserDatabaseAdapter) getUserWhere(ctx context.Context, where string, arg interface{}) (*domain.User, error) {
	var modelUser models.User
	query := fmt.Sprintf(`SELECT %s FROM users WHERE %s`, userColumns, where)

	err := a.db.GetContext(ctx, &modelUser, query, arg)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return toDomainUser(&modelUser), nil
}

// GetUserByID implements domain.UserRepository
func (a *UserDatabaseAdapter) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return a.getUserWhere(ctx, "id = $1", id)
}

// GetUserByEmail implements domain.UserRepository
func (a *UserDatabaseAdapter) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return a.getUserWhere(ctx, "email = $1", email)
}

// GetUserByUsername implements domain.UserRepository
func (a *UserDatabaseAdapter) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return a.getUserWhere(ctx, "username = $1", username)
}

// GetUserByGoogleID implements domain.UserRepository
func (a *UserDatabaseAdapter) GetUserByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	return a.getUserWhere(ctx, "google_id = $1", googleID)
}

// CreateUser implements domain.UserRepository
func (a *UserDatabaseAdapter) CreateUser(ctx context.Context, user *domain.User) error {
	if user == nil {
		return fmt.Errorf("cannot create nil user")
	}
	if err := user.Validate(); err != nil {
		return err
	}
	user.ID = util.NewULID()
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	query := `INSERT INTO users (id, username, email, password_hash, google_id, display_name, profile_picture_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := a.db.ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		nullString(user.PasswordHash),
		nullString(user.GoogleID),
		nullString(user.DisplayName),
		nullString(user.ProfilePictureURL),
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// UpdateUser implements domain.UserRepository
func (a *UserDatabaseAdapter) UpdateUser(ctx context.Context, user *domain.User) error {
	if user == nil || user.ID == "" {
		return fmt.Errorf("cannot update user without an ID")
	}
	user.UpdatedAt = time.Now()

	query := `UPDATE users
		SET username = $2, email = $3, password_hash = $4, google_id = $5,
			display_name = $6, profile_picture_url = $7, updated_at = $8
		WHERE id = $1`

	_, err := a.db.ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.Email,
		nullString(user.PasswordHash),
		nullString(user.GoogleID),
		nullString(user.DisplayName),
		nullString(user.ProfilePictureURL),
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update user %s: %w", user.ID, err)
	}
	return nil
}

func toDomainUser(m *models.User) *domain.User {
	if m == nil {
		return nil
	}
	return &domain.User{
		ID:                m.ID,
		Username:          m.Username,
		Email:             m.Email,
		PasswordHash:      m.PasswordHash.String,
		GoogleID:          m.GoogleID.String,
		DisplayName:       m.DisplayName.String,
		ProfilePictureURL: m.ProfilePictureURL.String,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}
