package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"wellspring/internal/config"
	"wellspring/internal/domain"
	"wellspring/internal/dto"
	"wellspring/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
	tokenTypeAccess   = "access"
	tokenTypeRefresh  = "refresh"

	minPasswordLength = 6
	minUsernameLength = 3
)

var (
	ErrInvalidAuthState      = errors.New("invalid oauth state")
	ErrFailedToExchangeToken = errors.New("failed to exchange oauth token")
	ErrFailedToGetUserInfo   = errors.New("failed to get user info from google")
	ErrInvalidJWTToken       = errors.New("invalid jwt token")
	ErrInvalidCredentials    = errors.New("invalid email or password")
)

// AuthService defines the interface for authentication operations.
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
	CreateJWT(ctx context.Context, user *domain.User, ttl time.Duration, tokenType string) (string, error)
	RefreshToken(ctx context.Context, refreshTokenString string) (newAccessToken string, newRefreshToken string, err error)
	GetGoogleLoginURL(state string) string
	HandleGoogleCallback(ctx context.Context, code, receivedState, expectedState string) (*dto.AuthResponse, error)
	GetUser(ctx context.Context, userID string) (*dto.UserResponse, error)
}

type authServiceImpl struct {
	userRepo     domain.UserRepository
	oauth2Config *oauth2.Config
	appConfig    *config.Config
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(userRepo domain.UserRepository, appConfig *config.Config) (AuthService, error) {
	if len(appConfig.JWT.SecretKey) < 32 {
		return nil, errors.New("jwt secret key must be at least 32 bytes long")
	}

	return &authServiceImpl{
		userRepo: userRepo,
		oauth2Config: &oauth2.Config{
			ClientID:     appConfig.GoogleOAuth.ClientID,
			ClientSecret: appConfig.GoogleOAuth.ClientSecret,
			RedirectURL:  appConfig.GoogleOAuth.RedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		appConfig: appConfig,
	}, nil
}

// Register implements AuthService
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(strings.ToLower(req.Email))

	if len(username) < minUsernameLength {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("username must be at least %d characters", minUsernameLength))
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, domain.NewInvalidInputError("please enter a valid email address")
	}
	if len(req.Password) < minPasswordLength {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	if existing, err := s.userRepo.GetUserByEmail(ctx, email); err != nil {
		return nil, domain.NewInternalError("Failed to check email", err)
	} else if existing != nil {
		return nil, domain.NewError(domain.ErrEmailInUse, "Email already in use", nil)
	}

	if existing, err := s.userRepo.GetUserByUsername(ctx, username); err != nil {
		return nil, domain.NewInternalError("Failed to check username", err)
	} else if existing != nil {
		return nil, domain.NewError(domain.ErrUsernameTaken, "Username already taken", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.NewInternalError("Failed to hash password", err)
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, domain.NewInternalError("Failed to create user", err)
	}

	logger.Get().Info("User registered", zap.String("user_id", user.ID), zap.String("username", username))
	return s.issueTokenPair(ctx, user)
}

// Login implements AuthService
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get user", err)
	}
	if user == nil || user.PasswordHash == "" {
		return nil, domain.NewUnauthorizedError(ErrInvalidCredentials.Error())
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.NewUnauthorizedError(ErrInvalidCredentials.Error())
	}

	return s.issueTokenPair(ctx, user)
}

// CreateJWT implements AuthService
func (s *authServiceImpl) CreateJWT(ctx context.Context, user *domain.User, ttl time.Duration, tokenType string) (string, error) {
	now := time.Now()
	claims := &dto.AuthClaims{
		UserID:    user.ID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.appConfig.JWT.SecretKey))
}

// ValidateJWT implements AuthService
func (s *authServiceImpl) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &dto.AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.appConfig.JWT.SecretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJWTToken, err)
	}

	claims, ok := token.Claims.(*dto.AuthClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidJWTToken
	}
	return claims, nil
}

// RefreshToken implements AuthService
func (s *authServiceImpl) RefreshToken(ctx context.Context, refreshTokenString string) (string, string, error) {
	claims, err := s.ValidateJWT(ctx, refreshTokenString)
	if err != nil {
		return "", "", domain.NewUnauthorizedError("invalid refresh token")
	}
	if claims.TokenType != tokenTypeRefresh {
		return "", "", domain.NewUnauthorizedError("token is not a refresh token")
	}

	user, err := s.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return "", "", domain.NewInternalError("Failed to get user", err)
	}
	if user == nil {
		return "", "", domain.NewUserNotFoundError(claims.UserID)
	}

	accessToken, err := s.CreateJWT(ctx, user, s.appConfig.JWT.AccessTokenTTL, tokenTypeAccess)
	if err != nil {
		return "", "", domain.NewInternalError("Failed to create access token", err)
	}
	refreshToken, err := s.CreateJWT(ctx, user, s.appConfig.JWT.RefreshTokenTTL, tokenTypeRefresh)
	if err != nil {
		return "", "", domain.NewInternalError("Failed to create refresh token", err)
	}
	return accessToken, refreshToken, nil
}

// GetGoogleLoginURL implements AuthService
func (s *authServiceImpl) GetGoogleLoginURL(state string) string {
	return s.oauth2Config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// HandleGoogleCallback implements AuthService. It exchanges the code,
// fetches the Google profile and creates or links the local account.
func (s *authServiceImpl) HandleGoogleCallback(ctx context.Context, code, receivedState, expectedState string) (*dto.AuthResponse, error) {
	if expectedState == "" || receivedState != expectedState {
		return nil, domain.NewUnauthorizedError(ErrInvalidAuthState.Error())
	}

	googleToken, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, domain.NewUnauthorizedError(fmt.Sprintf("%v: %v", ErrFailedToExchangeToken, err))
	}

	client := s.oauth2Config.Client(ctx, googleToken)
	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		return nil, domain.NewInternalError(ErrFailedToGetUserInfo.Error(), err)
	}
	defer resp.Body.Close()

	var userInfo dto.GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		return nil, domain.NewInternalError("Failed to decode user info", err)
	}

	user, err := s.findOrCreateGoogleUser(ctx, &userInfo)
	if err != nil {
		return nil, err
	}
	return s.issueTokenPair(ctx, user)
}

// GetUser implements AuthService
func (s *authServiceImpl) GetUser(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get user", err)
	}
	if user == nil {
		return nil, domain.NewUserNotFoundError(userID)
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *authServiceImpl) findOrCreateGoogleUser(ctx context.Context, info *dto.GoogleUserInfo) (*domain.User, error) {
	user, err := s.userRepo.GetUserByGoogleID(ctx, info.ID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to look up google user", err)
	}
	if user != nil {
		return user, nil
	}

	// An existing local account with the same email gets linked.
	user, err = s.userRepo.GetUserByEmail(ctx, strings.ToLower(info.Email))
	if err != nil {
		return nil, domain.NewInternalError("Failed to look up user by email", err)
	}
	if user != nil {
		user.GoogleID = info.ID
		if user.ProfilePictureURL == "" {
			user.ProfilePictureURL = info.Picture
		}
		if err := s.userRepo.UpdateUser(ctx, user); err != nil {
			return nil, domain.NewInternalError("Failed to link google account", err)
		}
		return user, nil
	}

	user = &domain.User{
		Username:          strings.ToLower(info.Email),
		Email:             strings.ToLower(info.Email),
		GoogleID:          info.ID,
		DisplayName:       info.Name,
		ProfilePictureURL: info.Picture,
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, domain.NewInternalError("Failed to create google user", err)
	}
	logger.Get().Info("Google user created", zap.String("user_id", user.ID))
	return user, nil
}

func (s *authServiceImpl) issueTokenPair(ctx context.Context, user *domain.User) (*dto.AuthResponse, error) {
	accessToken, err := s.CreateJWT(ctx, user, s.appConfig.JWT.AccessTokenTTL, tokenTypeAccess)
	if err != nil {
		return nil, domain.NewInternalError("Failed to create access token", err)
	}
	refreshToken, err := s.CreateJWT(ctx, user, s.appConfig.JWT.RefreshTokenTTL, tokenTypeRefresh)
	if err != nil {
		return nil, domain.NewInternalError("Failed to create refresh token", err)
	}

	return &dto.AuthResponse{
		User:         toUserResponse(user),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func toUserResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:                user.ID,
		Username:          user.Username,
		Email:             user.Email,
		DisplayName:       user.DisplayName,
		ProfilePictureURL: user.ProfilePictureURL,
		CreatedAt:         user.CreatedAt,
	}
}
