package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/wayfarerapp/wayfarer-server/internal/auth"
	"github.com/wayfarerapp/wayfarer-server/internal/domain"
	"github.com/wayfarerapp/wayfarer-server/internal/errors"
	"github.com/wayfarerapp/wayfarer-server/internal/id"
	"github.com/wayfarerapp/wayfarer-server/internal/store"
	"github.com/wayfarerapp/wayfarer-server/internal/validation"
)

// AuthService handles registration, login, session refresh, and token
// verification.
type AuthService struct {
	store        store.Store
	tokenService *auth.TokenService
	validator    *validation.Validator
	logger       *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(store store.Store, tokenService *auth.TokenService, validator *validation.Validator, logger *slog.Logger) *AuthService {
	return &AuthService{
		store:        store,
		tokenService: tokenService,
		validator:    validator,
		logger:       logger,
	}
}

// RegisterRequest contains user registration data.
type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8,max=1024"`
	DisplayName string `json:"display_name" validate:"required,max=100"`
}

// LoginRequest contains user credentials.
type LoginRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	IPAddress string `json:"-"` // Extracted from the request by the handler
	UserAgent string `json:"-"`
}

// RefreshRequest contains the refresh token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
	IPAddress    string `json:"-"`
	UserAgent    string `json:"-"`
}

// AuthResponse contains authentication tokens and user data.
type AuthResponse struct {
	User         *domain.User `json:"user"`
	SessionID    string       `json:"session_id"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresAt    time.Time    `json:"expires_at"`
}

// Register creates a new user account. The first account on the instance
// becomes the admin; everyone after that is a regular user.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	count, err := s.store.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	role := domain.RoleUser
	if count == 0 {
		role = domain.RoleAdmin
	}

	userID, err := id.Generate(id.PrefixUser)
	if err != nil {
		return nil, fmt.Errorf("generate user ID: %w", err)
	}

	user := &domain.User{
		Email:        req.Email,
		PasswordHash: passwordHash,
		DisplayName:  req.DisplayName,
		Role:         role,
	}
	user.ID = userID
	user.InitTimestamps()

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, errors.Conflict("email already in use")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user registered",
		"user_id", userID,
		"role", string(role),
	)

	return user, nil
}

// Login authenticates a user and creates a new session.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Don't leak whether the email exists.
			return nil, errors.InvalidCredentials("invalid email or password")
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	valid, err := auth.VerifyPassword(user.PasswordHash, req.Password)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !valid {
		return nil, errors.InvalidCredentials("invalid email or password")
	}

	resp, err := s.createSession(ctx, user, req.IPAddress, req.UserAgent)
	if err != nil {
		return nil, err
	}

	// Opportunistic housekeeping; a failed sweep never blocks a login.
	if n, err := s.store.DeleteExpiredSessions(ctx); err != nil {
		s.logger.Warn("session sweep failed", "error", err)
	} else if n > 0 {
		s.logger.Debug("expired sessions pruned", "count", n)
	}

	s.logger.Info("user logged in", "user_id", user.ID)

	return resp, nil
}

// Refresh rotates the refresh token and issues a fresh access token.
// The presented refresh token is invalidated.
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*AuthResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	session, user, err := s.lookupSession(ctx, req.RefreshToken)
	if err != nil {
		return nil, err
	}

	// Rotate: the old token hash is replaced in place.
	secret, err := s.tokenService.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}
	refreshToken := session.ID + "." + secret
	session.RefreshTokenHash = auth.HashRefreshToken(refreshToken)
	session.ExpiresAt = time.Now().Add(s.tokenService.RefreshTokenDuration())
	session.LastSeenAt = time.Now()
	if req.IPAddress != "" {
		session.IPAddress = req.IPAddress
	}
	if req.UserAgent != "" {
		session.UserAgent = req.UserAgent
	}

	if err := s.store.UpdateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}

	accessToken, err := s.tokenService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	return &AuthResponse{
		User:         user,
		SessionID:    session.ID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    session.ExpiresAt,
	}, nil
}

// Logout revokes a session, invalidating its refresh token.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	session, _, err := s.lookupSession(ctx, refreshToken)
	if err != nil {
		return err
	}

	if err := s.store.DeleteSession(ctx, session.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil // Already gone; logout is idempotent.
		}
		return fmt.Errorf("delete session: %w", err)
	}

	s.logger.Info("session revoked", "session_id", session.ID)

	return nil
}

// VerifyAccessToken validates a bearer token and returns the acting
// identity. Used by the API authentication layer.
func (s *AuthService) VerifyAccessToken(tokenString string) (domain.Actor, error) {
	claims, err := s.tokenService.VerifyAccessToken(tokenString)
	if err != nil {
		return domain.Actor{}, errors.Unauthorized("invalid or expired token")
	}
	return claims.Actor(), nil
}

// createSession mints a refresh token, persists the session, and issues an
// access token.
func (s *AuthService) createSession(ctx context.Context, user *domain.User, ipAddress, userAgent string) (*AuthResponse, error) {
	secret, err := s.tokenService.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	sessionID, err := id.Generate(id.PrefixSession)
	if err != nil {
		return nil, fmt.Errorf("generate session ID: %w", err)
	}

	// Refresh tokens are "<session_id>.<secret>" so the session can be
	// looked up directly; only the hash of the whole token is stored.
	refreshToken := sessionID + "." + secret

	now := time.Now()
	session := &domain.Session{
		ID:               sessionID,
		UserID:           user.ID,
		RefreshTokenHash: auth.HashRefreshToken(refreshToken),
		ExpiresAt:        now.Add(s.tokenService.RefreshTokenDuration()),
		CreatedAt:        now,
		LastSeenAt:       now,
		IPAddress:        ipAddress,
		UserAgent:        userAgent,
	}

	if err := s.store.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	accessToken, err := s.tokenService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	return &AuthResponse{
		User:         user,
		SessionID:    session.ID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    session.ExpiresAt,
	}, nil
}

// lookupSession resolves a refresh token to its live session and user.
func (s *AuthService) lookupSession(ctx context.Context, refreshToken string) (*domain.Session, *domain.User, error) {
	sessionID, _, ok := strings.Cut(refreshToken, ".")
	if !ok || sessionID == "" {
		return nil, nil, errors.Unauthorized("invalid refresh token")
	}

	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, errors.Unauthorized("invalid refresh token")
		}
		return nil, nil, fmt.Errorf("get session: %w", err)
	}

	if session.IsExpired() {
		return nil, nil, errors.Unauthorized("refresh token expired")
	}
	if session.RefreshTokenHash != auth.HashRefreshToken(refreshToken) {
		return nil, nil, errors.Unauthorized("invalid refresh token")
	}

	user, err := s.store.GetUser(ctx, session.UserID)
	if err != nil {
		return nil, nil, fmt.Errorf("get session user: %w", err)
	}

	return session, user, nil
}
