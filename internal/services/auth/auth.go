// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package auth implements the account security workflow:
// registration, email verification, login and password reset.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"time"

	"codeberg.org/oliverandrich/tourbooking/internal/config"
	"codeberg.org/oliverandrich/tourbooking/internal/i18n"
	"codeberg.org/oliverandrich/tourbooking/internal/models"
	"codeberg.org/oliverandrich/tourbooking/internal/repository"
	"github.com/google/uuid"
)

var (
	ErrEmailTaken            = errors.New("email already registered")
	ErrPasswordMismatch      = errors.New("passwords do not match")
	ErrInvalidEmail          = errors.New("invalid email format")
	ErrAccountNotFound       = errors.New("account not found")
	ErrAccountDisabled       = errors.New("account is disabled")
	ErrEmailNotConfirmed     = errors.New("email address not confirmed")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrEmptyToken            = errors.New("reset token is required")
	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")
)

const (
	// VerifyTokenTTL is how long email verification tokens are valid.
	VerifyTokenTTL = 24 * time.Hour
	// ResetTokenTTL is how long password reset codes are valid.
	ResetTokenTTL = 15 * time.Minute

	appName = "Tourbooking"
)

// Mailer is the notification gateway contract the service needs.
// Delivery failures are logged and never fail the calling operation.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Service implements the account security operations.
type Service struct {
	repo    *repository.Repository
	mailer  Mailer
	cfg     *config.AuthConfig
	baseURL string
}

// NewService creates a new auth service. baseURL is used to build
// the verification link embedded in emails.
func NewService(repo *repository.Repository, mailer Mailer, cfg *config.AuthConfig, baseURL string) *Service {
	return &Service{
		repo:    repo,
		mailer:  mailer,
		cfg:     cfg,
		baseURL: baseURL,
	}
}

// RegisterParams holds the parameters for user registration.
type RegisterParams struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	Role            models.Role
}

// Register creates a new unconfirmed account and sends a verification
// email. The account is persisted first; a failed email delivery is
// logged but does not fail the registration.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*models.User, error) {
	if _, err := mail.ParseAddress(params.Email); err != nil {
		return nil, ErrInvalidEmail
	}
	if params.Password != params.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	_, err := s.repo.GetUserByEmail(ctx, params.Email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	role := params.Role
	if role == "" {
		role = models.RoleUser
	}

	token := uuid.NewString()
	tokenHash := HashToken(token)
	now := time.Now().UTC()
	expiresAt := now.Add(VerifyTokenTTL)

	user := &models.User{
		Email:              params.Email,
		PasswordHash:       HashPassword(params.Password),
		Name:               params.Name,
		Role:               role,
		EmailConfirmed:     false,
		VerifyTokenHash:    &tokenHash,
		VerifyTokenExpires: &expiresAt,
		Active:             true,
		CreatedAt:          now,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	verifyURL := fmt.Sprintf("%s/auth/verify-email?token=%s", s.baseURL, token)
	subject := i18n.T(ctx, "email_verification_subject")
	body := i18n.TData(ctx, "email_verification_body", map[string]any{
		"AppName":   appName,
		"VerifyURL": verifyURL,
	})
	if err := s.mailer.Send(ctx, user.Email, subject, body); err != nil {
		slog.Warn("verification_email_failed", "user_id", user.ID, "error", err)
	}

	slog.Info("register_success", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// VerifyEmail confirms the account holding a matching, non-expired
// verification token. The token and its expiry are cleared in the
// same update, so a token can be consumed exactly once. The error
// does not distinguish a wrong token from an expired one.
func (s *Service) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return ErrInvalidOrExpiredToken
	}

	ok, err := s.repo.ConsumeVerifyToken(ctx, HashToken(token), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to consume verification token: %w", err)
	}
	if !ok {
		return ErrInvalidOrExpiredToken
	}

	slog.Info("email_verified")
	return nil
}

// Login authenticates a user and returns a signed session token.
func (s *Service) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			slog.Warn("login_failed", "email", email, "reason", "account_not_found")
			return "", nil, ErrAccountNotFound
		}
		return "", nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !user.Active {
		slog.Warn("login_failed", "user_id", user.ID, "reason", "account_disabled")
		return "", nil, ErrAccountDisabled
	}
	if !user.EmailConfirmed {
		slog.Warn("login_failed", "user_id", user.ID, "reason", "email_not_confirmed")
		return "", nil, ErrEmailNotConfirmed
	}
	if !VerifyPassword(password, user.PasswordHash) {
		slog.Warn("login_failed", "user_id", user.ID, "reason", "invalid_password")
		return "", nil, ErrInvalidCredentials
	}

	token, err := IssueSessionToken(user, []byte(s.cfg.TokenSecret), s.cfg.SessionTTL)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	slog.Info("login_success", "user_id", user.ID)
	return token, user, nil
}

// ParseSessionToken validates a session token against the configured
// secret and returns its claims.
func (s *Service) ParseSessionToken(token string) (*SessionClaims, error) {
	return ParseSessionToken(token, []byte(s.cfg.TokenSecret))
}

// RequestPasswordReset generates a short reset code for a confirmed
// account and sends it by email.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}
	if !user.EmailConfirmed {
		return ErrEmailNotConfirmed
	}

	code, err := GenerateResetCode()
	if err != nil {
		return fmt.Errorf("failed to generate reset code: %w", err)
	}

	expiresAt := time.Now().UTC().Add(ResetTokenTTL)
	if err := s.repo.SetResetToken(ctx, user.ID, HashToken(code), expiresAt); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	subject := i18n.T(ctx, "email_reset_subject")
	body := i18n.TData(ctx, "email_reset_body", map[string]any{"Code": code})
	if err := s.mailer.Send(ctx, user.Email, subject, body); err != nil {
		slog.Warn("reset_email_failed", "user_id", user.ID, "error", err)
	}

	slog.Info("password_reset_requested", "user_id", user.ID)
	return nil
}

// ResetPassword exchanges a valid reset code for a new password. The
// input is validated before any token lookup; the stored hash is
// replaced and the token cleared in one atomic update.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword, confirmPassword string) error {
	if token == "" {
		return ErrEmptyToken
	}
	if newPassword != confirmPassword {
		return ErrPasswordMismatch
	}

	ok, err := s.repo.ConsumeResetToken(ctx, HashToken(token), HashPassword(newPassword), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to consume reset token: %w", err)
	}
	if !ok {
		return ErrInvalidOrExpiredToken
	}

	slog.Info("password_reset_success")
	return nil
}
