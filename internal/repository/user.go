// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"codeberg.org/oliverandrich/tourbooking/internal/models"
	"github.com/vinovest/sqlx"
)

// GetUserByID retrieves a user by their ID.
func (r *Repository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := sqlx.GetContext(ctx, r.q, &user, `SELECT * FROM users WHERE id = ?`, id)
	if err != nil {
		return nil, wrapError(err)
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by their email address. The match
// is exact as stored.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := sqlx.GetContext(ctx, r.q, &user, `SELECT * FROM users WHERE email = ?`, email)
	if err != nil {
		return nil, wrapError(err)
	}
	return &user, nil
}

// EmailExists reports whether a user with the given email exists.
func (r *Repository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int
	err := sqlx.GetContext(ctx, r.q, &count, `SELECT COUNT(*) FROM users WHERE email = ?`, email)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateUser inserts a new user and sets its ID.
func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	res, err := r.q.ExecContext(ctx, `
		INSERT INTO users (email, password_hash, name, role, email_confirmed,
			verify_token_hash, verify_token_expires, active, image_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.Email, user.PasswordHash, user.Name, user.Role, user.EmailConfirmed,
		user.VerifyTokenHash, user.VerifyTokenExpires, user.Active, user.ImageURL,
		user.CreatedAt)
	if err != nil {
		return err
	}
	user.ID, err = res.LastInsertId()
	return err
}

// ConsumeVerifyToken marks the matching user's email as confirmed and
// clears the verification token and its expiry in the same statement.
// Only a token whose expiry is strictly in the future matches; the
// caller cannot tell a wrong token from an expired one. Returns false
// when no user matched.
func (r *Repository) ConsumeVerifyToken(ctx context.Context, tokenHash string, now time.Time) (bool, error) {
	res, err := r.q.ExecContext(ctx, `
		UPDATE users
		SET email_confirmed = 1, verify_token_hash = NULL, verify_token_expires = NULL
		WHERE verify_token_hash = ? AND verify_token_expires > ?`,
		tokenHash, now.UTC())
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// SetResetToken stores a password reset token hash and expiry for a user.
func (r *Repository) SetResetToken(ctx context.Context, userID int64, tokenHash string, expiresAt time.Time) error {
	_, err := r.q.ExecContext(ctx, `
		UPDATE users SET reset_token_hash = ?, reset_token_expires = ? WHERE id = ?`,
		tokenHash, expiresAt.UTC(), userID)
	return err
}

// ConsumeResetToken replaces the matching user's password hash and
// clears the reset token and its expiry in the same statement.
// Returns false when no user matched a non-expired token.
func (r *Repository) ConsumeResetToken(ctx context.Context, tokenHash, passwordHash string, now time.Time) (bool, error) {
	res, err := r.q.ExecContext(ctx, `
		UPDATE users
		SET password_hash = ?, reset_token_hash = NULL, reset_token_expires = NULL
		WHERE reset_token_hash = ? AND reset_token_expires > ?`,
		passwordHash, tokenHash, now.UTC())
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// UpdateUserProfile updates the mutable profile fields of a user.
func (r *Repository) UpdateUserProfile(ctx context.Context, user *models.User) error {
	_, err := r.q.ExecContext(ctx, `
		UPDATE users SET name = ?, image_url = ?, active = ? WHERE id = ?`,
		user.Name, user.ImageURL, user.Active, user.ID)
	return err
}

// ListUsers returns all users ordered by creation date (newest first).
func (r *Repository) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := sqlx.SelectContext(ctx, r.q, &users, `SELECT * FROM users ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	return users, nil
}
