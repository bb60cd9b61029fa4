// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import "time"

// Role describes what a user is allowed to do.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is a registered account. Verification and reset tokens are
// stored as SHA256 hashes; a token hash and its expiry are always set
// and cleared together.
type User struct { //nolint:govet // fieldalignment: readability over optimization
	ID                 int64      `db:"id" json:"id"`
	Email              string     `db:"email" json:"email"`
	PasswordHash       string     `db:"password_hash" json:"-"`
	Name               string     `db:"name" json:"name"`
	Role               Role       `db:"role" json:"role"`
	EmailConfirmed     bool       `db:"email_confirmed" json:"email_confirmed"`
	VerifyTokenHash    *string    `db:"verify_token_hash" json:"-"`
	VerifyTokenExpires *time.Time `db:"verify_token_expires" json:"-"`
	ResetTokenHash     *string    `db:"reset_token_hash" json:"-"`
	ResetTokenExpires  *time.Time `db:"reset_token_expires" json:"-"`
	Active             bool       `db:"active" json:"active"`
	ImageURL           *string    `db:"image_url" json:"image_url,omitempty"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
}

// IsAdmin reports whether the user has the administrator role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
