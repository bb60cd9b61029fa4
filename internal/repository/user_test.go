// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository_test

import (
	"context"
	"testing"
	"time"

	"codeberg.org/oliverandrich/tourbooking/internal/models"
	"codeberg.org/oliverandrich/tourbooking/internal/repository"
	"codeberg.org/oliverandrich/tourbooking/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserAndLookup(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	user := testutil.NewTestUser(t, repo, "alice@example.com")
	require.NotZero(t, user.ID)

	byID, err := repo.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", byID.Email)

	byEmail, err := repo.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
}

func TestGetUser_NotFound(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	_, err := repo.GetUserByID(ctx, 9999)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.GetUserByEmail(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestEmailExists(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	testutil.NewTestUser(t, repo, "alice@example.com")

	exists, err := repo.EmailExists(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.EmailExists(ctx, "ghost@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	testutil.NewTestUser(t, repo, "alice@example.com")

	dup := &models.User{
		Email:        "alice@example.com",
		PasswordHash: "irrelevant",
		Name:         "Imposter",
		Role:         models.RoleUser,
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}
	err := repo.CreateUser(ctx, dup)
	assert.Error(t, err)
}

func newUserWithVerifyToken(t *testing.T, repo *repository.Repository, tokenHash string, expires time.Time) *models.User {
	t.Helper()
	user := &models.User{
		Email:              "pending@example.com",
		PasswordHash:       "hash",
		Name:               "Pending",
		Role:               models.RoleUser,
		VerifyTokenHash:    &tokenHash,
		VerifyTokenExpires: &expires,
		Active:             true,
		CreatedAt:          time.Now().UTC(),
	}
	require.NoError(t, repo.CreateUser(context.Background(), user))
	return user
}

func TestConsumeVerifyToken(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	now := time.Now().UTC()

	user := newUserWithVerifyToken(t, repo, "token-hash", now.Add(time.Hour))

	consumed, err := repo.ConsumeVerifyToken(ctx, "token-hash", now)
	require.NoError(t, err)
	assert.True(t, consumed)

	stored, err := repo.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, stored.EmailConfirmed)
	assert.Nil(t, stored.VerifyTokenHash)
	assert.Nil(t, stored.VerifyTokenExpires)

	// consumed tokens cannot be replayed
	consumed, err = repo.ConsumeVerifyToken(ctx, "token-hash", now)
	require.NoError(t, err)
	assert.False(t, consumed)
}

func TestConsumeVerifyToken_Expired(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	now := time.Now().UTC()

	user := newUserWithVerifyToken(t, repo, "token-hash", now.Add(-time.Minute))

	consumed, err := repo.ConsumeVerifyToken(ctx, "token-hash", now)
	require.NoError(t, err)
	assert.False(t, consumed)

	stored, err := repo.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, stored.EmailConfirmed)
}

func TestConsumeResetToken(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	now := time.Now().UTC()

	user := testutil.NewTestUser(t, repo, "alice@example.com")
	require.NoError(t, repo.SetResetToken(ctx, user.ID, "reset-hash", now.Add(15*time.Minute)))

	consumed, err := repo.ConsumeResetToken(ctx, "reset-hash", "new-password-hash", now)
	require.NoError(t, err)
	assert.True(t, consumed)

	stored, err := repo.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-password-hash", stored.PasswordHash)
	assert.Nil(t, stored.ResetTokenHash)
	assert.Nil(t, stored.ResetTokenExpires)

	consumed, err = repo.ConsumeResetToken(ctx, "reset-hash", "another-hash", now)
	require.NoError(t, err)
	assert.False(t, consumed)
}

func TestConsumeResetToken_Expired(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()
	now := time.Now().UTC()

	user := testutil.NewTestUser(t, repo, "alice@example.com")
	oldHash := user.PasswordHash
	require.NoError(t, repo.SetResetToken(ctx, user.ID, "reset-hash", now.Add(-time.Minute)))

	consumed, err := repo.ConsumeResetToken(ctx, "reset-hash", "new-password-hash", now)
	require.NoError(t, err)
	assert.False(t, consumed)

	stored, err := repo.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, oldHash, stored.PasswordHash)
}

func TestUpdateUserProfile(t *testing.T) {
	_, repo := testutil.NewTestDB(t)
	ctx := context.Background()

	user := testutil.NewTestUser(t, repo, "alice@example.com")
	user.Name = "Alice Renamed"
	imageURL := "https://example.com/avatar.png"
	user.ImageURL = &imageURL

	require.NoError(t, repo.UpdateUserProfile(ctx, user))

	stored, err := repo.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Renamed", stored.Name)
	require.NotNil(t, stored.ImageURL)
	assert.Equal(t, imageURL, *stored.ImageURL)
}
