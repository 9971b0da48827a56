package repository_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/taskflow/internal/db/dbtest"
	"github.com/templui/taskflow/internal/model"
	"github.com/templui/taskflow/internal/repository"
)

func TestUserRepository(t *testing.T) {
	database := dbtest.New(t)
	ctx := context.Background()
	repo := repository.NewUserRepository(database)

	user := seedUser(t, database, "ana@example.com")

	byID, err := repo.ByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", byID.Email)
	assert.Equal(t, "hash", byID.PasswordHash)

	byEmail, err := repo.ByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = repo.ByID(ctx, uuid.New().String())
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	_, err = repo.ByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	dup := &model.User{ID: uuid.New().String(), Email: "ana@example.com", PasswordHash: "x", CreatedAt: baseTime}
	assert.ErrorIs(t, repo.Create(ctx, dup), repository.ErrDuplicateEmail)
}
