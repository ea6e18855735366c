package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"album-shelf/internal/data/entity"
	"album-shelf/internal/data/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestUserFindByEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repository.NewUserRepository(mock, zap.NewNop())
	ctx := context.Background()

	columns := []string{"id", "email", "password", "first_name", "last_name",
		"is_active", "last_login", "created_at", "updated_at"}
	userID := uuid.New()
	now := time.Now()

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, email, password").
			WithArgs("a@x.com").
			WillReturnRows(pgxmock.NewRows(columns).
				AddRow(userID, "a@x.com", "digest", "Ada", "L", true, nil, now, now))

		user, err := r.FindByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, userID, user.ID)
		assert.True(t, user.IsActive)
		assert.Nil(t, user.LastLogin)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, email, password").
			WithArgs("nobody@x.com").
			WillReturnError(pgx.ErrNoRows)

		user, err := r.FindByEmail(ctx, "nobody@x.com")
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, email, password").
			WithArgs("a@x.com").
			WillReturnError(fmt.Errorf("db error"))

		_, err := r.FindByEmail(ctx, "a@x.com")
		assert.Error(t, err)
	})
}

func TestUserCreate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repository.NewUserRepository(mock, zap.NewNop())
	ctx := context.Background()

	now := time.Now()
	user := &entity.User{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Email:        "a@x.com",
		PasswordHash: "digest",
		FirstName:    "Ada",
		LastName:     "L",
		IsActive:     true,
	}

	mock.ExpectExec("INSERT INTO users").
		WithArgs(user.ID, user.Email, user.PasswordHash, user.FirstName,
			user.LastName, user.IsActive, user.CreatedAt, user.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	assert.NoError(t, r.Create(ctx, user))
}

func TestUserMarkLogin(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repository.NewUserRepository(mock, zap.NewNop())
	ctx := context.Background()
	userID := uuid.New()

	mock.ExpectExec("UPDATE users").
		WithArgs(userID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	assert.NoError(t, r.MarkLogin(ctx, userID))
}
