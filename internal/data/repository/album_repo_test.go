package repository_test

import (
	"context"
	"testing"
	"time"

	"album-shelf/internal/data/repository"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func albumColumns() []string {
	return []string{"id", "user_id", "title", "artist", "genre", "rating",
		"listened_at", "created_at", "updated_at"}
}

func TestAlbumFindAllByUser(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repository.NewAlbumRepository(mock, zap.NewNop())
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now()

	t.Run("no filters", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, user_id, title").
			WithArgs(userID, 20, 0).
			WillReturnRows(pgxmock.NewRows(albumColumns()).
				AddRow(uuid.New(), userID, "Paradise Again", "Swedish House Mafia", "House", 5, now, now, now))

		albums, err := r.FindAllByUser(ctx, userID, repository.AlbumFilter{
			Limit:   20,
			OrderBy: "listened_at",
			Order:   "desc",
		})
		require.NoError(t, err)
		require.Len(t, albums, 1)
		assert.Equal(t, "Paradise Again", albums[0].Title)
	})

	t.Run("genre and rating filters add placeholders", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, user_id, title").
			WithArgs(userID, "House", 4, 10, 5).
			WillReturnRows(pgxmock.NewRows(albumColumns()))

		albums, err := r.FindAllByUser(ctx, userID, repository.AlbumFilter{
			Genre:     "House",
			MinRating: 4,
			Limit:     10,
			Offset:    5,
			OrderBy:   "rating",
			Order:     "asc",
		})
		require.NoError(t, err)
		assert.Empty(t, albums)
	})
}

func TestAlbumStats(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	r := repository.NewAlbumRepository(mock, zap.NewNop())
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now()
	avg := 4.5

	mock.ExpectQuery("SELECT COUNT").
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows([]string{"count", "avg"}).AddRow(int64(2), &avg))

	mock.ExpectQuery("SELECT id, user_id, title").
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows(albumColumns()).
			AddRow(uuid.New(), userID, "A", "B", "House", 5, now, now, now).
			AddRow(uuid.New(), userID, "C", "D", "Jazz", 4, now, now, now))

	mock.ExpectQuery("SELECT genre, COUNT").
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows([]string{"genre", "count", "avg"}).
			AddRow("House", int64(1), 5.0).
			AddRow("Jazz", int64(1), 4.0))

	stats, err := r.Stats(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total)
	require.NotNil(t, stats.AvgRating)
	assert.InDelta(t, 4.5, *stats.AvgRating, 0.001)
	assert.Len(t, stats.TopRated, 2)
	assert.Len(t, stats.ByGenre, 2)
	assert.Equal(t, "House", stats.ByGenre[0].Genre)
}
