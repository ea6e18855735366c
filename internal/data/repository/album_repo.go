package repository

import (
	"context"
	"fmt"
	"strings"

	"album-shelf/internal/data/entity"
	"album-shelf/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AlbumFilter narrows and orders a user's album listing. OrderBy and Order
// must already be whitelisted by the service layer before they reach SQL.
type AlbumFilter struct {
	Genre     string
	MinRating int
	Limit     int
	Offset    int
	OrderBy   string
	Order     string
}

type AlbumRepository interface {
	Create(ctx context.Context, album *entity.Album) error
	FindAllByUser(ctx context.Context, userID uuid.UUID, filter AlbumFilter) ([]*entity.Album, error)
	Stats(ctx context.Context, userID uuid.UUID) (*entity.AlbumStats, error)
}

type albumRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAlbumRepository(db database.PgxIface, log *zap.Logger) AlbumRepository {
	return &albumRepository{
		db:  db,
		log: log.With(zap.String("repository", "album")),
	}
}

func (r *albumRepository) Create(ctx context.Context, album *entity.Album) error {
	query := `
		INSERT INTO albums (id, user_id, title, artist, genre, rating,
		                   listened_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		album.ID,
		album.UserID,
		album.Title,
		album.Artist,
		album.Genre,
		album.Rating,
		album.ListenedAt,
		album.CreatedAt,
		album.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create album",
			zap.Error(err),
			zap.String("user_id", album.UserID.String()),
			zap.String("title", album.Title),
		)
		return fmt.Errorf("create album %s: %w", album.Title, err)
	}

	return nil
}

func (r *albumRepository) FindAllByUser(ctx context.Context, userID uuid.UUID, filter AlbumFilter) ([]*entity.Album, error) {
	// Build query with optional filters
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT id, user_id, title, artist, genre, rating, listened_at,
		       created_at, updated_at
		FROM albums
		WHERE user_id = $1
	`)

	args := []interface{}{userID}
	argCount := 2

	if filter.Genre != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND genre = $%d", argCount))
		args = append(args, filter.Genre)
		argCount++
	}

	if filter.MinRating > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" AND rating >= $%d", argCount))
		args = append(args, filter.MinRating)
		argCount++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s %s LIMIT $%d OFFSET $%d",
		filter.OrderBy, strings.ToUpper(filter.Order), argCount, argCount+1))
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to list albums",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("list albums for user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var albums []*entity.Album
	for rows.Next() {
		var album entity.Album
		err := rows.Scan(
			&album.ID,
			&album.UserID,
			&album.Title,
			&album.Artist,
			&album.Genre,
			&album.Rating,
			&album.ListenedAt,
			&album.CreatedAt,
			&album.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan album row", zap.Error(err))
			return nil, fmt.Errorf("scan album row: %w", err)
		}
		albums = append(albums, &album)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate album rows: %w", err)
	}

	return albums, nil
}

// Stats aggregates totals, top rated albums and per-genre breakdown
func (r *albumRepository) Stats(ctx context.Context, userID uuid.UUID) (*entity.AlbumStats, error) {
	stats := &entity.AlbumStats{}

	totalsQuery := `
		SELECT COUNT(*), AVG(rating)
		FROM albums
		WHERE user_id = $1
	`

	err := r.db.QueryRow(ctx, totalsQuery, userID).Scan(&stats.Total, &stats.AvgRating)
	if err != nil {
		r.log.Error("Failed to load album totals",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("album totals for user %s: %w", userID.String(), err)
	}

	topQuery := `
		SELECT id, user_id, title, artist, genre, rating, listened_at,
		       created_at, updated_at
		FROM albums
		WHERE user_id = $1
		ORDER BY rating DESC, listened_at DESC
		LIMIT 5
	`

	rows, err := r.db.Query(ctx, topQuery, userID)
	if err != nil {
		r.log.Error("Failed to load top rated albums",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("top rated albums for user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	for rows.Next() {
		var album entity.Album
		err := rows.Scan(
			&album.ID,
			&album.UserID,
			&album.Title,
			&album.Artist,
			&album.Genre,
			&album.Rating,
			&album.ListenedAt,
			&album.CreatedAt,
			&album.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan top rated row: %w", err)
		}
		stats.TopRated = append(stats.TopRated, &album)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate top rated rows: %w", err)
	}

	genreQuery := `
		SELECT genre, COUNT(*), ROUND(AVG(rating), 2)
		FROM albums
		WHERE user_id = $1
		GROUP BY genre
		ORDER BY COUNT(*) DESC
	`

	genreRows, err := r.db.Query(ctx, genreQuery, userID)
	if err != nil {
		r.log.Error("Failed to load genre breakdown",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("genre breakdown for user %s: %w", userID.String(), err)
	}
	defer genreRows.Close()

	for genreRows.Next() {
		var gs entity.GenreStat
		if err := genreRows.Scan(&gs.Genre, &gs.Count, &gs.AvgRating); err != nil {
			return nil, fmt.Errorf("scan genre row: %w", err)
		}
		stats.ByGenre = append(stats.ByGenre, gs)
	}
	if err := genreRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate genre rows: %w", err)
	}

	return stats, nil
}
