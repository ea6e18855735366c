package usecase

import (
	"context"
	"fmt"
	"time"

	"album-shelf/internal/data/entity"
	"album-shelf/internal/data/repository"
	"album-shelf/internal/dto/request"
	"album-shelf/internal/dto/response"
	"album-shelf/pkg/events"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AlbumService interface {
	Create(ctx context.Context, userID uuid.UUID, req *request.CreateAlbumRequest, ip string) (*response.AlbumResponse, error)
	List(ctx context.Context, userID uuid.UUID, req *request.ListAlbumsRequest) ([]response.AlbumResponse, error)
	Stats(ctx context.Context, userID uuid.UUID) (*response.AlbumStatsResponse, error)
}

type albumService struct {
	albumRepo repository.AlbumRepository
	emitter   events.Emitter
	log       *zap.Logger
}

func NewAlbumService(albumRepo repository.AlbumRepository, emitter events.Emitter, log *zap.Logger) AlbumService {
	return &albumService{
		albumRepo: albumRepo,
		emitter:   emitter,
		log:       log,
	}
}

func (s *albumService) Create(ctx context.Context, userID uuid.UUID, req *request.CreateAlbumRequest, ip string) (*response.AlbumResponse, error) {
	// listenedAt already validated as 2006-01-02
	listenedAt, err := time.Parse("2006-01-02", req.ListenedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid listenedAt date: %w", err)
	}

	now := time.Now()
	album := &entity.Album{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:     userID,
		Title:      req.Title,
		Artist:     req.Artist,
		Genre:      req.Genre,
		Rating:     req.Rating,
		ListenedAt: listenedAt,
	}

	if err := s.albumRepo.Create(ctx, album); err != nil {
		s.log.Error("Failed to add album",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("title", req.Title))
		return nil, fmt.Errorf("failed to add album: %w", err)
	}

	s.log.Info("Album added",
		zap.String("user_id", userID.String()),
		zap.String("album_id", album.ID.String()),
		zap.String("title", album.Title),
		zap.String("artist", album.Artist),
		zap.Int("rating", album.Rating))

	s.emitter.UserActivity("ADD_ALBUM", userID, ip, map[string]any{
		"title":  album.Title,
		"artist": album.Artist,
		"genre":  album.Genre,
		"rating": album.Rating,
	})
	s.emitter.DatabaseChange("INSERT", "albums", map[string]any{
		"userId":  userID.String(),
		"albumId": album.ID.String(),
	})

	resp := response.AlbumToResponse(album)
	return &resp, nil
}

func (s *albumService) List(ctx context.Context, userID uuid.UUID, req *request.ListAlbumsRequest) ([]response.AlbumResponse, error) {
	filter := repository.AlbumFilter{
		Genre:     req.Genre,
		MinRating: req.MinRating,
		Limit:     req.Limit,
		Offset:    req.Offset,
		OrderBy:   req.OrderBy,
		Order:     req.Order,
	}

	// Defaults. OrderBy and Order are whitelisted by validation before this.
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "listened_at"
	}
	if filter.Order == "" {
		filter.Order = "desc"
	}

	albums, err := s.albumRepo.FindAllByUser(ctx, userID, filter)
	if err != nil {
		s.log.Error("Failed to list albums", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to list albums: %w", err)
	}

	return response.AlbumsToResponse(albums), nil
}

func (s *albumService) Stats(ctx context.Context, userID uuid.UUID) (*response.AlbumStatsResponse, error) {
	stats, err := s.albumRepo.Stats(ctx, userID)
	if err != nil {
		s.log.Error("Failed to get stats", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	resp := response.StatsToResponse(stats)
	return &resp, nil
}
