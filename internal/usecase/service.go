package usecase

import (
	"album-shelf/internal/data/repository"
	"album-shelf/pkg/events"
	"album-shelf/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth  AuthService
	Album AlbumService
}

func NewService(repo *repository.Repository, emitter events.Emitter, config *utils.Config, log *zap.Logger) *Service {
	codec := NewTokenCodec(config.JWT)

	return &Service{
		Auth:  NewAuthService(repo, codec, emitter, log),
		Album: NewAlbumService(repo.Album, emitter, log),
	}
}
