package adaptor

import (
	"album-shelf/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth  *AuthHandler
	Album *AlbumHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:  NewAuthHandler(service.Auth, log),
		Album: NewAlbumHandler(service.Album, log),
	}
}
