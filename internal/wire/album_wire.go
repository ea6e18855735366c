package wire

import (
	"album-shelf/internal/adaptor"
	"album-shelf/internal/usecase"
	"album-shelf/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireAlbum configures the album routes, all of them require identity
func wireAlbum(
	r chi.Router,
	albumHandler *adaptor.AlbumHandler,
	authService usecase.AuthService,
	log *zap.Logger,
) {
	r.With(middleware.Auth(authService, log)).Route("/api/albums", func(r chi.Router) {
		r.Post("/", albumHandler.Create)
		r.Get("/", albumHandler.List)
		r.Get("/stats", albumHandler.Stats)
	})
}
