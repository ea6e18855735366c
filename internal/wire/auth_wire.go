package wire

import (
	"album-shelf/internal/adaptor"
	"album-shelf/internal/usecase"
	"album-shelf/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	authService usecase.AuthService,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/api/auth/register", authHandler.Register)
	r.Post("/api/auth/login", authHandler.Login)

	// ==================== PROTECTED ROUTES ====================
	r.With(middleware.Auth(authService, log)).Post("/api/auth/logout", authHandler.Logout)
	r.With(middleware.Auth(authService, log)).Get("/api/auth/profile", authHandler.Profile)
	r.With(middleware.Auth(authService, log)).Get("/api/auth/verify", authHandler.VerifyToken)
}
