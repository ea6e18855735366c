// internal/wire/wire.go
package wire

import (
	"net/http"
	"time"

	"album-shelf/internal/adaptor"
	"album-shelf/internal/data/repository"
	"album-shelf/internal/usecase"
	"album-shelf/pkg/events"
	"album-shelf/pkg/middleware"
	"album-shelf/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"go.uber.org/zap"
)

// App holds the wired dependencies
type App struct {
	Router *chi.Mux
}

// Wiring initializes all dependencies
func Wiring(repo *repository.Repository, producer *events.Producer, config *utils.Config, logger *zap.Logger) *App {
	// Initialize services and handlers
	service := usecase.NewService(repo, producer, config, logger)
	handler := adaptor.NewHandler(service, logger)

	// Setup router
	router := setupRouter(handler, service, config, logger)

	return &App{
		Router: router,
	}
}

// setupRouter configures the chi router
func setupRouter(
	handler *adaptor.Handler,
	service *usecase.Service,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.FrontendOrigin))
	r.Use(httprate.LimitByIP(100, 15*time.Minute))

	// Apply routes
	wireAuth(r, handler.Auth, service.Auth, logger)
	wireAlbum(r, handler.Album, service.Auth, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseSuccess(w, "healthy", map[string]any{
			"ts": time.Now().UTC().Format(time.RFC3339),
		})
	})

	return r
}
