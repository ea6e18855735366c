package adaptor

import (
	"encoding/json"
	"net/http"

	"album-shelf/internal/dto/request"
	"album-shelf/internal/usecase"
	"album-shelf/pkg/utils"

	"go.uber.org/zap"
)

type AlbumHandler struct {
	service usecase.AlbumService
	log     *zap.Logger
}

func NewAlbumHandler(service usecase.AlbumService, log *zap.Logger) *AlbumHandler {
	return &AlbumHandler{
		service: service,
		log:     log,
	}
}

// Create handles POST /api/albums
func (h *AlbumHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Access token required")
		return
	}

	var req request.CreateAlbumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	album, err := h.service.Create(r.Context(), userID, &req, utils.ClientIP(r.RemoteAddr))
	if err != nil {
		h.log.Error("Add album failed", zap.Error(err), zap.String("user_id", userID.String()))
		utils.ResponseInternalError(w, "Failed to add album")
		return
	}

	utils.ResponseCreated(w, "Album added", album)
}

// List handles GET /api/albums
func (h *AlbumHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Access token required")
		return
	}

	// Parse query parameters
	query := r.URL.Query()
	req := &request.ListAlbumsRequest{
		Genre:     query.Get("genre"),
		MinRating: utils.ParseInt(query.Get("minRating"), 0),
		Limit:     utils.ParseInt(query.Get("limit"), 20),
		Offset:    utils.ParseInt(query.Get("offset"), 0),
		OrderBy:   query.Get("orderBy"),
		Order:     query.Get("order"),
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	albums, err := h.service.List(r.Context(), userID, req)
	if err != nil {
		h.log.Error("List albums failed", zap.Error(err), zap.String("user_id", userID.String()))
		utils.ResponseInternalError(w, "Failed to list albums")
		return
	}

	utils.ResponseSuccess(w, "Albums retrieved successfully", albums)
}

// Stats handles GET /api/albums/stats
func (h *AlbumHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Access token required")
		return
	}

	stats, err := h.service.Stats(r.Context(), userID)
	if err != nil {
		h.log.Error("Stats failed", zap.Error(err), zap.String("user_id", userID.String()))
		utils.ResponseInternalError(w, "Failed to get stats")
		return
	}

	utils.ResponseSuccess(w, "Stats retrieved successfully", stats)
}
