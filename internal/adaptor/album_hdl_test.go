package adaptor_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"album-shelf/internal/adaptor"
	"album-shelf/internal/dto/request"
	"album-shelf/internal/dto/response"
	"album-shelf/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubAlbumService struct {
	createResp *response.AlbumResponse
	createErr  error
	listResp   []response.AlbumResponse
	listErr    error
	statsResp  *response.AlbumStatsResponse
	statsErr   error

	gotListReq *request.ListAlbumsRequest
}

func (s *stubAlbumService) Create(context.Context, uuid.UUID, *request.CreateAlbumRequest, string) (*response.AlbumResponse, error) {
	return s.createResp, s.createErr
}

func (s *stubAlbumService) List(_ context.Context, _ uuid.UUID, req *request.ListAlbumsRequest) ([]response.AlbumResponse, error) {
	s.gotListReq = req
	return s.listResp, s.listErr
}

func (s *stubAlbumService) Stats(context.Context, uuid.UUID) (*response.AlbumStatsResponse, error) {
	return s.statsResp, s.statsErr
}

func authedRequest(method, target string, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	ctx := utils.SetUserContext(req.Context(), uuid.New(), "a@x.com")
	return req.WithContext(ctx)
}

func TestAlbumHandlerCreate(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := &stubAlbumService{createResp: &response.AlbumResponse{
			ID:    uuid.NewString(),
			Title: "Paradise Again",
		}}
		h := adaptor.NewAlbumHandler(svc, zap.NewNop())

		payload := `{"title":"Paradise Again","artist":"Swedish House Mafia","genre":"House","rating":5,"listenedAt":"2022-04-15"}`
		rec := httptest.NewRecorder()

		h.Create(rec, authedRequest(http.MethodPost, "/api/albums", payload))

		assert.Equal(t, http.StatusCreated, rec.Code)
		body := parseBody(t, rec)
		assert.Equal(t, "Album added", body["message"])
	})

	t.Run("rating out of range", func(t *testing.T) {
		h := adaptor.NewAlbumHandler(&stubAlbumService{}, zap.NewNop())

		payload := `{"title":"A","artist":"B","genre":"House","rating":9,"listenedAt":"2022-04-15"}`
		rec := httptest.NewRecorder()

		h.Create(rec, authedRequest(http.MethodPost, "/api/albums", payload))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Validation failed", parseBody(t, rec)["message"])
	})

	t.Run("no identity in context", func(t *testing.T) {
		h := adaptor.NewAlbumHandler(&stubAlbumService{}, zap.NewNop())

		req := httptest.NewRequest(http.MethodPost, "/api/albums", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()

		h.Create(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAlbumHandlerList(t *testing.T) {
	t.Run("query params become filters", func(t *testing.T) {
		svc := &stubAlbumService{listResp: []response.AlbumResponse{}}
		h := adaptor.NewAlbumHandler(svc, zap.NewNop())

		rec := httptest.NewRecorder()
		h.List(rec, authedRequest(http.MethodGet,
			"/api/albums?genre=House&minRating=4&limit=10&offset=5&orderBy=rating&order=asc", ""))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, &request.ListAlbumsRequest{
			Genre:     "House",
			MinRating: 4,
			Limit:     10,
			Offset:    5,
			OrderBy:   "rating",
			Order:     "asc",
		}, svc.gotListReq)
	})

	t.Run("rejects unknown order column", func(t *testing.T) {
		h := adaptor.NewAlbumHandler(&stubAlbumService{}, zap.NewNop())

		rec := httptest.NewRecorder()
		h.List(rec, authedRequest(http.MethodGet, "/api/albums?orderBy=password", ""))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("service failure", func(t *testing.T) {
		svc := &stubAlbumService{listErr: fmt.Errorf("db down")}
		h := adaptor.NewAlbumHandler(svc, zap.NewNop())

		rec := httptest.NewRecorder()
		h.List(rec, authedRequest(http.MethodGet, "/api/albums", ""))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Failed to list albums", parseBody(t, rec)["message"])
	})
}

func TestAlbumHandlerStats(t *testing.T) {
	avg := 4.5
	svc := &stubAlbumService{statsResp: &response.AlbumStatsResponse{
		Total:     2,
		AvgRating: &avg,
	}}
	h := adaptor.NewAlbumHandler(svc, zap.NewNop())

	rec := httptest.NewRecorder()
	h.Stats(rec, authedRequest(http.MethodGet, "/api/albums/stats", ""))

	assert.Equal(t, http.StatusOK, rec.Code)
	data := parseBody(t, rec)["data"].(map[string]any)
	assert.Equal(t, float64(2), data["total"])
}
