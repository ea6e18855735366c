package response

import (
	"time"

	"album-shelf/internal/data/entity"
)

type AlbumResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Artist     string    `json:"artist"`
	Genre      string    `json:"genre"`
	Rating     int       `json:"rating"`
	ListenedAt string    `json:"listenedAt"`
	CreatedAt  time.Time `json:"createdAt"`
}

type GenreStatResponse struct {
	Genre     string  `json:"genre"`
	Count     int64   `json:"count"`
	AvgRating float64 `json:"avgRating"`
}

type AlbumStatsResponse struct {
	Total     int64               `json:"total"`
	AvgRating *float64            `json:"avgRating"`
	TopRated  []AlbumResponse     `json:"topRated"`
	ByGenre   []GenreStatResponse `json:"byGenre"`
}

func AlbumToResponse(album *entity.Album) AlbumResponse {
	return AlbumResponse{
		ID:         album.ID.String(),
		Title:      album.Title,
		Artist:     album.Artist,
		Genre:      album.Genre,
		Rating:     album.Rating,
		ListenedAt: album.ListenedAt.Format("2006-01-02"),
		CreatedAt:  album.CreatedAt,
	}
}

func AlbumsToResponse(albums []*entity.Album) []AlbumResponse {
	result := make([]AlbumResponse, 0, len(albums))
	for _, album := range albums {
		result = append(result, AlbumToResponse(album))
	}
	return result
}

func StatsToResponse(stats *entity.AlbumStats) AlbumStatsResponse {
	resp := AlbumStatsResponse{
		Total:     stats.Total,
		AvgRating: stats.AvgRating,
		TopRated:  AlbumsToResponse(stats.TopRated),
		ByGenre:   make([]GenreStatResponse, 0, len(stats.ByGenre)),
	}

	for _, gs := range stats.ByGenre {
		resp.ByGenre = append(resp.ByGenre, GenreStatResponse{
			Genre:     gs.Genre,
			Count:     gs.Count,
			AvgRating: gs.AvgRating,
		})
	}

	return resp
}
