package entity

import (
	"time"

	"github.com/google/uuid"
)

type Album struct {
	Base
	UserID     uuid.UUID `db:"user_id"`
	Title      string    `db:"title"`
	Artist     string    `db:"artist"`
	Genre      string    `db:"genre"`
	Rating     int       `db:"rating"`
	ListenedAt time.Time `db:"listened_at"`
}

// GenreStat is one row of the per-genre aggregation
type GenreStat struct {
	Genre     string
	Count     int64
	AvgRating float64
}

// AlbumStats aggregates a user's collection
type AlbumStats struct {
	Total     int64
	AvgRating *float64
	TopRated  []*Album
	ByGenre   []GenreStat
}
