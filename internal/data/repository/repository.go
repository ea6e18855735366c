package repository

import (
	"album-shelf/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User  UserRepository
	Token TokenRepository
	Album AlbumRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:  NewUserRepository(db, log),
		Token: NewTokenRepository(db, log),
		Album: NewAlbumRepository(db, log),
	}
}
