package repository

import (
	"context"
	"fmt"

	"album-shelf/internal/data/entity"
	"album-shelf/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TokenRepository interface {
	Create(ctx context.Context, token *entity.UserToken) error
	FindLiveByToken(ctx context.Context, token string) (*entity.LiveToken, error)
	Revoke(ctx context.Context, token string) (int64, error)
	TouchLastUsed(ctx context.Context, id uuid.UUID) error
}

type tokenRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTokenRepository(db database.PgxIface, log *zap.Logger) TokenRepository {
	return &tokenRepository{
		db:  db,
		log: log.With(zap.String("repository", "token")),
	}
}

func (r *tokenRepository) Create(ctx context.Context, token *entity.UserToken) error {
	query := `
		INSERT INTO user_tokens (id, user_id, token, is_valid, expires_at,
		                        created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		token.ID,
		token.UserID,
		token.Token,
		token.IsValid,
		token.ExpiresAt,
		token.CreatedAt,
		token.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create token",
			zap.Error(err),
			zap.String("user_id", token.UserID.String()),
		)
		return fmt.Errorf("create token for user %s: %w", token.UserID.String(), err)
	}

	return nil
}

// FindLiveByToken loads the ledger row by exact token string, joined with the
// owning account. The liveness predicate (is_valid AND not expired) is part of
// the query so every verification reflects the latest committed revocation.
// The account active flag is returned rather than filtered on, the caller
// reports a distinct reason for deactivated accounts.
func (r *tokenRepository) FindLiveByToken(ctx context.Context, token string) (*entity.LiveToken, error) {
	query := `
		SELECT ut.id, ut.user_id, ut.expires_at, u.email, u.is_active
		FROM user_tokens ut
		JOIN users u ON u.id = ut.user_id
		WHERE ut.token = $1
		  AND ut.is_valid = true
		  AND ut.expires_at > NOW()
	`

	var live entity.LiveToken
	err := r.db.QueryRow(ctx, query, token).Scan(
		&live.TokenID,
		&live.UserID,
		&live.ExpiresAt,
		&live.Email,
		&live.IsActive,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find live token", zap.Error(err))
		return nil, fmt.Errorf("find live token: %w", err)
	}

	return &live, nil
}

// Revoke flips is_valid to false. Revoking an unknown or already-revoked
// token affects zero rows and is not an error.
func (r *tokenRepository) Revoke(ctx context.Context, token string) (int64, error) {
	query := `
		UPDATE user_tokens
		SET is_valid = false, updated_at = NOW()
		WHERE token = $1 AND is_valid = true
	`

	result, err := r.db.Exec(ctx, query, token)
	if err != nil {
		r.log.Error("Failed to revoke token", zap.Error(err))
		return 0, fmt.Errorf("revoke token: %w", err)
	}

	return result.RowsAffected(), nil
}

// TouchLastUsed stamps last_used after a successful verification. Best-effort,
// callers ignore the error beyond logging it.
func (r *tokenRepository) TouchLastUsed(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE user_tokens
		SET last_used = NOW(), updated_at = NOW()
		WHERE id = $1
	`

	_, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("touch last_used for token %s: %w", id.String(), err)
	}

	return nil
}
