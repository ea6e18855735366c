package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserToken is the authoritative ledger row behind a signed bearer token.
// The token column stores the signed string verbatim so revocation can match
// exactly what the client presents. expires_at never changes after insert and
// is_valid only ever flips from true to false.
type UserToken struct {
	Base
	UserID    uuid.UUID  `db:"user_id"`
	Token     string     `db:"token"`
	IsValid   bool       `db:"is_valid"`
	LastUsed  *time.Time `db:"last_used"`
	ExpiresAt time.Time  `db:"expires_at"`
}

// LiveToken is a ledger row joined with its owning account, as loaded by
// the verification query.
type LiveToken struct {
	TokenID   uuid.UUID
	UserID    uuid.UUID
	Email     string
	IsActive  bool
	ExpiresAt time.Time
}
