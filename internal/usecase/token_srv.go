package usecase

import (
	"errors"
	"fmt"
	"time"

	"album-shelf/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenClaims is the signed wire form of a session token: subject account,
// issue time and expiry. Authenticity only, liveness lives in the ledger.
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// TokenCodec signs and verifies session tokens with a shared HS256 secret.
// Pure computation, safe for concurrent use.
type TokenCodec interface {
	Sign(userID uuid.UUID, email string) (string, time.Time, error)
	Verify(tokenString string) (*TokenClaims, error)
}

type tokenCodec struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenCodec(config utils.JWTConfig) TokenCodec {
	return &tokenCodec{
		secret: []byte(config.Secret),
		ttl:    time.Duration(config.TTLHours) * time.Hour,
	}
}

func (c *tokenCodec) Sign(userID uuid.UUID, email string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(c.ttl)

	claims := TokenClaims{
		UserID: userID.String(),
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// Verify checks signature and embedded expiry. An expired-but-authentic token
// is reported apart from a tampered or malformed one.
func (c *tokenCodec) Verify(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}

	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Only HMAC, reject tokens signed with anything else
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
