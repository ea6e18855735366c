package usecase_test

import (
	"strings"
	"testing"
	"time"

	"album-shelf/internal/usecase"
	"album-shelf/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCodec(ttlHours int) usecase.TokenCodec {
	return usecase.NewTokenCodec(utils.JWTConfig{
		Secret:   "test-secret",
		TTLHours: ttlHours,
	})
}

// tamper flips one character inside the signature segment
func tamper(token string) string {
	parts := strings.Split(token, ".")
	sig := []byte(parts[2])
	i := len(sig) / 2
	if sig[i] == 'A' {
		sig[i] = 'B'
	} else {
		sig[i] = 'A'
	}
	parts[2] = string(sig)
	return strings.Join(parts, ".")
}

func TestTokenCodecRoundtrip(t *testing.T) {
	codec := newCodec(24)
	userID := uuid.New()

	signed, expiresAt, err := codec.Sign(userID, "a@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	// expiry roughly TTL ahead
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), expiresAt, time.Minute)

	claims, err := codec.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.WithinDuration(t, expiresAt, claims.ExpiresAt.Time, time.Second)
}

func TestTokenCodecExpired(t *testing.T) {
	codec := newCodec(-1)

	signed, _, err := codec.Sign(uuid.New(), "a@x.com")
	require.NoError(t, err)

	_, err = codec.Verify(signed)
	assert.ErrorIs(t, err, usecase.ErrTokenExpired)
}

func TestTokenCodecTampered(t *testing.T) {
	codec := newCodec(24)

	signed, _, err := codec.Sign(uuid.New(), "a@x.com")
	require.NoError(t, err)

	_, err = codec.Verify(tamper(signed))
	assert.ErrorIs(t, err, usecase.ErrTokenInvalid)
	assert.NotErrorIs(t, err, usecase.ErrTokenExpired)
}

func TestTokenCodecTamperedAndExpired(t *testing.T) {
	// A bad signature always wins over the embedded expiry
	codec := newCodec(-1)

	signed, _, err := codec.Sign(uuid.New(), "a@x.com")
	require.NoError(t, err)

	_, err = codec.Verify(tamper(signed))
	assert.ErrorIs(t, err, usecase.ErrTokenInvalid)
}

func TestTokenCodecWrongSecret(t *testing.T) {
	codec := newCodec(24)
	other := usecase.NewTokenCodec(utils.JWTConfig{Secret: "other-secret", TTLHours: 24})

	signed, _, err := codec.Sign(uuid.New(), "a@x.com")
	require.NoError(t, err)

	_, err = other.Verify(signed)
	assert.ErrorIs(t, err, usecase.ErrTokenInvalid)
}

func TestTokenCodecGarbage(t *testing.T) {
	codec := newCodec(24)

	_, err := codec.Verify("not-a-token")
	assert.ErrorIs(t, err, usecase.ErrTokenInvalid)
}
