package middleware_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"album-shelf/internal/dto/request"
	"album-shelf/internal/dto/response"
	"album-shelf/internal/usecase"
	"album-shelf/pkg/middleware"
	"album-shelf/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubAuthService drives the middleware through every Verify outcome.
type stubAuthService struct {
	identity *usecase.Identity
	err      error
}

func (s *stubAuthService) Register(context.Context, *request.RegisterRequest, string) (*response.UserResponse, error) {
	panic("not used")
}

func (s *stubAuthService) Login(context.Context, *request.LoginRequest, string) (*response.AuthResponse, error) {
	panic("not used")
}

func (s *stubAuthService) Verify(context.Context, string) (*usecase.Identity, error) {
	return s.identity, s.err
}

func (s *stubAuthService) Logout(context.Context, string, usecase.Identity, string) error {
	panic("not used")
}

func (s *stubAuthService) Profile(context.Context, uuid.UUID) (*response.UserResponse, error) {
	panic("not used")
}

func callAuth(t *testing.T, svc usecase.AuthService, header string, next http.Handler) *httptest.ResponseRecorder {
	t.Helper()

	if next == nil {
		next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/api/albums", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()

	middleware.Auth(svc, zap.NewNop())(next).ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAuthMissingHeader(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"wrong scheme", "Basic abc"},
		{"bearer without token", "Bearer "},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := callAuth(t, &stubAuthService{}, tc.header, nil)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			body := decodeBody(t, rec)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, "Access token required", body["message"])
		})
	}
}

func TestAuthVerifyFailures(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"invalid token", usecase.ErrTokenInvalid, http.StatusUnauthorized, "Invalid token"},
		{"expired token", usecase.ErrTokenExpired, http.StatusUnauthorized, "Token has expired"},
		{"revoked token", usecase.ErrTokenRevoked, http.StatusUnauthorized, "Invalid or expired token"},
		{"inactive account", usecase.ErrTokenUserInactive, http.StatusUnauthorized, "User account is inactive"},
		{"storage failure fails closed", fmt.Errorf("verify session: db down"), http.StatusInternalServerError, "Authentication failed"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			})

			rec := callAuth(t, &stubAuthService{err: tc.err}, "Bearer some-token", next)

			assert.False(t, called)
			assert.Equal(t, tc.wantStatus, rec.Code)
			body := decodeBody(t, rec)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tc.wantMsg, body["message"])
		})
	}
}

func TestAuthSuccessAttachesIdentity(t *testing.T) {
	identity := &usecase.Identity{
		UserID:  uuid.New(),
		TokenID: uuid.New(),
		Email:   "a@x.com",
	}

	var gotUserID, gotTokenID uuid.UUID
	var gotEmail, gotToken string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = utils.GetUserIDFromContext(r.Context())
		gotEmail, _ = utils.GetEmailFromContext(r.Context())
		gotToken, _ = utils.GetTokenFromContext(r.Context())
		gotTokenID, _ = utils.GetTokenIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rec := callAuth(t, &stubAuthService{identity: identity}, "Bearer signed-token", next)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, identity.UserID, gotUserID)
	assert.Equal(t, identity.TokenID, gotTokenID)
	assert.Equal(t, identity.Email, gotEmail)
	assert.Equal(t, "signed-token", gotToken)
}
