package middleware

import (
	"errors"
	"net/http"
	"strings"

	"album-shelf/internal/usecase"
	"album-shelf/pkg/utils"

	"go.uber.org/zap"
)

// Auth validates the bearer token on every protected route. Signature and
// expiry are checked first, then the server-side session record decides.
func Auth(authService usecase.AuthService, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Extract token
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				utils.ResponseUnauthorized(w, "Access token required")
				return
			}

			token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
			if token == "" {
				utils.ResponseUnauthorized(w, "Access token required")
				return
			}

			identity, err := authService.Verify(r.Context(), token)
			if err != nil {
				switch {
				case errors.Is(err, usecase.ErrTokenInvalid):
					logger.Warn("Token verify failed",
						zap.String("reason", "invalid token"),
						zap.String("ip", r.RemoteAddr))
					utils.ResponseUnauthorized(w, "Invalid token")

				case errors.Is(err, usecase.ErrTokenExpired):
					logger.Warn("Token verify failed",
						zap.String("reason", "token has expired"),
						zap.String("ip", r.RemoteAddr))
					utils.ResponseUnauthorized(w, "Token has expired")

				case errors.Is(err, usecase.ErrTokenRevoked):
					logger.Warn("Token not valid in DB", zap.String("ip", r.RemoteAddr))
					utils.ResponseUnauthorized(w, "Invalid or expired token")

				case errors.Is(err, usecase.ErrTokenUserInactive):
					logger.Warn("Inactive user used token", zap.String("ip", r.RemoteAddr))
					utils.ResponseUnauthorized(w, "User account is inactive")

				default:
					// Storage failure: fail closed with a generic message
					logger.Error("Auth middleware error", zap.Error(err), zap.String("ip", r.RemoteAddr))
					utils.ResponseInternalError(w, "Authentication failed")
				}
				return
			}

			// Attach identity to request context
			ctx := utils.SetUserContext(r.Context(), identity.UserID, identity.Email)
			ctx = utils.SetTokenContext(ctx, token)
			ctx = utils.SetTokenIDContext(ctx, identity.TokenID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
