package adaptor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"album-shelf/internal/dto/request"
	"album-shelf/internal/dto/response"
	"album-shelf/internal/usecase"
	"album-shelf/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log,
	}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest

	// Decode request body
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	user, err := h.service.Register(r.Context(), &req, utils.ClientIP(r.RemoteAddr))
	if err != nil {
		if errors.Is(err, usecase.ErrEmailTaken) {
			h.log.Warn("Register failed - email taken", zap.String("email", req.Email))
			utils.ResponseBadRequest(w, "User already exists", nil)
			return
		}
		h.log.Error("Register failed", zap.Error(err))
		utils.ResponseInternalError(w, "Registration failed")
		return
	}

	utils.ResponseCreated(w, "User registered", user)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	auth, err := h.service.Login(r.Context(), &req, utils.ClientIP(r.RemoteAddr))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidCredentials):
			utils.ResponseUnauthorized(w, "Invalid credentials")
		case errors.Is(err, usecase.ErrAccountInactive):
			utils.ResponseUnauthorized(w, "Account is inactive")
		default:
			h.log.Error("Login failed", zap.Error(err), zap.String("email", req.Email))
			utils.ResponseInternalError(w, "Login failed")
		}
		return
	}

	utils.ResponseSuccess(w, "Login successful", auth)
}

// Logout handles POST /api/auth/logout. The route is protected, so the
// middleware already resolved the identity and stashed the raw token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := utils.GetTokenFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Access token required")
		return
	}

	identity := identityFromContext(r.Context())

	if err := h.service.Logout(r.Context(), token, identity, utils.ClientIP(r.RemoteAddr)); err != nil {
		h.log.Error("Logout failed", zap.Error(err), zap.String("user_id", identity.UserID.String()))
		utils.ResponseInternalError(w, "Logout failed")
		return
	}

	utils.ResponseSuccess(w, "Logout successful", nil)
}

// Profile handles GET /api/auth/profile
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Access token required")
		return
	}

	profile, err := h.service.Profile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			utils.ResponseNotFound(w, "User not found")
			return
		}
		h.log.Error("Profile failed", zap.Error(err), zap.String("user_id", userID.String()))
		utils.ResponseInternalError(w, "Failed to get user profile")
		return
	}

	utils.ResponseSuccess(w, "Profile retrieved successfully", profile)
}

// VerifyToken handles GET /api/auth/verify. Reaching this handler means the
// middleware accepted the token.
func (h *AuthHandler) VerifyToken(w http.ResponseWriter, r *http.Request) {
	identity := identityFromContext(r.Context())

	utils.ResponseSuccess(w, "Token is valid", response.IdentityResponse{
		UserID: identity.UserID.String(),
		Email:  identity.Email,
	})
}

// identityFromContext rebuilds the identity the auth middleware attached
func identityFromContext(ctx context.Context) usecase.Identity {
	var identity usecase.Identity

	if userID, ok := utils.GetUserIDFromContext(ctx); ok {
		identity.UserID = userID
	}
	if email, ok := utils.GetEmailFromContext(ctx); ok {
		identity.Email = email
	}
	if tokenID, ok := utils.GetTokenIDFromContext(ctx); ok {
		identity.TokenID = tokenID
	}

	return identity
}
