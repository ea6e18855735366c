package usecase

import (
	"context"
	"fmt"
	"time"

	"album-shelf/internal/data/entity"
	"album-shelf/internal/data/repository"
	"album-shelf/internal/dto/request"
	"album-shelf/internal/dto/response"
	"album-shelf/pkg/events"
	"album-shelf/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Identity is the resolved caller attached to the request context after a
// successful verification.
type Identity struct {
	UserID  uuid.UUID
	TokenID uuid.UUID
	Email   string
}

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest, ip string) (*response.UserResponse, error)
	Login(ctx context.Context, req *request.LoginRequest, ip string) (*response.AuthResponse, error)
	Verify(ctx context.Context, token string) (*Identity, error)
	Logout(ctx context.Context, token string, identity Identity, ip string) error
	Profile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
}

type authService struct {
	repo    *repository.Repository
	codec   TokenCodec
	emitter events.Emitter
	log     *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	codec TokenCodec,
	emitter events.Emitter,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:    repo,
		codec:   codec,
		emitter: emitter,
		log:     log,
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest, ip string) (*response.UserResponse, error) {
	// 1. Check email already registered
	existingUser, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existingUser != nil {
		return nil, ErrEmailTaken
	}

	// 2. Hash password
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to process password: %w", err)
	}

	// 3. Create user entity
	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Email:        req.Email,
		PasswordHash: hashedPassword,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		IsActive:     true,
	}

	// 4. Save user
	if err := s.repo.User.Create(ctx, user); err != nil {
		s.log.Error("Failed to create user", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	s.emitter.UserActivity("REGISTER", user.ID, ip, map[string]any{"email": user.Email})

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest, ip string) (*response.AuthResponse, error) {
	// 1. Find user by email
	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to find user by email", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		s.log.Warn("Login: email not found", zap.String("email", req.Email), zap.String("ip", ip))
		return nil, ErrInvalidCredentials
	}

	// 2. Check if user is active
	if !user.IsActive {
		s.log.Warn("Inactive user tried to login", zap.String("user_id", user.ID.String()))
		return nil, ErrAccountInactive
	}

	// 3. Check password
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Login: bad password", zap.String("user_id", user.ID.String()), zap.String("ip", ip))
		return nil, ErrInvalidCredentials
	}

	// 4. Sign token and persist the ledger row. The token is only handed out
	// once the row exists, so a cryptographically valid token without a row
	// can never reach a client.
	signed, expiresAt, err := s.codec.Sign(user.ID, user.Email)
	if err != nil {
		s.log.Error("Failed to sign token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	now := time.Now()
	token := &entity.UserToken{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:    user.ID,
		Token:     signed,
		IsValid:   true,
		ExpiresAt: expiresAt,
	}

	if err := s.repo.Token.Create(ctx, token); err != nil {
		s.log.Error("Failed to create session", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	// 5. Stamp last_login, the login itself already succeeded
	if err := s.repo.User.MarkLogin(ctx, user.ID); err != nil {
		s.log.Warn("Failed to mark login", zap.Error(err), zap.String("user_id", user.ID.String()))
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
		zap.String("ip", ip))

	s.emitter.UserActivity("LOGIN", user.ID, ip, map[string]any{"email": user.Email})
	s.emitter.DatabaseChange("INSERT", "user_tokens", map[string]any{"userId": user.ID.String()})

	return &response.AuthResponse{
		Token:     signed,
		ExpiresAt: expiresAt,
		User:      response.UserToResponse(user),
	}, nil
}

// Verify runs the two-phase check: stateless signature/expiry first, then the
// authoritative ledger lookup. Revocation always overrides the embedded expiry.
func (s *authService) Verify(ctx context.Context, token string) (*Identity, error) {
	// Phase 1: signature and embedded expiry
	if _, err := s.codec.Verify(token); err != nil {
		return nil, err
	}

	// Phase 2: live ledger row joined with the owning account
	live, err := s.repo.Token.FindLiveByToken(ctx, token)
	if err != nil {
		s.log.Error("Failed to look up session", zap.Error(err))
		return nil, fmt.Errorf("verify session: %w", err)
	}
	if live == nil {
		return nil, ErrTokenRevoked
	}
	if !live.IsActive {
		s.log.Warn("Inactive user presented token", zap.String("user_id", live.UserID.String()))
		return nil, ErrTokenUserInactive
	}

	// Update last_used off the hot path. Losing this update never fails the
	// request.
	go s.touchLastUsed(live.TokenID)

	return &Identity{
		UserID:  live.UserID,
		TokenID: live.TokenID,
		Email:   live.Email,
	}, nil
}

// Logout revokes the presented bearer value. Revoking an unknown or
// already-revoked token is still a successful logout.
func (s *authService) Logout(ctx context.Context, token string, identity Identity, ip string) error {
	affected, err := s.repo.Token.Revoke(ctx, token)
	if err != nil {
		s.log.Error("Failed to revoke session", zap.Error(err), zap.String("user_id", identity.UserID.String()))
		return fmt.Errorf("failed to logout: %w", err)
	}

	s.log.Info("User logged out",
		zap.String("user_id", identity.UserID.String()),
		zap.Int64("revoked", affected))

	s.emitter.UserActivity("LOGOUT", identity.UserID, ip, map[string]any{"email": identity.Email})

	return nil
}

func (s *authService) Profile(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to load profile", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) touchLastUsed(tokenID uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.repo.Token.TouchLastUsed(ctx, tokenID); err != nil {
		s.log.Warn("Failed to update last_used",
			zap.Error(err),
			zap.String("token_id", tokenID.String()))
	}
}
