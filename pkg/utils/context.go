package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	UserIDKey  contextKey = "user_id"
	EmailKey   contextKey = "email"
	TokenKey   contextKey = "token"
	TokenIDKey contextKey = "token_id"
)

func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userIDVal := ctx.Value(UserIDKey)
	if userIDVal == nil {
		return uuid.Nil, false
	}

	userIDStr, ok := userIDVal.(string)
	if !ok {
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, false
	}

	return userID, true
}

func GetEmailFromContext(ctx context.Context) (string, bool) {
	emailVal := ctx.Value(EmailKey)
	if emailVal == nil {
		return "", false
	}

	email, ok := emailVal.(string)
	return email, ok
}

func SetUserContext(ctx context.Context, userID uuid.UUID, email string) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, userID.String())
	ctx = context.WithValue(ctx, EmailKey, email)
	return ctx
}

// GetTokenFromContext returns the raw bearer token for the request
func GetTokenFromContext(ctx context.Context) (string, bool) {
	tokenVal := ctx.Value(TokenKey)
	if tokenVal == nil {
		return "", false
	}

	token, ok := tokenVal.(string)
	return token, ok
}

// SetTokenContext stores the raw bearer token in the context
func SetTokenContext(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, TokenKey, token)
}

func GetTokenIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	tokenIDVal := ctx.Value(TokenIDKey)
	if tokenIDVal == nil {
		return uuid.Nil, false
	}

	tokenIDStr, ok := tokenIDVal.(string)
	if !ok {
		return uuid.Nil, false
	}

	tokenID, err := uuid.Parse(tokenIDStr)
	if err != nil {
		return uuid.Nil, false
	}

	return tokenID, true
}

func SetTokenIDContext(ctx context.Context, tokenID uuid.UUID) context.Context {
	return context.WithValue(ctx, TokenIDKey, tokenID.String())
}
