package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/google/uuid"
	"github.com/gratia-app/gratia-backend/internal/database"
)

const (
	// SessionDuration is 7 days.
	SessionDuration = 7 * 24 * time.Hour
	// SessionKeyPrefix is the Redis key prefix for sessions.
	SessionKeyPrefix = "session:"
	// UserSessionKeyPrefix is the Redis key prefix for the user->session mapping.
	UserSessionKeyPrefix = "user_session:"
)

// CreateSession creates a session for a user and stores it in Redis. Any
// existing session for the user is invalidated first, so each signin resets
// the 7-day timer and a user holds at most one live token.
func CreateSession(ctx context.Context, userID uuid.UUID) (string, error) {
	invalidateUserSession(ctx, userID)

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	token := base64.URLEncoding.EncodeToString(tokenBytes)

	if err := database.RedisClient.Set(ctx, SessionKeyPrefix+token, userID.String(), SessionDuration).Err(); err != nil {
		return "", err
	}
	if err := database.RedisClient.Set(ctx, UserSessionKeyPrefix+userID.String(), token, SessionDuration).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// ValidateSession checks a session token and returns the user it belongs to.
// An unknown or expired token returns ok=false without an error.
func ValidateSession(ctx context.Context, token string) (uuid.UUID, bool, error) {
	if token == "" {
		return uuid.Nil, false, nil
	}

	userIDStr, err := database.RedisClient.Get(ctx, SessionKeyPrefix+token).Result()
	if err != nil {
		return uuid.Nil, false, nil
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, false, err
	}
	return userID, true, nil
}

// InvalidateSession removes a session from Redis.
func InvalidateSession(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	userIDStr, err := database.RedisClient.Get(ctx, SessionKeyPrefix+token).Result()
	if err == nil && userIDStr != "" {
		database.RedisClient.Del(ctx, UserSessionKeyPrefix+userIDStr)
	}
	return database.RedisClient.Del(ctx, SessionKeyPrefix+token).Err()
}

// invalidateUserSession drops the user's current session, if any.
func invalidateUserSession(ctx context.Context, userID uuid.UUID) {
	userSessionKey := UserSessionKeyPrefix + userID.String()
	token, err := database.RedisClient.Get(ctx, userSessionKey).Result()
	if err == nil && token != "" {
		database.RedisClient.Del(ctx, SessionKeyPrefix+token)
	}
	database.RedisClient.Del(ctx, userSessionKey)
}
