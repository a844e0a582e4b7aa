package redisrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ndemidov/tgdating-backend/internal/domain"
	"github.com/ndemidov/tgdating-backend/internal/repository"
)

type sessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionRepository stores onboarding sessions as JSON values with a
// TTL so abandoned flows expire on their own.
func NewSessionRepository(client *redis.Client, ttl time.Duration) repository.SessionRepository {
	return &sessionRepository{client: client, ttl: ttl}
}

func sessionKey(userID int64) string {
	return fmt.Sprintf("onboarding:session:%d", userID)
}

func (r *sessionRepository) Get(ctx context.Context, userID int64) (*domain.OnboardingSession, error) {
	raw, err := r.client.Get(ctx, sessionKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session domain.OnboardingSession
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &session, nil
}

func (r *sessionRepository) Save(ctx context.Context, userID int64, session *domain.OnboardingSession) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := r.client.Set(ctx, sessionKey(userID), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (r *sessionRepository) Clear(ctx context.Context, userID int64) error {
	if err := r.client.Del(ctx, sessionKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
