package repository

import (
	"context"

	"github.com/ndemidov/tgdating-backend/internal/domain"
)

type SessionRepository interface {
	// Get returns domain.ErrSessionNotFound when no flow is active.
	Get(ctx context.Context, userID int64) (*domain.OnboardingSession, error)
	Save(ctx context.Context, userID int64, session *domain.OnboardingSession) error
	Clear(ctx context.Context, userID int64) error
}
