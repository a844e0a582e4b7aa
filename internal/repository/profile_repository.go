package repository

import (
	"context"

	"github.com/ndemidov/tgdating-backend/internal/domain"
)

// CandidateFilter narrows the profile scan used by the feed.
type CandidateFilter struct {
	ExcludeUserID int64
	ExcludedIDs   []int64
	Gender        *domain.Gender // nil means no gender filter
	Limit         int
}

// ProfileUpdate is the explicit set of fields the edit flow may touch.
// Nil fields are left unchanged.
type ProfileUpdate struct {
	Name           *string
	Age            *int
	Gender         *domain.Gender
	GenderInterest *domain.GenderInterest
	City           *string
	Interests      *string
	PhotoID        *string
}

type ProfileRepository interface {
	Create(ctx context.Context, userID int64) (*domain.Profile, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error)
	// ApplyOnboarding writes a completed questionnaire in one update and
	// sets is_complete.
	ApplyOnboarding(ctx context.Context, userID int64, data *domain.OnboardingData) (*domain.Profile, error)
	Update(ctx context.Context, userID int64, upd *ProfileUpdate) (*domain.Profile, error)
	SetComplete(ctx context.Context, userID int64, complete bool) error
	// ListCandidates returns eligible profiles matching the filter in
	// ascending row-id order.
	ListCandidates(ctx context.Context, f CandidateFilter) ([]*domain.Profile, error)
	// ListByUserIDs returns eligible profiles for the given user ids in
	// ascending row-id order; missing or incomplete profiles are skipped.
	ListByUserIDs(ctx context.Context, userIDs []int64) ([]*domain.Profile, error)
}
