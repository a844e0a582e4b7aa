package feed

import (
	"context"
	"errors"
	"fmt"

	"github.com/ndemidov/tgdating-backend/internal/domain"
	"github.com/ndemidov/tgdating-backend/internal/pkg/logger"
	"github.com/ndemidov/tgdating-backend/internal/repository"
)

type FeedUseCase struct {
	profileRepo  repository.ProfileRepository
	decisionRepo repository.DecisionRepository
	log          *logger.Logger
}

func NewFeedUseCase(
	profileRepo repository.ProfileRepository,
	decisionRepo repository.DecisionRepository,
	log *logger.Logger,
) *FeedUseCase {
	return &FeedUseCase{
		profileRepo:  profileRepo,
		decisionRepo: decisionRepo,
		log:          log,
	}
}

// NextCandidate returns the next unseen eligible profile for the user,
// or nil when the queue is exhausted. Already-decided targets are
// excluded regardless of like or dislike; ordering is stable ascending
// by row id.
func (uc *FeedUseCase) NextCandidate(ctx context.Context, userID int64) (*domain.Profile, error) {
	current, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			// A missing requester is a diagnostic, not a user-facing
			// failure: the caller sees an empty queue.
			uc.log.Warn("next candidate requested for unknown user", "user_id", userID)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get current user profile: %w", err)
	}

	decided, err := uc.decisionRepo.DecidedTargetIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get decided targets: %w", err)
	}

	filter := repository.CandidateFilter{
		ExcludeUserID: userID,
		ExcludedIDs:   decided,
		Gender:        genderFilter(current.GenderInterest),
		Limit:         1,
	}
	candidates, err := uc.profileRepo.ListCandidates(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	return candidates[0], nil
}

// CandidatesWhoLikedMe returns the profiles of users who liked the
// given user and have not been decided on yet, in stable order.
func (uc *FeedUseCase) CandidatesWhoLikedMe(ctx context.Context, userID int64) ([]*domain.Profile, error) {
	likers, err := uc.decisionRepo.LikerIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get likers: %w", err)
	}
	if len(likers) == 0 {
		return nil, nil
	}

	decided, err := uc.decisionRepo.DecidedTargetIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get decided targets: %w", err)
	}
	decidedSet := make(map[int64]struct{}, len(decided))
	for _, id := range decided {
		decidedSet[id] = struct{}{}
	}

	unrated := make([]int64, 0, len(likers))
	for _, id := range likers {
		if _, ok := decidedSet[id]; !ok {
			unrated = append(unrated, id)
		}
	}
	if len(unrated) == 0 {
		return nil, nil
	}

	profiles, err := uc.profileRepo.ListByUserIDs(ctx, unrated)
	if err != nil {
		return nil, fmt.Errorf("failed to load liker profiles: %w", err)
	}
	return profiles, nil
}

// genderFilter maps a gender-interest preference to the candidate scan
// filter. "any" means no filter.
func genderFilter(interest *domain.GenderInterest) *domain.Gender {
	if interest == nil {
		return nil
	}
	switch *interest {
	case domain.InterestMale:
		g := domain.GenderMale
		return &g
	case domain.InterestFemale:
		g := domain.GenderFemale
		return &g
	default:
		return nil
	}
}
