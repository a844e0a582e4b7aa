package swipe

import (
	"context"
	"fmt"
	"time"

	"github.com/ndemidov/tgdating-backend/internal/domain"
	"github.com/ndemidov/tgdating-backend/internal/pkg/logger"
	"github.com/ndemidov/tgdating-backend/internal/repository"
	"github.com/ndemidov/tgdating-backend/internal/usecase/feed"
)

// Outcome is what a decision produced.
type Outcome string

const (
	OutcomeLike    Outcome = "like"
	OutcomeDislike Outcome = "dislike"
	OutcomeMatch   Outcome = "match"
)

type SwipeUseCase struct {
	decisionRepo repository.DecisionRepository
	matchRepo    repository.MatchRepository
	profileRepo  repository.ProfileRepository
	txManager    repository.TxManager
	feedUseCase  *feed.FeedUseCase
	log          *logger.Logger
}

func NewSwipeUseCase(
	decisionRepo repository.DecisionRepository,
	matchRepo repository.MatchRepository,
	profileRepo repository.ProfileRepository,
	txManager repository.TxManager,
	feedUseCase *feed.FeedUseCase,
	log *logger.Logger,
) *SwipeUseCase {
	return &SwipeUseCase{
		decisionRepo: decisionRepo,
		matchRepo:    matchRepo,
		profileRepo:  profileRepo,
		txManager:    txManager,
		feedUseCase:  feedUseCase,
		log:          log,
	}
}

// DecideResult carries the outcome plus the next candidate so the
// caller can continue the browsing loop without a second round trip.
type DecideResult struct {
	Outcome        Outcome         `json:"outcome"`
	Match          *domain.Match   `json:"match,omitempty"`
	MatchedProfile *domain.Profile `json:"matched_profile,omitempty"`
	NextCandidate  *domain.Profile `json:"next_candidate,omitempty"`
}

// Decide records a like or dislike, detects a mutual like and
// materializes the match. The decision upsert and the constrained match
// insert run in one transaction, which makes the whole call safe to
// retry and safe against the both-sides-swipe race.
func (uc *SwipeUseCase) Decide(ctx context.Context, fromUserID, toUserID int64, isLike bool) (*DecideResult, error) {
	if fromUserID == toUserID {
		return nil, domain.ErrCannotDecideSelf
	}

	result := &DecideResult{Outcome: OutcomeDislike}
	if isLike {
		result.Outcome = OutcomeLike
	}

	err := uc.txManager.Do(ctx, func(ctx context.Context) error {
		if _, err := uc.decisionRepo.Upsert(ctx, fromUserID, toUserID, isLike); err != nil {
			return err
		}
		if !isLike {
			return nil
		}

		// Serialize the check-then-insert per canonical pair: two
		// simultaneous likes touch disjoint decision rows, so without
		// this lock both sides can read before either commits and the
		// mutual like goes undetected.
		if err := uc.matchRepo.LockPair(ctx, fromUserID, toUserID); err != nil {
			return fmt.Errorf("failed to lock pair: %w", err)
		}

		mutual, err := uc.decisionRepo.HasReciprocalLike(ctx, fromUserID, toUserID)
		if err != nil {
			return fmt.Errorf("failed to check mutual like: %w", err)
		}
		if !mutual {
			return nil
		}

		match, created, err := uc.matchRepo.CreateIfAbsent(ctx, fromUserID, toUserID)
		if err != nil {
			return fmt.Errorf("failed to create match: %w", err)
		}
		if created {
			uc.log.Info("match created", "user1_id", match.User1ID, "user2_id", match.User2ID)
		}
		result.Outcome = OutcomeMatch
		result.Match = match
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Outcome == OutcomeMatch {
		matched, err := uc.profileRepo.GetByUserID(ctx, toUserID)
		if err != nil {
			// The match row exists either way; presenting it without
			// the counterpart profile is still correct.
			uc.log.Error("failed to load matched profile", "user_id", toUserID, "error", err)
		} else {
			result.MatchedProfile = matched
		}
	}

	next, err := uc.feedUseCase.NextCandidate(ctx, fromUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get next candidate: %w", err)
	}
	result.NextCandidate = next

	return result, nil
}

// MatchWithProfile is a match resolved to the counterpart's profile.
type MatchWithProfile struct {
	Profile   *domain.Profile `json:"profile"`
	MatchedAt time.Time       `json:"matched_at"`
}

// Matches returns the user's matches, each resolved to the other
// participant's profile for presentation.
func (uc *SwipeUseCase) Matches(ctx context.Context, userID int64) ([]*MatchWithProfile, error) {
	matches, err := uc.matchRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}

	result := make([]*MatchWithProfile, 0, len(matches))
	for _, m := range matches {
		otherID, ok := m.OtherUserID(userID)
		if !ok {
			continue
		}
		profile, err := uc.profileRepo.GetByUserID(ctx, otherID)
		if err != nil {
			uc.log.Warn("match counterpart profile missing", "user_id", otherID, "match_id", m.ID)
			continue
		}
		result = append(result, &MatchWithProfile{Profile: profile, MatchedAt: m.CreatedAt})
	}
	return result, nil
}
