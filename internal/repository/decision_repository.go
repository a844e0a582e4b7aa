package repository

import (
	"context"

	"github.com/ndemidov/tgdating-backend/internal/domain"
)

type DecisionRepository interface {
	// Upsert records a decision for the ordered (from, to) pair,
	// overwriting is_like if the pair was already decided.
	Upsert(ctx context.Context, fromUserID, toUserID int64, isLike bool) (*domain.Decision, error)
	// DecidedTargetIDs returns every user id the given user has already
	// rated, like or dislike.
	DecidedTargetIDs(ctx context.Context, fromUserID int64) ([]int64, error)
	// LikerIDs returns the users who issued a like targeting userID.
	LikerIDs(ctx context.Context, userID int64) ([]int64, error)
	// HasReciprocalLike reports whether a like edge from b to a exists.
	HasReciprocalLike(ctx context.Context, a, b int64) (bool, error)
}
