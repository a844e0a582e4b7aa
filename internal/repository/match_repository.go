package repository

import (
	"context"

	"github.com/ndemidov/tgdating-backend/internal/domain"
)

type MatchRepository interface {
	// LockPair serializes concurrent work on one unordered pair until
	// the surrounding transaction ends. Both directions of a mutual
	// like must take this lock before checking for the reciprocal
	// edge, otherwise two simultaneous swipes can each miss the
	// other's not-yet-committed like and no match is ever created.
	LockPair(ctx context.Context, a, b int64) error
	// CreateIfAbsent inserts the canonical pair, returning the row and
	// whether this call created it. A concurrent or repeated insert of
	// the same pair is not an error.
	CreateIfAbsent(ctx context.Context, a, b int64) (*domain.Match, bool, error)
	GetByUsers(ctx context.Context, a, b int64) (*domain.Match, error)
	ListForUser(ctx context.Context, userID int64) ([]*domain.Match, error)
}
