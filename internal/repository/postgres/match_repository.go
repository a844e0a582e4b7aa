package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/ndemidov/tgdating-backend/internal/domain"
	"github.com/ndemidov/tgdating-backend/internal/repository"
)

type matchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) repository.MatchRepository {
	return &matchRepository{db: db}
}

// LockPair takes a transaction-scoped advisory lock on the canonical
// pair. The lock is held until the transaction commits or rolls back,
// so the loser of a simultaneous mutual swipe re-runs its reciprocal
// check only after the winner's decision row is committed and visible.
// hashint8 folds the two bigint ids into the int4 lock keyspace; a
// hash collision only serializes an unrelated pair, never loses a
// match.
func (r *matchRepository) LockPair(ctx context.Context, a, b int64) error {
	user1ID, user2ID := domain.CanonicalPair(a, b)
	_, err := ext(ctx, r.db).ExecContext(
		ctx, `SELECT pg_advisory_xact_lock(hashint8($1), hashint8($2))`, user1ID, user2ID,
	)
	return err
}

// CreateIfAbsent is a single constrained insert: the unique index on
// the canonical pair decides the race, not an application-level check.
// When the pair already exists the insert returns no row and the
// existing match is fetched instead.
func (r *matchRepository) CreateIfAbsent(ctx context.Context, a, b int64) (*domain.Match, bool, error) {
	user1ID, user2ID := domain.CanonicalPair(a, b)

	var match domain.Match
	query := `
		INSERT INTO matches (user1_id, user2_id)
		VALUES ($1, $2)
		ON CONFLICT (user1_id, user2_id) DO NOTHING
		RETURNING id, user1_id, user2_id, is_active, created_at
	`
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &match, query, user1ID, user2ID)
	if err == nil {
		return &match, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, err
	}

	existing, err := r.GetByUsers(ctx, user1ID, user2ID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (r *matchRepository) GetByUsers(ctx context.Context, a, b int64) (*domain.Match, error) {
	user1ID, user2ID := domain.CanonicalPair(a, b)

	var match domain.Match
	query := `
		SELECT id, user1_id, user2_id, is_active, created_at
		FROM matches
		WHERE user1_id = $1 AND user2_id = $2
	`
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &match, query, user1ID, user2ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMatchNotFound
		}
		return nil, err
	}
	return &match, nil
}

func (r *matchRepository) ListForUser(ctx context.Context, userID int64) ([]*domain.Match, error) {
	var matches []*domain.Match
	query := `
		SELECT id, user1_id, user2_id, is_active, created_at
		FROM matches
		WHERE (user1_id = $1 OR user2_id = $1) AND is_active = TRUE
		ORDER BY created_at DESC
	`
	err := sqlx.SelectContext(ctx, ext(ctx, r.db), &matches, query, userID)
	return matches, err
}
