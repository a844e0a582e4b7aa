package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ndemidov/tgdating-backend/internal/domain"
	"github.com/ndemidov/tgdating-backend/internal/repository"
)

type decisionRepository struct {
	db *sqlx.DB
}

func NewDecisionRepository(db *sqlx.DB) repository.DecisionRepository {
	return &decisionRepository{db: db}
}

// Upsert relies on the unique index on (from_user_id, to_user_id): a
// repeated swipe overwrites is_like instead of inserting a second row.
func (r *decisionRepository) Upsert(ctx context.Context, fromUserID, toUserID int64, isLike bool) (*domain.Decision, error) {
	var decision domain.Decision
	query := `
		INSERT INTO decisions (from_user_id, to_user_id, is_like)
		VALUES ($1, $2, $3)
		ON CONFLICT (from_user_id, to_user_id)
		DO UPDATE SET is_like = EXCLUDED.is_like
		RETURNING id, from_user_id, to_user_id, is_like, created_at
	`
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &decision, query, fromUserID, toUserID, isLike); err != nil {
		return nil, fmt.Errorf("failed to upsert decision: %w", err)
	}
	return &decision, nil
}

func (r *decisionRepository) DecidedTargetIDs(ctx context.Context, fromUserID int64) ([]int64, error) {
	var ids []int64
	query := `SELECT to_user_id FROM decisions WHERE from_user_id = $1`
	err := sqlx.SelectContext(ctx, ext(ctx, r.db), &ids, query, fromUserID)
	return ids, err
}

func (r *decisionRepository) LikerIDs(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	query := `SELECT from_user_id FROM decisions WHERE to_user_id = $1 AND is_like = TRUE`
	err := sqlx.SelectContext(ctx, ext(ctx, r.db), &ids, query, userID)
	return ids, err
}

func (r *decisionRepository) HasReciprocalLike(ctx context.Context, a, b int64) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM decisions
			WHERE from_user_id = $1 AND to_user_id = $2 AND is_like = TRUE
		)
	`
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &exists, query, b, a)
	return exists, err
}
