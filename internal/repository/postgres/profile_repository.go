package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ndemidov/tgdating-backend/internal/domain"
	"github.com/ndemidov/tgdating-backend/internal/repository"
)

const profileColumns = `id, user_id, name, age, gender, gender_interest, city,
       interests, photo_id, is_complete, created_at, updated_at`

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

// Create inserts a skeleton row on first contact. If the user already
// has a profile the existing row is returned unchanged.
func (r *profileRepository) Create(ctx context.Context, userID int64) (*domain.Profile, error) {
	var profile domain.Profile
	query := `
		INSERT INTO profiles (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING ` + profileColumns
	if err := sqlx.GetContext(ctx, ext(ctx, r.db), &profile, query, userID); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return &profile, nil
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error) {
	var profile domain.Profile
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &profile, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) ApplyOnboarding(ctx context.Context, userID int64, data *domain.OnboardingData) (*domain.Profile, error) {
	var profile domain.Profile
	query := `
		UPDATE profiles
		SET name = $1, age = $2, gender = $3, gender_interest = $4,
		    city = $5, interests = $6, photo_id = $7,
		    is_complete = TRUE, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $8
		RETURNING ` + profileColumns
	err := sqlx.GetContext(
		ctx, ext(ctx, r.db), &profile, query,
		data.Name, data.Age, data.Gender, data.GenderInterest,
		data.City, data.Interests, data.PhotoID, userID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Update(ctx context.Context, userID int64, upd *repository.ProfileUpdate) (*domain.Profile, error) {
	var profile domain.Profile
	query := `
		UPDATE profiles
		SET name = COALESCE($1, name),
		    age = COALESCE($2, age),
		    gender = COALESCE($3, gender),
		    gender_interest = COALESCE($4, gender_interest),
		    city = COALESCE($5, city),
		    interests = COALESCE($6, interests),
		    photo_id = COALESCE($7, photo_id),
		    updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $8
		RETURNING ` + profileColumns
	err := sqlx.GetContext(
		ctx, ext(ctx, r.db), &profile, query,
		upd.Name, upd.Age, upd.Gender, upd.GenderInterest,
		upd.City, upd.Interests, upd.PhotoID, userID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) SetComplete(ctx context.Context, userID int64, complete bool) error {
	query := `
		UPDATE profiles
		SET is_complete = $1, updated_at = CURRENT_TIMESTAMP
		WHERE user_id = $2
	`
	result, err := ext(ctx, r.db).ExecContext(ctx, query, complete, userID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func (r *profileRepository) ListCandidates(ctx context.Context, f repository.CandidateFilter) ([]*domain.Profile, error) {
	var profiles []*domain.Profile
	query := `
		SELECT ` + profileColumns + `
		FROM profiles
		WHERE is_complete = TRUE
		  AND name IS NOT NULL AND age IS NOT NULL AND city IS NOT NULL
		  AND user_id <> $1
		  AND user_id <> ALL($2)
		  AND ($3::text IS NULL OR gender = $3)
		ORDER BY id ASC
		LIMIT $4
	`
	excluded := f.ExcludedIDs
	if excluded == nil {
		excluded = []int64{}
	}
	limit := f.Limit
	if limit <= 0 {
		limit = 1
	}
	err := sqlx.SelectContext(
		ctx, ext(ctx, r.db), &profiles, query,
		f.ExcludeUserID, pq.Int64Array(excluded), f.Gender, limit,
	)
	return profiles, err
}

func (r *profileRepository) ListByUserIDs(ctx context.Context, userIDs []int64) ([]*domain.Profile, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var profiles []*domain.Profile
	query := `
		SELECT ` + profileColumns + `
		FROM profiles
		WHERE user_id = ANY($1)
		  AND is_complete = TRUE
		  AND name IS NOT NULL AND age IS NOT NULL AND city IS NOT NULL
		ORDER BY id ASC
	`
	err := sqlx.SelectContext(ctx, ext(ctx, r.db), &profiles, query, pq.Int64Array(userIDs))
	return profiles, err
}
