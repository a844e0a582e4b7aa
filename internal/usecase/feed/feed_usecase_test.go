package feed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndemidov/tgdating-backend/internal/domain"
	"github.com/ndemidov/tgdating-backend/internal/pkg/logger"
	"github.com/ndemidov/tgdating-backend/internal/repository"
)

type fakeProfileRepo struct {
	profiles []*domain.Profile
}

func (f *fakeProfileRepo) Create(_ context.Context, userID int64) (*domain.Profile, error) {
	if p, _ := f.find(userID); p != nil {
		return p, nil
	}
	p := &domain.Profile{ID: len(f.profiles) + 1, UserID: userID}
	f.profiles = append(f.profiles, p)
	return p, nil
}

func (f *fakeProfileRepo) find(userID int64) (*domain.Profile, error) {
	for _, p := range f.profiles {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, domain.ErrProfileNotFound
}

func (f *fakeProfileRepo) GetByUserID(_ context.Context, userID int64) (*domain.Profile, error) {
	return f.find(userID)
}

func (f *fakeProfileRepo) ApplyOnboarding(_ context.Context, userID int64, data *domain.OnboardingData) (*domain.Profile, error) {
	p, err := f.find(userID)
	if err != nil {
		return nil, err
	}
	p.Name = &data.Name
	p.Age = &data.Age
	p.Gender = &data.Gender
	p.GenderInterest = &data.GenderInterest
	p.City = &data.City
	p.Interests = &data.Interests
	p.PhotoID = data.PhotoID
	p.IsComplete = true
	return p, nil
}

func (f *fakeProfileRepo) Update(_ context.Context, userID int64, upd *repository.ProfileUpdate) (*domain.Profile, error) {
	p, err := f.find(userID)
	if err != nil {
		return nil, err
	}
	if upd.Name != nil {
		p.Name = upd.Name
	}
	if upd.Age != nil {
		p.Age = upd.Age
	}
	if upd.City != nil {
		p.City = upd.City
	}
	return p, nil
}

func (f *fakeProfileRepo) SetComplete(_ context.Context, userID int64, complete bool) error {
	p, err := f.find(userID)
	if err != nil {
		return err
	}
	p.IsComplete = complete
	return nil
}

func (f *fakeProfileRepo) ListCandidates(_ context.Context, filter repository.CandidateFilter) ([]*domain.Profile, error) {
	excluded := make(map[int64]struct{}, len(filter.ExcludedIDs))
	for _, id := range filter.ExcludedIDs {
		excluded[id] = struct{}{}
	}

	var out []*domain.Profile
	for _, p := range f.profiles {
		if !p.Eligible() || p.UserID == filter.ExcludeUserID {
			continue
		}
		if _, ok := excluded[p.UserID]; ok {
			continue
		}
		if filter.Gender != nil && (p.Gender == nil || *p.Gender != *filter.Gender) {
			continue
		}
		out = append(out, p)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (f *fakeProfileRepo) ListByUserIDs(_ context.Context, userIDs []int64) ([]*domain.Profile, error) {
	wanted := make(map[int64]struct{}, len(userIDs))
	for _, id := range userIDs {
		wanted[id] = struct{}{}
	}
	var out []*domain.Profile
	for _, p := range f.profiles {
		if _, ok := wanted[p.UserID]; ok && p.Eligible() {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeDecisionRepo struct {
	decisions map[[2]int64]bool
	order     [][2]int64
}

func newFakeDecisionRepo() *fakeDecisionRepo {
	return &fakeDecisionRepo{decisions: make(map[[2]int64]bool)}
}

func (f *fakeDecisionRepo) Upsert(_ context.Context, from, to int64, isLike bool) (*domain.Decision, error) {
	key := [2]int64{from, to}
	if _, exists := f.decisions[key]; !exists {
		f.order = append(f.order, key)
	}
	f.decisions[key] = isLike
	return &domain.Decision{FromUserID: from, ToUserID: to, IsLike: isLike}, nil
}

func (f *fakeDecisionRepo) DecidedTargetIDs(_ context.Context, from int64) ([]int64, error) {
	var ids []int64
	for _, key := range f.order {
		if key[0] == from {
			ids = append(ids, key[1])
		}
	}
	return ids, nil
}

func (f *fakeDecisionRepo) LikerIDs(_ context.Context, userID int64) ([]int64, error) {
	var ids []int64
	for _, key := range f.order {
		if key[1] == userID && f.decisions[key] {
			ids = append(ids, key[0])
		}
	}
	return ids, nil
}

func (f *fakeDecisionRepo) HasReciprocalLike(_ context.Context, a, b int64) (bool, error) {
	isLike, exists := f.decisions[[2]int64{b, a}]
	return exists && isLike, nil
}

func ptr[T any](v T) *T { return &v }

func completeProfile(id int, userID int64, gender domain.Gender, interest domain.GenderInterest) *domain.Profile {
	return &domain.Profile{
		ID:             id,
		UserID:         userID,
		Name:           ptr("user"),
		Age:            ptr(25),
		Gender:         &gender,
		GenderInterest: &interest,
		City:           ptr("Riga"),
		IsComplete:     true,
	}
}

func TestNextCandidate(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown requester yields empty queue", func(t *testing.T) {
		uc := NewFeedUseCase(&fakeProfileRepo{}, newFakeDecisionRepo(), logger.NewNop())

		candidate, err := uc.NextCandidate(ctx, 1)
		require.NoError(t, err)
		assert.Nil(t, candidate)
	})

	t.Run("gender filter applied", func(t *testing.T) {
		profiles := &fakeProfileRepo{profiles: []*domain.Profile{
			completeProfile(1, 10, domain.GenderMale, domain.InterestFemale),
			completeProfile(2, 20, domain.GenderMale, domain.InterestAny),
			completeProfile(3, 30, domain.GenderFemale, domain.InterestAny),
		}}
		uc := NewFeedUseCase(profiles, newFakeDecisionRepo(), logger.NewNop())

		candidate, err := uc.NextCandidate(ctx, 10)
		require.NoError(t, err)
		require.NotNil(t, candidate)
		assert.Equal(t, int64(30), candidate.UserID)
	})

	t.Run("no preference sees everyone in row order", func(t *testing.T) {
		profiles := &fakeProfileRepo{profiles: []*domain.Profile{
			completeProfile(1, 10, domain.GenderMale, domain.InterestAny),
			completeProfile(2, 20, domain.GenderFemale, domain.InterestAny),
			completeProfile(3, 30, domain.GenderMale, domain.InterestAny),
		}}
		uc := NewFeedUseCase(profiles, newFakeDecisionRepo(), logger.NewNop())

		candidate, err := uc.NextCandidate(ctx, 10)
		require.NoError(t, err)
		require.NotNil(t, candidate)
		assert.Equal(t, int64(20), candidate.UserID)
	})

	t.Run("decided targets excluded regardless of like value", func(t *testing.T) {
		profiles := &fakeProfileRepo{profiles: []*domain.Profile{
			completeProfile(1, 10, domain.GenderMale, domain.InterestAny),
			completeProfile(2, 20, domain.GenderFemale, domain.InterestAny),
			completeProfile(3, 30, domain.GenderFemale, domain.InterestAny),
		}}
		decisions := newFakeDecisionRepo()
		_, err := decisions.Upsert(ctx, 10, 20, false)
		require.NoError(t, err)

		uc := NewFeedUseCase(profiles, decisions, logger.NewNop())

		candidate, err := uc.NextCandidate(ctx, 10)
		require.NoError(t, err)
		require.NotNil(t, candidate)
		assert.Equal(t, int64(30), candidate.UserID)

		_, err = decisions.Upsert(ctx, 10, 30, true)
		require.NoError(t, err)

		candidate, err = uc.NextCandidate(ctx, 10)
		require.NoError(t, err)
		assert.Nil(t, candidate, "queue should be exhausted")
	})

	t.Run("incomplete profiles never shown", func(t *testing.T) {
		incomplete := completeProfile(2, 20, domain.GenderFemale, domain.InterestAny)
		incomplete.IsComplete = false
		profiles := &fakeProfileRepo{profiles: []*domain.Profile{
			completeProfile(1, 10, domain.GenderMale, domain.InterestAny),
			incomplete,
		}}
		uc := NewFeedUseCase(profiles, newFakeDecisionRepo(), logger.NewNop())

		candidate, err := uc.NextCandidate(ctx, 10)
		require.NoError(t, err)
		assert.Nil(t, candidate)
	})
}

func TestCandidatesWhoLikedMe(t *testing.T) {
	ctx := context.Background()

	profiles := &fakeProfileRepo{profiles: []*domain.Profile{
		completeProfile(1, 10, domain.GenderMale, domain.InterestFemale),
		completeProfile(2, 20, domain.GenderFemale, domain.InterestAny),
		completeProfile(3, 30, domain.GenderFemale, domain.InterestAny),
	}}
	decisions := newFakeDecisionRepo()

	// 20 and 30 like 10; a dislike targeting 10 must not appear.
	_, err := decisions.Upsert(ctx, 20, 10, true)
	require.NoError(t, err)
	_, err = decisions.Upsert(ctx, 30, 10, true)
	require.NoError(t, err)

	uc := NewFeedUseCase(profiles, decisions, logger.NewNop())

	liked, err := uc.CandidatesWhoLikedMe(ctx, 10)
	require.NoError(t, err)
	require.Len(t, liked, 2)

	// Once 10 rates 20, it disappears from the liked-me queue.
	_, err = decisions.Upsert(ctx, 10, 20, false)
	require.NoError(t, err)

	liked, err = uc.CandidatesWhoLikedMe(ctx, 10)
	require.NoError(t, err)
	require.Len(t, liked, 1)
	assert.Equal(t, int64(30), liked[0].UserID)

	// Nobody liked a fresh user.
	liked, err = uc.CandidatesWhoLikedMe(ctx, 99)
	require.NoError(t, err)
	assert.Empty(t, liked)
}
