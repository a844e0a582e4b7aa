package profile

import (
	"context"
	"fmt"
	"strings"

	"github.com/ndemidov/tgdating-backend/internal/domain"
	"github.com/ndemidov/tgdating-backend/internal/repository"
)

type ProfileUseCase struct {
	profileRepo repository.ProfileRepository
}

func NewProfileUseCase(profileRepo repository.ProfileRepository) *ProfileUseCase {
	return &ProfileUseCase{profileRepo: profileRepo}
}

// UpdateProfileRequest enumerates exactly the fields the edit flow may
// change. Anything else in the request body is rejected at the binding
// boundary.
type UpdateProfileRequest struct {
	Name           *string `json:"name"`
	Age            *int    `json:"age" binding:"omitempty,gte=10,lte=100"`
	Gender         *string `json:"gender" binding:"omitempty,oneof=male female"`
	GenderInterest *string `json:"gender_interest" binding:"omitempty,oneof=male female any"`
	City           *string `json:"city"`
	Interests      *string `json:"interests"`
	PhotoID        *string `json:"photo_id"`
}

func (uc *ProfileUseCase) GetMyProfile(ctx context.Context, userID int64) (*domain.Profile, error) {
	return uc.profileRepo.GetByUserID(ctx, userID)
}

func (uc *ProfileUseCase) UpdateProfile(ctx context.Context, userID int64, req *UpdateProfileRequest) (*domain.Profile, error) {
	upd := &repository.ProfileUpdate{
		Age:       req.Age,
		Interests: req.Interests,
		PhotoID:   req.PhotoID,
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", domain.ErrInvalidInput)
		}
		upd.Name = &name
	}
	if req.City != nil {
		city := strings.TrimSpace(*req.City)
		if city == "" {
			return nil, fmt.Errorf("%w: city must not be empty", domain.ErrInvalidInput)
		}
		upd.City = &city
	}
	if req.Gender != nil {
		gender, ok := domain.ParseGender(*req.Gender)
		if !ok {
			return nil, fmt.Errorf("%w: unknown gender %q", domain.ErrInvalidInput, *req.Gender)
		}
		upd.Gender = &gender
	}
	if req.GenderInterest != nil {
		interest, ok := domain.ParseGenderInterest(*req.GenderInterest)
		if !ok {
			return nil, fmt.Errorf("%w: unknown gender interest %q", domain.ErrInvalidInput, *req.GenderInterest)
		}
		upd.GenderInterest = &interest
	}

	return uc.profileRepo.Update(ctx, userID, upd)
}

// SetActive toggles whether the profile appears in other users' feeds.
// A profile that never finished onboarding cannot be activated.
func (uc *ProfileUseCase) SetActive(ctx context.Context, userID int64, active bool) error {
	if active {
		profile, err := uc.profileRepo.GetByUserID(ctx, userID)
		if err != nil {
			return err
		}
		if profile.Name == nil || profile.Age == nil || profile.City == nil {
			return fmt.Errorf("%w: profile is not filled in", domain.ErrInvalidInput)
		}
	}
	return uc.profileRepo.SetComplete(ctx, userID, active)
}
