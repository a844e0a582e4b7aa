package onboarding

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ndemidov/tgdating-backend/internal/domain"
	"github.com/ndemidov/tgdating-backend/internal/pkg/logger"
	"github.com/ndemidov/tgdating-backend/internal/repository"
)

// Options controls the photo step behavior.
type Options struct {
	// PhotoRequired forbids skipping the photo step. When false the
	// SkipToken input completes the flow without a photo.
	PhotoRequired bool
	SkipToken     string
}

type OnboardingUseCase struct {
	sessionRepo repository.SessionRepository
	profileRepo repository.ProfileRepository
	opts        Options
	log         *logger.Logger
}

func NewOnboardingUseCase(
	sessionRepo repository.SessionRepository,
	profileRepo repository.ProfileRepository,
	opts Options,
	log *logger.Logger,
) *OnboardingUseCase {
	return &OnboardingUseCase{
		sessionRepo: sessionRepo,
		profileRepo: profileRepo,
		opts:        opts,
		log:         log,
	}
}

// StepResult is what the transport layer renders after each step.
type StepResult struct {
	Prompt    string                 `json:"prompt"`
	State     domain.OnboardingState `json:"state"`
	Completed bool                   `json:"completed"`
	Profile   *domain.Profile        `json:"profile,omitempty"`
}

const promptName = "Let's get started! What's your name?"

// Start opens a fresh questionnaire, creating a skeleton profile row on
// first contact. Any prior in-flight session is discarded.
func (uc *OnboardingUseCase) Start(ctx context.Context, userID int64) (*StepResult, error) {
	if _, err := uc.profileRepo.Create(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to create skeleton profile: %w", err)
	}

	session := &domain.OnboardingSession{State: domain.StateName}
	if err := uc.sessionRepo.Save(ctx, userID, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	uc.log.Info("onboarding started", "user_id", userID)
	return &StepResult{Prompt: promptName, State: domain.StateName}, nil
}

// Advance feeds one input into the state machine. Invalid input returns
// a ValidationError and leaves the session untouched; a missing session
// surfaces domain.ErrSessionNotFound so the caller can restart the flow.
func (uc *OnboardingUseCase) Advance(ctx context.Context, userID int64, input string) (*StepResult, error) {
	session, err := uc.sessionRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	next, prompt, err := uc.step(session, input)
	if err != nil {
		return nil, err
	}

	if next.State == domain.StateComplete {
		return uc.complete(ctx, userID, next)
	}

	if err := uc.sessionRepo.Save(ctx, userID, next); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return &StepResult{Prompt: prompt, State: next.State}, nil
}

// step is the pure transition function: (session, input) -> (new
// session, prompt). It never touches a store.
func (uc *OnboardingUseCase) step(s *domain.OnboardingSession, input string) (*domain.OnboardingSession, string, error) {
	next := *s

	switch s.State {
	case domain.StateName:
		name := strings.TrimSpace(input)
		if name == "" {
			return nil, "", &domain.ValidationError{Prompt: "Please tell me your name:"}
		}
		next.Name = &name
		next.State = domain.StateAge
		return &next, fmt.Sprintf("Nice to meet you, %s! How old are you?", name), nil

	case domain.StateAge:
		age, err := strconv.Atoi(strings.TrimSpace(input))
		if err != nil {
			return nil, "", &domain.ValidationError{Prompt: "Please enter a number:"}
		}
		if age < 10 || age > 100 {
			return nil, "", &domain.ValidationError{Prompt: "Please enter a real age (10-100):"}
		}
		next.Age = &age
		next.State = domain.StateGender
		return &next, "What's your gender? (male / female)", nil

	case domain.StateGender:
		gender, ok := domain.ParseGender(strings.TrimSpace(input))
		if !ok {
			return nil, "", &domain.ValidationError{Prompt: "Please pick one of the offered options: male / female"}
		}
		next.Gender = &gender
		next.State = domain.StateGenderInterest
		return &next, "Who are you interested in? (male / female / any)", nil

	case domain.StateGenderInterest:
		interest, ok := domain.ParseGenderInterest(strings.TrimSpace(input))
		if !ok {
			return nil, "", &domain.ValidationError{Prompt: "Please pick one of the offered options: male / female / any"}
		}
		next.GenderInterest = &interest
		next.State = domain.StateCity
		return &next, "Which city do you live in?", nil

	case domain.StateCity:
		city := strings.TrimSpace(input)
		if city == "" {
			return nil, "", &domain.ValidationError{Prompt: "Please tell me your city:"}
		}
		next.City = &city
		next.State = domain.StateInterests
		return &next, "Tell me about your interests (hobbies, passions):", nil

	case domain.StateInterests:
		interests := strings.TrimSpace(input)
		if interests == "" {
			return nil, "", &domain.ValidationError{Prompt: "Please tell me about your interests:"}
		}
		next.Interests = &interests
		next.State = domain.StatePhoto
		return &next, "Send a photo for your profile. It helps others get to know you!", nil

	case domain.StatePhoto:
		ref := strings.TrimSpace(input)
		if ref == uc.opts.SkipToken && !uc.opts.PhotoRequired {
			next.State = domain.StateComplete
			return &next, "", nil
		}
		if ref == "" || ref == uc.opts.SkipToken {
			return nil, "", &domain.ValidationError{Prompt: "Please send a photo to finish your profile."}
		}
		next.PhotoID = &ref
		next.State = domain.StateComplete
		return &next, "", nil

	default:
		return nil, "", fmt.Errorf("%w: unexpected onboarding state %q", domain.ErrInvalidInput, s.State)
	}
}

// complete writes the accumulated answers through the profile store in
// a single update and clears the session.
func (uc *OnboardingUseCase) complete(ctx context.Context, userID int64, s *domain.OnboardingSession) (*StepResult, error) {
	data := &domain.OnboardingData{
		Name:           *s.Name,
		Age:            *s.Age,
		Gender:         *s.Gender,
		GenderInterest: *s.GenderInterest,
		City:           *s.City,
		Interests:      *s.Interests,
		PhotoID:        s.PhotoID,
	}

	profile, err := uc.profileRepo.ApplyOnboarding(ctx, userID, data)
	if err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	if err := uc.sessionRepo.Clear(ctx, userID); err != nil {
		// The profile is already written; a stale session only costs a
		// redundant restart, so log and move on.
		uc.log.Warn("failed to clear onboarding session", "user_id", userID, "error", err)
	}

	uc.log.Info("onboarding completed", "user_id", userID)
	return &StepResult{
		Prompt:    fmt.Sprintf("%s, %d, %s - %s", data.Name, data.Age, data.City, data.Interests),
		State:     domain.StateComplete,
		Completed: true,
		Profile:   profile,
	}, nil
}
