package domain

// OnboardingState is the current step of the questionnaire.
type OnboardingState string

const (
	StateName           OnboardingState = "name"
	StateAge            OnboardingState = "age"
	StateGender         OnboardingState = "gender"
	StateGenderInterest OnboardingState = "gender_interest"
	StateCity           OnboardingState = "city"
	StateInterests      OnboardingState = "interests"
	StatePhoto          OnboardingState = "photo"
	StateComplete       OnboardingState = "complete"
)

// OnboardingSession accumulates answers while a user walks through the
// questionnaire. It lives in the session store for the duration of the
// flow and is cleared on completion.
type OnboardingSession struct {
	State          OnboardingState `json:"state"`
	Name           *string         `json:"name,omitempty"`
	Age            *int            `json:"age,omitempty"`
	Gender         *Gender         `json:"gender,omitempty"`
	GenderInterest *GenderInterest `json:"gender_interest,omitempty"`
	City           *string         `json:"city,omitempty"`
	Interests      *string         `json:"interests,omitempty"`
	PhotoID        *string         `json:"photo_id,omitempty"`
}

// OnboardingData is the finished questionnaire, written to the profile
// in a single update when the flow completes.
type OnboardingData struct {
	Name           string
	Age            int
	Gender         Gender
	GenderInterest GenderInterest
	City           string
	Interests      string
	PhotoID        *string
}
