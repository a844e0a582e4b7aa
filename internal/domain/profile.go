package domain

import "time"

// Gender is the self-declared gender of a profile.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// GenderInterest is who a user wants to be shown.
type GenderInterest string

const (
	InterestMale   GenderInterest = "male"
	InterestFemale GenderInterest = "female"
	InterestAny    GenderInterest = "any"
)

func ParseGender(s string) (Gender, bool) {
	switch Gender(s) {
	case GenderMale, GenderFemale:
		return Gender(s), true
	}
	return "", false
}

func ParseGenderInterest(s string) (GenderInterest, bool) {
	switch GenderInterest(s) {
	case InterestMale, InterestFemale, InterestAny:
		return GenderInterest(s), true
	}
	return "", false
}

type Profile struct {
	ID             int             `json:"id" db:"id"`
	UserID         int64           `json:"user_id" db:"user_id"`
	Name           *string         `json:"name" db:"name"`
	Age            *int            `json:"age" db:"age"`
	Gender         *Gender         `json:"gender" db:"gender"`
	GenderInterest *GenderInterest `json:"gender_interest" db:"gender_interest"`
	City           *string         `json:"city" db:"city"`
	Interests      *string         `json:"interests" db:"interests"`
	PhotoID        *string         `json:"photo_id" db:"photo_id"`
	IsComplete     bool            `json:"is_complete" db:"is_complete"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
}

// Eligible reports whether the profile may be shown to other users.
func (p *Profile) Eligible() bool {
	return p.IsComplete && p.Name != nil && p.Age != nil && p.City != nil
}
