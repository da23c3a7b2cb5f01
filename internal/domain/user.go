package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Gender as collected during onboarding.
type Gender string

const (
	GenderMan         Gender = "man"
	GenderWoman       Gender = "woman"
	GenderUnspecified Gender = "unspecified"
)

// ValidGender reports whether g is one of the accepted gender values.
func ValidGender(g Gender) bool {
	switch g {
	case GenderMan, GenderWoman, GenderUnspecified:
		return true
	}
	return false
}

// UserProfile represents a registered user and their onboarding data.
// The document is created at sign-up with the identity fields only;
// gender/age/height/weight are merged in by the onboarding flow, and
// OnboardingComplete flips to true exactly once when the final step lands.
type UserProfile struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"` // unique
	PasswordHash string             `bson:"passwordHash" json:"-"`
	PhotoURL     string             `bson:"photoUrl,omitempty" json:"photoUrl,omitempty"`

	Gender             Gender  `bson:"gender,omitempty" json:"gender,omitempty"`
	Age                int     `bson:"age,omitempty" json:"age,omitempty"`
	HeightCm           float64 `bson:"heightCm,omitempty" json:"heightCm,omitempty"`
	WeightKg           float64 `bson:"weightKg,omitempty" json:"weightKg,omitempty"`
	OnboardingComplete bool    `bson:"onboardingComplete" json:"onboardingComplete"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
