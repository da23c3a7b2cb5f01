package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DaysOfWeek is the canonical weekday order used for workout day sets.
// Day selections are semantically a set but are always stored and
// displayed in this order, regardless of insertion order.
var DaysOfWeek = []string{
	"Segunda",
	"Terça",
	"Quarta",
	"Quinta",
	"Sexta",
	"Sábado",
	"Domingo",
}

// DayIndex returns the canonical position of a weekday name, or -1 if
// the name is not a known weekday.
func DayIndex(day string) int {
	for i, d := range DaysOfWeek {
		if d == day {
			return i
		}
	}
	return -1
}

// WorkoutExercise is a catalog exercise configured by the user for one
// workout. The same exercise may appear more than once in a workout with
// different configurations.
type WorkoutExercise struct {
	ExerciseID string  `bson:"exerciseId" json:"exerciseId"`
	Name       string  `bson:"name" json:"name"`
	ImageURL   string  `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Sets       int     `bson:"sets" json:"sets"` // always >= 1
	Reps       string  `bson:"reps" json:"reps"` // free-text range, e.g. "10-12"
	// Weights default to zero rather than being omitted.
	InitialWeight float64 `bson:"initialWeight" json:"initialWeight"`
	FinalWeight   float64 `bson:"finalWeight" json:"finalWeight"`
}

// Workout is a routine owned by exactly one user. The exercise list is
// frozen at creation; there is no update path.
type Workout struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Days        []string           `bson:"days" json:"days"` // canonical weekday order
	Exercises   []WorkoutExercise  `bson:"exercises" json:"exercises"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
