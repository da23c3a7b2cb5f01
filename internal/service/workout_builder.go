package service

import (
	"errors"
	"sort"
	"strconv"
	"strings"

	"treinoapp/fitness-tracker/internal/catalog"
	"treinoapp/fitness-tracker/internal/domain"
)

var (
	ErrNameTooShort        = errors.New("workout name must have at least 3 characters")
	ErrDescriptionTooShort = errors.New("workout description must have at least 5 characters")
	ErrNoDaysSelected      = errors.New("select at least one day of the week")
	ErrUnknownDay          = errors.New("unknown day of week")
	ErrSetsRequired        = errors.New("sets is required")
	ErrRepsRequired        = errors.New("reps is required")
	ErrInvalidSets         = errors.New("sets must be a number greater than zero")
	ErrNoExercises         = errors.New("add at least one exercise to the workout")
)

// Defaults pre-filled into the exercise configuration form.
const (
	DefaultSetsInput = "3"
	DefaultRepsInput = "10-12"
)

const (
	minWorkoutNameLen        = 3
	minWorkoutDescriptionLen = 5
)

// Draft accumulates a workout across the two builder steps: the header
// (name, description, days) and the exercise list. The caller owns the
// draft and carries it between steps.
type Draft struct {
	Name        string
	Description string
	Days        []string
	Exercises   []domain.WorkoutExercise
}

// ToggleDay adds the day to the selection, or removes it when already
// selected. The selection is re-sorted into canonical weekday order on
// every change; toggling the same day twice restores the prior state.
// Unknown day names are ignored.
func (d *Draft) ToggleDay(day string) {
	if domain.DayIndex(day) < 0 {
		return
	}
	for i, existing := range d.Days {
		if existing == day {
			d.Days = append(d.Days[:i], d.Days[i+1:]...)
			return
		}
	}
	d.Days = append(d.Days, day)
	sortDays(d.Days)
}

// SetDays replaces the day selection wholesale. Duplicates collapse, the
// result is canonically ordered, and unknown names are rejected.
func (d *Draft) SetDays(days []string) error {
	seen := map[string]bool{}
	selected := make([]string, 0, len(days))
	for _, day := range days {
		if domain.DayIndex(day) < 0 {
			return ErrUnknownDay
		}
		if seen[day] {
			continue
		}
		seen[day] = true
		selected = append(selected, day)
	}
	sortDays(selected)
	d.Days = selected
	return nil
}

// ValidateHeader enforces the header-step rules: name at least 3
// characters, description at least 5, at least one selected day.
func (d *Draft) ValidateHeader() error {
	if len(strings.TrimSpace(d.Name)) < minWorkoutNameLen {
		return ErrNameTooShort
	}
	if len(strings.TrimSpace(d.Description)) < minWorkoutDescriptionLen {
		return ErrDescriptionTooShort
	}
	if len(d.Days) == 0 {
		return ErrNoDaysSelected
	}
	return nil
}

// AddExercise appends one configured exercise. Order is the user's add
// order and the same catalog exercise may be added repeatedly with
// different configurations.
func (d *Draft) AddExercise(ex catalog.Exercise, cfg ExerciseConfig) {
	d.Exercises = append(d.Exercises, domain.WorkoutExercise{
		ExerciseID:    ex.ID,
		Name:          ex.Name,
		ImageURL:      ex.ImageURL,
		Sets:          cfg.Sets,
		Reps:          cfg.Reps,
		InitialWeight: cfg.InitialWeight,
		FinalWeight:   cfg.FinalWeight,
	})
}

func sortDays(days []string) {
	sort.SliceStable(days, func(i, j int) bool {
		return domain.DayIndex(days[i]) < domain.DayIndex(days[j])
	})
}

// Accordion tracks which muscle group is expanded in the catalog view.
// At most one group is expanded at a time: opening one collapses any
// other, and re-toggling the open group closes it.
type Accordion struct {
	expanded string
}

// Toggle opens the given group, collapsing whichever one was open; if
// the group is already open it closes instead.
func (a *Accordion) Toggle(groupID string) {
	if a.expanded == groupID {
		a.expanded = ""
		return
	}
	a.expanded = groupID
}

// Expanded returns the currently open group id, or "" when all are closed.
func (a *Accordion) Expanded() string {
	return a.expanded
}

// IsExpanded reports whether the given group is the open one.
func (a *Accordion) IsExpanded(groupID string) bool {
	return a.expanded != "" && a.expanded == groupID
}

// ExerciseInput is the raw text collected by the exercise configuration
// form: sets and weights arrive as free text from numeric fields.
type ExerciseInput struct {
	Sets          string
	Reps          string
	InitialWeight string
	FinalWeight   string
}

// ExerciseConfig is a parsed, validated exercise configuration.
type ExerciseConfig struct {
	Sets          int
	Reps          string
	InitialWeight float64
	FinalWeight   float64
}

// ParseExerciseConfig validates and coerces the configuration form input.
// Both sets and reps must be present; blank or non-numeric weights
// default to 0 and negative weights clamp to 0.
func ParseExerciseConfig(in ExerciseInput) (ExerciseConfig, error) {
	sets := strings.TrimSpace(in.Sets)
	reps := strings.TrimSpace(in.Reps)
	if sets == "" {
		return ExerciseConfig{}, ErrSetsRequired
	}
	if reps == "" {
		return ExerciseConfig{}, ErrRepsRequired
	}

	n, err := strconv.Atoi(sets)
	if err != nil || n < 1 {
		return ExerciseConfig{}, ErrInvalidSets
	}

	return ExerciseConfig{
		Sets:          n,
		Reps:          reps,
		InitialWeight: coerceWeight(in.InitialWeight),
		FinalWeight:   coerceWeight(in.FinalWeight),
	}, nil
}

func coerceWeight(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
