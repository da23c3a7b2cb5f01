// Package catalog holds the static exercise catalog offered during
// workout building. The catalog is pure data: loaded at startup, never
// mutated, not persisted.
package catalog

// Exercise is a single catalog entry.
type Exercise struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// MuscleGroup is a named, ordered list of exercises.
type MuscleGroup struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Exercises []Exercise `json:"exercises"`
}

var muscleGroups = []MuscleGroup{
	{
		ID:   "chest",
		Name: "Peito",
		Exercises: []Exercise{
			{ID: "bp", Name: "Supino Reto (Barra)"},
			{ID: "dbf", Name: "Crossover"},
			{ID: "incl", Name: "Supino Inclinado Halteres"},
		},
	},
	{
		ID:   "back",
		Name: "Costas",
		Exercises: []Exercise{
			{ID: "pul", Name: "Puxada Alta (Barra)"},
			{ID: "rem", Name: "Remada Curvada"},
			{ID: "lowr", Name: "Remada Baixa"},
		},
	},
}

// Groups returns the full catalog. The returned slices are copies so
// callers cannot mutate the catalog.
func Groups() []MuscleGroup {
	out := make([]MuscleGroup, len(muscleGroups))
	for i, g := range muscleGroups {
		exercises := make([]Exercise, len(g.Exercises))
		copy(exercises, g.Exercises)
		out[i] = MuscleGroup{ID: g.ID, Name: g.Name, Exercises: exercises}
	}
	return out
}

// FindGroup looks up a muscle group by id.
func FindGroup(id string) (MuscleGroup, bool) {
	for _, g := range muscleGroups {
		if g.ID == id {
			exercises := make([]Exercise, len(g.Exercises))
			copy(exercises, g.Exercises)
			return MuscleGroup{ID: g.ID, Name: g.Name, Exercises: exercises}, true
		}
	}
	return MuscleGroup{}, false
}

// FindExercise looks up an exercise by id across all groups.
func FindExercise(id string) (Exercise, bool) {
	for _, g := range muscleGroups {
		for _, e := range g.Exercises {
			if e.ID == id {
				return e, true
			}
		}
	}
	return Exercise{}, false
}
