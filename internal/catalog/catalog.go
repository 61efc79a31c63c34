// Package catalog holds the static exercise reference data. The engine
// queries it by movement pattern, equipment, tag, and difficulty; it is
// never mutated at runtime.
package catalog

import "github.com/claude/liftwise/internal/models"

// Exercise is one catalog entry.
type Exercise struct {
	ID         string                 `json:"id"`
	Name       string                 `json:"name"`
	Pattern    models.MovementPattern `json:"pattern"`
	Tags       []string               `json:"tags"`
	Difficulty models.Experience      `json:"difficulty"`
	Equipment  []string               `json:"equipment"`
}

// HasTag reports whether the exercise carries the given tag.
func (e Exercise) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

var difficultyRank = map[models.Experience]int{
	models.ExperienceBeginner:     0,
	models.ExperienceIntermediate: 1,
	models.ExperienceAdvanced:     2,
}

// suitableFor reports whether a lifter at the given level can be
// prescribed this exercise (at or below their level).
func (e Exercise) suitableFor(level models.Experience) bool {
	return difficultyRank[e.Difficulty] <= difficultyRank[level]
}

// Catalog is a read-only exercise collection.
type Catalog struct {
	exercises []Exercise
}

// New returns a catalog over the given exercises.
func New(exercises []Exercise) *Catalog {
	return &Catalog{exercises: exercises}
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return New(defaultExercises)
}

// All returns every exercise.
func (c *Catalog) All() []Exercise {
	return c.exercises
}

// Get returns the exercise with the given ID.
func (c *Catalog) Get(id string) (Exercise, bool) {
	for _, e := range c.exercises {
		if e.ID == id {
			return e, true
		}
	}
	return Exercise{}, false
}

// Strength returns exercises matching the pattern that carry the
// "strength" tag, are satisfied by the available equipment, and fit the
// experience level. Order is stable (catalog order).
func (c *Catalog) Strength(pattern models.MovementPattern, prefs models.UserPreferences) []Exercise {
	var out []Exercise
	for _, e := range c.exercises {
		if e.Pattern != pattern || !e.HasTag("strength") {
			continue
		}
		if !e.suitableFor(prefs.Experience) || !prefs.HasEquipment(e.Equipment) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// AnyStrength returns every strength-tagged, equipment-satisfied
// exercise regardless of pattern. Last resort before the nil sentinel.
func (c *Catalog) AnyStrength(prefs models.UserPreferences) []Exercise {
	var out []Exercise
	for _, e := range c.exercises {
		if !e.HasTag("strength") || !prefs.HasEquipment(e.Equipment) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Accessories returns accessory-tagged, equipment-satisfied exercises
// excluding the given pattern (the main lift already covers it).
func (c *Catalog) Accessories(exclude models.MovementPattern, prefs models.UserPreferences) []Exercise {
	var out []Exercise
	for _, e := range c.exercises {
		if !e.HasTag("accessory") || e.Pattern == exclude {
			continue
		}
		if !e.suitableFor(prefs.Experience) || !prefs.HasEquipment(e.Equipment) {
			continue
		}
		out = append(out, e)
	}
	return out
}
