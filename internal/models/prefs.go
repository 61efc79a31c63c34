package models

// UserPreferences is the engine's view of a user's settings.
type UserPreferences struct {
	Goal                Goal               `json:"goal"`
	Experience          Experience         `json:"experience"`
	EquipmentIDs        []string           `json:"equipment_ids"`
	TrainingDaysPerWeek int                `json:"training_days_per_week"`
	Units               string             `json:"units"`
	StrengthNumbers     map[string]float64 `json:"strength_numbers"` // exercise ID -> 1RM
}

// DefaultPreferences returns a sane baseline used when a user has not
// configured anything yet.
func DefaultPreferences() UserPreferences {
	return UserPreferences{
		Goal:                GoalGeneral,
		Experience:          ExperienceIntermediate,
		EquipmentIDs:        []string{"barbell", "rack", "bench", "dumbbell"},
		TrainingDaysPerWeek: 4,
		Units:               "kg",
		StrengthNumbers:     map[string]float64{},
	}
}

// HasEquipment reports whether every id in required is available.
func (p UserPreferences) HasEquipment(required []string) bool {
	if len(required) == 0 {
		return true
	}
	have := make(map[string]bool, len(p.EquipmentIDs))
	for _, id := range p.EquipmentIDs {
		have[id] = true
	}
	for _, id := range required {
		if !have[id] {
			return false
		}
	}
	return true
}
