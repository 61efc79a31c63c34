package engine

import "github.com/claude/liftwise/internal/models"

// conditioningModes in selection priority order: the first modality
// whose equipment the user has wins; running needs nothing.
var conditioningModes = []struct {
	mode      string
	equipment string
}{
	{"row", "rower"},
	{"bike", "bike"},
	{"ski", "ski-erg"},
}

func selectConditioningMode(prefs models.UserPreferences) string {
	for _, m := range conditioningModes {
		if prefs.HasEquipment([]string{m.equipment}) {
			return m.mode
		}
	}
	return "run"
}

// includeConditioning decides whether a day gets a conditioning block.
// A weekly-structure day always carries a conditioning target, so its
// presence alone includes the block; the goal heuristics are the
// fallback path for raw-parameter generation.
func includeConditioning(day *models.WeeklyDayStructure, goal models.Goal, dayIndex int) bool {
	if day != nil {
		return day.ConditioningTarget != ""
	}
	switch goal {
	case models.GoalConditioning:
		return true
	case models.GoalHybrid:
		return dayIndex%2 == 0
	case models.GoalStrength:
		return dayIndex == 3
	default: // general
		return dayIndex%2 == 1
	}
}

// buildConditioning sizes the interval work for the goal, then adapts
// it to the day's conditioning target.
func buildConditioning(prefs models.UserPreferences, day *models.WeeklyDayStructure) *models.ConditioningPrescription {
	c := &models.ConditioningPrescription{Mode: selectConditioningMode(prefs)}

	switch prefs.Goal {
	case models.GoalConditioning:
		c.WorkSeconds, c.RestSeconds, c.Rounds, c.TargetZone = 180, 60, 6, "Z3-Z4"
	case models.GoalGeneral:
		c.WorkSeconds, c.RestSeconds, c.Rounds, c.TargetZone = 1800, 0, 1, "Z2"
	default: // hybrid, strength
		c.WorkSeconds, c.RestSeconds, c.Rounds, c.TargetZone = 60, 60, 8, "Z2-Z3"
	}

	if day == nil {
		return c
	}
	switch day.ConditioningTarget {
	case models.ConditioningLight:
		if c.Rounds > 1 {
			c.Rounds = (c.Rounds + 1) / 2
		}
		c.TargetZone = "Z1-Z2"
	case models.ConditioningIntensity:
		c.TargetZone = "Z3-Z4"
		c.RestSeconds += 30
	}
	return c
}
