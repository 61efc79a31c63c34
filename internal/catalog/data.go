package catalog

import "github.com/claude/liftwise/internal/models"

// defaultExercises is the built-in reference dataset.
var defaultExercises = []Exercise{
	// Squat pattern
	{ID: "back-squat", Name: "Back Squat", Pattern: models.PatternSquat, Tags: []string{"strength"}, Difficulty: models.ExperienceIntermediate, Equipment: []string{"barbell", "rack"}},
	{ID: "front-squat", Name: "Front Squat", Pattern: models.PatternSquat, Tags: []string{"strength"}, Difficulty: models.ExperienceAdvanced, Equipment: []string{"barbell", "rack"}},
	{ID: "goblet-squat", Name: "Goblet Squat", Pattern: models.PatternSquat, Tags: []string{"strength", "accessory"}, Difficulty: models.ExperienceBeginner, Equipment: []string{"dumbbell"}},
	{ID: "leg-press", Name: "Leg Press", Pattern: models.PatternSquat, Tags: []string{"accessory"}, Difficulty: models.ExperienceBeginner, Equipment: []string{"leg-press"}},

	// Hinge pattern
	{ID: "deadlift", Name: "Deadlift", Pattern: models.PatternHinge, Tags: []string{"strength"}, Difficulty: models.ExperienceIntermediate, Equipment: []string{"barbell"}},
	{ID: "trap-bar-deadlift", Name: "Trap Bar Deadlift", Pattern: models.PatternHinge, Tags: []string{"strength"}, Difficulty: models.ExperienceBeginner, Equipment: []string{"trap-bar"}},
	{ID: "romanian-deadlift", Name: "Romanian Deadlift", Pattern: models.PatternHinge, Tags: []string{"strength", "accessory"}, Difficulty: models.ExperienceBeginner, Equipment: []string{"barbell"}},
	{ID: "kb-swing", Name: "Kettlebell Swing", Pattern: models.PatternHinge, Tags: []string{"accessory"}, Difficulty: models.ExperienceBeginner, Equipment: []string{"kettlebell"}},

	// Push pattern
	{ID: "bench-press", Name: "Bench Press", Pattern: models.PatternPush, Tags: []string{"strength"}, Difficulty: models.ExperienceBeginner, Equipment: []string{"barbell", "bench", "rack"}},
	{ID: "overhead-press", Name: "Overhead Press", Pattern: models.PatternPush, Tags: []string{"strength"}, Difficulty: models.ExperienceIntermediate, Equipment: []string{"barbell"}},
	{ID: "incline-db-press", Name: "Incline Dumbbell Press", Pattern: models.PatternPush, Tags: []string{"accessory"}, Difficulty: models.ExperienceBeginner, Equipment: []string{"dumbbell", "bench"}},
	{ID: "push-up", Name: "Push-Up", Pattern: models.PatternPush, Tags: []string{"accessory"}, Difficulty: models.ExperienceBeginner, Equipment: nil},

	// Pull pattern
	{ID: "barbell-row", Name: "Barbell Row", Pattern: models.PatternPull, Tags: []string{"strength"}, Difficulty: models.ExperienceBeginner, Equipment: []string{"barbell"}},
	{ID: "weighted-pull-up", Name: "Weighted Pull-Up", Pattern: models.PatternPull, Tags: []string{"strength"}, Difficulty: models.ExperienceAdvanced, Equipment: []string{"pullup-bar"}},
	{ID: "lat-pulldown", Name: "Lat Pulldown", Pattern: models.PatternPull, Tags: []string{"accessory"}, Difficulty: models.ExperienceBeginner, Equipment: []string{"cable"}},
	{ID: "db-row", Name: "Dumbbell Row", Pattern: models.PatternPull, Tags: []string{"accessory"}, Difficulty: models.ExperienceBeginner, Equipment: []string{"dumbbell", "bench"}},

	// Lunge pattern (fallback family for squat/hinge)
	{ID: "walking-lunge", Name: "Walking Lunge", Pattern: models.PatternLunge, Tags: []string{"strength", "accessory"}, Difficulty: models.ExperienceBeginner, Equipment: []string{"dumbbell"}},
	{ID: "bulgarian-split-squat", Name: "Bulgarian Split Squat", Pattern: models.PatternLunge, Tags: []string{"accessory"}, Difficulty: models.ExperienceIntermediate, Equipment: []string{"dumbbell", "bench"}},

	// Core / carry accessories
	{ID: "farmer-carry", Name: "Farmer Carry", Pattern: models.PatternCarry, Tags: []string{"accessory"}, Difficulty: models.ExperienceBeginner, Equipment: []string{"dumbbell"}},
	{ID: "plank", Name: "Plank", Pattern: models.PatternCore, Tags: []string{"accessory"}, Difficulty: models.ExperienceBeginner, Equipment: nil},
	{ID: "hanging-leg-raise", Name: "Hanging Leg Raise", Pattern: models.PatternCore, Tags: []string{"accessory"}, Difficulty: models.ExperienceIntermediate, Equipment: []string{"pullup-bar"}},
}
