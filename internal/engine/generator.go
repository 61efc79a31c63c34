package engine

import (
	"time"

	"github.com/claude/liftwise/internal/catalog"
	"github.com/claude/liftwise/internal/models"
	"github.com/google/uuid"
)

// fallbackPatterns lists the biomechanical neighbors tried when no
// exercise matches the day's main pattern.
var fallbackPatterns = map[models.MovementPattern][]models.MovementPattern{
	models.PatternSquat: {models.PatternHinge, models.PatternLunge},
	models.PatternHinge: {models.PatternSquat, models.PatternLunge},
	models.PatternLunge: {models.PatternSquat, models.PatternHinge},
}

var warmupItems = map[models.MovementPattern][]string{
	models.PatternSquat: {"Bike or row 5 min easy", "Hip opener circuit", "Empty-bar squats x10"},
	models.PatternHinge: {"Bike or row 5 min easy", "Glute bridge x15", "Light RDL x10"},
	models.PatternPush:  {"Band pull-apart x20", "Scap push-up x10", "Empty-bar press x10"},
	models.PatternPull:  {"Dead hang 30s", "Band row x20", "Light row x10"},
}

var defaultWarmup = []string{"Easy aerobic 5 min", "Dynamic mobility circuit"}
var cooldownItems = []string{"Walk 5 min easy", "Breathing drill 2 min", "Stretch main movers"}

var accessorySetsByVolume = map[models.TargetLevel]int{
	models.TargetLow:    2,
	models.TargetMedium: 3,
	models.TargetHigh:   4,
}

// GenerateWorkoutDay expands one day into concrete blocks. When a
// weekly-structure day is given, its pattern and targets drive the
// prescription; otherwise the generator falls back to raw goal
// parameters and the base rotation. Generation is deterministic for a
// given (dayIndex, preferences, structure) input.
func GenerateWorkoutDay(prefs models.UserPreferences, date time.Time, dayIndex int, day *models.WeeklyDayStructure, cat *catalog.Catalog, userID int) models.WorkoutPlanDay {
	pattern := basePatternOrder[((dayIndex%4)+4)%4]
	if day != nil {
		pattern = day.MainPattern
	}

	plan := models.WorkoutPlanDay{
		ID:        uuid.New(),
		UserID:    userID,
		Date:      date,
		DayIndex:  dayIndex,
		CreatedAt: time.Now().UTC(),
	}
	plan.FocusTags = append(plan.FocusTags, string(pattern))
	if day != nil {
		plan.FocusTags = append(plan.FocusTags, string(day.Phase))
		if day.FatigueProtected {
			plan.FocusTags = append(plan.FocusTags, "fatigue-protected")
		}
	}

	// Warmup always leads.
	wu := warmupItems[pattern]
	if wu == nil {
		wu = defaultWarmup
	}
	plan.Blocks = append(plan.Blocks, models.WorkoutBlock{
		Kind:  models.BlockWarmup,
		Title: "Warmup",
		Items: wu,
	})

	// Strength + accessories are skipped entirely on a dedicated
	// conditioning day.
	var strength *models.StrengthPrescription
	if pattern != models.PatternCond {
		var exercisePattern models.MovementPattern
		strength, exercisePattern = buildStrength(prefs, dayIndex, pattern, day, cat)
		title := "Strength"
		if ex, ok := exerciseName(cat, strength); ok {
			title = "Strength: " + ex
		}
		plan.Blocks = append(plan.Blocks, models.WorkoutBlock{
			Kind:     models.BlockStrength,
			Title:    title,
			Pattern:  exercisePattern,
			Strength: strength,
		})

		if strength != nil && (day == nil || !day.FatigueProtected) {
			if acc := buildAccessories(prefs, dayIndex, exercisePattern, day, cat); len(acc) > 0 {
				plan.Blocks = append(plan.Blocks, models.WorkoutBlock{
					Kind:        models.BlockAccessory,
					Title:       "Accessory Work",
					Accessories: acc,
				})
			}
		}
	}

	if includeConditioning(day, prefs.Goal, dayIndex) {
		c := buildConditioning(prefs, day)
		plan.Blocks = append(plan.Blocks, models.WorkoutBlock{
			Kind:         models.BlockConditioning,
			Title:        "Conditioning",
			Pattern:      models.PatternCond,
			Conditioning: c,
		})
	}

	plan.Blocks = append(plan.Blocks, models.WorkoutBlock{
		Kind:  models.BlockCooldown,
		Title: "Cooldown",
		Items: cooldownItems,
	})

	plan.EstimatedDurationMin = estimateDuration(plan.Blocks)
	return plan
}

// buildStrength runs the progressive fallback chain: exact pattern,
// biomechanical neighbors, any strength exercise, then the nil sentinel
// meaning no eligible exercise exists. Candidate ties break on
// dayIndex mod count so the same day always picks the same exercise.
func buildStrength(prefs models.UserPreferences, dayIndex int, pattern models.MovementPattern, day *models.WeeklyDayStructure, cat *catalog.Catalog) (*models.StrengthPrescription, models.MovementPattern) {
	candidates := cat.Strength(pattern, prefs)
	if len(candidates) == 0 {
		for _, fb := range fallbackPatterns[pattern] {
			if candidates = cat.Strength(fb, prefs); len(candidates) > 0 {
				break
			}
		}
	}
	if len(candidates) == 0 {
		candidates = cat.AnyStrength(prefs)
	}
	if len(candidates) == 0 {
		return nil, pattern
	}

	ex := candidates[((dayIndex%len(candidates))+len(candidates))%len(candidates)]

	sets, reps, rpe, percent, label := buildPrescription(dayIndex, prefs.Experience, day)
	p := &models.StrengthPrescription{
		ExerciseID: ex.ID,
		WaveLabel:  label,
		RPE:        rpe,
		Percent1RM: percent,
		OneRMUsed:  prefs.StrengthNumbers[ex.ID],
	}
	for i := 0; i < sets; i++ {
		p.Sets = append(p.Sets, models.SetPrescription{
			TargetReps:       reps,
			TargetRPE:        rpe,
			TargetPercent1RM: percent,
		})
	}
	return p, ex.Pattern
}

func buildAccessories(prefs models.UserPreferences, dayIndex int, mainPattern models.MovementPattern, day *models.WeeklyDayStructure, cat *catalog.Catalog) []models.AccessoryItem {
	pool := cat.Accessories(mainPattern, prefs)
	if len(pool) == 0 {
		return nil
	}

	sets := accessorySetsByVolume[models.TargetMedium]
	if day != nil {
		if s, ok := accessorySetsByVolume[day.VolumeTarget]; ok {
			sets = s
		}
	}

	count := 2
	if count > len(pool) {
		count = len(pool)
	}
	var out []models.AccessoryItem
	for i := 0; i < count; i++ {
		ex := pool[(dayIndex+i)%len(pool)]
		out = append(out, models.AccessoryItem{ExerciseID: ex.ID, Sets: sets})
	}
	return out
}

func exerciseName(cat *catalog.Catalog, p *models.StrengthPrescription) (string, bool) {
	if p == nil {
		return "", false
	}
	ex, ok := cat.Get(p.ExerciseID)
	if !ok {
		return "", false
	}
	return ex.Name, true
}

func estimateDuration(blocks []models.WorkoutBlock) int {
	minutes := 0.0
	for _, b := range blocks {
		switch b.Kind {
		case models.BlockWarmup:
			minutes += 10
		case models.BlockCooldown:
			minutes += 5
		case models.BlockStrength:
			if b.Strength != nil {
				minutes += float64(len(b.Strength.Sets)) * 4
			}
		case models.BlockAccessory:
			for _, a := range b.Accessories {
				minutes += float64(a.Sets) * 2.5
			}
		case models.BlockConditioning:
			if b.Conditioning != nil {
				minutes += float64((b.Conditioning.WorkSeconds+b.Conditioning.RestSeconds)*b.Conditioning.Rounds) / 60
			}
		}
	}
	return int(minutes + 0.5)
}
