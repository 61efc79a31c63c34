package engine

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/claude/liftwise/internal/models"
)

// Per-pattern fatigue-score bands (0-100 scale) used for day overrides.
// These are a different number space than the ACWR ratio thresholds.
const (
	fatigueForceLowVolume    = 60.0
	fatigueForceLowIntensity = 75.0
	fatigueProtected         = 80.0
	fatigueFresh             = 30.0
)

const maxGeneratedDays = 6

// basePatternOrder is the rotation before fatigue sorting: press first
// (recovers fastest for most lifters), then hinge, squat, pull.
var basePatternOrder = []models.MovementPattern{
	models.PatternPush, models.PatternHinge, models.PatternSquat, models.PatternPull,
}

var liftCategories = map[models.MovementPattern]string{
	models.PatternSquat: "Squat",
	models.PatternHinge: "Hinge",
	models.PatternPush:  "Press",
	models.PatternPull:  "Pull",
}

// BuildWeeklyStructure assembles the week's plan skeleton from readiness,
// the fatigue profile, and the inferred phase. trainingDays is capped to
// 6 generated days; days beyond the four pattern days become a
// conditioning day and then a hybrid upper day.
func BuildWeeklyStructure(readiness models.ReadinessAnalysis, fatigue models.FatigueAnalysis, trainingDays int, weekStart time.Time, phase models.PhaseType) models.WeeklyStructure {
	if trainingDays < 3 {
		trainingDays = 3
	}
	if trainingDays > maxGeneratedDays {
		trainingDays = maxGeneratedDays
	}

	baseVolume, baseIntensity := baseTargets(readiness.Category)
	baseVolume, baseIntensity = applyPhaseBias(baseVolume, baseIntensity, phase)

	ordered, protected := orderPatterns(fatigue)

	strengthDays := trainingDays
	if strengthDays > 4 {
		strengthDays = 4
	}

	var days []models.WeeklyDayStructure
	used := map[models.MovementPattern]int{}
	for i := 0; i < strengthDays; i++ {
		pattern := pickPattern(ordered, protected, used, i)
		used[pattern]++
		days = append(days, buildDay(weekStart, i, pattern, liftCategories[pattern],
			baseVolume, baseIntensity, baseConditioning(readiness.Category, phase), phase,
			readiness, fatigue, protected[pattern]))
	}

	if trainingDays > 4 {
		days = append(days, buildDay(weekStart, len(days), models.PatternCond, "Conditioning",
			baseVolume, baseIntensity, models.ConditioningIntensity, phase,
			readiness, fatigue, false))
	}
	if trainingDays > 5 {
		hybrid := models.PatternPush
		if protected[hybrid] && used[hybrid] > 0 {
			hybrid = ""
			for _, p := range ordered {
				if !protected[p] || used[p] == 0 {
					hybrid = p
					break
				}
			}
		}
		if hybrid != "" {
			days = append(days, buildDay(weekStart, len(days), hybrid, "Upper Hybrid",
				baseVolume, baseIntensity, models.ConditioningMixed, phase,
				readiness, fatigue, protected[hybrid]))
		} else {
			// Every core pattern is protected and already used once
			// this week. A second protected slot is not allowed, so
			// the day becomes conditioning instead.
			days = append(days, buildDay(weekStart, len(days), models.PatternCond, "Conditioning",
				baseVolume, baseIntensity, models.ConditioningMixed, phase,
				readiness, fatigue, false))
		}
	}

	// Anti-repetition: back-to-back high-volume days on the same pattern
	// demote the later day.
	for i := 1; i < len(days); i++ {
		if days[i].MainPattern == days[i-1].MainPattern &&
			days[i].VolumeTarget == models.TargetHigh && days[i-1].VolumeTarget == models.TargetHigh {
			days[i].VolumeTarget = models.TargetMedium
		}
	}

	// Conservative week: deload on top of a high ACWR zone floors every
	// day, overriding all per-day computation above.
	if phase == models.PhaseDeload && fatigue.ACWRZone == models.ZoneHigh {
		for i := range days {
			days[i].VolumeTarget = models.TargetLow
			days[i].IntensityTarget = models.TargetLow
			if days[i].ConditioningTarget == models.ConditioningIntensity {
				days[i].ConditioningTarget = models.ConditioningMixed
			} else {
				days[i].ConditioningTarget = models.ConditioningLight
			}
		}
	}

	return models.WeeklyStructure{
		WeekStartISO: weekStart.Format("2006-01-02"),
		Days:         days,
		Phase:        phase,
		Metadata: models.WeeklyMetadata{
			ReadinessScore:      readiness.Score,
			Fatigue:             fatigue,
			TrainingDaysPerWeek: trainingDays,
		},
	}
}

// SafeBuildWeeklyStructure is the store-boundary wrapper: any panic in
// the builder is logged and replaced with a neutral default structure.
// Regeneration is best-effort and must never surface an error.
func SafeBuildWeeklyStructure(readiness models.ReadinessAnalysis, fatigue models.FatigueAnalysis, trainingDays int, weekStart time.Time, phase models.PhaseType, log *slog.Logger) (ws models.WeeklyStructure) {
	defer func() {
		if r := recover(); r != nil {
			if log != nil {
				log.Error("weekly structure build failed", "error", fmt.Sprint(r))
			}
			ws = NeutralWeeklyStructure(weekStart)
		}
	}()
	return BuildWeeklyStructure(readiness, fatigue, trainingDays, weekStart, phase)
}

// NeutralWeeklyStructure is the hardcoded fallback used when building fails.
func NeutralWeeklyStructure(weekStart time.Time) models.WeeklyStructure {
	return models.WeeklyStructure{
		WeekStartISO: weekStart.Format("2006-01-02"),
		Days:         nil,
		Phase:        models.PhaseAccumulation,
		Metadata: models.WeeklyMetadata{
			ReadinessScore:      defaultScore,
			TrainingDaysPerWeek: 4,
		},
	}
}

func baseTargets(cat models.ReadinessCategory) (models.TargetLevel, models.TargetLevel) {
	switch cat {
	case models.ReadinessLow:
		return models.TargetLow, models.TargetLow
	case models.ReadinessHigh:
		return models.TargetHigh, models.TargetHigh
	default:
		return models.TargetMedium, models.TargetMedium
	}
}

func applyPhaseBias(volume, intensity models.TargetLevel, phase models.PhaseType) (models.TargetLevel, models.TargetLevel) {
	switch phase {
	case models.PhaseDeload:
		return volume.StepDown(), intensity.StepDown()
	case models.PhaseAccumulation:
		return volume.StepUp(), intensity
	case models.PhaseIntensification:
		return volume, intensity.StepUp()
	default:
		return volume, intensity
	}
}

func baseConditioning(cat models.ReadinessCategory, phase models.PhaseType) models.ConditioningTarget {
	if cat == models.ReadinessLow || phase == models.PhaseDeload {
		return models.ConditioningLight
	}
	return models.ConditioningMixed
}

// orderPatterns sorts the core patterns fatigue-ascending, pushing any
// pattern at or above the protection threshold to the back. Returns the
// order and the protected set.
func orderPatterns(fatigue models.FatigueAnalysis) ([]models.MovementPattern, map[models.MovementPattern]bool) {
	ordered := make([]models.MovementPattern, len(basePatternOrder))
	copy(ordered, basePatternOrder)
	protected := map[models.MovementPattern]bool{}
	for _, p := range ordered {
		if fatigue.ForPattern(p) >= fatigueProtected {
			protected[p] = true
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		pi, pj := protected[ordered[i]], protected[ordered[j]]
		if pi != pj {
			return !pi // protected patterns sort last
		}
		return fatigue.ForPattern(ordered[i]) < fatigue.ForPattern(ordered[j])
	})
	return ordered, protected
}

// pickPattern returns the pattern for strength day i, substituting the
// next unprotected pattern when the rotation would repeat a protected one.
func pickPattern(ordered []models.MovementPattern, protected map[models.MovementPattern]bool, used map[models.MovementPattern]int, i int) models.MovementPattern {
	candidate := ordered[i%len(ordered)]
	if !protected[candidate] || used[candidate] == 0 {
		return candidate
	}
	for _, p := range ordered {
		if !protected[p] {
			return p
		}
	}
	return candidate
}

func buildDay(weekStart time.Time, offset int, pattern models.MovementPattern, category string,
	volume, intensity models.TargetLevel, conditioning models.ConditioningTarget, phase models.PhaseType,
	readiness models.ReadinessAnalysis, fatigue models.FatigueAnalysis, isProtected bool) models.WeeklyDayStructure {

	date := weekStart.AddDate(0, 0, offset)
	day := models.WeeklyDayStructure{
		DateISO:            date.Format("2006-01-02"),
		DayOfWeek:          date.Weekday(),
		MainPattern:        pattern,
		MainLiftCategory:   category,
		VolumeTarget:       volume,
		IntensityTarget:    intensity,
		ConditioningTarget: conditioning,
		Phase:              phase,
	}

	pf := fatigue.ForPattern(pattern)

	// Per-day fatigue overrides take precedence over the phase bias.
	if pf >= fatigueForceLowVolume {
		day.VolumeTarget = models.TargetLow
	}
	if pf >= fatigueForceLowIntensity {
		day.IntensityTarget = models.TargetLow
	}
	if pf >= fatigueProtected || isProtected {
		day.FatigueProtected = true
		day.ConditioningTarget = models.ConditioningLight
	}

	// Fresh pattern on a high-readiness building week may step up, but a
	// protected day never does.
	if pf < fatigueFresh && readiness.Category == models.ReadinessHigh &&
		phase != models.PhaseDeload && !day.FatigueProtected {
		switch phase {
		case models.PhaseAccumulation:
			day.VolumeTarget = models.TargetHigh
		case models.PhaseIntensification:
			day.IntensityTarget = models.TargetHigh
		}
	}

	return day
}
