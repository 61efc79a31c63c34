package models

// MovementPattern is the biomechanical category of an exercise or block.
type MovementPattern string

const (
	PatternSquat MovementPattern = "squat"
	PatternHinge MovementPattern = "hinge"
	PatternPush  MovementPattern = "push"
	PatternPull  MovementPattern = "pull"
	PatternLunge MovementPattern = "lunge"
	PatternCarry MovementPattern = "carry"
	PatternCore  MovementPattern = "core"
	PatternCond  MovementPattern = "conditioning"
)

// CorePatterns are the four patterns tracked for fatigue and weekly rotation.
var CorePatterns = []MovementPattern{PatternSquat, PatternHinge, PatternPush, PatternPull}

// PhaseType is a multi-week periodization phase.
type PhaseType string

const (
	PhaseAccumulation    PhaseType = "accumulation"
	PhaseIntensification PhaseType = "intensification"
	PhaseDeload          PhaseType = "deload"
)

// TargetLevel is a coarse volume or intensity target for one training day.
type TargetLevel string

const (
	TargetLow    TargetLevel = "low"
	TargetMedium TargetLevel = "medium"
	TargetHigh   TargetLevel = "high"
)

// StepUp returns the next level up, bounded at high.
func (t TargetLevel) StepUp() TargetLevel {
	switch t {
	case TargetLow:
		return TargetMedium
	case TargetMedium:
		return TargetHigh
	default:
		return TargetHigh
	}
}

// StepDown returns the next level down, bounded at low.
func (t TargetLevel) StepDown() TargetLevel {
	switch t {
	case TargetHigh:
		return TargetMedium
	case TargetMedium:
		return TargetLow
	default:
		return TargetLow
	}
}

// ConditioningTarget is the conditioning emphasis for one training day.
type ConditioningTarget string

const (
	ConditioningLight     ConditioningTarget = "light"
	ConditioningMixed     ConditioningTarget = "mixed"
	ConditioningIntensity ConditioningTarget = "intensity"
)

// ReadinessCategory buckets a 0-100 recovery score.
type ReadinessCategory string

const (
	ReadinessLow      ReadinessCategory = "low"
	ReadinessModerate ReadinessCategory = "moderate"
	ReadinessHigh     ReadinessCategory = "high"
)

// ACWRZone classifies the raw acute:chronic workload ratio.
// Note this operates on the 0.5-2.5 ratio scale, not the 0-100
// ACWR fatigue score.
type ACWRZone string

const (
	ZoneUnder   ACWRZone = "under"
	ZoneOptimal ACWRZone = "optimal"
	ZoneHigh    ACWRZone = "high"
)

// Goal is the user's overall training goal.
type Goal string

const (
	GoalStrength     Goal = "strength"
	GoalHybrid       Goal = "hybrid"
	GoalConditioning Goal = "conditioning"
	GoalGeneral      Goal = "general"
)

// Experience is the user's training experience level.
type Experience string

const (
	ExperienceBeginner     Experience = "beginner"
	ExperienceIntermediate Experience = "intermediate"
	ExperienceAdvanced     Experience = "advanced"
)

// BlockKind discriminates the payload carried by a WorkoutBlock.
type BlockKind string

const (
	BlockWarmup       BlockKind = "warmup"
	BlockStrength     BlockKind = "strength"
	BlockAccessory    BlockKind = "accessory"
	BlockConditioning BlockKind = "conditioning"
	BlockCooldown     BlockKind = "cooldown"
)

// SetDifficulty is the user's explicit rating of a completed set.
type SetDifficulty string

const (
	DifficultyTooEasy SetDifficulty = "too_easy"
	DifficultyGood    SetDifficulty = "good"
	DifficultyTooHard SetDifficulty = "too_hard"
)
