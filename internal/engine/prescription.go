package engine

import "github.com/claude/liftwise/internal/models"

// wave is one row of the base periodization table.
type wave struct {
	Label   string
	Sets    int
	Reps    int
	RPE     float64
	Percent float64
}

// waveTable indexes base prescriptions by experience level and
// dayIndex mod 4. The four waves cycle volume, load, and a reset.
var waveTable = map[models.Experience][4]wave{
	models.ExperienceBeginner: {
		{Label: "Base", Sets: 3, Reps: 5, RPE: 7, Percent: 0.70},
		{Label: "Volume", Sets: 3, Reps: 8, RPE: 7, Percent: 0.65},
		{Label: "Load", Sets: 3, Reps: 5, RPE: 7.5, Percent: 0.725},
		{Label: "Reset", Sets: 2, Reps: 5, RPE: 6, Percent: 0.60},
	},
	models.ExperienceIntermediate: {
		{Label: "Base", Sets: 4, Reps: 5, RPE: 7.5, Percent: 0.75},
		{Label: "Volume", Sets: 4, Reps: 8, RPE: 7.5, Percent: 0.70},
		{Label: "Load", Sets: 4, Reps: 3, RPE: 8, Percent: 0.80},
		{Label: "Reset", Sets: 3, Reps: 5, RPE: 6.5, Percent: 0.65},
	},
	models.ExperienceAdvanced: {
		{Label: "Base", Sets: 5, Reps: 5, RPE: 8, Percent: 0.775},
		{Label: "Volume", Sets: 5, Reps: 8, RPE: 8, Percent: 0.72},
		{Label: "Load", Sets: 5, Reps: 3, RPE: 8.5, Percent: 0.825},
		{Label: "Reset", Sets: 4, Reps: 5, RPE: 7, Percent: 0.675},
	},
}

// Prescription bounds.
const (
	minSets = 2
	maxSets = 6
	minRPE  = 5.0
	maxRPE  = 10.0
)

func baseWave(dayIndex int, level models.Experience) wave {
	table, ok := waveTable[level]
	if !ok {
		table = waveTable[models.ExperienceIntermediate]
	}
	return table[((dayIndex%4)+4)%4]
}

// buildPrescription derives the strength prescription numbers for one
// day: the wave table base, then the weekly-structure adjustments, then
// the deload and fatigue-protection hard overrides, each independently
// bounded.
func buildPrescription(dayIndex int, level models.Experience, day *models.WeeklyDayStructure) (sets int, reps int, rpe float64, percent float64, label string) {
	w := baseWave(dayIndex, level)
	sets, reps, rpe, percent, label = w.Sets, w.Reps, w.RPE, w.Percent, w.Label
	if day == nil {
		return
	}

	switch day.VolumeTarget {
	case models.TargetLow:
		sets -= 2
		if sets < minSets {
			sets = minSets
		}
	case models.TargetHigh:
		sets++
		if sets > maxSets {
			sets = maxSets
		}
	}

	switch day.IntensityTarget {
	case models.TargetLow:
		rpe = maxf(rpe-1, minRPE)
		percent = maxf(percent-0.05, 0.5)
		if day.VolumeTarget == models.TargetLow {
			rpe = maxf(rpe-1, minRPE)
			percent = maxf(percent-0.05, 0.5)
		}
	case models.TargetHigh:
		rpe = minf(rpe+1, maxRPE)
		percent = minf(percent+0.05, 1.0)
	}

	if day.Phase == models.PhaseDeload {
		sets = 2
		rpe = clamp(rpe, 5, 6)
		percent = clamp(percent-0.10, 0.5, 0.7)
	}

	if day.FatigueProtected {
		sets = clampInt(sets, 2, 3)
		rpe = clamp(rpe, 5, 6)
		percent = clamp(percent-0.10, 0.5, 0.65)
	}

	// Reinforcement nudges, each applied only with headroom remaining.
	if day.Phase == models.PhaseDeload && !day.FatigueProtected {
		if sets > minSets {
			sets--
		}
		rpe = maxf(rpe-1, minRPE)
		percent = maxf(percent-0.05, 0.5)
	}
	if day.Phase == models.PhaseIntensification && day.IntensityTarget == models.TargetHigh {
		if rpe < maxRPE {
			rpe = minf(rpe+1, maxRPE)
		}
		if percent < 1.0 {
			percent = minf(percent+0.03, 1.0)
		}
	}
	if day.Phase == models.PhaseAccumulation && day.VolumeTarget == models.TargetHigh && sets < maxSets {
		sets++
	}

	return
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
