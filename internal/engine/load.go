package engine

import (
	"math"
	"sort"
	"time"

	"github.com/claude/liftwise/internal/models"
)

// Load analytics constants. Volumes are normalized against an assumed
// weekly ceiling; windows follow the standard ACWR 7/28-day split.
const (
	assumedMaxVolume = 50000.0

	acuteWindowDays   = 7
	chronicStartDays  = 7  // chronic window starts where the acute one ends
	chronicWindowDays = 34 // inclusive upper bound, days ago
	chronicHalfLife   = 7.0

	acwrRatioMin = 0.5
	acwrRatioMax = 2.5

	recentWorkoutSample = 3

	restFatigueMinSec = 60.0
	restFatigueMaxSec = 180.0
)

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

// daysAgo returns the whole calendar days between the record's day and now's day.
func daysAgo(now time.Time, t time.Time) int {
	nowDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return int(nowDay.Sub(day).Hours() / 24)
}

// sortedByDateDesc returns history ordered most recent first. The history
// store guarantees insertion order only, so sorting happens here.
func sortedByDateDesc(history []models.WorkoutRecord) []models.WorkoutRecord {
	out := make([]models.WorkoutRecord, len(history))
	copy(out, history)
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

// AcuteLoad is the time-decayed weighted mean of session volume over the
// last 7 days inclusive (today weighted 8, six days ago weighted 1,
// linear in between), normalized to 0-100 against assumedMaxVolume.
func AcuteLoad(history []models.WorkoutRecord, now time.Time) float64 {
	var weighted, weights float64
	for _, w := range history {
		age := daysAgo(now, w.Date)
		if age < 0 || age >= acuteWindowDays {
			continue
		}
		wt := 8.0 - float64(age)*7.0/6.0
		weighted += w.TotalVolume * wt
		weights += wt
	}
	if weights == 0 {
		return 0
	}
	return clamp(weighted/weights/assumedMaxVolume*100, 0, 100)
}

// ChronicLoad is the baseline load over days 7-34 ago (the acute window
// excluded), weighted by exponential decay with a 7-day half-life and
// normalized the same way as AcuteLoad.
func ChronicLoad(history []models.WorkoutRecord, now time.Time) float64 {
	var weighted, weights float64
	for _, w := range history {
		age := daysAgo(now, w.Date)
		if age < chronicStartDays || age > chronicWindowDays {
			continue
		}
		wt := math.Pow(0.5, float64(age-chronicStartDays)/chronicHalfLife)
		weighted += w.TotalVolume * wt
		weights += wt
	}
	if weights == 0 {
		return 0
	}
	return clamp(weighted/weights/assumedMaxVolume*100, 0, 100)
}

// ACWRRatio returns the raw acute:chronic ratio. A chronic load under 1
// means no baseline exists and the ratio is reported as 0.
func ACWRRatio(acute, chronic float64) float64 {
	if chronic < 1 {
		return 0
	}
	return acute / chronic
}

// ACWRFatigue rescales the raw ratio to a 0-100 fatigue score: the ratio
// is clamped to [0.5, 2.5] and mapped linearly (0.5 -> 0, 2.5 -> 100).
func ACWRFatigue(acute, chronic float64) float64 {
	ratio := ACWRRatio(acute, chronic)
	if ratio == 0 {
		return 0
	}
	ratio = clamp(ratio, acwrRatioMin, acwrRatioMax)
	return (ratio - acwrRatioMin) / (acwrRatioMax - acwrRatioMin) * 100
}

// MovementPatternFatigue scores 0-100 fatigue for each core pattern from
// the most recent 3 workouts containing a block of that pattern. Per
// workout the score blends pattern volume (capped at 50) with the
// session's intensity score (scaled to 50).
func MovementPatternFatigue(history []models.WorkoutRecord) map[models.MovementPattern]float64 {
	recent := sortedByDateDesc(history)
	out := make(map[models.MovementPattern]float64, len(models.CorePatterns))

	for _, pattern := range models.CorePatterns {
		var sum float64
		var n int
		for _, w := range recent {
			var patternVolume float64
			matched := false
			for _, b := range w.Blocks {
				if p, ok := BlockPattern(b); ok && p == pattern {
					matched = true
					patternVolume += b.Volume
				}
			}
			if !matched {
				continue
			}
			volumeScore := math.Min(50, patternVolume/10000*50)
			intensityScore := w.IntensityScore / 100 * 50
			sum += volumeScore + intensityScore
			n++
			if n == recentWorkoutSample {
				break
			}
		}
		if n == 0 {
			out[pattern] = 0
			continue
		}
		out[pattern] = clamp(sum/float64(n), 0, 100)
	}
	return out
}

// IntensityFatigue blends average RPE and density score over the most
// recent 3 workouts, each component scaled to half the 0-100 range.
func IntensityFatigue(history []models.WorkoutRecord) float64 {
	recent := sortedByDateDesc(history)
	var sum float64
	var n int
	for _, w := range recent {
		sum += w.AvgRPE/10*50 + w.DensityScore/100*50
		n++
		if n == recentWorkoutSample {
			break
		}
	}
	if n == 0 {
		return 0
	}
	return clamp(sum/float64(n), 0, 100)
}

// RestFatigue maps the average rest per completed set over the most
// recent 3 workouts linearly from 60s (0 fatigue) to 180s (100 fatigue).
// Long rests read as a sign the lifter needed more recovery between sets.
func RestFatigue(history []models.WorkoutRecord) float64 {
	recent := sortedByDateDesc(history)
	var sum float64
	var n int
	for _, w := range recent {
		sum += w.AvgRestSec
		n++
		if n == recentWorkoutSample {
			break
		}
	}
	if n == 0 {
		return 0
	}
	avg := sum / float64(n)
	return clamp((avg-restFatigueMinSec)/(restFatigueMaxSec-restFatigueMinSec)*100, 0, 100)
}

// RecoveryScore combines the fatigue components into one 0-100 score:
// 100 - (0.3*acwr + 0.3*avgPattern + 0.2*intensity + 0.2*rest), rounded.
// An empty history means a fully fresh athlete: exactly 100 with a
// zeroed breakdown.
func RecoveryScore(history []models.WorkoutRecord, now time.Time) models.ReadinessAnalysis {
	if len(history) == 0 {
		return models.ReadinessAnalysis{
			Score:    100,
			Category: models.ReadinessHigh,
			Breakdown: models.RecoveryBreakdown{
				PatternFatigue: map[string]float64{},
			},
		}
	}

	acute := AcuteLoad(history, now)
	chronic := ChronicLoad(history, now)
	acwrFatigue := ACWRFatigue(acute, chronic)

	patterns := MovementPatternFatigue(history)
	var patternSum float64
	for _, v := range patterns {
		patternSum += v
	}
	avgPattern := patternSum / float64(len(models.CorePatterns))

	intensity := IntensityFatigue(history)
	rest := RestFatigue(history)

	score := 100 - (0.3*acwrFatigue + 0.3*avgPattern + 0.2*intensity + 0.2*rest)
	score = clamp(math.Round(score), 0, 100)

	breakdown := models.RecoveryBreakdown{
		ACWRFatigue:      acwrFatigue,
		PatternFatigue:   map[string]float64{},
		IntensityFatigue: intensity,
		RestFatigue:      rest,
	}
	for p, v := range patterns {
		breakdown.PatternFatigue[string(p)] = v
	}

	return models.ReadinessAnalysis{
		Score:     score,
		Category:  ClassifyReadiness(&score),
		Breakdown: breakdown,
	}
}
