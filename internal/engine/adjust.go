package engine

import "github.com/claude/liftwise/internal/models"

// Adjustment is the session-start metadata shown to the user.
// Modified is false only in the no-op band, where the returned blocks
// match the prescription unchanged.
type Adjustment struct {
	Level    string `json:"level"`
	Reason   string `json:"reason"`
	Modified bool   `json:"modified"`
}

// AdjustForRecovery applies the same-day correction to a generated
// day's blocks based on the current recovery score. The input blocks
// are never mutated; the returned slice is a full copy with the
// strength prescriptions rebuilt. Bands are mutually exclusive:
// below 40 drops the last set and pulls RPE hard, 40-69 pulls RPE one
// notch, 70-80 is the no-op band, above 80 adds a back-off set and
// raises RPE.
func AdjustForRecovery(score float64, blocks []models.WorkoutBlock) ([]models.WorkoutBlock, Adjustment) {
	out := cloneBlocks(blocks)

	switch {
	case score < 40:
		for i := range out {
			sp := out[i].Strength
			if sp == nil || len(sp.Sets) == 0 {
				continue
			}
			if len(sp.Sets) > 1 {
				sp.Sets = sp.Sets[:len(sp.Sets)-1]
			}
			for j := range sp.Sets {
				sp.Sets[j].TargetRPE = maxf(sp.Sets[j].TargetRPE-2, minRPE)
			}
		}
		return out, Adjustment{Level: "under", Reason: "Low recovery: reduced sets and effort", Modified: true}

	case score < 70:
		for i := range out {
			sp := out[i].Strength
			if sp == nil {
				continue
			}
			for j := range sp.Sets {
				sp.Sets[j].TargetRPE = maxf(sp.Sets[j].TargetRPE-1, minRPE)
			}
		}
		return out, Adjustment{Level: "moderate", Reason: "Moderate recovery: effort pulled back one notch", Modified: true}

	case score <= 80:
		return out, Adjustment{Level: "moderate", Reason: "Normal recovery"}

	default:
		for i := range out {
			sp := out[i].Strength
			if sp == nil || len(sp.Sets) == 0 {
				continue
			}
			for j := range sp.Sets {
				sp.Sets[j].TargetRPE = minf(sp.Sets[j].TargetRPE+1, maxRPE)
			}
			last := sp.Sets[len(sp.Sets)-1]
			sp.Sets = append(sp.Sets, models.SetPrescription{
				TargetReps:       last.TargetReps,
				TargetRPE:        maxf(last.TargetRPE-2, minRPE),
				TargetPercent1RM: last.TargetPercent1RM,
			})
		}
		return out, Adjustment{Level: "high", Reason: "High recovery: added a back-off set", Modified: true}
	}
}

// cloneBlocks is the explicit copy behind the never-mutate-the-plan
// invariant. Typed field-by-field copies, no serialization round-trip.
func cloneBlocks(blocks []models.WorkoutBlock) []models.WorkoutBlock {
	out := make([]models.WorkoutBlock, len(blocks))
	for i, b := range blocks {
		nb := b
		if b.Items != nil {
			nb.Items = append([]string(nil), b.Items...)
		}
		if b.Strength != nil {
			sp := *b.Strength
			sp.Sets = append([]models.SetPrescription(nil), b.Strength.Sets...)
			nb.Strength = &sp
		}
		if b.Accessories != nil {
			nb.Accessories = append([]models.AccessoryItem(nil), b.Accessories...)
		}
		if b.Conditioning != nil {
			cp := *b.Conditioning
			nb.Conditioning = &cp
		}
		out[i] = nb
	}
	return out
}
