package prefs

import "math"

// DefaultManualDifficulty is the value difficulty takes when switching from
// automatic to manual mode.
const DefaultManualDifficulty = 0.5

// stepEpsilon absorbs float noise when comparing step distances.
const stepEpsilon = 1e-9

// DifficultyStep is one of the labeled manual difficulty levels.
type DifficultyStep struct {
	Value float64
	Label string
}

var difficultySteps = []DifficultyStep{
	{Value: 0.2, Label: "Easy"},
	{Value: 0.4, Label: "Medium"},
	{Value: 0.6, Label: "Hard"},
	{Value: 0.8, Label: "Expert"},
}

// DifficultySteps returns the manual difficulty steps from easiest to hardest.
func DifficultySteps() []DifficultyStep {
	out := make([]DifficultyStep, len(difficultySteps))
	copy(out, difficultySteps)
	return out
}

// IsDifficultyStep reports whether v is one of the catalog step values.
func IsDifficultyStep(v float64) bool {
	for _, s := range difficultySteps {
		if math.Abs(s.Value-v) < stepEpsilon {
			return true
		}
	}
	return false
}

// ActiveDifficultyStep returns the step to highlight for d. Bands are
// contiguous: the nearest step wins and an exact tie goes to the easier step,
// so the 0.5 midpoint highlights Medium. Automatic mode (nil) highlights
// nothing.
func ActiveDifficultyStep(d *float64) (DifficultyStep, bool) {
	if d == nil {
		return DifficultyStep{}, false
	}
	best := difficultySteps[0]
	bestDist := math.Abs(*d - best.Value)
	for _, s := range difficultySteps[1:] {
		dist := math.Abs(*d - s.Value)
		if dist < bestDist-stepEpsilon {
			best, bestDist = s, dist
		}
	}
	return best, true
}

// DifficultyLabel returns "Auto" for automatic mode, otherwise the label of
// the highlighted step.
func DifficultyLabel(d *float64) string {
	step, ok := ActiveDifficultyStep(d)
	if !ok {
		return "Auto"
	}
	return step.Label
}
