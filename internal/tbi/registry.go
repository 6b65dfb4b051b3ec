package tbi

import "fmt"

// Indicator declares one named scoring function: a stable key, a display
// label, the inclusive upper bound of its score, and the computation mapping
// a feature bundle to a value. Indicators are declared once, in report
// order; the key set is a versioned contract with external consumers.
// Adding an indicator is additive; renaming or removing a key is a breaking
// change.
type Indicator struct {
	Key   string
	Label string
	Max   int

	compute func(f *Features) Value
}

// Score bounds by reduction class. Master-preserving reductions top out at
// 33, double reductions at 22, single-digit reductions at 9.
const (
	maxMaster = 33
	maxDouble = 22
	maxSingle = 9

	// maxComponentDiff bounds the absolute difference of two single digits.
	maxComponentDiff = 8

	// maxMilestone bounds cycle milestones: the first cycle ends no later
	// than age 35 and the fourth runs 27 years beyond it.
	maxMilestone = 62
)

// registry declares every indicator in report order.
var registry = []Indicator{
	{Key: "PPA", Label: "Path Potential Alignment", Max: maxMaster, compute: computePPA},
	{Key: "SPI", Label: "Skill Potential Index", Max: maxMaster, compute: computeSPI},
	{Key: "CMI", Label: "Crisis Management Index", Max: maxSingle, compute: computeCMI},
	{Key: "EDI", Label: "Emotional Drive Index", Max: maxMaster, compute: computeEDI},
	{Key: "MPI", Label: "Market Persona Index", Max: maxMaster, compute: computeMPI},
	{Key: "NEI", Label: "Natural Edge Index", Max: maxDouble, compute: computeNEI},
	{Key: "SSI", Label: "Subconscious Stability Index", Max: maxSingle, compute: computeSSI},
	{Key: "RI", Label: "Resilience Index", Max: maxMaster, compute: computeRI},
	{Key: "WMI", Label: "Weakness Map Index", Max: maxSingle, compute: computeWMI},
	{Key: "BLI", Label: "Behavioral Liability Index", Max: 1, compute: computeBLI},
	{Key: "SAI", Label: "Strength Amplifier Index", Max: maxSingle, compute: computeSAI},
	{Key: "PPAI", Label: "Path-Potential Alignment Index", Max: maxDouble, compute: computePPAI},
	{Key: "IOCI", Label: "Inner-Outer Coherence Index", Max: maxSingle, compute: computeIOCI},
	{Key: "TCI", Label: "Trading Cycle Index", Max: maxDouble, compute: computeTCI},
	{Key: "CII", Label: "Cohort Influence Index", Max: maxMaster, compute: computeCII},
	{Key: "TAI", Label: "Trading Attitude Index", Max: maxSingle, compute: computeTAI},
	{Key: "BCI", Label: "Behavioral Challenge Index", Max: maxComponentDiff, compute: computeBCI},
	{Key: "ARI", Label: "Analytical Reasoning Index", Max: maxMaster, compute: computeARI},
	{Key: "ATC", Label: "Age Trading Cycle", Max: maxMilestone, compute: computeATC},
	{Key: "AMI", Label: "Annual Momentum Index", Max: maxSingle, compute: computeAMI},
	{Key: "MRI", Label: "Monthly Rhythm Index", Max: maxSingle, compute: computeMRI},
	{Key: "DAI", Label: "Daily Alignment Index", Max: maxSingle, compute: computeDAI},
}

// Keys lists every declared indicator key in report order.
func Keys() []string {
	keys := make([]string, len(registry))
	for i, ind := range registry {
		keys[i] = ind.Key
	}
	return keys
}

// Lookup returns the indicator declaration for key.
func Lookup(key string) (Indicator, error) {
	for _, ind := range registry {
		if ind.Key == key {
			return ind, nil
		}
	}
	return Indicator{}, &UnsupportedIndicatorDomainError{
		Indicator: key,
		Reason:    "no scoring function declared",
	}
}

// finalize stamps the declared key, label and bound onto a computed value,
// clamping the score into [0, Max].
func (ind Indicator) finalize(v Value) Value {
	v.Key = ind.Key
	v.Label = ind.Label
	v.Max = ind.Max
	v.Score = clamp(v.Score, 0, ind.Max)
	return v
}

func phaseExplanation(f *Features) string {
	return fmt.Sprintf("cycle %d of 4 at age %d", f.cyclePhase(), f.Age)
}
