package tbi

// Scoring functions, one per declared indicator. Each maps the primitive
// feature bundle to a raw value; the registry clamps into the declared
// range. Formula composition mirrors the indicator definitions: the path
// number feeds RI, PPAI and the cycle milestones, the soul and persona
// numbers feed IOCI.

// Category values for the Behavioral Liability Index.
const (
	CategoryKarmicDebt = "karmic_debt"
	CategoryClear      = "clear"
)

func pathNumber(f *Features) int {
	return reduceMasters(f.DayR + f.MonthR + f.YearR)
}

func skillNumber(f *Features) int {
	return reduceMasters(f.nameSum())
}

// soulNumber reduces each name word's vowel sum before combining, so a
// word-level master number survives into the total.
func soulNumber(f *Features) int {
	sum := 0
	for _, part := range f.Parts {
		sum += reduceMasters(vowelSum(part))
	}
	return reduceMasters(sum)
}

func personaNumber(f *Features) int {
	sum := 0
	for _, part := range f.Parts {
		sum += reduceMasters(consonantSum(part))
	}
	return reduceMasters(sum)
}

func computePPA(f *Features) Value {
	return Value{Score: pathNumber(f)}
}

func computeSPI(f *Features) Value {
	return Value{Score: skillNumber(f)}
}

func computeCMI(f *Features) Value {
	return Value{Score: reduceSingle(f.firstLetterSum())}
}

func computeEDI(f *Features) Value {
	return Value{Score: soulNumber(f)}
}

func computeMPI(f *Features) Value {
	return Value{Score: personaNumber(f)}
}

func computeNEI(f *Features) Value {
	return Value{Score: reduceMasters(f.Day)}
}

func computeSSI(f *Features) Value {
	return Value{Score: 9 - len(f.missingDigits())}
}

func computeRI(f *Features) Value {
	return Value{Score: reduceMasters(pathNumber(f) + skillNumber(f))}
}

func computeWMI(f *Features) Value {
	missing := f.missingDigits()
	return Value{Score: len(missing), Set: missing}
}

// computeBLI flags a karmic debt when either the raw birth-date digit sum
// or the raw name sum lands on a karmic number.
func computeBLI(f *Features) Value {
	dobSum := digitSum(f.Day) + digitSum(f.Month) + digitSum(f.Year)
	if karmicNumbers[dobSum] || karmicNumbers[f.nameSum()] {
		return Value{Score: 1, Category: CategoryKarmicDebt}
	}
	return Value{Score: 0, Category: CategoryClear}
}

func computeSAI(f *Features) Value {
	dominant := f.dominantDigits()
	score := 0
	if len(dominant) > 0 {
		score = dominant[0]
	}
	return Value{Score: score, Set: dominant}
}

func computePPAI(f *Features) Value {
	return Value{Score: reduceDouble(abs(pathNumber(f) - skillNumber(f)))}
}

func computeIOCI(f *Features) Value {
	soul := collapseMaster(soulNumber(f))
	return Value{Score: reduceSingle(abs(soul - personaNumber(f)))}
}

// tradingCycles derives the four cycle values from double-reduced date
// components: month+day, day+year, their combination, and month+year.
func tradingCycles(f *Features) [4]int {
	day := reduceDouble(f.Day)
	month := reduceDouble(f.Month)
	year := reduceDouble(f.Year)

	c1 := reduceDouble(month + day)
	c2 := reduceDouble(day + year)
	c3 := reduceDouble(c1 + c2)
	c4 := reduceDouble(month + year)
	return [4]int{c1, c2, c3, c4}
}

func computeTCI(f *Features) Value {
	cycles := tradingCycles(f)
	return Value{
		Score:       cycles[f.cyclePhase()-1],
		Set:         cycles[:],
		Explanation: phaseExplanation(f),
	}
}

func computeCII(f *Features) Value {
	return Value{Score: reduceMasters(digitSum(f.Year))}
}

func computeTAI(f *Features) Value {
	return Value{Score: reduceSingle(digitSum(f.Day) + digitSum(f.Month))}
}

// challengeCycles derives the four challenge values from single-digit date
// component differences.
func challengeCycles(f *Features) [4]int {
	c1 := abs(f.DayS - f.MonthS)
	c2 := abs(f.DayS - f.YearS)
	c3 := abs(c1 - c2)
	c4 := abs(f.MonthS - f.YearS)
	return [4]int{c1, c2, c3, c4}
}

func computeBCI(f *Features) Value {
	cycles := challengeCycles(f)
	return Value{
		Score:       cycles[f.cyclePhase()-1],
		Set:         cycles[:],
		Explanation: phaseExplanation(f),
	}
}

func computeARI(f *Features) Value {
	return Value{Score: reduceMasters(f.Day + f.givenNameSum())}
}

func computeATC(f *Features) Value {
	milestones := f.cycleMilestones()
	return Value{
		Score:       milestones[f.cyclePhase()-1],
		Set:         milestones[:],
		Explanation: phaseExplanation(f),
	}
}

func computeAMI(f *Features) Value {
	return Value{Score: f.personalYear()}
}

func computeMRI(f *Features) Value {
	return Value{Score: reduceSingle(f.RefMonth + f.personalYear())}
}

func computeDAI(f *Features) Value {
	return Value{Score: reduceSingle(f.RefDay + f.RefMonth + f.personalYear())}
}
