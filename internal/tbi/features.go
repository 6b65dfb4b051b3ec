package tbi

import (
	"sort"
	"strings"
)

// Features is the primitive feature bundle every scoring function draws
// from: letter values of the normalized name, reduced birth-date components,
// and the reference-date cycle position. Deriving it once up front keeps the
// per-indicator functions small and free of repeated parsing.
type Features struct {
	Name  string
	Parts []string // whitespace-separated name words, normalized

	LetterValues []int // Pythagorean value per scorable letter, spaces removed

	Day, Month, Year int // birth-date components

	DayR, MonthR, YearR int // master-preserving reductions
	DayS, MonthS, YearS int // single-digit reductions

	RefDay, RefMonth, RefYear int

	Age int // full years at the reference date
}

// NewFeatures derives the feature bundle from a validated profile. It fails
// with UnsupportedIndicatorDomainError when the normalized name contains no
// scorable letters, since every name-derived formula is undefined then.
func NewFeatures(p Profile) (*Features, error) {
	f := &Features{
		Name:  p.Name,
		Parts: strings.Fields(p.Name),

		Day:   p.DateOfBirth.Day(),
		Month: int(p.DateOfBirth.Month()),
		Year:  p.DateOfBirth.Year(),

		RefDay:   p.ReferenceDate.Day(),
		RefMonth: int(p.ReferenceDate.Month()),
		RefYear:  p.ReferenceDate.Year(),

		Age: p.Age(),
	}

	for _, r := range f.Name {
		if v := letterValue(r); v > 0 {
			f.LetterValues = append(f.LetterValues, v)
		}
	}
	if len(f.LetterValues) == 0 {
		return nil, &UnsupportedIndicatorDomainError{
			Indicator: "SPI",
			Reason:    "name contains no scorable letters",
		}
	}

	f.DayR = reduceMasters(f.Day)
	f.MonthR = reduceMasters(f.Month)
	f.YearR = reduceMasters(f.Year)

	f.DayS = reduceSingle(f.Day)
	f.MonthS = reduceSingle(f.Month)
	f.YearS = reduceSingle(f.Year)

	return f, nil
}

// nameSum is the total letter value of the full name.
func (f *Features) nameSum() int {
	sum := 0
	for _, v := range f.LetterValues {
		sum += v
	}
	return sum
}

// firstLetterSum adds the value of each name word's initial letter.
func (f *Features) firstLetterSum() int {
	sum := 0
	for _, part := range f.Parts {
		for _, r := range part {
			sum += letterValue(r)
			break
		}
	}
	return sum
}

// givenNameSum is the letter-value total of the given name, which by
// convention is the final name word.
func (f *Features) givenNameSum() int {
	if len(f.Parts) == 0 {
		return 0
	}
	sum := 0
	for _, r := range f.Parts[len(f.Parts)-1] {
		sum += letterValue(r)
	}
	return sum
}

// isVowel reports whether r acts as a vowel within word. Y counts as a
// vowel only when its word contains no other vowel.
func isVowel(r rune, word string) bool {
	switch r {
	case 'A', 'E', 'I', 'O', 'U':
		return true
	case 'Y':
		return !strings.ContainsAny(word, "AEIOU")
	}
	return false
}

// vowelSum adds the letter values of the vowels in word.
func vowelSum(word string) int {
	sum := 0
	for _, r := range word {
		if isVowel(r, word) {
			sum += letterValue(r)
		}
	}
	return sum
}

// consonantSum adds the letter values of the non-vowel letters in word.
func consonantSum(word string) int {
	sum := 0
	for _, r := range word {
		if letterValue(r) > 0 && !isVowel(r, word) {
			sum += letterValue(r)
		}
	}
	return sum
}

// missingDigits returns the digits 1-9 absent from the name's letter
// values, in ascending order.
func (f *Features) missingDigits() []int {
	present := map[int]bool{}
	for _, v := range f.LetterValues {
		for v > 0 {
			present[v%10] = true
			v /= 10
		}
	}
	var missing []int
	for d := 1; d <= 9; d++ {
		if !present[d] {
			missing = append(missing, d)
		}
	}
	return missing
}

// dominantDigits returns the most frequent digits among the name's letter
// values, in ascending order.
func (f *Features) dominantDigits() []int {
	counts := map[int]int{}
	for _, v := range f.LetterValues {
		for v > 0 {
			counts[v%10]++
			v /= 10
		}
	}
	maxFreq := 0
	for _, c := range counts {
		if c > maxFreq {
			maxFreq = c
		}
	}
	var dominant []int
	for d, c := range counts {
		if c == maxFreq {
			dominant = append(dominant, d)
		}
	}
	sort.Ints(dominant)
	return dominant
}

// personalYear positions the reference date within the 9-year cycle
// anchored at the birth day and month. The year decrements when the
// birthday has not yet occurred in the reference year.
func (f *Features) personalYear() int {
	year := f.Day + f.Month + f.RefYear
	if f.RefMonth < f.Month || (f.RefMonth == f.Month && f.RefDay < f.Day) {
		year--
	}
	return reduceSingle(year)
}

// cycleMilestones returns the four age milestones bounding the trading
// cycles. The first cycle ends at 36 minus the path number; master paths
// use 32. Later cycles follow at 9-year intervals.
func (f *Features) cycleMilestones() [4]int {
	path := reduceMasters(f.DayR + f.MonthR + f.YearR)
	start := 36 - path
	if masterNumbers[path] {
		start = 32
	}
	return [4]int{start, start + 9, start + 18, start + 27}
}

// cyclePhase maps the current age onto the cycle milestones, yielding a
// phase in 1..4. Ages beyond the final milestone stay in phase 4.
func (f *Features) cyclePhase() int {
	milestones := f.cycleMilestones()
	phase := 1 + sort.SearchInts(milestones[:], f.Age)
	return clamp(phase, 1, 4)
}
