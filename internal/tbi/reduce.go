package tbi

// Master numbers survive double-digit reduction; karmic numbers flag a
// behavioral liability when they appear as raw birth-date or name sums.
var (
	masterNumbers = map[int]bool{11: true, 22: true, 33: true}
	karmicNumbers = map[int]bool{13: true, 14: true, 16: true, 19: true}
)

// digitSum adds the decimal digits of n.
func digitSum(n int) int {
	if n < 0 {
		n = -n
	}
	sum := 0
	for n > 0 {
		sum += n % 10
		n /= 10
	}
	return sum
}

// reduceSingle reduces n to a single digit (0-9).
func reduceSingle(n int) int {
	for n > 9 {
		n = digitSum(n)
	}
	return n
}

// reduceDouble reduces n to a single digit, preserving 11 and 22.
func reduceDouble(n int) int {
	for n > 9 && n != 11 && n != 22 {
		n = digitSum(n)
	}
	return n
}

// reduceMasters reduces n to a single digit, preserving 11, 22 and 33.
func reduceMasters(n int) int {
	for n > 9 && !masterNumbers[n] {
		n = digitSum(n)
	}
	return n
}

// collapseMaster flattens a master number to its digit sum; other values
// pass through. Used where a comparison needs plain single digits.
func collapseMaster(n int) int {
	if masterNumbers[n] {
		return digitSum(n)
	}
	return n
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
