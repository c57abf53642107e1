package utils

import (
	"math"
)

// Fl is the floating point type used for intermediate computations,
// before conversion to integer device units.
type Fl = float64

func MinInt(x, y int) int {
	if x < y {
		return x
	}
	return y
}

func MaxInt(x, y int) int {
	if x > y {
		return x
	}
	return y
}

// MaxInts returns the biggest of [values], or 0 for an empty list.
func MaxInts(values ...int) int {
	if len(values) == 0 {
		return 0
	}
	max := values[0]
	for _, w := range values {
		if w > max {
			max = w
		}
	}
	return max
}

// Round rounds to the nearest integer, half away from zero.
func Round(f Fl) int {
	return int(math.Round(f))
}
