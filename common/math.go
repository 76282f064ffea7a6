package common

import "math"

// FloorDivF divides rounding toward negative infinity, returning the
// integer cell.
func FloorDivF(a float64, b int) int {
	return int(math.Floor(a / float64(b)))
}
