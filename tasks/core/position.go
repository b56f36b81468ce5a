package core

import "math"

// PositionStep is the distance kept from a single neighbour and between respaced tasks.
const PositionStep = 10

// InitialPosition puts a new task above the others of its priority tier.
// Boards list positions in descending order.
func InitialPosition(priority Priority, maxInTier *float64) float64 {
	if maxInTier != nil {
		return *maxInTier + 1
	}
	return priority.BaseWeight()
}

// PositionBetween returns the key for a slot under `above` and over `below`.
// It reports false when both neighbours are missing or the gap can no longer be split.
func PositionBetween(above, below *float64) (float64, bool) {
	switch {
	case above != nil && below != nil:
		mid := (*above + *below) / 2
		if mid == *above || mid == *below || math.IsInf(mid, 0) || math.IsNaN(mid) {
			return 0, false
		}
		return mid, true
	case above != nil:
		return *above - PositionStep, true
	case below != nil:
		return *below + PositionStep, true
	default:
		return 0, false
	}
}

// Respace spreads n keys PositionStep apart downwards from top, preserving order.
func Respace(top float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = top - float64(i*PositionStep)
	}
	return out
}
