package anomaly

import "math"

// Statistics holds descriptive statistics over a set of transaction amounts.
type Statistics struct {
	Mean   float64
	StdDev float64
}

// ComputeStatistics returns the population mean and population standard
// deviation (divisor N, not N-1) of the given amounts. An empty input
// yields zeros: absence of history is a valid state for a new user, not
// an error.
func ComputeStatistics(amounts []float64) Statistics {
	if len(amounts) == 0 {
		return Statistics{}
	}

	var sum float64
	for _, v := range amounts {
		sum += v
	}
	mean := sum / float64(len(amounts))

	var variance float64
	for _, v := range amounts {
		diff := v - mean
		variance += diff * diff
	}
	variance /= float64(len(amounts))

	return Statistics{Mean: mean, StdDev: math.Sqrt(variance)}
}
