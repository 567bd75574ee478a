package anomaly

import "time"

// Config holds the tunable thresholds and weights for the statistical
// scorer. Keeping them here instead of as literals in the scoring path
// allows tuning and testing without code changes.
type Config struct {
	// AnomalyThreshold is the composite score above which a transaction
	// is flagged. The comparison is strictly greater-than.
	AnomalyThreshold float64

	// Sub-score weights. They should sum to 1.0; the composite is capped
	// at 1.0 regardless.
	AmountWeight    float64
	FrequencyWeight float64
	TimeWeight      float64

	// Z-score cutoffs for the amount sub-score.
	ExtremeZScore  float64
	HighZScore     float64
	ElevatedZScore float64

	// NoVarianceMultiple flags amounts exceeding this multiple of the
	// historical mean when the history has no variance.
	NoVarianceMultiple float64

	// Hourly transaction-rate cutoffs for the frequency sub-score,
	// measured over FrequencyWindow.
	HighHourlyRate     float64
	ElevatedHourlyRate float64
	FrequencyWindow    time.Duration

	// Business hours (inclusive) for the time-of-day sub-score.
	BusinessHourStart int
	BusinessHourEnd   int
}

// DefaultConfig returns the production thresholds.
func DefaultConfig() Config {
	return Config{
		AnomalyThreshold:   0.6,
		AmountWeight:       0.5,
		FrequencyWeight:    0.3,
		TimeWeight:         0.2,
		ExtremeZScore:      3.0,
		HighZScore:         2.0,
		ElevatedZScore:     1.5,
		NoVarianceMultiple: 3.0,
		HighHourlyRate:     10.0,
		ElevatedHourlyRate: 5.0,
		FrequencyWindow:    24 * time.Hour,
		BusinessHourStart:  9,
		BusinessHourEnd:    18,
	}
}
