// Package anomaly implements rule-based statistical fraud scoring for
// transactions. Scoring is a pure function of the transaction and its
// user's recent history: identical inputs always reproduce an identical
// score, which the persisted feature record depends on for auditability.
package anomaly

import (
	"math"
	"time"

	apperrors "amanah/internal/errors"
	"amanah/internal/models"
)

// Sample is the slice of a historical transaction the scorer needs.
type Sample struct {
	Amount    float64
	CreatedAt time.Time
}

// Result is the verdict for a single transaction.
type Result struct {
	Score     float64
	IsAnomaly bool
	Features  models.AnomalyFeatures
}

// Scorer combines amount-deviation, frequency, and time-of-day signals
// into a composite risk score.
type Scorer struct {
	cfg Config
}

// NewScorer creates a Scorer with the given thresholds.
func NewScorer(cfg Config) *Scorer {
	return &Scorer{cfg: cfg}
}

// Detect scores the transaction described by amount and timestamp against
// the user's recent history. The caller supplies now so that the 24h
// frequency window is well-defined and reproducible in tests. A zero
// timestamp falls back to now for the time-of-day signal.
//
// Non-finite amounts (NaN, ±Inf) in the transaction or its history are
// rejected rather than silently collapsing to a low-risk score, so bad
// upstream data cannot masquerade as a safe transaction.
func (s *Scorer) Detect(amount float64, timestamp time.Time, history []Sample, now time.Time) (*Result, error) {
	if !isFinite(amount) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidAmount, "transaction amount is not a finite number")
	}

	amounts := make([]float64, len(history))
	for i, h := range history {
		if !isFinite(h.Amount) {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidAmount, "historical transaction amount is not a finite number")
		}
		amounts[i] = h.Amount
	}

	stats := ComputeStatistics(amounts)
	amountScore := s.amountScore(amount, stats)

	windowStart := now.Add(-s.cfg.FrequencyWindow)
	recentCount := 0
	for _, h := range history {
		if h.CreatedAt.After(windowStart) {
			recentCount++
		}
	}
	frequencyScore := s.frequencyScore(recentCount)

	if timestamp.IsZero() {
		timestamp = now
	}
	hour := timestamp.Hour()
	timeScore := s.timeScore(hour)

	composite := math.Min(1.0,
		amountScore*s.cfg.AmountWeight+
			frequencyScore*s.cfg.FrequencyWeight+
			timeScore*s.cfg.TimeWeight)
	score := round4(composite)

	return &Result{
		Score:     score,
		IsAnomaly: score > s.cfg.AnomalyThreshold,
		Features: models.AnomalyFeatures{
			AmountScore:         amountScore,
			FrequencyScore:      frequencyScore,
			TimeScore:           timeScore,
			TransactionCount24h: recentCount,
			AmountMean:          stats.Mean,
			AmountStdDev:        stats.StdDev,
			TransactionHour:     hour,
		},
	}, nil
}

// amountScore rates how far the amount deviates from the historical mean.
// With no variance in the history (0 or 1 data points, or constant
// amounts) the z-score is undefined, so the amount is compared against a
// multiple of the mean instead.
func (s *Scorer) amountScore(amount float64, stats Statistics) float64 {
	if stats.StdDev == 0 {
		if amount > stats.Mean*s.cfg.NoVarianceMultiple {
			return 1.0
		}
		return 0.1
	}

	z := math.Abs(amount-stats.Mean) / stats.StdDev
	switch {
	case z > s.cfg.ExtremeZScore:
		return 1.0
	case z > s.cfg.HighZScore:
		return 0.7
	case z > s.cfg.ElevatedZScore:
		return 0.4
	default:
		return 0.1
	}
}

// frequencyScore rates the transaction rate over the frequency window.
func (s *Scorer) frequencyScore(count int) float64 {
	rate := float64(count) / s.cfg.FrequencyWindow.Hours()
	switch {
	case rate > s.cfg.HighHourlyRate:
		return 1.0
	case rate > s.cfg.ElevatedHourlyRate:
		return 0.7
	default:
		return 0.1
	}
}

// timeScore rates transactions outside business hours as mildly riskier.
func (s *Scorer) timeScore(hour int) float64 {
	if hour < s.cfg.BusinessHourStart || hour > s.cfg.BusinessHourEnd {
		return 0.3
	}
	return 0.1
}

// round4 rounds to 4 decimal places, half away from zero.
func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
