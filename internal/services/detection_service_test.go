package services

import (
	"context"
	"math"
	"testing"
	"time"

	"amanah/internal/anomaly"
	"amanah/internal/models"
	"amanah/internal/testutil"
)

// fixedBusinessHour is 10:00, inside business hours, so the time
// sub-score is pinned at 0.1 regardless of when the test runs.
var fixedBusinessHour = time.Date(2025, 6, 15, 10, 0, 0, 0, time.Local)

// fixedNightHour is 02:00.
var fixedNightHour = time.Date(2025, 6, 15, 2, 0, 0, 0, time.Local)

func submission(userID string, amount float64, at time.Time) SubmitTransactionInput {
	return SubmitTransactionInput{
		UserID:          userID,
		Amount:          amount,
		TransactionType: "purchase",
		Timestamp:       &at,
	}
}

func TestSubmitAndScore(t *testing.T) {
	t.Run("new_user_is_not_anomalous", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDetectionService(db, anomaly.NewScorer(anomaly.DefaultConfig()))

		result, err := svc.SubmitAndScore(context.Background(), submission(testutil.NextUserID(), 100, fixedBusinessHour))
		testutil.AssertNoError(t, err)

		if result.TransactionID == "" {
			t.Fatal("expected a generated transaction ID")
		}
		if result.Score != 0.55 {
			t.Errorf("expected score 0.55, got %v", result.Score)
		}
		if result.IsAnomaly {
			t.Error("expected verdict not anomalous")
		}
		if result.Features.TransactionCount24h != 0 {
			t.Errorf("expected empty history, got count %d", result.Features.TransactionCount24h)
		}

		// Transaction and flag must both be persisted.
		var tx models.Transaction
		testutil.AssertNoError(t, db.First(&tx, "id = ?", result.TransactionID).Error)
		if tx.Currency != "SAR" {
			t.Errorf("expected default currency SAR, got %s", tx.Currency)
		}

		var flag models.AnomalyFlag
		testutil.AssertNoError(t, db.First(&flag, "transaction_id = ?", result.TransactionID).Error)
		if flag.AnomalyScore != 0.55 {
			t.Errorf("expected persisted score 0.55, got %v", flag.AnomalyScore)
		}
		if flag.DetectionMethod != models.DetectionMethodStatistical {
			t.Errorf("unexpected detection method %s", flag.DetectionMethod)
		}
		if flag.Reviewed {
			t.Error("new flags must start unreviewed")
		}
	})

	t.Run("uses_caller_supplied_id", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDetectionService(db, anomaly.NewScorer(anomaly.DefaultConfig()))

		input := submission(testutil.NextUserID(), 50, fixedBusinessHour)
		input.ID = "1e8cdd6e-9af9-4a3f-9c0f-7c1f0b6e4242"

		result, err := svc.SubmitAndScore(context.Background(), input)
		testutil.AssertNoError(t, err)
		if result.TransactionID != input.ID {
			t.Errorf("expected transaction ID %s, got %s", input.ID, result.TransactionID)
		}
	})

	t.Run("scores_against_recent_history", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDetectionService(db, anomaly.NewScorer(anomaly.DefaultConfig()))
		userID := testutil.NextUserID()

		// mean 100, stddev 20, both older than the 24h frequency window
		// but well inside the 30-day history window.
		testutil.CreateTestTransaction(t, db, userID, 80, time.Now().Add(-26*time.Hour))
		testutil.CreateTestTransaction(t, db, userID, 120, time.Now().Add(-30*time.Hour))

		result, err := svc.SubmitAndScore(context.Background(), submission(userID, 145, fixedBusinessHour))
		testutil.AssertNoError(t, err)

		if result.Score != 0.4 {
			t.Errorf("expected score 0.4 (z=2.25), got %v", result.Score)
		}
		if result.Features.AmountMean != 100 || math.Abs(result.Features.AmountStdDev-20) > 1e-9 {
			t.Errorf("unexpected statistics: %+v", result.Features)
		}
		if result.Features.TransactionCount24h != 0 {
			t.Errorf("expected no transactions in the 24h window, got %d", result.Features.TransactionCount24h)
		}
	})

	t.Run("ignores_history_older_than_30_days", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDetectionService(db, anomaly.NewScorer(anomaly.DefaultConfig()))
		userID := testutil.NextUserID()

		testutil.CreateTestTransaction(t, db, userID, 1_000_000, time.Now().Add(-40*24*time.Hour))

		result, err := svc.SubmitAndScore(context.Background(), submission(userID, 100, fixedBusinessHour))
		testutil.AssertNoError(t, err)

		// The stale million never enters the statistics.
		if result.Features.AmountMean != 0 {
			t.Errorf("expected mean 0 without qualifying history, got %v", result.Features.AmountMean)
		}
	})

	t.Run("ignores_other_users_history", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDetectionService(db, anomaly.NewScorer(anomaly.DefaultConfig()))

		other := testutil.NextUserID()
		for i := 0; i < 5; i++ {
			testutil.CreateTestTransaction(t, db, other, 100, time.Now().Add(-time.Hour))
		}

		result, err := svc.SubmitAndScore(context.Background(), submission(testutil.NextUserID(), 100, fixedBusinessHour))
		testutil.AssertNoError(t, err)
		if result.Features.TransactionCount24h != 0 {
			t.Errorf("expected other users' history to be excluded, got count %d", result.Features.TransactionCount24h)
		}
	})

	t.Run("flags_night_burst_with_tuned_thresholds", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		// Lowered rate cutoffs, as an operator would tune via env.
		cfg := anomaly.DefaultConfig()
		cfg.HighHourlyRate = 0.4
		cfg.ElevatedHourlyRate = 0.2
		svc := NewDetectionService(db, anomaly.NewScorer(cfg))
		userID := testutil.NextUserID()

		for i := 0; i < 20; i++ {
			testutil.CreateTestTransaction(t, db, userID, 100, time.Now().Add(-time.Duration(i+1)*time.Minute))
		}

		result, err := svc.SubmitAndScore(context.Background(), submission(userID, 500, fixedNightHour))
		testutil.AssertNoError(t, err)

		if result.Score != 0.86 {
			t.Errorf("expected score 0.86, got %v", result.Score)
		}
		if !result.IsAnomaly {
			t.Error("expected verdict anomalous")
		}

		var flag models.AnomalyFlag
		testutil.AssertNoError(t, db.First(&flag, "transaction_id = ?", result.TransactionID).Error)
		if !flag.IsAnomaly {
			t.Error("expected persisted flag to be anomalous")
		}
		if flag.FeaturesAnalyzed.TransactionCount24h != 20 {
			t.Errorf("expected persisted 24h count 20, got %d", flag.FeaturesAnalyzed.TransactionCount24h)
		}
	})

	t.Run("missing_user_id", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDetectionService(db, anomaly.NewScorer(anomaly.DefaultConfig()))

		input := submission("", 100, fixedBusinessHour)
		_, err := svc.SubmitAndScore(context.Background(), input)
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")

		// Validation failures must never persist anything.
		var count int64
		testutil.AssertNoError(t, db.Model(&models.Transaction{}).Count(&count).Error)
		if count != 0 {
			t.Errorf("expected no persisted transactions, got %d", count)
		}
	})

	t.Run("non_positive_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDetectionService(db, anomaly.NewScorer(anomaly.DefaultConfig()))

		_, err := svc.SubmitAndScore(context.Background(), submission(testutil.NextUserID(), 0, fixedBusinessHour))
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")

		_, err = svc.SubmitAndScore(context.Background(), submission(testutil.NextUserID(), -5, fixedBusinessHour))
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
	})

	t.Run("non_finite_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDetectionService(db, anomaly.NewScorer(anomaly.DefaultConfig()))

		_, err := svc.SubmitAndScore(context.Background(), submission(testutil.NextUserID(), math.NaN(), fixedBusinessHour))
		testutil.AssertAppError(t, err, "INVALID_AMOUNT")
	})

	t.Run("duplicate_id_fails_before_scoring", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDetectionService(db, anomaly.NewScorer(anomaly.DefaultConfig()))
		userID := testutil.NextUserID()

		input := submission(userID, 100, fixedBusinessHour)
		input.ID = "7d9f75a2-51a4-4e5c-8f7a-2b4c8e1d3f55"

		_, err := svc.SubmitAndScore(context.Background(), input)
		testutil.AssertNoError(t, err)

		// Re-submitting the same id fails at the transaction insert, so
		// no second flag is ever created.
		_, err = svc.SubmitAndScore(context.Background(), input)
		testutil.AssertAppError(t, err, "PERSISTENCE_ERROR")

		var flags int64
		testutil.AssertNoError(t, db.Model(&models.AnomalyFlag{}).Where("transaction_id = ?", input.ID).Count(&flags).Error)
		if flags != 1 {
			t.Errorf("expected exactly one flag, got %d", flags)
		}
	})
}
