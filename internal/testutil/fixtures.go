package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"amanah/internal/models"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// NextUserID returns a unique user identifier for a test.
func NextUserID() string {
	return fmt.Sprintf("user-%d", nextID())
}

// CreateTestTransaction creates a transaction for the given user with the
// given amount and creation time.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID string, amount float64, createdAt time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		Base:            models.Base{CreatedAt: createdAt},
		UserID:          userID,
		Amount:          amount,
		Currency:        "SAR",
		TransactionType: "purchase",
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestAnomalyFlag creates a flag for the given transaction.
func CreateTestAnomalyFlag(t *testing.T, db *gorm.DB, transactionID string, score float64, isAnomaly bool) *models.AnomalyFlag {
	t.Helper()

	flag := &models.AnomalyFlag{
		TransactionID:   transactionID,
		AnomalyScore:    score,
		IsAnomaly:       isAnomaly,
		DetectionMethod: models.DetectionMethodStatistical,
		FeaturesAnalyzed: models.AnomalyFeatures{
			AmountScore:    score,
			FrequencyScore: 0.1,
			TimeScore:      0.1,
		},
	}
	if err := db.Create(flag).Error; err != nil {
		t.Fatalf("failed to create test anomaly flag: %v", err)
	}
	return flag
}
