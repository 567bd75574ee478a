package services

import (
	"context"
	"math"
	"time"

	"gorm.io/gorm"

	"amanah/internal/anomaly"
	apperrors "amanah/internal/errors"
	"amanah/internal/logger"
	"amanah/internal/models"
)

const (
	// historyWindow bounds how far back the scorer looks for a user's
	// transaction history.
	historyWindow = 30 * 24 * time.Hour

	// historyLimit caps the number of historical transactions fetched
	// per scoring request.
	historyLimit = 100
)

// detectionService runs the per-transaction scoring pipeline: persist the
// transaction, fetch the user's recent history, score, persist the flag.
// Each step is an independent store call with no automatic retries; a
// transaction whose flag insert fails stays persisted and unscored, and
// the caller owns any retry or backfill policy.
type detectionService struct {
	db     *gorm.DB
	scorer *anomaly.Scorer
}

// NewDetectionService creates a new DetectionServicer.
func NewDetectionService(db *gorm.DB, scorer *anomaly.Scorer) DetectionServicer {
	return &detectionService{db: db, scorer: scorer}
}

// SubmitAndScore persists the submitted transaction, scores it against the
// user's recent history, and persists the resulting anomaly flag.
func (s *detectionService) SubmitAndScore(ctx context.Context, input SubmitTransactionInput) (*DetectionResult, error) {
	if err := validateSubmission(input); err != nil {
		return nil, err
	}

	transaction := &models.Transaction{
		Base:            models.Base{ID: input.ID},
		UserID:          input.UserID,
		Amount:          input.Amount,
		Currency:        input.Currency,
		TransactionType: input.TransactionType,
		Metadata:        input.Metadata,
		IPAddress:       input.IPAddress,
		UserAgent:       input.UserAgent,
	}
	if transaction.Currency == "" {
		transaction.Currency = "SAR"
	}
	if input.Timestamp != nil {
		transaction.CreatedAt = *input.Timestamp
	}

	if err := s.db.WithContext(ctx).Create(transaction).Error; err != nil {
		logger.Get().Errorw("failed to insert transaction",
			"transaction_id", transaction.ID,
			"user_id", transaction.UserID,
			"step", "insert_transaction",
			"error", err,
		)
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}

	history, err := s.fetchRecentHistory(ctx, transaction)
	if err != nil {
		logger.Get().Errorw("failed to fetch transaction history",
			"transaction_id", transaction.ID,
			"user_id", transaction.UserID,
			"step", "query_history",
			"error", err,
		)
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}

	result, err := s.scorer.Detect(transaction.Amount, transaction.CreatedAt, history, time.Now())
	if err != nil {
		logger.Get().Errorw("scoring failed",
			"transaction_id", transaction.ID,
			"user_id", transaction.UserID,
			"step", "score",
			"error", err,
		)
		return nil, err
	}

	flag := &models.AnomalyFlag{
		TransactionID:    transaction.ID,
		AnomalyScore:     result.Score,
		IsAnomaly:        result.IsAnomaly,
		DetectionMethod:  models.DetectionMethodStatistical,
		FeaturesAnalyzed: result.Features,
	}
	if err := s.db.WithContext(ctx).Create(flag).Error; err != nil {
		logger.Get().Errorw("failed to insert anomaly flag",
			"transaction_id", transaction.ID,
			"user_id", transaction.UserID,
			"step", "insert_flag",
			"error", err,
		)
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}

	if result.IsAnomaly {
		logger.Get().Infow("transaction flagged as anomalous",
			"transaction_id", transaction.ID,
			"user_id", transaction.UserID,
			"score", result.Score,
		)
	}

	return &DetectionResult{
		TransactionID: transaction.ID,
		Score:         result.Score,
		IsAnomaly:     result.IsAnomaly,
		Features:      result.Features,
	}, nil
}

// fetchRecentHistory returns the user's transactions from the last 30
// days, excluding the just-inserted one, newest first, capped at 100.
func (s *detectionService) fetchRecentHistory(ctx context.Context, transaction *models.Transaction) ([]anomaly.Sample, error) {
	since := time.Now().Add(-historyWindow)

	var rows []models.Transaction
	err := s.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Select("amount", "created_at", "transaction_type").
		Where("user_id = ? AND created_at >= ? AND id <> ?", transaction.UserID, since, transaction.ID).
		Order("created_at DESC").
		Limit(historyLimit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	samples := make([]anomaly.Sample, len(rows))
	for i, row := range rows {
		samples[i] = anomaly.Sample{Amount: row.Amount, CreatedAt: row.CreatedAt}
	}
	return samples, nil
}

// validateSubmission rejects malformed submissions before any persistence
// attempt is made.
func validateSubmission(input SubmitTransactionInput) error {
	if input.UserID == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "user_id is required")
	}
	if input.TransactionType == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "transaction_type is required")
	}
	if math.IsNaN(input.Amount) || math.IsInf(input.Amount, 0) {
		return apperrors.WithMessage(apperrors.ErrInvalidAmount, "amount is not a finite number")
	}
	if input.Amount <= 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	return nil
}
