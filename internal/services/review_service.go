package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "amanah/internal/errors"
	"amanah/internal/models"
	"amanah/internal/pagination"
)

// reviewService serves the review-dashboard surface: listing flags and
// recording reviewer verdicts. It only ever writes the review columns.
type reviewService struct {
	db *gorm.DB
}

// NewReviewService creates a new ReviewServicer.
func NewReviewService(db *gorm.DB) ReviewServicer {
	return &reviewService{db: db}
}

// ListFlags retrieves a paginated, filtered list of anomaly flags with
// their transactions, newest first.
func (s *reviewService) ListFlags(ctx context.Context, page pagination.PageRequest, filter FlagFilter) (*pagination.PageResponse[models.AnomalyFlag], error) {
	page.Defaults()

	base := s.db.WithContext(ctx).Model(&models.AnomalyFlag{})
	if filter.IsAnomaly != nil {
		base = base.Where("is_anomaly = ?", *filter.IsAnomaly)
	}
	if filter.Reviewed != nil {
		base = base.Where("reviewed = ?", *filter.Reviewed)
	}
	if filter.UserID != nil {
		base = base.Joins("JOIN transactions ON transactions.id = anomaly_flags.transaction_id").
			Where("transactions.user_id = ?", *filter.UserID)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}

	var flags []models.AnomalyFlag
	if err := base.Scopes(pagination.Paginate(page)).
		Preload("Transaction").
		Order("anomaly_flags.created_at DESC").
		Find(&flags).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}

	result := pagination.NewPageResponse(flags, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetFlagByID retrieves a single anomaly flag with its transaction.
func (s *reviewService) GetFlagByID(ctx context.Context, flagID string) (*models.AnomalyFlag, error) {
	var flag models.AnomalyFlag
	if err := s.db.WithContext(ctx).Preload("Transaction").First(&flag, "id = ?", flagID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrFlagNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return &flag, nil
}

// GetTransaction retrieves a transaction and its flag, if one exists.
// A transaction without a flag is a known state when a flag insert
// failed after the transaction persisted.
func (s *reviewService) GetTransaction(ctx context.Context, transactionID string) (*models.Transaction, *models.AnomalyFlag, error) {
	var transaction models.Transaction
	if err := s.db.WithContext(ctx).First(&transaction, "id = ?", transactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.ErrTransactionNotFound
		}
		return nil, nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}

	var flag models.AnomalyFlag
	err := s.db.WithContext(ctx).First(&flag, "transaction_id = ?", transactionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &transaction, nil, nil
		}
		return nil, nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return &transaction, &flag, nil
}

// ReviewFlag records a reviewer verdict on a flag. Only the review
// columns are updated; the score, verdict, and feature record written by
// detection are never touched.
func (s *reviewService) ReviewFlag(ctx context.Context, flagID string, reviewed bool, comments *string) (*models.AnomalyFlag, error) {
	flag, err := s.GetFlagByID(ctx, flagID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{
		"reviewed":          reviewed,
		"reviewer_comments": comments,
	}
	if reviewed {
		updates["reviewed_at"] = time.Now()
	} else {
		updates["reviewed_at"] = nil
	}

	if err := s.db.WithContext(ctx).Model(flag).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}

	return s.GetFlagByID(ctx, flagID)
}
