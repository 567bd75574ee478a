package services

import (
	"context"
	"time"

	"amanah/internal/models"
	"amanah/internal/pagination"
)

// SubmitTransactionInput carries all fields of a transaction submission.
// ID is optional; a fresh identifier is generated when absent. Timestamp
// is optional and defaults to the time of insertion.
type SubmitTransactionInput struct {
	ID              string
	UserID          string
	Amount          float64
	Currency        string
	TransactionType string
	Timestamp       *time.Time
	Metadata        models.JSONMap
	IPAddress       string
	UserAgent       string
}

// DetectionResult is the scoring verdict returned to the caller.
type DetectionResult struct {
	TransactionID string                 `json:"transaction_id"`
	Score         float64                `json:"score"`
	IsAnomaly     bool                   `json:"is_anomaly"`
	Features      models.AnomalyFeatures `json:"features"`
}

// DetectionServicer defines the contract for the scoring pipeline.
type DetectionServicer interface {
	SubmitAndScore(ctx context.Context, input SubmitTransactionInput) (*DetectionResult, error)
}

// FlagFilter holds optional filter parameters for listing anomaly flags.
type FlagFilter struct {
	IsAnomaly *bool
	Reviewed  *bool
	UserID    *string
}

// ReviewServicer defines the contract for the review-dashboard surface.
// Review mutations touch only the reviewed/reviewer_comments/reviewed_at
// columns; score, verdict, and features are immutable after detection.
type ReviewServicer interface {
	ListFlags(ctx context.Context, page pagination.PageRequest, filter FlagFilter) (*pagination.PageResponse[models.AnomalyFlag], error)
	GetFlagByID(ctx context.Context, flagID string) (*models.AnomalyFlag, error)
	GetTransaction(ctx context.Context, transactionID string) (*models.Transaction, *models.AnomalyFlag, error)
	ReviewFlag(ctx context.Context, flagID string, reviewed bool, comments *string) (*models.AnomalyFlag, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]any)
}
