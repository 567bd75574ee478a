package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "amanah/internal/errors"
	"amanah/internal/models"
	"amanah/internal/services"
)

// DetectionHandler handles transaction submission and scoring requests.
type DetectionHandler struct {
	detectionService services.DetectionServicer
	timeout          time.Duration
}

// NewDetectionHandler creates a new DetectionHandler. Each request runs
// under the given timeout; requests either fully complete or fail, there
// is no partial-success mode.
func NewDetectionHandler(detectionService services.DetectionServicer, timeout time.Duration) *DetectionHandler {
	return &DetectionHandler{detectionService: detectionService, timeout: timeout}
}

// DetectTransactionRequest represents a transaction submission.
type DetectTransactionRequest struct {
	ID              string         `json:"id" binding:"omitempty,uuid"`
	Amount          float64        `json:"amount" binding:"required,gt=0"`
	Currency        string         `json:"currency" binding:"omitempty,iso4217"`
	UserID          string         `json:"user_id" binding:"required"`
	TransactionType string         `json:"transaction_type" binding:"required,max=100"`
	Timestamp       *string        `json:"timestamp"`
	Metadata        map[string]any `json:"metadata"`
	IPAddress       string         `json:"ip_address"`
	UserAgent       string         `json:"user_agent"`
}

// DetectTransaction submits a transaction and scores it for anomalies
// @Summary     Submit and score a transaction
// @Description Persists the transaction, scores it against the user's recent history, and persists a reviewable anomaly flag
// @Tags        detection
// @Accept      json
// @Produce     json
// @Param       request body DetectTransactionRequest true "Transaction details"
// @Success     200 {object} services.DetectionResult "Scoring verdict"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     422 {object} ErrorResponse "Non-numeric amount data"
// @Failure     500 {object} ErrorResponse "Persistence failure"
// @Router      /detect [post]
func (h *DetectionHandler) DetectTransaction(c *gin.Context) {
	var req DetectTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var timestamp *time.Time
	if req.Timestamp != nil && *req.Timestamp != "" {
		parsed, err := parseFlexibleTime(*req.Timestamp)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
			return
		}
		timestamp = &parsed
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	result, err := h.detectionService.SubmitAndScore(ctx, services.SubmitTransactionInput{
		ID:              req.ID,
		UserID:          req.UserID,
		Amount:          req.Amount,
		Currency:        req.Currency,
		TransactionType: req.TransactionType,
		Timestamp:       timestamp,
		Metadata:        models.JSONMap(req.Metadata),
		IPAddress:       req.IPAddress,
		UserAgent:       req.UserAgent,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
