package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "amanah/internal/errors"
	"amanah/internal/pagination"
	"amanah/internal/services"
)

// FlagHandler serves anomaly flags to the review dashboard and records
// reviewer verdicts.
type FlagHandler struct {
	reviewService services.ReviewServicer
	auditService  services.AuditServicer
}

// NewFlagHandler creates a new FlagHandler.
func NewFlagHandler(reviewService services.ReviewServicer, auditService services.AuditServicer) *FlagHandler {
	return &FlagHandler{reviewService: reviewService, auditService: auditService}
}

// listFlagsQuery holds pagination and filter query parameters.
type listFlagsQuery struct {
	pagination.PageRequest
	IsAnomaly *bool   `form:"is_anomaly"`
	Reviewed  *bool   `form:"reviewed"`
	UserID    *string `form:"user_id"`
}

// ListFlags returns a paginated list of anomaly flags
// @Summary     List anomaly flags
// @Description Returns anomaly flags with their transactions, newest first
// @Tags        flags
// @Produce     json
// @Param       page query int false "Page number"
// @Param       page_size query int false "Page size (max 100)"
// @Param       is_anomaly query bool false "Filter by verdict"
// @Param       reviewed query bool false "Filter by review state"
// @Param       user_id query string false "Filter by transaction owner"
// @Success     200 {object} map[string]interface{} "Paginated flags"
// @Failure     500 {object} ErrorResponse "Persistence failure"
// @Router      /flags [get]
func (h *FlagHandler) ListFlags(c *gin.Context) {
	var query listFlagsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	flags, err := h.reviewService.ListFlags(c.Request.Context(), query.PageRequest, services.FlagFilter{
		IsAnomaly: query.IsAnomaly,
		Reviewed:  query.Reviewed,
		UserID:    query.UserID,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"flags": flags})
}

// GetFlagByID returns a single anomaly flag
// @Summary     Get an anomaly flag
// @Tags        flags
// @Produce     json
// @Param       id path string true "Flag ID"
// @Success     200 {object} map[string]interface{} "Flag with transaction"
// @Failure     404 {object} ErrorResponse "Flag not found"
// @Router      /flags/{id} [get]
func (h *FlagHandler) GetFlagByID(c *gin.Context) {
	flag, err := h.reviewService.GetFlagByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"flag": flag})
}

// ReviewFlagRequest represents a reviewer verdict.
type ReviewFlagRequest struct {
	Reviewed         *bool   `json:"reviewed" binding:"required"`
	ReviewerComments *string `json:"reviewer_comments" binding:"omitempty,max=1000"`
	ReviewerID       string  `json:"reviewer_id" binding:"omitempty,max=100"`
}

// ReviewFlag records a reviewer verdict on a flag
// @Summary     Review an anomaly flag
// @Description Updates only the review fields; the score, verdict, and features are immutable
// @Tags        flags
// @Accept      json
// @Produce     json
// @Param       id path string true "Flag ID"
// @Param       request body ReviewFlagRequest true "Review verdict"
// @Success     200 {object} map[string]interface{} "Updated flag"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Flag not found"
// @Router      /flags/{id}/review [put]
func (h *FlagHandler) ReviewFlag(c *gin.Context) {
	var req ReviewFlagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	flag, err := h.reviewService.ReviewFlag(c.Request.Context(), c.Param("id"), *req.Reviewed, req.ReviewerComments)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(req.ReviewerID, "REVIEW_FLAG", "anomaly_flag", flag.ID, c.ClientIP(),
		map[string]any{"reviewed": *req.Reviewed, "reviewer_comments": req.ReviewerComments})

	c.JSON(http.StatusOK, gin.H{"flag": flag})
}

// GetTransaction returns a transaction and its anomaly flag
// @Summary     Get a transaction
// @Description Returns the transaction and its flag; the flag may be absent when a flag insert failed after the transaction persisted
// @Tags        transactions
// @Produce     json
// @Param       id path string true "Transaction ID"
// @Success     200 {object} map[string]interface{} "Transaction with optional flag"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id} [get]
func (h *FlagHandler) GetTransaction(c *gin.Context) {
	transaction, flag, err := h.reviewService.GetTransaction(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction, "anomaly_flag": flag})
}
