package handler

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"lekha/internal/domain"
	"lekha/internal/port"
	"lekha/internal/service"
)

// ReviewHandler exposes the invoice review screen's operations.
type ReviewHandler struct {
	reviewService service.ReviewService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// EditFieldRequest is the body for header and row field edits.
type EditFieldRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// ActionRequest is the body for an approve/reject decision.
type ActionRequest struct {
	Action string `json:"action" binding:"required,oneof=approve reject"`
	Notes  string `json:"notes"`
}

// Open handles GET /invoices/:id/review
// @Summary Open an invoice review session
// @Description Loads the invoice and OCR payload, runs the HSN matcher once, and returns the reconciled rows, totals, unmatched rows, and changed-field maps.
// @Tags review
// @Produce json
// @Success 200 {object} APIResponse{data=service.ReviewView} "Reconciled review state"
// @Failure 404 {object} APIResponse "Invoice not found"
// @Router /invoices/{id}/review [get]
func (h *ReviewHandler) Open(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	view, err := h.reviewService.Open(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, view)
}

// EditHeader handles PATCH /invoices/:id/review/header
func (h *ReviewHandler) EditHeader(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req EditFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, 400, "INVALID_BODY", err.Error())
		return
	}
	view, err := h.reviewService.EditHeaderField(c.Request.Context(), id, req.Field, req.Value)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, view)
}

// EditRow handles PATCH /invoices/:id/review/rows/:rowID
func (h *ReviewHandler) EditRow(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	rowID, ok := parseID(c, "rowID")
	if !ok {
		return
	}
	var req EditFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, 400, "INVALID_BODY", err.Error())
		return
	}
	view, err := h.reviewService.EditRowField(c.Request.Context(), id, rowID, req.Field, req.Value)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, view)
}

// AddRow handles POST /invoices/:id/review/rows
func (h *ReviewHandler) AddRow(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	view, err := h.reviewService.AddRow(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, view)
}

// Update handles POST /invoices/:id/review/update
// @Summary Save the review screen's current state
// @Description Runs the validation gate; on failure returns 422 with header and per-row error maps and no partial save.
// @Tags review
// @Router /invoices/{id}/review/update [post]
func (h *ReviewHandler) Update(c *gin.Context) {
	h.gated(c, h.reviewService.Update)
}

// Submit handles POST /invoices/:id/review/submit
func (h *ReviewHandler) Submit(c *gin.Context) {
	h.gated(c, h.reviewService.Submit)
}

// Action handles POST /invoices/:id/review/action
func (h *ReviewHandler) Action(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, 400, "INVALID_BODY", err.Error())
		return
	}
	input := port.ActionInput{Action: domain.ReviewAction(req.Action), Notes: req.Notes}
	if err := h.reviewService.Action(c.Request.Context(), id, input); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"action": req.Action})
}

// gated runs an operation that may be blocked by the validation gate. On a
// gate failure the 422 body still carries the view so the UI can render the
// aggregate toast plus inline field markers.
func (h *ReviewHandler) gated(c *gin.Context, op func(ctx context.Context, id uuid.UUID) (*service.ReviewView, error)) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	view, err := op(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrValidationFailed) && view != nil {
			status, code, msg := MapDomainError(err)
			c.JSON(status, APIResponse{
				Success: false,
				Data:    view,
				Error:   &APIError{Code: code, Message: msg},
			})
			return
		}
		HandleError(c, err)
		return
	}
	RespondOK(c, view)
}

func parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		RespondError(c, 400, "INVALID_ID", "invalid uuid in path")
		return uuid.Nil, false
	}
	return id, true
}
