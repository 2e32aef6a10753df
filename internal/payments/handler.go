package payments

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"dreamer-backend/internal/analysis"
	"dreamer-backend/internal/shared/server/respond"
)

// Handler wires the payment confirmation endpoint to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches payment routes to the engine.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/payment/success", h.confirm)
}

type confirmRequest struct {
	PaymentIntentID string           `json:"payment_intent_id"`
	DocumentID      string           `json:"document_id"`
	AnalysisOptions analysis.Options `json:"analysis_options"`
}

type confirmResponse struct {
	Success  bool   `json:"success"`
	Analysis gin.H  `json:"analysis"`
}

func (h *Handler) confirm(c *gin.Context) {
	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.PaymentIntentID == "" || req.DocumentID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Missing required parameters", nil)
		return
	}

	c.Set("documentId", req.DocumentID)
	c.Set("paymentIntentId", req.PaymentIntentID)

	summary, err := h.Svc.Confirm(c.Request.Context(), req.PaymentIntentID, req.DocumentID, req.AnalysisOptions)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "Missing required parameters", nil)
		case errors.Is(err, ErrNotSucceeded):
			respond.Error(c, http.StatusBadRequest, "payment_not_successful", "Payment not successful", nil)
		case errors.Is(err, ErrDocumentNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "Document not found", nil)
		default:
			// Detail stays in the server log; the client gets an opaque code.
			respond.Error(c, http.StatusInternalServerError, "payment_processing_error", "Failed to process payment", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, confirmResponse{
		Success:  true,
		Analysis: gin.H{"summary": summary},
	})
}
