package documents

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"dreamer-backend/internal/shared/server/respond"
)

// Handler wires the upload endpoint to the service.
type Handler struct {
	Svc            *Service
	MaxUploadBytes int64
	PublishableKey string
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, maxUploadBytes int64, publishableKey string) *Handler {
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadBytes, PublishableKey: publishableKey}
}

// RegisterRoutes attaches document routes to the engine.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/upload", h.upload)
	r.GET("/documents/:id", h.detail)
}

func (h *Handler) detail(c *gin.Context) {
	documentID := c.Param("id")
	c.Set("documentId", documentID)

	doc, history, err := h.Svc.Detail(c.Request.Context(), documentID)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "Missing document id", nil)
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "Document not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to load document", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, toDetailResponse(doc, history))
}

func (h *Handler) upload(c *gin.Context) {
	if h.MaxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "No file provided", nil)
		return
	}
	if fileHeader.Filename == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "No file selected", nil)
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "No file provided", nil)
		return
	}
	defer f.Close()

	res, err := h.Svc.Upload(c.Request.Context(), fileHeader.Filename, f)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "Invalid file type. Only PDF and DOCX files are allowed", nil)
		case errors.Is(err, ErrStorage):
			respond.Error(c, http.StatusInternalServerError, "storage_error", "Failed to save file", nil)
		case errors.Is(err, ErrExtraction):
			respond.Error(c, http.StatusInternalServerError, "extraction_error", "Document processing failed", nil)
		case errors.Is(err, ErrPersistence):
			respond.Error(c, http.StatusInternalServerError, "persistence_error", "Failed to save document info", nil)
		case errors.Is(err, ErrPaymentSetup):
			respond.Error(c, http.StatusInternalServerError, "payment_setup_error", "Payment setup failed", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Document processing failed", nil)
		}
		return
	}

	c.Set("documentId", res.Document.ID)
	respond.JSON(c, http.StatusOK, toUploadResponse(res, h.PublishableKey))
}
