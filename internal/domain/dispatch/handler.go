package dispatch

import (
	"log/slog"

	"orderalert/internal/common"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for the dispatch domain.
type Handler struct {
	service *Service
}

// NewHandler creates a new dispatch handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Dispatch handles POST /api/v1/dispatch
// Runs the full pipeline synchronously and returns the delivery receipt.
func (h *Handler) Dispatch(c *gin.Context) {
	var req DispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.InvalidPayload(c)
		return
	}

	receipt, err := h.service.Dispatch(c.Request.Context(), &req.Order)
	if err != nil {
		common.HandleError(c, err)
		return
	}

	slog.Info("dispatch succeeded",
		"invoice", receipt.Invoice,
		"message_id", receipt.MessageID,
	)
	common.Dispatched(c, receipt.MessageID)
}

// RegisterRoutes registers dispatch routes to the given router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/dispatch", h.Dispatch)
}
