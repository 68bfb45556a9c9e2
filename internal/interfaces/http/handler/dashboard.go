package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nasmila140/property-lease-management-system/internal/application/ledger"
	"github.com/nasmila140/property-lease-management-system/internal/interfaces/http/dto"
)

// DashboardHandler handles ledger dashboard and payment HTTP requests
type DashboardHandler struct {
	BaseHandler
	dashboard *ledger.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboard *ledger.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// RegisterRoutes registers dashboard and payment routes on the given
// router group
func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	dashboard := rg.Group("/dashboard")
	{
		dashboard.GET("/ledger", h.LedgerOverview)
		dashboard.GET("/payments", h.PaymentOverview)
	}

	payments := rg.Group("/payments")
	{
		payments.POST("", h.RecordPayment)
		payments.POST("/:id/settle", h.SettlePayment)
		payments.POST("/:id/overdue", h.MarkPaymentOverdue)
	}

	rg.GET("/properties/:id/payments", h.ListPayments)
}

// LedgerOverview handles GET /api/v1/dashboard/ledger
func (h *DashboardHandler) LedgerOverview(c *gin.Context) {
	overview, err := h.dashboard.LedgerOverview(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, overview)
}

// PaymentOverview handles GET /api/v1/dashboard/payments. Upcoming and
// overdue lists are capped for display; the counts are not.
func (h *DashboardHandler) PaymentOverview(c *gin.Context) {
	overview, err := h.dashboard.PaymentOverview(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, overview)
}

// RecordPayment handles POST /api/v1/payments
func (h *DashboardHandler) RecordPayment(c *gin.Context) {
	var req ledger.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	payment, err := h.dashboard.RecordPayment(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, payment)
}

// ListPayments handles GET /api/v1/properties/:id/payments
func (h *DashboardHandler) ListPayments(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	payments, err := h.dashboard.ListPayments(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, payments, int64(len(payments)))
}

// SettlePaymentRequest carries the optional settlement method
type SettlePaymentRequest struct {
	Method string `json:"method"`
}

// SettlePayment handles POST /api/v1/payments/:id/settle
func (h *DashboardHandler) SettlePayment(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	// Body is optional: settling without a method is allowed.
	var req SettlePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.BadRequest(c, "Invalid request body")
		return
	}

	payment, err := h.dashboard.SettlePayment(c.Request.Context(), id, req.Method)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, payment)
}

// MarkPaymentOverdue handles POST /api/v1/payments/:id/overdue
func (h *DashboardHandler) MarkPaymentOverdue(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	payment, err := h.dashboard.MarkPaymentOverdue(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, payment)
}

func (h *DashboardHandler) bindID(c *gin.Context) (uuid.UUID, bool) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid ID")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(uri.ID)
	if err != nil {
		h.BadRequest(c, "Invalid ID")
		return uuid.Nil, false
	}
	return id, true
}
