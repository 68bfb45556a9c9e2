package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nasmila140/property-lease-management-system/internal/application/ledger"
	"github.com/nasmila140/property-lease-management-system/internal/interfaces/http/dto"
)

// maxImportFileSize caps uploaded CSV files at 5MB
const maxImportFileSize = 5 << 20

// BillingHandler handles billing period HTTP requests
type BillingHandler struct {
	BaseHandler
	billing  *ledger.BillingService
	importer *ledger.BillImportService
}

// NewBillingHandler creates a new billing handler
func NewBillingHandler(billing *ledger.BillingService, importer *ledger.BillImportService) *BillingHandler {
	return &BillingHandler{billing: billing, importer: importer}
}

// RegisterRoutes registers billing period routes on the given router group
func (h *BillingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	bills := rg.Group("/billing-periods")
	{
		bills.POST("", h.AddBillingPeriod)
		bills.GET("", h.ListBillingHistory)
		bills.GET("/lookup", h.FindBillingPeriod)
		bills.PUT("/:id", h.UpdateBillingPeriod)
		bills.POST("/import", h.ImportBillingPeriods)
	}
}

// AddBillingPeriod handles POST /api/v1/billing-periods
func (h *BillingHandler) AddBillingPeriod(c *gin.Context) {
	var req ledger.AddBillingPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	bill, err := h.billing.AddBillingPeriod(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, bill)
}

// ImportBillingPeriods handles POST /api/v1/billing-periods/import. The
// request carries a CSV file in the "file" form field; the response reports
// per-row failures alongside the imported count.
func (h *BillingHandler) ImportBillingPeriods(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "A CSV file is required in the 'file' form field")
		return
	}
	if fileHeader.Size > maxImportFileSize {
		h.BadRequest(c, "File exceeds the 5MB import limit")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.BadRequest(c, "Unreadable upload")
		return
	}
	defer file.Close()

	result, err := h.importer.ImportBills(c.Request.Context(), file)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// UpdateBillingPeriod handles PUT /api/v1/billing-periods/:id. An update
// whose values all match the stored bill is rejected with NO_CHANGE rather
// than silently succeeding.
func (h *BillingHandler) UpdateBillingPeriod(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid billing period ID")
		return
	}
	id, err := uuid.Parse(uri.ID)
	if err != nil {
		h.BadRequest(c, "Invalid billing period ID")
		return
	}

	var req ledger.UpdateBillingPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.billing.UpdateBillingPeriod(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// FindBillingPeriod handles GET /api/v1/billing-periods/lookup. The record
// is addressed by its natural key: tenant plus month plus year.
func (h *BillingHandler) FindBillingPeriod(c *gin.Context) {
	tenantID, err := uuid.Parse(c.Query("tenant_id"))
	if err != nil {
		h.BadRequest(c, "tenant_id must be a valid UUID")
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		h.BadRequest(c, "month must be an integer")
		return
	}
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		h.BadRequest(c, "year must be an integer")
		return
	}

	bill, err := h.billing.FindBillingPeriod(c.Request.Context(), tenantID, month, year)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, bill)
}

// ListBillingHistory handles GET /api/v1/billing-periods. The tenant_id,
// status and year query parameters combine as AND filters; the response
// carries the full history ordered newest period first plus a summary.
func (h *BillingHandler) ListBillingHistory(c *gin.Context) {
	var filter ledger.BillingHistoryFilter

	if raw := c.Query("tenant_id"); raw != "" {
		tenantID, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "tenant_id must be a valid UUID")
			return
		}
		filter.TenantID = &tenantID
	}
	if raw := c.Query("status"); raw != "" {
		filter.Status = &raw
	}
	if raw := c.Query("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			h.BadRequest(c, "year must be an integer")
			return
		}
		filter.Year = &year
	}

	history, err := h.billing.ListBillingHistory(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, history, int64(history.Summary.TotalRecords))
}
