package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nasmila140/property-lease-management-system/internal/application/property"
	"github.com/nasmila140/property-lease-management-system/internal/interfaces/http/dto"
)

// PropertyHandler handles property HTTP requests
type PropertyHandler struct {
	BaseHandler
	properties *property.Service
}

// NewPropertyHandler creates a new property handler
func NewPropertyHandler(properties *property.Service) *PropertyHandler {
	return &PropertyHandler{properties: properties}
}

// RegisterRoutes registers property routes on the given router group
func (h *PropertyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	props := rg.Group("/properties")
	{
		props.POST("", h.Create)
		props.GET("", h.List)
		props.GET("/search", h.Search)
		props.GET("/:id", h.Get)
		props.POST("/:id/lease", h.AssignLease)
		props.DELETE("/:id/lease", h.EndLease)
	}
}

// Create handles POST /api/v1/properties
func (h *PropertyHandler) Create(c *gin.Context) {
	var req property.CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	created, err := h.properties.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, created)
}

// Get handles GET /api/v1/properties/:id
func (h *PropertyHandler) Get(c *gin.Context) {
	id, ok := h.bindPropertyID(c)
	if !ok {
		return
	}

	found, err := h.properties.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, found)
}

// Search handles GET /api/v1/properties/search. Looks a property up by
// its code, the way a manager keys one in at the front desk.
func (h *PropertyHandler) Search(c *gin.Context) {
	found, err := h.properties.FindByCode(c.Request.Context(), c.Query("code"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, found)
}

// List handles GET /api/v1/properties
func (h *PropertyHandler) List(c *gin.Context) {
	all, err := h.properties.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, all, int64(len(all)))
}

// AssignLease handles POST /api/v1/properties/:id/lease
func (h *PropertyHandler) AssignLease(c *gin.Context) {
	id, ok := h.bindPropertyID(c)
	if !ok {
		return
	}

	var req property.AssignLeaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.properties.AssignLease(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, updated)
}

// EndLease handles DELETE /api/v1/properties/:id/lease
func (h *PropertyHandler) EndLease(c *gin.Context) {
	id, ok := h.bindPropertyID(c)
	if !ok {
		return
	}

	updated, err := h.properties.EndLease(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, updated)
}

func (h *PropertyHandler) bindPropertyID(c *gin.Context) (uuid.UUID, bool) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid property ID")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(uri.ID)
	if err != nil {
		h.BadRequest(c, "Invalid property ID")
		return uuid.Nil, false
	}
	return id, true
}
