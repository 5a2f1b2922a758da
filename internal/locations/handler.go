package locations

import (
	"github.com/gin-gonic/gin"

	"github.com/aura-events/venues/internal/middleware"
	"github.com/aura-events/venues/internal/pagination"
	"github.com/aura-events/venues/internal/validation"
	"github.com/aura-events/venues/pkg/response"
)

// CreateRequest is the body for POST /location/new.
type CreateRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Address  string `json:"address" binding:"required,max=255"`
	Capacity *int   `json:"capacity" binding:"required,min=0,max=2147483647"`
}

// UpdateRequest is the body for PUT /location/update/:location_id. Every field is optional.
type UpdateRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=255"`
	Address  *string `json:"address" binding:"omitempty,min=1,max=255"`
	Capacity *int    `json:"capacity" binding:"omitempty,min=0,max=2147483647"`
}

// Handler handles location HTTP endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a location handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Create handles POST /location/new.
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := validation.BindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	principal, _ := middleware.PrincipalFrom(c)
	l, err := h.svc.Create(c.Request.Context(), principal, CreateParams{
		Name:     req.Name,
		Address:  req.Address,
		Capacity: *req.Capacity,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Created(c, "Location created successfully", l)
}

// Update handles PUT /location/update/:location_id.
func (h *Handler) Update(c *gin.Context) {
	id, err := validation.ParamID(c, "location_id")
	if err != nil {
		_ = c.Error(err)
		return
	}
	var req UpdateRequest
	if err := validation.BindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	principal, _ := middleware.PrincipalFrom(c)
	l, err := h.svc.Update(c.Request.Context(), principal, id, UpdateParams{
		Name:     req.Name,
		Address:  req.Address,
		Capacity: req.Capacity,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Created(c, "Location updated successfully", l)
}

// Delete handles DELETE /location/delete/:location_id.
func (h *Handler) Delete(c *gin.Context) {
	id, err := validation.ParamID(c, "location_id")
	if err != nil {
		_ = c.Error(err)
		return
	}
	principal, _ := middleware.PrincipalFrom(c)
	if err := h.svc.Delete(c.Request.Context(), principal, id); err != nil {
		_ = c.Error(err)
		return
	}
	response.Created(c, "Location deleted successfully", nil)
}

// GetByID handles GET /location/info/:location_id.
func (h *Handler) GetByID(c *gin.Context) {
	id, err := validation.ParamID(c, "location_id")
	if err != nil {
		_ = c.Error(err)
		return
	}
	l, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.OK(c, response.Result{Result: l})
}

// List handles GET /location/list.
func (h *Handler) List(c *gin.Context) {
	page, err := parsePage(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	res, err := h.svc.ListAll(c.Request.Context(), page)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.OK(c, gin.H{"has_next": res.HasNext, "locations": res.Items})
}

// ListByOwner handles GET /location/list/:owner_id.
func (h *Handler) ListByOwner(c *gin.Context) {
	ownerID, err := validation.ParamID(c, "owner_id")
	if err != nil {
		_ = c.Error(err)
		return
	}
	page, err := parsePage(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	res, err := h.svc.ListByOwner(c.Request.Context(), ownerID, page)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.OK(c, gin.H{"owner_id": ownerID, "has_next": res.HasNext, "locations": res.Items})
}

func parsePage(c *gin.Context) (pagination.Page, error) {
	raw, present := c.GetQuery("page")
	return pagination.Parse(raw, present)
}
