package organizers

import (
	"github.com/gin-gonic/gin"

	"github.com/aura-events/venues/internal/middleware"
	"github.com/aura-events/venues/internal/pagination"
	"github.com/aura-events/venues/internal/validation"
	"github.com/aura-events/venues/pkg/response"
)

// RegisterRequest is the body for POST /organizer/register.
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email,max=255"`
	Password  string `json:"password" binding:"required,max=72"`
	Firstname string `json:"firstname" binding:"required,max=255"`
	Lastname  string `json:"lastname" binding:"required,max=255"`
	Phone     string `json:"phone" binding:"required,max=255"`
}

// LoginRequest is the body for POST /organizer/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,max=255"`
}

// UpdateRequest is the body for PUT /organizer/info/update. Every field is optional.
type UpdateRequest struct {
	Email     *string `json:"email" binding:"omitempty,email,max=255"`
	Password  *string `json:"password" binding:"omitempty,max=72"`
	Firstname *string `json:"firstname" binding:"omitempty,max=255"`
	Lastname  *string `json:"lastname" binding:"omitempty,max=255"`
	Phone     *string `json:"phone" binding:"omitempty,max=255"`
}

// Handler handles organizer HTTP endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates an organizer handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Register handles POST /organizer/register.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := validation.BindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	o, err := h.svc.Register(c.Request.Context(), RegisterParams{
		Email:     req.Email,
		Password:  req.Password,
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		Phone:     req.Phone,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Created(c, "Organizer created successfully", o.ToPublic())
}

// Login handles POST /organizer/login.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := validation.BindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	token, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.OK(c, gin.H{"access_token": token})
}

// UpdateInfo handles PUT /organizer/info/update.
func (h *Handler) UpdateInfo(c *gin.Context) {
	var req UpdateRequest
	if err := validation.BindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}
	principal, _ := middleware.PrincipalFrom(c)
	o, err := h.svc.UpdateSelf(c.Request.Context(), principal, UpdateParams{
		Email:     req.Email,
		Password:  req.Password,
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		Phone:     req.Phone,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Created(c, "Organizer updated successfully", o.ToPublic())
}

// Info handles GET /organizer/info.
func (h *Handler) Info(c *gin.Context) {
	principal, _ := middleware.PrincipalFrom(c)
	o, err := h.svc.Self(c.Request.Context(), principal)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.OK(c, response.Result{Result: o.ToPublic()})
}

// List handles GET /organizer/list.
func (h *Handler) List(c *gin.Context) {
	raw, present := c.GetQuery("page")
	page, err := pagination.Parse(raw, present)
	if err != nil {
		_ = c.Error(err)
		return
	}
	res, err := h.svc.List(c.Request.Context(), page)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.OK(c, gin.H{"has_next": res.HasNext, "organizers": res.Items})
}

// GetByID handles GET /organizer/list/:organizer_id.
func (h *Handler) GetByID(c *gin.Context) {
	id, err := validation.ParamID(c, "organizer_id")
	if err != nil {
		_ = c.Error(err)
		return
	}
	o, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.OK(c, o.ToPublic())
}
