package menu

import (
	"github.com/gin-gonic/gin"

	"gachastore/internal/middleware"
	"gachastore/internal/pkg/apperr"
	"gachastore/internal/pkg/response"
	"gachastore/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the menu surface on an authenticated group.
// Per-operation role checks happen inside the service.
func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	menus := protected.Group("/menus")
	{
		menus.GET("", h.List)
		menus.GET("/all", h.ListAll)
		menus.POST("", h.Create)
		menus.PUT("/:id", h.Update)
		menus.DELETE("/:id", h.Delete)
		menus.GET("/permissions/:adminId", h.Permissions)
		menus.PUT("/permissions/:adminId", h.ReplacePermissions)
	}
}

func (h *Handler) List(c *gin.Context) {
	tree, err := h.service.ListVisible(c.Request.Context(), middleware.IdentityFrom(c))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	response.OK(c, gin.H{"menus": tree})
}

func (h *Handler) ListAll(c *gin.Context) {
	tree, err := h.service.ListAll(c.Request.Context(), middleware.IdentityFrom(c))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	response.OK(c, gin.H{"menus": tree})
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if fieldErrs := validator.Struct(req); fieldErrs != nil {
		response.ValidationError(c, fieldErrs)
		return
	}

	m, err := h.service.Create(c.Request.Context(), middleware.IdentityFrom(c), req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	response.Created(c, gin.H{"menu": m})
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if fieldErrs := validator.Struct(req); fieldErrs != nil {
		response.ValidationError(c, fieldErrs)
		return
	}

	m, err := h.service.Update(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id"), req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	response.OK(c, gin.H{"menu": m})
}

func (h *Handler) Delete(c *gin.Context) {
	hard := c.Query("hard") == "true"
	if err := h.service.Delete(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id"), hard); err != nil {
		apperr.Respond(c, err)
		return
	}
	response.OK(c, gin.H{"deleted": true, "hard": hard})
}

func (h *Handler) Permissions(c *gin.Context) {
	perms, err := h.service.Permissions(c.Request.Context(), middleware.IdentityFrom(c), c.Param("adminId"))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	response.OK(c, gin.H{"permissions": perms})
}

func (h *Handler) ReplacePermissions(c *gin.Context) {
	var req ReplacePermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if fieldErrs := validator.Struct(req); fieldErrs != nil {
		response.ValidationError(c, fieldErrs)
		return
	}

	perms, err := h.service.ReplacePermissions(c.Request.Context(), middleware.IdentityFrom(c), c.Param("adminId"), req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	response.OK(c, gin.H{"permissions": perms})
}
