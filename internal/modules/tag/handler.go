package tag

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

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	v1.GET("/tags", h.List)
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	tags := protected.Group("/tags")
	{
		tags.POST("", h.Create)
		tags.PUT("/:id", h.Update)
		tags.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) List(c *gin.Context) {
	tags, err := h.service.List(c.Request.Context())
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	response.OK(c, gin.H{"tags": tags})
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if fieldErrs := validator.Struct(req); fieldErrs != nil {
		response.ValidationError(c, fieldErrs)
		return
	}

	t, err := h.service.Create(c.Request.Context(), middleware.IdentityFrom(c), req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	response.Created(c, gin.H{"tag": t})
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if fieldErrs := validator.Struct(req); fieldErrs != nil {
		response.ValidationError(c, fieldErrs)
		return
	}

	t, err := h.service.Update(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id"), req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	response.OK(c, gin.H{"tag": t})
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id")); err != nil {
		apperr.Respond(c, err)
		return
	}
	response.OK(c, gin.H{"deleted": true})
}
