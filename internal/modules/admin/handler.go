package admin

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

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	users := protected.Group("/admin/users")
	{
		users.GET("", h.List)
		users.GET("/stats", h.Stats)
		users.GET("/:id", h.Get)
		users.POST("/:id/approve", h.Approve)
		users.POST("/:id/reject", h.Reject)
		users.POST("/:id/suspend", h.Suspend)
		users.POST("/:id/activate", h.Activate)
		users.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	users, total, page, perPage, err := h.service.List(c.Request.Context(), middleware.IdentityFrom(c), q)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	response.OK(c, gin.H{
		"users":       users,
		"total":       total,
		"page":        page,
		"per_page":    perPage,
		"total_pages": response.TotalPages(total, perPage),
	})
}

func (h *Handler) Get(c *gin.Context) {
	user, err := h.service.Get(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id"))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	response.OK(c, gin.H{"user": user})
}

func (h *Handler) Approve(c *gin.Context) {
	user, err := h.service.Approve(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id"))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	response.OK(c, gin.H{"user": user})
}

func (h *Handler) Reject(c *gin.Context) {
	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if fieldErrs := validator.Struct(req); fieldErrs != nil {
		response.ValidationError(c, fieldErrs)
		return
	}

	user, err := h.service.Reject(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id"), req.Reason)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	response.OK(c, gin.H{"user": user})
}

func (h *Handler) Suspend(c *gin.Context) {
	user, err := h.service.Suspend(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id"))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	response.OK(c, gin.H{"user": user})
}

func (h *Handler) Activate(c *gin.Context) {
	user, err := h.service.Activate(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id"))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	response.OK(c, gin.H{"user": user})
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id")); err != nil {
		apperr.Respond(c, err)
		return
	}
	response.OK(c, gin.H{"deleted": true})
}

func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context(), middleware.IdentityFrom(c))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	response.OK(c, gin.H{"stats": stats})
}
