package shop

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

// RegisterPublicRoutes mounts the read surface. The group should carry
// OptionalAuth so administrative callers get their widened view.
func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	shops := v1.Group("/shops")
	{
		shops.GET("", h.List)
		shops.GET("/:id", h.Get)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	shops := protected.Group("/shops")
	{
		shops.POST("", h.Create)
		shops.POST("/submit", h.Submit)
		shops.GET("/my", h.MyShops)
		shops.PUT("/:id", h.Update)
		shops.DELETE("/:id", h.Delete)
		shops.POST("/:id/verify", h.Verify)
		shops.POST("/:id/claim", h.Claim)
		shops.POST("/:id/owner-verify", h.VerifyOwner)
	}
}

func (h *Handler) List(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	shops, total, page, perPage, err := h.service.List(c.Request.Context(), middleware.IdentityFrom(c), q)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	response.OK(c, gin.H{
		"shops":       shops,
		"total":       total,
		"page":        page,
		"per_page":    perPage,
		"total_pages": response.TotalPages(total, perPage),
	})
}

func (h *Handler) Get(c *gin.Context) {
	shop, err := h.service.Get(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id"))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	response.OK(c, gin.H{"shop": shop})
}

func (h *Handler) Create(c *gin.Context) {
	var p Payload
	if err := c.ShouldBindJSON(&p); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	shop, err := h.service.Create(c.Request.Context(), middleware.IdentityFrom(c), &p)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	response.Created(c, gin.H{"shop": shop})
}

func (h *Handler) Submit(c *gin.Context) {
	var p Payload
	if err := c.ShouldBindJSON(&p); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	shop, err := h.service.Submit(c.Request.Context(), middleware.IdentityFrom(c), &p)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	response.Created(c, gin.H{"shop": shop})
}

func (h *Handler) Update(c *gin.Context) {
	var p Payload
	if err := c.ShouldBindJSON(&p); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	shop, err := h.service.Update(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id"), &p)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	response.OK(c, gin.H{"shop": shop})
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id")); err != nil {
		apperr.Respond(c, err)
		return
	}
	response.OK(c, gin.H{"deleted": true})
}

func (h *Handler) Verify(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if fieldErrs := validator.Struct(req); fieldErrs != nil {
		response.ValidationError(c, fieldErrs)
		return
	}

	shop, err := h.service.Verify(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id"), req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	response.OK(c, gin.H{"shop": shop})
}

func (h *Handler) MyShops(c *gin.Context) {
	shops, err := h.service.MyShops(c.Request.Context(), middleware.IdentityFrom(c))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	response.OK(c, gin.H{"shops": shops})
}

func (h *Handler) Claim(c *gin.Context) {
	var req ClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if fieldErrs := validator.Struct(req); fieldErrs != nil {
		response.ValidationError(c, fieldErrs)
		return
	}

	link, err := h.service.Claim(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id"), req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	response.Created(c, gin.H{"owner_link": link})
}

func (h *Handler) VerifyOwner(c *gin.Context) {
	var req VerifyOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if fieldErrs := validator.Struct(req); fieldErrs != nil {
		response.ValidationError(c, fieldErrs)
		return
	}

	link, err := h.service.VerifyOwner(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id"), req.OwnerID)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	response.OK(c, gin.H{"owner_link": link})
}
