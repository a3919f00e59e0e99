package submission

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
	subs := protected.Group("/submissions")
	{
		subs.POST("", h.Submit)
		subs.GET("/my", h.Mine)
		subs.GET("", h.ListAll)
		subs.GET("/:id", h.Get)
		subs.PUT("/:id/review", h.Review)
		subs.GET("/:id/history", h.History)
	}
	protected.GET("/shops/:id/submissions", h.ShopHistory)
}

func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if fieldErrs := validator.Struct(req); fieldErrs != nil {
		response.ValidationError(c, fieldErrs)
		return
	}

	sub, err := h.service.Submit(
		c.Request.Context(),
		middleware.IdentityFrom(c),
		req,
		c.ClientIP(),
		c.Request.UserAgent(),
	)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	response.Created(c, gin.H{"submission": sub})
}

func (h *Handler) Mine(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	subs, total, page, perPage, err := h.service.Mine(c.Request.Context(), middleware.IdentityFrom(c), q)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	response.OK(c, gin.H{
		"submissions": subs,
		"total":       total,
		"page":        page,
		"per_page":    perPage,
		"total_pages": response.TotalPages(total, perPage),
	})
}

func (h *Handler) ListAll(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	subs, total, page, perPage, err := h.service.ListAll(c.Request.Context(), middleware.IdentityFrom(c), q)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	response.OK(c, gin.H{
		"submissions": subs,
		"total":       total,
		"page":        page,
		"per_page":    perPage,
		"total_pages": response.TotalPages(total, perPage),
	})
}

func (h *Handler) Get(c *gin.Context) {
	sub, err := h.service.Get(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id"))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	response.OK(c, gin.H{"submission": sub})
}

func (h *Handler) Review(c *gin.Context) {
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if fieldErrs := validator.Struct(req); fieldErrs != nil {
		response.ValidationError(c, fieldErrs)
		return
	}

	res, err := h.service.Review(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id"), req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	response.OK(c, gin.H{
		"action":     res.Action,
		"shop":       res.Shop,
		"submission": res.Submission,
	})
}

func (h *Handler) History(c *gin.Context) {
	entries, err := h.service.History(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id"))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	response.OK(c, gin.H{"history": entries})
}

func (h *Handler) ShopHistory(c *gin.Context) {
	subs, err := h.service.HistoryForShop(c.Request.Context(), middleware.IdentityFrom(c), c.Param("id"))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	response.OK(c, gin.H{"submissions": subs})
}
