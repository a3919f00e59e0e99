package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gachastore/internal/identity"
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
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/signup", h.Signup)
		authGroup.POST("/signin", h.Signin)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	authGroup := protected.Group("/auth")
	{
		authGroup.GET("/me", h.Me)
	}
}

func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if fieldErrs := validator.Struct(req); fieldErrs != nil {
		response.ValidationError(c, fieldErrs)
		return
	}

	account, err := h.service.Signup(c.Request.Context(), req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	response.Created(c, gin.H{"account": account})
}

func (h *Handler) Signin(c *gin.Context) {
	var req SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if fieldErrs := validator.Struct(req); fieldErrs != nil {
		response.ValidationError(c, fieldErrs)
		return
	}

	result, err := h.service.Signin(c.Request.Context(), req)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	response.OK(c, result)
}

func (h *Handler) Me(c *gin.Context) {
	id := middleware.IdentityFrom(c)
	if err := identity.RequireAuthenticated(id); err != nil {
		apperr.Respond(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"account": h.service.Me(id)})
}
