package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"gachastore/internal/identity"
	"gachastore/internal/pkg/apperr"
	"gachastore/internal/pkg/response"
)

const identityKey = "identity"

// RequireAuth resolves the bearer token and aborts on any failure.
// The classified identity lands in the context for guards downstream.
func RequireAuth(resolver *identity.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Abort()
			return
		}

		id, err := resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			apperr.Respond(c, err)
			c.Abort()
			return
		}

		c.Set(identityKey, id)
		c.Next()
	}
}

// OptionalAuth resolves the token when a header is present and lets
// anonymous requests through. A present-but-invalid token still aborts.
func OptionalAuth(resolver *identity.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			c.Next()
			return
		}

		token, ok := bearerToken(c)
		if !ok {
			c.Abort()
			return
		}

		id, err := resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			apperr.Respond(c, err)
			c.Abort()
			return
		}

		c.Set(identityKey, id)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	h := c.GetHeader("Authorization")
	if h == "" {
		response.Error(c, 401, "AUTH_HEADER_MISSING", "Missing Authorization header")
		return "", false
	}
	if !strings.HasPrefix(h, "Bearer ") {
		response.Error(c, 401, "INVALID_AUTH_FORMAT", "Invalid Authorization header")
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	if token == "" {
		response.Error(c, 401, "INVALID_AUTH_FORMAT", "Empty token")
		return "", false
	}
	return token, true
}

// IdentityFrom returns the classified identity set by RequireAuth, or
// nil for anonymous requests.
func IdentityFrom(c *gin.Context) *identity.Identity {
	v, exists := c.Get(identityKey)
	if !exists {
		return nil
	}
	id, ok := v.(*identity.Identity)
	if !ok {
		return nil
	}
	return id
}
