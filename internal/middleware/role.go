package middleware

import (
	"github.com/gin-gonic/gin"

	"gachastore/internal/domain"
	"gachastore/internal/identity"
	"gachastore/internal/pkg/apperr"
)

func requireGuard(check func(*identity.Identity) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := check(IdentityFrom(c)); err != nil {
			apperr.Respond(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin allows admin and super_admin.
func RequireAdmin() gin.HandlerFunc {
	return requireGuard(identity.RequireAdmin)
}

func RequireSuperAdmin() gin.HandlerFunc {
	return requireGuard(identity.RequireSuperAdmin)
}

func RequireOwner() gin.HandlerFunc {
	return requireGuard(identity.RequireOwner)
}

func RequireAdministrative() gin.HandlerFunc {
	return requireGuard(identity.RequireAdministrative)
}

func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	return requireGuard(func(id *identity.Identity) error {
		return identity.RequireRole(id, roles...)
	})
}
