package apperr

import (
	"log"

	"github.com/gin-gonic/gin"

	"gachastore/internal/pkg/response"
)

// Respond writes err onto the gin context using the standard envelope.
// Unknown errors are logged and surfaced as a generic 500.
func Respond(c *gin.Context, err error) {
	if e, ok := As(err); ok {
		if e.Kind == KindInternal && e.err != nil {
			log.Printf("internal error: %v", e.err)
		}
		response.ErrorWithDetails(c, e.HTTPStatus(), e.Code, e.Message, e.Details)
		return
	}
	log.Printf("unhandled error: %v", err)
	response.InternalError(c)
}
