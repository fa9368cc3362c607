package middleware

import (
	"inkwell/pkg/database"
	"inkwell/pkg/logger"

	"github.com/gin-gonic/gin"
)

// QueryCount attaches a request-scoped statement counter to the request
// context and logs the total once the handler chain finishes.
func QueryCount(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, qc := database.WithQueryCounter(c.Request.Context())
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		log.Info("%s %s -> %d (%d db queries)", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), qc.Count())
	}
}
