package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/osa911/contactrelay/internal/api/constants"
	"github.com/osa911/contactrelay/internal/api/dto/v1/contact"
	"github.com/osa911/contactrelay/internal/logging"

	"github.com/gin-gonic/gin"
)

// Recovery turns a panic into a JSON 500 and logs the stack trace
func Recovery(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("[PANIC] %s | %s %s | %v\n%s",
					c.GetString(constants.ContextKeyRequestID),
					c.Request.Method,
					c.Request.URL.Path,
					err,
					debug.Stack(),
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError, contact.ContactResponse{
					Error: "Internal server error.",
				})
			}
		}()

		c.Next()
	}
}
