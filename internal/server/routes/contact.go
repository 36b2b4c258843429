package routes

import (
	"github.com/osa911/contactrelay/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// SetupContactRoutes registers the contact endpoint for every method.
// The handler answers non-POST requests itself with a JSON 405.
func SetupContactRoutes(router *gin.Engine, path string, contact *handlers.ContactHandler) {
	router.Any(path, contact.Submit)
}
