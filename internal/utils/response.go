package utils

import (
	"net/http"

	"github.com/osa911/contactrelay/internal/api/dto/v1/contact"

	"github.com/gin-gonic/gin"
)

// Respond writes status and payload as JSON and stops the handler chain.
// Slashes and HTML characters are written unescaped.
func Respond(c *gin.Context, status int, payload contact.ContactResponse) {
	c.Abort()
	c.PureJSON(status, payload)
}

// HandleSuccess sends a 200 response carrying a success message
func HandleSuccess(c *gin.Context, message string) {
	Respond(c, http.StatusOK, contact.ContactResponse{Success: message})
}

// HandleError sends an error response carrying a user facing message
func HandleError(c *gin.Context, status int, message string) {
	Respond(c, status, contact.ContactResponse{Error: message})
}
