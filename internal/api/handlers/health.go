package handlers

import (
	"net/http"

	"github.com/osa911/contactrelay/internal/service"
	"github.com/osa911/contactrelay/internal/version"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	contactService *service.ContactService
	transport      string
}

func NewHealthHandler(contactService *service.ContactService, transport string) *HealthHandler {
	return &HealthHandler{contactService: contactService, transport: transport}
}

// Check reports liveness. A missing recipient degrades the status but the
// process stays up, since it only affects contact submissions.
func (h *HealthHandler) Check(c *gin.Context) {
	status := "ok"
	if !h.contactService.Configured() {
		status = "degraded"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     status,
		"transport":  h.transport,
		"configured": h.contactService.Configured(),
		"version":    version.GetBuildInfo().Version,
	})
}
