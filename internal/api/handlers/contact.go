package handlers

import (
	"errors"
	"net/http"

	"github.com/osa911/contactrelay/internal/api/dto/v1/contact"
	"github.com/osa911/contactrelay/internal/api/sanitization"
	"github.com/osa911/contactrelay/internal/api/validation"
	"github.com/osa911/contactrelay/internal/service"
	"github.com/osa911/contactrelay/internal/utils"

	"github.com/gin-gonic/gin"
)

// Messages returned by the contact endpoint
const (
	MsgSuccess          = "Thank you! Your message has been sent successfully. We will get back to you soon."
	MsgMethodNotAllowed = "Method not allowed."
	MsgConfiguration    = "Email configuration incomplete. Please contact the site administrator."
	MsgMissingFields    = "Please fill in all required fields."
	MsgInvalidEmail     = "Please enter a valid email address."
	MsgDispatch         = "There was an error sending your message. Please try again later."
	MsgNotFound         = "Not found."
)

// errorResponses maps pipeline errors to status and message, in match order
var errorResponses = []struct {
	err     error
	status  int
	message string
}{
	{service.ErrMethodNotAllowed, http.StatusMethodNotAllowed, MsgMethodNotAllowed},
	{service.ErrConfiguration, http.StatusInternalServerError, MsgConfiguration},
	{service.ErrMissingFields, http.StatusBadRequest, MsgMissingFields},
	{service.ErrInvalidEmail, http.StatusBadRequest, MsgInvalidEmail},
	{service.ErrDispatch, http.StatusInternalServerError, MsgDispatch},
}

type ContactHandler struct {
	contactService *service.ContactService
	validator      *validation.SubmissionValidator
}

func NewContactHandler(contactService *service.ContactService) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		validator:      validation.NewSubmissionValidator(),
	}
}

// Submit handles a contact form POST. Every outcome is written by exactly
// one call to the responder.
func (h *ContactHandler) Submit(c *gin.Context) {
	if err := h.process(c); err != nil {
		h.respondError(c, err)
		return
	}

	utils.HandleSuccess(c, MsgSuccess)
}

// MethodNotAllowed answers methods the router has no route for, such as
// WebDAV verbs or custom methods, with the same JSON 405 as Submit.
func MethodNotAllowed(c *gin.Context) {
	utils.HandleError(c, http.StatusMethodNotAllowed, MsgMethodNotAllowed)
}

func NotFound(c *gin.Context) {
	utils.HandleError(c, http.StatusNotFound, MsgNotFound)
}

// process runs the pipeline and stops at the first failing stage
func (h *ContactHandler) process(c *gin.Context) error {
	if c.Request.Method != http.MethodPost {
		return service.ErrMethodNotAllowed
	}

	// Checked before any input is read
	if !h.contactService.Configured() {
		return service.ErrConfiguration
	}

	fields := sanitization.SanitizeForm(readForm(c))

	if err := h.validator.Validate(fields); err != nil {
		return err
	}

	return h.contactService.Send(c.Request.Context(), fields)
}

// readForm collects the six form fields. Absent keys and unparsable bodies
// both yield empty values, which validation then reports as missing.
func readForm(c *gin.Context) contact.ContactForm {
	return contact.ContactForm{
		Name:    c.PostForm("name"),
		Email:   c.PostForm("email"),
		Phone:   c.PostForm("phone"),
		Company: c.PostForm("company"),
		Subject: c.PostForm("subject"),
		Message: c.PostForm("message"),
	}
}

func (h *ContactHandler) respondError(c *gin.Context, err error) {
	for _, r := range errorResponses {
		if errors.Is(err, r.err) {
			if r.status >= http.StatusInternalServerError {
				utils.HandleAPIError(c, err, r.status, r.message)
				return
			}
			utils.HandleError(c, r.status, r.message)
			return
		}
	}

	utils.HandleAPIError(c, err, http.StatusInternalServerError, MsgDispatch)
}
