package sanitization

import (
	"html"
	"html/template"
	"strings"

	"github.com/osa911/contactrelay/internal/api/dto/v1/contact"
)

// Sanitize trims surrounding whitespace and HTML-escapes the result.
// Input that is already escaped is unescaped first, so applying Sanitize
// twice gives the same string as applying it once.
func Sanitize(input string) string {
	safe := strings.TrimSpace(input)
	safe = html.UnescapeString(safe)
	safe = template.HTMLEscapeString(safe)
	return strings.TrimSpace(safe)
}

// SanitizeForm cleans every field of a raw contact form submission
func SanitizeForm(form contact.ContactForm) contact.SubmissionFields {
	return contact.SubmissionFields{
		Name:    Sanitize(form.Name),
		Email:   Sanitize(form.Email),
		Phone:   Sanitize(form.Phone),
		Company: Sanitize(form.Company),
		Subject: Sanitize(form.Subject),
		Message: Sanitize(form.Message),
	}
}
