package service

import (
	"strings"
	"testing"

	"github.com/osa911/contactrelay/internal/api/dto/v1/contact"
	"github.com/osa911/contactrelay/internal/api/sanitization"

	"github.com/stretchr/testify/assert"
)

func TestBuildHeaders(t *testing.T) {
	headers := BuildHeaders("jo@x.com")

	assert.Equal(t,
		"MIME-Version: 1.0\r\n"+
			"Content-type: text/html; charset=UTF-8\r\n"+
			"From: jo@x.com\r\n"+
			"Reply-To: jo@x.com\r\n",
		headers)
}

func TestBuildSubject(t *testing.T) {
	assert.Equal(t, "New Contact: Hi", BuildSubject("Hi"))
}

func TestBuildBodyOmitsEmptyOptionalFields(t *testing.T) {
	body := BuildBody(contact.SubmissionFields{
		Name:    "Jo",
		Email:   "jo@x.com",
		Subject: "Hi",
		Message: "Hello",
	})

	assert.Contains(t, body, "<h2>New Contact Form Submission</h2>")
	assert.Contains(t, body, "<strong>Name:</strong> Jo")
	assert.Contains(t, body, "<strong>Email:</strong> jo@x.com")
	assert.Contains(t, body, "<strong>Subject:</strong> Hi")
	assert.NotContains(t, body, "Phone")
	assert.NotContains(t, body, "Company/Organization")
}

func TestBuildBodyFieldOrder(t *testing.T) {
	body := BuildBody(contact.SubmissionFields{
		Name:    "Jo",
		Email:   "jo@x.com",
		Phone:   "555-0100",
		Company: "Acme",
		Subject: "Hi",
		Message: "Hello",
	})

	order := []string{
		"New Contact Form Submission",
		"<strong>Name:</strong> Jo",
		"<strong>Email:</strong> jo@x.com",
		"<strong>Phone:</strong> 555-0100",
		"<strong>Company/Organization:</strong> Acme",
		"<strong>Subject:</strong> Hi",
		"<strong>Message:</strong>",
		"Hello",
	}

	last := -1
	for _, part := range order {
		idx := strings.Index(body, part)
		if assert.GreaterOrEqual(t, idx, 0, "missing %q", part) {
			assert.Greater(t, idx, last, "%q out of order", part)
			last = idx
		}
	}
}

func TestBuildBodyConvertsNewlines(t *testing.T) {
	body := BuildBody(contact.SubmissionFields{
		Name:    "Jo",
		Email:   "jo@x.com",
		Subject: "Hi",
		Message: "Line1\nLine2\r\nLine3",
	})

	assert.Contains(t, body, "<p>Line1<br />Line2<br />Line3</p>")
	assert.NotContains(t, body, "Line1\n")
}

func TestBuildBodyKeepsMarkupEscaped(t *testing.T) {
	fields := sanitization.SanitizeForm(contact.ContactForm{
		Name:    "<script>alert(1)</script>",
		Email:   "jo@x.com",
		Subject: "Hi",
		Message: "<img src=x onerror=alert(1)>",
	})

	body := BuildBody(fields)

	assert.NotContains(t, body, "<script>")
	assert.NotContains(t, body, "<img")
	assert.Contains(t, body, "&lt;script&gt;alert(1)&lt;/script&gt;")
}
