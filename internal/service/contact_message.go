package service

import (
	"strings"

	"github.com/osa911/contactrelay/internal/api/dto/v1/contact"
)

const (
	crlf          = "\r\n"
	subjectPrefix = "New Contact: "
	bodyHeading   = "New Contact Form Submission"
	lineBreak     = "<br />"
)

// BuildHeaders returns the MIME header block for a notification sent on
// behalf of fromEmail. Lines are CRLF terminated.
func BuildHeaders(fromEmail string) string {
	var b strings.Builder
	b.WriteString("MIME-Version: 1.0" + crlf)
	b.WriteString("Content-type: text/html; charset=UTF-8" + crlf)
	b.WriteString("From: " + fromEmail + crlf)
	b.WriteString("Reply-To: " + fromEmail + crlf)
	return b.String()
}

// BuildSubject returns the subject line of the outbound notification
func BuildSubject(subject string) string {
	return subjectPrefix + subject
}

// BuildBody renders the HTML notification for a sanitized submission.
// Field values are written as-is; escaping happens once, in sanitization.
func BuildBody(fields contact.SubmissionFields) string {
	var b bodyBuilder
	b.open()
	b.heading(bodyHeading)
	b.field("Name", fields.Name)
	b.field("Email", fields.Email)
	b.optionalField("Phone", fields.Phone)
	b.optionalField("Company/Organization", fields.Company)
	b.field("Subject", fields.Subject)
	b.label("Message")
	b.paragraph(nl2br(fields.Message))
	b.close()
	return b.String()
}

type bodyBuilder struct {
	strings.Builder
}

func (b *bodyBuilder) open() {
	b.WriteString("<html>\n<body style=\"font-family: Arial, sans-serif;\">\n")
}

func (b *bodyBuilder) close() {
	b.WriteString("</body>\n</html>\n")
}

func (b *bodyBuilder) heading(text string) {
	b.WriteString("<h2>" + text + "</h2>\n")
}

func (b *bodyBuilder) field(label, value string) {
	b.WriteString("<p><strong>" + label + ":</strong> " + value + "</p>\n")
}

func (b *bodyBuilder) optionalField(label, value string) {
	if value == "" {
		return
	}
	b.field(label, value)
}

func (b *bodyBuilder) label(label string) {
	b.WriteString("<p><strong>" + label + ":</strong></p>\n")
}

func (b *bodyBuilder) paragraph(html string) {
	b.WriteString("<p>" + html + "</p>\n")
}

// nl2br replaces every line ending with an HTML line break
var nl2brReplacer = strings.NewReplacer("\r\n", lineBreak, "\r", lineBreak, "\n", lineBreak)

func nl2br(s string) string {
	return nl2brReplacer.Replace(s)
}
