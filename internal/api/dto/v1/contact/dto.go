package contact

// ContactForm is the raw form-encoded contact submission.
// Missing keys bind to empty strings.
type ContactForm struct {
	Name    string `form:"name"`
	Email   string `form:"email"`
	Phone   string `form:"phone"`
	Company string `form:"company"`
	Subject string `form:"subject"`
	Message string `form:"message"`
}

// SubmissionFields holds one sanitized submission.
// Every value is trimmed and HTML-escaped before it is stored here.
type SubmissionFields struct {
	Name    string `validate:"required"`
	Email   string `validate:"required,contact_email"`
	Phone   string
	Company string
	Subject string `validate:"required"`
	Message string `validate:"required"`
}

// ContactResponse is the JSON body returned by the contact endpoint.
// Exactly one of the two fields is set.
type ContactResponse struct {
	Success string `json:"success,omitempty"`
	Error   string `json:"error,omitempty"`
}
