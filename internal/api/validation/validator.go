package validation

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/osa911/contactrelay/internal/api/dto/v1/contact"
	"github.com/osa911/contactrelay/internal/service"

	"github.com/go-playground/validator/v10"
)

// emailRegex is the accepted address grammar: a dot-atom local part (no
// leading, trailing or doubled dots), "@", then dot separated hostname
// labels ending in an alphabetic TLD.
// Quoted local parts, IP literals and internationalized domains are rejected.
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9_%+-]+(?:\.[a-zA-Z0-9_%+-]+)*@(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]*[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}$`)

// RegisterValidators registers custom validators
func RegisterValidators(v *validator.Validate) error {
	return v.RegisterValidation("contact_email", validateEmail)
}

// validateEmail checks if the email is valid
func validateEmail(fl validator.FieldLevel) bool {
	return IsValidEmail(fl.Field().String())
}

// IsValidEmail reports whether email matches the accepted address grammar
func IsValidEmail(email string) bool {
	if len(email) > 254 {
		return false
	}
	return emailRegex.MatchString(email)
}

// SubmissionValidator checks sanitized contact submissions
type SubmissionValidator struct {
	validate *validator.Validate
}

// NewSubmissionValidator creates a validator with the custom rules registered
func NewSubmissionValidator() *SubmissionValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := RegisterValidators(v); err != nil {
		panic(fmt.Sprintf("register validators: %v", err))
	}
	return &SubmissionValidator{validate: v}
}

// Validate returns service.ErrMissingFields when a required field is empty,
// otherwise service.ErrInvalidEmail when the address is malformed.
// Missing fields always win over a malformed address.
func (sv *SubmissionValidator) Validate(fields contact.SubmissionFields) error {
	err := sv.validate.Struct(fields)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("validate submission: %w", err)
	}

	for _, e := range validationErrors {
		if e.Tag() == "required" {
			return fmt.Errorf("%w: %s", service.ErrMissingFields, e.Field())
		}
	}

	return fmt.Errorf("%w: %s failed %s", service.ErrInvalidEmail, validationErrors[0].Field(), validationErrors[0].Tag())
}
