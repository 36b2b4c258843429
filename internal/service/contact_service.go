package service

import (
	"context"
	"fmt"

	"github.com/osa911/contactrelay/internal/api/dto/v1/contact"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const tracerName = "github.com/osa911/contactrelay/internal/service"

// ContactService composes contact notifications and hands them to a Mailer
type ContactService struct {
	mailer    Mailer
	recipient string
	transport string
}

// NewContactService creates a service delivering to recipient through mailer.
// transport only labels telemetry.
func NewContactService(mailer Mailer, recipient, transport string) *ContactService {
	return &ContactService{
		mailer:    mailer,
		recipient: recipient,
		transport: transport,
	}
}

// Configured reports whether a destination address is set
func (s *ContactService) Configured() bool {
	return s.recipient != ""
}

// Send composes the notification for fields and makes a single delivery
// attempt. Any transport failure is returned wrapped in ErrDispatch.
func (s *ContactService) Send(ctx context.Context, fields contact.SubmissionFields) error {
	if !s.Configured() {
		return ErrConfiguration
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "contact.dispatch")
	defer span.End()
	span.SetAttributes(
		attribute.String("mail.transport", s.transport),
		attribute.Bool("contact.has_phone", fields.Phone != ""),
		attribute.Bool("contact.has_company", fields.Company != ""),
	)

	subject := BuildSubject(fields.Subject)
	body := BuildBody(fields)
	headers := BuildHeaders(fields.Email)

	if err := s.mailer.Send(ctx, s.recipient, subject, body, headers); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "dispatch failed")
		return fmt.Errorf("%w: %v", ErrDispatch, err)
	}

	span.SetStatus(codes.Ok, "")
	return nil
}
