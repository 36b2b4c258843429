package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/osa911/contactrelay/internal/api/dto/v1/contact"
	"github.com/osa911/contactrelay/internal/api/sanitization"
	"github.com/osa911/contactrelay/internal/api/validation"
	"github.com/osa911/contactrelay/internal/service"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

var sendForm contact.ContactForm

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a contact submission through the configured transport",
	Long: `Run a submission through sanitization, validation, composition and
dispatch without going through HTTP. Useful to check mail relay settings.

Example:
  contactctl send --name "Jo" --email jo@example.com --subject "Test" --message "Hello"`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		mailer, err := service.NewMailer(cfg, logger)
		if err != nil {
			logger.Error("Failed to create mailer: %v", err)
			os.Exit(1)
		}

		svc := service.NewContactService(mailer, cfg.RecipientEmail, cfg.MailTransport)
		timeout, _ := cmd.Flags().GetDuration("timeout")

		s := spinner.New(spinner.CharSets[14], 120*time.Millisecond)
		s.Suffix = fmt.Sprintf(" Sending via %s...", cfg.MailTransport)
		s.Start()
		err = submit(cmd.Context(), svc, sendForm, timeout)
		s.Stop()

		if err != nil {
			logger.Error("Submission failed: %v", err)
			os.Exit(exitCode(err))
		}
		fmt.Printf("Message handed to %s transport for %s\n", cfg.MailTransport, cfg.RecipientEmail)
	},
}

// submit runs one form through the same stages as the HTTP handler
func submit(ctx context.Context, svc *service.ContactService, form contact.ContactForm, timeout time.Duration) error {
	if !svc.Configured() {
		return service.ErrConfiguration
	}

	fields := sanitization.SanitizeForm(form)
	if err := validation.NewSubmissionValidator().Validate(fields); err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	return svc.Send(ctx, fields)
}

// exitCode separates operator mistakes from transport failures
func exitCode(err error) int {
	switch {
	case errors.Is(err, service.ErrMissingFields), errors.Is(err, service.ErrInvalidEmail):
		return 2
	case errors.Is(err, service.ErrConfiguration):
		return 3
	default:
		return 1
	}
}

func init() {
	sendCmd.Flags().StringVar(&sendForm.Name, "name", "", "Submitter name")
	sendCmd.Flags().StringVar(&sendForm.Email, "email", "", "Submitter email address")
	sendCmd.Flags().StringVar(&sendForm.Phone, "phone", "", "Submitter phone (optional)")
	sendCmd.Flags().StringVar(&sendForm.Company, "company", "", "Submitter company (optional)")
	sendCmd.Flags().StringVar(&sendForm.Subject, "subject", "", "Message subject")
	sendCmd.Flags().StringVar(&sendForm.Message, "message", "", "Message body")
	sendCmd.Flags().Duration("timeout", 30*time.Second, "Give up on the transport after this long")
}
