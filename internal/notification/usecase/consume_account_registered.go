package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dailyvegies/api/internal/pkg/mail"
)

type ConsumeAccountRegisteredInput struct {
	AccountID int64  `validate:"required,gt=0"`
	Email     string `validate:"required,email"`
	FullName  string `validate:"required"`
	Role      string `validate:"required"`
}

// ConsumeAccountRegistered sends the welcome email after a verified
// registration. A malformed event is dropped, not retried.
func (s *Usecase) ConsumeAccountRegistered(ctx context.Context, in ConsumeAccountRegisteredInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeAccountRegistered")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "Validation failed", "error", err)
		return nil
	}

	body := fmt.Sprintf("Hello %s,\n\nWelcome to DailyVegies! Your account is ready.\n\nDailyVegies", in.FullName)
	if in.Role != "consumer" {
		body = fmt.Sprintf("Hello %s,\n\nThanks for registering as a %s. An admin will review your account shortly; "+
			"we will email you once it is approved.\n\nDailyVegies", in.FullName, in.Role)
	}

	if err := s.repoMail.Send(ctx, mail.Message{
		To:       []string{in.Email},
		Subject:  "Welcome to DailyVegies",
		TextBody: body,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to send welcome email", "email", in.Email, "error", err)
		return err
	}

	return nil
}
