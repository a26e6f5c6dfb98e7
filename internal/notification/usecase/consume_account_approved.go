package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dailyvegies/api/internal/pkg/mail"
)

type ConsumeAccountApprovedInput struct {
	AccountID int64  `validate:"required,gt=0"`
	Email     string `validate:"required,email"`
	FullName  string `validate:"required"`
	Role      string `validate:"required"`
}

// ConsumeAccountApproved tells a farmer or delivery agent that an admin
// activated their account.
func (s *Usecase) ConsumeAccountApproved(ctx context.Context, in ConsumeAccountApprovedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeAccountApproved")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "Validation failed", "error", err)
		return nil
	}

	body := fmt.Sprintf("Hello %s,\n\nYour %s account has been approved. You can now sign in.\n\nDailyVegies",
		in.FullName, in.Role)

	if err := s.repoMail.Send(ctx, mail.Message{
		To:       []string{in.Email},
		Subject:  "Your DailyVegies account is approved",
		TextBody: body,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to send approval email", "email", in.Email, "error", err)
		return err
	}

	return nil
}
