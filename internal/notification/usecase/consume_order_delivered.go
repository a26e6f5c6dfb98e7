package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dailyvegies/api/internal/pkg/mail"
)

type ConsumeOrderDeliveredInput struct {
	OrderID       int64  `validate:"required,gt=0"`
	ConsumerEmail string `validate:"required,email"`
	ConsumerName  string `validate:"required"`
}

// ConsumeOrderDelivered confirms to the consumer that the order arrived.
func (s *Usecase) ConsumeOrderDelivered(ctx context.Context, in ConsumeOrderDeliveredInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeOrderDelivered")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "Validation failed", "error", err)
		return nil
	}

	body := fmt.Sprintf("Hello %s,\n\nYour order #%d has been delivered. Enjoy your vegetables!\n\nDailyVegies",
		in.ConsumerName, in.OrderID)

	if err := s.repoMail.Send(ctx, mail.Message{
		To:       []string{in.ConsumerEmail},
		Subject:  fmt.Sprintf("Order #%d delivered", in.OrderID),
		TextBody: body,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to send delivery email", "order_id", in.OrderID, "error", err)
		return err
	}

	return nil
}
