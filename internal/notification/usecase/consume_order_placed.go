package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dailyvegies/api/internal/pkg/mail"
)

type ConsumeOrderPlacedInput struct {
	OrderID       int64  `validate:"required,gt=0"`
	ConsumerEmail string `validate:"required,email"`
	ConsumerName  string `validate:"required"`
	ItemCount     int32  `validate:"required,gt=0"`
	TotalAmount   int64  `validate:"required,gt=0"`
}

// ConsumeOrderPlaced sends the order receipt email.
func (s *Usecase) ConsumeOrderPlaced(ctx context.Context, in ConsumeOrderPlacedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumeOrderPlaced")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "Validation failed", "error", err)
		return nil
	}

	body := fmt.Sprintf("Hello %s,\n\nWe received your order #%d (%d items, total %d). "+
		"We will let you know when it is out for delivery.\n\nDailyVegies",
		in.ConsumerName, in.OrderID, in.ItemCount, in.TotalAmount)

	if err := s.repoMail.Send(ctx, mail.Message{
		To:       []string{in.ConsumerEmail},
		Subject:  fmt.Sprintf("Order #%d confirmed", in.OrderID),
		TextBody: body,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to send order receipt email", "order_id", in.OrderID, "error", err)
		return err
	}

	return nil
}
