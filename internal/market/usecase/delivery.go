package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/dailyvegies/api/internal/market/entity"
	"github.com/dailyvegies/api/internal/pkg/goerror"
	"github.com/dailyvegies/api/internal/pkg/mail"
	"github.com/dailyvegies/api/internal/pkg/otp"
	"github.com/dailyvegies/api/internal/pkg/pending"
)

var errIncorrectCode = errors.New("market: delivery code mismatch")

func deliveryKey(orderID int64) string {
	return strconv.FormatInt(orderID, 10)
}

type DeliveryOtpSendInput struct {
	OrderID int64 `validate:"required,gt=0"`
}

type DeliveryOtpSendOutput struct {
	ExpiresInSeconds int64
}

// DeliveryOtpSend emails a handover code to the consumer who placed the
// order. The delivery agent never sees the code; the consumer reads it out at
// the door. Re-sending replaces the previous code.
func (s *Usecase) DeliveryOtpSend(ctx context.Context, in DeliveryOtpSendInput) (*DeliveryOtpSendOutput, error) {
	ctx, span := s.startSpan(ctx, "DeliveryOtpSend")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	oc, err := s.repoDB.GetOrderConsumer(ctx, in.OrderID)
	if err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return nil, goerror.NewBusiness("Order not found", goerror.CodeNotFound)
		}

		slog.ErrorContext(ctx, "failed to repo get order consumer", "order_id", in.OrderID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if oc.Status == entity.OrderStatusDelivered {
		return nil, goerror.NewBusiness("Order is already delivered", goerror.CodeConflict)
	}

	code, err := s.otp.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate otp", "error", err)
		return nil, goerror.NewServer(err)
	}

	otpHash, err := s.hmac.Hash(otp.Format(code))
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash otp", "error", err)
		return nil, goerror.NewServer(err)
	}

	ttl := s.otpTTL()
	record := entity.PendingDelivery{
		OrderID:       in.OrderID,
		OTP:           string(otpHash),
		ConsumerEmail: oc.ConsumerEmail,
		ConsumerName:  oc.ConsumerName,
	}
	if err := s.deliveries.Put(ctx, deliveryKey(in.OrderID), record, ttl); err != nil {
		slog.ErrorContext(ctx, "failed to store pending delivery", "order_id", in.OrderID, "error", err)
		return nil, goerror.NewServer(err)
	}

	// A failed send keeps the pending record: the agent can retry the send
	// and the consumer simply gets a fresh code.
	body := fmt.Sprintf("Hello %s,\n\nYour delivery confirmation code for order %d is %s. Share it with the delivery agent at handover. It expires in %d minutes.\n\nDailyVegies",
		oc.ConsumerName, in.OrderID, otp.Format(code), int(ttl.Minutes()))
	if err := s.mailer.Send(ctx, mail.Message{
		To:       []string{oc.ConsumerEmail},
		Subject:  "Your DailyVegies delivery confirmation code",
		TextBody: body,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to send delivery otp email", "order_id", in.OrderID, "error", err)
		return nil, goerror.NewUpstream(err, "Failed to send delivery confirmation email")
	}

	return &DeliveryOtpSendOutput{ExpiresInSeconds: int64(ttl.Seconds())}, nil
}

type DeliveryConfirmInput struct {
	OrderID int64  `validate:"required,gt=0"`
	OTP     string `validate:"required,len=6,numeric"`
}

// DeliveryConfirm consumes the handover code and moves the order to its
// terminal delivered state. The pending record is deleted on the first
// correct code, so a second confirm for the same order reports no pending
// delivery no matter how close the race.
func (s *Usecase) DeliveryConfirm(ctx context.Context, in DeliveryConfirmInput) error {
	ctx, span := s.startSpan(ctx, "DeliveryConfirm")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	rec, err := s.deliveries.Consume(ctx, deliveryKey(in.OrderID), func(d entity.PendingDelivery) error {
		if !s.hmac.Verify(d.OTP, in.OTP) {
			return errIncorrectCode
		}

		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, errIncorrectCode):
			return goerror.NewBusiness("Incorrect delivery code", goerror.CodeUnauthorized)
		case errors.Is(err, pending.ErrExpired):
			return goerror.NewBusiness("Delivery code has expired, please send a new one", goerror.CodeGone)
		case errors.Is(err, pending.ErrTooManyAttempts):
			return goerror.NewBusiness("Too many incorrect codes, please send a new one", goerror.CodeTooManyRequest)
		case errors.Is(err, pending.ErrNoAction):
			return goerror.NewBusiness("No pending delivery confirmation for this order", goerror.CodeNotFound)
		default:
			slog.ErrorContext(ctx, "failed to consume pending delivery", "order_id", in.OrderID, "error", err)
			return goerror.NewServer(err)
		}
	}

	err = s.repoDB.UpdateOrderStatus(ctx, in.OrderID, entity.OrderStatusPlaced, entity.OrderStatusDelivered)
	if err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return goerror.NewBusiness("Order is already delivered", goerror.CodeConflict)
		}

		slog.ErrorContext(ctx, "failed to repo update order status", "order_id", in.OrderID, "error", err)
		return goerror.NewServer(err)
	}

	// The event carries the contact captured when the code was issued.
	if err := s.repoMessaging.PublishOrderDelivered(ctx, OrderDeliveredEvent{
		OrderID:       rec.OrderID,
		ConsumerEmail: rec.ConsumerEmail,
		ConsumerName:  rec.ConsumerName,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish order delivered", "order_id", in.OrderID, "error", err)
	}

	return nil
}
