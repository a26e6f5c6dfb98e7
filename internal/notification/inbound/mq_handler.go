package inbound

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/dailyvegies/api/internal/notification/usecase"
	"github.com/dailyvegies/api/internal/pkg/instrument"
	"github.com/dailyvegies/api/internal/pkg/messaging"
	"github.com/dailyvegies/api/internal/pkg/uid"
	"github.com/dailyvegies/api/internal/shared/event"
)

const keyOfCorrelationID string = "cID"

type MQHandler struct {
	uc   uc
	uuid uid.StringID
	ins  instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context, headers []messaging.Header) context.Context {
	for i := range headers {
		if headers[i].Key == keyOfCorrelationID {
			return instrument.SetCorrelationID(ctx, string(headers[i].Value))
		}
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

func (h *MQHandler) AccountRegisteredNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "AccountRegisteredNotification")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: account registered notification", "msg_body", string(body))

	var payload event.AccountRegisteredMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of account registered notification", "msg_body", string(body), "error", err)
		return nil
	}

	if err := h.uc.ConsumeAccountRegistered(ctx, usecase.ConsumeAccountRegisteredInput{
		AccountID: payload.AccountID,
		Email:     payload.Email,
		FullName:  payload.FullName,
		Role:      payload.Role,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume account registered", "msg_body", string(body), "error", err)
		return err
	}

	return nil
}

func (h *MQHandler) AccountApprovedNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "AccountApprovedNotification")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: account approved notification", "msg_body", string(body))

	var payload event.AccountApprovedMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of account approved notification", "msg_body", string(body), "error", err)
		return nil
	}

	if err := h.uc.ConsumeAccountApproved(ctx, usecase.ConsumeAccountApprovedInput{
		AccountID: payload.AccountID,
		Email:     payload.Email,
		FullName:  payload.FullName,
		Role:      payload.Role,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume account approved", "msg_body", string(body), "error", err)
		return err
	}

	return nil
}

func (h *MQHandler) OrderPlacedNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "OrderPlacedNotification")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: order placed notification", "msg_body", string(body))

	var payload event.OrderPlacedMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of order placed notification", "msg_body", string(body), "error", err)
		return nil
	}

	if err := h.uc.ConsumeOrderPlaced(ctx, usecase.ConsumeOrderPlacedInput{
		OrderID:       payload.OrderID,
		ConsumerEmail: payload.ConsumerEmail,
		ConsumerName:  payload.ConsumerName,
		ItemCount:     payload.ItemCount,
		TotalAmount:   payload.TotalAmount,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume order placed", "msg_body", string(body), "error", err)
		return err
	}

	return nil
}

func (h *MQHandler) OrderDeliveredNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "OrderDeliveredNotification")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: order delivered notification", "msg_body", string(body))

	var payload event.OrderDeliveredMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of order delivered notification", "msg_body", string(body), "error", err)
		return nil
	}

	if err := h.uc.ConsumeOrderDelivered(ctx, usecase.ConsumeOrderDeliveredInput{
		OrderID:       payload.OrderID,
		ConsumerEmail: payload.ConsumerEmail,
		ConsumerName:  payload.ConsumerName,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume order delivered", "msg_body", string(body), "error", err)
		return err
	}

	return nil
}
