package mq

import (
	"context"
	"encoding/json"

	"github.com/dailyvegies/api/internal/market/usecase"
	"github.com/dailyvegies/api/internal/pkg/instrument"
	"github.com/dailyvegies/api/internal/pkg/messaging"
	"github.com/dailyvegies/api/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
)

const keyOfCorrelationID string = "cID"

type Messaging struct {
	client messaging.Messaging
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Messaging, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) PublishOrderPlaced(ctx context.Context, msg usecase.OrderPlacedEvent) error {
	ctx, span := m.ins.Tracer("market.outbound.mq").Start(ctx, "PublishOrderPlaced")
	defer span.End()

	body, err := json.Marshal(event.OrderPlacedMessage{
		OrderID:       msg.OrderID,
		ConsumerEmail: msg.ConsumerEmail,
		ConsumerName:  msg.ConsumerName,
		ItemCount:     msg.ItemCount,
		TotalAmount:   msg.TotalAmount,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, event.OrderPlacedDestination, messaging.OutgoingMessage{
		Body:    body,
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

func (m *Messaging) PublishOrderDelivered(ctx context.Context, msg usecase.OrderDeliveredEvent) error {
	ctx, span := m.ins.Tracer("market.outbound.mq").Start(ctx, "PublishOrderDelivered")
	defer span.End()

	body, err := json.Marshal(event.OrderDeliveredMessage{
		OrderID:       msg.OrderID,
		ConsumerEmail: msg.ConsumerEmail,
		ConsumerName:  msg.ConsumerName,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, event.OrderDeliveredDestination, messaging.OutgoingMessage{
		Body:    body,
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
