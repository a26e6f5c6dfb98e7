package inbound

import (
	"context"
	"log/slog"
	"slices"

	"github.com/dailyvegies/api/internal/pkg/config"
	"github.com/dailyvegies/api/internal/pkg/goroutine"
	"github.com/dailyvegies/api/internal/pkg/instrument"
	"github.com/dailyvegies/api/internal/pkg/messaging"
	"github.com/dailyvegies/api/internal/pkg/uid"
	"github.com/dailyvegies/api/internal/shared/event"
)

func RegisterMQConsumer(
	ctx context.Context,
	cfg config.Config,
	routine *goroutine.Manager,
	messenger messaging.Messaging,
	uuid uid.StringID,
	uc uc,
	ins instrument.Instrumentation,
) {
	mqHandler := &MQHandler{uc: uc, uuid: uuid, ins: ins}

	enableConsumerNames := cfg.GetArray("modules.notification.consumer_names")

	var consumers = []struct {
		name    string
		topic   string // destination where publisher sent message
		handler messaging.Handler
	}{
		{
			name:    event.AccountRegisteredConsumerNotification,
			topic:   event.AccountRegisteredDestination,
			handler: mqHandler.AccountRegisteredNotification,
		},
		{
			name:    event.AccountApprovedConsumerNotification,
			topic:   event.AccountApprovedDestination,
			handler: mqHandler.AccountApprovedNotification,
		},
		{
			name:    event.OrderPlacedConsumerNotification,
			topic:   event.OrderPlacedDestination,
			handler: mqHandler.OrderPlacedNotification,
		},
		{
			name:    event.OrderDeliveredConsumerNotification,
			topic:   event.OrderDeliveredDestination,
			handler: mqHandler.OrderDeliveredNotification,
		},
	}

	for _, consumer := range consumers {
		if len(enableConsumerNames) > 0 && slices.Contains(enableConsumerNames, consumer.name) {
			routine.Go(ctx, func(pCtx context.Context) error {
				slog.InfoContext(ctx, "Running job for handling consumer", "consumer", consumer.name)
				return messenger.Consume(pCtx,
					consumer.topic,
					consumer.handler,
					messaging.WithQueueGroup(consumer.name),
					messaging.WithGroup(consumer.name),
					messaging.WithAutoAck(true),
					messaging.WithConcurrency(10),
				)
			})
		}
	}
}
