package inbound

import (
	"context"

	"github.com/dailyvegies/api/internal/notification/usecase"
)

type uc interface {
	ConsumeAccountRegistered(ctx context.Context, in usecase.ConsumeAccountRegisteredInput) error
	ConsumeAccountApproved(ctx context.Context, in usecase.ConsumeAccountApprovedInput) error
	ConsumeOrderPlaced(ctx context.Context, in usecase.ConsumeOrderPlacedInput) error
	ConsumeOrderDelivered(ctx context.Context, in usecase.ConsumeOrderDeliveredInput) error
}
