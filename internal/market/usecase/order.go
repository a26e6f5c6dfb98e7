package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dailyvegies/api/internal/market/entity"
	"github.com/dailyvegies/api/internal/pkg/goerror"
	"github.com/dailyvegies/api/internal/pkg/idempotency"
	"github.com/dailyvegies/api/internal/pkg/jwt"
)

type OrderSaveInput struct {
	DeliveryAddress string `validate:"required,min=5,max=200"`
}

type OrderSaveOutput struct {
	Order entity.Order
}

// OrderSave turns the consumer's whole cart into one order with per-item
// price snapshots, then empties the cart.
func (s *Usecase) OrderSave(ctx context.Context, in OrderSaveInput) (*OrderSaveOutput, error) {
	ctx, span := s.startSpan(ctx, "OrderSave")
	defer span.End()

	claims := jwt.GetAuth(ctx)
	if claims == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	in.DeliveryAddress = strings.TrimSpace(in.DeliveryAddress)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	lines, err := s.repoDB.GetCartByConsumer(ctx, claims.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get cart", "consumer_id", claims.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if len(lines) == 0 {
		return nil, goerror.NewBusiness("Your cart is empty", goerror.CodeInvalidInput)
	}

	now := s.clock.Now()
	order := entity.Order{
		ID:              s.uid.Generate(),
		ConsumerID:      claims.UserID,
		Status:          entity.OrderStatusPlaced,
		PaymentStatus:   entity.PaymentStatusPending,
		DeliveryAddress: in.DeliveryAddress,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	for _, l := range lines {
		order.Items = append(order.Items, entity.OrderItem{
			ID:          s.uid.Generate(),
			OrderID:     order.ID,
			ProductID:   l.Product.ID,
			ProductName: l.Product.Name,
			Price:       l.Product.Price,
			Quantity:    l.Quantity,
		})
		order.TotalAmount += l.Product.Price * int64(l.Quantity)
	}

	if err := s.repoDB.CreateOrder(ctx, order); err != nil {
		slog.ErrorContext(ctx, "failed to repo create order", "consumer_id", claims.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoDB.ClearCart(ctx, claims.UserID); err != nil {
		slog.WarnContext(ctx, "failed to clear cart after order", "consumer_id", claims.UserID, "error", err)
	}

	placed := OrderPlacedEvent{
		OrderID:       order.ID,
		ConsumerEmail: claims.UserEmail,
		ItemCount:     int32(len(order.Items)),
		TotalAmount:   order.TotalAmount,
	}
	if oc, err := s.repoDB.GetOrderConsumer(ctx, order.ID); err == nil {
		placed.ConsumerName = oc.ConsumerName
	}

	if err := s.repoMessaging.PublishOrderPlaced(ctx, placed); err != nil {
		slog.ErrorContext(ctx, "failed to publish order placed", "order_id", order.ID, "error", err)
	}

	return &OrderSaveOutput{Order: order}, nil
}

type OrderDetailInput struct {
	OrderID int64 `validate:"required,gt=0"`
}

type OrderDetailOutput struct {
	Order entity.Order
}

func (s *Usecase) OrderDetail(ctx context.Context, in OrderDetailInput) (*OrderDetailOutput, error) {
	ctx, span := s.startSpan(ctx, "OrderDetail")
	defer span.End()

	claims := jwt.GetAuth(ctx)
	if claims == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	order, err := s.repoDB.GetOrderByID(ctx, in.OrderID)
	if err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return nil, goerror.NewBusiness("Order not found", goerror.CodeNotFound)
		}

		slog.ErrorContext(ctx, "failed to repo get order by id", "order_id", in.OrderID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if order.ConsumerID != claims.UserID {
		return nil, goerror.NewBusiness("Order not found", goerror.CodeNotFound)
	}

	return &OrderDetailOutput{Order: *order}, nil
}

type OrderListOutput struct {
	Orders []entity.Order
}

func (s *Usecase) OrderList(ctx context.Context) (*OrderListOutput, error) {
	ctx, span := s.startSpan(ctx, "OrderList")
	defer span.End()

	claims := jwt.GetAuth(ctx)
	if claims == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	orders, err := s.repoDB.GetOrdersByConsumer(ctx, claims.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get orders by consumer", "consumer_id", claims.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &OrderListOutput{Orders: orders}, nil
}

type PaymentUpdateInput struct {
	OrderID int64  `validate:"required,gt=0"`
	Status  string `validate:"required,oneof=pending paid failed"`
}

// PaymentUpdate applies a payment-provider callback. The idempotency tracker
// absorbs provider retries: a repeated callback for the same order and status
// is acknowledged without re-running the update.
func (s *Usecase) PaymentUpdate(ctx context.Context, in PaymentUpdateInput) error {
	ctx, span := s.startSpan(ctx, "PaymentUpdate")
	defer span.End()

	claims := jwt.GetAuth(ctx)
	if claims == nil {
		return goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	status := entity.PaymentStatusFromString(in.Status)

	key := fmt.Sprintf("payment:%d:%s", in.OrderID, status)
	err := s.idemp.Exec(ctx, key, func(ctx context.Context) error {
		order, err := s.repoDB.GetOrderByID(ctx, in.OrderID)
		if err != nil {
			if errors.Is(err, goerror.ErrNotFound) {
				return goerror.NewBusiness("Order not found", goerror.CodeNotFound)
			}

			return goerror.NewServer(err)
		}

		if order.ConsumerID != claims.UserID {
			return goerror.NewBusiness("Order not found", goerror.CodeNotFound)
		}

		if err := s.repoDB.UpdateOrderPayment(ctx, in.OrderID, status); err != nil {
			return goerror.NewServer(err)
		}

		return nil
	})

	switch {
	case errors.Is(err, idempotency.ErrAlreadyCompleted):
		return nil
	case errors.Is(err, idempotency.ErrAlreadyInProgress):
		return goerror.NewBusiness("Payment update already in progress", goerror.CodeConflict)
	case err != nil:
		slog.ErrorContext(ctx, "failed to update payment status", "order_id", in.OrderID, "error", err)
		return err
	}

	return nil
}
