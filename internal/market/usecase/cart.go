package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dailyvegies/api/internal/market/entity"
	"github.com/dailyvegies/api/internal/pkg/goerror"
	"github.com/dailyvegies/api/internal/pkg/jwt"
)

type CartAddInput struct {
	ProductID int64 `validate:"required,gt=0"`
	Quantity  int32 `validate:"required,gt=0"`
}

func (s *Usecase) CartAdd(ctx context.Context, in CartAddInput) error {
	ctx, span := s.startSpan(ctx, "CartAdd")
	defer span.End()

	claims := jwt.GetAuth(ctx)
	if claims == nil {
		return goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	product, err := s.repoDB.GetProductByID(ctx, in.ProductID)
	if err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return goerror.NewBusiness("Product not found", goerror.CodeNotFound)
		}

		slog.ErrorContext(ctx, "failed to repo get product by id", "product_id", in.ProductID, "error", err)
		return goerror.NewServer(err)
	}

	if product.Quantity < in.Quantity {
		return goerror.NewBusiness("Not enough stock for this product", goerror.CodeConflict)
	}

	if !product.ExpiryDate.After(s.clock.Now()) {
		return goerror.NewBusiness("Product listing has expired", goerror.CodeGone)
	}

	err = s.repoDB.UpsertCartItem(ctx, entity.CartUpsert{
		ID:         s.uid.Generate(),
		ConsumerID: claims.UserID,
		ProductID:  in.ProductID,
		Quantity:   in.Quantity,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo upsert cart item", "consumer_id", claims.UserID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}

type CartGetOutput struct {
	Lines       []entity.CartLine
	TotalAmount int64
}

func (s *Usecase) CartGet(ctx context.Context) (*CartGetOutput, error) {
	ctx, span := s.startSpan(ctx, "CartGet")
	defer span.End()

	claims := jwt.GetAuth(ctx)
	if claims == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	lines, err := s.repoDB.GetCartByConsumer(ctx, claims.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get cart", "consumer_id", claims.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	var total int64
	for _, l := range lines {
		total += l.Product.Price * int64(l.Quantity)
	}

	return &CartGetOutput{Lines: lines, TotalAmount: total}, nil
}

func (s *Usecase) CartClear(ctx context.Context) error {
	ctx, span := s.startSpan(ctx, "CartClear")
	defer span.End()

	claims := jwt.GetAuth(ctx)
	if claims == nil {
		return goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	if err := s.repoDB.ClearCart(ctx, claims.UserID); err != nil {
		slog.ErrorContext(ctx, "failed to repo clear cart", "consumer_id", claims.UserID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
