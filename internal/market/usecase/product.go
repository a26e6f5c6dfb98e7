package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/dailyvegies/api/internal/market/entity"
	"github.com/dailyvegies/api/internal/pkg/goerror"
	"github.com/dailyvegies/api/internal/pkg/jwt"
	"github.com/dailyvegies/api/internal/pkg/storage"
)

type ProductCreateInput struct {
	Name        string    `validate:"required,min=2,max=100"`
	Category    string    `validate:"required,min=2,max=50"`
	Description string    `validate:"max=500"`
	Price       int64     `validate:"required,gt=0"`
	Quantity    int32     `validate:"required,gt=0"`
	City        string    `validate:"required,min=2,max=100"`
	ExpiryDate  time.Time `validate:"required"`
}

type ProductCreateOutput struct {
	Product entity.Product
}

func (s *Usecase) ProductCreate(ctx context.Context, in ProductCreateInput) (*ProductCreateOutput, error) {
	ctx, span := s.startSpan(ctx, "ProductCreate")
	defer span.End()

	claims := jwt.GetAuth(ctx)
	if claims == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(strings.ToLower(in.Category))
	in.City = strings.TrimSpace(in.City)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	now := s.clock.Now()
	if !in.ExpiryDate.After(now) {
		return nil, goerror.NewInvalidInput(nil, "expiry_date", "Expiry date must be in the future")
	}

	product := entity.Product{
		ID:          s.uid.Generate(),
		FarmerID:    claims.UserID,
		Name:        in.Name,
		Category:    in.Category,
		Description: in.Description,
		Price:       in.Price,
		Quantity:    in.Quantity,
		City:        in.City,
		ExpiryDate:  in.ExpiryDate,
		CreatedAt:   now,
	}

	if err := s.repoDB.CreateProduct(ctx, product); err != nil {
		slog.ErrorContext(ctx, "failed to repo create product", "farmer_id", claims.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ProductCreateOutput{Product: product}, nil
}

type ProductListInput struct {
	Search   string `validate:"max=100"`
	Category string `validate:"max=50"`
	City     string `validate:"max=100"`
}

type ProductListOutput struct {
	Products []entity.Product
	// ImageURLs holds a presigned download URL per product id, for listings
	// that have an uploaded image.
	ImageURLs map[int64]string
}

// ProductList returns live listings: in stock and not past their expiry date.
func (s *Usecase) ProductList(ctx context.Context, in ProductListInput) (*ProductListOutput, error) {
	ctx, span := s.startSpan(ctx, "ProductList")
	defer span.End()

	in.Search = strings.TrimSpace(in.Search)
	in.Category = strings.TrimSpace(strings.ToLower(in.Category))
	in.City = strings.TrimSpace(in.City)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	products, err := s.repoDB.GetProducts(ctx, entity.ProductFilter{
		Search:   in.Search,
		Category: in.Category,
		City:     in.City,
		LiveOnly: true,
		Now:      s.clock.Now(),
		Limit:    100,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get products", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ProductListOutput{
		Products:  products,
		ImageURLs: s.presignProductImages(ctx, products),
	}, nil
}

func (s *Usecase) presignProductImages(ctx context.Context, products []entity.Product) map[int64]string {
	urls := make(map[int64]string)
	for _, p := range products {
		if p.ImageKey == "" {
			continue
		}

		url, err := s.storage.PresignGet(ctx, s.productBucket(), p.ImageKey, 15*time.Minute)
		if err != nil {
			slog.WarnContext(ctx, "failed to presign product image", "product_id", p.ID, "error", err)
			continue
		}
		urls[p.ID] = url
	}

	return urls
}

type ProductImageInput struct {
	ProductID   int64 `validate:"required,gt=0"`
	Body        io.Reader
	ContentType string
}

type ProductImageOutput struct {
	ImageURL string
}

// ProductImage stores the uploaded image and attaches it to the product. Only
// the listing farmer may replace the image.
func (s *Usecase) ProductImage(ctx context.Context, in ProductImageInput) (*ProductImageOutput, error) {
	ctx, span := s.startSpan(ctx, "ProductImage")
	defer span.End()

	claims := jwt.GetAuth(ctx)
	if claims == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	product, err := s.repoDB.GetProductByID(ctx, in.ProductID)
	if err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return nil, goerror.NewBusiness("Product not found", goerror.CodeNotFound)
		}

		slog.ErrorContext(ctx, "failed to repo get product by id", "product_id", in.ProductID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if product.FarmerID != claims.UserID {
		return nil, goerror.NewBusiness("You can only change your own listings", goerror.CodeForbidden)
	}

	key := fmt.Sprintf("products/%d", product.ID)
	if _, err := s.storage.PutObject(ctx, s.productBucket(), key, in.Body, storage.PutOptions{
		ContentType: in.ContentType,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to store product image", "product_id", product.ID, "error", err)
		return nil, goerror.NewUpstream(err, "Failed to store product image")
	}

	if err := s.repoDB.UpdateProductImage(ctx, product.ID, claims.UserID, key); err != nil {
		slog.ErrorContext(ctx, "failed to repo update product image", "product_id", product.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	url, err := s.storage.PresignGet(ctx, s.productBucket(), key, 15*time.Minute)
	if err != nil {
		slog.WarnContext(ctx, "failed to presign product image", "product_id", product.ID, "error", err)
	}

	return &ProductImageOutput{ImageURL: url}, nil
}

type ProductDeleteExpiredOutput struct {
	Deleted int64
}

// ProductDeleteExpired removes the caller's listings whose expiry date has
// passed.
func (s *Usecase) ProductDeleteExpired(ctx context.Context) (*ProductDeleteExpiredOutput, error) {
	ctx, span := s.startSpan(ctx, "ProductDeleteExpired")
	defer span.End()

	claims := jwt.GetAuth(ctx)
	if claims == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	deleted, err := s.repoDB.DeleteExpiredProducts(ctx, claims.UserID, s.clock.Now())
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo delete expired products", "farmer_id", claims.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ProductDeleteExpiredOutput{Deleted: deleted}, nil
}
