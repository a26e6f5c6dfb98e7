package inbound

import (
	"context"

	"github.com/dailyvegies/api/internal/market/usecase"
	"github.com/dailyvegies/api/internal/pkg/router"
)

type uc interface {
	CropAdd(ctx context.Context, in usecase.CropAddInput) (*usecase.CropAddOutput, error)
	CropList(ctx context.Context) (*usecase.CropListOutput, error)

	ProductCreate(ctx context.Context, in usecase.ProductCreateInput) (*usecase.ProductCreateOutput, error)
	ProductList(ctx context.Context, in usecase.ProductListInput) (*usecase.ProductListOutput, error)
	ProductImage(ctx context.Context, in usecase.ProductImageInput) (*usecase.ProductImageOutput, error)
	ProductDeleteExpired(ctx context.Context) (*usecase.ProductDeleteExpiredOutput, error)

	CartAdd(ctx context.Context, in usecase.CartAddInput) error
	CartGet(ctx context.Context) (*usecase.CartGetOutput, error)
	CartClear(ctx context.Context) error

	OrderSave(ctx context.Context, in usecase.OrderSaveInput) (*usecase.OrderSaveOutput, error)
	OrderList(ctx context.Context) (*usecase.OrderListOutput, error)
	OrderDetail(ctx context.Context, in usecase.OrderDetailInput) (*usecase.OrderDetailOutput, error)
	PaymentUpdate(ctx context.Context, in usecase.PaymentUpdateInput) error

	Recommendations(ctx context.Context) (*usecase.RecommendationsOutput, error)

	DeliveryOtpSend(ctx context.Context, in usecase.DeliveryOtpSendInput) (*usecase.DeliveryOtpSendOutput, error)
	DeliveryConfirm(ctx context.Context, in usecase.DeliveryConfirmInput) error
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Crops (need authenticated & farmer)
	r.POST("/api/v1/market/crops", end.CropAdd)
	r.GET("/api/v1/market/crops", end.CropList)

	// Products
	r.GET("/api/v1/market/products", end.ProductList)
	r.GET("/api/v1/market/products/search", end.ProductSearch)
	r.POST("/api/v1/market/products", end.ProductCreate)               // need farmer
	r.PUT("/api/v1/market/products/:id/image", end.ProductImage)       // need farmer
	r.DELETE("/api/v1/market/products/expired", end.ProductDeleteExpired) // need farmer

	// Cart (need authenticated)
	r.POST("/api/v1/market/cart", end.CartAdd)
	r.GET("/api/v1/market/cart", end.CartGet)
	r.DELETE("/api/v1/market/cart", end.CartClear)

	// Orders (need authenticated)
	r.POST("/api/v1/market/orders", end.OrderSave)
	r.GET("/api/v1/market/orders", end.OrderList)
	r.GET("/api/v1/market/orders/:id", end.OrderDetail)
	r.PATCH("/api/v1/market/orders/:id/payment", end.PaymentUpdate)

	// Recommendations (need authenticated)
	r.GET("/api/v1/market/recommendations", end.Recommendations)

	// Delivery confirmation (need authenticated & delivery agent)
	r.POST("/api/v1/market/delivery/send-otp", end.DeliveryOtpSend)
	r.POST("/api/v1/market/delivery/confirm", end.DeliveryConfirm)
}
