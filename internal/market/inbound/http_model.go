package inbound

import (
	"net/http"
	"time"

	"github.com/dailyvegies/api/internal/market/entity"
)

type CropAddRequest struct {
	Name            string    `json:"name"`
	SowingDate      time.Time `json:"sowing_date"`
	ExpectedHarvest time.Time `json:"expected_harvest"`
	Lat             float64   `json:"lat"`
	Lon             float64   `json:"lon"`
	Address         string    `json:"address"`
}

type CropResponse struct {
	ID              int64     `json:"id,string"`
	Name            string    `json:"name"`
	SowingDate      time.Time `json:"sowing_date"`
	ExpectedHarvest time.Time `json:"expected_harvest"`
	Lat             float64   `json:"lat"`
	Lon             float64   `json:"lon"`
	Address         string    `json:"address"`
	CreatedAt       time.Time `json:"created_at"`
}

func (CropResponse) StatusCode() int {
	return http.StatusCreated
}

func newCropResponse(c entity.Crop) CropResponse {
	return CropResponse{
		ID:              c.ID,
		Name:            c.Name,
		SowingDate:      c.SowingDate,
		ExpectedHarvest: c.ExpectedHarvest,
		Lat:             c.Lat,
		Lon:             c.Lon,
		Address:         c.Address,
		CreatedAt:       c.CreatedAt,
	}
}

type ProductCreateRequest struct {
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	Quantity    int32     `json:"quantity"`
	City        string    `json:"city"`
	ExpiryDate  time.Time `json:"expiry_date"`
}

type ProductResponse struct {
	ID          int64     `json:"id,string"`
	FarmerID    int64     `json:"farmer_id,string"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	Price       int64     `json:"price"`
	Quantity    int32     `json:"quantity"`
	City        string    `json:"city"`
	ImageURL    string    `json:"image_url,omitempty"`
	ExpiryDate  time.Time `json:"expiry_date"`
	CreatedAt   time.Time `json:"created_at"`
}

func newProductResponse(p entity.Product, imageURL string) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		FarmerID:    p.FarmerID,
		Name:        p.Name,
		Category:    p.Category,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
		City:        p.City,
		ImageURL:    imageURL,
		ExpiryDate:  p.ExpiryDate,
		CreatedAt:   p.CreatedAt,
	}
}

type ProductCreateResponse struct {
	ProductResponse
}

func (ProductCreateResponse) StatusCode() int {
	return http.StatusCreated
}

type ProductImageResponse struct {
	ImageURL string `json:"image_url"`
}

type ProductDeleteExpiredResponse struct {
	Deleted int64 `json:"deleted"`
}

type CartAddRequest struct {
	ProductID int64 `json:"product_id,string"`
	Quantity  int32 `json:"quantity"`
}

type CartAddResponse struct{}

func (CartAddResponse) Message() string {
	return "Product added to your cart."
}

type CartLineResponse struct {
	ID       int64           `json:"id,string"`
	Quantity int32           `json:"quantity"`
	Product  ProductResponse `json:"product"`
}

type CartGetResponse struct {
	Lines       []CartLineResponse `json:"lines"`
	TotalAmount int64              `json:"total_amount"`
}

type CartClearResponse struct{}

func (CartClearResponse) Message() string {
	return "Your cart has been cleared."
}

type OrderSaveRequest struct {
	DeliveryAddress string `json:"delivery_address"`
}

type OrderItemResponse struct {
	ProductID   int64  `json:"product_id,string"`
	ProductName string `json:"product_name"`
	Price       int64  `json:"price"`
	Quantity    int32  `json:"quantity"`
}

type OrderResponse struct {
	ID              int64               `json:"id,string"`
	Status          string              `json:"status"`
	PaymentStatus   string              `json:"payment_status"`
	TotalAmount     int64               `json:"total_amount"`
	DeliveryAddress string              `json:"delivery_address"`
	Items           []OrderItemResponse `json:"items"`
	CreatedAt       time.Time           `json:"created_at"`
}

func newOrderResponse(o entity.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Price:       it.Price,
			Quantity:    it.Quantity,
		})
	}

	return OrderResponse{
		ID:              o.ID,
		Status:          o.Status.String(),
		PaymentStatus:   o.PaymentStatus.String(),
		TotalAmount:     o.TotalAmount,
		DeliveryAddress: o.DeliveryAddress,
		Items:           items,
		CreatedAt:       o.CreatedAt,
	}
}

type OrderSaveResponse struct {
	OrderResponse
}

func (OrderSaveResponse) StatusCode() int {
	return http.StatusCreated
}

type PaymentUpdateRequest struct {
	Status string `json:"status"`
}

type PaymentUpdateResponse struct{}

func (PaymentUpdateResponse) Message() string {
	return "Payment status updated."
}

type RecommendationResponse struct {
	ProductID int64             `json:"product_id,string"`
	Similar   []ProductResponse `json:"similar"`
}

type DeliveryOtpSendRequest struct {
	OrderID int64 `json:"order_id,string"`
}

type DeliveryOtpSendResponse struct {
	ExpiresIn int64 `json:"expires_in"`
}

func (DeliveryOtpSendResponse) Message() string {
	return "We have sent a confirmation code to the consumer's email."
}

type DeliveryConfirmRequest struct {
	OrderID int64  `json:"order_id,string"`
	OTP     string `json:"otp"`
}

type DeliveryConfirmResponse struct{}

func (DeliveryConfirmResponse) Message() string {
	return "Delivery confirmed. Order marked as delivered."
}
