package inbound

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/samber/lo"

	"github.com/dailyvegies/api/internal/market/entity"
	"github.com/dailyvegies/api/internal/market/usecase"
	"github.com/dailyvegies/api/internal/pkg/goerror"
	"github.com/dailyvegies/api/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for the marketplace: crops, products,
// carts, orders, recommendations, and delivery confirmation.
type HTTPEndpoint struct {
	uc uc
}

// CropAdd registers a planted crop for the authenticated farmer.
// @Summary Add crop
// @Tags Market, Crops
// @Accept json
// @Produce json
// @Param request body CropAddRequest true "Crop payload"
// @Success 201 {object} router.successResponse{data=CropResponse} "Created crop"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/v1/market/crops [post]
func (h *HTTPEndpoint) CropAdd(r *router.Request) (any, error) {
	var req CropAddRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.CropAdd(r.Context(), usecase.CropAddInput{
		Name:            req.Name,
		SowingDate:      req.SowingDate,
		ExpectedHarvest: req.ExpectedHarvest,
		Lat:             req.Lat,
		Lon:             req.Lon,
		Address:         req.Address,
	})
	if err != nil {
		return nil, err
	}

	return newCropResponse(resp.Crop), nil
}

// CropList lists the authenticated farmer's crops.
// @Summary List my crops
// @Tags Market, Crops
// @Produce json
// @Success 200 {object} router.successResponse{data=[]CropResponse} "Crops"
// @Router /api/v1/market/crops [get]
func (h *HTTPEndpoint) CropList(r *router.Request) (any, error) {
	resp, err := h.uc.CropList(r.Context())
	if err != nil {
		return nil, err
	}

	out := make([]CropResponse, 0, len(resp.Crops))
	for _, c := range resp.Crops {
		cr := newCropResponse(c)
		out = append(out, cr)
	}

	return out, nil
}

// ProductCreate lists new produce for sale.
// @Summary Create product
// @Tags Market, Products
// @Accept json
// @Produce json
// @Param request body ProductCreateRequest true "Product payload"
// @Success 201 {object} router.successResponse{data=ProductCreateResponse} "Created product"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/v1/market/products [post]
func (h *HTTPEndpoint) ProductCreate(r *router.Request) (any, error) {
	var req ProductCreateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.ProductCreate(r.Context(), usecase.ProductCreateInput{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		City:        req.City,
		ExpiryDate:  req.ExpiryDate,
	})
	if err != nil {
		return nil, err
	}

	return ProductCreateResponse{newProductResponse(resp.Product, "")}, nil
}

// ProductList lists live products, optionally filtered by category or city.
// @Summary List products
// @Tags Market, Products
// @Produce json
// @Param category query string false "Category filter"
// @Param city query string false "City filter"
// @Success 200 {object} router.successResponse{data=[]ProductResponse} "Products"
// @Router /api/v1/market/products [get]
func (h *HTTPEndpoint) ProductList(r *router.Request) (any, error) {
	resp, err := h.uc.ProductList(r.Context(), usecase.ProductListInput{
		Category: r.GetQuery("category"),
		City:     r.GetQuery("city"),
	})
	if err != nil {
		return nil, err
	}

	return productResponses(resp), nil
}

// ProductSearch searches live products by name.
// @Summary Search products
// @Tags Market, Products
// @Produce json
// @Param q query string true "Name search term"
// @Success 200 {object} router.successResponse{data=[]ProductResponse} "Products"
// @Router /api/v1/market/products/search [get]
func (h *HTTPEndpoint) ProductSearch(r *router.Request) (any, error) {
	resp, err := h.uc.ProductList(r.Context(), usecase.ProductListInput{
		Search:   r.GetQuery("q"),
		Category: r.GetQuery("category"),
		City:     r.GetQuery("city"),
	})
	if err != nil {
		return nil, err
	}

	return productResponses(resp), nil
}

func productResponses(resp *usecase.ProductListOutput) []ProductResponse {
	return lo.Map(resp.Products, func(p entity.Product, _ int) ProductResponse {
		return newProductResponse(p, resp.ImageURLs[p.ID])
	})
}

// ProductImage uploads or replaces a listing image.
// @Summary Upload product image
// @Tags Market, Products
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Product ID"
// @Param image formData file true "Image file"
// @Success 200 {object} router.successResponse{data=ProductImageResponse} "Image URL"
// @Failure 403 {object} router.errorResponse "Not the listing farmer"
// @Failure 404 {object} router.errorResponse "Product not found"
// @Router /api/v1/market/products/{id}/image [put]
func (h *HTTPEndpoint) ProductImage(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	file, err := r.StreamSingleFile("image")
	if err != nil {
		return nil, err
	}
	defer file.Close()

	head := make([]byte, 512)
	n, err := file.Read(head)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, goerror.NewInvalidFormat()
	}

	resp, err := h.uc.ProductImage(r.Context(), usecase.ProductImageInput{
		ProductID:   id,
		Body:        io.MultiReader(bytes.NewReader(head[:n]), file),
		ContentType: http.DetectContentType(head[:n]),
	})
	if err != nil {
		return nil, err
	}

	return ProductImageResponse{ImageURL: resp.ImageURL}, nil
}

// ProductDeleteExpired removes the caller's expired listings.
// @Summary Delete expired products
// @Tags Market, Products
// @Produce json
// @Success 200 {object} router.successResponse{data=ProductDeleteExpiredResponse} "Delete count"
// @Router /api/v1/market/products/expired [delete]
func (h *HTTPEndpoint) ProductDeleteExpired(r *router.Request) (any, error) {
	resp, err := h.uc.ProductDeleteExpired(r.Context())
	if err != nil {
		return nil, err
	}

	return ProductDeleteExpiredResponse{Deleted: resp.Deleted}, nil
}

// CartAdd puts a product into the cart.
// @Summary Add to cart
// @Tags Market, Cart
// @Accept json
// @Produce json
// @Param request body CartAddRequest true "Cart payload"
// @Success 200 {object} router.successResponse{data=CartAddResponse} "Confirmation"
// @Failure 404 {object} router.errorResponse "Product not found"
// @Failure 409 {object} router.errorResponse "Not enough stock"
// @Router /api/v1/market/cart [post]
func (h *HTTPEndpoint) CartAdd(r *router.Request) (any, error) {
	var req CartAddRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.CartAdd(r.Context(), usecase.CartAddInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	}); err != nil {
		return nil, err
	}

	return CartAddResponse{}, nil
}

// CartGet returns the cart with product details and the running total.
// @Summary Get cart
// @Tags Market, Cart
// @Produce json
// @Success 200 {object} router.successResponse{data=CartGetResponse} "Cart"
// @Router /api/v1/market/cart [get]
func (h *HTTPEndpoint) CartGet(r *router.Request) (any, error) {
	resp, err := h.uc.CartGet(r.Context())
	if err != nil {
		return nil, err
	}

	lines := make([]CartLineResponse, 0, len(resp.Lines))
	for _, l := range resp.Lines {
		lines = append(lines, CartLineResponse{
			ID:       l.ID,
			Quantity: l.Quantity,
			Product:  newProductResponse(l.Product, ""),
		})
	}

	return CartGetResponse{Lines: lines, TotalAmount: resp.TotalAmount}, nil
}

// CartClear empties the cart.
// @Summary Clear cart
// @Tags Market, Cart
// @Produce json
// @Success 200 {object} router.successResponse{data=CartClearResponse} "Confirmation"
// @Router /api/v1/market/cart [delete]
func (h *HTTPEndpoint) CartClear(r *router.Request) (any, error) {
	if err := h.uc.CartClear(r.Context()); err != nil {
		return nil, err
	}

	return CartClearResponse{}, nil
}

// OrderSave places an order from the whole cart.
// @Summary Place order
// @Tags Market, Orders
// @Accept json
// @Produce json
// @Param request body OrderSaveRequest true "Order payload"
// @Success 201 {object} router.successResponse{data=OrderSaveResponse} "Created order"
// @Failure 409 {object} router.errorResponse "Not enough stock"
// @Failure 422 {object} router.errorResponse "Empty cart or validation error"
// @Router /api/v1/market/orders [post]
func (h *HTTPEndpoint) OrderSave(r *router.Request) (any, error) {
	var req OrderSaveRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.OrderSave(r.Context(), usecase.OrderSaveInput{
		DeliveryAddress: req.DeliveryAddress,
	})
	if err != nil {
		return nil, err
	}

	return OrderSaveResponse{newOrderResponse(resp.Order)}, nil
}

// OrderList returns the caller's orders, newest first.
// @Summary List my orders
// @Tags Market, Orders
// @Produce json
// @Success 200 {object} router.successResponse{data=[]OrderResponse} "Orders"
// @Router /api/v1/market/orders [get]
func (h *HTTPEndpoint) OrderList(r *router.Request) (any, error) {
	resp, err := h.uc.OrderList(r.Context())
	if err != nil {
		return nil, err
	}

	return lo.Map(resp.Orders, func(o entity.Order, _ int) OrderResponse {
		return newOrderResponse(o)
	}), nil
}

// OrderDetail returns one of the caller's orders.
// @Summary Get order
// @Tags Market, Orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} router.successResponse{data=OrderResponse} "Order"
// @Failure 404 {object} router.errorResponse "Order not found"
// @Router /api/v1/market/orders/{id} [get]
func (h *HTTPEndpoint) OrderDetail(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.OrderDetail(r.Context(), usecase.OrderDetailInput{OrderID: id})
	if err != nil {
		return nil, err
	}

	return newOrderResponse(resp.Order), nil
}

// PaymentUpdate applies a payment-provider status callback.
// @Summary Update payment status
// @Tags Market, Orders
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param request body PaymentUpdateRequest true "Payment payload"
// @Success 200 {object} router.successResponse{data=PaymentUpdateResponse} "Confirmation"
// @Failure 404 {object} router.errorResponse "Order not found"
// @Failure 409 {object} router.errorResponse "Update already in progress"
// @Router /api/v1/market/orders/{id}/payment [patch]
func (h *HTTPEndpoint) PaymentUpdate(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req PaymentUpdateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.PaymentUpdate(r.Context(), usecase.PaymentUpdateInput{
		OrderID: id,
		Status:  req.Status,
	}); err != nil {
		return nil, err
	}

	return PaymentUpdateResponse{}, nil
}

// Recommendations suggests similar products for everything in the cart.
// @Summary Get recommendations
// @Tags Market, Recommendations
// @Produce json
// @Success 200 {object} router.successResponse{data=[]RecommendationResponse} "Similar products per cart product"
// @Failure 404 {object} router.errorResponse "Cart not found"
// @Router /api/v1/market/recommendations [get]
func (h *HTTPEndpoint) Recommendations(r *router.Request) (any, error) {
	resp, err := h.uc.Recommendations(r.Context())
	if err != nil {
		return nil, err
	}

	out := make([]RecommendationResponse, 0, len(resp.Recommendations))
	for _, rec := range resp.Recommendations {
		similar := make([]ProductResponse, 0, len(rec.Similar))
		for _, p := range rec.Similar {
			similar = append(similar, newProductResponse(p, ""))
		}
		out = append(out, RecommendationResponse{ProductID: rec.ProductID, Similar: similar})
	}

	return out, nil
}

// DeliveryOtpSend emails a handover code to the order's consumer.
// @Summary Send delivery code
// @Tags Market, Delivery
// @Accept json
// @Produce json
// @Param request body DeliveryOtpSendRequest true "Delivery payload"
// @Success 200 {object} router.successResponse{data=DeliveryOtpSendResponse} "Confirmation"
// @Failure 404 {object} router.errorResponse "Order not found"
// @Failure 409 {object} router.errorResponse "Order already delivered"
// @Failure 502 {object} router.errorResponse "Email could not be sent"
// @Router /api/v1/market/delivery/send-otp [post]
func (h *HTTPEndpoint) DeliveryOtpSend(r *router.Request) (any, error) {
	var req DeliveryOtpSendRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.DeliveryOtpSend(r.Context(), usecase.DeliveryOtpSendInput{OrderID: req.OrderID})
	if err != nil {
		return nil, err
	}

	return DeliveryOtpSendResponse{ExpiresIn: resp.ExpiresInSeconds}, nil
}

// DeliveryConfirm consumes the handover code and marks the order delivered.
// @Summary Confirm delivery
// @Tags Market, Delivery
// @Accept json
// @Produce json
// @Param request body DeliveryConfirmRequest true "Confirmation payload"
// @Success 200 {object} router.successResponse{data=DeliveryConfirmResponse} "Confirmation"
// @Failure 401 {object} router.errorResponse "Incorrect code"
// @Failure 404 {object} router.errorResponse "No pending delivery confirmation"
// @Failure 410 {object} router.errorResponse "Code expired"
// @Router /api/v1/market/delivery/confirm [post]
func (h *HTTPEndpoint) DeliveryConfirm(r *router.Request) (any, error) {
	var req DeliveryConfirmRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.DeliveryConfirm(r.Context(), usecase.DeliveryConfirmInput{
		OrderID: req.OrderID,
		OTP:     req.OTP,
	}); err != nil {
		return nil, err
	}

	return DeliveryConfirmResponse{}, nil
}
