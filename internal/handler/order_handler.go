package handler

import (
	"net/http"
	"strconv"
	"time"

	"marketplace/internal/domain/model"
	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /orders 顧客向け
type OrderHandler struct {
	checkout *usecase.CheckoutUsecase
	orders   *usecase.OrderUsecase
}

func NewOrderHandler(checkout *usecase.CheckoutUsecase, orders *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{checkout: checkout, orders: orders}
}

type CartItemRequest struct {
	ProductID int64  `json:"productId"`
	VariantID *int64 `json:"variantId"`
	VendorID  int64  `json:"vendorId"`
	Quantity  int64  `json:"quantity"`
	Price     int64  `json:"price"`
	BasePrice *int64 `json:"basePrice"`
	SalePrice *int64 `json:"salePrice"`
}

type VendorVoucherRequest struct {
	VoucherID      int64 `json:"voucherId"`
	DiscountAmount int64 `json:"discountAmount"`
}

type OrderCreateRequest struct {
	UserID            int64                 `json:"userId"`
	CartItems         []CartItemRequest     `json:"cartItems"`
	ShippingAddress   model.ShippingAddress `json:"shippingAddress"`
	PaymentMethod     string                `json:"paymentMethod"`
	ShippingMethod    string                `json:"shippingMethod"`
	EstimatedDelivery *time.Time            `json:"estimatedDelivery"`

	//キーはvendorId
	VendorVouchers map[int64]VendorVoucherRequest `json:"vendorVouchers"`
}

type OrderStatusRequest struct {
	OrderID int64  `json:"orderId"`
	Status  string `json:"status"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/orders")
	g.GET("", h.list)
	g.GET("/:id", h.detail)
	g.POST("", h.create)
	g.PATCH("", h.updateStatus)
}

func (h *OrderHandler) list(c echo.Context) error {
	userID, err := queryInt64(c, "userId")
	if err != nil {
		return badRequest(c, "invalid userId")
	}
	limit, offset, msg := pageParams(c)
	if msg != "" {
		return badRequest(c, msg)
	}

	out, err := h.orders.List(c.Request().Context(), usecase.ListOrdersInput{
		UserID: userID,
		Status: c.QueryParam("status"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest(c, "invalid id")
	}
	userID, err := queryInt64(c, "userId")
	if err != nil {
		return badRequest(c, "invalid userId")
	}

	out, err := h.orders.Get(c.Request().Context(), userID, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, DataResponse{Data: out})
}

func (h *OrderHandler) create(c echo.Context) error {
	var req OrderCreateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	items := make([]usecase.CartLine, 0, len(req.CartItems))
	for _, it := range req.CartItems {
		items = append(items, usecase.CartLine{
			ProductID: it.ProductID,
			VariantID: it.VariantID,
			VendorID:  it.VendorID,
			Quantity:  it.Quantity,
			Price:     it.Price,
			BasePrice: it.BasePrice,
			SalePrice: it.SalePrice,
		})
	}

	var vouchers map[int64]usecase.VoucherSelection
	if len(req.VendorVouchers) > 0 {
		vouchers = make(map[int64]usecase.VoucherSelection, len(req.VendorVouchers))
		for vendorID, v := range req.VendorVouchers {
			vouchers[vendorID] = usecase.VoucherSelection{VoucherID: v.VoucherID, DiscountAmount: v.DiscountAmount}
		}
	}

	orders, err := h.checkout.PlaceOrders(c.Request().Context(), usecase.PlaceOrdersInput{
		UserID:            req.UserID,
		Items:             items,
		ShippingAddress:   req.ShippingAddress,
		PaymentMethod:     model.PaymentMethod(req.PaymentMethod),
		ShippingMethod:    model.ShippingMethod(req.ShippingMethod),
		EstimatedDelivery: req.EstimatedDelivery,
		VendorVouchers:    vouchers,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, DataResponse{Data: orders})
}

func (h *OrderHandler) updateStatus(c echo.Context) error {
	var req OrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.orders.UpdateStatus(c.Request().Context(), usecase.UpdateOrderStatusInput{
		OrderID: req.OrderID,
		Status:  req.Status,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, DataResponse{Data: out})
}
