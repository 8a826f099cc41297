package handler

import (
	"net/http"

	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /seller 出品者向けの注文・返品処理
type SellerHandler struct {
	orders  *usecase.SellerOrderUsecase
	returns *usecase.ReturnUsecase
}

func NewSellerHandler(orders *usecase.SellerOrderUsecase, returns *usecase.ReturnUsecase) *SellerHandler {
	return &SellerHandler{orders: orders, returns: returns}
}

type FulfillmentRequest struct {
	OrderID  int64  `json:"orderId"`
	VendorID int64  `json:"vendorId"`
	Status   string `json:"status"`
}

// actionなしでメモや追跡番号だけ更新してもよい
type ReturnActionRequest struct {
	ReturnID       int64   `json:"returnId"`
	VendorID       *int64  `json:"vendorId"`
	Action         string  `json:"action"`
	SellerNotes    *string `json:"sellerNotes"`
	TrackingNumber *string `json:"trackingNumber"`
	TrackingURL    *string `json:"trackingUrl"`
}

func (h *SellerHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/seller")
	g.GET("/orders", h.listOrders)
	g.PATCH("/orders", h.updateFulfillment)
	g.GET("/returns", h.listReturns)
	g.PATCH("/returns", h.processReturn)
}

func (h *SellerHandler) listOrders(c echo.Context) error {
	vendorID, err := queryInt64(c, "vendorId")
	if err != nil {
		return badRequest(c, "invalid vendorId")
	}
	limit, offset, msg := pageParams(c)
	if msg != "" {
		return badRequest(c, msg)
	}

	out, err := h.orders.List(c.Request().Context(), usecase.ListVendorOrdersInput{
		VendorID: vendorID,
		Status:   c.QueryParam("status"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *SellerHandler) updateFulfillment(c echo.Context) error {
	var req FulfillmentRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.orders.UpdateFulfillment(c.Request().Context(), usecase.UpdateFulfillmentInput{
		OrderID:  req.OrderID,
		VendorID: req.VendorID,
		Status:   req.Status,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, DataResponse{Data: out})
}

func (h *SellerHandler) listReturns(c echo.Context) error {
	vendorID, err := queryInt64(c, "vendorId")
	if err != nil {
		return badRequest(c, "invalid vendorId")
	}
	if vendorID <= 0 {
		return badRequest(c, "vendorId is required")
	}
	limit, offset, msg := pageParams(c)
	if msg != "" {
		return badRequest(c, msg)
	}

	out, err := h.returns.List(c.Request().Context(), usecase.ListReturnsInput{
		VendorID: vendorID,
		Status:   c.QueryParam("status"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *SellerHandler) processReturn(c echo.Context) error {
	var req ReturnActionRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.returns.Process(c.Request().Context(), usecase.ReturnActionInput{
		ReturnID:       req.ReturnID,
		VendorID:       req.VendorID,
		Action:         usecase.ReturnAction(req.Action),
		SellerNotes:    req.SellerNotes,
		TrackingNumber: req.TrackingNumber,
		TrackingURL:    req.TrackingURL,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, DataResponse{Data: out})
}
