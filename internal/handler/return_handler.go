package handler

import (
	"net/http"

	"marketplace/internal/domain/model"
	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /returns 顧客の返品申請
type ReturnHandler struct {
	uc *usecase.ReturnUsecase
}

func NewReturnHandler(uc *usecase.ReturnUsecase) *ReturnHandler {
	return &ReturnHandler{uc: uc}
}

type ReturnCreateRequest struct {
	UserID      int64    `json:"userId"`
	OrderItemID int64    `json:"orderItemId"`
	ReturnType  string   `json:"returnType"`
	Reason      string   `json:"reason"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	Quantity    int64    `json:"quantity"`
}

type ReturnCancelRequest struct {
	ReturnID int64 `json:"returnId"`
	UserID   int64 `json:"userId"`
}

func (h *ReturnHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/returns")
	g.GET("", h.list)
	g.POST("", h.create)
	g.PATCH("", h.cancel)
}

func (h *ReturnHandler) list(c echo.Context) error {
	userID, err := queryInt64(c, "userId")
	if err != nil {
		return badRequest(c, "invalid userId")
	}
	if userID <= 0 {
		return badRequest(c, "userId is required")
	}
	limit, offset, msg := pageParams(c)
	if msg != "" {
		return badRequest(c, msg)
	}

	out, err := h.uc.List(c.Request().Context(), usecase.ListReturnsInput{
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

func (h *ReturnHandler) create(c echo.Context) error {
	var req ReturnCreateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.uc.Create(c.Request().Context(), usecase.CreateReturnInput{
		UserID:      req.UserID,
		OrderItemID: req.OrderItemID,
		ReturnType:  model.ReturnType(req.ReturnType),
		Reason:      req.Reason,
		Description: req.Description,
		Images:      req.Images,
		Quantity:    req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, DataResponse{Data: out})
}

func (h *ReturnHandler) cancel(c echo.Context) error {
	var req ReturnCancelRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.uc.Cancel(c.Request().Context(), usecase.CancelReturnInput{
		ReturnID: req.ReturnID,
		UserID:   req.UserID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, DataResponse{Data: out})
}
