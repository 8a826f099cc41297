package handler

import (
	"net/http"

	"marketplace/internal/middleware"
	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /admin 管理画面（JWT + ADMINロール）
type AdminHandler struct {
	stock  *usecase.InventoryUsecase
	audits *usecase.AuditLogUsecase
}

func NewAdminHandler(stock *usecase.InventoryUsecase, audits *usecase.AuditLogUsecase) *AdminHandler {
	return &AdminHandler{stock: stock, audits: audits}
}

type AdminStockRequest struct {
	ProductID int64  `json:"productId"`
	VariantID *int64 `json:"variantId"`
	Stock     *int64 `json:"stock"`
	Reason    string `json:"reason"`
}

func (h *AdminHandler) RegisterRoutes(e *echo.Echo, jwtSecret string) {
	g := e.Group("/admin")
	g.Use(middleware.AuthJWT(jwtSecret))
	g.Use(middleware.AdminRoleGuard())

	g.GET("/audit-logs", h.listAuditLogs)
	g.PUT("/inventory", h.setStock)
}

func (h *AdminHandler) listAuditLogs(c echo.Context) error {
	resourceID, err := queryInt64(c, "resourceId")
	if err != nil {
		return badRequest(c, "invalid resourceId")
	}
	limit, offset, msg := pageParams(c)
	if msg != "" {
		return badRequest(c, msg)
	}

	out, err := h.audits.List(c.Request().Context(), usecase.ListAuditLogsInput{
		ResourceType: c.QueryParam("resourceType"),
		ResourceID:   resourceID,
		Action:       c.QueryParam("action"),
		Limit:        limit,
		Offset:       offset,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminHandler) setStock(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req AdminStockRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	//stockは0も有効なのでポインタで必須チェック
	if req.Stock == nil {
		return badRequest(c, "stock is required")
	}

	out, err := h.stock.SetStock(c.Request().Context(), usecase.SetStockInput{
		AdminUserID: adminID,
		ProductID:   req.ProductID,
		VariantID:   req.VariantID,
		Stock:       *req.Stock,
		Reason:      req.Reason,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, DataResponse{Data: out})
}
