package server

import (
	"marketplace/internal/handler"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Orders  *handler.OrderHandler
	Seller  *handler.SellerHandler
	Returns *handler.ReturnHandler
	Admin   *handler.AdminHandler
}

func RegisterRoutes(e *echo.Echo, h Handlers, jwtSecret string) {
	handler.RegisterHealth(e)
	h.Orders.RegisterRoutes(e)
	h.Seller.RegisterRoutes(e)
	h.Returns.RegisterRoutes(e)
	h.Admin.RegisterRoutes(e, jwtSecret)
}
