package server

import (
	"app/internal/config"
	"app/internal/handler"
	"app/internal/repository"

	"github.com/labstack/echo/v4"
)

// Handlers はルート登録に必要なhandler一式。
type Handlers struct {
	Product  *handler.ProductHandler
	Cart     *handler.CartHandler
	Checkout *handler.CheckoutHandler
	Order    *handler.OrderHandler
	Auth     *handler.AuthHandler
	Admin    *handler.AdminHandler
}

func RegisterRoutes(
	e *echo.Echo,
	cfg config.Config,
	h Handlers,
	sessions repository.SessionRepository,
	users repository.UserRepository,
) {
	h.Product.RegisterRoutes(e)
	h.Cart.RegisterRoutes(e, cfg, sessions)
	h.Checkout.RegisterRoutes(e, cfg, sessions, users)
	h.Order.RegisterRoutes(e, cfg, users)
	h.Auth.RegisterRoutes(e, cfg, users)
	h.Admin.RegisterRoutes(e, cfg, users)
}
