package handler

import (
	"fmt"
	"net/http"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/repository"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /checkoutのHTTP。認証必須＋セッション必須。
type CheckoutHandler struct {
	checkoutUC *usecase.CheckoutUsecase
	cartUC     *usecase.CartUsecase
}

func NewCheckoutHandler(checkoutUC *usecase.CheckoutUsecase, cartUC *usecase.CartUsecase) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutUC: checkoutUC,
		cartUC:     cartUC,
	}
}

func (h *CheckoutHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, sessions repository.SessionRepository, users repository.UserRepository) {
	g := e.Group("/checkout")
	g.Use(middleware.Session(cfg, sessions))
	g.Use(middleware.AuthJWT(cfg, users))

	g.GET("", h.summary)
	g.POST("", h.placeOrder)
}

// カートが空のときの案内。エラーではない。
func emptyCartRedirect(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message":  "Your cart is empty.",
		"redirect": "/products",
	})
}

func (h *CheckoutHandler) summary(c echo.Context) error {
	token, ok := getSessionToken(c)
	if !ok {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}

	out, err := h.cartUC.GetCart(c.Request().Context(), token)
	if err != nil {
		return writeError(c, err)
	}
	if out.TotalQuantity == 0 {
		return emptyCartRedirect(c)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CheckoutHandler) placeOrder(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	token, ok := getSessionToken(c)
	if !ok {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}

	// カートが空なら注文は作らずカタログへ誘導
	current, err := h.cartUC.GetCart(c.Request().Context(), token)
	if err != nil {
		return writeError(c, err)
	}
	if current.TotalQuantity == 0 {
		return emptyCartRedirect(c)
	}

	var req usecase.CheckoutInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.checkoutUC.PlaceOrder(c.Request().Context(), userID, token, req)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":  fmt.Sprintf("Order #%d placed successfully!", out.ID),
		"order":    out,
		"redirect": fmt.Sprintf("/orders/%d", out.ID),
	})
}
