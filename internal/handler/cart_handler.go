package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/repository"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /cartのHTTP
type CartHandler struct {
	uc *usecase.CartUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

type QuantityRequest struct {
	Quantity int64 `json:"quantity"`
}

// 追加用。quantity未指定（nil）と明示的な0を区別する。
type AddQuantityRequest struct {
	Quantity *int64 `json:"quantity"`
}

// /cart 以下を登録。セッションcookieが前提。
func (h *CartHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, sessions repository.SessionRepository) {
	g := e.Group("/cart")
	g.Use(middleware.Session(cfg, sessions))

	g.GET("", h.getCart)
	g.POST("/add/:product_id", h.add)
	// 画面のリンクから叩けるようにGETも受ける
	g.Match([]string{http.MethodGet, http.MethodPost}, "/remove/:product_id", h.remove)
	g.POST("/update/:product_id", h.update)
}

func (h *CartHandler) getCart(c echo.Context) error {
	token, ok := getSessionToken(c)
	if !ok {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}

	out, err := h.uc.GetCart(c.Request().Context(), token)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) add(c echo.Context) error {
	token, ok := getSessionToken(c)
	if !ok {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}

	productID, err := strconv.ParseInt(c.Param("product_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product id"})
	}

	// quantity未指定は1。明示的な0はそのまま渡して弾かせる。
	var req AddQuantityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	quantity := int64(1)
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	out, err := h.uc.AddToCart(c.Request().Context(), token, productID, quantity)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) remove(c echo.Context) error {
	token, ok := getSessionToken(c)
	if !ok {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}

	productID, err := strconv.ParseInt(c.Param("product_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product id"})
	}

	out, err := h.uc.RemoveItem(c.Request().Context(), token, productID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) update(c echo.Context) error {
	token, ok := getSessionToken(c)
	if !ok {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}

	productID, err := strconv.ParseInt(c.Param("product_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product id"})
	}

	var req QuantityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.UpdateItem(c.Request().Context(), token, productID, req.Quantity)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

// contextからセッショントークンを取り出す
func getSessionToken(c echo.Context) (string, bool) {
	raw := c.Get(middleware.CtxSessionTokenKey)
	token, ok := raw.(string)
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

// contextからuser_idを取り出す
func getUserIDFromContext(c echo.Context) (int64, bool) {
	raw := c.Get(middleware.CtxUserIDKey)
	userID, ok := raw.(int64)
	if !ok || userID <= 0 {
		return 0, false
	}
	return userID, true
}
