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

// スタッフ専用ダッシュボードのHTTP。
// AuthJWT→StaffGuardの順で必ず両方通す。
type AdminHandler struct {
	productUC *usecase.AdminProductUsecase
	orderUC   *usecase.AdminOrderUsecase
}

func NewAdminHandler(productUC *usecase.AdminProductUsecase, orderUC *usecase.AdminOrderUsecase) *AdminHandler {
	return &AdminHandler{
		productUC: productUC,
		orderUC:   orderUC,
	}
}

type CreateCategoryRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

func (h *AdminHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, users repository.UserRepository) {
	g := e.Group("/admin-dashboard")
	g.Use(middleware.AuthJWT(cfg, users))
	g.Use(middleware.StaffGuard())

	g.GET("", h.dashboard)
	g.POST("/products", h.createProduct)
	g.PUT("/products/:id", h.updateProduct)
	g.DELETE("/products/:id", h.deleteProduct)
	g.POST("/categories", h.createCategory)
	g.POST("/orders/:id/status", h.updateOrderStatus)
}

func (h *AdminHandler) dashboard(c echo.Context) error {
	out, err := h.productUC.Dashboard(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AdminHandler) createProduct(c echo.Context) error {
	var req usecase.AdminProductInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	p, err := h.productUC.CreateProduct(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, p)
}

func (h *AdminHandler) updateProduct(c echo.Context) error {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req usecase.AdminProductInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.productUC.UpdateProduct(c.Request().Context(), productID, req); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Product updated successfully!"})
}

func (h *AdminHandler) deleteProduct(c echo.Context) error {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.productUC.DeleteProduct(c.Request().Context(), productID); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Product deleted successfully!"})
}

func (h *AdminHandler) createCategory(c echo.Context) error {
	var req CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	cat, err := h.productUC.CreateCategory(c.Request().Context(), req.Name, req.Slug)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, cat)
}

func (h *AdminHandler) updateOrderStatus(c echo.Context) error {
	actorID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.orderUC.UpdateStatus(c.Request().Context(), actorID, orderID, req.Status); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Order status updated."})
}
