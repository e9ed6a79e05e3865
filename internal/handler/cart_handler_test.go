package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type CartHandlerSessionRepoMock struct{ mock.Mock }

func (m *CartHandlerSessionRepoMock) Find(ctx context.Context, token string) (model.Session, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(model.Session), args.Error(1)
}

func (m *CartHandlerSessionRepoMock) Create(ctx context.Context, s model.Session) error {
	panic("unexpected call")
}

func (m *CartHandlerSessionRepoMock) SaveCart(ctx context.Context, token string, cartJSON string) error {
	args := m.Called(ctx, token, cartJSON)
	return args.Error(0)
}

type CartHandlerProductRepoMock struct{ mock.Mock }

func (m *CartHandlerProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Product), args.Error(1)
}

func (m *CartHandlerProductRepoMock) CountInStock(ctx context.Context, f repo.ProductListFilter) (int64, error) {
	panic("unexpected call")
}

func (m *CartHandlerProductRepoMock) ListInStock(ctx context.Context, f repo.ProductListFilter, offset int, limit int) ([]model.Product, error) {
	panic("unexpected call")
}

func (m *CartHandlerProductRepoMock) ListFeatured(ctx context.Context, limit int) ([]model.Product, error) {
	panic("unexpected call")
}

func (m *CartHandlerProductRepoMock) FindBySlugIncludingDeleted(ctx context.Context, slug string) (model.Product, error) {
	panic("unexpected call")
}

func (m *CartHandlerProductRepoMock) ListAll(ctx context.Context) ([]model.Product, error) {
	panic("unexpected call")
}

func (m *CartHandlerProductRepoMock) FindBySlug(ctx context.Context, slug string) (model.Product, error) {
	panic("unexpected call")
}

func (m *CartHandlerProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	panic("unexpected call")
}

func (m *CartHandlerProductRepoMock) Update(ctx context.Context, p model.Product) error {
	panic("unexpected call")
}

func (m *CartHandlerProductRepoMock) SoftDelete(ctx context.Context, id int64) error {
	panic("unexpected call")
}

// /cart/add をルーティングごと叩く。セッションcookieは既知トークン。
func callCartAdd(t *testing.T, sessions *CartHandlerSessionRepoMock, products *CartHandlerProductRepoMock, body string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	h := handler.NewCartHandler(usecase.NewCartUsecase(sessions, products))
	h.RegisterRoutes(e, config.Config{}, sessions)

	req := httptest.NewRequest(http.MethodPost, "/cart/add/7", strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	req.AddCookie(&http.Cookie{Name: "session_token", Value: "tok-1"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func cartHandlerTestProduct() model.Product {
	return model.Product{
		ID:    7,
		Name:  "Pikachu Promo",
		Slug:  "pikachu-promo",
		Price: decimal.RequireFromString("4.50"),
		Stock: 5,
	}
}

func TestCartHandler_Add_NoBodyDefaultsToOne(t *testing.T) {
	sessions := new(CartHandlerSessionRepoMock)
	sessions.On("Find", mock.Anything, "tok-1").Return(model.Session{Token: "tok-1", CartJSON: "{}"}, nil)
	sessions.On("SaveCart", mock.Anything, "tok-1", `{"7":{"quantity":1,"price":"4.50"}}`).Return(nil)

	products := new(CartHandlerProductRepoMock)
	products.On("FindByID", mock.Anything, int64(7)).Return(cartHandlerTestProduct(), nil)

	rec := callCartAdd(t, sessions, products, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Pikachu Promo added to cart!")
	sessions.AssertExpectations(t)
}

func TestCartHandler_Add_ExplicitZeroRejected(t *testing.T) {
	sessions := new(CartHandlerSessionRepoMock)
	sessions.On("Find", mock.Anything, "tok-1").Return(model.Session{Token: "tok-1", CartJSON: "{}"}, nil)

	products := new(CartHandlerProductRepoMock)
	products.On("FindByID", mock.Anything, int64(7)).Return(cartHandlerTestProduct(), nil)

	rec := callCartAdd(t, sessions, products, `{"quantity":0}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid quantity")
	sessions.AssertNotCalled(t, "SaveCart", mock.Anything, mock.Anything, mock.Anything)
}

func TestCartHandler_Add_ExplicitQuantityPassedThrough(t *testing.T) {
	sessions := new(CartHandlerSessionRepoMock)
	sessions.On("Find", mock.Anything, "tok-1").Return(model.Session{Token: "tok-1", CartJSON: "{}"}, nil)
	sessions.On("SaveCart", mock.Anything, "tok-1", `{"7":{"quantity":3,"price":"4.50"}}`).Return(nil)

	products := new(CartHandlerProductRepoMock)
	products.On("FindByID", mock.Anything, int64(7)).Return(cartHandlerTestProduct(), nil)

	rec := callCartAdd(t, sessions, products, `{"quantity":3}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	sessions.AssertExpectations(t)
}
