package usecase_test

import (
	"context"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type CartSessionRepoMock struct{ mock.Mock }

func (m *CartSessionRepoMock) Find(ctx context.Context, token string) (model.Session, error) {
	args := m.Called(ctx, token)
	s, _ := args.Get(0).(model.Session)
	return s, args.Error(1)
}

func (m *CartSessionRepoMock) Create(ctx context.Context, s model.Session) error {
	panic("unexpected call")
}

func (m *CartSessionRepoMock) SaveCart(ctx context.Context, token string, cartJSON string) error {
	args := m.Called(ctx, token, cartJSON)
	return args.Error(0)
}

type CartProductRepoMock struct{ mock.Mock }

func (m *CartProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *CartProductRepoMock) CountInStock(ctx context.Context, f repo.ProductListFilter) (int64, error) {
	panic("unexpected call")
}

func (m *CartProductRepoMock) ListInStock(ctx context.Context, f repo.ProductListFilter, offset int, limit int) ([]model.Product, error) {
	panic("unexpected call")
}

func (m *CartProductRepoMock) ListFeatured(ctx context.Context, limit int) ([]model.Product, error) {
	panic("unexpected call")
}

func (m *CartProductRepoMock) ListAll(ctx context.Context) ([]model.Product, error) {
	panic("unexpected call")
}

func (m *CartProductRepoMock) FindBySlug(ctx context.Context, slug string) (model.Product, error) {
	panic("unexpected call")
}

func (m *CartProductRepoMock) FindBySlugIncludingDeleted(ctx context.Context, slug string) (model.Product, error) {
	panic("unexpected call")
}

func (m *CartProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	panic("unexpected call")
}

func (m *CartProductRepoMock) Update(ctx context.Context, p model.Product) error {
	panic("unexpected call")
}

func (m *CartProductRepoMock) SoftDelete(ctx context.Context, id int64) error {
	panic("unexpected call")
}

const cartTestToken = "tok-1"

func cartTestProduct() model.Product {
	return model.Product{
		ID:    7,
		Name:  "Pikachu Promo",
		Slug:  "pikachu-promo",
		Price: decimal.RequireFromString("4.50"),
		Stock: 5,
	}
}

func TestCartUsecase_GetCart_EmptySession(t *testing.T) {
	ctx := context.Background()

	sRepo := new(CartSessionRepoMock)
	pRepo := new(CartProductRepoMock)
	uc := usecase.NewCartUsecase(sRepo, pRepo)

	sRepo.On("Find", mock.Anything, cartTestToken).Return(model.Session{}, repo.ErrNotFound)

	out, err := uc.GetCart(ctx, cartTestToken)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(out.Items))
	assert.Equal(t, int64(0), out.TotalQuantity)
	assert.True(t, out.TotalPrice.IsZero())
}

// 壊れたカートJSONは空カート扱い
func TestCartUsecase_GetCart_BrokenJSON(t *testing.T) {
	ctx := context.Background()

	sRepo := new(CartSessionRepoMock)
	pRepo := new(CartProductRepoMock)
	uc := usecase.NewCartUsecase(sRepo, pRepo)

	sRepo.On("Find", mock.Anything, cartTestToken).Return(model.Session{Token: cartTestToken, CartJSON: "{broken"}, nil)

	out, err := uc.GetCart(ctx, cartTestToken)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(out.Items))
}

func TestCartUsecase_AddToCart_NewItem(t *testing.T) {
	ctx := context.Background()

	sRepo := new(CartSessionRepoMock)
	pRepo := new(CartProductRepoMock)
	uc := usecase.NewCartUsecase(sRepo, pRepo)

	p := cartTestProduct()
	pRepo.On("FindByID", mock.Anything, p.ID).Return(p, nil)
	sRepo.On("Find", mock.Anything, cartTestToken).Return(model.Session{Token: cartTestToken, CartJSON: "{}"}, nil)
	sRepo.On("SaveCart", mock.Anything, cartTestToken, mock.Anything).Return(nil)

	out, err := uc.AddToCart(ctx, cartTestToken, p.ID, 2)
	assert.NoError(t, err)
	assert.Equal(t, "Pikachu Promo added to cart!", out.Message)
	assert.Equal(t, int64(2), out.TotalQuantity)
	assert.True(t, out.TotalPrice.Equal(decimal.RequireFromString("9.00")))

	sRepo.AssertCalled(t, "SaveCart", mock.Anything, cartTestToken, mock.Anything)
}

// 同じ商品の追加は数量が加算される
func TestCartUsecase_AddToCart_Accumulates(t *testing.T) {
	ctx := context.Background()

	sRepo := new(CartSessionRepoMock)
	pRepo := new(CartProductRepoMock)
	uc := usecase.NewCartUsecase(sRepo, pRepo)

	p := cartTestProduct()
	existing := `{"7":{"quantity":1,"price":"4.50"}}`
	pRepo.On("FindByID", mock.Anything, p.ID).Return(p, nil)
	sRepo.On("Find", mock.Anything, cartTestToken).Return(model.Session{Token: cartTestToken, CartJSON: existing}, nil)
	sRepo.On("SaveCart", mock.Anything, cartTestToken, mock.Anything).Return(nil)

	out, err := uc.AddToCart(ctx, cartTestToken, p.ID, 2)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), out.TotalQuantity)
	assert.Equal(t, 1, len(out.Items))
}

// 在庫を超える追加は成功扱いのままカートを変えない
func TestCartUsecase_AddToCart_NotEnoughStock(t *testing.T) {
	ctx := context.Background()

	sRepo := new(CartSessionRepoMock)
	pRepo := new(CartProductRepoMock)
	uc := usecase.NewCartUsecase(sRepo, pRepo)

	p := cartTestProduct() // stock 5
	existing := `{"7":{"quantity":4,"price":"4.50"}}`
	pRepo.On("FindByID", mock.Anything, p.ID).Return(p, nil)
	sRepo.On("Find", mock.Anything, cartTestToken).Return(model.Session{Token: cartTestToken, CartJSON: existing}, nil)

	out, err := uc.AddToCart(ctx, cartTestToken, p.ID, 2)
	assert.NoError(t, err)
	assert.Equal(t, "Not enough stock available.", out.Message)
	assert.Equal(t, int64(4), out.TotalQuantity)

	sRepo.AssertNotCalled(t, "SaveCart", mock.Anything, mock.Anything, mock.Anything)
}

func TestCartUsecase_AddToCart_UnknownProduct(t *testing.T) {
	ctx := context.Background()

	sRepo := new(CartSessionRepoMock)
	pRepo := new(CartProductRepoMock)
	uc := usecase.NewCartUsecase(sRepo, pRepo)

	pRepo.On("FindByID", mock.Anything, int64(99)).Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.AddToCart(ctx, cartTestToken, 99, 1)
	assertErrContains(t, err, "not found")
}

func TestCartUsecase_AddToCart_InvalidQuantity(t *testing.T) {
	ctx := context.Background()

	sRepo := new(CartSessionRepoMock)
	pRepo := new(CartProductRepoMock)
	uc := usecase.NewCartUsecase(sRepo, pRepo)

	_, err := uc.AddToCart(ctx, cartTestToken, 7, 0)
	assertErrContains(t, err, "invalid quantity")
}

// 数量上書き。0以下は削除扱い。
func TestCartUsecase_UpdateItem_Overwrite(t *testing.T) {
	ctx := context.Background()

	sRepo := new(CartSessionRepoMock)
	pRepo := new(CartProductRepoMock)
	uc := usecase.NewCartUsecase(sRepo, pRepo)

	p := cartTestProduct()
	existing := `{"7":{"quantity":1,"price":"4.50"}}`
	pRepo.On("FindByID", mock.Anything, p.ID).Return(p, nil)
	sRepo.On("Find", mock.Anything, cartTestToken).Return(model.Session{Token: cartTestToken, CartJSON: existing}, nil)
	sRepo.On("SaveCart", mock.Anything, cartTestToken, mock.Anything).Return(nil)

	out, err := uc.UpdateItem(ctx, cartTestToken, p.ID, 3)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), out.TotalQuantity)
	assert.Equal(t, "Cart updated.", out.Message)
}

func TestCartUsecase_UpdateItem_ZeroRemoves(t *testing.T) {
	ctx := context.Background()

	sRepo := new(CartSessionRepoMock)
	pRepo := new(CartProductRepoMock)
	uc := usecase.NewCartUsecase(sRepo, pRepo)

	p := cartTestProduct()
	existing := `{"7":{"quantity":2,"price":"4.50"}}`
	pRepo.On("FindByID", mock.Anything, p.ID).Return(p, nil)
	sRepo.On("Find", mock.Anything, cartTestToken).Return(model.Session{Token: cartTestToken, CartJSON: existing}, nil)
	sRepo.On("SaveCart", mock.Anything, cartTestToken, mock.Anything).Return(nil)

	out, err := uc.UpdateItem(ctx, cartTestToken, p.ID, 0)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(out.Items))
	assert.Equal(t, "Item removed from cart.", out.Message)
}

// カートに無い商品の削除でも成功する（冪等）
func TestCartUsecase_RemoveItem_Idempotent(t *testing.T) {
	ctx := context.Background()

	sRepo := new(CartSessionRepoMock)
	pRepo := new(CartProductRepoMock)
	uc := usecase.NewCartUsecase(sRepo, pRepo)

	p := cartTestProduct()
	pRepo.On("FindByID", mock.Anything, p.ID).Return(p, nil)
	sRepo.On("Find", mock.Anything, cartTestToken).Return(model.Session{Token: cartTestToken, CartJSON: "{}"}, nil)
	sRepo.On("SaveCart", mock.Anything, cartTestToken, "{}").Return(nil)

	out, err := uc.RemoveItem(ctx, cartTestToken, p.ID)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(out.Items))
	assert.Equal(t, "Pikachu Promo removed from cart.", out.Message)
}
