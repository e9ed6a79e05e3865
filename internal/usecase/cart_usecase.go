package usecase

import (
	"context"
	"net/http"

	"app/internal/cart"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

// CartUsecase はセッションに紐づくカートの操作。
// すべての変更操作はカートを直列化してセッションへ書き戻す。
type CartUsecase struct {
	sessionRepo repo.SessionRepository
	productRepo repo.ProductRepository
}

func NewCartUsecase(sessionRepo repo.SessionRepository, productRepo repo.ProductRepository) *CartUsecase {
	return &CartUsecase{
		sessionRepo: sessionRepo,
		productRepo: productRepo,
	}
}

type CartItemView struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Slug      string          `json:"slug"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type CartResponse struct {
	Items         []CartItemView  `json:"items"`
	TotalQuantity int64           `json:"total_quantity"`
	TotalPrice    decimal.Decimal `json:"total_price"`

	// 在庫不足などの通知。操作自体は成功扱い。
	Message string `json:"message,omitempty"`
}

// GetCart はカートの現在の中身。
func (u *CartUsecase) GetCart(ctx context.Context, sessionToken string) (CartResponse, error) {
	c, err := u.loadCart(ctx, sessionToken)
	if err != nil {
		return CartResponse{}, err
	}
	return u.buildResponse(ctx, c, "")
}

// AddToCart は商品を数量qtyで追加する（同一商品は加算）。
// 在庫を超える場合はカートを変えずに通知だけ返す。
func (u *CartUsecase) AddToCart(ctx context.Context, sessionToken string, productID int64, qty int64) (CartResponse, error) {
	if qty < 1 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	c, err := u.loadCart(ctx, sessionToken)
	if err != nil {
		return CartResponse{}, err
	}

	// 在庫のソフトチェック。超えていてもエラーにはしない。
	if c.Quantity(productID)+qty > p.Stock {
		return u.buildResponse(ctx, c, "Not enough stock available.")
	}

	c.Add(productID, p.Price, qty, false)

	if err := u.saveCart(ctx, sessionToken, c); err != nil {
		return CartResponse{}, err
	}
	return u.buildResponse(ctx, c, p.Name+" added to cart!")
}

// UpdateItem は数量の上書き。0以下は削除扱い。
func (u *CartUsecase) UpdateItem(ctx context.Context, sessionToken string, productID int64, qty int64) (CartResponse, error) {
	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	c, err := u.loadCart(ctx, sessionToken)
	if err != nil {
		return CartResponse{}, err
	}

	if qty <= 0 {
		c.Remove(productID)
		if err := u.saveCart(ctx, sessionToken, c); err != nil {
			return CartResponse{}, err
		}
		return u.buildResponse(ctx, c, "Item removed from cart.")
	}

	if qty > p.Stock {
		return u.buildResponse(ctx, c, "Not enough stock available.")
	}

	c.Add(productID, p.Price, qty, true)

	if err := u.saveCart(ctx, sessionToken, c); err != nil {
		return CartResponse{}, err
	}
	return u.buildResponse(ctx, c, "Cart updated.")
}

// RemoveItem は明細の削除。無い商品でも成功（冪等）。
func (u *CartUsecase) RemoveItem(ctx context.Context, sessionToken string, productID int64) (CartResponse, error) {
	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	c, err := u.loadCart(ctx, sessionToken)
	if err != nil {
		return CartResponse{}, err
	}

	c.Remove(productID)

	if err := u.saveCart(ctx, sessionToken, c); err != nil {
		return CartResponse{}, err
	}
	return u.buildResponse(ctx, c, p.Name+" removed from cart.")
}

func (u *CartUsecase) loadCart(ctx context.Context, sessionToken string) (*cart.Cart, error) {
	s, err := u.sessionRepo.Find(ctx, sessionToken)
	if err == repo.ErrNotFound {
		// セッション未作成でも空カートとして扱える
		return cart.New(), nil
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	c, err := cart.Decode(s.CartJSON)
	if err != nil {
		// 壊れたセッションは空カートから作り直す
		return cart.New(), nil
	}
	return c, nil
}

func (u *CartUsecase) saveCart(ctx context.Context, sessionToken string, c *cart.Cart) error {
	encoded, err := c.Encode()
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	if err := u.sessionRepo.SaveCart(ctx, sessionToken, encoded); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// buildResponse はカートの明細に商品名などを付けて返す。
// 商品が消えている明細は表示から外す。
func (u *CartUsecase) buildResponse(ctx context.Context, c *cart.Cart, message string) (CartResponse, error) {
	lines := c.Lines()

	items := make([]CartItemView, 0, len(lines))
	for _, line := range lines {
		p, err := u.productRepo.FindByID(ctx, line.ProductID)
		if err != nil {
			continue
		}

		items = append(items, CartItemView{
			ProductID: line.ProductID,
			Name:      p.Name,
			Slug:      p.Slug,
			Quantity:  line.Quantity,
			Price:     line.UnitPrice,
			Subtotal:  line.Subtotal,
		})
	}

	return CartResponse{
		Items:         items,
		TotalQuantity: c.TotalQuantity(),
		TotalPrice:    c.TotalPrice(),
		Message:       message,
	}, nil
}
