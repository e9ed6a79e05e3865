package usecase

import (
	"context"
	"net/http"
	"time"

	"app/internal/cart"
	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// チェックアウトフォームの検証の約束。
// フィールド名→メッセージのmapを返す（空なら合格）。
type CheckoutValidator interface {
	ValidateCheckout(in CheckoutInput) map[string]string
}

// CheckoutUsecase はカートから注文への変換。
// 注文作成・在庫減算・カートクリアは1トランザクションで行う。
type CheckoutUsecase struct {
	tx        repo.TransactionManager
	validator CheckoutValidator
	logger    *zap.Logger
}

func NewCheckoutUsecase(tx repo.TransactionManager, validator CheckoutValidator, logger *zap.Logger) *CheckoutUsecase {
	return &CheckoutUsecase{tx: tx, validator: validator, logger: logger}
}

type CheckoutInput struct {
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	City          string `json:"city"`
	PostalCode    string `json:"postal_code"`
	Country       string `json:"country"`
	PaymentMethod string `json:"payment_method"`
}

type OrderItemOutput struct {
	ProductID   int64           `json:"product_id"`
	Name        string          `json:"name"`
	Quantity    int64           `json:"quantity"`
	PriceAtTime decimal.Decimal `json:"price_at_time"`
}

type OrderOutput struct {
	ID            int64             `json:"id"`
	Status        string            `json:"status"`
	PaymentMethod string            `json:"payment_method"`
	TotalPrice    decimal.Decimal   `json:"total_price"`
	CreatedAt     time.Time         `json:"created_at"`
	Items         []OrderItemOutput `json:"items"`
}

// PlaceOrder は注文を確定する。
// 在庫はトランザクション内で再チェックして減らすので売り越さない。
// どこかで失敗したら注文・在庫・カートすべて元に戻る。
func (u *CheckoutUsecase) PlaceOrder(ctx context.Context, userID int64, sessionToken string, in CheckoutInput) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	if fields := u.validator.ValidateCheckout(in); len(fields) > 0 {
		return OrderOutput{}, NewValidationError(http.StatusBadRequest, "validation error", fields)
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		s, err := r.Sessions().Find(ctx, sessionToken)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusBadRequest, "cart empty")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		c, err := cart.Decode(s.CartJSON)
		if err != nil {
			return NewHTTPError(http.StatusBadRequest, "cart empty")
		}
		if c.TotalQuantity() == 0 {
			return NewHTTPError(http.StatusBadRequest, "cart empty")
		}

		// 明細ごとに在庫を再チェックして減算。
		// 価格は確定時点の商品価格をスナップショットする。
		orderItems := make([]model.OrderItem, 0, c.Len())
		total := decimal.Zero

		for _, line := range c.Lines() {
			p, err := r.Products().FindByID(ctx, line.ProductID)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusBadRequest, "invalid cart item")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, line.ProductID, line.Quantity)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !ok {
				return NewHTTPError(http.StatusBadRequest, "not enough stock: "+p.Name)
			}

			orderItems = append(orderItems, model.OrderItem{
				ProductID:   line.ProductID,
				ProductName: p.Name,
				Quantity:    line.Quantity,
				PriceAtTime: p.Price,
			})
			total = total.Add(p.Price.Mul(decimal.NewFromInt(line.Quantity)))
		}

		now := time.Now()
		order := model.Order{
			UserID:        &userID,
			FullName:      in.FullName,
			Email:         in.Email,
			Phone:         in.Phone,
			Address:       in.Address,
			City:          in.City,
			PostalCode:    in.PostalCode,
			Country:       in.Country,
			PaymentMethod: model.PaymentMethod(in.PaymentMethod),
			Status:        model.OrderStatusPending,
			TotalPrice:    total,
			CreatedAt:     now,
		}

		orderID, err := r.Orders().Create(ctx, order)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// カートを空にする（注文確定時に一度だけ）
		c.Clear()
		encoded, err := c.Encode()
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "internal error")
		}
		if err := r.Sessions().SaveCart(ctx, sessionToken, encoded); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(model.Order{
			ID:            orderID,
			UserID:        &userID,
			PaymentMethod: order.PaymentMethod,
			Status:        model.OrderStatusPending,
			TotalPrice:    total,
			CreatedAt:     now,
		}, orderItems)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}

	u.logger.Info("order placed",
		zap.Int64("order_id", out.ID),
		zap.Int64("user_id", userID),
		zap.String("total_price", out.TotalPrice.String()),
	)
	return out, nil
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ProductID:   it.ProductID,
			Name:        it.ProductName,
			Quantity:    it.Quantity,
			PriceAtTime: it.PriceAtTime,
		})
	}

	return OrderOutput{
		ID:            o.ID,
		Status:        string(o.Status),
		PaymentMethod: string(o.PaymentMethod),
		TotalPrice:    o.TotalPrice,
		CreatedAt:     o.CreatedAt,
		Items:         outItems,
	}
}
