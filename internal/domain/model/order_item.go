package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 注文の明細。価格と商品名は注文確定時点のスナップショット。
type OrderItem struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID     int64           `gorm:"not null;index" json:"order_id"`
	ProductID   int64           `gorm:"not null;index" json:"product_id"`
	ProductName string          `gorm:"type:varchar(200);not null" json:"product_name"`
	Quantity    int64           `gorm:"not null" json:"quantity"`
	PriceAtTime decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price_at_time"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}
