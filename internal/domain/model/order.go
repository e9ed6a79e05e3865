package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "cod"
	PaymentPrepaid        PaymentMethod = "prepaid"
)

// 注文。連絡先と配送先は注文時点の値をそのまま持つ。
type Order struct {
	ID            int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        *int64          `gorm:"index" json:"user_id,omitempty"`
	FullName      string          `gorm:"type:varchar(200);not null" json:"full_name"`
	Email         string          `gorm:"type:varchar(255);not null" json:"email"`
	Phone         string          `gorm:"type:varchar(20);not null" json:"phone"`
	Address       string          `gorm:"type:varchar(300);not null" json:"address"`
	City          string          `gorm:"type:varchar(100);not null" json:"city"`
	PostalCode    string          `gorm:"type:varchar(20);not null" json:"postal_code"`
	Country       string          `gorm:"type:varchar(100);not null" json:"country"`
	PaymentMethod PaymentMethod   `gorm:"type:varchar(20);not null;default:'cod'" json:"payment_method"`
	Status        OrderStatus     `gorm:"type:varchar(20);not null;index;default:'pending'" json:"status"`
	TotalPrice    decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total_price"`
	CreatedAt     time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`

	// AutoMigrateにFKを張らせるための関連。API応答には出さない。
	User  *User       `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"-"`
}
