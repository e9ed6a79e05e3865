package model

import "time"

// 商品カテゴリ。slugはURL用の一意な識別子。
type Category struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(200);not null" json:"name"`
	Slug      string    `gorm:"type:varchar(200);not null;uniqueIndex" json:"slug"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`

	// AutoMigrateにproducts.category_idのFKを張らせるための関連。
	Products []Product `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT" json:"-"`
}
