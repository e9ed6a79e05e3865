package model

import "time"

// 訪問者セッション。カートの直列化済みJSONだけを持つ。
// Tokenはcookieで配る不透明なUUID。
type Session struct {
	Token     string    `gorm:"type:uuid;primaryKey" json:"token"`
	CartJSON  string    `gorm:"type:text;not null;default:'{}'" json:"-"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
