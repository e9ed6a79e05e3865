package repository

import (
	"context"

	"app/internal/domain/model"
)

// 訪問者セッションの保存・取得。カートJSONの置き場所。
// 同一セッションの同時リクエストは後勝ち（ロックしない）。
type SessionRepository interface {
	Find(ctx context.Context, token string) (model.Session, error)
	Create(ctx context.Context, s model.Session) error
	SaveCart(ctx context.Context, token string, cartJSON string) error
}
