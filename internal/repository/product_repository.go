package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 公開一覧の絞り込み条件。在庫ありが前提。
type ProductListFilter struct {
	CategoryID *int64
	Search     string
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	// 在庫ありの件数（一覧と同じ絞り込みで数える）
	CountInStock(ctx context.Context, f ProductListFilter) (int64, error)

	// 在庫ありの一覧。新着順、ページングあり。
	ListInStock(ctx context.Context, f ProductListFilter, offset int, limit int) ([]model.Product, error)

	// トップページ用。在庫ありを新着順にlimit件。
	ListFeatured(ctx context.Context, limit int) ([]model.Product, error)

	// slug一意性チェック用。論理削除済みの行も対象にする
	// （DBのunique indexには削除済みslugも残っているため）。
	FindBySlugIncludingDeleted(ctx context.Context, slug string) (model.Product, error)

	// 管理画面用。在庫ゼロも含めて全件。
	ListAll(ctx context.Context) ([]model.Product, error)

	FindBySlug(ctx context.Context, slug string) (model.Product, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	SoftDelete(ctx context.Context, id int64) error
}

// 在庫の増減だけを約束。
type InventoryRepository interface {
	// 在庫が足りるときだけ減算
	DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error)

	// 在庫戻し（キャンセルなど）
	IncreaseStock(ctx context.Context, productID int64, qty int64) error
}
