package validator

import (
	"context"
	"strings"

	"app/internal/domain/model"
	"app/internal/repository"
	"app/internal/usecase"

	"github.com/shopspring/decimal"
)

type productValidator struct {
	categories repository.CategoryRepository
}

func NewProductValidator(categories repository.CategoryRepository) usecase.ProductValidator {
	return &productValidator{categories: categories}
}

// 商品フォームの検証。カテゴリの存在チェックはDBが必要。
func (v *productValidator) ValidateProduct(ctx context.Context, in usecase.AdminProductInput) map[string]string {
	fields := map[string]string{}

	if strings.TrimSpace(in.Name) == "" {
		fields["name"] = "this field is required"
	}

	if in.Price.LessThan(decimal.Zero) {
		fields["price"] = "price must be >= 0"
	}

	if in.Stock < 0 {
		fields["stock"] = "stock must be >= 0"
	}

	if in.CategoryID <= 0 {
		fields["category_id"] = "this field is required"
	} else if _, err := v.categories.FindByID(ctx, in.CategoryID); err == repository.ErrNotFound {
		fields["category_id"] = "category does not exist"
	}

	switch model.Condition(in.Condition) {
	case model.ConditionNew, model.ConditionUsed, model.ConditionMint:
	default:
		fields["condition"] = "select a valid condition"
	}

	// rarityは任意。空は未設定扱い。
	if in.Rarity != "" {
		switch model.Rarity(in.Rarity) {
		case model.RarityCommon, model.RarityUncommon, model.RarityRare, model.RarityUltraRare:
		default:
			fields["rarity"] = "select a valid rarity"
		}
	}

	return fields
}
