package usecase

import (
	"context"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
)

// 管理画面に出す直近注文の件数
const dashboardOrderLimit = 10

// 商品フォームの検証の約束。
type ProductValidator interface {
	ValidateProduct(ctx context.Context, in AdminProductInput) map[string]string
}

// AdminProductUsecase はスタッフ向けの商品管理とダッシュボード。
type AdminProductUsecase struct {
	productRepo  repo.ProductRepository
	categoryRepo repo.CategoryRepository
	orderRepo    repo.OrderRepository
	validator    ProductValidator
}

func NewAdminProductUsecase(
	productRepo repo.ProductRepository,
	categoryRepo repo.CategoryRepository,
	orderRepo repo.OrderRepository,
	validator ProductValidator,
) *AdminProductUsecase {
	return &AdminProductUsecase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		orderRepo:    orderRepo,
		validator:    validator,
	}
}

type AdminProductInput struct {
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int64           `json:"stock"`
	CategoryID  int64           `json:"category_id"`
	Condition   string          `json:"condition"`
	Rarity      string          `json:"rarity"`
}

type DashboardOutput struct {
	Products []model.Product `json:"products"`
	Orders   []model.Order   `json:"orders"`
}

// Dashboard は全商品と直近の注文。
func (u *AdminProductUsecase) Dashboard(ctx context.Context) (DashboardOutput, error) {
	products, err := u.productRepo.ListAll(ctx)
	if err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	orders, err := u.orderRepo.ListRecent(ctx, dashboardOrderLimit)
	if err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return DashboardOutput{Products: products, Orders: orders}, nil
}

// CreateProduct は商品を作成する。slugは未指定なら名前から作る。
func (u *AdminProductUsecase) CreateProduct(ctx context.Context, in AdminProductInput) (model.Product, error) {
	if fields := u.validator.ValidateProduct(ctx, in); len(fields) > 0 {
		return model.Product{}, NewValidationError(http.StatusBadRequest, "validation error", fields)
	}

	productSlug, err := u.resolveSlug(ctx, in, 0)
	if err != nil {
		return model.Product{}, err
	}

	p, err := u.productRepo.Create(ctx, model.Product{
		Name:        strings.TrimSpace(in.Name),
		Slug:        productSlug,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		CategoryID:  in.CategoryID,
		Condition:   model.Condition(in.Condition),
		Rarity:      model.Rarity(in.Rarity),
	})
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

// UpdateProduct は商品を更新する。
func (u *AdminProductUsecase) UpdateProduct(ctx context.Context, productID int64, in AdminProductInput) error {
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	if fields := u.validator.ValidateProduct(ctx, in); len(fields) > 0 {
		return NewValidationError(http.StatusBadRequest, "validation error", fields)
	}

	productSlug, err := u.resolveSlug(ctx, in, productID)
	if err != nil {
		return err
	}

	err = u.productRepo.Update(ctx, model.Product{
		ID:          productID,
		Name:        strings.TrimSpace(in.Name),
		Slug:        productSlug,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		CategoryID:  in.CategoryID,
		Condition:   model.Condition(in.Condition),
		Rarity:      model.Rarity(in.Rarity),
	})
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// DeleteProduct は論理削除。過去の注文明細はスナップショットのまま残る。
func (u *AdminProductUsecase) DeleteProduct(ctx context.Context, productID int64) error {
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	err := u.productRepo.SoftDelete(ctx, productID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// CreateCategory はカテゴリを作る。slugは未指定なら名前から作る。
func (u *AdminProductUsecase) CreateCategory(ctx context.Context, name string, slugInput string) (model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Category{}, NewValidationError(http.StatusBadRequest, "validation error",
			map[string]string{"name": "name is required"})
	}

	categorySlug := strings.TrimSpace(slugInput)
	if categorySlug == "" {
		categorySlug = slug.Make(name)
	}

	if _, err := u.categoryRepo.FindBySlug(ctx, categorySlug); err == nil {
		return model.Category{}, NewValidationError(http.StatusBadRequest, "validation error",
			map[string]string{"slug": "slug already exists"})
	} else if err != repo.ErrNotFound {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	c, err := u.categoryRepo.Create(ctx, model.Category{Name: name, Slug: categorySlug})
	if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

// resolveSlug はslugを決めて一意性を確かめる。
// excludeID は更新対象自身との衝突を無視するため。
// unique indexには論理削除済みの行も残るので、削除済みも衝突扱い。
func (u *AdminProductUsecase) resolveSlug(ctx context.Context, in AdminProductInput, excludeID int64) (string, error) {
	productSlug := strings.TrimSpace(in.Slug)
	if productSlug == "" {
		productSlug = slug.Make(in.Name)
	}

	existing, err := u.productRepo.FindBySlugIncludingDeleted(ctx, productSlug)
	if err == repo.ErrNotFound {
		return productSlug, nil
	}
	if err != nil {
		return "", NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if existing.ID != excludeID {
		return "", NewValidationError(http.StatusBadRequest, "validation error",
			map[string]string{"slug": "slug already exists"})
	}
	return productSlug, nil
}
