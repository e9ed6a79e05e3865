package usecase

import (
	"context"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// 1ページの商品数（固定）
const productPageSize = 12

// トップページに出す商品数
const featuredLimit = 6

// CatalogUsecase は公開カタログの読み取り。
type CatalogUsecase struct {
	productRepo  repo.ProductRepository
	categoryRepo repo.CategoryRepository
}

func NewCatalogUsecase(productRepo repo.ProductRepository, categoryRepo repo.CategoryRepository) *CatalogUsecase {
	return &CatalogUsecase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

type ListProductsInput struct {
	CategorySlug string
	Search       string
	Page         int
}

type ProductListOutput struct {
	Items      []model.Product  `json:"items"`
	Categories []model.Category `json:"categories"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	TotalPages int              `json:"total_pages"`
}

// ListProducts は在庫ありの商品一覧。
// カテゴリslugの完全一致と、名前または説明の部分一致で絞り込める。
// ページ番号は範囲外なら近い方の有効ページへ丸める（エラーにしない）。
func (u *CatalogUsecase) ListProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	filter := repo.ProductListFilter{Search: strings.TrimSpace(in.Search)}

	if in.CategorySlug != "" {
		cat, err := u.categoryRepo.FindBySlug(ctx, in.CategorySlug)
		if err == repo.ErrNotFound {
			return ProductListOutput{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		filter.CategoryID = &cat.ID
	}

	total, err := u.productRepo.CountInStock(ctx, filter)
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	totalPages := int((total + productPageSize - 1) / productPageSize)
	if totalPages < 1 {
		totalPages = 1
	}

	page := in.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	offset := (page - 1) * productPageSize
	items, err := u.productRepo.ListInStock(ctx, filter, offset, productPageSize)
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	categories, err := u.categoryRepo.List(ctx)
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return ProductListOutput{
		Items:      items,
		Categories: categories,
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
	}, nil
}

// GetProductBySlug は商品詳細。削除済み・未登録は404。
func (u *CatalogUsecase) GetProductBySlug(ctx context.Context, slug string) (model.Product, error) {
	if strings.TrimSpace(slug) == "" {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	p, err := u.productRepo.FindBySlug(ctx, slug)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

// FeaturedProducts はトップページ用。在庫ありを新着順に最大6件。
func (u *CatalogUsecase) FeaturedProducts(ctx context.Context) ([]model.Product, error) {
	items, err := u.productRepo.ListFeatured(ctx, featuredLimit)
	if err != nil {
		return []model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}
