//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"app/internal/domain/model"
	infra "app/internal/infra/repository"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// 実DBに対する検索SQLの確認。
// DATABASE_URL を指す使い捨てDBで `go test -tags integration` を実行する。
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&model.Category{}, &model.Product{}))
	return gdb
}

func seedSearchProducts(t *testing.T, gdb *gorm.DB) (nameMatch, descMatch, noMatch model.Product) {
	t.Helper()

	stamp := time.Now().UnixNano()
	cat := model.Category{Name: fmt.Sprintf("cat-%d", stamp), Slug: fmt.Sprintf("cat-%d", stamp)}
	require.NoError(t, gdb.Create(&cat).Error)
	t.Cleanup(func() {
		gdb.Unscoped().Where("category_id = ?", cat.ID).Delete(&model.Product{})
		gdb.Delete(&model.Category{}, cat.ID)
	})

	mk := func(name, slug, desc string) model.Product {
		p := model.Product{
			Name:        name,
			Slug:        fmt.Sprintf("%s-%d", slug, stamp),
			Description: desc,
			Price:       decimal.RequireFromString("4.50"),
			Stock:       3,
			CategoryID:  cat.ID,
			Condition:   model.ConditionNew,
		}
		require.NoError(t, gdb.Create(&p).Error)
		return p
	}

	nameMatch = mk("Pikachu Promo", "pikachu-promo", "sealed card")
	descMatch = mk("Mystery Pack", "mystery-pack", "contains one PIKACHU sticker")
	noMatch = mk("Charizard Holo", "charizard-holo", "graded slab")
	return nameMatch, descMatch, noMatch
}

func productIDs(products []model.Product) []int64 {
	ids := make([]int64, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	return ids
}

// 名前または説明の部分一致、大文字小文字は無視。
func TestProductGormRepository_SearchMatchesNameAndDescription(t *testing.T) {
	gdb := openTestDB(t)
	r := infra.NewProductGormRepository(gdb)
	ctx := context.Background()

	nameMatch, descMatch, noMatch := seedSearchProducts(t, gdb)

	got, err := r.ListInStock(ctx, repo.ProductListFilter{Search: "pikachu"}, 0, 50)
	require.NoError(t, err)

	ids := productIDs(got)
	assert.Contains(t, ids, nameMatch.ID)
	assert.Contains(t, ids, descMatch.ID)
	assert.NotContains(t, ids, noMatch.ID)

	total, err := r.CountInStock(ctx, repo.ProductListFilter{Search: "PIKACHU"})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, total, int64(2))
}

// 在庫ゼロは検索に出ない
func TestProductGormRepository_SearchSkipsOutOfStock(t *testing.T) {
	gdb := openTestDB(t)
	r := infra.NewProductGormRepository(gdb)
	ctx := context.Background()

	nameMatch, _, _ := seedSearchProducts(t, gdb)
	require.NoError(t, gdb.Model(&model.Product{}).Where("id = ?", nameMatch.ID).Update("stock", 0).Error)

	got, err := r.ListInStock(ctx, repo.ProductListFilter{Search: "pikachu promo"}, 0, 50)
	require.NoError(t, err)
	assert.NotContains(t, productIDs(got), nameMatch.ID)
}
