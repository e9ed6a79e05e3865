package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type SessionGormRepository struct {
	db *gorm.DB
}

func NewSessionGormRepository(db *gorm.DB) *SessionGormRepository {
	return &SessionGormRepository{db: db}
}

func (r *SessionGormRepository) Find(ctx context.Context, token string) (model.Session, error) {
	var s model.Session
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Session{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Session{}, err
	}
	return s, nil
}

func (r *SessionGormRepository) Create(ctx context.Context, s model.Session) error {
	return r.db.WithContext(ctx).Create(&s).Error
}

// カートJSONの上書き保存。後勝ち。
func (r *SessionGormRepository) SaveCart(ctx context.Context, token string, cartJSON string) error {
	res := r.db.WithContext(ctx).Model(&model.Session{}).
		Where("token = ?", token).
		Update("cart_json", cartJSON)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
