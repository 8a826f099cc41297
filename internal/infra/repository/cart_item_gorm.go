package repository

import (
	"context"

	"marketplace/internal/domain/model"

	"gorm.io/gorm"
)

type CartItemGormRepository struct {
	db *gorm.DB
}

func NewCartItemGormRepository(db *gorm.DB) *CartItemGormRepository {
	return &CartItemGormRepository{db: db}
}

func (r *CartItemGormRepository) DeleteByUserID(ctx context.Context, userID int64) (int64, error) {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.CartItem{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
