package repository

import (
	"context"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderItemGormRepository struct {
	db *gorm.DB
}

func NewOrderItemGormRepository(db *gorm.DB) *OrderItemGormRepository {
	return &OrderItemGormRepository{db: db}
}

func (r *OrderItemGormRepository) CreateBulk(ctx context.Context, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&items).Error; err != nil {
		return translateError(err)
	}
	return nil
}

func (r *OrderItemGormRepository) FindByID(ctx context.Context, id int64) (model.OrderItem, error) {
	var it model.OrderItem
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&it).Error
	if isNotFound(err) {
		return model.OrderItem{}, repo.ErrNotFound
	}
	if err != nil {
		return model.OrderItem{}, err
	}
	return it, nil
}

func (r *OrderItemGormRepository) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	var items []model.OrderItem
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Order("id asc").Find(&items).Error
	if err != nil {
		return []model.OrderItem{}, err
	}
	return items, nil
}
