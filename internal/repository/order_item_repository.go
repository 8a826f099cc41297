package repository

import (
	"context"

	"marketplace/internal/domain/model"
)

type OrderItemRepository interface {
	// IDは採番されてitemsに書き戻される
	CreateBulk(ctx context.Context, items []model.OrderItem) error
	FindByID(ctx context.Context, id int64) (model.OrderItem, error)
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
}
