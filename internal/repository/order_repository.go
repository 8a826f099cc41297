package repository

import (
	"context"

	"marketplace/internal/domain/model"
)

// 注文一覧の絞り込み
type OrderListFilter struct {
	UserID   *int64
	VendorID *int64
	Status   *model.OrderStatus
	Limit    int
	Offset   int
}

type OrderRepository interface {
	// 注文番号が衝突したらErrDuplicate
	Create(ctx context.Context, order *model.Order) error

	FindByID(ctx context.Context, id int64) (model.Order, error)

	// 行ロック付き（Tx内で使う）
	FindByIDForUpdate(ctx context.Context, id int64) (model.Order, error)

	// vendor / items / product / variant 付き。ids の順で返す
	FindDetailByIDs(ctx context.Context, ids []int64) ([]model.Order, error)

	// 新しい順
	List(ctx context.Context, filter OrderListFilter) ([]model.Order, int64, error)

	UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) error
	UpdatePaymentStatus(ctx context.Context, id int64, status model.PaymentStatus) error
}
