package repository

import (
	"context"

	"marketplace/internal/domain/model"
)

type ReturnListFilter struct {
	VendorID *int64
	UserID   *int64
	Status   *model.ReturnStatus
	Limit    int
	Offset   int
}

type ReturnRepository interface {
	Create(ctx context.Context, ret *model.Return) error
	FindByID(ctx context.Context, id int64) (model.Return, error)

	// 行ロック付き（Tx内で使う）
	FindByIDForUpdate(ctx context.Context, id int64) (model.Return, error)

	// ステータス・メモ・追跡番号・各タイムスタンプを保存
	Update(ctx context.Context, ret model.Return) error

	// product付き、新しい順
	List(ctx context.Context, filter ReturnListFilter) ([]model.Return, int64, error)

	ListByOrderID(ctx context.Context, orderID int64) ([]model.Return, error)
	ListByOrderItemID(ctx context.Context, orderItemID int64) ([]model.Return, error)
}
