package repository

import (
	"context"

	"marketplace/internal/domain/model"
)

// 在庫の対象。VariantIDがあればバリエーション在庫
type StockRef struct {
	ProductID int64
	VariantID *int64
}

type InventoryRepository interface {
	// 在庫を減らす。0未満にはならない（1文で更新）
	Decrease(ctx context.Context, ref StockRef, qty int64) error

	// 在庫が足りるときだけ減算
	DecreaseIfEnough(ctx context.Context, ref StockRef, qty int64) (bool, error)

	// 在庫戻し（返品）
	Increase(ctx context.Context, ref StockRef, qty int64) error

	// 在庫の現在値を設定して、変更前の値を返す
	Set(ctx context.Context, ref StockRef, newStock int64) (int64, error)

	// 調整履歴作成
	CreateAdjustment(ctx context.Context, adjustment model.InventoryAdjustment) error
}
