package repository

import (
	"context"

	"marketplace/internal/domain/model"
)

type VoucherRepository interface {
	FindByID(ctx context.Context, id int64) (model.Voucher, error)

	// 上限に達していなければ usage_count を1増やす（1文で更新）
	IncrementUsage(ctx context.Context, id int64) (bool, error)

	CreateUsage(ctx context.Context, usage model.VoucherUsage) error
}
