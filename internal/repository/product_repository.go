package repository

import (
	"context"

	"marketplace/internal/domain/model"
)

// 商品の参照だけ（カタログ管理はこのサービスの外）
type ProductRepository interface {
	FindByID(ctx context.Context, id int64) (model.Product, error)
	FindVariantByID(ctx context.Context, id int64) (model.ProductVariant, error)
}
