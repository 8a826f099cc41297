package repository

import (
	"context"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InventoryGormRepository struct {
	db *gorm.DB
}

func NewInventoryGormRepository(db *gorm.DB) *InventoryGormRepository {
	return &InventoryGormRepository{db: db}
}

// 対象テーブル（products / product_variants）を選ぶ
func (r *InventoryGormRepository) target(ctx context.Context, ref repo.StockRef) *gorm.DB {
	if ref.VariantID != nil {
		return r.db.WithContext(ctx).Model(&model.ProductVariant{}).Where("id = ?", *ref.VariantID)
	}
	return r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", ref.ProductID)
}

// 0で止める減算。読んでから書くのではなく1文で更新する
func (r *InventoryGormRepository) Decrease(ctx context.Context, ref repo.StockRef, qty int64) error {
	res := r.target(ctx, ref).Update("stock", gorm.Expr("GREATEST(stock - ?, 0)", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 在庫が足りるときだけ減らす
func (r *InventoryGormRepository) DecreaseIfEnough(ctx context.Context, ref repo.StockRef, qty int64) (bool, error) {
	res := r.target(ctx, ref).
		Where("stock >= ?", qty).
		Update("stock", gorm.Expr("stock - ?", qty))

	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	return true, nil
}

// 在庫戻し（返品）
func (r *InventoryGormRepository) Increase(ctx context.Context, ref repo.StockRef, qty int64) error {
	res := r.target(ctx, ref).Update("stock", gorm.Expr("stock + ?", qty))

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 在庫の現在値を設定（変更前の値は行ロックして読む）
func (r *InventoryGormRepository) Set(ctx context.Context, ref repo.StockRef, newStock int64) (int64, error) {
	var row struct{ Stock int64 }
	err := r.target(ctx, ref).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("stock").
		Take(&row).Error
	if isNotFound(err) {
		return 0, repo.ErrNotFound
	}
	if err != nil {
		return 0, err
	}

	if err := r.target(ctx, ref).Update("stock", newStock).Error; err != nil {
		return 0, err
	}
	return row.Stock, nil
}

// 調整履歴作成
func (r *InventoryGormRepository) CreateAdjustment(ctx context.Context, adj model.InventoryAdjustment) error {
	if err := r.db.WithContext(ctx).Create(&adj).Error; err != nil {
		return translateError(err)
	}
	return nil
}
