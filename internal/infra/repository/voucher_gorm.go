package repository

import (
	"context"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"gorm.io/gorm"
)

type VoucherGormRepository struct {
	db *gorm.DB
}

func NewVoucherGormRepository(db *gorm.DB) *VoucherGormRepository {
	return &VoucherGormRepository{db: db}
}

func (r *VoucherGormRepository) FindByID(ctx context.Context, id int64) (model.Voucher, error) {
	var v model.Voucher
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&v).Error
	if isNotFound(err) {
		return model.Voucher{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Voucher{}, err
	}
	return v, nil
}

// 上限なし or 上限未満のときだけ +1
func (r *VoucherGormRepository) IncrementUsage(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Voucher{}).
		Where("id = ? AND (total_usage_limit IS NULL OR usage_count < total_usage_limit)", id).
		Update("usage_count", gorm.Expr("usage_count + 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *VoucherGormRepository) CreateUsage(ctx context.Context, usage model.VoucherUsage) error {
	if err := r.db.WithContext(ctx).Create(&usage).Error; err != nil {
		return translateError(err)
	}
	return nil
}
