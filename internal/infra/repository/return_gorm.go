package repository

import (
	"context"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReturnGormRepository struct {
	db *gorm.DB
}

func NewReturnGormRepository(db *gorm.DB) *ReturnGormRepository {
	return &ReturnGormRepository{db: db}
}

func (r *ReturnGormRepository) Create(ctx context.Context, ret *model.Return) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(ret).Error; err != nil {
		return translateError(err)
	}
	return nil
}

func (r *ReturnGormRepository) FindByID(ctx context.Context, id int64) (model.Return, error) {
	var ret model.Return
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&ret).Error
	if isNotFound(err) {
		return model.Return{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Return{}, err
	}
	return ret, nil
}

func (r *ReturnGormRepository) FindByIDForUpdate(ctx context.Context, id int64) (model.Return, error) {
	var ret model.Return
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&ret).Error
	if isNotFound(err) {
		return model.Return{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Return{}, err
	}
	return ret, nil
}

// 申請内容（数量・理由など）は更新しない
func (r *ReturnGormRepository) Update(ctx context.Context, ret model.Return) error {
	res := r.db.WithContext(ctx).Model(&model.Return{}).
		Where("id = ?", ret.ID).
		Updates(map[string]interface{}{
			"status":          ret.Status,
			"seller_notes":    ret.SellerNotes,
			"tracking_number": ret.TrackingNumber,
			"tracking_url":    ret.TrackingURL,
			"approved_at":     ret.ApprovedAt,
			"shipped_at":      ret.ShippedAt,
			"completed_at":    ret.CompletedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ReturnGormRepository) List(ctx context.Context, f repo.ReturnListFilter) ([]model.Return, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Return{})

	if f.VendorID != nil {
		q = q.Where("vendor_id = ?", *f.VendorID)
	}
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return []model.Return{}, 0, err
	}

	var items []model.Return
	err := q.Preload("Product").
		Order("requested_at desc").
		Order("id desc").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&items).Error
	if err != nil {
		return []model.Return{}, 0, err
	}
	return items, total, nil
}

func (r *ReturnGormRepository) ListByOrderID(ctx context.Context, orderID int64) ([]model.Return, error) {
	var items []model.Return
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Order("id asc").Find(&items).Error; err != nil {
		return []model.Return{}, err
	}
	return items, nil
}

func (r *ReturnGormRepository) ListByOrderItemID(ctx context.Context, orderItemID int64) ([]model.Return, error) {
	var items []model.Return
	if err := r.db.WithContext(ctx).Where("order_item_id = ?", orderItemID).Order("id asc").Find(&items).Error; err != nil {
		return []model.Return{}, err
	}
	return items, nil
}
