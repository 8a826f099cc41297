package repository

import (
	"context"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if isNotFound(err) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (r *ProductGormRepository) FindVariantByID(ctx context.Context, id int64) (model.ProductVariant, error) {
	var v model.ProductVariant
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&v).Error
	if isNotFound(err) {
		return model.ProductVariant{}, repo.ErrNotFound
	}
	if err != nil {
		return model.ProductVariant{}, err
	}
	return v, nil
}
