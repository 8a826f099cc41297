package model

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	VendorID    int64     `gorm:"not null;index" json:"vendorId"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	BasePrice   int64     `gorm:"not null" json:"basePrice"`
	SalePrice   *int64    `json:"salePrice"`
	Stock       int64     `gorm:"not null;default:0" json:"stock"`
	Images      []string  `gorm:"type:jsonb;serializer:json" json:"images"`
	IsActive    bool      `gorm:"not null;default:false" json:"isActive"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime" json:"updatedAt"`

	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// サイズ・色などのバリエーション。在庫はバリエーション単位で持つ
type ProductVariant struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID int64     `gorm:"not null;index" json:"productId"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Price     *int64    `json:"price"`
	Stock     int64     `gorm:"not null;default:0" json:"stock"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}
