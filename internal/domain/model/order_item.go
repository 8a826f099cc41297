package model

import "time"

// 注文明細
// VendorIDは親注文のコピー、VariantNameは購入時点の名前
type OrderItem struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID     int64     `gorm:"not null;index" json:"orderId"`
	ProductID   int64     `gorm:"not null;index" json:"productId"`
	VendorID    int64     `gorm:"not null;index" json:"vendorId"`
	VariantID   *int64    `gorm:"index" json:"variantId"`
	VariantName *string   `gorm:"type:varchar(255)" json:"variantName"`
	Quantity    int64     `gorm:"not null" json:"quantity"`
	Price       int64     `gorm:"not null" json:"price"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"createdAt"`

	Product *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Variant *ProductVariant `gorm:"foreignKey:VariantID" json:"variant,omitempty"`
}
