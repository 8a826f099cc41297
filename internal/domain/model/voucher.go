package model

import "time"

type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

type Voucher struct {
	ID            int64        `gorm:"primaryKey;autoIncrement" json:"id"`
	VendorID      *int64       `gorm:"index" json:"vendorId"`
	Code          string       `gorm:"type:varchar(64);not null;uniqueIndex" json:"code"`
	DiscountType  DiscountType `gorm:"type:varchar(20);not null" json:"discountType"`
	DiscountValue int64        `gorm:"not null" json:"discountValue"`

	//percentageのときだけ使う上限
	MaxDiscount   *int64 `json:"maxDiscount"`
	MinOrderValue int64  `gorm:"not null;default:0" json:"minOrderValue"`

	//減らさない
	UsageCount int64 `gorm:"not null;default:0" json:"usageCount"`

	//nil = 無制限
	TotalUsageLimit *int64 `json:"totalUsageLimit"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}

// 利用1回につき1行
type VoucherUsage struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	VoucherID      int64     `gorm:"not null;index" json:"voucherId"`
	UserID         int64     `gorm:"not null;index" json:"userId"`
	OrderID        int64     `gorm:"not null;index" json:"orderId"`
	DiscountAmount int64     `gorm:"not null" json:"discountAmount"`
	CreatedAt      time.Time `gorm:"not null;autoCreateTime" json:"createdAt"`
}
