package model

import "time"

type InventoryReason string

const (
	InventoryReasonCheckout InventoryReason = "checkout"
	InventoryReasonRestock  InventoryReason = "return_restock"
	InventoryReasonAdmin    InventoryReason = "admin_set"
)

//在庫変動の履歴
//VariantIDがあればバリエーション在庫、なければ商品在庫
type InventoryAdjustment struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID   int64           `gorm:"not null;index" json:"productId"`
	VariantID   *int64          `gorm:"index" json:"variantId"`
	ActorUserID *int64          `gorm:"index" json:"actorUserId"`
	Delta       int64           `gorm:"not null" json:"delta"`
	Reason      InventoryReason `gorm:"type:varchar(32);not null;index" json:"reason"`
	Reference   string          `gorm:"type:varchar(255)" json:"reference"`
	Note        string          `gorm:"type:varchar(255)" json:"note,omitempty"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime" json:"createdAt"`
}
