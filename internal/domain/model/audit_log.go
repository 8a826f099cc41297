package model

import "time"

type AuditAction string

const (
	//在庫を更新した操作。
	AuditActionUpdateStock AuditAction = "UPDATE_STOCK"
	//注文ステータスを更新した操作。
	AuditActionUpdateOrderStatus AuditAction = "UPDATE_ORDER_STATUS"
	//返品に対するセラー操作。
	AuditActionReturnAction AuditAction = "RETURN_ACTION"
	//返品申請・取消（顧客）。
	AuditActionRequestReturn AuditAction = "REQUEST_RETURN"
	AuditActionCancelReturn  AuditAction = "CANCEL_RETURN"
)

type AuditResourceType string

const (
	AuditResourceProduct AuditResourceType = "product"
	AuditResourceVariant AuditResourceType = "variant"
	AuditResourceOrder   AuditResourceType = "order"
	AuditResourceReturn  AuditResourceType = "return"
)

// 「誰が」「何を」「どの対象に」「どう変えたか」を残す。
// ActorUserIDは認証のないエンドポイントではnil
type AuditLog struct {
	ID           int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	ActorUserID  *int64            `gorm:"index" json:"actorUserId"`
	Action       AuditAction       `gorm:"type:varchar(50);not null;index" json:"action"`
	ResourceType AuditResourceType `gorm:"type:varchar(50);not null;index" json:"resourceType"`
	ResourceID   int64             `gorm:"not null;index" json:"resourceId"`

	//JSON文字列で保存する。
	BeforeJSON string `gorm:"type:text" json:"beforeJson"`
	AfterJSON  string `gorm:"type:text" json:"afterJson"`

	CreatedAt time.Time `gorm:"not null;index" json:"createdAt"`
}
