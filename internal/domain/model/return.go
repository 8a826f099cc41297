package model

import "time"

type ReturnType string

const (
	ReturnTypeReturn   ReturnType = "return"
	ReturnTypeExchange ReturnType = "exchange"
)

func (t ReturnType) Valid() bool {
	return t == ReturnTypeReturn || t == ReturnTypeExchange
}

type ReturnStatus string

const (
	ReturnStatusPending         ReturnStatus = "pending"
	ReturnStatusApproved        ReturnStatus = "approved"
	ReturnStatusRejected        ReturnStatus = "rejected"
	ReturnStatusRefundConfirmed ReturnStatus = "refund_confirmed"
	ReturnStatusShipped         ReturnStatus = "shipped"
	ReturnStatusReceived        ReturnStatus = "received"
	ReturnStatusRestocked       ReturnStatus = "restocked"
	ReturnStatusCompleted       ReturnStatus = "completed"
	ReturnStatusCancelled       ReturnStatus = "cancelled"
)

func (s ReturnStatus) Valid() bool {
	switch s {
	case ReturnStatusPending, ReturnStatusApproved, ReturnStatusRejected, ReturnStatusRefundConfirmed,
		ReturnStatusShipped, ReturnStatusReceived, ReturnStatusRestocked, ReturnStatusCompleted,
		ReturnStatusCancelled:
		return true
	}
	return false
}

// rejected / completed / cancelled 以外は進行中
func (s ReturnStatus) Active() bool {
	return s != ReturnStatusRejected && s != ReturnStatusCompleted && s != ReturnStatusCancelled
}

// 返品・交換の申請（1明細につき1件）
type Return struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID     int64  `gorm:"not null;index" json:"orderId"`
	OrderItemID int64  `gorm:"not null;index" json:"orderItemId"`
	UserID      int64  `gorm:"not null;index" json:"userId"`
	ProductID   int64  `gorm:"not null;index" json:"productId"`
	VariantID   *int64 `json:"variantId"`
	VendorID    int64  `gorm:"not null;index" json:"vendorId"`

	ReturnType  ReturnType `gorm:"type:varchar(20);not null" json:"returnType"`
	Reason      string     `gorm:"type:varchar(255);not null" json:"reason"`
	Description string     `gorm:"type:text" json:"description"`
	Images      []string   `gorm:"type:jsonb;serializer:json" json:"images"`

	Quantity     int64        `gorm:"not null" json:"quantity"`
	RefundAmount int64        `gorm:"not null;default:0" json:"refundAmount"`
	Status       ReturnStatus `gorm:"type:varchar(20);not null;index" json:"status"`

	SellerNotes    *string `gorm:"type:text" json:"sellerNotes"`
	TrackingNumber *string `gorm:"type:varchar(100)" json:"trackingNumber"`
	TrackingURL    *string `gorm:"type:text" json:"trackingUrl"`

	RequestedAt time.Time  `gorm:"not null;index" json:"requestedAt"`
	ApprovedAt  *time.Time `json:"approvedAt"`
	ShippedAt   *time.Time `json:"shippedAt"`
	CompletedAt *time.Time `json:"completedAt"`
	UpdatedAt   time.Time  `gorm:"not null;autoUpdateTime" json:"updatedAt"`

	Product *Product `gorm:"foreignKey:ProductID" json:"-"`
}
