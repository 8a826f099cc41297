package model

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusReturned   OrderStatus = "returned"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered,
		OrderStatusCompleted, OrderStatusCancelled, OrderStatusReturned:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentMethodWallet PaymentMethod = "wallet"
	PaymentMethodBank   PaymentMethod = "bank"
	PaymentMethodCOD    PaymentMethod = "cod"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodWallet || m == PaymentMethodBank || m == PaymentMethodCOD
}

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

type ShippingMethod string

const (
	ShippingMethodStandard ShippingMethod = "standard"
	ShippingMethodExpress  ShippingMethod = "express"
)

func (m ShippingMethod) Valid() bool {
	return m == ShippingMethodStandard || m == ShippingMethodExpress
}

// 1注文 = 1ベンダー
// 作成後はステータス系のカラム以外を更新しない
type Order struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderNumber string `gorm:"type:varchar(64);not null;uniqueIndex" json:"orderNumber"`
	UserID      int64  `gorm:"not null;index" json:"userId"`
	VendorID    int64  `gorm:"not null;index" json:"vendorId"`

	Status OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`

	//金額はすべて最小通貨単位（VND）
	Subtotal        int64 `gorm:"not null;default:0" json:"subtotal"`
	DiscountAmount  int64 `gorm:"not null;default:0" json:"discountAmount"`
	VoucherDiscount int64 `gorm:"not null;default:0" json:"voucherDiscount"`
	ShippingCost    int64 `gorm:"not null" json:"shippingCost"`
	Total           int64 `gorm:"not null" json:"total"`

	PaymentMethod  PaymentMethod  `gorm:"type:varchar(20);not null" json:"paymentMethod"`
	PaymentStatus  PaymentStatus  `gorm:"type:varchar(20);not null;index" json:"paymentStatus"`
	ShippingMethod ShippingMethod `gorm:"type:varchar(20);not null" json:"shippingMethod"`

	ShippingAddress ShippingAddress `gorm:"type:jsonb;serializer:json;not null" json:"shippingAddress"`

	Date              time.Time  `gorm:"not null;index" json:"date"`
	EstimatedDelivery *time.Time `json:"estimatedDelivery"`
	UpdatedAt         time.Time  `gorm:"not null;autoUpdateTime" json:"updatedAt"`

	Vendor *Vendor      `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`
	Items  []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}
