package validator

import (
	"fmt"

	"marketplace/internal/usecase"
)

// 金額計算がint64に収まる上限（行数 × 数量 × 単価）
const (
	maxCartLines    = 100
	maxLineQuantity = 10_000
	maxUnitPrice    = 1_000_000_000_000
)

type checkoutValidator struct{}

// Usecaseは interface を依存注入
func NewCheckoutValidator() usecase.CheckoutValidator {
	return &checkoutValidator{}
}

// 状態を変える前に、リクエスト全体の形を検証する
func (v *checkoutValidator) ValidatePlaceOrders(in usecase.PlaceOrdersInput) error {
	if in.UserID <= 0 {
		return invalid("userId", "is required")
	}
	if len(in.Items) == 0 {
		return invalid("cartItems", "is required")
	}
	if len(in.Items) > maxCartLines {
		return invalid("cartItems", fmt.Sprintf("must have at most %d lines", maxCartLines))
	}
	if in.ShippingAddress.IsZero() {
		return invalid("shippingAddress", "is required")
	}
	if in.PaymentMethod == "" {
		return invalid("paymentMethod", "is required")
	}
	if !in.PaymentMethod.Valid() {
		return invalid("paymentMethod", "must be one of wallet, bank, cod")
	}
	if in.ShippingMethod != "" && !in.ShippingMethod.Valid() {
		return invalid("shippingMethod", "must be standard or express")
	}

	for i, it := range in.Items {
		field := fmt.Sprintf("cartItems[%d]", i)
		if it.VendorID <= 0 {
			return invalid(field+".vendorId", "is required")
		}
		if it.ProductID <= 0 {
			return invalid(field+".productId", "is required")
		}
		if it.VariantID != nil && *it.VariantID <= 0 {
			return invalid(field+".variantId", "is invalid")
		}
		if it.Quantity <= 0 {
			return invalid(field+".quantity", "must be >= 1")
		}
		if it.Quantity > maxLineQuantity {
			return invalid(field+".quantity", fmt.Sprintf("must be <= %d", maxLineQuantity))
		}
		if err := checkPrice(field+".price", &it.Price); err != nil {
			return err
		}
		if err := checkPrice(field+".basePrice", it.BasePrice); err != nil {
			return err
		}
		if err := checkPrice(field+".salePrice", it.SalePrice); err != nil {
			return err
		}
	}

	for vendorID, sel := range in.VendorVouchers {
		field := fmt.Sprintf("vendorVouchers[%d]", vendorID)
		if sel.VoucherID <= 0 {
			return invalid(field+".voucherId", "is required")
		}
		if sel.DiscountAmount < 0 {
			return invalid(field+".discountAmount", "must be >= 0")
		}
	}
	return nil
}

func checkPrice(field string, p *int64) error {
	if p == nil {
		return nil
	}
	if *p < 0 {
		return invalid(field, "must be >= 0")
	}
	if *p > maxUnitPrice {
		return invalid(field, fmt.Sprintf("must be <= %d", int64(maxUnitPrice)))
	}
	return nil
}
