package validator

import (
	"fmt"
	"strings"

	"marketplace/internal/usecase"
)

const maxReturnImages = 10

type returnValidator struct{}

func NewReturnValidator() usecase.ReturnValidator {
	return &returnValidator{}
}

// 返品申請
func (v *returnValidator) ValidateCreateReturn(in usecase.CreateReturnInput) error {
	if in.UserID <= 0 {
		return invalid("userId", "is required")
	}
	if in.OrderItemID <= 0 {
		return invalid("orderItemId", "is required")
	}
	if !in.ReturnType.Valid() {
		return invalid("returnType", "must be return or exchange")
	}
	if strings.TrimSpace(in.Reason) == "" {
		return invalid("reason", "is required")
	}
	if in.Quantity <= 0 {
		return invalid("quantity", "must be >= 1")
	}
	if len(in.Images) > maxReturnImages {
		return invalid("images", fmt.Sprintf("must have at most %d entries", maxReturnImages))
	}
	for _, img := range in.Images {
		if strings.TrimSpace(img) == "" {
			return invalid("images", "must not contain blank urls")
		}
	}
	return nil
}

// セラー操作。actionなしならメモか追跡情報のどれかが必要
func (v *returnValidator) ValidateReturnAction(in usecase.ReturnActionInput) error {
	if in.ReturnID <= 0 {
		return invalid("returnId", "is required")
	}
	if in.VendorID != nil && *in.VendorID <= 0 {
		return invalid("vendorId", "is invalid")
	}
	if in.Action == "" {
		if in.SellerNotes == nil && in.TrackingNumber == nil && in.TrackingURL == nil {
			return invalid("action", "is required")
		}
		return nil
	}
	if !in.Action.Valid() {
		return invalid("action", "must be one of approve, reject, mark_shipped, mark_received, mark_restocked, confirm_refund, mark_completed")
	}
	return nil
}
