package validator

import (
	"errors"
	"testing"

	"marketplace/internal/domain/model"
	"marketplace/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func validCheckout() usecase.PlaceOrdersInput {
	return usecase.PlaceOrdersInput{
		UserID: 1,
		Items: []usecase.CartLine{
			{ProductID: 10, VendorID: 1, Quantity: 1, Price: 1000},
		},
		ShippingAddress: model.ShippingAddress{FullName: "Nguyen Van A", Phone: "0900000000", Address: "1 Le Loi", City: "HCM"},
		PaymentMethod:   model.PaymentMethodCOD,
	}
}

func TestValidatePlaceOrders(t *testing.T) {
	v := NewCheckoutValidator()

	tests := []struct {
		name    string
		mutate  func(in *usecase.PlaceOrdersInput)
		wantErr string
	}{
		{name: "ok", mutate: func(in *usecase.PlaceOrdersInput) {}},
		{name: "missing user", mutate: func(in *usecase.PlaceOrdersInput) { in.UserID = 0 }, wantErr: "userId is required"},
		{name: "empty cart", mutate: func(in *usecase.PlaceOrdersInput) { in.Items = nil }, wantErr: "cartItems is required"},
		{name: "missing address", mutate: func(in *usecase.PlaceOrdersInput) { in.ShippingAddress = model.ShippingAddress{} }, wantErr: "shippingAddress is required"},
		{name: "missing payment", mutate: func(in *usecase.PlaceOrdersInput) { in.PaymentMethod = "" }, wantErr: "paymentMethod is required"},
		{name: "unknown payment", mutate: func(in *usecase.PlaceOrdersInput) { in.PaymentMethod = "card" }, wantErr: "paymentMethod must be"},
		{name: "unknown shipping", mutate: func(in *usecase.PlaceOrdersInput) { in.ShippingMethod = "drone" }, wantErr: "shippingMethod must be"},
		{name: "line without vendor", mutate: func(in *usecase.PlaceOrdersInput) { in.Items[0].VendorID = 0 }, wantErr: "cartItems[0].vendorId is required"},
		{name: "zero quantity", mutate: func(in *usecase.PlaceOrdersInput) { in.Items[0].Quantity = 0 }, wantErr: "cartItems[0].quantity"},
		{name: "huge quantity", mutate: func(in *usecase.PlaceOrdersInput) { in.Items[0].Quantity = 1 << 62 }, wantErr: "cartItems[0].quantity must be <= 10000"},
		{name: "quantity at limit", mutate: func(in *usecase.PlaceOrdersInput) { in.Items[0].Quantity = 10_000 }},
		{name: "huge price", mutate: func(in *usecase.PlaceOrdersInput) { in.Items[0].Price = 1 << 62 }, wantErr: "cartItems[0].price must be <="},
		{name: "huge sale price", mutate: func(in *usecase.PlaceOrdersInput) { in.Items[0].SalePrice = ptr(int64(1 << 62)) }, wantErr: "cartItems[0].salePrice must be <="},
		{name: "negative base price", mutate: func(in *usecase.PlaceOrdersInput) { in.Items[0].BasePrice = ptr(int64(-1)) }, wantErr: "cartItems[0].basePrice must be >= 0"},
		{name: "too many lines", mutate: func(in *usecase.PlaceOrdersInput) {
			line := in.Items[0]
			in.Items = make([]usecase.CartLine, 101)
			for i := range in.Items {
				in.Items[i] = line
			}
		}, wantErr: "cartItems must have at most 100 lines"},
		{name: "negative voucher amount", mutate: func(in *usecase.PlaceOrdersInput) {
			in.VendorVouchers = map[int64]usecase.VoucherSelection{1: {VoucherID: 3, DiscountAmount: -1}}
		}, wantErr: "discountAmount must be >= 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validCheckout()
			tt.mutate(&in)
			err := v.ValidatePlaceOrders(in)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.True(t, errors.Is(err, ErrInvalidInput))
			}
		})
	}
}

func TestValidateCreateReturn(t *testing.T) {
	v := NewReturnValidator()
	ok := usecase.CreateReturnInput{UserID: 1, OrderItemID: 2, ReturnType: model.ReturnTypeReturn, Reason: "broken", Quantity: 1}
	assert.NoError(t, v.ValidateCreateReturn(ok))

	bad := ok
	bad.ReturnType = "refund"
	assert.ErrorContains(t, v.ValidateCreateReturn(bad), "returnType")

	bad = ok
	bad.Reason = "   "
	assert.ErrorContains(t, v.ValidateCreateReturn(bad), "reason is required")

	bad = ok
	bad.Images = []string{"https://img/1.jpg", ""}
	assert.ErrorContains(t, v.ValidateCreateReturn(bad), "blank urls")
}

func TestValidateReturnAction(t *testing.T) {
	v := NewReturnValidator()

	assert.NoError(t, v.ValidateReturnAction(usecase.ReturnActionInput{ReturnID: 1, Action: usecase.ReturnActionApprove}))
	assert.NoError(t, v.ValidateReturnAction(usecase.ReturnActionInput{ReturnID: 1, SellerNotes: ptr("note")}))

	assert.ErrorContains(t, v.ValidateReturnAction(usecase.ReturnActionInput{ReturnID: 1}), "action is required")
	assert.ErrorContains(t, v.ValidateReturnAction(usecase.ReturnActionInput{ReturnID: 1, Action: "refund"}), "action must be one of")
	assert.ErrorContains(t, v.ValidateReturnAction(usecase.ReturnActionInput{Action: usecase.ReturnActionReject}), "returnId is required")
}
