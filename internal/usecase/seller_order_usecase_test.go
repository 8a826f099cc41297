package usecase_test

import (
	"context"
	"testing"

	"marketplace/internal/domain/model"
	"marketplace/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPendingOrder(e *env, vendorID int64, number string) model.Order {
	o, _ := e.store.AddOrder(model.Order{
		OrderNumber:   number,
		UserID:        5,
		VendorID:      vendorID,
		Status:        model.OrderStatusPending,
		PaymentMethod: model.PaymentMethodCOD,
		PaymentStatus: model.PaymentStatusPending,
	}, []model.OrderItem{{ProductID: 10, Quantity: 1, Price: 1000}})
	return o
}

func TestSellerOrder_FulfillmentMovesForward(t *testing.T) {
	e := newEnv(t)
	e.store.AddVendor(model.Vendor{ID: 1, Name: "Shop One"})
	e.store.AddProduct(model.Product{ID: 10, VendorID: 1, Name: "A", BasePrice: 1000, Stock: 1})
	o := seedPendingOrder(e, 1, "ORD-S1")
	actor := int64(77)

	for _, next := range []string{"processing", "shipped", "delivered"} {
		got, err := e.seller.UpdateFulfillment(context.Background(), usecase.UpdateFulfillmentInput{
			OrderID: o.ID, VendorID: 1, Status: next, ActorUserID: &actor,
		})
		require.NoError(t, err, next)
		assert.Equal(t, model.OrderStatus(next), got.Status)
	}

	logs := e.store.AuditLogs()
	require.Len(t, logs, 3)
	assert.Equal(t, model.AuditActionUpdateOrderStatus, logs[0].Action)
	require.NotNil(t, logs[0].ActorUserID)
	assert.Equal(t, actor, *logs[0].ActorUserID)
}

func TestSellerOrder_RejectsSkipsAndBackwards(t *testing.T) {
	e := newEnv(t)
	e.store.AddVendor(model.Vendor{ID: 1, Name: "Shop One"})
	e.store.AddProduct(model.Product{ID: 10, VendorID: 1, Name: "A", BasePrice: 1000, Stock: 1})
	o := seedPendingOrder(e, 1, "ORD-S2")

	_, err := e.seller.UpdateFulfillment(context.Background(), usecase.UpdateFulfillmentInput{OrderID: o.ID, VendorID: 1, Status: "shipped"})
	assertErrContains(t, err, "cannot change order status from pending to shipped")

	_, err = e.seller.UpdateFulfillment(context.Background(), usecase.UpdateFulfillmentInput{OrderID: o.ID, VendorID: 1, Status: "cancelled"})
	assertErrContains(t, err, "cannot change order status from pending to cancelled")

	_, err = e.seller.UpdateFulfillment(context.Background(), usecase.UpdateFulfillmentInput{OrderID: o.ID, VendorID: 2, Status: "processing"})
	assertErrContains(t, err, "order not found")

	_, err = e.seller.UpdateFulfillment(context.Background(), usecase.UpdateFulfillmentInput{OrderID: o.ID, VendorID: 1, Status: "lost"})
	assertErrContains(t, err, "invalid status")

	got, _ := e.store.Order(o.ID)
	assert.Equal(t, model.OrderStatusPending, got.Status)
	assert.Empty(t, e.store.AuditLogs())
}

func TestSellerOrder_ListScopedToVendor(t *testing.T) {
	e := newEnv(t)
	e.store.AddVendor(model.Vendor{ID: 1, Name: "Shop One"})
	e.store.AddVendor(model.Vendor{ID: 2, Name: "Shop Two"})
	e.store.AddProduct(model.Product{ID: 10, VendorID: 1, Name: "A", BasePrice: 1000, Stock: 1})
	seedPendingOrder(e, 1, "ORD-A")
	seedPendingOrder(e, 1, "ORD-B")
	seedPendingOrder(e, 2, "ORD-C")

	out, err := e.seller.List(context.Background(), usecase.ListVendorOrdersInput{VendorID: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, out.Data, 1)
	assert.Equal(t, int64(2), out.Pagination.Total)
	assert.Equal(t, 1, out.Pagination.Limit)
	assert.Equal(t, int64(1), out.Data[0].VendorID)

	_, err = e.seller.List(context.Background(), usecase.ListVendorOrdersInput{})
	assertErrContains(t, err, "vendorId is required")
}
