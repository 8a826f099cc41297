package usecase_test

import (
	"context"
	"encoding/json"
	"testing"

	"marketplace/internal/domain/model"
	"marketplace/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetStock_ProductWritesHistoryAndAudit(t *testing.T) {
	e := newEnv(t)
	e.store.AddVendor(model.Vendor{ID: 1, Name: "Shop One"})
	e.store.AddProduct(model.Product{ID: 10, VendorID: 1, Name: "A", BasePrice: 1000, Stock: 7})

	change, err := e.stock.SetStock(context.Background(), usecase.SetStockInput{
		AdminUserID: 1, ProductID: 10, Stock: 3, Reason: " stocktake ",
	})
	require.NoError(t, err)
	assert.Equal(t, usecase.StockChange{ProductID: 10, Before: 7, After: 3}, change)

	p, _ := e.store.Product(10)
	assert.Equal(t, int64(3), p.Stock)

	adjs := e.store.Adjustments()
	require.Len(t, adjs, 1)
	assert.Equal(t, int64(-4), adjs[0].Delta)
	assert.Equal(t, model.InventoryReasonAdmin, adjs[0].Reason)
	assert.Equal(t, "stocktake", adjs[0].Note)

	logs := e.store.AuditLogs()
	require.Len(t, logs, 1)
	assert.Equal(t, model.AuditActionUpdateStock, logs[0].Action)
	assert.Equal(t, model.AuditResourceProduct, logs[0].ResourceType)
	var before map[string]any
	require.NoError(t, json.Unmarshal([]byte(logs[0].BeforeJSON), &before))
	assert.Equal(t, float64(7), before["stock"])
}

func TestSetStock_Variant(t *testing.T) {
	e := newEnv(t)
	e.store.AddVendor(model.Vendor{ID: 1, Name: "Shop One"})
	e.store.AddProduct(model.Product{ID: 10, VendorID: 1, Name: "A", BasePrice: 1000, Stock: 7})
	e.store.AddProduct(model.Product{ID: 11, VendorID: 1, Name: "B", BasePrice: 1000, Stock: 1})
	v := e.store.AddVariant(model.ProductVariant{ProductID: 10, Name: "L", Stock: 2})

	_, err := e.stock.SetStock(context.Background(), usecase.SetStockInput{AdminUserID: 1, ProductID: 10, VariantID: &v.ID, Stock: 9, Reason: "restock"})
	require.NoError(t, err)

	gotV, _ := e.store.Variant(v.ID)
	gotP, _ := e.store.Product(10)
	assert.Equal(t, int64(9), gotV.Stock)
	assert.Equal(t, int64(7), gotP.Stock)
	assert.Equal(t, model.AuditResourceVariant, e.store.AuditLogs()[0].ResourceType)

	_, err = e.stock.SetStock(context.Background(), usecase.SetStockInput{AdminUserID: 1, ProductID: 11, VariantID: &v.ID, Stock: 1, Reason: "x"})
	assertErrContains(t, err, "does not belong to product 11")
}

func TestSetStock_Validation(t *testing.T) {
	e := newEnv(t)
	tests := []struct {
		name string
		in   usecase.SetStockInput
		want string
	}{
		{"no admin", usecase.SetStockInput{ProductID: 1, Stock: 1, Reason: "x"}, "admin user is required"},
		{"negative", usecase.SetStockInput{AdminUserID: 1, ProductID: 1, Stock: -1, Reason: "x"}, "stock must be >= 0"},
		{"blank reason", usecase.SetStockInput{AdminUserID: 1, ProductID: 1, Stock: 1, Reason: "  "}, "reason required"},
		{"missing product", usecase.SetStockInput{AdminUserID: 1, ProductID: 404, Stock: 1, Reason: "x"}, "product not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.stock.SetStock(context.Background(), tt.in)
			assertErrContains(t, err, tt.want)
		})
	}
}

func TestAuditLogList_Filters(t *testing.T) {
	e := newEnv(t)
	e.store.AddVendor(model.Vendor{ID: 1, Name: "Shop One"})
	e.store.AddProduct(model.Product{ID: 10, VendorID: 1, Name: "A", BasePrice: 1000, Stock: 7})
	e.store.AddProduct(model.Product{ID: 11, VendorID: 1, Name: "B", BasePrice: 1000, Stock: 7})
	for _, s := range []int64{6, 5, 4} {
		_, err := e.stock.SetStock(context.Background(), usecase.SetStockInput{AdminUserID: 1, ProductID: 10, Stock: s, Reason: "count"})
		require.NoError(t, err)
	}
	_, err := e.stock.SetStock(context.Background(), usecase.SetStockInput{AdminUserID: 1, ProductID: 11, Stock: 1, Reason: "count"})
	require.NoError(t, err)

	out, err := e.audits.List(context.Background(), usecase.ListAuditLogsInput{ResourceType: "product", ResourceID: 10, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), out.Pagination.Total)
	require.Len(t, out.Data, 2)
	//新しい順
	assert.Greater(t, out.Data[0].ID, out.Data[1].ID)

	out, err = e.audits.List(context.Background(), usecase.ListAuditLogsInput{Action: "UPDATE_ORDER_STATUS"})
	require.NoError(t, err)
	assert.Empty(t, out.Data)
	assert.NotNil(t, out.Data)

	_, err = e.audits.List(context.Background(), usecase.ListAuditLogsInput{Limit: 500})
	assertErrContains(t, err, "limit must be between 1 and 100")
}
