package repository_test

import (
	"context"
	"os"
	"testing"

	"marketplace/internal/domain/model"
	"marketplace/internal/infra/db"
	infraRepo "marketplace/internal/infra/repository"
	repo "marketplace/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TEST_DATABASE_DSN があるときだけ実DBで回す
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN is not set")
	}
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	require.NoError(t, gdb.Exec(`TRUNCATE audit_logs, inventory_adjustments, returns, voucher_usages,
		order_items, orders, cart_items, vouchers, product_variants, products, vendors RESTART IDENTITY CASCADE`).Error)
	return gdb
}

func seedProduct(t *testing.T, gdb *gorm.DB, stock int64) (model.Vendor, model.Product) {
	t.Helper()
	v := model.Vendor{Name: "Shop"}
	require.NoError(t, gdb.Create(&v).Error)
	p := model.Product{VendorID: v.ID, Name: "Item", BasePrice: 1000, Stock: stock, Images: []string{}, IsActive: true}
	require.NoError(t, gdb.Create(&p).Error)
	return v, p
}

func TestInventoryGorm_DecreaseFloorsAtZero(t *testing.T) {
	gdb := openTestDB(t)
	_, p := seedProduct(t, gdb, 2)
	inv := infraRepo.NewInventoryGormRepository(gdb)
	ctx := context.Background()

	require.NoError(t, inv.Decrease(ctx, repo.StockRef{ProductID: p.ID}, 5))

	var got model.Product
	require.NoError(t, gdb.First(&got, p.ID).Error)
	assert.Equal(t, int64(0), got.Stock)

	ok, err := inv.DecreaseIfEnough(ctx, repo.StockRef{ProductID: p.ID}, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.ErrorIs(t, inv.Decrease(ctx, repo.StockRef{ProductID: p.ID + 1000}, 1), repo.ErrNotFound)
}

func TestVoucherGorm_IncrementUsageRespectsLimit(t *testing.T) {
	gdb := openTestDB(t)
	limit := int64(1)
	v := model.Voucher{Code: "ONCE", DiscountType: model.DiscountTypeFixed, DiscountValue: 1000, TotalUsageLimit: &limit}
	require.NoError(t, gdb.Create(&v).Error)
	vouchers := infraRepo.NewVoucherGormRepository(gdb)

	ok, err := vouchers.IncrementUsage(context.Background(), v.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = vouchers.IncrementUsage(context.Background(), v.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

// 注文番号の重複はtxを壊さずErrDuplicateになる
func TestOrderGorm_DuplicateNumberKeepsTxUsable(t *testing.T) {
	gdb := openTestDB(t)
	vendor, p := seedProduct(t, gdb, 5)
	tm := infraRepo.NewTxManagerGorm(gdb)
	ctx := context.Background()

	newOrder := func(number string) *model.Order {
		return &model.Order{
			OrderNumber: number, UserID: 1, VendorID: vendor.ID, Status: model.OrderStatusPending,
			PaymentMethod: model.PaymentMethodCOD, PaymentStatus: model.PaymentStatusPending,
			ShippingMethod: model.ShippingMethodStandard, ShippingAddress: model.ShippingAddress{FullName: "A"},
		}
	}

	err := tm.WithinTx(ctx, func(r repo.TxRepos) error {
		first := newOrder("ORD-DUP")
		if err := r.Orders().Create(ctx, first); err != nil {
			return err
		}
		assert.ErrorIs(t, r.Orders().Create(ctx, newOrder("ORD-DUP")), repo.ErrDuplicate)

		second := newOrder("ORD-OK")
		if err := r.Orders().Create(ctx, second); err != nil {
			return err
		}
		return r.OrderItems().CreateBulk(ctx, []model.OrderItem{{OrderID: second.ID, ProductID: p.ID, VendorID: vendor.ID, Quantity: 1, Price: 1000}})
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, gdb.Model(&model.Order{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestOrderItemGorm_UnknownProductIsInvalidReference(t *testing.T) {
	gdb := openTestDB(t)
	vendor, _ := seedProduct(t, gdb, 5)
	o := model.Order{
		OrderNumber: "ORD-FK", UserID: 1, VendorID: vendor.ID, Status: model.OrderStatusPending,
		PaymentMethod: model.PaymentMethodCOD, PaymentStatus: model.PaymentStatusPending,
		ShippingMethod: model.ShippingMethodStandard,
	}
	require.NoError(t, infraRepo.NewOrderGormRepository(gdb).Create(context.Background(), &o))

	err := infraRepo.NewOrderItemGormRepository(gdb).CreateBulk(context.Background(), []model.OrderItem{
		{OrderID: o.ID, ProductID: 99999, VendorID: vendor.ID, Quantity: 1, Price: 1},
	})
	assert.ErrorIs(t, err, repo.ErrInvalidReference)
}
