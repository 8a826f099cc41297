package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// TxManager / TxRepos mocks
// =====================

// WithinTx の中で渡す repos を固定して unit テストを回す
type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	m.Called(ctx)
	return fn(m.Repos)
}

type TxReposMock struct {
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	products   repo.ProductRepository
	inventory  repo.InventoryRepository
	vouchers   repo.VoucherRepository
	cartItems  repo.CartItemRepository
	returns    repo.ReturnRepository
	auditLogs  repo.AuditLogRepository
}

func (r *TxReposMock) Orders() repo.OrderRepository         { return r.orders }
func (r *TxReposMock) OrderItems() repo.OrderItemRepository { return r.orderItems }
func (r *TxReposMock) Products() repo.ProductRepository     { return r.products }
func (r *TxReposMock) Inventory() repo.InventoryRepository  { return r.inventory }
func (r *TxReposMock) Vouchers() repo.VoucherRepository     { return r.vouchers }
func (r *TxReposMock) CartItems() repo.CartItemRepository   { return r.cartItems }
func (r *TxReposMock) Returns() repo.ReturnRepository       { return r.returns }
func (r *TxReposMock) AuditLogs() repo.AuditLogRepository   { return r.auditLogs }

// =====================
// Repository mocks
// =====================

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) Create(ctx context.Context, order *model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *OrderRepoMock) FindByID(ctx context.Context, id int64) (model.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) FindByIDForUpdate(ctx context.Context, id int64) (model.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) FindDetailByIDs(ctx context.Context, ids []int64) ([]model.Order, error) {
	args := m.Called(ctx, ids)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderRepoMock) List(ctx context.Context, f repo.OrderListFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, f)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *OrderRepoMock) UpdatePaymentStatus(ctx context.Context, id int64, status model.PaymentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type ReturnRepoMock struct{ mock.Mock }

func (m *ReturnRepoMock) Create(ctx context.Context, ret *model.Return) error {
	panic("not used in mock tests")
}

func (m *ReturnRepoMock) FindByID(ctx context.Context, id int64) (model.Return, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(model.Return)
	return r, args.Error(1)
}

func (m *ReturnRepoMock) FindByIDForUpdate(ctx context.Context, id int64) (model.Return, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(model.Return)
	return r, args.Error(1)
}

func (m *ReturnRepoMock) Update(ctx context.Context, ret model.Return) error {
	args := m.Called(ctx, ret)
	return args.Error(0)
}

func (m *ReturnRepoMock) List(ctx context.Context, f repo.ReturnListFilter) ([]model.Return, int64, error) {
	args := m.Called(ctx, f)
	rows, _ := args.Get(0).([]model.Return)
	return rows, args.Get(1).(int64), args.Error(2)
}

func (m *ReturnRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.Return, error) {
	args := m.Called(ctx, orderID)
	rows, _ := args.Get(0).([]model.Return)
	return rows, args.Error(1)
}

func (m *ReturnRepoMock) ListByOrderItemID(ctx context.Context, orderItemID int64) ([]model.Return, error) {
	panic("not used in mock tests")
}

type InventoryRepoMock struct{ mock.Mock }

func (m *InventoryRepoMock) Decrease(ctx context.Context, ref repo.StockRef, qty int64) error {
	args := m.Called(ctx, ref, qty)
	return args.Error(0)
}

func (m *InventoryRepoMock) DecreaseIfEnough(ctx context.Context, ref repo.StockRef, qty int64) (bool, error) {
	args := m.Called(ctx, ref, qty)
	return args.Bool(0), args.Error(1)
}

func (m *InventoryRepoMock) Increase(ctx context.Context, ref repo.StockRef, qty int64) error {
	args := m.Called(ctx, ref, qty)
	return args.Error(0)
}

func (m *InventoryRepoMock) Set(ctx context.Context, ref repo.StockRef, newStock int64) (int64, error) {
	panic("not used in mock tests")
}

func (m *InventoryRepoMock) CreateAdjustment(ctx context.Context, adj model.InventoryAdjustment) error {
	args := m.Called(ctx, adj)
	return args.Error(0)
}

type AuditRepoMock struct{ mock.Mock }

func (m *AuditRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *AuditRepoMock) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, int64, error) {
	panic("not used in mock tests")
}

// =====================
// Helpers
// =====================

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

var testNow = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func assertErrContains(t *testing.T, err error, wantSubstr string) {
	t.Helper()
	if assert.Error(t, err) {
		assert.True(t, strings.Contains(err.Error(), wantSubstr), "err=%q want contains %q", err.Error(), wantSubstr)
	}
}

func ptr[T any](v T) *T { return &v }
