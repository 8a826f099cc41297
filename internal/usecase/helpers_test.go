package usecase_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"marketplace/internal/domain/model"
	"marketplace/internal/infra/memory"
	"marketplace/internal/usecase"
	"marketplace/internal/validator"
)

// 順番に決まった番号を返す（衝突のテスト用）
type scriptedNumbers struct {
	next []string
	i    int
}

func (s *scriptedNumbers) Next(time.Time) string {
	n := s.next[s.i%len(s.next)]
	s.i++
	return n
}

type env struct {
	store    *memory.Store
	checkout *usecase.CheckoutUsecase
	orders   *usecase.OrderUsecase
	seller   *usecase.SellerOrderUsecase
	returns  *usecase.ReturnUsecase
	stock    *usecase.InventoryUsecase
	audits   *usecase.AuditLogUsecase
}

type envOption func(*envConfig)

type envConfig struct {
	numbers        usecase.OrderNumberGenerator
	rejectOversell bool
}

func withNumbers(n usecase.OrderNumberGenerator) envOption {
	return func(c *envConfig) { c.numbers = n }
}

func withRejectOversell() envOption {
	return func(c *envConfig) { c.rejectOversell = true }
}

func newEnv(t *testing.T, opts ...envOption) *env {
	t.Helper()

	cfg := envConfig{numbers: usecase.RandomOrderNumbers{}}
	for _, o := range opts {
		o(&cfg)
	}

	store := memory.NewStore()
	store.SetClock(func() time.Time { return testNow })
	clock := fixedClock{testNow}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &env{
		store:    store,
		checkout: usecase.NewCheckoutUsecase(store, validator.NewCheckoutValidator(), cfg.numbers, clock, logger, cfg.rejectOversell),
		orders:   usecase.NewOrderUsecase(store, clock),
		seller:   usecase.NewSellerOrderUsecase(store, clock),
		returns:  usecase.NewReturnUsecase(store, validator.NewReturnValidator(), clock),
		stock:    usecase.NewInventoryUsecase(store, clock),
		audits:   usecase.NewAuditLogUsecase(store),
	}
}

var testAddress = model.ShippingAddress{
	FullName: "Tran Thi B",
	Phone:    "0912345678",
	Address:  "12 Nguyen Hue",
	District: "District 1",
	City:     "Ho Chi Minh City",
}

// 配達済みの注文を1件作る
func (e *env) deliveredOrder(userID int64, method model.PaymentMethod, productID int64, qty int64, price int64) (model.Order, model.OrderItem) {
	status := model.PaymentStatusPending
	if method == model.PaymentMethodWallet || method == model.PaymentMethodBank {
		status = model.PaymentStatusPaid
	}
	p, _ := e.store.Product(productID)
	o, items := e.store.AddOrder(model.Order{
		OrderNumber:     "ORD-DELIVERED-" + string(method),
		UserID:          userID,
		VendorID:        p.VendorID,
		Status:          model.OrderStatusDelivered,
		Total:           price*qty + usecase.StandardShippingFee,
		ShippingCost:    usecase.StandardShippingFee,
		PaymentMethod:   method,
		PaymentStatus:   status,
		ShippingMethod:  model.ShippingMethodStandard,
		ShippingAddress: testAddress,
	}, []model.OrderItem{{ProductID: productID, Quantity: qty, Price: price}})
	return o, items[0]
}
