// Package memory はrepositoryの全インターフェースをメモリ上で実装する。
// STORE_DRIVER=memory での起動とワークフローのテストで使う。
package memory

import (
	"context"
	"maps"
	"sort"
	"sync"
	"time"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

type state struct {
	seq map[string]int64

	vendors       map[int64]model.Vendor
	products      map[int64]model.Product
	variants      map[int64]model.ProductVariant
	vouchers      map[int64]model.Voucher
	voucherUsages []model.VoucherUsage
	cartItems     map[int64]model.CartItem
	orders        map[int64]model.Order
	orderItems    map[int64]model.OrderItem
	returns       map[int64]model.Return
	auditLogs     []model.AuditLog
	adjustments   []model.InventoryAdjustment
}

func newState() *state {
	return &state{
		seq:        map[string]int64{},
		vendors:    map[int64]model.Vendor{},
		products:   map[int64]model.Product{},
		variants:   map[int64]model.ProductVariant{},
		vouchers:   map[int64]model.Voucher{},
		cartItems:  map[int64]model.CartItem{},
		orders:     map[int64]model.Order{},
		orderItems: map[int64]model.OrderItem{},
		returns:    map[int64]model.Return{},
	}
}

// ロールバック用のコピー。値は差し替えで更新するので浅いコピーで足りる
func (s *state) clone() *state {
	c := &state{
		seq:           maps.Clone(s.seq),
		vendors:       maps.Clone(s.vendors),
		products:      maps.Clone(s.products),
		variants:      maps.Clone(s.variants),
		vouchers:      maps.Clone(s.vouchers),
		voucherUsages: append([]model.VoucherUsage(nil), s.voucherUsages...),
		cartItems:     maps.Clone(s.cartItems),
		orders:        maps.Clone(s.orders),
		orderItems:    maps.Clone(s.orderItems),
		returns:       maps.Clone(s.returns),
		auditLogs:     append([]model.AuditLog(nil), s.auditLogs...),
		adjustments:   append([]model.InventoryAdjustment(nil), s.adjustments...),
	}
	return c
}

func (s *state) nextID(table string) int64 {
	s.seq[table]++
	return s.seq[table]
}

// Store はプロセス内の単一DB。WithinTxは直列に実行される
type Store struct {
	mu   sync.Mutex
	data *state
	now  func() time.Time
}

func NewStore() *Store {
	return &Store{data: newState(), now: time.Now}
}

// テスト用に時計を差し替える
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	if err := fn(&txRepos{st: s.data, now: s.now}); err != nil {
		s.data = snapshot
		return err
	}
	return nil
}

// ---- seed ----

func (s *Store) AddVendor(v model.Vendor) model.Vendor {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v.ID == 0 {
		v.ID = s.data.nextID("vendors")
	} else {
		s.bumpSeq("vendors", v.ID)
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = s.now()
	}
	s.data.vendors[v.ID] = v
	return v
}

func (s *Store) AddProduct(p model.Product) model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		p.ID = s.data.nextID("products")
	} else {
		s.bumpSeq("products", p.ID)
	}
	p.CreatedAt, p.UpdatedAt = s.now(), s.now()
	s.data.products[p.ID] = p
	return p
}

func (s *Store) AddVariant(v model.ProductVariant) model.ProductVariant {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v.ID == 0 {
		v.ID = s.data.nextID("variants")
	} else {
		s.bumpSeq("variants", v.ID)
	}
	v.CreatedAt, v.UpdatedAt = s.now(), s.now()
	s.data.variants[v.ID] = v
	return v
}

func (s *Store) AddVoucher(v model.Voucher) model.Voucher {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v.ID == 0 {
		v.ID = s.data.nextID("vouchers")
	} else {
		s.bumpSeq("vouchers", v.ID)
	}
	v.CreatedAt, v.UpdatedAt = s.now(), s.now()
	s.data.vouchers[v.ID] = v
	return v
}

func (s *Store) AddCartItem(it model.CartItem) model.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	it.ID = s.data.nextID("cart_items")
	it.CreatedAt, it.UpdatedAt = s.now(), s.now()
	s.data.cartItems[it.ID] = it
	return it
}

// 既存注文を直接置く（配達済みの注文を作るテストなど）
func (s *Store) AddOrder(o model.Order, items []model.OrderItem) (model.Order, []model.OrderItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o.ID = s.data.nextID("orders")
	if o.Date.IsZero() {
		o.Date = s.now()
	}
	o.UpdatedAt = s.now()
	o.Items = nil
	o.Vendor = nil
	s.data.orders[o.ID] = o

	out := make([]model.OrderItem, 0, len(items))
	for _, it := range items {
		it.ID = s.data.nextID("order_items")
		it.OrderID = o.ID
		it.VendorID = o.VendorID
		it.CreatedAt = s.now()
		s.data.orderItems[it.ID] = it
		out = append(out, it)
	}
	return o, out
}

func (s *Store) bumpSeq(table string, id int64) {
	if s.data.seq[table] < id {
		s.data.seq[table] = id
	}
}

// ---- inspect ----

func (s *Store) Product(id int64) (model.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.data.products[id]
	return p, ok
}

func (s *Store) Variant(id int64) (model.ProductVariant, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data.variants[id]
	return v, ok
}

func (s *Store) Voucher(id int64) (model.Voucher, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data.vouchers[id]
	return v, ok
}

func (s *Store) Order(id int64) (model.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.data.orders[id]
	return o, ok
}

func (s *Store) Return(id int64) (model.Return, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.data.returns[id]
	return r, ok
}

func (s *Store) Orders() []model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Order, 0, len(s.data.orders))
	for _, o := range s.data.orders {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) CartItemCount(userID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, it := range s.data.cartItems {
		if it.UserID == userID {
			n++
		}
	}
	return n
}

func (s *Store) VoucherUsages() []model.VoucherUsage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.VoucherUsage(nil), s.data.voucherUsages...)
}

func (s *Store) Adjustments() []model.InventoryAdjustment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.InventoryAdjustment(nil), s.data.adjustments...)
}

func (s *Store) AuditLogs() []model.AuditLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.AuditLog(nil), s.data.auditLogs...)
}
