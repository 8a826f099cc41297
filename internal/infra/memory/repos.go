package memory

import (
	"context"
	"sort"
	"time"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

// Tx内の各repo。stはロック済みの状態を指す
type txRepos struct {
	st  *state
	now func() time.Time
}

func (r *txRepos) Orders() repo.OrderRepository         { return orderRepo{r} }
func (r *txRepos) OrderItems() repo.OrderItemRepository { return orderItemRepo{r} }
func (r *txRepos) Products() repo.ProductRepository     { return productRepo{r} }
func (r *txRepos) Inventory() repo.InventoryRepository  { return inventoryRepo{r} }
func (r *txRepos) Vouchers() repo.VoucherRepository     { return voucherRepo{r} }
func (r *txRepos) CartItems() repo.CartItemRepository   { return cartItemRepo{r} }
func (r *txRepos) Returns() repo.ReturnRepository       { return returnRepo{r} }
func (r *txRepos) AuditLogs() repo.AuditLogRepository   { return auditLogRepo{r} }

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// ---- orders ----

type orderRepo struct{ *txRepos }

func (r orderRepo) Create(_ context.Context, o *model.Order) error {
	for _, existing := range r.st.orders {
		if existing.OrderNumber == o.OrderNumber {
			return repo.ErrDuplicate
		}
	}
	o.ID = r.st.nextID("orders")
	if o.Date.IsZero() {
		o.Date = r.now()
	}
	o.UpdatedAt = r.now()

	row := *o
	row.Items = nil
	row.Vendor = nil
	r.st.orders[o.ID] = row
	return nil
}

func (r orderRepo) FindByID(_ context.Context, id int64) (model.Order, error) {
	o, ok := r.st.orders[id]
	if !ok {
		return model.Order{}, repo.ErrNotFound
	}
	return o, nil
}

// 全Txが直列なのでロックは不要
func (r orderRepo) FindByIDForUpdate(ctx context.Context, id int64) (model.Order, error) {
	return r.FindByID(ctx, id)
}

func (r orderRepo) FindDetailByIDs(_ context.Context, ids []int64) ([]model.Order, error) {
	out := make([]model.Order, 0, len(ids))
	for _, id := range ids {
		o, ok := r.st.orders[id]
		if !ok {
			continue
		}
		out = append(out, r.detail(o))
	}
	return out, nil
}

func (r orderRepo) List(_ context.Context, f repo.OrderListFilter) ([]model.Order, int64, error) {
	var matched []model.Order
	for _, o := range r.st.orders {
		if f.UserID != nil && o.UserID != *f.UserID {
			continue
		}
		if f.VendorID != nil && o.VendorID != *f.VendorID {
			continue
		}
		if f.Status != nil && o.Status != *f.Status {
			continue
		}
		matched = append(matched, o)
	}

	//新しい順
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].Date.Equal(matched[j].Date) {
			return matched[i].Date.After(matched[j].Date)
		}
		return matched[i].ID > matched[j].ID
	})

	total := int64(len(matched))
	paged := page(matched, f.Limit, f.Offset)
	out := make([]model.Order, 0, len(paged))
	for _, o := range paged {
		out = append(out, r.detail(o))
	}
	return out, total, nil
}

func (r orderRepo) UpdateStatus(_ context.Context, id int64, status model.OrderStatus) error {
	o, ok := r.st.orders[id]
	if !ok {
		return repo.ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = r.now()
	r.st.orders[id] = o
	return nil
}

func (r orderRepo) UpdatePaymentStatus(_ context.Context, id int64, status model.PaymentStatus) error {
	o, ok := r.st.orders[id]
	if !ok {
		return repo.ErrNotFound
	}
	o.PaymentStatus = status
	o.UpdatedAt = r.now()
	r.st.orders[id] = o
	return nil
}

func (r orderRepo) detail(o model.Order) model.Order {
	if v, ok := r.st.vendors[o.VendorID]; ok {
		o.Vendor = &v
	}

	items := []model.OrderItem{}
	for _, it := range r.st.orderItems {
		if it.OrderID != o.ID {
			continue
		}
		if p, ok := r.st.products[it.ProductID]; ok {
			it.Product = &p
		}
		if it.VariantID != nil {
			if v, ok := r.st.variants[*it.VariantID]; ok {
				it.Variant = &v
			}
		}
		items = append(items, it)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	o.Items = items
	return o
}

// ---- order items ----

type orderItemRepo struct{ *txRepos }

func (r orderItemRepo) CreateBulk(_ context.Context, items []model.OrderItem) error {
	for i := range items {
		//外部キー相当のチェック
		if _, ok := r.st.orders[items[i].OrderID]; !ok {
			return repo.ErrInvalidReference
		}
		if _, ok := r.st.products[items[i].ProductID]; !ok {
			return repo.ErrInvalidReference
		}
		if items[i].VariantID != nil {
			if _, ok := r.st.variants[*items[i].VariantID]; !ok {
				return repo.ErrInvalidReference
			}
		}

		items[i].ID = r.st.nextID("order_items")
		items[i].CreatedAt = r.now()
		row := items[i]
		row.Product = nil
		row.Variant = nil
		r.st.orderItems[row.ID] = row
	}
	return nil
}

func (r orderItemRepo) FindByID(_ context.Context, id int64) (model.OrderItem, error) {
	it, ok := r.st.orderItems[id]
	if !ok {
		return model.OrderItem{}, repo.ErrNotFound
	}
	return it, nil
}

func (r orderItemRepo) ListByOrderID(_ context.Context, orderID int64) ([]model.OrderItem, error) {
	out := []model.OrderItem{}
	for _, it := range r.st.orderItems {
		if it.OrderID == orderID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ---- products ----

type productRepo struct{ *txRepos }

func (r productRepo) FindByID(_ context.Context, id int64) (model.Product, error) {
	p, ok := r.st.products[id]
	if !ok {
		return model.Product{}, repo.ErrNotFound
	}
	return p, nil
}

func (r productRepo) FindVariantByID(_ context.Context, id int64) (model.ProductVariant, error) {
	v, ok := r.st.variants[id]
	if !ok {
		return model.ProductVariant{}, repo.ErrNotFound
	}
	return v, nil
}

// ---- inventory ----

type inventoryRepo struct{ *txRepos }

func (r inventoryRepo) stock(ref repo.StockRef) (int64, bool) {
	if ref.VariantID != nil {
		v, ok := r.st.variants[*ref.VariantID]
		return v.Stock, ok
	}
	p, ok := r.st.products[ref.ProductID]
	return p.Stock, ok
}

func (r inventoryRepo) setStock(ref repo.StockRef, stock int64) {
	if ref.VariantID != nil {
		v := r.st.variants[*ref.VariantID]
		v.Stock = stock
		v.UpdatedAt = r.now()
		r.st.variants[v.ID] = v
		return
	}
	p := r.st.products[ref.ProductID]
	p.Stock = stock
	p.UpdatedAt = r.now()
	r.st.products[p.ID] = p
}

func (r inventoryRepo) Decrease(_ context.Context, ref repo.StockRef, qty int64) error {
	cur, ok := r.stock(ref)
	if !ok {
		return repo.ErrNotFound
	}
	r.setStock(ref, max(cur-qty, 0))
	return nil
}

func (r inventoryRepo) DecreaseIfEnough(_ context.Context, ref repo.StockRef, qty int64) (bool, error) {
	cur, ok := r.stock(ref)
	if !ok || cur < qty {
		return false, nil
	}
	r.setStock(ref, cur-qty)
	return true, nil
}

func (r inventoryRepo) Increase(_ context.Context, ref repo.StockRef, qty int64) error {
	cur, ok := r.stock(ref)
	if !ok {
		return repo.ErrNotFound
	}
	r.setStock(ref, cur+qty)
	return nil
}

func (r inventoryRepo) Set(_ context.Context, ref repo.StockRef, newStock int64) (int64, error) {
	cur, ok := r.stock(ref)
	if !ok {
		return 0, repo.ErrNotFound
	}
	r.setStock(ref, newStock)
	return cur, nil
}

func (r inventoryRepo) CreateAdjustment(_ context.Context, adj model.InventoryAdjustment) error {
	adj.ID = r.st.nextID("inventory_adjustments")
	if adj.CreatedAt.IsZero() {
		adj.CreatedAt = r.now()
	}
	r.st.adjustments = append(r.st.adjustments, adj)
	return nil
}

// ---- vouchers ----

type voucherRepo struct{ *txRepos }

func (r voucherRepo) FindByID(_ context.Context, id int64) (model.Voucher, error) {
	v, ok := r.st.vouchers[id]
	if !ok {
		return model.Voucher{}, repo.ErrNotFound
	}
	return v, nil
}

func (r voucherRepo) IncrementUsage(_ context.Context, id int64) (bool, error) {
	v, ok := r.st.vouchers[id]
	if !ok {
		return false, nil
	}
	if v.TotalUsageLimit != nil && v.UsageCount >= *v.TotalUsageLimit {
		return false, nil
	}
	v.UsageCount++
	v.UpdatedAt = r.now()
	r.st.vouchers[id] = v
	return true, nil
}

func (r voucherRepo) CreateUsage(_ context.Context, usage model.VoucherUsage) error {
	if _, ok := r.st.vouchers[usage.VoucherID]; !ok {
		return repo.ErrInvalidReference
	}
	usage.ID = r.st.nextID("voucher_usages")
	usage.CreatedAt = r.now()
	r.st.voucherUsages = append(r.st.voucherUsages, usage)
	return nil
}

// ---- cart ----

type cartItemRepo struct{ *txRepos }

func (r cartItemRepo) DeleteByUserID(_ context.Context, userID int64) (int64, error) {
	var n int64
	for id, it := range r.st.cartItems {
		if it.UserID == userID {
			delete(r.st.cartItems, id)
			n++
		}
	}
	return n, nil
}

// ---- returns ----

type returnRepo struct{ *txRepos }

func (r returnRepo) Create(_ context.Context, ret *model.Return) error {
	if _, ok := r.st.orderItems[ret.OrderItemID]; !ok {
		return repo.ErrInvalidReference
	}
	ret.ID = r.st.nextID("returns")
	ret.UpdatedAt = r.now()
	row := *ret
	row.Product = nil
	r.st.returns[ret.ID] = row
	return nil
}

func (r returnRepo) FindByID(_ context.Context, id int64) (model.Return, error) {
	ret, ok := r.st.returns[id]
	if !ok {
		return model.Return{}, repo.ErrNotFound
	}
	return ret, nil
}

func (r returnRepo) FindByIDForUpdate(ctx context.Context, id int64) (model.Return, error) {
	return r.FindByID(ctx, id)
}

func (r returnRepo) Update(_ context.Context, ret model.Return) error {
	cur, ok := r.st.returns[ret.ID]
	if !ok {
		return repo.ErrNotFound
	}
	cur.Status = ret.Status
	cur.SellerNotes = ret.SellerNotes
	cur.TrackingNumber = ret.TrackingNumber
	cur.TrackingURL = ret.TrackingURL
	cur.ApprovedAt = ret.ApprovedAt
	cur.ShippedAt = ret.ShippedAt
	cur.CompletedAt = ret.CompletedAt
	cur.UpdatedAt = r.now()
	r.st.returns[ret.ID] = cur
	return nil
}

func (r returnRepo) List(_ context.Context, f repo.ReturnListFilter) ([]model.Return, int64, error) {
	var matched []model.Return
	for _, ret := range r.st.returns {
		if f.VendorID != nil && ret.VendorID != *f.VendorID {
			continue
		}
		if f.UserID != nil && ret.UserID != *f.UserID {
			continue
		}
		if f.Status != nil && ret.Status != *f.Status {
			continue
		}
		matched = append(matched, ret)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].RequestedAt.Equal(matched[j].RequestedAt) {
			return matched[i].RequestedAt.After(matched[j].RequestedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	total := int64(len(matched))
	out := page(matched, f.Limit, f.Offset)
	for i := range out {
		if p, ok := r.st.products[out[i].ProductID]; ok {
			out[i].Product = &p
		}
	}
	return out, total, nil
}

func (r returnRepo) ListByOrderID(_ context.Context, orderID int64) ([]model.Return, error) {
	return r.filter(func(ret model.Return) bool { return ret.OrderID == orderID }), nil
}

func (r returnRepo) ListByOrderItemID(_ context.Context, orderItemID int64) ([]model.Return, error) {
	return r.filter(func(ret model.Return) bool { return ret.OrderItemID == orderItemID }), nil
}

func (r returnRepo) filter(keep func(model.Return) bool) []model.Return {
	out := []model.Return{}
	for _, ret := range r.st.returns {
		if keep(ret) {
			out = append(out, ret)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ---- audit logs ----

type auditLogRepo struct{ *txRepos }

func (r auditLogRepo) Create(_ context.Context, log model.AuditLog) error {
	log.ID = r.st.nextID("audit_logs")
	if log.CreatedAt.IsZero() {
		log.CreatedAt = r.now()
	}
	r.st.auditLogs = append(r.st.auditLogs, log)
	return nil
}

func (r auditLogRepo) List(_ context.Context, f repo.AuditLogFilter) ([]model.AuditLog, int64, error) {
	var matched []model.AuditLog
	for i := len(r.st.auditLogs) - 1; i >= 0; i-- {
		l := r.st.auditLogs[i]
		if f.ActorUserID != nil && (l.ActorUserID == nil || *l.ActorUserID != *f.ActorUserID) {
			continue
		}
		if f.Action != nil && l.Action != *f.Action {
			continue
		}
		if f.ResourceType != nil && l.ResourceType != *f.ResourceType {
			continue
		}
		if f.ResourceID != nil && l.ResourceID != *f.ResourceID {
			continue
		}
		if f.CreatedFrom != nil && l.CreatedAt.Before(*f.CreatedFrom) {
			continue
		}
		if f.CreatedTo != nil && l.CreatedAt.After(*f.CreatedTo) {
			continue
		}
		matched = append(matched, l)
	}
	return page(matched, f.Limit, f.Offset), int64(len(matched)), nil
}
