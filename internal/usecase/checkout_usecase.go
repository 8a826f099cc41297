package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

const orderNumberAttempts = 3

// usecaseが依存する入力検証の約束
type CheckoutValidator interface {
	ValidatePlaceOrders(in PlaceOrdersInput) error
}

type VoucherSelection struct {
	VoucherID      int64
	DiscountAmount int64
}

type PlaceOrdersInput struct {
	UserID            int64
	Items             []CartLine
	ShippingAddress   model.ShippingAddress
	PaymentMethod     model.PaymentMethod
	ShippingMethod    model.ShippingMethod
	EstimatedDelivery *time.Time
	VendorVouchers    map[int64]VoucherSelection
}

type CheckoutUsecase struct {
	tx        repo.TransactionManager
	validator CheckoutValidator
	numbers   OrderNumberGenerator
	clock     Clock
	logger    *slog.Logger

	//trueなら在庫不足をconflictにしてそのベンダー分をロールバック
	rejectOversell bool
}

func NewCheckoutUsecase(
	tx repo.TransactionManager,
	validator CheckoutValidator,
	numbers OrderNumberGenerator,
	clock Clock,
	logger *slog.Logger,
	rejectOversell bool,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		tx:             tx,
		validator:      validator,
		numbers:        numbers,
		clock:          clock,
		logger:         logger,
		rejectOversell: rejectOversell,
	}
}

// カートをベンダーごとの注文に分けて作成する。
// ベンダー単位で1トランザクション。途中で失敗しても、それまでのベンダー分は残る。
func (u *CheckoutUsecase) PlaceOrders(ctx context.Context, in PlaceOrdersInput) ([]model.Order, error) {
	if err := u.validator.ValidatePlaceOrders(in); err != nil {
		return nil, validationError("%s", err.Error())
	}
	if in.ShippingMethod == "" {
		in.ShippingMethod = model.ShippingMethodStandard
	}

	groups := PartitionByVendor(in.Items)
	orderIDs := make([]int64, 0, len(groups))
	committed := make([]string, 0, len(groups))

	for _, g := range groups {
		var created model.Order
		err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
			o, err := u.placeVendorOrder(ctx, r, in, g)
			if err != nil {
				return err
			}
			created = o
			return nil
		})
		if err != nil {
			if len(committed) > 0 {
				u.logger.WarnContext(ctx, "checkout aborted after partial commit",
					slog.Int64("user_id", in.UserID),
					slog.Int64("failed_vendor_id", g.VendorID),
					slog.Any("committed_orders", committed),
					slog.String("error", err.Error()),
				)
			}
			return nil, err
		}
		orderIDs = append(orderIDs, created.ID)
		committed = append(committed, created.OrderNumber)
	}

	//選択された行だけでなくカート全体を空にする
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		n, err := r.CartItems().DeleteByUserID(ctx, in.UserID)
		if err != nil {
			return storeError(err, "cart")
		}
		if n != int64(len(in.Items)) {
			u.logger.InfoContext(ctx, "cart cleared with rows not in checkout",
				slog.Int64("user_id", in.UserID),
				slog.Int64("cleared", n),
				slog.Int("checked_out", len(in.Items)),
			)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var out []model.Order
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().FindDetailByIDs(ctx, orderIDs)
		if err != nil {
			return storeError(err, "order")
		}
		out = orders
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.logger.InfoContext(ctx, "checkout completed",
		slog.Int64("user_id", in.UserID),
		slog.Any("orders", committed),
	)
	return out, nil
}

// 1ベンダー分: 注文 → 明細 → バウチャー → 在庫 の順に書く
func (u *CheckoutUsecase) placeVendorOrder(ctx context.Context, r repo.TxRepos, in PlaceOrdersInput, g VendorGroup) (model.Order, error) {
	quote := QuoteGroup(g, in.ShippingMethod)

	//バウチャー
	var voucher *model.Voucher
	if sel, ok := in.VendorVouchers[g.VendorID]; ok {
		v, err := r.Vouchers().FindByID(ctx, sel.VoucherID)
		if err != nil {
			return model.Order{}, storeError(err, "voucher")
		}
		if v.VendorID != nil && *v.VendorID != g.VendorID {
			return model.Order{}, validationError("voucher %d does not belong to vendor %d", v.ID, g.VendorID)
		}
		limit, err := VoucherDiscountCap(v, quote.ItemsSubtotal)
		if err != nil {
			return model.Order{}, err
		}
		quote.ApplyVoucher(min(sel.DiscountAmount, limit))
		// 値引き0円なら利用履歴も利用回数も残さない
		if quote.VoucherDiscount > 0 {
			voucher = &v
		}
	}

	//バリエーション名のスナップショット
	items := make([]model.OrderItem, 0, len(quote.Lines))
	for _, l := range quote.Lines {
		item := model.OrderItem{
			ProductID: l.ProductID,
			VendorID:  g.VendorID,
			VariantID: l.VariantID,
			Quantity:  l.Quantity,
			Price:     l.UnitPrice,
		}
		if l.VariantID != nil {
			v, err := r.Products().FindVariantByID(ctx, *l.VariantID)
			if err != nil {
				return model.Order{}, storeError(err, "variant")
			}
			if v.ProductID != l.ProductID {
				return model.Order{}, validationError("variant %d does not belong to product %d", v.ID, l.ProductID)
			}
			name := v.Name
			item.VariantName = &name
		}
		items = append(items, item)
	}

	paymentStatus := model.PaymentStatusPending
	if in.PaymentMethod == model.PaymentMethodWallet {
		paymentStatus = model.PaymentStatusPaid
	}

	now := u.clock.Now()
	order := model.Order{
		UserID:            in.UserID,
		VendorID:          g.VendorID,
		Status:            model.OrderStatusPending,
		Subtotal:          quote.ItemsSubtotal,
		DiscountAmount:    quote.DiscountAmount,
		VoucherDiscount:   quote.VoucherDiscount,
		ShippingCost:      quote.ShippingFee,
		Total:             quote.Total,
		PaymentMethod:     in.PaymentMethod,
		PaymentStatus:     paymentStatus,
		ShippingMethod:    in.ShippingMethod,
		ShippingAddress:   in.ShippingAddress,
		Date:              now,
		EstimatedDelivery: in.EstimatedDelivery,
	}
	if err := u.createWithFreshNumber(ctx, r, &order, now); err != nil {
		return model.Order{}, err
	}

	for i := range items {
		items[i].OrderID = order.ID
	}
	if err := r.OrderItems().CreateBulk(ctx, items); err != nil {
		return model.Order{}, storeError(err, "product")
	}

	if voucher != nil {
		if err := r.Vouchers().CreateUsage(ctx, model.VoucherUsage{
			VoucherID:      voucher.ID,
			UserID:         in.UserID,
			OrderID:        order.ID,
			DiscountAmount: quote.VoucherDiscount,
		}); err != nil {
			return model.Order{}, storeError(err, "voucher")
		}
		ok, err := r.Vouchers().IncrementUsage(ctx, voucher.ID)
		if err != nil {
			return model.Order{}, storeError(err, "voucher")
		}
		if !ok {
			return model.Order{}, conflictError("voucher %s usage limit reached", voucher.Code)
		}
	}

	for _, it := range items {
		if err := u.decreaseStock(ctx, r, it, order.OrderNumber); err != nil {
			return model.Order{}, err
		}
	}

	return order, nil
}

// 注文番号が衝突したら採番し直す
func (u *CheckoutUsecase) createWithFreshNumber(ctx context.Context, r repo.TxRepos, order *model.Order, now time.Time) error {
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		order.OrderNumber = u.numbers.Next(now)
		err := r.Orders().Create(ctx, order)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repo.ErrDuplicate) {
			return storeError(err, "order")
		}
		u.logger.WarnContext(ctx, "order number collision", slog.String("order_number", order.OrderNumber))
	}
	return conflictError("could not allocate a unique order number")
}

func (u *CheckoutUsecase) decreaseStock(ctx context.Context, r repo.TxRepos, it model.OrderItem, orderNumber string) error {
	ref := repo.StockRef{ProductID: it.ProductID, VariantID: it.VariantID}

	if u.rejectOversell {
		ok, err := r.Inventory().DecreaseIfEnough(ctx, ref, it.Quantity)
		if err != nil {
			return storeError(err, "product")
		}
		if !ok {
			return conflictError("insufficient stock for %s", stockLabel(ref))
		}
	} else {
		if err := r.Inventory().Decrease(ctx, ref, it.Quantity); err != nil {
			return storeError(err, "product")
		}
	}

	if err := r.Inventory().CreateAdjustment(ctx, model.InventoryAdjustment{
		ProductID: it.ProductID,
		VariantID: it.VariantID,
		Delta:     -it.Quantity,
		Reason:    model.InventoryReasonCheckout,
		Reference: orderNumber,
	}); err != nil {
		return storeError(err, "product")
	}
	return nil
}

func stockLabel(ref repo.StockRef) string {
	if ref.VariantID != nil {
		return fmt.Sprintf("variant %d", *ref.VariantID)
	}
	return fmt.Sprintf("product %d", ref.ProductID)
}
