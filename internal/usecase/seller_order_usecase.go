package usecase

import (
	"context"
	"strings"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

// セラー側の注文一覧と出荷ステータス更新
type SellerOrderUsecase struct {
	tx    repo.TransactionManager
	clock Clock
}

func NewSellerOrderUsecase(tx repo.TransactionManager, clock Clock) *SellerOrderUsecase {
	return &SellerOrderUsecase{tx: tx, clock: clock}
}

type ListVendorOrdersInput struct {
	VendorID int64
	Status   string
	Limit    int
	Offset   int
}

type UpdateFulfillmentInput struct {
	OrderID     int64
	VendorID    int64
	Status      string
	ActorUserID *int64
}

func (u *SellerOrderUsecase) List(ctx context.Context, in ListVendorOrdersInput) (OrderList, error) {
	if in.VendorID <= 0 {
		return OrderList{}, validationError("vendorId is required")
	}
	status, err := parseOrderStatusFilter(in.Status)
	if err != nil {
		return OrderList{}, err
	}
	limit, offset, err := normalizePage(in.Limit, in.Offset)
	if err != nil {
		return OrderList{}, err
	}

	var out OrderList
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, total, err := r.Orders().List(ctx, repo.OrderListFilter{
			VendorID: &in.VendorID,
			Status:   status,
			Limit:    limit,
			Offset:   offset,
		})
		if err != nil {
			return storeError(err, "order")
		}
		if orders == nil {
			orders = []model.Order{}
		}
		out = OrderList{Data: orders, Pagination: Pagination{Limit: limit, Offset: offset, Total: total}}
		return nil
	})
	if err != nil {
		return OrderList{}, err
	}
	return out, nil
}

// pending→processing→shipped→delivered の前進だけ
func (u *SellerOrderUsecase) UpdateFulfillment(ctx context.Context, in UpdateFulfillmentInput) (model.Order, error) {
	if in.OrderID <= 0 {
		return model.Order{}, validationError("orderId is required")
	}
	if in.VendorID <= 0 {
		return model.Order{}, validationError("vendorId is required")
	}
	target := model.OrderStatus(strings.TrimSpace(in.Status))
	if !target.Valid() {
		return model.Order{}, validationError("invalid status %q", in.Status)
	}

	var out model.Order
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByIDForUpdate(ctx, in.OrderID)
		if err != nil {
			return storeError(err, "order")
		}
		//他ベンダーの注文は存在しない扱い
		if o.VendorID != in.VendorID {
			return notFoundError("order")
		}
		if !canTransition(fulfillmentTransitions, o.Status, target) {
			return transitionError(o.Status, target)
		}

		if err := changeOrderStatus(ctx, r, u.clock, in.ActorUserID, o, target); err != nil {
			return err
		}

		updated, err := r.Orders().FindByID(ctx, o.ID)
		if err != nil {
			return storeError(err, "order")
		}
		out = updated
		return nil
	})
	if err != nil {
		return model.Order{}, err
	}
	return out, nil
}
