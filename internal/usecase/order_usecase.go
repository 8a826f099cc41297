package usecase

import (
	"context"
	"strings"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

type OrderUsecase struct {
	tx    repo.TransactionManager
	clock Clock
}

func NewOrderUsecase(tx repo.TransactionManager, clock Clock) *OrderUsecase {
	return &OrderUsecase{tx: tx, clock: clock}
}

type ListOrdersInput struct {
	UserID int64
	Status string
	Limit  int
	Offset int
}

type OrderList struct {
	Data       []model.Order `json:"data"`
	Pagination Pagination    `json:"pagination"`
}

type UpdateOrderStatusInput struct {
	OrderID int64
	Status  string

	//認証のないエンドポイントからはnil
	ActorUserID *int64
}

// 自分の注文一覧（新しい順）
func (u *OrderUsecase) List(ctx context.Context, in ListOrdersInput) (OrderList, error) {
	if in.UserID <= 0 {
		return OrderList{}, validationError("userId is required")
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
			UserID: &in.UserID,
			Status: status,
			Limit:  limit,
			Offset: offset,
		})
		if err != nil {
			return storeError(err, "order")
		}
		if orders == nil {
			orders = []model.Order{}
		}
		out = OrderList{
			Data:       orders,
			Pagination: Pagination{Limit: limit, Offset: offset, Total: total},
		}
		return nil
	})
	if err != nil {
		return OrderList{}, err
	}
	return out, nil
}

func (u *OrderUsecase) Get(ctx context.Context, userID int64, orderID int64) (model.Order, error) {
	if userID <= 0 {
		return model.Order{}, validationError("userId is required")
	}
	if orderID <= 0 {
		return model.Order{}, validationError("invalid order id")
	}

	var out model.Order
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().FindDetailByIDs(ctx, []int64{orderID})
		if err != nil {
			return storeError(err, "order")
		}
		//他人の注文は「存在しない扱い」にする
		if len(orders) == 0 || orders[0].UserID != userID {
			return notFoundError("order")
		}
		out = orders[0]
		return nil
	})
	if err != nil {
		return model.Order{}, err
	}
	return out, nil
}

// pending→cancelled / delivered→completed だけを許可する。
// 現在のステータスはクライアントの値ではなくDBから読み直す。
func (u *OrderUsecase) UpdateStatus(ctx context.Context, in UpdateOrderStatusInput) (model.Order, error) {
	if in.OrderID <= 0 {
		return model.Order{}, validationError("orderId is required")
	}
	target := model.OrderStatus(strings.TrimSpace(in.Status))
	if target == "" {
		return model.Order{}, validationError("status is required")
	}
	if !target.Valid() {
		return model.Order{}, validationError("invalid status %q", in.Status)
	}

	var out model.Order
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByIDForUpdate(ctx, in.OrderID)
		if err != nil {
			return storeError(err, "order")
		}

		if !canTransition(customerTransitions, o.Status, target) {
			return transitionError(o.Status, target)
		}

		//進行中の返品があれば完了にできない
		if target == model.OrderStatusCompleted {
			returns, err := r.Returns().ListByOrderID(ctx, o.ID)
			if err != nil {
				return storeError(err, "return")
			}
			for _, ret := range returns {
				if ret.Status.Active() {
					return conflictError("cannot complete order while return %d is %s", ret.ID, ret.Status)
				}
			}
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

// ステータス更新と監査ログ
func changeOrderStatus(ctx context.Context, r repo.TxRepos, clock Clock, actor *int64, o model.Order, target model.OrderStatus) error {
	if err := r.Orders().UpdateStatus(ctx, o.ID, target); err != nil {
		return storeError(err, "order")
	}
	return recordAudit(ctx, r, clock.Now(), actor,
		model.AuditActionUpdateOrderStatus, model.AuditResourceOrder, o.ID,
		map[string]any{"status": o.Status},
		map[string]any{"status": target},
	)
}

func parseOrderStatusFilter(raw string) (*model.OrderStatus, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	s := model.OrderStatus(raw)
	if !s.Valid() {
		return nil, validationError("invalid status %q", raw)
	}
	return &s, nil
}
