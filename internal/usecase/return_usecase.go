package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

// セラーが返品に対して行う操作
type ReturnAction string

const (
	ReturnActionApprove       ReturnAction = "approve"
	ReturnActionReject        ReturnAction = "reject"
	ReturnActionMarkShipped   ReturnAction = "mark_shipped"
	ReturnActionMarkReceived  ReturnAction = "mark_received"
	ReturnActionMarkRestocked ReturnAction = "mark_restocked"
	ReturnActionConfirmRefund ReturnAction = "confirm_refund"
	ReturnActionMarkCompleted ReturnAction = "mark_completed"
)

func (a ReturnAction) Valid() bool {
	switch a {
	case ReturnActionApprove, ReturnActionReject, ReturnActionMarkShipped, ReturnActionMarkReceived,
		ReturnActionMarkRestocked, ReturnActionConfirmRefund, ReturnActionMarkCompleted:
		return true
	}
	return false
}

type ReturnValidator interface {
	ValidateCreateReturn(in CreateReturnInput) error
	ValidateReturnAction(in ReturnActionInput) error
}

type CreateReturnInput struct {
	UserID      int64
	OrderItemID int64
	ReturnType  model.ReturnType
	Reason      string
	Description string
	Images      []string
	Quantity    int64
}

type CancelReturnInput struct {
	ReturnID int64
	UserID   int64
}

type ListReturnsInput struct {
	VendorID int64
	UserID   int64
	Status   string
	Limit    int
	Offset   int
}

// Actionが空ならメモ・追跡番号の更新だけ
type ReturnActionInput struct {
	ReturnID       int64
	VendorID       *int64
	Action         ReturnAction
	SellerNotes    *string
	TrackingNumber *string
	TrackingURL    *string
	ActorUserID    *int64
}

// 一覧用に商品名と画像を足したもの
type ReturnOutput struct {
	model.Return
	ProductName   string   `json:"productName"`
	ProductImages []string `json:"productImages"`
}

type ReturnList struct {
	Data       []ReturnOutput `json:"data"`
	Pagination Pagination     `json:"pagination"`
}

type ReturnUsecase struct {
	tx        repo.TransactionManager
	validator ReturnValidator
	clock     Clock
}

func NewReturnUsecase(tx repo.TransactionManager, validator ReturnValidator, clock Clock) *ReturnUsecase {
	return &ReturnUsecase{tx: tx, validator: validator, clock: clock}
}

// 顧客の返品申請。配達済み（または完了）の注文の明細だけ
func (u *ReturnUsecase) Create(ctx context.Context, in CreateReturnInput) (model.Return, error) {
	if err := u.validator.ValidateCreateReturn(in); err != nil {
		return model.Return{}, validationError("%s", err.Error())
	}

	var out model.Return
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		item, err := r.OrderItems().FindByID(ctx, in.OrderItemID)
		if err != nil {
			return storeError(err, "order item")
		}
		order, err := r.Orders().FindByIDForUpdate(ctx, item.OrderID)
		if err != nil {
			return storeError(err, "order")
		}
		if order.UserID != in.UserID {
			return notFoundError("order item")
		}
		if order.Status != model.OrderStatusDelivered && order.Status != model.OrderStatusCompleted {
			return conflictError("returns can only be requested for delivered orders (order is %s)", order.Status)
		}
		if in.Quantity > item.Quantity {
			return validationError("quantity %d exceeds purchased quantity %d", in.Quantity, item.Quantity)
		}

		existing, err := r.Returns().ListByOrderItemID(ctx, item.ID)
		if err != nil {
			return storeError(err, "return")
		}
		for _, ex := range existing {
			if ex.Status.Active() {
				return conflictError("return %d is already in progress for this order item", ex.ID)
			}
		}

		now := u.clock.Now()
		ret := model.Return{
			OrderID:      order.ID,
			OrderItemID:  item.ID,
			UserID:       in.UserID,
			ProductID:    item.ProductID,
			VariantID:    item.VariantID,
			VendorID:     item.VendorID,
			ReturnType:   in.ReturnType,
			Reason:       strings.TrimSpace(in.Reason),
			Description:  strings.TrimSpace(in.Description),
			Images:       in.Images,
			Quantity:     in.Quantity,
			RefundAmount: item.Price * in.Quantity,
			Status:       model.ReturnStatusPending,
			RequestedAt:  now,
		}
		if ret.Images == nil {
			ret.Images = []string{}
		}
		if err := r.Returns().Create(ctx, &ret); err != nil {
			return storeError(err, "order item")
		}

		if err := recordAudit(ctx, r, now, &in.UserID,
			model.AuditActionRequestReturn, model.AuditResourceReturn, ret.ID,
			nil,
			map[string]any{"status": ret.Status, "quantity": ret.Quantity, "returnType": ret.ReturnType},
		); err != nil {
			return err
		}
		out = ret
		return nil
	})
	if err != nil {
		return model.Return{}, err
	}
	return out, nil
}

// 顧客による取り下げ（pendingのときだけ）
func (u *ReturnUsecase) Cancel(ctx context.Context, in CancelReturnInput) (model.Return, error) {
	if in.ReturnID <= 0 {
		return model.Return{}, validationError("returnId is required")
	}
	if in.UserID <= 0 {
		return model.Return{}, validationError("userId is required")
	}

	var out model.Return
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		ret, err := r.Returns().FindByIDForUpdate(ctx, in.ReturnID)
		if err != nil {
			return storeError(err, "return")
		}
		if ret.UserID != in.UserID {
			return notFoundError("return")
		}
		if ret.Status != model.ReturnStatusPending {
			return conflictError("only pending returns can be cancelled (return is %s)", ret.Status)
		}

		ret.Status = model.ReturnStatusCancelled
		if err := r.Returns().Update(ctx, ret); err != nil {
			return storeError(err, "return")
		}
		if err := recordAudit(ctx, r, u.clock.Now(), &in.UserID,
			model.AuditActionCancelReturn, model.AuditResourceReturn, ret.ID,
			map[string]any{"status": model.ReturnStatusPending},
			map[string]any{"status": ret.Status},
		); err != nil {
			return err
		}

		fresh, err := r.Returns().FindByID(ctx, ret.ID)
		if err != nil {
			return storeError(err, "return")
		}
		out = fresh
		return nil
	})
	if err != nil {
		return model.Return{}, err
	}
	return out, nil
}

// VendorIDかUserIDのどちらかで絞る
func (u *ReturnUsecase) List(ctx context.Context, in ListReturnsInput) (ReturnList, error) {
	if in.VendorID <= 0 && in.UserID <= 0 {
		return ReturnList{}, validationError("vendorId is required")
	}
	filter := repo.ReturnListFilter{}
	if in.VendorID > 0 {
		filter.VendorID = &in.VendorID
	}
	if in.UserID > 0 {
		filter.UserID = &in.UserID
	}
	if raw := strings.TrimSpace(in.Status); raw != "" {
		s := model.ReturnStatus(raw)
		if !s.Valid() {
			return ReturnList{}, validationError("invalid status %q", raw)
		}
		filter.Status = &s
	}
	limit, offset, err := normalizePage(in.Limit, in.Offset)
	if err != nil {
		return ReturnList{}, err
	}
	filter.Limit, filter.Offset = limit, offset

	var out ReturnList
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		rows, total, err := r.Returns().List(ctx, filter)
		if err != nil {
			return storeError(err, "return")
		}
		data := make([]ReturnOutput, 0, len(rows))
		for _, ret := range rows {
			data = append(data, toReturnOutput(ret))
		}
		out = ReturnList{Data: data, Pagination: Pagination{Limit: limit, Offset: offset, Total: total}}
		return nil
	})
	if err != nil {
		return ReturnList{}, err
	}
	return out, nil
}

func toReturnOutput(ret model.Return) ReturnOutput {
	out := ReturnOutput{Return: ret, ProductImages: []string{}}
	if ret.Product != nil {
		out.ProductName = ret.Product.Name
		if ret.Product.Images != nil {
			out.ProductImages = ret.Product.Images
		}
	}
	return out
}

// セラーの返品操作。返品と注文は行ロックして読み直してから判定する
func (u *ReturnUsecase) Process(ctx context.Context, in ReturnActionInput) (model.Return, error) {
	if err := u.validator.ValidateReturnAction(in); err != nil {
		return model.Return{}, validationError("%s", err.Error())
	}

	var out model.Return
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		ret, err := r.Returns().FindByIDForUpdate(ctx, in.ReturnID)
		if err != nil {
			return storeError(err, "return")
		}
		if in.VendorID != nil && *in.VendorID != ret.VendorID {
			return notFoundError("return")
		}
		order, err := r.Orders().FindByIDForUpdate(ctx, ret.OrderID)
		if err != nil {
			return storeError(err, "order")
		}

		now := u.clock.Now()
		before := ret.Status
		applyReturnFields(&ret, in)

		if in.Action != "" {
			if err := u.applyAction(ctx, r, &ret, order, in, now); err != nil {
				return err
			}
		}

		if err := r.Returns().Update(ctx, ret); err != nil {
			return storeError(err, "return")
		}
		if err := recordAudit(ctx, r, now, in.ActorUserID,
			model.AuditActionReturnAction, model.AuditResourceReturn, ret.ID,
			map[string]any{"status": before},
			map[string]any{"status": ret.Status, "action": in.Action},
		); err != nil {
			return err
		}

		fresh, err := r.Returns().FindByID(ctx, ret.ID)
		if err != nil {
			return storeError(err, "return")
		}
		out = fresh
		return nil
	})
	if err != nil {
		return model.Return{}, err
	}
	return out, nil
}

// メモ・追跡URLは空文字でクリア。追跡番号は空文字なら保存済みの値を残す
func applyReturnFields(ret *model.Return, in ReturnActionInput) {
	if in.SellerNotes != nil {
		ret.SellerNotes = trimmedOrNil(*in.SellerNotes)
	}
	if in.TrackingURL != nil {
		ret.TrackingURL = trimmedOrNil(*in.TrackingURL)
	}
	if in.TrackingNumber != nil {
		if tn := trimmedOrNil(*in.TrackingNumber); tn != nil {
			ret.TrackingNumber = tn
		}
	}
}

func trimmedOrNil(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// 返品アクションを1件適用する。
// confirm_refund は approved のときだけ refund_confirmed に進め、発送後に呼ばれても返品の状態は戻さない。
func (u *ReturnUsecase) applyAction(ctx context.Context, r repo.TxRepos, ret *model.Return, order model.Order, in ReturnActionInput, now time.Time) error {
	//返金が必要なのは「返品」かつ代引き以外
	requiresRefund := ret.ReturnType == model.ReturnTypeReturn && order.PaymentMethod != model.PaymentMethodCOD
	refunded := order.PaymentStatus == model.PaymentStatusRefunded

	switch in.Action {
	case ReturnActionApprove:
		if ret.Status != model.ReturnStatusPending {
			return invalidReturnAction(in.Action, ret.Status)
		}
		ret.Status = model.ReturnStatusApproved
		ret.ApprovedAt = &now
		if order.Status != model.OrderStatusReturned {
			return changeOrderStatus(ctx, r, u.clock, in.ActorUserID, order, model.OrderStatusReturned)
		}

	case ReturnActionReject:
		if ret.Status != model.ReturnStatusPending {
			return invalidReturnAction(in.Action, ret.Status)
		}
		ret.Status = model.ReturnStatusRejected

	case ReturnActionMarkShipped:
		switch ret.Status {
		case model.ReturnStatusShipped:
		case model.ReturnStatusApproved:
			if requiresRefund && !refunded {
				return conflictError("refund must be confirmed before the return can be marked as shipped")
			}
		case model.ReturnStatusRefundConfirmed:
			if !requiresRefund {
				return invalidReturnAction(in.Action, ret.Status)
			}
		default:
			return invalidReturnAction(in.Action, ret.Status)
		}
		if ret.TrackingNumber == nil {
			return conflictError("tracking number is required to mark a return as shipped")
		}
		if ret.ShippedAt == nil {
			ret.ShippedAt = &now
		}
		ret.Status = model.ReturnStatusShipped

	case ReturnActionMarkReceived:
		if ret.Status != model.ReturnStatusShipped && ret.Status != model.ReturnStatusReceived {
			return invalidReturnAction(in.Action, ret.Status)
		}
		ret.Status = model.ReturnStatusReceived

	case ReturnActionMarkRestocked:
		if ret.Status != model.ReturnStatusReceived && ret.Status != model.ReturnStatusRestocked {
			return invalidReturnAction(in.Action, ret.Status)
		}
		if err := restockOnce(ctx, r, *ret, in.ActorUserID); err != nil {
			return err
		}
		ret.Status = model.ReturnStatusRestocked

	case ReturnActionConfirmRefund:
		if !requiresRefund {
			return conflictError("refund is not required for this return")
		}
		switch ret.Status {
		case model.ReturnStatusApproved, model.ReturnStatusRefundConfirmed, model.ReturnStatusShipped,
			model.ReturnStatusReceived, model.ReturnStatusRestocked:
		default:
			return invalidReturnAction(in.Action, ret.Status)
		}
		if !refunded {
			if err := r.Orders().UpdatePaymentStatus(ctx, order.ID, model.PaymentStatusRefunded); err != nil {
				return storeError(err, "order")
			}
		}
		//発送後の返金確認では返品の進行状況を戻さない
		if ret.Status == model.ReturnStatusApproved {
			ret.Status = model.ReturnStatusRefundConfirmed
		}

	case ReturnActionMarkCompleted:
		if ret.Status != model.ReturnStatusRestocked && ret.Status != model.ReturnStatusCompleted {
			return invalidReturnAction(in.Action, ret.Status)
		}
		if !requiresRefund {
			if err := restockOnce(ctx, r, *ret, in.ActorUserID); err != nil {
				return err
			}
		}
		if ret.CompletedAt == nil {
			ret.CompletedAt = &now
		}
		ret.Status = model.ReturnStatusCompleted

	default:
		return validationError("invalid action %q", in.Action)
	}
	return nil
}

// 在庫戻しは1返品につき1回だけ
func restockOnce(ctx context.Context, r repo.TxRepos, ret model.Return, actor *int64) error {
	if ret.Status == model.ReturnStatusRestocked || ret.Status == model.ReturnStatusCompleted {
		return nil
	}

	ref := repo.StockRef{ProductID: ret.ProductID, VariantID: ret.VariantID}
	if err := r.Inventory().Increase(ctx, ref, ret.Quantity); err != nil {
		return storeError(err, "product")
	}
	if err := r.Inventory().CreateAdjustment(ctx, model.InventoryAdjustment{
		ProductID:   ret.ProductID,
		VariantID:   ret.VariantID,
		ActorUserID: actor,
		Delta:       ret.Quantity,
		Reason:      model.InventoryReasonRestock,
		Reference:   fmt.Sprintf("return:%d", ret.ID),
	}); err != nil {
		return storeError(err, "product")
	}
	return nil
}

func invalidReturnAction(action ReturnAction, status model.ReturnStatus) *AppError {
	return validationError("cannot %s a return in status %s", action, status)
}
