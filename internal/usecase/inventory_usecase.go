package usecase

import (
	"context"
	"strings"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

// 管理画面からの在庫の直接設定
type InventoryUsecase struct {
	tx    repo.TransactionManager
	clock Clock
}

func NewInventoryUsecase(tx repo.TransactionManager, clock Clock) *InventoryUsecase {
	return &InventoryUsecase{tx: tx, clock: clock}
}

type SetStockInput struct {
	AdminUserID int64
	ProductID   int64
	VariantID   *int64
	Stock       int64
	Reason      string
}

type StockChange struct {
	ProductID int64  `json:"productId"`
	VariantID *int64 `json:"variantId"`
	Before    int64  `json:"before"`
	After     int64  `json:"after"`
}

func (u *InventoryUsecase) SetStock(ctx context.Context, in SetStockInput) (StockChange, error) {
	if in.AdminUserID <= 0 {
		return StockChange{}, validationError("admin user is required")
	}
	if in.ProductID <= 0 {
		return StockChange{}, validationError("invalid product id")
	}
	if in.Stock < 0 {
		return StockChange{}, validationError("stock must be >= 0")
	}
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return StockChange{}, validationError("reason required")
	}

	var out StockChange
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Products().FindByID(ctx, in.ProductID); err != nil {
			return storeError(err, "product")
		}
		resourceType, resourceID := model.AuditResourceProduct, in.ProductID
		if in.VariantID != nil {
			v, err := r.Products().FindVariantByID(ctx, *in.VariantID)
			if err != nil {
				return storeError(err, "variant")
			}
			if v.ProductID != in.ProductID {
				return validationError("variant %d does not belong to product %d", v.ID, in.ProductID)
			}
			resourceType, resourceID = model.AuditResourceVariant, v.ID
		}

		//在庫の現在値を更新（変更前の値も取る）
		ref := repo.StockRef{ProductID: in.ProductID, VariantID: in.VariantID}
		before, err := r.Inventory().Set(ctx, ref, in.Stock)
		if err != nil {
			return storeError(err, "product")
		}

		//履歴を作成（差分）
		now := u.clock.Now()
		if err := r.Inventory().CreateAdjustment(ctx, model.InventoryAdjustment{
			ProductID:   in.ProductID,
			VariantID:   in.VariantID,
			ActorUserID: &in.AdminUserID,
			Delta:       in.Stock - before,
			Reason:      model.InventoryReasonAdmin,
			Note:        reason,
			CreatedAt:   now,
		}); err != nil {
			return storeError(err, "product")
		}

		//監査ログを作成（在庫更新）
		if err := recordAudit(ctx, r, now, &in.AdminUserID,
			model.AuditActionUpdateStock, resourceType, resourceID,
			map[string]any{"stock": before},
			map[string]any{"stock": in.Stock, "reason": reason},
		); err != nil {
			return err
		}

		out = StockChange{ProductID: in.ProductID, VariantID: in.VariantID, Before: before, After: in.Stock}
		return nil
	})
	if err != nil {
		return StockChange{}, err
	}
	return out, nil
}
