package usecase

import (
	"context"
	"strings"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

type AuditLogUsecase struct {
	tx repo.TransactionManager
}

func NewAuditLogUsecase(tx repo.TransactionManager) *AuditLogUsecase {
	return &AuditLogUsecase{tx: tx}
}

type ListAuditLogsInput struct {
	ResourceType string
	ResourceID   int64
	Action       string
	Limit        int
	Offset       int
}

type AuditLogList struct {
	Data       []model.AuditLog `json:"data"`
	Pagination Pagination       `json:"pagination"`
}

func (u *AuditLogUsecase) List(ctx context.Context, in ListAuditLogsInput) (AuditLogList, error) {
	limit, offset, err := normalizePage(in.Limit, in.Offset)
	if err != nil {
		return AuditLogList{}, err
	}
	filter := repo.AuditLogFilter{Limit: limit, Offset: offset}

	if rt := strings.TrimSpace(in.ResourceType); rt != "" {
		t := model.AuditResourceType(rt)
		filter.ResourceType = &t
	}
	if in.ResourceID < 0 {
		return AuditLogList{}, validationError("invalid resourceId")
	}
	if in.ResourceID > 0 {
		filter.ResourceID = &in.ResourceID
	}
	if a := strings.TrimSpace(in.Action); a != "" {
		action := model.AuditAction(a)
		filter.Action = &action
	}

	var out AuditLogList
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		logs, total, err := r.AuditLogs().List(ctx, filter)
		if err != nil {
			return storeError(err, "audit log")
		}
		if logs == nil {
			logs = []model.AuditLog{}
		}
		out = AuditLogList{Data: logs, Pagination: Pagination{Limit: limit, Offset: offset, Total: total}}
		return nil
	})
	if err != nil {
		return AuditLogList{}, err
	}
	return out, nil
}
