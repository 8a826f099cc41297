package usecase

import (
	"context"
	"encoding/json"
	"time"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

// 監査ログを同じTx内で書く
func recordAudit(
	ctx context.Context,
	r repo.TxRepos,
	now time.Time,
	actor *int64,
	action model.AuditAction,
	resourceType model.AuditResourceType,
	resourceID int64,
	before any,
	after any,
) error {
	beforeJSON, err := json.Marshal(before)
	if err != nil {
		return upstreamError(err)
	}
	afterJSON, err := json.Marshal(after)
	if err != nil {
		return upstreamError(err)
	}

	if err := r.AuditLogs().Create(ctx, model.AuditLog{
		ActorUserID:  actor,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		BeforeJSON:   string(beforeJSON),
		AfterJSON:    string(afterJSON),
		CreatedAt:    now,
	}); err != nil {
		return upstreamError(err)
	}
	return nil
}
