package repository

import "context"

type CartItemRepository interface {
	// ユーザーのカート明細を全部消す。消した件数を返す
	DeleteByUserID(ctx context.Context, userID int64) (int64, error)
}
