package repository

import "errors"

var (
	ErrNotFound = errors.New("not found")

	//一意制約違反（注文番号の衝突など）
	ErrDuplicate = errors.New("duplicate key")

	//外部キー違反（存在しない商品IDなど）
	ErrInvalidReference = errors.New("invalid reference")
)
