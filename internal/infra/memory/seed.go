package memory

import (
	"encoding/json"
	"fmt"
	"io"

	"marketplace/internal/domain/model"
)

// 開発用の初期データ（STORE_DRIVER=memory のとき SEED_FILE から読む）
type Seed struct {
	Vendors   []model.Vendor         `json:"vendors"`
	Products  []model.Product        `json:"products"`
	Variants  []model.ProductVariant `json:"variants"`
	Vouchers  []model.Voucher        `json:"vouchers"`
	CartItems []model.CartItem       `json:"cartItems"`
}

func (s *Store) LoadSeed(r io.Reader) error {
	var seed Seed
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&seed); err != nil {
		return fmt.Errorf("decode seed: %w", err)
	}

	for _, v := range seed.Vendors {
		s.AddVendor(v)
	}
	for _, p := range seed.Products {
		s.AddProduct(p)
	}
	for _, v := range seed.Variants {
		if _, ok := s.Product(v.ProductID); !ok {
			return fmt.Errorf("seed variant %d: product %d not found", v.ID, v.ProductID)
		}
		s.AddVariant(v)
	}
	for _, v := range seed.Vouchers {
		s.AddVoucher(v)
	}
	for _, it := range seed.CartItems {
		s.AddCartItem(it)
	}
	return nil
}
