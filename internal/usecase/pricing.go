package usecase

import (
	"marketplace/internal/domain/model"

	"github.com/shopspring/decimal"
)

// 配送料はベンダーごとの定額
const (
	StandardShippingFee int64 = 10000
	ExpressShippingFee  int64 = 30000
)

func ShippingFee(method model.ShippingMethod) int64 {
	if method == model.ShippingMethodExpress {
		return ExpressShippingFee
	}
	return StandardShippingFee
}

// カートの1行（画面で計算済みの価格つき）
type CartLine struct {
	ProductID int64
	VariantID *int64
	VendorID  int64
	Quantity  int64
	Price     int64
	BasePrice *int64
	SalePrice *int64
}

// 実際に請求する単価と1個あたりの値引き額
// basePriceが無ければpriceを定価として扱う
func ResolveUnitPrice(l CartLine) (charged int64, discount int64) {
	base := l.Price
	if l.BasePrice != nil {
		base = *l.BasePrice
	}
	if l.SalePrice != nil && *l.SalePrice < base {
		return *l.SalePrice, base - *l.SalePrice
	}
	return base, 0
}

type VendorGroup struct {
	VendorID int64
	Lines    []CartLine
}

// 最初に出てきた順でベンダーごとにまとめる
func PartitionByVendor(lines []CartLine) []VendorGroup {
	index := map[int64]int{}
	var groups []VendorGroup
	for _, l := range lines {
		i, ok := index[l.VendorID]
		if !ok {
			i = len(groups)
			index[l.VendorID] = i
			groups = append(groups, VendorGroup{VendorID: l.VendorID})
		}
		groups[i].Lines = append(groups[i].Lines, l)
	}
	return groups
}

type PricedLine struct {
	CartLine
	UnitPrice int64
}

type GroupQuote struct {
	Lines           []PricedLine
	ItemsSubtotal   int64
	DiscountAmount  int64
	ShippingFee     int64
	VoucherDiscount int64
	Total           int64
}

func QuoteGroup(g VendorGroup, method model.ShippingMethod) GroupQuote {
	q := GroupQuote{Lines: make([]PricedLine, 0, len(g.Lines))}
	for _, l := range g.Lines {
		unit, off := ResolveUnitPrice(l)
		q.Lines = append(q.Lines, PricedLine{CartLine: l, UnitPrice: unit})
		q.ItemsSubtotal += unit * l.Quantity
		q.DiscountAmount += off * l.Quantity
	}
	q.ShippingFee = ShippingFee(method)
	q.Total = q.ItemsSubtotal + q.ShippingFee
	return q
}

// バウチャー値引きを引く（0未満にはしない）
func (q *GroupQuote) ApplyVoucher(amount int64) {
	q.VoucherDiscount = amount
	q.Total = max(q.ItemsSubtotal+q.ShippingFee-amount, 0)
}

// このバウチャーで引ける最大額。最低注文額に届かなければconflict
func VoucherDiscountCap(v model.Voucher, subtotal int64) (int64, error) {
	if subtotal < v.MinOrderValue {
		return 0, conflictError("voucher %s requires a minimum order value of %d", v.Code, v.MinOrderValue)
	}

	switch v.DiscountType {
	case model.DiscountTypeFixed:
		return v.DiscountValue, nil
	case model.DiscountTypePercentage:
		amount := decimal.NewFromInt(subtotal).
			Mul(decimal.NewFromInt(v.DiscountValue)).
			Div(decimal.NewFromInt(100)).
			Floor()
		if v.MaxDiscount != nil {
			amount = decimal.Min(amount, decimal.NewFromInt(*v.MaxDiscount))
		}
		return amount.IntPart(), nil
	default:
		return 0, conflictError("voucher %s has unsupported discount type %q", v.Code, v.DiscountType)
	}
}
