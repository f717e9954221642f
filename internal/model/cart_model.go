package model

import "github.com/shopspring/decimal"

// CartItemModel 購物車明細 一個商品ID只會有一筆
// Product為加入當下的快照 不會重新抓取
type CartItemModel struct {
	Product  ProductModel
	Quantity int
	Days     int
}

// LineTotal 單筆明細金額 = 日租金 × 數量 × 天數
func (c CartItemModel) LineTotal() decimal.Decimal {
	return c.Product.PricePerDay.
		Mul(decimal.NewFromInt(int64(c.Quantity))).
		Mul(decimal.NewFromInt(int64(c.Days)))
}
