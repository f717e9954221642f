package service

import (
	"sync"

	"github.com/RoyceAzure/lab/rentfront/internal/model"
	er "github.com/RoyceAzure/rj/util/rj_error"
	"github.com/shopspring/decimal"
)

type ICartService interface {
	// Add 將商品加入購物車
	// 同一商品ID只會有一筆明細 重複加入時數量累加 天數以新值取代
	//
	// 參數:
	//   - product: 商品快照 以加入當下的內容為準 不會重新抓取
	//   - quantity: 數量 必須為正
	//   - days: 租期天數 低於商品最低租期時向上修正
	//
	// 錯誤:
	//   - er.InvalidArgumentCode 460: quantity非正數
	Add(product model.ProductModel, quantity int, days int) error
	// Remove 移除明細 商品不存在時為no-op 不視為錯誤
	Remove(productID string)
	// SetQuantity 更新明細數量 quantity <= 0時等同Remove
	SetQuantity(productID string, quantity int)
	// SetDays 更新明細天數 最低為1天 商品不存在時為no-op
	SetDays(productID string, days int)
	// Clear 清空購物車
	Clear()
	// Items 回傳明細副本 依加入順序排列
	Items() []model.CartItemModel
	// TotalItemCount 所有明細的數量加總 不是明細筆數
	TotalItemCount() int
	// TotalPrice 所有明細的金額加總 = Σ(日租金 × 數量 × 天數)
	TotalPrice() decimal.Decimal
}

// CartService 購物車聚合 只存在記憶體 不跨重啟持久化
// 所有操作同步生效 計算值即時反映
type CartService struct {
	mu    sync.RWMutex
	items []model.CartItemModel
}

func NewCartService() ICartService {
	return &CartService{}
}

func (c *CartService) Add(product model.ProductModel, quantity int, days int) error {
	if quantity <= 0 {
		return er.New(er.InvalidArgumentCode, "quantity must be positive")
	}
	days = clampDays(days, product.MinimumRentalDays)

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].Product.ID == product.ID {
			//數量累加 天數取代
			c.items[i].Quantity += quantity
			c.items[i].Days = days
			return nil
		}
	}

	c.items = append(c.items, model.CartItemModel{
		Product:  product,
		Quantity: quantity,
		Days:     days,
	})
	return nil
}

func (c *CartService) Remove(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(productID)
}

func (c *CartService) removeLocked(productID string) {
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

func (c *CartService) SetQuantity(productID string, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity <= 0 {
		c.removeLocked(productID)
		return
	}

	for i := range c.items {
		if c.items[i].Product.ID == productID {
			c.items[i].Quantity = quantity
			return
		}
	}
}

func (c *CartService) SetDays(productID string, days int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].Product.ID == productID {
			c.items[i].Days = clampDays(days, c.items[i].Product.MinimumRentalDays)
			return
		}
	}
}

func (c *CartService) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

func (c *CartService) Items() []model.CartItemModel {
	c.mu.RLock()
	defer c.mu.RUnlock()

	items := make([]model.CartItemModel, len(c.items))
	copy(items, c.items)
	return items
}

func (c *CartService) TotalItemCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var total int
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

func (c *CartService) TotalPrice() decimal.Decimal {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// clampDays 天數下限為1 商品有最低租期時以最低租期為下限
func clampDays(days int, minimumRentalDays int) int {
	min := 1
	if minimumRentalDays > 1 {
		min = minimumRentalDays
	}
	if days < min {
		return min
	}
	return days
}
