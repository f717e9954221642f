package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type DeliveryAddress struct {
	Street  string
	City    string
	State   string
	Pincode string
}

// OrderDraftItem 送單時的明細 只帶識別資訊 金額由後端重算
type OrderDraftItem struct {
	ProductID string
	Quantity  int
	Days      int
}

// OrderDraft 結帳時由購物車組出的一次性結構 送出成功後即丟棄
type OrderDraft struct {
	Items           []OrderDraftItem
	EventDate       string
	EventLocation   string
	DeliveryAddress DeliveryAddress
	Notes           string
}

// OrderLineModel 後端回傳的訂單明細
type OrderLineModel struct {
	ProductID   string
	ProductName string
	Quantity    int
	Days        int
	PricePerDay decimal.Decimal
}

// OrderModel 後端持有的訂單紀錄 前端只讀取與請求狀態變更
type OrderModel struct {
	ID            string
	UserName      string
	UserEmail     string
	UserPhone     string
	Items         []OrderLineModel
	TotalAmount   decimal.Decimal
	Status        string
	PaymentStatus string
	EventDate     *time.Time
	EventLocation string
	AdminNotes    string
	CreatedAt     time.Time
}

// ShortID 管理後台顯示用的訂單編號 取尾碼8碼轉大寫
func (o OrderModel) ShortID() string {
	id := o.ID
	if len(id) > 8 {
		id = id[len(id)-8:]
	}
	return strings.ToUpper(id)
}

// OrderStatsModel 管理後台儀表板統計
type OrderStatsModel struct {
	TotalRevenue    decimal.Decimal
	TotalOrders     int
	PendingOrders   int
	CompletedOrders int
	CancelledOrders int
}
