package constants

const (
	//分頁
	DefaultPagingSize int = 10
	DefaultPaging     int = 1
)

// 排序條件 對應商品列表頁的排序選單
type SortCriterionEnum string

const (
	DefaultSortCriterion SortCriterionEnum = "name"
	SortByName           SortCriterionEnum = "name"
	SortByPriceAsc       SortCriterionEnum = "price-low"
	SortByPriceDesc      SortCriterionEnum = "price-high"
)

func IsValidSortCriterionEnum(criterion string) bool {
	switch SortCriterionEnum(criterion) {
	case SortByName, SortByPriceAsc, SortByPriceDesc:
		return true
	default:
		return false
	}
}

// 訂單狀態由後端維護 前端只做顯示與更新請求
type OrderStatusEnum string

const (
	OrderStatusPending   OrderStatusEnum = "pending"
	OrderStatusConfirmed OrderStatusEnum = "confirmed"
	OrderStatusDelivered OrderStatusEnum = "delivered"
	OrderStatusCompleted OrderStatusEnum = "completed"
	OrderStatusCancelled OrderStatusEnum = "cancelled"
)

func IsValidOrderStatusEnum(status string) bool {
	switch OrderStatusEnum(status) {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusDelivered, OrderStatusCompleted, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

type PaymentStatusEnum string

const (
	PaymentStatusPending   PaymentStatusEnum = "pending"
	PaymentStatusPartial   PaymentStatusEnum = "partial"
	PaymentStatusCompleted PaymentStatusEnum = "completed"
	PaymentStatusRefunded  PaymentStatusEnum = "refunded"
)

func IsValidPaymentStatusEnum(status string) bool {
	switch PaymentStatusEnum(status) {
	case PaymentStatusPending, PaymentStatusPartial, PaymentStatusCompleted, PaymentStatusRefunded:
		return true
	default:
		return false
	}
}

// for api client
const (
	//後端約定的驗證header 帶原始token 不加Bearer前綴
	TokenHeaderKey     = "token"
	RequestIDHeaderKey = "request_id"
)

// session儲存只用單一key 舊版的authToken/token/userId/userName四組key不再沿用
const SessionStorageKey = "session"

// 商品分類篩選的萬用值
const CategoryAll = "all"

type RequestID string

const (
	RequestIDKey RequestID = "request_id"
)

type ENV string

const (
	Debug ENV = "debug"
	Dev   ENV = "development"
	Stag  ENV = "staging"
	Prod  ENV = "production"
)
