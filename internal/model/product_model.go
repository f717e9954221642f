package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductModel 商品目錄項目
// 價格一律使用decimal 後端來源有int與float混用 由api層轉換時統一
type ProductModel struct {
	ID                string
	Name              string
	Category          string
	Description       string
	Images            []string
	PricePerDay       decimal.Decimal
	IsAvailable       bool
	Quantity          int
	AvailableQuantity int
	MinimumRentalDays int
	DepositAmount     decimal.Decimal
	Specifications    []string
	Features          []string
	Tags              []string
	Rating            float64
	Reviews           []ReviewModel
}

type ReviewModel struct {
	UserName  string
	Rating    int
	Comment   string
	CreatedAt time.Time
}

// CategoryModel 商品分類
// ProductCount為展示用數字 一律由live商品清單重新統計 不信任靜態值
type CategoryModel struct {
	ID           string
	Name         string
	Icon         string
	Description  string
	ProductCount int
}

// CreateProductModel 新增/更新商品的輸入
// ImagePaths為本地檔案路徑 由api層讀取後以multipart上傳
type CreateProductModel struct {
	Name              string
	Category          string
	Description       string
	PricePerDay       decimal.Decimal
	Quantity          int
	AvailableQuantity int
	MinimumRentalDays int
	DepositAmount     decimal.Decimal
	Specifications    string
	Features          []string
	Tags              []string
	ImagePaths        []string
}

type AddReviewModel struct {
	Rating  int
	Comment string
}
