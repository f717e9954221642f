package service

import (
	"context"
	"reflect"
	"sort"
	"strings"

	"github.com/RoyceAzure/lab/rentfront/internal/config"
	"github.com/RoyceAzure/lab/rentfront/internal/constants"
	"github.com/RoyceAzure/lab/rentfront/internal/infra/api"
	"github.com/RoyceAzure/lab/rentfront/internal/model"
	er "github.com/RoyceAzure/rj/util/rj_error"
)

type ICatalogService interface {
	// LoadProducts 從後端抓取商品清單
	// 抓取失敗回傳錯誤 與合法的空清單可區分
	//
	// 錯誤:
	//   - er.InternalErrorCode 500: 傳輸層失敗
	//   - 其餘: 後端回報的業務錯誤
	LoadProducts(ctx context.Context) ([]model.ProductModel, error)
	// LoadProductsWithFallback 先走後端 失敗時改用靜態後備目錄
	// 回傳值第二個bool表示是否使用了後備資料
	LoadProductsWithFallback(ctx context.Context) ([]model.ProductModel, bool, error)
	// Categories 回傳分類清單 ProductCount已依live商品清單重新統計
	Categories(products []model.ProductModel) []model.CategoryModel
	// Filter 依分類與關鍵字篩選
	// categoryID為"all"或空字串時不篩分類 分類比對不分大小寫
	// query對名稱與描述做不分大小寫的子字串比對
	// 篩選結果為空是合法狀態 不是錯誤
	Filter(products []model.ProductModel, categoryID string, query string) []model.ProductModel
	// Sort 依排序條件回傳新切片 穩定排序 同值維持原相對順序
	// 不認得的條件一律當作name排序
	Sort(products []model.ProductModel, criterion constants.SortCriterionEnum) []model.ProductModel
}

// CatalogService 商品目錄的view model
// 資料來源是後端或靜態後備檔 本身不持有狀態 篩選排序都是純函數
type CatalogService struct {
	productAPI api.IProductAPI
	fallback   *config.CatalogConfig
}

func NewCatalogService(productAPI api.IProductAPI, fallback *config.CatalogConfig) ICatalogService {
	if reflect.ValueOf(productAPI).IsNil() {
		panic("catalog service initialization failed: productAPI cannot be nil")
	}

	return &CatalogService{
		productAPI: productAPI,
		fallback:   fallback,
	}
}

func (c *CatalogService) LoadProducts(ctx context.Context) ([]model.ProductModel, error) {
	return c.productAPI.ListProducts(ctx)
}

func (c *CatalogService) LoadProductsWithFallback(ctx context.Context) ([]model.ProductModel, bool, error) {
	products, err := c.productAPI.ListProducts(ctx)
	if err == nil {
		return products, false, nil
	}

	if c.fallback == nil {
		return nil, false, err
	}

	fallbackProducts, convErr := c.fallback.ToProductModels()
	if convErr != nil {
		return nil, false, er.New(er.InternalErrorCode, convErr.Error())
	}

	return fallbackProducts, true, nil
}

// Categories 靜態product_count只是初始值 一律以live清單重算
func (c *CatalogService) Categories(products []model.ProductModel) []model.CategoryModel {
	if c.fallback == nil {
		return nil
	}

	counts := map[string]int{}
	for _, p := range products {
		counts[strings.ToLower(p.Category)]++
	}

	categories := c.fallback.ToCategoryModels()
	for i := range categories {
		categories[i].ProductCount = counts[strings.ToLower(categories[i].ID)]
	}
	return categories
}

func (c *CatalogService) Filter(products []model.ProductModel, categoryID string, query string) []model.ProductModel {
	categoryID = strings.ToLower(categoryID)
	query = strings.ToLower(query)

	filtered := make([]model.ProductModel, 0, len(products))
	for _, p := range products {
		if categoryID != "" && categoryID != constants.CategoryAll {
			if strings.ToLower(p.Category) != categoryID {
				continue
			}
		}
		if query != "" {
			name := strings.ToLower(p.Name)
			description := strings.ToLower(p.Description)
			if !strings.Contains(name, query) && !strings.Contains(description, query) {
				continue
			}
		}
		filtered = append(filtered, p)
	}
	return filtered
}

func (c *CatalogService) Sort(products []model.ProductModel, criterion constants.SortCriterionEnum) []model.ProductModel {
	sorted := make([]model.ProductModel, len(products))
	copy(sorted, products)

	switch criterion {
	case constants.SortByPriceAsc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].PricePerDay.LessThan(sorted[j].PricePerDay)
		})
	case constants.SortByPriceDesc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[j].PricePerDay.LessThan(sorted[i].PricePerDay)
		})
	default:
		sort.SliceStable(sorted, func(i, j int) bool {
			return strings.ToLower(sorted[i].Name) < strings.ToLower(sorted[j].Name)
		})
	}

	return sorted
}
