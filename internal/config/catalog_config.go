package config

import (
	"os"

	"github.com/RoyceAzure/lab/rentfront/internal/model"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

type CatalogCategory struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	Icon         string `yaml:"icon"`
	Description  string `yaml:"description"`
	ProductCount int    `yaml:"product_count"`
}

type CatalogProduct struct {
	ID             string   `yaml:"id"`
	Name           string   `yaml:"name"`
	Category       string   `yaml:"category"`
	Description    string   `yaml:"description"`
	Image          string   `yaml:"image"`
	PricePerDay    string   `yaml:"price_per_day"`
	Available      bool     `yaml:"available"`
	Specifications []string `yaml:"specifications"`
}

// CatalogConfig 靜態後備目錄 後端抓取失敗時使用
type CatalogConfig struct {
	Categories []CatalogCategory `yaml:"categories"`
	Products   []CatalogProduct  `yaml:"products"`
}

// yaml path : docs/catalog.yaml
func LoadCatalogConfig(path string) (*CatalogConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := &CatalogConfig{}
	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, err
	}

	return config, nil
}

// ToCategoryModels 轉換為CategoryModel 靜態product_count僅為初始值
func (c *CatalogConfig) ToCategoryModels() []model.CategoryModel {
	categories := make([]model.CategoryModel, 0, len(c.Categories))
	for _, cat := range c.Categories {
		categories = append(categories, model.CategoryModel{
			ID:           cat.ID,
			Name:         cat.Name,
			Icon:         cat.Icon,
			Description:  cat.Description,
			ProductCount: cat.ProductCount,
		})
	}
	return categories
}

// ToProductModels 轉換為ProductModel 價格字串解析失敗視為整份檔案無效
func (c *CatalogConfig) ToProductModels() ([]model.ProductModel, error) {
	products := make([]model.ProductModel, 0, len(c.Products))
	for _, p := range c.Products {
		price, err := decimal.NewFromString(p.PricePerDay)
		if err != nil {
			return nil, err
		}
		products = append(products, model.ProductModel{
			ID:                p.ID,
			Name:              p.Name,
			Category:          p.Category,
			Description:       p.Description,
			Images:            []string{p.Image},
			PricePerDay:       price,
			IsAvailable:       p.Available,
			MinimumRentalDays: 1,
			Specifications:    p.Specifications,
		})
	}
	return products, nil
}
