package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/RoyceAzure/lab/rentfront/internal/model"
)

// IProductAPI 商品相關endpoint
// 新增與更新帶圖片上傳 使用multipart 其餘為JSON
type IProductAPI interface {
	ListProducts(ctx context.Context) ([]model.ProductModel, error)
	ProductByID(ctx context.Context, id string) (*model.ProductModel, error)
	ProductsByCategory(ctx context.Context, category string) ([]model.ProductModel, error)
	SearchProducts(ctx context.Context, query string) ([]model.ProductModel, error)
	AddProduct(ctx context.Context, token string, arg model.CreateProductModel) error
	UpdateProduct(ctx context.Context, token string, id string, arg model.CreateProductModel) error
	DeleteProduct(ctx context.Context, token string, id string) error
	UpdateAvailability(ctx context.Context, token string, id string, available bool) error
	AddReview(ctx context.Context, token string, id string, review model.AddReviewModel) error
}

type productListResponse struct {
	envelope
	Products []productDTO `json:"products"`
}

type productResponse struct {
	envelope
	Product productDTO `json:"product"`
}

func (c *Client) ListProducts(ctx context.Context) ([]model.ProductModel, error) {
	var resp productListResponse
	err := c.doJSON(ctx, http.MethodGet, "/api/product/list", "", nil, &resp)
	if err != nil {
		return nil, err
	}
	return convertProductDTOs(resp.Products), nil
}

func (c *Client) ProductByID(ctx context.Context, id string) (*model.ProductModel, error) {
	var resp productResponse
	err := c.doJSON(ctx, http.MethodGet, "/api/product/"+url.PathEscape(id), "", nil, &resp)
	if err != nil {
		return nil, err
	}
	product := resp.Product.toModel()
	return &product, nil
}

func (c *Client) ProductsByCategory(ctx context.Context, category string) ([]model.ProductModel, error) {
	var resp productListResponse
	err := c.doJSON(ctx, http.MethodGet, "/api/product/category/"+url.PathEscape(category), "", nil, &resp)
	if err != nil {
		return nil, err
	}
	return convertProductDTOs(resp.Products), nil
}

func (c *Client) SearchProducts(ctx context.Context, query string) ([]model.ProductModel, error) {
	var resp productListResponse
	err := c.doJSON(ctx, http.MethodGet, "/api/product/search?query="+url.QueryEscape(query), "", nil, &resp)
	if err != nil {
		return nil, err
	}
	return convertProductDTOs(resp.Products), nil
}

func (c *Client) AddProduct(ctx context.Context, token string, arg model.CreateProductModel) error {
	fields, err := productFormFields(arg)
	if err != nil {
		return err
	}

	var resp messageResponse
	return c.doMultipart(ctx, http.MethodPost, "/api/product/add", token, fields, arg.ImagePaths, &resp)
}

func (c *Client) UpdateProduct(ctx context.Context, token string, id string, arg model.CreateProductModel) error {
	fields, err := productFormFields(arg)
	if err != nil {
		return err
	}

	var resp messageResponse
	return c.doMultipart(ctx, http.MethodPut, "/api/product/update/"+url.PathEscape(id), token, fields, arg.ImagePaths, &resp)
}

func (c *Client) DeleteProduct(ctx context.Context, token string, id string) error {
	var resp messageResponse
	return c.doJSON(ctx, http.MethodDelete, "/api/product/delete/"+url.PathEscape(id), token, nil, &resp)
}

func (c *Client) UpdateAvailability(ctx context.Context, token string, id string, available bool) error {
	var resp messageResponse
	return c.doJSON(ctx, http.MethodPut, "/api/product/availability/"+url.PathEscape(id), token, map[string]bool{
		"isAvailable": available,
	}, &resp)
}

func (c *Client) AddReview(ctx context.Context, token string, id string, review model.AddReviewModel) error {
	var resp messageResponse
	return c.doJSON(ctx, http.MethodPost, "/api/product/review/"+url.PathEscape(id), token, map[string]any{
		"rating":  review.Rating,
		"comment": review.Comment,
	}, &resp)
}

func convertProductDTOs(dtos []productDTO) []model.ProductModel {
	products := make([]model.ProductModel, 0, len(dtos))
	for _, dto := range dtos {
		products = append(products, dto.toModel())
	}
	return products
}

// productFormFields 組出商品表單欄位 features與tags以JSON字串傳遞 與後端約定一致
func productFormFields(arg model.CreateProductModel) (map[string]string, error) {
	features, err := json.Marshal(arg.Features)
	if err != nil {
		return nil, fmt.Errorf("encode features: %v", err)
	}
	tags, err := json.Marshal(arg.Tags)
	if err != nil {
		return nil, fmt.Errorf("encode tags: %v", err)
	}

	fields := map[string]string{
		"name":              arg.Name,
		"description":       arg.Description,
		"category":          arg.Category,
		"pricePerDay":       arg.PricePerDay.String(),
		"quantity":          strconv.Itoa(arg.Quantity),
		"availableQuantity": strconv.Itoa(arg.AvailableQuantity),
		"features":          string(features),
		"minimumRentalDays": strconv.Itoa(arg.MinimumRentalDays),
		"tags":              string(tags),
		"depositAmount":     arg.DepositAmount.String(),
	}
	if arg.Specifications != "" {
		fields["specifications"] = arg.Specifications
	}

	return fields, nil
}
