package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/RoyceAzure/lab/rentfront/internal/model"
)

// IOrderAPI 訂單相關endpoint 含使用者與管理者兩組
type IOrderAPI interface {
	CreateOrder(ctx context.Context, token string, draft model.OrderDraft) (*CreateOrderResult, error)
	UserOrders(ctx context.Context, token string) ([]model.OrderModel, error)
	OrderByID(ctx context.Context, token string, id string) (*model.OrderModel, error)
	AllOrders(ctx context.Context, token string, statusFilter string) ([]model.OrderModel, error)
	OrderStats(ctx context.Context, token string) (*model.OrderStatsModel, error)
	UpdateOrderStatus(ctx context.Context, token string, id string, status string, adminNotes string) error
	UpdatePaymentStatus(ctx context.Context, token string, id string, paymentStatus string) error
	DeleteOrder(ctx context.Context, token string, id string) error
}

type CreateOrderResult struct {
	OrderID string
	Message string
}

type createOrderResponse struct {
	envelope
	Order orderDTO `json:"order"`
}

type orderListResponse struct {
	envelope
	Orders []orderDTO `json:"orders"`
}

type orderResponse struct {
	envelope
	Order orderDTO `json:"order"`
}

type orderStatsResponse struct {
	envelope
	Stats statsDTO `json:"stats"`
}

func (c *Client) CreateOrder(ctx context.Context, token string, draft model.OrderDraft) (*CreateOrderResult, error) {
	var resp createOrderResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/order/create", token, convertOrderDraftToDTO(draft), &resp)
	if err != nil {
		return nil, err
	}

	return &CreateOrderResult{
		OrderID: resp.Order.toModel().ID,
		Message: resp.Message,
	}, nil
}

func (c *Client) UserOrders(ctx context.Context, token string) ([]model.OrderModel, error) {
	var resp orderListResponse
	err := c.doJSON(ctx, http.MethodGet, "/api/order/user", token, nil, &resp)
	if err != nil {
		return nil, err
	}
	return convertOrderDTOs(resp.Orders), nil
}

func (c *Client) OrderByID(ctx context.Context, token string, id string) (*model.OrderModel, error) {
	var resp orderResponse
	err := c.doJSON(ctx, http.MethodGet, "/api/order/"+url.PathEscape(id), token, nil, &resp)
	if err != nil {
		return nil, err
	}
	order := resp.Order.toModel()
	return &order, nil
}

// AllOrders 管理者撈全部訂單 statusFilter為空或"all"時不加篩選參數
func (c *Client) AllOrders(ctx context.Context, token string, statusFilter string) ([]model.OrderModel, error) {
	path := "/api/order/admin/all"
	if statusFilter != "" && statusFilter != "all" {
		query := url.Values{}
		query.Set("status", statusFilter)
		path += "?" + query.Encode()
	}

	var resp orderListResponse
	err := c.doJSON(ctx, http.MethodGet, path, token, nil, &resp)
	if err != nil {
		return nil, err
	}
	return convertOrderDTOs(resp.Orders), nil
}

func (c *Client) OrderStats(ctx context.Context, token string) (*model.OrderStatsModel, error) {
	var resp orderStatsResponse
	err := c.doJSON(ctx, http.MethodGet, "/api/order/admin/stats", token, nil, &resp)
	if err != nil {
		return nil, err
	}
	stats := resp.Stats.toModel()
	return &stats, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, token string, id string, status string, adminNotes string) error {
	var resp messageResponse
	return c.doJSON(ctx, http.MethodPut, "/api/order/admin/status/"+url.PathEscape(id), token, map[string]string{
		"status":     status,
		"adminNotes": adminNotes,
	}, &resp)
}

func (c *Client) UpdatePaymentStatus(ctx context.Context, token string, id string, paymentStatus string) error {
	var resp messageResponse
	return c.doJSON(ctx, http.MethodPut, "/api/order/admin/payment/"+url.PathEscape(id), token, map[string]string{
		"paymentStatus": paymentStatus,
	}, &resp)
}

func (c *Client) DeleteOrder(ctx context.Context, token string, id string) error {
	var resp messageResponse
	return c.doJSON(ctx, http.MethodDelete, "/api/order/admin/"+url.PathEscape(id), token, nil, &resp)
}

func convertOrderDTOs(dtos []orderDTO) []model.OrderModel {
	orders := make([]model.OrderModel, 0, len(dtos))
	for _, dto := range dtos {
		orders = append(orders, dto.toModel())
	}
	return orders
}
