package service

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/RoyceAzure/lab/rentfront/internal/constants"
	"github.com/RoyceAzure/lab/rentfront/internal/infra/api"
	"github.com/RoyceAzure/lab/rentfront/internal/model"
	er "github.com/RoyceAzure/rj/util/rj_error"
)

// CheckoutDetails 結帳頁收集的配送資訊
type CheckoutDetails struct {
	EventDate       string
	EventLocation   string
	DeliveryAddress model.DeliveryAddress
	Notes           string
}

type IOrderService interface {
	// Checkout 將當前購物車內容組成訂單送出
	// 活動日期 活動地點 與非空購物車為前置檢核 不通過時不打後端
	// 成功後清空購物車 失敗時購物車內容保留
	//
	// 參數:
	//   - details: 配送與活動資訊
	//
	// 返回值:
	//   - *api.CreateOrderResult: 後端產生的訂單ID與訊息
	//
	// 錯誤:
	//   - er.UnauthenticatedCode: 未登入
	//   - er.InvalidArgumentCode: 檢核不通過
	Checkout(ctx context.Context, details CheckoutDetails) (*api.CreateOrderResult, error)
	// UserOrders 取得當前使用者的訂單 新到舊由後端排序
	UserOrders(ctx context.Context) ([]model.OrderModel, error)
	// Order 取得單筆訂單明細
	Order(ctx context.Context, id string) (*model.OrderModel, error)
	// AllOrders 管理者查詢全部訂單 statusFilter為空或all時不過濾
	AllOrders(ctx context.Context, statusFilter string) ([]model.OrderModel, error)
	// Stats 管理後台儀表板統計
	Stats(ctx context.Context) (*model.OrderStatsModel, error)
	// UpdateStatus 管理者變更訂單狀態 status必須是已知狀態值
	UpdateStatus(ctx context.Context, id string, status string, adminNotes string) error
	// UpdatePayment 管理者變更付款狀態
	UpdatePayment(ctx context.Context, id string, paymentStatus string) error
	// Delete 管理者刪除訂單
	Delete(ctx context.Context, id string) error
}

type OrderService struct {
	orderAPI    api.IOrderAPI
	cartService ICartService
	authService IAuthService
}

func NewOrderService(orderAPI api.IOrderAPI, cartService ICartService, authService IAuthService) IOrderService {
	if reflect.ValueOf(orderAPI).IsNil() {
		panic("order service initialization failed: orderAPI cannot be nil")
	}
	if reflect.ValueOf(cartService).IsNil() {
		panic("order service initialization failed: cartService cannot be nil")
	}
	if reflect.ValueOf(authService).IsNil() {
		panic("order service initialization failed: authService cannot be nil")
	}
	return &OrderService{
		orderAPI:    orderAPI,
		cartService: cartService,
		authService: authService,
	}
}

func (o *OrderService) Checkout(ctx context.Context, details CheckoutDetails) (*api.CreateOrderResult, error) {
	token, err := o.requireToken()
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(details.EventDate) == "" {
		return nil, er.New(er.InvalidArgumentCode, "event date is required")
	}
	if strings.TrimSpace(details.EventLocation) == "" {
		return nil, er.New(er.InvalidArgumentCode, "event location is required")
	}

	items := o.cartService.Items()
	if len(items) == 0 {
		return nil, er.New(er.InvalidArgumentCode, "cart is empty")
	}

	draft := model.OrderDraft{
		Items:           make([]model.OrderDraftItem, 0, len(items)),
		EventDate:       details.EventDate,
		EventLocation:   details.EventLocation,
		DeliveryAddress: details.DeliveryAddress,
		Notes:           details.Notes,
	}
	for _, item := range items {
		draft.Items = append(draft.Items, model.OrderDraftItem{
			ProductID: item.Product.ID,
			Quantity:  item.Quantity,
			Days:      item.Days,
		})
	}

	res, err := o.orderAPI.CreateOrder(ctx, token, draft)
	if err != nil {
		return nil, err
	}

	//送單成功才清購物車
	o.cartService.Clear()
	return res, nil
}

func (o *OrderService) UserOrders(ctx context.Context) ([]model.OrderModel, error) {
	token, err := o.requireToken()
	if err != nil {
		return nil, err
	}
	return o.orderAPI.UserOrders(ctx, token)
}

func (o *OrderService) Order(ctx context.Context, id string) (*model.OrderModel, error) {
	token, err := o.requireToken()
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, er.New(er.InvalidArgumentCode, "order id is required")
	}
	return o.orderAPI.OrderByID(ctx, token, id)
}

func (o *OrderService) AllOrders(ctx context.Context, statusFilter string) ([]model.OrderModel, error) {
	token, err := o.requireToken()
	if err != nil {
		return nil, err
	}
	return o.orderAPI.AllOrders(ctx, token, statusFilter)
}

func (o *OrderService) Stats(ctx context.Context) (*model.OrderStatsModel, error) {
	token, err := o.requireToken()
	if err != nil {
		return nil, err
	}
	return o.orderAPI.OrderStats(ctx, token)
}

func (o *OrderService) UpdateStatus(ctx context.Context, id string, status string, adminNotes string) error {
	token, err := o.requireToken()
	if err != nil {
		return err
	}
	if !constants.IsValidOrderStatusEnum(status) {
		return er.New(er.InvalidArgumentCode, fmt.Sprintf("unknown order status: %s", status))
	}
	return o.orderAPI.UpdateOrderStatus(ctx, token, id, status, adminNotes)
}

func (o *OrderService) UpdatePayment(ctx context.Context, id string, paymentStatus string) error {
	token, err := o.requireToken()
	if err != nil {
		return err
	}
	if !constants.IsValidPaymentStatusEnum(paymentStatus) {
		return er.New(er.InvalidArgumentCode, fmt.Sprintf("unknown payment status: %s", paymentStatus))
	}
	return o.orderAPI.UpdatePaymentStatus(ctx, token, id, paymentStatus)
}

func (o *OrderService) Delete(ctx context.Context, id string) error {
	token, err := o.requireToken()
	if err != nil {
		return err
	}
	if id == "" {
		return er.New(er.InvalidArgumentCode, "order id is required")
	}
	return o.orderAPI.DeleteOrder(ctx, token, id)
}

func (o *OrderService) requireToken() (string, error) {
	token := o.authService.Token()
	if token == "" {
		return "", er.New(er.UnauthenticatedCode, "login required")
	}
	return token, nil
}
