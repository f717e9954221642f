package api

import (
	"encoding/json"
	"time"

	"github.com/RoyceAzure/lab/rentfront/internal/model"
	"github.com/shopspring/decimal"
)

// 後端回應欄位有新舊兩套命名(_id/id, isAvailable/available, image/images)
// 這裡以顯式optional欄位建模 轉換時收斂成單一canonical model

type userDTO struct {
	MongoID string `json:"_id"`
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
}

func (u userDTO) toProfile() model.UserProfile {
	id := u.ID
	if id == "" {
		id = u.MongoID
	}
	return model.UserProfile{
		ID:    id,
		Name:  u.Name,
		Email: u.Email,
	}
}

type reviewDTO struct {
	UserName  string     `json:"userName"`
	Rating    int        `json:"rating"`
	Comment   string     `json:"comment"`
	CreatedAt *time.Time `json:"createdAt"`
}

type productDTO struct {
	MongoID           string      `json:"_id"`
	ID                string      `json:"id"`
	Name              string      `json:"name"`
	Category          string      `json:"category"`
	Description       string      `json:"description"`
	Image             string      `json:"image"`
	Images            []string    `json:"images"`
	PricePerDay       json.Number `json:"pricePerDay"`
	IsAvailable       *bool       `json:"isAvailable"`
	Available         *bool       `json:"available"`
	Quantity          int         `json:"quantity"`
	AvailableQuantity int         `json:"availableQuantity"`
	MinimumRentalDays int         `json:"minimumRentalDays"`
	DepositAmount     json.Number `json:"depositAmount"`
	Specifications    []string    `json:"specifications"`
	Features          []string    `json:"features"`
	Tags              []string    `json:"tags"`
	Rating            float64     `json:"rating"`
	Reviews           []reviewDTO `json:"reviews"`
}

func (p productDTO) toModel() model.ProductModel {
	id := p.ID
	if id == "" {
		id = p.MongoID
	}

	images := p.Images
	if len(images) == 0 && p.Image != "" {
		images = []string{p.Image}
	}

	//來源未帶availability時視為可租
	available := true
	if p.IsAvailable != nil {
		available = *p.IsAvailable
	} else if p.Available != nil {
		available = *p.Available
	}

	minDays := p.MinimumRentalDays
	if minDays < 1 {
		minDays = 1
	}

	var reviews []model.ReviewModel
	for _, r := range p.Reviews {
		review := model.ReviewModel{
			UserName: r.UserName,
			Rating:   r.Rating,
			Comment:  r.Comment,
		}
		if r.CreatedAt != nil {
			review.CreatedAt = *r.CreatedAt
		}
		reviews = append(reviews, review)
	}

	return model.ProductModel{
		ID:                id,
		Name:              p.Name,
		Category:          p.Category,
		Description:       p.Description,
		Images:            images,
		PricePerDay:       numberToDecimal(p.PricePerDay),
		IsAvailable:       available,
		Quantity:          p.Quantity,
		AvailableQuantity: p.AvailableQuantity,
		MinimumRentalDays: minDays,
		DepositAmount:     numberToDecimal(p.DepositAmount),
		Specifications:    p.Specifications,
		Features:          p.Features,
		Tags:              p.Tags,
		Rating:            p.Rating,
		Reviews:           reviews,
	}
}

// numberToDecimal 價格來源int與float混用 一律經字串轉decimal 避免浮點誤差
func numberToDecimal(n json.Number) decimal.Decimal {
	if n == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return decimal.Zero
	}
	return d
}

type orderLineDTO struct {
	ProductID   string      `json:"productId"`
	ProductName string      `json:"productName"`
	Quantity    int         `json:"quantity"`
	Days        int         `json:"days"`
	PricePerDay json.Number `json:"pricePerDay"`
}

type orderDTO struct {
	MongoID       string         `json:"_id"`
	ID            string         `json:"id"`
	UserName      string         `json:"userName"`
	UserEmail     string         `json:"userEmail"`
	UserPhone     string         `json:"userPhone"`
	Items         []orderLineDTO `json:"items"`
	TotalAmount   json.Number    `json:"totalAmount"`
	Status        string         `json:"status"`
	PaymentStatus string         `json:"paymentStatus"`
	EventDate     *time.Time     `json:"eventDate"`
	EventLocation string         `json:"eventLocation"`
	AdminNotes    string         `json:"adminNotes"`
	CreatedAt     time.Time      `json:"createdAt"`
}

func (o orderDTO) toModel() model.OrderModel {
	id := o.ID
	if id == "" {
		id = o.MongoID
	}

	items := make([]model.OrderLineModel, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, model.OrderLineModel{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Days:        item.Days,
			PricePerDay: numberToDecimal(item.PricePerDay),
		})
	}

	status := o.Status
	if status == "" {
		status = "pending"
	}
	paymentStatus := o.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = "pending"
	}

	return model.OrderModel{
		ID:            id,
		UserName:      o.UserName,
		UserEmail:     o.UserEmail,
		UserPhone:     o.UserPhone,
		Items:         items,
		TotalAmount:   numberToDecimal(o.TotalAmount),
		Status:        status,
		PaymentStatus: paymentStatus,
		EventDate:     o.EventDate,
		EventLocation: o.EventLocation,
		AdminNotes:    o.AdminNotes,
		CreatedAt:     o.CreatedAt,
	}
}

type statsDTO struct {
	TotalRevenue    json.Number `json:"totalRevenue"`
	TotalOrders     int         `json:"totalOrders"`
	PendingOrders   int         `json:"pendingOrders"`
	CompletedOrders int         `json:"completedOrders"`
	CancelledOrders int         `json:"cancelledOrders"`
}

func (s statsDTO) toModel() model.OrderStatsModel {
	return model.OrderStatsModel{
		TotalRevenue:    numberToDecimal(s.TotalRevenue),
		TotalOrders:     s.TotalOrders,
		PendingOrders:   s.PendingOrders,
		CompletedOrders: s.CompletedOrders,
		CancelledOrders: s.CancelledOrders,
	}
}

type deliveryAddressDTO struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

type orderDraftItemDTO struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	Days      int    `json:"days"`
}

type orderDraftDTO struct {
	Items           []orderDraftItemDTO `json:"items"`
	EventDate       string              `json:"eventDate"`
	EventLocation   string              `json:"eventLocation"`
	DeliveryAddress deliveryAddressDTO  `json:"deliveryAddress"`
	Notes           string              `json:"notes"`
}

func convertOrderDraftToDTO(draft model.OrderDraft) orderDraftDTO {
	items := make([]orderDraftItemDTO, 0, len(draft.Items))
	for _, item := range draft.Items {
		items = append(items, orderDraftItemDTO{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Days:      item.Days,
		})
	}
	return orderDraftDTO{
		Items:         items,
		EventDate:     draft.EventDate,
		EventLocation: draft.EventLocation,
		DeliveryAddress: deliveryAddressDTO{
			Street:  draft.DeliveryAddress.Street,
			City:    draft.DeliveryAddress.City,
			State:   draft.DeliveryAddress.State,
			Pincode: draft.DeliveryAddress.Pincode,
		},
		Notes: draft.Notes,
	}
}
