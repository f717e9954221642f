package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/RoyceAzure/lab/rentfront/internal/model"
	er "github.com/RoyceAzure/rj/util/rj_error"
)

type IExportService interface {
	// ExportOrders 將訂單清單輸出成CSV報表
	// 欄位順序固定 空清單時只輸出表頭
	ExportOrders(w io.Writer, orders []model.OrderModel) error
	// ExportProducts 將商品清單輸出成CSV報表
	ExportProducts(w io.Writer, products []model.ProductModel) error
}

type ExportService struct{}

func NewExportService() IExportService {
	return &ExportService{}
}

var orderExportHeader = []string{
	"Order ID",
	"Customer Name",
	"Email",
	"Phone",
	"Total Amount (₹)",
	"Status",
	"Event Date",
	"Event Location",
	"Items",
	"Created Date",
}

var productExportHeader = []string{
	"Product ID",
	"Name",
	"Category",
	"Price per Day (₹)",
	"Total Quantity",
	"Available Quantity",
	"Minimum Rental Days",
	"Deposit Amount (₹)",
	"Rating",
	"Reviews",
	"Status",
}

func (e *ExportService) ExportOrders(w io.Writer, orders []model.OrderModel) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(orderExportHeader); err != nil {
		return er.New(er.InternalErrorCode, fmt.Sprintf("write csv header failed: %s", err.Error()))
	}

	for _, order := range orders {
		phone := order.UserPhone
		if phone == "" {
			phone = "N/A"
		}
		eventDate := "N/A"
		if order.EventDate != nil {
			eventDate = order.EventDate.Format("2006-01-02")
		}

		record := []string{
			order.ShortID(),
			order.UserName,
			order.UserEmail,
			phone,
			order.TotalAmount.StringFixed(2),
			order.Status,
			eventDate,
			order.EventLocation,
			formatOrderItems(order.Items),
			order.CreatedAt.Format("2006-01-02"),
		}
		if err := cw.Write(record); err != nil {
			return er.New(er.InternalErrorCode, fmt.Sprintf("write csv record failed: %s", err.Error()))
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return er.New(er.InternalErrorCode, fmt.Sprintf("flush csv failed: %s", err.Error()))
	}
	return nil
}

func (e *ExportService) ExportProducts(w io.Writer, products []model.ProductModel) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(productExportHeader); err != nil {
		return er.New(er.InternalErrorCode, fmt.Sprintf("write csv header failed: %s", err.Error()))
	}

	for _, product := range products {
		status := "Available"
		if !product.IsAvailable || product.AvailableQuantity <= 0 {
			status = "Unavailable"
		}

		record := []string{
			product.ID,
			product.Name,
			product.Category,
			product.PricePerDay.StringFixed(2),
			strconv.Itoa(product.Quantity),
			strconv.Itoa(product.AvailableQuantity),
			strconv.Itoa(product.MinimumRentalDays),
			product.DepositAmount.StringFixed(2),
			strconv.FormatFloat(product.Rating, 'f', 1, 64),
			strconv.Itoa(len(product.Reviews)),
			status,
		}
		if err := cw.Write(record); err != nil {
			return er.New(er.InternalErrorCode, fmt.Sprintf("write csv record failed: %s", err.Error()))
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return er.New(er.InternalErrorCode, fmt.Sprintf("flush csv failed: %s", err.Error()))
	}
	return nil
}

// formatOrderItems 以 name (Nx) 形式串接明細
func formatOrderItems(items []model.OrderLineModel) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%s (%dx)", item.ProductName, item.Quantity))
	}
	return strings.Join(parts, "; ")
}
