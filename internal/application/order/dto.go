package order

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/onlinebookstore/internal/domain/order"
)

// OrderResponse 订单DTO
type OrderResponse struct {
	ID              uint                `json:"id"`
	OrderNo         string              `json:"order_no"`
	UserID          uint                `json:"user_id"`
	Status          string              `json:"status"`
	Total           decimal.Decimal     `json:"total"`
	OrderDate       time.Time           `json:"order_date"`
	ShippingAddress string              `json:"shipping_address"`
	Items           []OrderItemResponse `json:"items"`
}

// OrderItemResponse 订单明细DTO
type OrderItemResponse struct {
	ID        uint            `json:"id"`
	BookID    uint            `json:"book_id"`
	BookTitle string          `json:"book_title"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

func toOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, toOrderItemResponse(item))
	}
	return OrderResponse{
		ID:              o.ID,
		OrderNo:         o.OrderNo,
		UserID:          o.UserID,
		Status:          string(o.Status),
		Total:           o.Total,
		OrderDate:       o.OrderDate,
		ShippingAddress: o.ShippingAddress,
		Items:           items,
	}
}

func toOrderItemResponse(item order.OrderItem) OrderItemResponse {
	return OrderItemResponse{
		ID:        item.ID,
		BookID:    item.BookID,
		BookTitle: item.BookTitle,
		Quantity:  item.Quantity,
		Price:     item.Price,
	}
}
