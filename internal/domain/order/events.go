package order

import (
	"time"
)

// RoutingKeyOrderPlaced 下单成功事件的路由键
const RoutingKeyOrderPlaced = "order.placed"

// PlacedEvent 下单成功事件,事务提交后发布
type PlacedEvent struct {
	OrderID   uint      `json:"order_id"`
	OrderNo   string    `json:"order_no"`
	UserID    uint      `json:"user_id"`
	Total     string    `json:"total"`
	ItemCount int       `json:"item_count"`
	PlacedAt  time.Time `json:"placed_at"`
}

// NewPlacedEvent 由已持久化的订单生成事件
func NewPlacedEvent(o *Order) PlacedEvent {
	return PlacedEvent{
		OrderID:   o.ID,
		OrderNo:   o.OrderNo,
		UserID:    o.UserID,
		Total:     o.Total.StringFixed(2),
		ItemCount: len(o.Items),
		PlacedAt:  o.OrderDate,
	}
}
