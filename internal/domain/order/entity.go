package order

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/onlinebookstore/internal/domain/cart"
)

// Status 订单状态
type Status string

const (
	StatusPending    Status = "PENDING"    // 待处理
	StatusProcessing Status = "PROCESSING" // 处理中
	StatusShipped    Status = "SHIPPED"    // 已发货
	StatusDelivered  Status = "DELIVERED"  // 已送达
	StatusCompleted  Status = "COMPLETED"  // 已完成
	StatusCancelled  Status = "CANCELLED"  // 已取消
)

// transitions 合法的状态流转,COMPLETED和CANCELLED是终态
var transitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered},
	StatusDelivered:  {StatusCompleted},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// ParseStatus 解析状态(不区分大小写),未知状态返回ErrInvalidStatus
func ParseStatus(s string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := transitions[status]; !ok {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// IsTerminal 是否为终态
func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// Order 订单实体(聚合根)
// 1. Total冗余存储,下单时按明细计算
// 2. OrderItem.Price是下单时的价格快照,图书改价不影响历史订单
type Order struct {
	ID              uint
	OrderNo         string
	UserID          uint
	Status          Status
	Total           decimal.Decimal
	OrderDate       time.Time
	ShippingAddress string
	Items           []OrderItem
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// OrderItem 订单明细,只能通过Order访问
type OrderItem struct {
	ID        uint
	OrderID   uint
	BookID    uint
	BookTitle string // 读取时从图书关联得到
	Quantity  int
	Price     decimal.Decimal
}

// NewFromCart 由购物车生成订单
// 每个购物车条目生成一条明细并快照价格,合计金额用decimal精确计算。
// 购物车为空返回cart.ErrCartEmpty。
func NewFromCart(c *cart.Cart, shippingAddress string, now time.Time) (*Order, error) {
	if c == nil || c.IsEmpty() {
		return nil, cart.ErrCartEmpty
	}

	items := make([]OrderItem, 0, len(c.Items))
	for _, ci := range c.Items {
		if ci.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		items = append(items, OrderItem{
			BookID:    ci.BookID,
			BookTitle: ci.BookTitle,
			Quantity:  ci.Quantity,
			Price:     ci.Price,
		})
	}

	o := &Order{
		OrderNo:         GenerateOrderNo(),
		UserID:          c.UserID,
		Status:          StatusPending,
		OrderDate:       now,
		ShippingAddress: shippingAddress,
		Items:           items,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	o.Total = o.CalculateTotal()
	return o, nil
}

// CanTransitionTo 是否允许流转到目标状态
func (o *Order) CanTransitionTo(target Status) bool {
	for _, allowed := range transitions[o.Status] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo 状态流转,非法流转返回ErrInvalidStatusTransition
func (o *Order) TransitionTo(target Status) error {
	if !o.CanTransitionTo(target) {
		return ErrInvalidStatusTransition
	}
	o.Status = target
	o.UpdatedAt = time.Now()
	return nil
}

// CalculateTotal Σ price × quantity
func (o *Order) CalculateTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// FindItem 查找明细,不属于该订单返回ErrOrderItemNotFound
func (o *Order) FindItem(itemID uint) (*OrderItem, error) {
	for i := range o.Items {
		if o.Items[i].ID == itemID {
			return &o.Items[i], nil
		}
	}
	return nil, ErrOrderItemNotFound
}

// IsOwnedBy 订单是否属于指定用户
func (o *Order) IsOwnedBy(userID uint) bool {
	return o.UserID == userID
}
