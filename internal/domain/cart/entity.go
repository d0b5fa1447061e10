package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart 购物车(聚合根),每个用户一个
type Cart struct {
	ID        uint
	UserID    uint
	Items     []CartItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CartItem 购物车条目
// (CartID, BookID)唯一;BookTitle和Price读取时从图书关联得到,不持久化
type CartItem struct {
	ID        uint
	CartID    uint
	BookID    uint
	BookTitle string
	Price     decimal.Decimal
	Quantity  int
}

// NewCart 创建空购物车
func NewCart(userID uint) *Cart {
	now := time.Now()
	return &Cart{
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsEmpty 没有任何条目
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// FindItem 按条目ID查找,条目不属于该购物车返回ErrCartItemNotFound
func (c *Cart) FindItem(itemID uint) (*CartItem, error) {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return &c.Items[i], nil
		}
	}
	return nil, ErrCartItemNotFound
}

// Subtotal 单项小计
func (i CartItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Total 合计金额
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// ValidateQuantity 数量必须>=1
func ValidateQuantity(quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	return nil
}
