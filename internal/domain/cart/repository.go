package cart

import (
	"context"
)

// Repository 购物车仓储接口
// 读取购物车时同时加载条目,并带出图书的标题和当前价格
type Repository interface {
	// Create 创建购物车,同一用户重复创建返回错误
	Create(ctx context.Context, cart *Cart) error

	// FindByUserID 不存在返回ErrCartNotFound
	FindByUserID(ctx context.Context, userID uint) (*Cart, error)

	// LockByUserID 锁定购物车行(SELECT ... FOR UPDATE)后加载条目
	// 必须在事务中调用,并发下单时第二个请求会在这里等待
	LockByUserID(ctx context.Context, userID uint) (*Cart, error)

	// AddItem 添加图书,已存在则累加数量(不会产生第二条记录)
	AddItem(ctx context.Context, cartID, bookID uint, quantity int) error

	// UpdateItemQuantity 条目不属于该购物车返回ErrCartItemNotFound
	UpdateItemQuantity(ctx context.Context, cartID, itemID uint, quantity int) error

	// RemoveItem 条目不属于该购物车返回ErrCartItemNotFound
	RemoveItem(ctx context.Context, cartID, itemID uint) error

	// ClearItems 删除所有条目,保留购物车本身
	ClearItems(ctx context.Context, cartID uint) error
}
