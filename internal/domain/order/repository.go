package order

import (
	"context"
)

// Repository 订单仓储接口
// 事务通过context传递,Create需要和清空购物车在同一事务中
type Repository interface {
	// Create 创建订单,明细级联写入并回填ID
	Create(ctx context.Context, order *Order) error

	// FindByID 包含明细,不存在返回ErrOrderNotFound
	FindByID(ctx context.Context, id uint) (*Order, error)

	// UpdateStatus 只更新状态
	UpdateStatus(ctx context.Context, id uint, status Status) error

	// ListByUserID 按下单时间倒序分页,包含明细
	ListByUserID(ctx context.Context, userID uint, page, pageSize int) ([]*Order, int64, error)
}
