package order

import (
	"context"
	"log/slog"

	"github.com/xiebiao/onlinebookstore/internal/application"
	"github.com/xiebiao/onlinebookstore/internal/domain/order"
	"github.com/xiebiao/onlinebookstore/pkg/logger"
	"github.com/xiebiao/onlinebookstore/pkg/metrics"
)

// Viewer 当前访问者
type Viewer struct {
	UserID  uint
	IsAdmin bool
}

// canView 只有下单用户和管理员可以查看
func (v Viewer) canView(o *order.Order) bool {
	return v.IsAdmin || o.IsOwnedBy(v.UserID)
}

// ListOrdersUseCase 当前用户的订单列表,按下单时间倒序
type ListOrdersUseCase struct {
	orderRepo order.Repository
}

func NewListOrdersUseCase(orderRepo order.Repository) *ListOrdersUseCase {
	return &ListOrdersUseCase{orderRepo: orderRepo}
}

// Execute page默认1,pageSize默认20最大100
func (uc *ListOrdersUseCase) Execute(ctx context.Context, userID uint, page, pageSize int) (*application.Page[OrderResponse], error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	orders, total, err := uc.orderRepo.ListByUserID(ctx, userID, page, pageSize)
	if err != nil {
		return nil, err
	}
	return application.NewPage(orders, total, page, pageSize, toOrderResponse), nil
}

// UpdateOrderStatusUseCase 修改订单状态(管理员)
type UpdateOrderStatusUseCase struct {
	tx        application.Transactor
	orderRepo order.Repository
}

func NewUpdateOrderStatusUseCase(tx application.Transactor, orderRepo order.Repository) *UpdateOrderStatusUseCase {
	return &UpdateOrderStatusUseCase{tx: tx, orderRepo: orderRepo}
}

// Execute 未知状态返回400,订单不存在返回404,非法流转返回409
func (uc *UpdateOrderStatusUseCase) Execute(ctx context.Context, orderID uint, status string) (*OrderResponse, error) {
	target, err := order.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	var updated *order.Order
	var from order.Status
	err = uc.tx.Transaction(ctx, func(txCtx context.Context) error {
		o, err := uc.orderRepo.FindByID(txCtx, orderID)
		if err != nil {
			return err
		}
		from = o.Status
		if err := o.TransitionTo(target); err != nil {
			return err
		}
		if err := uc.orderRepo.UpdateStatus(txCtx, o.ID, o.Status); err != nil {
			return err
		}
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.IncOrderStatusChange(string(target))
	logger.FromContext(ctx).Info("order status changed",
		slog.Uint64("order_id", uint64(orderID)),
		slog.String("from", string(from)),
		slog.String("to", string(target)),
	)

	resp := toOrderResponse(updated)
	return &resp, nil
}

// GetOrderItemsUseCase 查询订单的全部明细
type GetOrderItemsUseCase struct {
	orderRepo order.Repository
}

func NewGetOrderItemsUseCase(orderRepo order.Repository) *GetOrderItemsUseCase {
	return &GetOrderItemsUseCase{orderRepo: orderRepo}
}

// Execute 非本人且非管理员返回404,不暴露订单是否存在
func (uc *GetOrderItemsUseCase) Execute(ctx context.Context, viewer Viewer, orderID uint) ([]OrderItemResponse, error) {
	o, err := findVisibleOrder(ctx, uc.orderRepo, viewer, orderID)
	if err != nil {
		return nil, err
	}

	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, toOrderItemResponse(item))
	}
	return items, nil
}

// GetOrderItemUseCase 查询订单中的单条明细
type GetOrderItemUseCase struct {
	orderRepo order.Repository
}

func NewGetOrderItemUseCase(orderRepo order.Repository) *GetOrderItemUseCase {
	return &GetOrderItemUseCase{orderRepo: orderRepo}
}

// Execute 明细不属于该订单返回ErrOrderItemNotFound
func (uc *GetOrderItemUseCase) Execute(ctx context.Context, viewer Viewer, orderID, itemID uint) (*OrderItemResponse, error) {
	o, err := findVisibleOrder(ctx, uc.orderRepo, viewer, orderID)
	if err != nil {
		return nil, err
	}

	item, err := o.FindItem(itemID)
	if err != nil {
		return nil, err
	}
	resp := toOrderItemResponse(*item)
	return &resp, nil
}

func findVisibleOrder(ctx context.Context, repo order.Repository, viewer Viewer, orderID uint) (*order.Order, error) {
	o, err := repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !viewer.canView(o) {
		return nil, order.ErrOrderNotFound
	}
	return o, nil
}
