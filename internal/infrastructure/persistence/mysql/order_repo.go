package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/onlinebookstore/internal/domain/order"
	apperrors "github.com/xiebiao/onlinebookstore/pkg/errors"
)

// orderRepository 订单仓储实现
// 1. Order和OrderItem是聚合关系,必须一起保存
// 2. 明细批量加载并JOIN books带出书名,避免N+1查询
// 3. 事务通过context传递
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepository{db: db}
}

// Create 创建订单,GORM会级联写入Items
// 必须在事务中调用(和清空购物车一起提交)
func (r *orderRepository) Create(ctx context.Context, o *order.Order) error {
	model := toOrderModel(o)

	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建订单失败")
	}

	o.ID = model.ID
	o.CreatedAt = model.CreatedAt
	o.UpdatedAt = model.UpdatedAt
	for i := range o.Items {
		o.Items[i].ID = model.Items[i].ID
		o.Items[i].OrderID = model.ID
	}
	return nil
}

// FindByID 根据ID查找订单(包含明细)
func (r *orderRepository) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	db := conn(ctx, r.db)

	var model OrderModel
	if err := db.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "查询订单失败")
	}

	orders := []OrderModel{model}
	if err := r.loadItems(db, orders); err != nil {
		return nil, err
	}
	return toOrderEntity(&orders[0]), nil
}

// UpdateStatus 更新订单状态
// 状态流转在domain层校验,这里只负责写入
func (r *orderRepository) UpdateStatus(ctx context.Context, id uint, status order.Status) error {
	result := conn(ctx, r.db).Model(&OrderModel{}).Where("id = ?", id).Update("status", string(status))
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新订单状态失败")
	}
	if result.RowsAffected == 0 {
		return order.ErrOrderNotFound
	}
	return nil
}

// ListByUserID 用户订单列表,按下单时间倒序
func (r *orderRepository) ListByUserID(ctx context.Context, userID uint, page, pageSize int) ([]*order.Order, int64, error) {
	db := conn(ctx, r.db)
	query := db.Model(&OrderModel{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询订单总数失败")
	}

	var models []OrderModel
	err := query.Order("order_date DESC, id DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询订单列表失败")
	}

	if err := r.loadItems(db, models); err != nil {
		return nil, 0, err
	}

	orders := make([]*order.Order, len(models))
	for i := range models {
		orders[i] = toOrderEntity(&models[i])
	}
	return orders, total, nil
}

// loadItems 一次查询加载多个订单的明细
//
//	SELECT order_items.*, books.title AS book_title FROM order_items
//	LEFT JOIN books ON books.id = order_items.book_id
//	WHERE order_items.order_id IN (?)
func (r *orderRepository) loadItems(db *gorm.DB, orders []OrderModel) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]uint, len(orders))
	index := make(map[uint]int, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		index[o.ID] = i
	}

	var items []OrderItemModel
	err := db.Session(&gorm.Session{NewDB: true}).
		Model(&OrderItemModel{}).
		Select("order_items.*, books.title AS book_title").
		Joins("LEFT JOIN books ON books.id = order_items.book_id").
		Where("order_items.order_id IN ?", ids).
		Order("order_items.id ASC").
		Find(&items).Error
	if err != nil {
		return apperrors.Wrap(err, "查询订单明细失败")
	}

	for _, it := range items {
		i := index[it.OrderID]
		orders[i].Items = append(orders[i].Items, it)
	}
	return nil
}

func toOrderModel(o *order.Order) *OrderModel {
	items := make([]OrderItemModel, len(o.Items))
	for i, it := range o.Items {
		items[i] = OrderItemModel{
			BookID:   it.BookID,
			Quantity: it.Quantity,
			Price:    it.Price,
		}
	}
	return &OrderModel{
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

func toOrderEntity(model *OrderModel) *order.Order {
	items := make([]order.OrderItem, len(model.Items))
	for i, it := range model.Items {
		items[i] = order.OrderItem{
			ID:        it.ID,
			OrderID:   it.OrderID,
			BookID:    it.BookID,
			BookTitle: it.BookTitle,
			Quantity:  it.Quantity,
			Price:     it.Price,
		}
	}
	return &order.Order{
		ID:              model.ID,
		OrderNo:         model.OrderNo,
		UserID:          model.UserID,
		Status:          order.Status(model.Status),
		Total:           model.Total,
		OrderDate:       model.OrderDate,
		ShippingAddress: model.ShippingAddress,
		Items:           items,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
}
