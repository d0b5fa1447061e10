package memory

import (
	"context"
	"sort"

	"github.com/xiebiao/onlinebookstore/internal/domain/order"
	apperrors "github.com/xiebiao/onlinebookstore/pkg/errors"
)

type orderRepository struct {
	s *Store
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(s *Store) order.Repository {
	return &orderRepository{s: s}
}

// Create 写入订单和明细,回填ID
func (r *orderRepository) Create(ctx context.Context, o *order.Order) error {
	return r.s.write(ctx, func(t *tables) error {
		for _, existing := range t.orders {
			if existing.OrderNo == o.OrderNo {
				return apperrors.ErrDuplicateEntry
			}
		}

		now := r.s.now()
		t.seq.order++
		o.ID = t.seq.order
		o.CreatedAt = now
		o.UpdatedAt = now
		for i := range o.Items {
			t.seq.orderItem++
			o.Items[i].ID = t.seq.orderItem
			o.Items[i].OrderID = o.ID
		}

		row := *o
		row.Items = append([]order.OrderItem(nil), o.Items...)
		t.orders[o.ID] = row
		return nil
	})
}

func (r *orderRepository) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	var found *order.Order
	err := r.s.read(ctx, func(t *tables) error {
		row, ok := t.orders[id]
		if !ok {
			return order.ErrOrderNotFound
		}
		found = t.orderEntity(row)
		return nil
	})
	return found, err
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uint, status order.Status) error {
	return r.s.write(ctx, func(t *tables) error {
		row, ok := t.orders[id]
		if !ok {
			return order.ErrOrderNotFound
		}
		row.Status = status
		row.UpdatedAt = r.s.now()
		t.orders[id] = row
		return nil
	})
}

// ListByUserID 按下单时间倒序
func (r *orderRepository) ListByUserID(ctx context.Context, userID uint, page, pageSize int) ([]*order.Order, int64, error) {
	var list []*order.Order
	err := r.s.read(ctx, func(t *tables) error {
		for _, row := range t.orders {
			if row.UserID == userID {
				list = append(list, t.orderEntity(row))
			}
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	sort.Slice(list, func(i, j int) bool {
		if !list[i].OrderDate.Equal(list[j].OrderDate) {
			return list[i].OrderDate.After(list[j].OrderDate)
		}
		return list[i].ID > list[j].ID
	})
	return paginate(list, page, pageSize), int64(len(list)), nil
}

// orderEntity 返回副本,明细的书名从图书读取
func (t *tables) orderEntity(row order.Order) *order.Order {
	o := row
	o.Items = make([]order.OrderItem, len(row.Items))
	for i, item := range row.Items {
		item.BookTitle = t.books[item.BookID].Title
		o.Items[i] = item
	}
	return &o
}
