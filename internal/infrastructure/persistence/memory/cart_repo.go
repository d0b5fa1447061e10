package memory

import (
	"context"
	"sort"

	"github.com/xiebiao/onlinebookstore/internal/domain/cart"
	apperrors "github.com/xiebiao/onlinebookstore/pkg/errors"
)

type cartRepository struct {
	s *Store
}

// NewCartRepository 创建购物车仓储
func NewCartRepository(s *Store) cart.Repository {
	return &cartRepository{s: s}
}

// Create 每个用户只能有一个购物车
func (r *cartRepository) Create(ctx context.Context, c *cart.Cart) error {
	return r.s.write(ctx, func(t *tables) error {
		for _, row := range t.carts {
			if row.UserID == c.UserID {
				return apperrors.ErrDuplicateEntry
			}
		}

		now := r.s.now()
		t.seq.cart++
		c.ID = t.seq.cart
		c.CreatedAt = now
		c.UpdatedAt = now
		t.carts[c.ID] = cartRow{ID: c.ID, UserID: c.UserID, CreatedAt: now, UpdatedAt: now}
		return nil
	})
}

func (r *cartRepository) FindByUserID(ctx context.Context, userID uint) (*cart.Cart, error) {
	var found *cart.Cart
	err := r.s.read(ctx, func(t *tables) error {
		var err error
		found, err = t.cartOf(userID)
		return err
	})
	return found, err
}

// LockByUserID 事务已持有整个Store的写锁,这里等同于读取
func (r *cartRepository) LockByUserID(ctx context.Context, userID uint) (*cart.Cart, error) {
	var found *cart.Cart
	err := r.s.write(ctx, func(t *tables) error {
		var err error
		found, err = t.cartOf(userID)
		return err
	})
	return found, err
}

// AddItem (cart_id, book_id)已存在则累加数量
func (r *cartRepository) AddItem(ctx context.Context, cartID, bookID uint, quantity int) error {
	return r.s.write(ctx, func(t *tables) error {
		if _, ok := t.carts[cartID]; !ok {
			return cart.ErrCartNotFound
		}
		for id, item := range t.cartItems {
			if item.CartID == cartID && item.BookID == bookID {
				item.Quantity += quantity
				t.cartItems[id] = item
				return nil
			}
		}
		t.seq.cartItem++
		t.cartItems[t.seq.cartItem] = cartItemRow{
			ID:       t.seq.cartItem,
			CartID:   cartID,
			BookID:   bookID,
			Quantity: quantity,
		}
		return nil
	})
}

func (r *cartRepository) UpdateItemQuantity(ctx context.Context, cartID, itemID uint, quantity int) error {
	return r.s.write(ctx, func(t *tables) error {
		item, ok := t.cartItems[itemID]
		if !ok || item.CartID != cartID {
			return cart.ErrCartItemNotFound
		}
		item.Quantity = quantity
		t.cartItems[itemID] = item
		return nil
	})
}

func (r *cartRepository) RemoveItem(ctx context.Context, cartID, itemID uint) error {
	return r.s.write(ctx, func(t *tables) error {
		item, ok := t.cartItems[itemID]
		if !ok || item.CartID != cartID {
			return cart.ErrCartItemNotFound
		}
		delete(t.cartItems, itemID)
		return nil
	})
}

func (r *cartRepository) ClearItems(ctx context.Context, cartID uint) error {
	return r.s.write(ctx, func(t *tables) error {
		for id, item := range t.cartItems {
			if item.CartID == cartID {
				delete(t.cartItems, id)
			}
		}
		return nil
	})
}

// cartOf 组装购物车,条目带出图书标题和当前价格
func (t *tables) cartOf(userID uint) (*cart.Cart, error) {
	var (
		row   cartRow
		found bool
	)
	for _, c := range t.carts {
		if c.UserID == userID {
			row, found = c, true
			break
		}
	}
	if !found {
		return nil, cart.ErrCartNotFound
	}

	c := &cart.Cart{
		ID:        row.ID,
		UserID:    row.UserID,
		Items:     []cart.CartItem{},
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	for _, item := range t.cartItems {
		if item.CartID != row.ID {
			continue
		}
		// 图书已删除的条目不可见
		b, ok := t.books[item.BookID]
		if !ok || b.deleted {
			continue
		}
		c.Items = append(c.Items, cart.CartItem{
			ID:        item.ID,
			CartID:    item.CartID,
			BookID:    item.BookID,
			BookTitle: b.Title,
			Price:     b.Price,
			Quantity:  item.Quantity,
		})
	}
	sort.Slice(c.Items, func(i, j int) bool { return c.Items[i].ID < c.Items[j].ID })
	return c, nil
}
