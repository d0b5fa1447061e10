// Package memory 内存存储,实现全部仓储接口
//
// 用于本地开发(database.driver=memory)和端到端测试。
// 所有数据在一把读写锁下;事务持有写锁直到结束,失败时恢复到事务开始前的快照。
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/xiebiao/onlinebookstore/internal/domain/book"
	"github.com/xiebiao/onlinebookstore/internal/domain/category"
	"github.com/xiebiao/onlinebookstore/internal/domain/order"
	"github.com/xiebiao/onlinebookstore/internal/domain/user"
)

type txKey struct{}

type bookRow struct {
	book.Book
	deleted bool
}

type categoryRow struct {
	category.Category
	deleted bool
}

type cartRow struct {
	ID        uint
	UserID    uint
	CreatedAt time.Time
	UpdatedAt time.Time
}

type cartItemRow struct {
	ID       uint
	CartID   uint
	BookID   uint
	Quantity int
}

// sequences 各表的自增ID
type sequences struct {
	user, category, book, cart, cartItem, order, orderItem uint
}

type tables struct {
	seq        sequences
	users      map[uint]user.User
	categories map[uint]categoryRow
	books      map[uint]bookRow
	carts      map[uint]cartRow
	cartItems  map[uint]cartItemRow
	orders     map[uint]order.Order
}

func newTables() *tables {
	return &tables{
		users:      make(map[uint]user.User),
		categories: make(map[uint]categoryRow),
		books:      make(map[uint]bookRow),
		carts:      make(map[uint]cartRow),
		cartItems:  make(map[uint]cartItemRow),
		orders:     make(map[uint]order.Order),
	}
}

// clone 深拷贝,作为事务回滚的快照
func (t *tables) clone() *tables {
	c := newTables()
	c.seq = t.seq
	for id, u := range t.users {
		u.Roles = append([]user.Role(nil), u.Roles...)
		c.users[id] = u
	}
	for id, r := range t.categories {
		c.categories[id] = r
	}
	for id, r := range t.books {
		r.CategoryIDs = append([]uint(nil), r.CategoryIDs...)
		c.books[id] = r
	}
	for id, r := range t.carts {
		c.carts[id] = r
	}
	for id, r := range t.cartItems {
		c.cartItems[id] = r
	}
	for id, o := range t.orders {
		o.Items = append([]order.OrderItem(nil), o.Items...)
		c.orders[id] = o
	}
	return c
}

// Store 内存数据库
type Store struct {
	mu  sync.RWMutex
	t   *tables
	now func() time.Time
}

// NewStore 创建空的内存数据库
func NewStore() *Store {
	return &Store{t: newTables(), now: time.Now}
}

// Transaction 实现application.Transactor
// 嵌套调用复用外层事务;fn返回error或panic时回滚
func (s *Store) Transaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.t.clone()
	defer func() {
		if p := recover(); p != nil {
			s.t = snapshot
			panic(p)
		}
		if err != nil {
			s.t = snapshot
		}
	}()
	return fn(context.WithValue(ctx, txKey{}, s))
}

func (s *Store) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(txKey{}).(*Store)
	return owner == s
}

// read 事务内已持有写锁,直接访问
func (s *Store) read(ctx context.Context, fn func(t *tables) error) error {
	if !s.inTx(ctx) {
		s.mu.RLock()
		defer s.mu.RUnlock()
	}
	return fn(s.t)
}

func (s *Store) write(ctx context.Context, fn func(t *tables) error) error {
	if !s.inTx(ctx) {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn(s.t)
}
