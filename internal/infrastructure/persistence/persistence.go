// Package persistence 按database.driver组装仓储
package persistence

import (
	"fmt"
	"log/slog"

	"github.com/xiebiao/onlinebookstore/internal/application"
	"github.com/xiebiao/onlinebookstore/internal/domain/book"
	"github.com/xiebiao/onlinebookstore/internal/domain/cart"
	"github.com/xiebiao/onlinebookstore/internal/domain/category"
	"github.com/xiebiao/onlinebookstore/internal/domain/order"
	"github.com/xiebiao/onlinebookstore/internal/domain/user"
	"github.com/xiebiao/onlinebookstore/internal/infrastructure/config"
	"github.com/xiebiao/onlinebookstore/internal/infrastructure/persistence/memory"
	"github.com/xiebiao/onlinebookstore/internal/infrastructure/persistence/mysql"
)

// Repositories 所有仓储和事务管理器
type Repositories struct {
	Tx         application.Transactor
	Books      book.Repository
	Categories category.Repository
	Users      user.Repository
	Carts      cart.Repository
	Orders     order.Repository

	close func() error
}

// Close 释放数据库连接
func (r *Repositories) Close() error {
	if r.close == nil {
		return nil
	}
	return r.close()
}

// NewRepositories mysql/postgres使用GORM,memory使用内存存储
func NewRepositories(cfg *config.Config) (*Repositories, error) {
	switch cfg.Database.Driver {
	case config.DriverMemory:
		slog.Warn("using in-memory storage, data will be lost on restart")
		return NewMemoryRepositories()
	case config.DriverMySQL, config.DriverPostgres:
		return newGormRepositories(cfg)
	default:
		return nil, fmt.Errorf("不支持的数据库驱动: %s", cfg.Database.Driver)
	}
}

// NewMemoryRepositories 内存仓储
func NewMemoryRepositories() (*Repositories, error) {
	store := memory.NewStore()
	books, err := memory.NewBookRepository(store)
	if err != nil {
		return nil, err
	}
	return &Repositories{
		Tx:         store,
		Books:      books,
		Categories: memory.NewCategoryRepository(store),
		Users:      memory.NewUserRepository(store),
		Carts:      memory.NewCartRepository(store),
		Orders:     memory.NewOrderRepository(store),
	}, nil
}

func newGormRepositories(cfg *config.Config) (*Repositories, error) {
	db, err := mysql.NewDB(cfg)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	books, err := mysql.NewBookRepository(db)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return &Repositories{
		Tx:         mysql.NewTxManager(db),
		Books:      books,
		Categories: mysql.NewCategoryRepository(db),
		Users:      mysql.NewUserRepository(db),
		Carts:      mysql.NewCartRepository(db),
		Orders:     mysql.NewOrderRepository(db),
		close:      sqlDB.Close,
	}, nil
}
