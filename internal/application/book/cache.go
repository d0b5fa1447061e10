package book

import (
	"context"

	"github.com/xiebiao/onlinebookstore/internal/domain/book"
)

// Cache 图书详情缓存(Cache-Aside)
// 读:先查缓存,未命中查库后回填;写:先更新数据库,再删除缓存
type Cache interface {
	// Get 未命中返回(nil, false, nil)
	Get(ctx context.Context, id uint) (*book.Book, bool, error)
	Set(ctx context.Context, b *book.Book) error
	Delete(ctx context.Context, id uint) error
}

// NoopCache 不缓存
type NoopCache struct{}

func (NoopCache) Get(context.Context, uint) (*book.Book, bool, error) { return nil, false, nil }
func (NoopCache) Set(context.Context, *book.Book) error { return nil }
func (NoopCache) Delete(context.Context, uint) error { return nil }
