package book

import (
	"context"
)

// Repository 图书仓储接口
// 由domain层定义接口,infrastructure层实现(mysql/postgres/memory)
// 所有查询默认排除已软删除的图书
type Repository interface {
	// Create 创建图书(包含分类关联)
	Create(ctx context.Context, book *Book) error

	// FindByID 不存在或已删除返回ErrBookNotFound
	FindByID(ctx context.Context, id uint) (*Book, error)

	// FindByISBN 只在未删除的图书中查找
	FindByISBN(ctx context.Context, isbn string) (*Book, error)

	// LockByISBN 同FindByISBN,在事务中加锁读取,防止并发写入相同ISBN
	LockByISBN(ctx context.Context, isbn string) (*Book, error)

	// Update 更新图书,CategoryIDs整体替换
	Update(ctx context.Context, book *Book) error

	// Delete 软删除,不存在返回ErrBookNotFound
	Delete(ctx context.Context, id uint) error

	List(ctx context.Context, params ListParams) ([]*Book, int64, error)

	// Search 按字段做成员匹配(field IN values),多个字段之间为AND
	// params需已经过Normalize
	Search(ctx context.Context, params SearchParams, page ListParams) ([]*Book, int64, error)

	ListByCategory(ctx context.Context, categoryID uint, params ListParams) ([]*Book, int64, error)
}

// 排序方式
const (
	SortCreatedAtDesc = "created_at_desc"
	SortPriceAsc      = "price_asc"
	SortPriceDesc     = "price_desc"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ListParams 分页与排序参数
type ListParams struct {
	Page     int    // 页码(从1开始)
	PageSize int    // 每页数量
	SortBy   string // price_asc, price_desc, created_at_desc
}

// Normalize 补全默认值:page从1开始,pageSize默认20最大100,未知排序使用created_at_desc
func (p ListParams) Normalize() ListParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	switch p.SortBy {
	case SortPriceAsc, SortPriceDesc, SortCreatedAtDesc:
	default:
		p.SortBy = SortCreatedAtDesc
	}
	return p
}

// Offset 分页偏移量
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}
