package category

import (
	"context"
)

// Repository 分类仓储接口,查询排除已软删除的分类
type Repository interface {
	Create(ctx context.Context, category *Category) error

	// FindByID 不存在返回ErrCategoryNotFound
	FindByID(ctx context.Context, id uint) (*Category, error)

	// FindByIDs 批量查询,只返回存在的分类
	FindByIDs(ctx context.Context, ids []uint) ([]*Category, error)

	Update(ctx context.Context, category *Category) error

	// Delete 软删除,不存在返回ErrCategoryNotFound
	Delete(ctx context.Context, id uint) error

	// List 按ID升序分页
	List(ctx context.Context, page, pageSize int) ([]*Category, int64, error)
}
