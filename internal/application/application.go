// Package application 用例编排层
//
// 每个用例一个结构体,对外只暴露Execute(ctx, req)。
// 用例依赖domain层的Repository接口以及本包定义的Transactor,
// 不依赖具体的数据库实现。
package application

import (
	"context"
)

// Transactor 事务执行器
// fn内通过ctx调用的Repository方法都在同一事务中执行,
// fn返回error时回滚,返回nil时提交。
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Page 分页结果
type Page[T any] struct {
	List     []T
	Total    int64
	Page     int
	PageSize int
}

// NewPage 转换分页结果中的元素
func NewPage[E any, T any](items []E, total int64, page, pageSize int, convert func(E) T) *Page[T] {
	list := make([]T, 0, len(items))
	for _, item := range items {
		list = append(list, convert(item))
	}
	return &Page[T]{
		List:     list,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
}
