package book

import (
	"fmt"
	"strings"
)

// SpecProvider 根据候选值生成某个字段的查询条件
type SpecProvider[P any] func(values []string) P

// SpecificationBuilder 把SearchParams组合成一个查询条件
//
// P是具体存储的条件类型:
//   - GORM实现:func(*gorm.DB) *gorm.DB(Scope)
//   - 内存实现:func(*Book) bool
//
// Provider在仓储构造时一次性注册,之后只读,Build可以并发调用。
type SpecificationBuilder[P any] struct {
	all       P
	and       func(a, b P) P
	providers map[string]SpecProvider[P]
}

// NewSpecificationBuilder all是匹配全部的条件,and组合两个条件
func NewSpecificationBuilder[P any](all P, and func(a, b P) P) *SpecificationBuilder[P] {
	return &SpecificationBuilder[P]{
		all:       all,
		and:       and,
		providers: make(map[string]SpecProvider[P]),
	}
}

// Register 注册字段的Provider,字段名为空、provider为nil或重复注册都返回错误
func (b *SpecificationBuilder[P]) Register(field string, provider SpecProvider[P]) error {
	field = strings.TrimSpace(field)
	if field == "" {
		return fmt.Errorf("%w: 字段名为空", ErrInvalidSpecProvider)
	}
	if provider == nil {
		return fmt.Errorf("%w: %s的provider为nil", ErrInvalidSpecProvider, field)
	}
	if _, ok := b.providers[field]; ok {
		return fmt.Errorf("%w: %s重复注册", ErrInvalidSpecProvider, field)
	}
	b.providers[field] = provider
	return nil
}

// Require 检查字段都已注册(启动时校验)
func (b *SpecificationBuilder[P]) Require(fields ...string) error {
	for _, f := range fields {
		if _, ok := b.providers[f]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownSearchField, f)
		}
	}
	return nil
}

// Build 生成组合条件
// 1. 先Normalize参数
// 2. 按字段名排序后依次AND,保证生成的条件稳定
// 3. 没有条件时返回all
func (b *SpecificationBuilder[P]) Build(params SearchParams) (P, error) {
	params = params.Normalize()

	spec := b.all
	for _, field := range params.Fields() {
		provider, ok := b.providers[field]
		if !ok {
			var zero P
			return zero, fmt.Errorf("%w: %s", ErrUnknownSearchField, field)
		}
		spec = b.and(spec, provider(params[field]))
	}
	return spec, nil
}
