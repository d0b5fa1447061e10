package category

import (
	"strings"
	"time"
)

// Category 图书分类
type Category struct {
	ID          uint
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCategory 创建分类,名称不能为空
func NewCategory(name, description string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	now := time.Now()
	return &Category{
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Patch 部分更新,nil表示未提供
type Patch struct {
	Name        *string
	Description *string
}

// ApplyPatch 合并Patch
func (c *Category) ApplyPatch(p Patch) error {
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return ErrInvalidName
		}
		c.Name = name
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	c.UpdatedAt = time.Now()
	return nil
}
