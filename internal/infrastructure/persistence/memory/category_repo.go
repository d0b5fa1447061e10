package memory

import (
	"context"
	"sort"

	"github.com/xiebiao/onlinebookstore/internal/domain/category"
)

type categoryRepository struct {
	s *Store
}

// NewCategoryRepository 创建分类仓储
func NewCategoryRepository(s *Store) category.Repository {
	return &categoryRepository{s: s}
}

func (r *categoryRepository) Create(ctx context.Context, c *category.Category) error {
	return r.s.write(ctx, func(t *tables) error {
		now := r.s.now()
		t.seq.category++
		c.ID = t.seq.category
		c.CreatedAt = now
		c.UpdatedAt = now
		t.categories[c.ID] = categoryRow{Category: *c}
		return nil
	})
}

func (r *categoryRepository) FindByID(ctx context.Context, id uint) (*category.Category, error) {
	var found *category.Category
	err := r.s.read(ctx, func(t *tables) error {
		row, ok := t.categories[id]
		if !ok || row.deleted {
			return category.ErrCategoryNotFound
		}
		c := row.Category
		found = &c
		return nil
	})
	return found, err
}

func (r *categoryRepository) FindByIDs(ctx context.Context, ids []uint) ([]*category.Category, error) {
	list := []*category.Category{}
	err := r.s.read(ctx, func(t *tables) error {
		seen := make(map[uint]bool, len(ids))
		for _, id := range ids {
			row, ok := t.categories[id]
			if !ok || row.deleted || seen[id] {
				continue
			}
			seen[id] = true
			c := row.Category
			list = append(list, &c)
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, err
}

func (r *categoryRepository) Update(ctx context.Context, c *category.Category) error {
	return r.s.write(ctx, func(t *tables) error {
		row, ok := t.categories[c.ID]
		if !ok || row.deleted {
			return category.ErrCategoryNotFound
		}
		c.CreatedAt = row.CreatedAt
		c.UpdatedAt = r.s.now()
		row.Category = *c
		t.categories[c.ID] = row
		return nil
	})
}

func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	return r.s.write(ctx, func(t *tables) error {
		row, ok := t.categories[id]
		if !ok || row.deleted {
			return category.ErrCategoryNotFound
		}
		row.deleted = true
		t.categories[id] = row
		return nil
	})
}

func (r *categoryRepository) List(ctx context.Context, page, pageSize int) ([]*category.Category, int64, error) {
	var list []*category.Category
	err := r.s.read(ctx, func(t *tables) error {
		for _, row := range t.categories {
			if row.deleted {
				continue
			}
			c := row.Category
			list = append(list, &c)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return paginate(list, page, pageSize), int64(len(list)), nil
}
