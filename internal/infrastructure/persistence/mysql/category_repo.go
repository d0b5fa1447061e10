package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/onlinebookstore/internal/domain/category"
	apperrors "github.com/xiebiao/onlinebookstore/pkg/errors"
)

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓储
func NewCategoryRepository(db *gorm.DB) category.Repository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, c *category.Category) error {
	model := &CategoryModel{Name: c.Name, Description: c.Description}
	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建分类失败")
	}

	c.ID = model.ID
	c.CreatedAt = model.CreatedAt
	c.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *categoryRepository) FindByID(ctx context.Context, id uint) (*category.Category, error) {
	var model CategoryModel
	err := conn(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, category.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(err, "查询分类失败")
	}
	return toCategoryEntity(&model), nil
}

func (r *categoryRepository) FindByIDs(ctx context.Context, ids []uint) ([]*category.Category, error) {
	if len(ids) == 0 {
		return []*category.Category{}, nil
	}

	var models []CategoryModel
	if err := conn(ctx, r.db).Where("id IN ?", ids).Order("id").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询分类失败")
	}
	return toCategoryEntities(models), nil
}

func (r *categoryRepository) Update(ctx context.Context, c *category.Category) error {
	result := conn(ctx, r.db).Model(&CategoryModel{ID: c.ID}).Updates(map[string]interface{}{
		"name":        c.Name,
		"description": c.Description,
	})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新分类失败")
	}
	return nil
}

// Delete 软删除,图书关联保留,查询时被过滤
func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	result := conn(ctx, r.db).Delete(&CategoryModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除分类失败")
	}
	if result.RowsAffected == 0 {
		return category.ErrCategoryNotFound
	}
	return nil
}

func (r *categoryRepository) List(ctx context.Context, page, pageSize int) ([]*category.Category, int64, error) {
	query := conn(ctx, r.db).Model(&CategoryModel{})

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询分类总数失败")
	}

	var models []CategoryModel
	err := query.Order("id ASC").Limit(pageSize).Offset((page - 1) * pageSize).Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询分类列表失败")
	}
	return toCategoryEntities(models), total, nil
}

func toCategoryEntity(model *CategoryModel) *category.Category {
	return &category.Category{
		ID:          model.ID,
		Name:        model.Name,
		Description: model.Description,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

func toCategoryEntities(models []CategoryModel) []*category.Category {
	list := make([]*category.Category, len(models))
	for i := range models {
		list[i] = toCategoryEntity(&models[i])
	}
	return list
}
