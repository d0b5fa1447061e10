package category

import (
	"context"
	"log/slog"
	"time"

	"github.com/xiebiao/onlinebookstore/internal/application"
	"github.com/xiebiao/onlinebookstore/internal/domain/category"
	"github.com/xiebiao/onlinebookstore/pkg/logger"
)

// CategoryResponse 分类DTO
type CategoryResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toResponse(c *category.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// CreateCategoryUseCase 新增分类(管理员)
type CreateCategoryUseCase struct {
	repo category.Repository
}

func NewCreateCategoryUseCase(repo category.Repository) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{repo: repo}
}

// CreateCategoryRequest 新增分类请求
type CreateCategoryRequest struct {
	Name        string
	Description string
}

func (uc *CreateCategoryUseCase) Execute(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	c, err := category.NewCategory(req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("category created", slog.Uint64("category_id", uint64(c.ID)))
	resp := toResponse(c)
	return &resp, nil
}

// GetCategoryUseCase 查询分类
type GetCategoryUseCase struct {
	repo category.Repository
}

func NewGetCategoryUseCase(repo category.Repository) *GetCategoryUseCase {
	return &GetCategoryUseCase{repo: repo}
}

func (uc *GetCategoryUseCase) Execute(ctx context.Context, id uint) (*CategoryResponse, error) {
	c, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toResponse(c)
	return &resp, nil
}

// ListCategoriesUseCase 分类列表
type ListCategoriesUseCase struct {
	repo category.Repository
}

func NewListCategoriesUseCase(repo category.Repository) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{repo: repo}
}

// Execute page默认1,pageSize默认20最大100
func (uc *ListCategoriesUseCase) Execute(ctx context.Context, page, pageSize int) (*application.Page[CategoryResponse], error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	categories, total, err := uc.repo.List(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}
	return application.NewPage(categories, total, page, pageSize, toResponse), nil
}

// UpdateCategoryUseCase 部分更新分类(管理员)
type UpdateCategoryUseCase struct {
	repo category.Repository
}

func NewUpdateCategoryUseCase(repo category.Repository) *UpdateCategoryUseCase {
	return &UpdateCategoryUseCase{repo: repo}
}

func (uc *UpdateCategoryUseCase) Execute(ctx context.Context, id uint, patch category.Patch) (*CategoryResponse, error) {
	c, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.ApplyPatch(patch); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	resp := toResponse(c)
	return &resp, nil
}

// DeleteCategoryUseCase 软删除分类(管理员)
// 图书与分类的关联保留,分类删除后不再出现在查询中
type DeleteCategoryUseCase struct {
	repo category.Repository
}

func NewDeleteCategoryUseCase(repo category.Repository) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{repo: repo}
}

func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, id uint) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("category deleted", slog.Uint64("category_id", uint64(id)))
	return nil
}
