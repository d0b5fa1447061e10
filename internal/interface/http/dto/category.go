package dto

// CreateCategoryRequest 新增分类请求
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,notblank,max=100" example:"Programming"`
	Description string `json:"description" binding:"max=500"`
}

// UpdateCategoryRequest 部分更新
type UpdateCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,notblank,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
}
