package handler

import (
	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/onlinebookstore/internal/application/book"
	appcategory "github.com/xiebiao/onlinebookstore/internal/application/category"
	"github.com/xiebiao/onlinebookstore/internal/domain/category"
	"github.com/xiebiao/onlinebookstore/internal/interface/http/dto"
	"github.com/xiebiao/onlinebookstore/pkg/response"
)

// CategoryHandler 分类HTTP处理器
type CategoryHandler struct {
	createUseCase *appcategory.CreateCategoryUseCase
	getUseCase    *appcategory.GetCategoryUseCase
	listUseCase   *appcategory.ListCategoriesUseCase
	updateUseCase *appcategory.UpdateCategoryUseCase
	deleteUseCase *appcategory.DeleteCategoryUseCase
	booksUseCase  *appbook.ListBooksByCategoryUseCase
}

// NewCategoryHandler 创建分类处理器
func NewCategoryHandler(
	createUseCase *appcategory.CreateCategoryUseCase,
	getUseCase *appcategory.GetCategoryUseCase,
	listUseCase *appcategory.ListCategoriesUseCase,
	updateUseCase *appcategory.UpdateCategoryUseCase,
	deleteUseCase *appcategory.DeleteCategoryUseCase,
	booksUseCase *appbook.ListBooksByCategoryUseCase,
) *CategoryHandler {
	return &CategoryHandler{
		createUseCase: createUseCase,
		getUseCase:    getUseCase,
		listUseCase:   listUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
		booksUseCase:  booksUseCase,
	}
}

// CreateCategory 新增分类
// @Summary      新增分类
// @Tags         分类
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateCategoryRequest true "分类信息"
// @Success      201 {object} response.Response{data=appcategory.CategoryResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      403 {object} response.Response "需要ADMIN角色"
// @Router       /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.createUseCase.Execute(c.Request.Context(), appcategory.CreateCategoryRequest{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// ListCategories 分类列表
// @Summary      分类列表
// @Tags         分类
// @Produce      json
// @Param        page      query int false "页码"
// @Param        page_size query int false "每页数量"
// @Success      200 {object} response.Response{data=response.PageData{list=[]appcategory.CategoryResponse}}
// @Router       /categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	page, err := h.listUseCase.Execute(c.Request.Context(), q.Page, q.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, page.List, page.Total, page.Page, page.PageSize)
}

// GetCategory 分类详情
// @Summary      分类详情
// @Tags         分类
// @Produce      json
// @Param        id path int true "分类ID"
// @Success      200 {object} response.Response{data=appcategory.CategoryResponse}
// @Failure      404 {object} response.Response "分类不存在"
// @Router       /categories/{id} [get]
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.getUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// UpdateCategory 部分更新分类
// @Summary      更新分类
// @Tags         分类
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                       true "分类ID"
// @Param        request body dto.UpdateCategoryRequest true "要更新的字段"
// @Success      200 {object} response.Response{data=appcategory.CategoryResponse}
// @Failure      404 {object} response.Response "分类不存在"
// @Router       /categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.updateUseCase.Execute(c.Request.Context(), id, category.Patch{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// DeleteCategory 删除分类(软删除)
// @Summary      删除分类
// @Tags         分类
// @Security     BearerAuth
// @Param        id path int true "分类ID"
// @Success      204
// @Failure      404 {object} response.Response "分类不存在"
// @Router       /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.deleteUseCase.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListBooks 分类下的图书
// @Summary      分类下的图书
// @Tags         分类
// @Produce      json
// @Param        id        path  int    true  "分类ID"
// @Param        page      query int    false "页码"
// @Param        page_size query int    false "每页数量"
// @Param        sort_by   query string false "排序" Enums(price_asc, price_desc, created_at_desc)
// @Success      200 {object} response.Response{data=response.PageData{list=[]appbook.BookListItem}}
// @Failure      404 {object} response.Response "分类不存在"
// @Router       /categories/{id}/books [get]
func (h *CategoryHandler) ListBooks(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var q dto.BookListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	page, err := h.booksUseCase.Execute(c.Request.Context(), id, listRequest(q))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, page.List, page.Total, page.Page, page.PageSize)
}
