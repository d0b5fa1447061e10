package handler

import (
	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/onlinebookstore/internal/application/book"
	"github.com/xiebiao/onlinebookstore/internal/domain/book"
	"github.com/xiebiao/onlinebookstore/internal/interface/http/dto"
	"github.com/xiebiao/onlinebookstore/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	createUseCase *appbook.CreateBookUseCase
	getUseCase    *appbook.GetBookUseCase
	updateUseCase *appbook.UpdateBookUseCase
	deleteUseCase *appbook.DeleteBookUseCase
	listUseCase   *appbook.ListBooksUseCase
	searchUseCase *appbook.SearchBooksUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	createUseCase *appbook.CreateBookUseCase,
	getUseCase *appbook.GetBookUseCase,
	updateUseCase *appbook.UpdateBookUseCase,
	deleteUseCase *appbook.DeleteBookUseCase,
	listUseCase *appbook.ListBooksUseCase,
	searchUseCase *appbook.SearchBooksUseCase,
) *BookHandler {
	return &BookHandler{
		createUseCase: createUseCase,
		getUseCase:    getUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
		listUseCase:   listUseCase,
		searchUseCase: searchUseCase,
	}
}

// CreateBook 新增图书
// @Summary      新增图书
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateBookRequest true "图书信息"
// @Success      201 {object} response.Response{data=appbook.BookResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      403 {object} response.Response "需要ADMIN角色"
// @Failure      404 {object} response.Response "分类不存在"
// @Failure      409 {object} response.Response "ISBN已存在"
// @Router       /books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.createUseCase.Execute(c.Request.Context(), appbook.CreateBookRequest{
		Title:       req.Title,
		Author:      req.Author,
		ISBN:        req.ISBN,
		Price:       req.Price,
		Description: req.Description,
		CoverImage:  req.CoverImage,
		CategoryIDs: req.CategoryIDs,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// GetBook 图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=appbook.BookResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
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

// UpdateBook 部分更新图书
// @Summary      更新图书
// @Description  只更新请求中出现的字段,category_ids整体替换
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                   true "图书ID"
// @Param        request body dto.UpdateBookRequest true "要更新的字段"
// @Success      200 {object} response.Response{data=appbook.BookResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Failure      409 {object} response.Response "ISBN已存在"
// @Router       /books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.updateUseCase.Execute(c.Request.Context(), id, book.Patch{
		Title:       req.Title,
		Author:      req.Author,
		ISBN:        req.ISBN,
		Price:       req.Price,
		Description: req.Description,
		CoverImage:  req.CoverImage,
		CategoryIDs: req.CategoryIDs,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// DeleteBook 删除图书(软删除)
// @Summary      删除图书
// @Tags         图书
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      204
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
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

// ListBooks 图书列表
// @Summary      图书列表
// @Tags         图书
// @Produce      json
// @Param        page      query int    false "页码,默认1"
// @Param        page_size query int    false "每页数量,默认20,最大100"
// @Param        sort_by   query string false "排序" Enums(price_asc, price_desc, created_at_desc)
// @Success      200 {object} response.Response{data=response.PageData{list=[]appbook.BookListItem}}
// @Router       /books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	var q dto.BookListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	page, err := h.listUseCase.Execute(c.Request.Context(), listRequest(q))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, page.List, page.Total, page.Page, page.PageSize)
}

// SearchBooks 按标题/作者/ISBN搜索
// @Summary      搜索图书
// @Description  同一参数的多个值为OR(可重复或逗号分隔),不同参数之间为AND
// @Tags         图书
// @Produce      json
// @Param        titles    query []string false "书名" collectionFormat(multi)
// @Param        authors   query []string false "作者" collectionFormat(multi)
// @Param        isbns     query []string false "ISBN" collectionFormat(multi)
// @Param        page      query int      false "页码"
// @Param        page_size query int      false "每页数量"
// @Param        sort_by   query string   false "排序" Enums(price_asc, price_desc, created_at_desc)
// @Success      200 {object} response.Response{data=response.PageData{list=[]appbook.BookListItem}}
// @Router       /books/search [get]
func (h *BookHandler) SearchBooks(c *gin.Context) {
	var q dto.BookSearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	page, err := h.searchUseCase.Execute(c.Request.Context(), appbook.SearchBooksRequest{
		Titles:           dto.SplitValues(q.Titles),
		Authors:          dto.SplitValues(q.Authors),
		ISBNs:            dto.SplitValues(q.ISBNs),
		ListBooksRequest: listRequest(q.BookListQuery),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, page.List, page.Total, page.Page, page.PageSize)
}

func listRequest(q dto.BookListQuery) appbook.ListBooksRequest {
	return appbook.ListBooksRequest{
		Page:     q.Page,
		PageSize: q.PageSize,
		SortBy:   q.SortBy,
	}
}
