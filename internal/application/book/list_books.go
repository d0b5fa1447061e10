package book

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/onlinebookstore/internal/application"
	"github.com/xiebiao/onlinebookstore/internal/domain/book"
	"github.com/xiebiao/onlinebookstore/internal/domain/category"
	"github.com/xiebiao/onlinebookstore/pkg/tracing"
)

const tracerName = "application/book"

// ListBooksRequest 列表查询参数
type ListBooksRequest struct {
	Page     int
	PageSize int
	SortBy   string // price_asc, price_desc, created_at_desc
}

func (r ListBooksRequest) params() book.ListParams {
	return book.ListParams{Page: r.Page, PageSize: r.PageSize, SortBy: r.SortBy}.Normalize()
}

// ListBooksUseCase 图书列表(公开)
type ListBooksUseCase struct {
	bookRepo book.Repository
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(bookRepo book.Repository) *ListBooksUseCase {
	return &ListBooksUseCase{bookRepo: bookRepo}
}

// Execute page默认1,pageSize默认20最大100
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) (*application.Page[BookListItem], error) {
	p := req.params()
	books, total, err := uc.bookRepo.List(ctx, p)
	if err != nil {
		return nil, err
	}
	return application.NewPage(books, total, p.Page, p.PageSize, toBookListItem), nil
}

// SearchBooksRequest 搜索参数,同一字段多个值为OR,字段之间为AND
type SearchBooksRequest struct {
	Titles  []string
	Authors []string
	ISBNs   []string
	ListBooksRequest
}

// SearchParams 转换为领域层的搜索参数
func (r SearchBooksRequest) SearchParams() book.SearchParams {
	params := book.SearchParams{}
	if len(r.Titles) > 0 {
		params[book.FieldTitle] = r.Titles
	}
	if len(r.Authors) > 0 {
		params[book.FieldAuthor] = r.Authors
	}
	if len(r.ISBNs) > 0 {
		params[book.FieldISBN] = r.ISBNs
	}
	return params.Normalize()
}

// SearchBooksUseCase 按标题/作者/ISBN搜索
type SearchBooksUseCase struct {
	bookRepo book.Repository
}

// NewSearchBooksUseCase 创建搜索用例
func NewSearchBooksUseCase(bookRepo book.Repository) *SearchBooksUseCase {
	return &SearchBooksUseCase{bookRepo: bookRepo}
}

// Execute 没有任何条件时等同于列表查询
func (uc *SearchBooksUseCase) Execute(ctx context.Context, req SearchBooksRequest) (_ *application.Page[BookListItem], err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "SearchBooks")
	defer func() { tracing.EndSpan(span, err) }()

	params := req.SearchParams()
	span.SetAttributes(attribute.StringSlice("search.fields", params.Fields()))

	p := req.params()
	books, total, err := uc.bookRepo.Search(ctx, params, p)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int64("search.total", total))
	return application.NewPage(books, total, p.Page, p.PageSize, toBookListItem), nil
}

// ListBooksByCategoryUseCase 分类下的图书
type ListBooksByCategoryUseCase struct {
	bookRepo     book.Repository
	categoryRepo category.Repository
}

// NewListBooksByCategoryUseCase 创建分类图书查询用例
func NewListBooksByCategoryUseCase(bookRepo book.Repository, categoryRepo category.Repository) *ListBooksByCategoryUseCase {
	return &ListBooksByCategoryUseCase{bookRepo: bookRepo, categoryRepo: categoryRepo}
}

// Execute 分类不存在返回ErrCategoryNotFound
func (uc *ListBooksByCategoryUseCase) Execute(ctx context.Context, categoryID uint, req ListBooksRequest) (*application.Page[BookListItem], error) {
	if _, err := uc.categoryRepo.FindByID(ctx, categoryID); err != nil {
		return nil, err
	}

	p := req.params()
	books, total, err := uc.bookRepo.ListByCategory(ctx, categoryID, p)
	if err != nil {
		return nil, err
	}
	return application.NewPage(books, total, p.Page, p.PageSize, toBookListItem), nil
}
