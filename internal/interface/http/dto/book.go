package dto

import "github.com/shopspring/decimal"

// CreateBookRequest 新增图书请求
// price可以是数字或字符串:12.5 / "12.50"
type CreateBookRequest struct {
	Title       string          `json:"title" binding:"required,notblank,max=255" example:"The Go Programming Language"`
	Author      string          `json:"author" binding:"required,notblank,max=255" example:"Alan A. A. Donovan"`
	ISBN        string          `json:"isbn" binding:"required,notblank,max=20" example:"978-0134190440"`
	Price       decimal.Decimal `json:"price" binding:"required,gt=0" swaggertype:"string" example:"39.99"`
	Description string          `json:"description" binding:"max=5000"`
	CoverImage  string          `json:"cover_image" binding:"omitempty,max=500"`
	CategoryIDs []uint          `json:"category_ids" binding:"omitempty,dive,gt=0"`
}

// UpdateBookRequest 部分更新,未出现的字段保持不变
// category_ids出现时整体替换,[]表示清空分类
type UpdateBookRequest struct {
	Title       *string          `json:"title" binding:"omitempty,notblank,max=255"`
	Author      *string          `json:"author" binding:"omitempty,notblank,max=255"`
	ISBN        *string          `json:"isbn" binding:"omitempty,notblank,max=20"`
	Price       *decimal.Decimal `json:"price" binding:"omitempty,gt=0" swaggertype:"string"`
	Description *string          `json:"description" binding:"omitempty,max=5000"`
	CoverImage  *string          `json:"cover_image" binding:"omitempty,max=500"`
	CategoryIDs *[]uint          `json:"category_ids" binding:"omitempty,dive,gt=0"`
}

// BookListQuery 列表查询参数
type BookListQuery struct {
	PageQuery
	SortBy string `form:"sort_by" binding:"omitempty,oneof=price_asc price_desc created_at_desc"`
}

// BookSearchQuery 搜索参数,同一字段多个值为OR,字段之间为AND
type BookSearchQuery struct {
	BookListQuery
	Titles  []string `form:"titles"`
	Authors []string `form:"authors"`
	ISBNs   []string `form:"isbns"`
}
