package book

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/onlinebookstore/internal/domain/book"
)

// BookResponse 图书详情DTO
type BookResponse struct {
	ID          uint            `json:"id"`
	Title       string          `json:"title"`
	Author      string          `json:"author"`
	ISBN        string          `json:"isbn"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	CoverImage  string          `json:"cover_image"`
	CategoryIDs []uint          `json:"category_ids"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// BookListItem 列表项DTO(不含description)
type BookListItem struct {
	ID          uint            `json:"id"`
	Title       string          `json:"title"`
	Author      string          `json:"author"`
	ISBN        string          `json:"isbn"`
	Price       decimal.Decimal `json:"price"`
	CoverImage  string          `json:"cover_image"`
	CategoryIDs []uint          `json:"category_ids"`
}

func toBookResponse(b *book.Book) *BookResponse {
	ids := b.CategoryIDs
	if ids == nil {
		ids = []uint{}
	}
	return &BookResponse{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		ISBN:        b.ISBN,
		Price:       b.Price,
		Description: b.Description,
		CoverImage:  b.CoverImage,
		CategoryIDs: ids,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func toBookListItem(b *book.Book) BookListItem {
	ids := b.CategoryIDs
	if ids == nil {
		ids = []uint{}
	}
	return BookListItem{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		ISBN:        b.ISBN,
		Price:       b.Price,
		CoverImage:  b.CoverImage,
		CategoryIDs: ids,
	}
}
