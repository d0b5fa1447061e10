package mysql

import (
	"gorm.io/gorm"

	"github.com/xiebiao/onlinebookstore/internal/domain/book"
)

// scope GORM查询条件
type scope = func(*gorm.DB) *gorm.DB

// bookColumns 搜索字段对应的列
var bookColumns = map[string]string{
	book.FieldTitle:  "books.title",
	book.FieldAuthor: "books.author",
	book.FieldISBN:   "books.isbn",
}

// newBookSpecBuilder 注册title/author/isbn的IN条件
func newBookSpecBuilder() (*book.SpecificationBuilder[scope], error) {
	builder := book.NewSpecificationBuilder(
		func(db *gorm.DB) *gorm.DB { return db },
		func(a, b scope) scope {
			return func(db *gorm.DB) *gorm.DB { return b(a(db)) }
		},
	)
	for field, column := range bookColumns {
		if err := builder.Register(field, columnIn(column)); err != nil {
			return nil, err
		}
	}
	if err := builder.Require(book.SearchFields...); err != nil {
		return nil, err
	}
	return builder, nil
}

func columnIn(column string) book.SpecProvider[scope] {
	return func(values []string) scope {
		return func(db *gorm.DB) *gorm.DB {
			return db.Where(column+" IN ?", values)
		}
	}
}

// orderBy 排序,追加ID保证分页稳定
func orderBy(sortBy string) string {
	switch sortBy {
	case book.SortPriceAsc:
		return "books.price ASC, books.id ASC"
	case book.SortPriceDesc:
		return "books.price DESC, books.id DESC"
	default:
		return "books.created_at DESC, books.id DESC"
	}
}
