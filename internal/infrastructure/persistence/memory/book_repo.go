package memory

import (
	"context"
	"sort"

	"github.com/xiebiao/onlinebookstore/internal/domain/book"
)

// predicate 内存实现的查询条件
type predicate = func(*book.Book) bool

type bookRepository struct {
	s     *Store
	specs *book.SpecificationBuilder[predicate]
}

// NewBookRepository 创建图书仓储
func NewBookRepository(s *Store) (book.Repository, error) {
	specs := book.NewSpecificationBuilder(
		func(*book.Book) bool { return true },
		func(a, b predicate) predicate {
			return func(x *book.Book) bool { return a(x) && b(x) }
		},
	)
	fields := map[string]func(*book.Book) string{
		book.FieldTitle:  func(b *book.Book) string { return b.Title },
		book.FieldAuthor: func(b *book.Book) string { return b.Author },
		book.FieldISBN:   func(b *book.Book) string { return b.ISBN },
	}
	for field, get := range fields {
		if err := specs.Register(field, in(get)); err != nil {
			return nil, err
		}
	}
	if err := specs.Require(book.SearchFields...); err != nil {
		return nil, err
	}
	return &bookRepository{s: s, specs: specs}, nil
}

// in 字段值属于values之一
func in(get func(*book.Book) string) book.SpecProvider[predicate] {
	return func(values []string) predicate {
		set := make(map[string]struct{}, len(values))
		for _, v := range values {
			set[v] = struct{}{}
		}
		return func(b *book.Book) bool {
			_, ok := set[get(b)]
			return ok
		}
	}
}

func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	return r.s.write(ctx, func(t *tables) error {
		now := r.s.now()
		t.seq.book++
		b.ID = t.seq.book
		b.CreatedAt = now
		b.UpdatedAt = now

		row := bookRow{Book: *b}
		row.CategoryIDs = append([]uint(nil), b.CategoryIDs...)
		t.books[b.ID] = row
		return nil
	})
}

func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var found *book.Book
	err := r.s.read(ctx, func(t *tables) error {
		row, ok := t.books[id]
		if !ok || row.deleted {
			return book.ErrBookNotFound
		}
		found = t.bookEntity(row)
		return nil
	})
	return found, err
}

func (r *bookRepository) FindByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	var found *book.Book
	err := r.s.read(ctx, func(t *tables) error {
		for _, row := range t.books {
			if !row.deleted && row.ISBN == isbn {
				found = t.bookEntity(row)
				return nil
			}
		}
		return book.ErrBookNotFound
	})
	return found, err
}

// LockByISBN 事务已持有整个Store的写锁,这里等同于读取
func (r *bookRepository) LockByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	return r.FindByISBN(ctx, isbn)
}

func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	return r.s.write(ctx, func(t *tables) error {
		row, ok := t.books[b.ID]
		if !ok || row.deleted {
			return book.ErrBookNotFound
		}
		b.CreatedAt = row.CreatedAt
		b.UpdatedAt = r.s.now()

		row.Book = *b
		row.CategoryIDs = append([]uint(nil), b.CategoryIDs...)
		t.books[b.ID] = row
		return nil
	})
}

func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	return r.s.write(ctx, func(t *tables) error {
		row, ok := t.books[id]
		if !ok || row.deleted {
			return book.ErrBookNotFound
		}
		row.deleted = true
		t.books[id] = row
		return nil
	})
}

func (r *bookRepository) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	return r.query(ctx, func(*book.Book) bool { return true }, params)
}

func (r *bookRepository) Search(ctx context.Context, params book.SearchParams, page book.ListParams) ([]*book.Book, int64, error) {
	spec, err := r.specs.Build(params)
	if err != nil {
		return nil, 0, err
	}
	return r.query(ctx, spec, page)
}

func (r *bookRepository) ListByCategory(ctx context.Context, categoryID uint, params book.ListParams) ([]*book.Book, int64, error) {
	return r.query(ctx, func(b *book.Book) bool { return b.InCategory(categoryID) }, params)
}

func (r *bookRepository) query(ctx context.Context, match predicate, params book.ListParams) ([]*book.Book, int64, error) {
	params = params.Normalize()

	var matched []*book.Book
	err := r.s.read(ctx, func(t *tables) error {
		for _, row := range t.books {
			if row.deleted {
				continue
			}
			b := t.bookEntity(row)
			if match(b) {
				matched = append(matched, b)
			}
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	sortBooks(matched, params.SortBy)
	return paginate(matched, params.Page, params.PageSize), int64(len(matched)), nil
}

func sortBooks(books []*book.Book, sortBy string) {
	sort.Slice(books, func(i, j int) bool {
		a, b := books[i], books[j]
		switch sortBy {
		case book.SortPriceAsc:
			if !a.Price.Equal(b.Price) {
				return a.Price.LessThan(b.Price)
			}
			return a.ID < b.ID
		case book.SortPriceDesc:
			if !a.Price.Equal(b.Price) {
				return a.Price.GreaterThan(b.Price)
			}
			return a.ID > b.ID
		default:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
			return a.ID > b.ID
		}
	})
}

// bookEntity 返回副本,已删除的分类不出现在CategoryIDs中
func (t *tables) bookEntity(row bookRow) *book.Book {
	b := row.Book
	b.CategoryIDs = make([]uint, 0, len(row.CategoryIDs))
	for _, id := range row.CategoryIDs {
		if c, ok := t.categories[id]; ok && !c.deleted {
			b.CategoryIDs = append(b.CategoryIDs, id)
		}
	}
	return &b
}

// paginate page从1开始,越界返回空切片
func paginate[T any](items []T, page, pageSize int) []T {
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
