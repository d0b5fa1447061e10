package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/onlinebookstore/internal/domain/book"
	"github.com/xiebiao/onlinebookstore/internal/domain/cart"
	"github.com/xiebiao/onlinebookstore/internal/domain/category"
	"github.com/xiebiao/onlinebookstore/internal/domain/order"
	"github.com/xiebiao/onlinebookstore/internal/domain/user"
	apperrors "github.com/xiebiao/onlinebookstore/pkg/errors"
)

func newBookRepo(t *testing.T, s *Store) book.Repository {
	t.Helper()
	repo, err := NewBookRepository(s)
	require.NoError(t, err)
	return repo
}

func seedBook(t *testing.T, repo book.Repository, title, author, isbn, price string, categoryIDs ...uint) *book.Book {
	t.Helper()
	b := book.NewBook(title, author, isbn, decimal.RequireFromString(price), "", "", categoryIDs)
	require.NoError(t, repo.Create(context.Background(), b))
	return b
}

func titles(books []*book.Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.Title
	}
	return out
}

func TestStore_TransactionRollback(t *testing.T) {
	s := NewStore()
	repo := NewCategoryRepository(s)
	ctx := context.Background()

	errBoom := errors.New("boom")
	err := s.Transaction(ctx, func(ctx context.Context) error {
		require.NoError(t, repo.Create(ctx, &category.Category{Name: "Fiction"}))
		// 嵌套事务复用外层
		return s.Transaction(ctx, func(ctx context.Context) error {
			require.NoError(t, repo.Create(ctx, &category.Category{Name: "Poetry"}))
			return errBoom
		})
	})
	assert.ErrorIs(t, err, errBoom)

	list, total, err := repo.List(ctx, 1, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, list)

	require.NoError(t, s.Transaction(ctx, func(ctx context.Context) error {
		return repo.Create(ctx, &category.Category{Name: "Fiction"})
	}))
	_, total, err = repo.List(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestStore_TransactionPanicRollsBack(t *testing.T) {
	s := NewStore()
	repo := NewCategoryRepository(s)
	ctx := context.Background()

	assert.Panics(t, func() {
		_ = s.Transaction(ctx, func(ctx context.Context) error {
			_ = repo.Create(ctx, &category.Category{Name: "Fiction"})
			panic("unexpected")
		})
	})

	_, total, err := repo.List(ctx, 1, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestBookRepository_Search(t *testing.T) {
	s := NewStore()
	repo := newBookRepo(t, s)
	ctx := context.Background()

	seedBook(t, repo, "Go in Action", "Kennedy", "9781617291784", "30.00")
	seedBook(t, repo, "The Go Programming Language", "Donovan", "9780134190440", "40.00")
	seedBook(t, repo, "Concurrency in Go", "Cox-Buday", "9781491941195", "35.00")

	books, total, err := repo.Search(ctx, book.SearchParams{
		book.FieldAuthor: {"Donovan", "Kennedy"},
	}, book.ListParams{SortBy: book.SortPriceAsc})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, []string{"Go in Action", "The Go Programming Language"}, titles(books))

	// 字段之间是AND
	books, _, err = repo.Search(ctx, book.SearchParams{
		book.FieldAuthor: {"Donovan", "Kennedy"},
		book.FieldTitle:  {"Go in Action", "Concurrency in Go"},
	}, book.ListParams{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Go in Action"}, titles(books))

	_, _, err = repo.Search(ctx, book.SearchParams{"publisher": {"Manning"}}, book.ListParams{})
	assert.ErrorIs(t, err, book.ErrUnknownSearchField)
}

func TestBookRepository_SoftDeleteAndPaging(t *testing.T) {
	s := NewStore()
	repo := newBookRepo(t, s)
	ctx := context.Background()

	var last *book.Book
	for i, price := range []string{"10.00", "20.00", "30.00"} {
		last = seedBook(t, repo, []string{"A", "B", "C"}[i], "X", "978000000000"+[]string{"1", "2", "3"}[i], price)
	}

	require.NoError(t, repo.Delete(ctx, last.ID))
	assert.ErrorIs(t, repo.Delete(ctx, last.ID), book.ErrBookNotFound)

	_, err := repo.FindByID(ctx, last.ID)
	assert.ErrorIs(t, err, book.ErrBookNotFound)
	_, err = repo.FindByISBN(ctx, last.ISBN)
	assert.ErrorIs(t, err, book.ErrBookNotFound)

	books, total, err := repo.List(ctx, book.ListParams{Page: 2, PageSize: 1, SortBy: book.SortPriceDesc})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, []string{"A"}, titles(books))

	books, _, err = repo.List(ctx, book.ListParams{Page: 5, PageSize: 1})
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestBookRepository_Categories(t *testing.T) {
	s := NewStore()
	books := newBookRepo(t, s)
	categories := NewCategoryRepository(s)
	ctx := context.Background()

	fiction := &category.Category{Name: "Fiction"}
	poetry := &category.Category{Name: "Poetry"}
	require.NoError(t, categories.Create(ctx, fiction))
	require.NoError(t, categories.Create(ctx, poetry))

	b := seedBook(t, books, "Leaves of Grass", "Whitman", "9780140421996", "12.50", fiction.ID, poetry.ID)
	seedBook(t, books, "Dune", "Herbert", "9780441172719", "9.99", fiction.ID)

	list, total, err := books.ListByCategory(ctx, poetry.ID, book.ListParams{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, []string{"Leaves of Grass"}, titles(list))

	require.NoError(t, categories.Delete(ctx, poetry.ID))
	got, err := books.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{fiction.ID}, got.CategoryIDs)

	found, err := categories.FindByIDs(ctx, []uint{poetry.ID, fiction.ID, 99})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, fiction.ID, found[0].ID)
}

func TestUserRepository(t *testing.T) {
	repo := NewUserRepository(NewStore())
	ctx := context.Background()

	u := user.NewUser("Reader@Example.com", "hash", "Ada", "Lovelace", "London")
	require.NoError(t, repo.Create(ctx, u))
	assert.NotZero(t, u.ID)

	dup := user.NewUser("reader@example.com", "hash", "", "", "")
	assert.ErrorIs(t, repo.Create(ctx, dup), apperrors.ErrEmailDuplicate)

	got, err := repo.FindByEmail(ctx, "READER@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, []user.Role{user.RoleUser}, got.Roles)

	_, err = repo.FindByID(ctx, 42)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestCartRepository(t *testing.T) {
	s := NewStore()
	books := newBookRepo(t, s)
	carts := NewCartRepository(s)
	ctx := context.Background()

	b := seedBook(t, books, "Dune", "Herbert", "9780441172719", "9.99")

	c := cart.NewCart(7)
	require.NoError(t, carts.Create(ctx, c))
	assert.ErrorIs(t, carts.Create(ctx, cart.NewCart(7)), apperrors.ErrDuplicateEntry)

	// 同一本书累加,不产生第二条记录
	require.NoError(t, carts.AddItem(ctx, c.ID, b.ID, 2))
	require.NoError(t, carts.AddItem(ctx, c.ID, b.ID, 3))

	got, err := carts.FindByUserID(ctx, 7)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	item := got.Items[0]
	assert.Equal(t, 5, item.Quantity)
	assert.Equal(t, "Dune", item.BookTitle)
	assert.Equal(t, "49.95", got.Total().StringFixed(2))

	assert.ErrorIs(t, carts.UpdateItemQuantity(ctx, c.ID+1, item.ID, 1), cart.ErrCartItemNotFound)
	require.NoError(t, carts.UpdateItemQuantity(ctx, c.ID, item.ID, 1))
	assert.ErrorIs(t, carts.RemoveItem(ctx, c.ID, item.ID+100), cart.ErrCartItemNotFound)

	require.NoError(t, carts.ClearItems(ctx, c.ID))
	got, err = carts.LockByUserID(ctx, 7)
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())

	_, err = carts.FindByUserID(ctx, 8)
	assert.ErrorIs(t, err, cart.ErrCartNotFound)
}

func TestCartRepository_DeletedBookHidden(t *testing.T) {
	s := NewStore()
	books := newBookRepo(t, s)
	carts := NewCartRepository(s)
	ctx := context.Background()

	dune := seedBook(t, books, "Dune", "Herbert", "9780441172719", "9.99")
	emma := seedBook(t, books, "Emma", "Austen", "9780141439587", "5.00")

	c := cart.NewCart(7)
	require.NoError(t, carts.Create(ctx, c))
	require.NoError(t, carts.AddItem(ctx, c.ID, dune.ID, 1))
	require.NoError(t, carts.AddItem(ctx, c.ID, emma.ID, 2))
	require.NoError(t, books.Delete(ctx, dune.ID))

	got, err := carts.FindByUserID(ctx, 7)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, emma.ID, got.Items[0].BookID)
	assert.Equal(t, "10.00", got.Total().StringFixed(2))

	got, err = carts.LockByUserID(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, got.Items, 1)
}

func TestOrderRepository(t *testing.T) {
	s := NewStore()
	books := newBookRepo(t, s)
	orders := NewOrderRepository(s)
	ctx := context.Background()

	b := seedBook(t, books, "Dune", "Herbert", "9780441172719", "10.00")
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	newOrder := func(no string, at time.Time) *order.Order {
		c := &cart.Cart{UserID: 3, Items: []cart.CartItem{{BookID: b.ID, Price: b.Price, Quantity: 2}}}
		o, err := order.NewFromCart(c, "Main St 1", at)
		require.NoError(t, err)
		o.OrderNo = no
		require.NoError(t, orders.Create(ctx, o))
		return o
	}
	first := newOrder("ORD1", base)
	second := newOrder("ORD2", base.Add(time.Hour))
	assert.NotZero(t, first.Items[0].ID)
	assert.Equal(t, first.ID, first.Items[0].OrderID)

	list, total, err := orders.ListByUserID(ctx, 3, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, "Dune", list[0].Items[0].BookTitle)

	require.NoError(t, orders.UpdateStatus(ctx, first.ID, order.StatusProcessing))
	got, err := orders.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusProcessing, got.Status)
	assert.Equal(t, "20.00", got.Total.StringFixed(2))

	assert.ErrorIs(t, orders.UpdateStatus(ctx, 99, order.StatusShipped), order.ErrOrderNotFound)
}
