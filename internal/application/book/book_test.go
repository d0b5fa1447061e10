package book_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbook "github.com/xiebiao/onlinebookstore/internal/application/book"
	"github.com/xiebiao/onlinebookstore/internal/domain/book"
	"github.com/xiebiao/onlinebookstore/internal/domain/category"
	"github.com/xiebiao/onlinebookstore/internal/infrastructure/persistence"
)

// fakeCache 内存缓存,记录调用次数
type fakeCache struct {
	mu      sync.Mutex
	items   map[uint]*book.Book
	gets    int
	deletes []uint
	getErr  error
}

func newFakeCache() *fakeCache {
	return &fakeCache{items: make(map[uint]*book.Book)}
}

func (c *fakeCache) Get(_ context.Context, id uint) (*book.Book, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	b, ok := c.items[id]
	return b, ok, nil
}

func (c *fakeCache) Set(_ context.Context, b *book.Book) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	copied := *b
	c.items[b.ID] = &copied
	return nil
}

func (c *fakeCache) Delete(_ context.Context, id uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, id)
	c.deletes = append(c.deletes, id)
	return nil
}

func newRepos(t *testing.T) *persistence.Repositories {
	t.Helper()
	repos, err := persistence.NewMemoryRepositories()
	require.NoError(t, err)
	return repos
}

func createRequest(isbn string) appbook.CreateBookRequest {
	return appbook.CreateBookRequest{
		Title:  "The Go Programming Language",
		Author: "Alan Donovan",
		ISBN:   isbn,
		Price:  decimal.RequireFromString("39.99"),
	}
}

func TestCreateBook(t *testing.T) {
	ctx := context.Background()

	t.Run("创建成功", func(t *testing.T) {
		repos := newRepos(t)
		c, err := category.NewCategory("Programming", "")
		require.NoError(t, err)
		require.NoError(t, repos.Categories.Create(ctx, c))

		req := createRequest(" 978-0134190440 ")
		req.CategoryIDs = []uint{c.ID, c.ID}
		resp, err := appbook.NewCreateBookUseCase(repos.Tx, repos.Books, repos.Categories).Execute(ctx, req)
		require.NoError(t, err)

		assert.NotZero(t, resp.ID)
		assert.Equal(t, "978-0134190440", resp.ISBN)
		assert.Equal(t, []uint{c.ID}, resp.CategoryIDs)
		assert.True(t, decimal.RequireFromString("39.99").Equal(resp.Price))
	})

	t.Run("ISBN重复", func(t *testing.T) {
		repos := newRepos(t)
		uc := appbook.NewCreateBookUseCase(repos.Tx, repos.Books, repos.Categories)
		_, err := uc.Execute(ctx, createRequest("0134190440"))
		require.NoError(t, err)

		_, err = uc.Execute(ctx, createRequest("0134190440"))
		assert.ErrorIs(t, err, book.ErrISBNDuplicate)
	})

	t.Run("并发创建相同ISBN只有一个成功", func(t *testing.T) {
		repos := newRepos(t)
		uc := appbook.NewCreateBookUseCase(repos.Tx, repos.Books, repos.Categories)

		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			created   int
			duplicate int
		)
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := uc.Execute(ctx, createRequest("0134190440"))
				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					created++
				case errors.Is(err, book.ErrISBNDuplicate):
					duplicate++
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, created)
		assert.Equal(t, 7, duplicate)

		page, err := appbook.NewListBooksUseCase(repos.Books).Execute(ctx, appbook.ListBooksRequest{})
		require.NoError(t, err)
		assert.EqualValues(t, 1, page.Total)
	})

	t.Run("删除后ISBN可复用", func(t *testing.T) {
		repos := newRepos(t)
		uc := appbook.NewCreateBookUseCase(repos.Tx, repos.Books, repos.Categories)
		resp, err := uc.Execute(ctx, createRequest("0134190440"))
		require.NoError(t, err)
		require.NoError(t, appbook.NewDeleteBookUseCase(repos.Books, nil).Execute(ctx, resp.ID))

		_, err = uc.Execute(ctx, createRequest("0134190440"))
		assert.NoError(t, err)
	})

	t.Run("参数非法", func(t *testing.T) {
		repos := newRepos(t)
		uc := appbook.NewCreateBookUseCase(repos.Tx, repos.Books, repos.Categories)

		_, err := uc.Execute(ctx, createRequest("12345"))
		assert.ErrorIs(t, err, book.ErrInvalidISBN)

		req := createRequest("0134190440")
		req.Price = decimal.Zero
		_, err = uc.Execute(ctx, req)
		assert.ErrorIs(t, err, book.ErrInvalidPrice)
	})

	t.Run("分类不存在", func(t *testing.T) {
		repos := newRepos(t)
		req := createRequest("0134190440")
		req.CategoryIDs = []uint{42}
		_, err := appbook.NewCreateBookUseCase(repos.Tx, repos.Books, repos.Categories).Execute(ctx, req)
		assert.ErrorIs(t, err, category.ErrCategoryNotFound)
	})
}

func TestGetBook_Cache(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)
	resp, err := appbook.NewCreateBookUseCase(repos.Tx, repos.Books, repos.Categories).Execute(ctx, createRequest("0134190440"))
	require.NoError(t, err)

	cache := newFakeCache()
	get := appbook.NewGetBookUseCase(repos.Books, cache)

	// 第一次未命中,回填缓存
	got, err := get.Execute(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.Title, got.Title)
	require.Contains(t, cache.items, resp.ID)

	// 命中时不查库:库里删除后仍能从缓存读到
	require.NoError(t, repos.Books.Delete(ctx, resp.ID))
	got, err = get.Execute(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.ID, got.ID)
	assert.Equal(t, 2, cache.gets)

	t.Run("缓存异常降级查库", func(t *testing.T) {
		broken := newFakeCache()
		broken.getErr = errors.New("redis down")
		_, err := appbook.NewGetBookUseCase(repos.Books, broken).Execute(ctx, resp.ID)
		assert.ErrorIs(t, err, book.ErrBookNotFound)
	})
}

func TestUpdateBook(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)
	create := appbook.NewCreateBookUseCase(repos.Tx, repos.Books, repos.Categories)
	first, err := create.Execute(ctx, createRequest("0134190440"))
	require.NoError(t, err)
	second, err := create.Execute(ctx, createRequest("9780262033848"))
	require.NoError(t, err)

	cache := newFakeCache()
	update := appbook.NewUpdateBookUseCase(repos.Tx, repos.Books, repos.Categories, cache)

	t.Run("只修改提供的字段并清除缓存", func(t *testing.T) {
		title := "Go 语言圣经"
		resp, err := update.Execute(ctx, first.ID, book.Patch{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, title, resp.Title)
		assert.Equal(t, first.Author, resp.Author)
		assert.Equal(t, first.ISBN, resp.ISBN)
		assert.Contains(t, cache.deletes, first.ID)
	})

	t.Run("保留自身ISBN不算重复", func(t *testing.T) {
		isbn := first.ISBN
		_, err := update.Execute(ctx, first.ID, book.Patch{ISBN: &isbn})
		assert.NoError(t, err)
	})

	t.Run("ISBN与其他图书冲突", func(t *testing.T) {
		isbn := second.ISBN
		_, err := update.Execute(ctx, first.ID, book.Patch{ISBN: &isbn})
		assert.ErrorIs(t, err, book.ErrISBNDuplicate)
	})

	t.Run("价格非法", func(t *testing.T) {
		price := decimal.RequireFromString("-1")
		_, err := update.Execute(ctx, first.ID, book.Patch{Price: &price})
		assert.ErrorIs(t, err, book.ErrInvalidPrice)
	})

	t.Run("分类不存在", func(t *testing.T) {
		ids := []uint{7}
		_, err := update.Execute(ctx, first.ID, book.Patch{CategoryIDs: &ids})
		assert.ErrorIs(t, err, category.ErrCategoryNotFound)
	})

	t.Run("图书不存在", func(t *testing.T) {
		title := "x"
		_, err := update.Execute(ctx, 999, book.Patch{Title: &title})
		assert.ErrorIs(t, err, book.ErrBookNotFound)
	})
}

func TestDeleteBook(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)
	resp, err := appbook.NewCreateBookUseCase(repos.Tx, repos.Books, repos.Categories).Execute(ctx, createRequest("0134190440"))
	require.NoError(t, err)

	cache := newFakeCache()
	del := appbook.NewDeleteBookUseCase(repos.Books, cache)
	require.NoError(t, del.Execute(ctx, resp.ID))
	assert.Equal(t, []uint{resp.ID}, cache.deletes)

	_, err = appbook.NewGetBookUseCase(repos.Books, nil).Execute(ctx, resp.ID)
	assert.ErrorIs(t, err, book.ErrBookNotFound)

	assert.ErrorIs(t, del.Execute(ctx, resp.ID), book.ErrBookNotFound)
}

func TestListAndSearchBooks(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)
	create := appbook.NewCreateBookUseCase(repos.Tx, repos.Books, repos.Categories)
	for _, req := range []appbook.CreateBookRequest{
		{Title: "Go in Action", Author: "Kennedy", ISBN: "1617291781", Price: decimal.RequireFromString("30")},
		{Title: "Learning Go", Author: "Bodner", ISBN: "1492077216", Price: decimal.RequireFromString("45")},
		{Title: "Rust in Action", Author: "McNamara", ISBN: "1617294551", Price: decimal.RequireFromString("40")},
	} {
		_, err := create.Execute(ctx, req)
		require.NoError(t, err)
	}

	t.Run("分页上限100", func(t *testing.T) {
		page, err := appbook.NewListBooksUseCase(repos.Books).Execute(ctx, appbook.ListBooksRequest{PageSize: 1000})
		require.NoError(t, err)
		assert.Equal(t, 100, page.PageSize)
		assert.Equal(t, 1, page.Page)
		assert.EqualValues(t, 3, page.Total)
	})

	t.Run("价格升序", func(t *testing.T) {
		page, err := appbook.NewListBooksUseCase(repos.Books).Execute(ctx, appbook.ListBooksRequest{SortBy: "price_asc"})
		require.NoError(t, err)
		require.Len(t, page.List, 3)
		assert.Equal(t, "Go in Action", page.List[0].Title)
		assert.Equal(t, "Learning Go", page.List[2].Title)
	})

	t.Run("同字段OR不同字段AND", func(t *testing.T) {
		search := appbook.NewSearchBooksUseCase(repos.Books)

		page, err := search.Execute(ctx, appbook.SearchBooksRequest{Titles: []string{"Go in Action", "Rust in Action"}})
		require.NoError(t, err)
		assert.EqualValues(t, 2, page.Total)

		page, err = search.Execute(ctx, appbook.SearchBooksRequest{
			Titles:  []string{"Go in Action", "Rust in Action"},
			Authors: []string{"Kennedy", "Bodner"},
		})
		require.NoError(t, err)
		require.Len(t, page.List, 1)
		assert.Equal(t, "Go in Action", page.List[0].Title)

		// 精确匹配
		page, err = search.Execute(ctx, appbook.SearchBooksRequest{Titles: []string{"action"}})
		require.NoError(t, err)
		assert.Zero(t, page.Total)

		page, err = search.Execute(ctx, appbook.SearchBooksRequest{})
		require.NoError(t, err)
		assert.EqualValues(t, 3, page.Total)
	})
}

func TestListBooksByCategory(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)
	c, err := category.NewCategory("Go", "")
	require.NoError(t, err)
	require.NoError(t, repos.Categories.Create(ctx, c))

	req := createRequest("0134190440")
	req.CategoryIDs = []uint{c.ID}
	_, err = appbook.NewCreateBookUseCase(repos.Tx, repos.Books, repos.Categories).Execute(ctx, req)
	require.NoError(t, err)
	_, err = appbook.NewCreateBookUseCase(repos.Tx, repos.Books, repos.Categories).Execute(ctx, createRequest("1492077216"))
	require.NoError(t, err)

	uc := appbook.NewListBooksByCategoryUseCase(repos.Books, repos.Categories)
	page, err := uc.Execute(ctx, c.ID, appbook.ListBooksRequest{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)

	_, err = uc.Execute(ctx, 999, appbook.ListBooksRequest{})
	assert.ErrorIs(t, err, category.ErrCategoryNotFound)
}
