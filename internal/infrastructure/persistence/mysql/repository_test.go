package mysql

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/xiebiao/onlinebookstore/internal/domain/book"
	"github.com/xiebiao/onlinebookstore/internal/domain/order"
)

// sqlRecorder 记录DryRun生成的SQL
type sqlRecorder struct {
	mu    sync.Mutex
	stmts []*gorm.Statement
}

func (r *sqlRecorder) record(db *gorm.DB) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stmts = append(r.stmts, db.Statement)
}

func (r *sqlRecorder) sql() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.stmts))
	for i, s := range r.stmts {
		out[i] = s.SQL.String()
	}
	return out
}

func (r *sqlRecorder) last() *gorm.Statement {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stmts[len(r.stmts)-1]
}

// newDryRunDB 只生成SQL不执行,不需要真实MySQL
// 关闭默认事务,否则Create/Update会先BeginTx去连接数据库
func newDryRunDB(t *testing.T) (*gorm.DB, *sqlRecorder) {
	t.Helper()
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "bookstore:bookstore@tcp(127.0.0.1:3306)/bookstore?parseTime=true",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	rec := &sqlRecorder{}
	cb := db.Callback()
	require.NoError(t, cb.Query().After("gorm:query").Register("test:record", rec.record))
	require.NoError(t, cb.Create().After("gorm:create").Register("test:record", rec.record))
	require.NoError(t, cb.Update().After("gorm:update").Register("test:record", rec.record))
	require.NoError(t, cb.Delete().After("gorm:delete").Register("test:record", rec.record))
	return db, rec
}

func TestBookRepository_SearchSQL(t *testing.T) {
	db, rec := newDryRunDB(t)
	repo, err := NewBookRepository(db)
	require.NoError(t, err)

	_, _, err = repo.Search(context.Background(), book.SearchParams{
		book.FieldTitle:  {"Go"},
		book.FieldAuthor: {"Rob", "Ken", "Rob"},
	}, book.ListParams{})
	require.NoError(t, err)

	stmt := rec.last()
	sql := stmt.SQL.String()
	// 字段按字典序AND组合,同一字段的值去重后IN
	assert.Contains(t, sql, "books.author IN (?,?) AND books.title IN (?)")
	assert.Contains(t, sql, "`books`.`deleted_at` IS NULL")
	assert.Equal(t, []interface{}{"Rob", "Ken", "Go"}, stmt.Vars)
}

func TestBookRepository_SearchUnknownField(t *testing.T) {
	db, rec := newDryRunDB(t)
	repo, err := NewBookRepository(db)
	require.NoError(t, err)

	_, _, err = repo.Search(context.Background(), book.SearchParams{"publisher": {"Addison"}}, book.ListParams{})
	assert.ErrorIs(t, err, book.ErrUnknownSearchField)
	assert.Empty(t, rec.sql(), "未知字段不应发出查询")
}

func TestBookRepository_ListByCategorySQL(t *testing.T) {
	db, rec := newDryRunDB(t)
	repo, err := NewBookRepository(db)
	require.NoError(t, err)

	_, _, err = repo.ListByCategory(context.Background(), 3, book.ListParams{})
	require.NoError(t, err)

	sql := rec.last().SQL.String()
	assert.Contains(t, sql, "JOIN book_categories ON book_categories.book_id = books.id")
	assert.Contains(t, sql, "book_categories.category_id = ?")
}

func TestBookRepository_LockByISBNSQL(t *testing.T) {
	db, rec := newDryRunDB(t)
	repo, err := NewBookRepository(db)
	require.NoError(t, err)

	_, err = repo.LockByISBN(context.Background(), "9780134190440")
	require.NoError(t, err)

	var locked string
	for _, sql := range rec.sql() {
		if strings.Contains(sql, "FROM `books`") && strings.Contains(sql, "isbn = ?") {
			locked = sql
		}
	}
	require.NotEmpty(t, locked, rec.sql())
	assert.Contains(t, locked, "FOR UPDATE")
	assert.Contains(t, locked, "`books`.`deleted_at` IS NULL")
}

func TestOrderBy(t *testing.T) {
	assert.Equal(t, "books.price ASC, books.id ASC", orderBy(book.SortPriceAsc))
	assert.Equal(t, "books.price DESC, books.id DESC", orderBy(book.SortPriceDesc))
	assert.Equal(t, "books.created_at DESC, books.id DESC", orderBy(""))
}

func TestCartRepository_AddItemUpsertSQL(t *testing.T) {
	db, rec := newDryRunDB(t)
	repo := NewCartRepository(db)

	require.NoError(t, repo.AddItem(context.Background(), 1, 2, 3))

	stmt := rec.last()
	sql := stmt.SQL.String()
	assert.True(t, strings.HasPrefix(sql, "INSERT INTO `cart_items`"), sql)
	assert.Contains(t, sql, "ON DUPLICATE KEY UPDATE `quantity`=cart_items.quantity + ?")
	assert.NotContains(t, sql, "book_title")
}

func TestCartRepository_LockByUserIDSQL(t *testing.T) {
	db, rec := newDryRunDB(t)
	repo := NewCartRepository(db)

	_, err := repo.LockByUserID(context.Background(), 9)
	require.NoError(t, err)

	stmts := rec.sql()
	require.Len(t, stmts, 2)
	assert.Contains(t, stmts[0], "FROM `carts` WHERE user_id = ?")
	assert.Contains(t, stmts[0], "FOR UPDATE")
	// 条目查询不加锁,带出书名和价格
	assert.NotContains(t, stmts[1], "FOR UPDATE")
	assert.Contains(t, stmts[1], "books.title AS book_title, books.price AS book_price")
	// 已删除图书的条目不出现在购物车中
	assert.Contains(t, stmts[1], "JOIN books ON books.id = cart_items.book_id AND books.deleted_at IS NULL")
	assert.NotContains(t, stmts[1], "LEFT JOIN")
}

func TestOrderRepository_UpdateStatusSQL(t *testing.T) {
	db, rec := newDryRunDB(t)
	repo := NewOrderRepository(db)

	// DryRun下RowsAffected为0
	err := repo.UpdateStatus(context.Background(), 5, order.StatusShipped)
	assert.ErrorIs(t, err, order.ErrOrderNotFound)

	stmt := rec.last()
	assert.Contains(t, stmt.SQL.String(), "UPDATE `orders` SET `status`=?")
	assert.Contains(t, stmt.Vars, "SHIPPED")
}

func TestIsDuplicateError(t *testing.T) {
	assert.False(t, isDuplicateError(nil))
	assert.True(t, isDuplicateError(gorm.ErrDuplicatedKey))
	assert.True(t, isDuplicateError(errors.New("Error 1062 (23000): Duplicate entry 'a@b.com' for key 'users.email'")))
	assert.False(t, isDuplicateError(assert.AnError))
}
