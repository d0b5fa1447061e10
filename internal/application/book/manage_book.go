package book

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/onlinebookstore/internal/application"
	"github.com/xiebiao/onlinebookstore/internal/domain/book"
	"github.com/xiebiao/onlinebookstore/internal/domain/category"
	"github.com/xiebiao/onlinebookstore/pkg/logger"
	"github.com/xiebiao/onlinebookstore/pkg/metrics"
)

// CreateBookUseCase 新增图书(管理员)
type CreateBookUseCase struct {
	tx           application.Transactor
	bookRepo     book.Repository
	categoryRepo category.Repository
}

// NewCreateBookUseCase 创建新增图书用例
func NewCreateBookUseCase(tx application.Transactor, bookRepo book.Repository, categoryRepo category.Repository) *CreateBookUseCase {
	return &CreateBookUseCase{tx: tx, bookRepo: bookRepo, categoryRepo: categoryRepo}
}

// CreateBookRequest 新增图书请求
type CreateBookRequest struct {
	Title       string
	Author      string
	ISBN        string
	Price       decimal.Decimal
	Description string
	CoverImage  string
	CategoryIDs []uint
}

// Execute 执行新增
// 1. 校验ISBN格式和价格
// 2. ISBN在未删除图书中唯一,检查和写入在同一事务中
// 3. 分类必须存在
func (uc *CreateBookUseCase) Execute(ctx context.Context, req CreateBookRequest) (*BookResponse, error) {
	if err := book.ValidateISBN(req.ISBN); err != nil {
		return nil, err
	}
	if err := book.ValidatePrice(req.Price); err != nil {
		return nil, err
	}

	b := book.NewBook(req.Title, req.Author, req.ISBN, req.Price, req.Description, req.CoverImage, req.CategoryIDs)

	err := uc.tx.Transaction(ctx, func(txCtx context.Context) error {
		if err := ensureISBNAvailable(txCtx, uc.bookRepo, b.ISBN, 0); err != nil {
			return err
		}
		if err := ensureCategoriesExist(txCtx, uc.categoryRepo, b.CategoryIDs); err != nil {
			return err
		}
		return uc.bookRepo.Create(txCtx, b)
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("book created",
		slog.Uint64("book_id", uint64(b.ID)),
		slog.String("isbn", b.ISBN),
	)
	return toBookResponse(b), nil
}

// GetBookUseCase 查询图书详情(Cache-Aside)
type GetBookUseCase struct {
	bookRepo book.Repository
	cache    Cache
}

// NewGetBookUseCase cache为nil时不使用缓存
func NewGetBookUseCase(bookRepo book.Repository, cache Cache) *GetBookUseCase {
	if cache == nil {
		cache = NoopCache{}
	}
	return &GetBookUseCase{bookRepo: bookRepo, cache: cache}
}

// Execute 缓存异常时降级查库,不影响请求
func (uc *GetBookUseCase) Execute(ctx context.Context, id uint) (*BookResponse, error) {
	log := logger.FromContext(ctx)

	cached, ok, err := uc.cache.Get(ctx, id)
	switch {
	case err != nil:
		metrics.IncBookCache("error")
		log.Warn("book cache get failed", slog.Uint64("book_id", uint64(id)), slog.Any("error", err))
	case ok:
		metrics.IncBookCache("hit")
		return toBookResponse(cached), nil
	default:
		metrics.IncBookCache("miss")
	}

	b, err := uc.bookRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := uc.cache.Set(ctx, b); err != nil {
		log.Warn("book cache set failed", slog.Uint64("book_id", uint64(id)), slog.Any("error", err))
	}
	return toBookResponse(b), nil
}

// UpdateBookUseCase 部分更新图书(管理员)
type UpdateBookUseCase struct {
	tx           application.Transactor
	bookRepo     book.Repository
	categoryRepo category.Repository
	cache        Cache
}

// NewUpdateBookUseCase 创建更新用例
func NewUpdateBookUseCase(tx application.Transactor, bookRepo book.Repository, categoryRepo category.Repository, cache Cache) *UpdateBookUseCase {
	if cache == nil {
		cache = NoopCache{}
	}
	return &UpdateBookUseCase{tx: tx, bookRepo: bookRepo, categoryRepo: categoryRepo, cache: cache}
}

// Execute 只修改Patch中提供的字段
func (uc *UpdateBookUseCase) Execute(ctx context.Context, id uint, patch book.Patch) (*BookResponse, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var b *book.Book
	err := uc.tx.Transaction(ctx, func(txCtx context.Context) error {
		var err error
		b, err = uc.bookRepo.FindByID(txCtx, id)
		if err != nil {
			return err
		}

		oldISBN := b.ISBN
		b.ApplyPatch(patch)

		if b.ISBN != oldISBN {
			if err := ensureISBNAvailable(txCtx, uc.bookRepo, b.ISBN, b.ID); err != nil {
				return err
			}
		}
		if patch.CategoryIDs != nil {
			if err := ensureCategoriesExist(txCtx, uc.categoryRepo, b.CategoryIDs); err != nil {
				return err
			}
		}
		return uc.bookRepo.Update(txCtx, b)
	})
	if err != nil {
		return nil, err
	}
	invalidate(ctx, uc.cache, id)
	return toBookResponse(b), nil
}

// DeleteBookUseCase 软删除图书(管理员)
type DeleteBookUseCase struct {
	bookRepo book.Repository
	cache    Cache
}

// NewDeleteBookUseCase 创建删除用例
func NewDeleteBookUseCase(bookRepo book.Repository, cache Cache) *DeleteBookUseCase {
	if cache == nil {
		cache = NoopCache{}
	}
	return &DeleteBookUseCase{bookRepo: bookRepo, cache: cache}
}

// Execute 不存在返回ErrBookNotFound
func (uc *DeleteBookUseCase) Execute(ctx context.Context, id uint) error {
	if err := uc.bookRepo.Delete(ctx, id); err != nil {
		return err
	}
	invalidate(ctx, uc.cache, id)

	logger.FromContext(ctx).Info("book deleted", slog.Uint64("book_id", uint64(id)))
	return nil
}

// ensureISBNAvailable selfID为正在更新的图书ID,新增时传0
// 需在事务中调用,加锁读取直到写入提交
func ensureISBNAvailable(ctx context.Context, repo book.Repository, isbn string, selfID uint) error {
	existing, err := repo.LockByISBN(ctx, isbn)
	if err != nil {
		if errors.Is(err, book.ErrBookNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return book.ErrISBNDuplicate
	}
	return nil
}

func ensureCategoriesExist(ctx context.Context, repo category.Repository, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	found, err := repo.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(found) == len(ids) {
		return nil
	}

	exists := make(map[uint]bool, len(found))
	for _, c := range found {
		exists[c.ID] = true
	}
	for _, id := range ids {
		if !exists[id] {
			return fmt.Errorf("category %d: %w", id, category.ErrCategoryNotFound)
		}
	}
	return nil
}

// invalidate 删除缓存失败只记录日志,缓存会在TTL后过期
func invalidate(ctx context.Context, cache Cache, id uint) {
	if err := cache.Delete(ctx, id); err != nil {
		logger.FromContext(ctx).Warn("book cache delete failed",
			slog.Uint64("book_id", uint64(id)),
			slog.Any("error", err),
		)
	}
}
