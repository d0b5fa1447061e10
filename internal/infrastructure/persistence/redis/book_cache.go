package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/xiebiao/onlinebookstore/internal/domain/book"
	apperrors "github.com/xiebiao/onlinebookstore/pkg/errors"
)

// BookCache 图书详情缓存,Key为book:{id},值为JSON
type BookCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewBookCache ttl为缓存有效期
func NewBookCache(client *redis.Client, ttl time.Duration) *BookCache {
	return &BookCache{client: client, ttl: ttl}
}

// cachedBook 缓存格式,与领域实体解耦
type cachedBook struct {
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

func bookKey(id uint) string {
	return fmt.Sprintf("book:%d", id)
}

// Get 未命中返回(nil, false, nil)
func (c *BookCache) Get(ctx context.Context, id uint) (*book.Book, bool, error) {
	data, err := c.client.Get(ctx, bookKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, apperrors.ErrRedisError.WithCause(err)
	}

	var v cachedBook
	if err := json.Unmarshal(data, &v); err != nil {
		// 格式损坏按未命中处理,回填时会覆盖
		return nil, false, nil
	}
	return &book.Book{
		ID:          v.ID,
		Title:       v.Title,
		Author:      v.Author,
		ISBN:        v.ISBN,
		Price:       v.Price,
		Description: v.Description,
		CoverImage:  v.CoverImage,
		CategoryIDs: v.CategoryIDs,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}, true, nil
}

func (c *BookCache) Set(ctx context.Context, b *book.Book) error {
	data, err := json.Marshal(cachedBook{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		ISBN:        b.ISBN,
		Price:       b.Price,
		Description: b.Description,
		CoverImage:  b.CoverImage,
		CategoryIDs: b.CategoryIDs,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	})
	if err != nil {
		return apperrors.Wrap(err, "序列化图书缓存失败")
	}
	if err := c.client.Set(ctx, bookKey(b.ID), data, c.ttl).Err(); err != nil {
		return apperrors.ErrRedisError.WithCause(err)
	}
	return nil
}

func (c *BookCache) Delete(ctx context.Context, id uint) error {
	if err := c.client.Del(ctx, bookKey(id)).Err(); err != nil {
		return apperrors.ErrRedisError.WithCause(err)
	}
	return nil
}
