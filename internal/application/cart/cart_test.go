package cart_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcart "github.com/xiebiao/onlinebookstore/internal/application/cart"
	"github.com/xiebiao/onlinebookstore/internal/domain/book"
	"github.com/xiebiao/onlinebookstore/internal/domain/cart"
	"github.com/xiebiao/onlinebookstore/internal/infrastructure/persistence"
)

func TestCartUseCases(t *testing.T) {
	ctx := context.Background()
	repos, err := persistence.NewMemoryRepositories()
	require.NoError(t, err)

	goBook := book.NewBook("Go", "Rob", "1111111111", decimal.RequireFromString("12.50"), "", "", nil)
	require.NoError(t, repos.Books.Create(ctx, goBook))
	cBook := book.NewBook("C", "Ken", "2222222222", decimal.RequireFromString("7.25"), "", "", nil)
	require.NoError(t, repos.Books.Create(ctx, cBook))

	get := appcart.NewGetCartUseCase(repos.Carts)
	add := appcart.NewAddItemUseCase(repos.Carts, repos.Books)
	update := appcart.NewUpdateItemUseCase(repos.Carts)
	remove := appcart.NewRemoveItemUseCase(repos.Carts)

	t.Run("没有购物车时自动创建", func(t *testing.T) {
		resp, err := get.Execute(ctx, 1)
		require.NoError(t, err)
		assert.NotZero(t, resp.ID)
		assert.Empty(t, resp.Items)
		assert.True(t, resp.Total.IsZero())
	})

	t.Run("同一本书累加数量", func(t *testing.T) {
		_, err := add.Execute(ctx, appcart.AddItemRequest{UserID: 1, BookID: goBook.ID, Quantity: 2})
		require.NoError(t, err)
		resp, err := add.Execute(ctx, appcart.AddItemRequest{UserID: 1, BookID: goBook.ID, Quantity: 3})
		require.NoError(t, err)

		require.Len(t, resp.Items, 1)
		assert.Equal(t, 5, resp.Items[0].Quantity)
		assert.Equal(t, "Go", resp.Items[0].BookTitle)
		assert.Equal(t, "62.5", resp.Total.String())
	})

	t.Run("参数校验", func(t *testing.T) {
		_, err := add.Execute(ctx, appcart.AddItemRequest{UserID: 1, BookID: goBook.ID, Quantity: 0})
		assert.ErrorIs(t, err, cart.ErrInvalidQuantity)

		_, err = add.Execute(ctx, appcart.AddItemRequest{UserID: 1, BookID: 999, Quantity: 1})
		assert.ErrorIs(t, err, book.ErrBookNotFound)
	})

	resp, err := add.Execute(ctx, appcart.AddItemRequest{UserID: 1, BookID: cBook.ID, Quantity: 1})
	require.NoError(t, err)
	require.Len(t, resp.Items, 2)
	var cItem uint
	for _, item := range resp.Items {
		if item.BookID == cBook.ID {
			cItem = item.ID
		}
	}
	require.NotZero(t, cItem)

	t.Run("修改数量", func(t *testing.T) {
		resp, err := update.Execute(ctx, appcart.UpdateItemRequest{UserID: 1, ItemID: cItem, Quantity: 4})
		require.NoError(t, err)
		assert.Equal(t, "91.5", resp.Total.String())

		_, err = update.Execute(ctx, appcart.UpdateItemRequest{UserID: 1, ItemID: cItem, Quantity: -1})
		assert.ErrorIs(t, err, cart.ErrInvalidQuantity)
	})

	t.Run("不能操作别人的条目", func(t *testing.T) {
		_, err := update.Execute(ctx, appcart.UpdateItemRequest{UserID: 2, ItemID: cItem, Quantity: 1})
		assert.ErrorIs(t, err, cart.ErrCartItemNotFound)
		assert.ErrorIs(t, remove.Execute(ctx, 2, cItem), cart.ErrCartItemNotFound)
	})

	t.Run("删除条目", func(t *testing.T) {
		require.NoError(t, remove.Execute(ctx, 1, cItem))
		assert.ErrorIs(t, remove.Execute(ctx, 1, cItem), cart.ErrCartItemNotFound)

		resp, err := get.Execute(ctx, 1)
		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, goBook.ID, resp.Items[0].BookID)
	})
}
