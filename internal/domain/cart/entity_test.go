package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart_Total(t *testing.T) {
	c := NewCart(1)
	assert.True(t, c.IsEmpty())
	assert.True(t, c.Total().IsZero())

	c.Items = []CartItem{
		{ID: 1, BookID: 10, Price: decimal.RequireFromString("10.00"), Quantity: 2},
		{ID: 2, BookID: 11, Price: decimal.RequireFromString("5.00"), Quantity: 1},
	}
	assert.False(t, c.IsEmpty())
	assert.Equal(t, "25.00", c.Total().StringFixed(2))
	assert.Equal(t, "20", c.Items[0].Subtotal().String())
}

func TestCart_FindItem(t *testing.T) {
	c := &Cart{ID: 1, Items: []CartItem{{ID: 5, CartID: 1, BookID: 10, Quantity: 1}}}

	item, err := c.FindItem(5)
	require.NoError(t, err)
	assert.Equal(t, uint(10), item.BookID)

	_, err = c.FindItem(6)
	assert.ErrorIs(t, err, ErrCartItemNotFound)
}

func TestValidateQuantity(t *testing.T) {
	assert.NoError(t, ValidateQuantity(1))
	assert.ErrorIs(t, ValidateQuantity(0), ErrInvalidQuantity)
	assert.ErrorIs(t, ValidateQuantity(-3), ErrInvalidQuantity)
}
