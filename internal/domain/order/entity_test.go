package order

import (
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/onlinebookstore/internal/domain/cart"
)

func TestNewFromCart(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	t.Run("价格快照和合计", func(t *testing.T) {
		c := &cart.Cart{ID: 1, UserID: 7, Items: []cart.CartItem{
			{ID: 1, BookID: 100, BookTitle: "A", Price: decimal.RequireFromString("10.00"), Quantity: 2},
			{ID: 2, BookID: 101, BookTitle: "B", Price: decimal.RequireFromString("5.00"), Quantity: 1},
		}}

		o, err := NewFromCart(c, "上海市", now)
		require.NoError(t, err)

		assert.Equal(t, uint(7), o.UserID)
		assert.Equal(t, StatusPending, o.Status)
		assert.Equal(t, now, o.OrderDate)
		assert.Equal(t, "上海市", o.ShippingAddress)
		assert.Equal(t, "25.00", o.Total.StringFixed(2))
		require.Len(t, o.Items, 2)
		assert.Equal(t, uint(100), o.Items[0].BookID)
		assert.Equal(t, "A", o.Items[0].BookTitle)
		assert.True(t, o.Items[0].Price.Equal(decimal.NewFromInt(10)))
		assert.Regexp(t, regexp.MustCompile(`^ORD\d{16}$`), o.OrderNo)

		// 修改购物车不影响订单快照
		c.Items[0].Price = decimal.NewFromInt(99)
		assert.True(t, o.Items[0].Price.Equal(decimal.NewFromInt(10)))
	})

	t.Run("小数精确相加", func(t *testing.T) {
		c := &cart.Cart{UserID: 1, Items: []cart.CartItem{
			{BookID: 1, Price: decimal.RequireFromString("0.10"), Quantity: 3},
			{BookID: 2, Price: decimal.RequireFromString("0.20"), Quantity: 1},
		}}
		o, err := NewFromCart(c, "addr", now)
		require.NoError(t, err)
		assert.True(t, o.Total.Equal(decimal.RequireFromString("0.5")))
	})

	t.Run("空购物车", func(t *testing.T) {
		_, err := NewFromCart(&cart.Cart{UserID: 1}, "addr", now)
		assert.ErrorIs(t, err, cart.ErrCartEmpty)

		_, err = NewFromCart(nil, "addr", now)
		assert.ErrorIs(t, err, cart.ErrCartEmpty)
	})
}

func TestOrder_TransitionTo(t *testing.T) {
	tests := []struct {
		from Status
		to   Status
		ok   bool
	}{
		{StatusPending, StatusProcessing, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusShipped, false},
		{StatusProcessing, StatusShipped, true},
		{StatusProcessing, StatusCancelled, true},
		{StatusShipped, StatusDelivered, true},
		{StatusShipped, StatusCancelled, false},
		{StatusDelivered, StatusCompleted, true},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
		{StatusPending, StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			o := &Order{Status: tt.from}
			err := o.TransitionTo(tt.to)
			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, tt.to, o.Status)
			} else {
				assert.ErrorIs(t, err, ErrInvalidStatusTransition)
				assert.Equal(t, tt.from, o.Status)
			}
		})
	}
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus(" shipped ")
	require.NoError(t, err)
	assert.Equal(t, StatusShipped, s)

	_, err = ParseStatus("PAID")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusDelivered.IsTerminal())
}

func TestOrder_FindItem(t *testing.T) {
	o := &Order{ID: 1, UserID: 2, Items: []OrderItem{{ID: 10, OrderID: 1}}}

	item, err := o.FindItem(10)
	require.NoError(t, err)
	assert.Equal(t, uint(1), item.OrderID)

	_, err = o.FindItem(11)
	assert.ErrorIs(t, err, ErrOrderItemNotFound)

	assert.True(t, o.IsOwnedBy(2))
	assert.False(t, o.IsOwnedBy(3))
}
