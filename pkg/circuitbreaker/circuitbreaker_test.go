package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errUnavailable = errors.New("broker unavailable")

// fakeClock 可手动推进的时钟
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestBreaker(t *testing.T, cfg Config) (*CircuitBreaker, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	cb := NewCircuitBreaker(t.Name(), cfg)
	cb.now = clock.Now
	cb.resetWindow(clock.Now())
	return cb, clock
}

func succeed(context.Context) error { return nil }
func fail(context.Context) error { return errUnavailable }

func TestCircuitBreaker_Closed(t *testing.T) {
	cb, _ := newTestBreaker(t, Config{Interval: 10 * time.Second})
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		require.NoError(t, cb.Execute(ctx, succeed))
	}

	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, uint32(10), cb.Counts().TotalSuccesses)
}

func TestCircuitBreaker_TripsAfterConsecutiveFailures(t *testing.T) {
	cb, _ := newTestBreaker(t, Config{
		ReadyToTrip: func(c Counts) bool { return c.ConsecutiveFailures >= 3 },
	})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, cb.Execute(ctx, fail), errUnavailable)
	}
	assert.Equal(t, StateOpen, cb.State())

	called := false
	err := cb.Execute(ctx, func(context.Context) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrOpenState)
	assert.False(t, called, "熔断打开时不应调用fn")
}

func TestCircuitBreaker_SuccessResetsConsecutiveFailures(t *testing.T) {
	cb, _ := newTestBreaker(t, Config{
		ReadyToTrip: func(c Counts) bool { return c.ConsecutiveFailures >= 3 },
	})
	ctx := context.Background()

	_ = cb.Execute(ctx, fail)
	_ = cb.Execute(ctx, fail)
	require.NoError(t, cb.Execute(ctx, succeed))
	_ = cb.Execute(ctx, fail)
	_ = cb.Execute(ctx, fail)

	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, uint32(2), cb.Counts().ConsecutiveFailures)
}

func TestCircuitBreaker_HalfOpen(t *testing.T) {
	cfg := Config{
		MaxRequests: 2,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(c Counts) bool { return c.ConsecutiveFailures >= 1 },
	}
	ctx := context.Background()

	t.Run("探测成功后关闭", func(t *testing.T) {
		cb, clock := newTestBreaker(t, cfg)
		_ = cb.Execute(ctx, fail)
		require.Equal(t, StateOpen, cb.State())

		clock.Advance(29 * time.Second)
		assert.Equal(t, StateOpen, cb.State())

		clock.Advance(2 * time.Second)
		assert.Equal(t, StateHalfOpen, cb.State())

		require.NoError(t, cb.Execute(ctx, succeed))
		assert.Equal(t, StateHalfOpen, cb.State())
		require.NoError(t, cb.Execute(ctx, succeed))
		assert.Equal(t, StateClosed, cb.State())
	})

	t.Run("探测失败重新打开", func(t *testing.T) {
		cb, clock := newTestBreaker(t, cfg)
		_ = cb.Execute(ctx, fail)
		clock.Advance(31 * time.Second)
		require.Equal(t, StateHalfOpen, cb.State())

		assert.ErrorIs(t, cb.Execute(ctx, fail), errUnavailable)
		assert.Equal(t, StateOpen, cb.State())
	})

	t.Run("超过探测数的请求被拒绝", func(t *testing.T) {
		cb, clock := newTestBreaker(t, Config{
			MaxRequests: 1,
			Timeout:     time.Second,
			ReadyToTrip: cfg.ReadyToTrip,
		})
		_ = cb.Execute(ctx, fail)
		clock.Advance(2 * time.Second)

		err := cb.Execute(ctx, func(ctx context.Context) error {
			// 探测请求进行中，第二个请求应被拒绝
			assert.ErrorIs(t, cb.Execute(ctx, succeed), ErrOpenState)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, StateClosed, cb.State())
	})
}

func TestCircuitBreaker_IntervalResetsCounts(t *testing.T) {
	cb, clock := newTestBreaker(t, Config{
		Interval:    10 * time.Second,
		ReadyToTrip: func(c Counts) bool { return c.ConsecutiveFailures >= 3 },
	})
	ctx := context.Background()

	_ = cb.Execute(ctx, fail)
	_ = cb.Execute(ctx, fail)
	clock.Advance(11 * time.Second)
	_ = cb.Execute(ctx, fail)

	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, uint32(1), cb.Counts().TotalFailures)
}

func TestCircuitBreaker_CanceledIsNotFailure(t *testing.T) {
	cb, _ := newTestBreaker(t, Config{
		ReadyToTrip: func(c Counts) bool { return c.ConsecutiveFailures >= 1 },
	})

	err := cb.Execute(context.Background(), func(context.Context) error {
		return context.Canceled
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_StateChangeCallback(t *testing.T) {
	cb, clock := newTestBreaker(t, Config{
		Timeout:     time.Second,
		ReadyToTrip: func(c Counts) bool { return c.ConsecutiveFailures >= 1 },
	})

	var transitions []string
	cb.SetStateChangeCallback(func(name string, from, to State) {
		transitions = append(transitions, from.String()+"->"+to.String())
	})

	ctx := context.Background()
	_ = cb.Execute(ctx, fail)
	clock.Advance(2 * time.Second)
	_ = cb.Execute(ctx, succeed)

	assert.Equal(t, []string{"CLOSED->OPEN", "OPEN->HALF_OPEN", "HALF_OPEN->CLOSED"}, transitions)
}

func TestCircuitBreaker_Concurrent(t *testing.T) {
	cb, _ := newTestBreaker(t, Config{
		ReadyToTrip: func(c Counts) bool { return c.ConsecutiveFailures >= 1000 },
	})
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_ = cb.Execute(ctx, succeed)
			} else {
				_ = cb.Execute(ctx, fail)
			}
		}(i)
	}
	wg.Wait()

	counts := cb.Counts()
	assert.Equal(t, uint32(50), counts.Requests)
	assert.Equal(t, uint32(25), counts.TotalSuccesses)
	assert.Equal(t, uint32(25), counts.TotalFailures)
}
