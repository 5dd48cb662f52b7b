package flight

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCachesResult(t *testing.T) {
	var calls atomic.Int32
	c := NewCache(func(_ context.Context, k string) (string, error) {
		calls.Add(1)
		return "v:" + k, nil
	})

	for range 3 {
		v, err := c.Get(context.Background(), "a")
		require.NoError(t, err)
		assert.Equal(t, "v:a", v)
	}
	assert.EqualValues(t, 1, calls.Load())
	assert.Equal(t, 1, c.Len())
}

func TestGetCoalescesConcurrentCalls(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	c := NewCache(func(_ context.Context, k int) (int, error) {
		calls.Add(1)
		<-release
		return k * 2, nil
	})

	var wg sync.WaitGroup
	results := make([]int, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := c.Get(context.Background(), 21)
			assert.NoError(t, err)
			results[i] = v
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.EqualValues(t, 1, calls.Load())
	for _, v := range results {
		assert.Equal(t, 42, v)
	}
}

func TestErrorsAreNotCached(t *testing.T) {
	var calls atomic.Int32
	c := NewCache(func(_ context.Context, _ string) (string, error) {
		if calls.Add(1) == 1 {
			return "", errors.New("boom")
		}
		return "ok", nil
	})

	_, err := c.Get(context.Background(), "k")
	assert.Error(t, err)

	v, err := c.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.EqualValues(t, 2, calls.Load())
}

func TestForceAndForget(t *testing.T) {
	var calls atomic.Int32
	c := NewCache(func(_ context.Context, _ string) (int32, error) {
		return calls.Add(1), nil
	})
	ctx := context.Background()

	v, _ := c.Get(ctx, "k")
	assert.EqualValues(t, 1, v)

	v, _ = c.Force(ctx, "k")
	assert.EqualValues(t, 2, v)

	v, _ = c.Get(ctx, "k")
	assert.EqualValues(t, 2, v)

	c.Forget("k")
	assert.Equal(t, 0, c.Len())
	v, _ = c.Get(ctx, "k")
	assert.EqualValues(t, 3, v)
}

func TestWaiterHonoursContext(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	c := NewCache(func(ctx context.Context, _ string) (string, error) {
		select {
		case <-release:
			return "late", nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	})

	go c.Get(context.Background(), "k")
	time.Sleep(10 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestExpiryKeepsStrongReference(t *testing.T) {
	c := NewCache(func(_ context.Context, k string) ([]byte, error) {
		return []byte(k), nil
	})
	c.Expiry(0)

	v, err := c.Get(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), v)
}

func TestStarterCancelDoesNotFailJoiners(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32
	c := NewCache(func(ctx context.Context, k string) (string, error) {
		calls.Add(1)
		close(started)
		select {
		case <-release:
			return "v:" + k, nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	})

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := c.Get(ctxA, "k")
		errA <- err
	}()
	<-started

	type result struct {
		v   string
		err error
	}
	resB := make(chan result, 1)
	go func() {
		v, err := c.Get(context.Background(), "k")
		resB <- result{v, err}
	}()
	time.Sleep(10 * time.Millisecond)

	cancelA()
	select {
	case err := <-errA:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("cancelled caller kept waiting")
	}

	close(release)
	select {
	case r := <-resB:
		require.NoError(t, r.err)
		assert.Equal(t, "v:k", r.v)
	case <-time.After(time.Second):
		t.Fatal("joined caller never received the value")
	}
	assert.EqualValues(t, 1, calls.Load())

	v, err := c.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, "v:k", v)
}
