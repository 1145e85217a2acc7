package querycache

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counter(calls *atomic.Int32, value string) func(context.Context) (string, error) {
	return func(context.Context) (string, error) {
		calls.Add(1)
		return value, nil
	}
}

func TestFetch_CachesWithinTTL(t *testing.T) {
	c := New(time.Minute)
	var calls atomic.Int32
	key := Key{"employees", "page=1"}

	v, err := Fetch(context.Background(), c, key, counter(&calls, "a"))
	require.NoError(t, err)
	assert.Equal(t, "a", v)

	v, err = Fetch(context.Background(), c, key, counter(&calls, "b"))
	require.NoError(t, err)
	assert.Equal(t, "a", v)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFetch_ExpiredEntryRefetched(t *testing.T) {
	c := New(time.Minute)
	now := time.Date(2025, 9, 22, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	var calls atomic.Int32
	key := Key{"trainings"}

	_, _ = Fetch(context.Background(), c, key, counter(&calls, "a"))
	now = now.Add(2 * time.Minute)
	v, err := Fetch(context.Background(), c, key, counter(&calls, "b"))
	require.NoError(t, err)
	assert.Equal(t, "b", v)
	assert.Equal(t, int32(2), calls.Load())
}

func TestFetch_ErrorsAreNotCached(t *testing.T) {
	c := New(time.Minute)
	key := Key{"employees"}

	_, err := Fetch(context.Background(), c, key, func(context.Context) (int, error) {
		return 0, errors.New("down")
	})
	require.Error(t, err)
	assert.Equal(t, 0, c.Len())

	v, err := Fetch(context.Background(), c, key, func(context.Context) (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestFetch_DeduplicatesConcurrentCalls(t *testing.T) {
	c := New(time.Minute)
	var calls atomic.Int32
	release := make(chan struct{})
	key := Key{"assignments"}

	fetch := func(context.Context) (string, error) {
		calls.Add(1)
		<-release
		return "shared", nil
	}

	var wg sync.WaitGroup
	results := make([]string, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = Fetch(context.Background(), c, key, fetch)
		}(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, r := range results {
		assert.Equal(t, "shared", r)
	}
}

func TestInvalidate_DropsPrefixOnly(t *testing.T) {
	c := New(time.Minute)
	var calls atomic.Int32

	_, _ = Fetch(context.Background(), c, Key{"employees", "page=1"}, counter(&calls, "e1"))
	_, _ = Fetch(context.Background(), c, Key{"employees", "page=2"}, counter(&calls, "e2"))
	_, _ = Fetch(context.Background(), c, Key{"employees-archive"}, counter(&calls, "x"))
	_, _ = Fetch(context.Background(), c, Key{"trainings"}, counter(&calls, "t"))
	require.Equal(t, 4, c.Len())

	c.Invalidate("employees")
	assert.Equal(t, 2, c.Len())

	v, _ := Fetch(context.Background(), c, Key{"employees", "page=1"}, counter(&calls, "fresh"))
	assert.Equal(t, "fresh", v)
}

func TestInvalidate_FencesInFlightFetch(t *testing.T) {
	c := New(time.Minute)
	started := make(chan struct{})
	release := make(chan struct{})
	key := Key{"employees"}

	done := make(chan string)
	go func() {
		v, _ := Fetch(context.Background(), c, key, func(context.Context) (string, error) {
			close(started)
			<-release
			return "stale", nil
		})
		done <- v
	}()

	<-started
	c.Invalidate("employees")
	close(release)
	assert.Equal(t, "stale", <-done)

	assert.Equal(t, 0, c.Len(), "fetch started before invalidation must not be stored")
}

func TestNew_ZeroTTLDisablesStorage(t *testing.T) {
	c := New(0)
	var calls atomic.Int32
	_, _ = Fetch(context.Background(), c, Key{"trainings"}, counter(&calls, "a"))
	_, _ = Fetch(context.Background(), c, Key{"trainings"}, counter(&calls, "a"))
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, 0, c.Len())
}

func TestSweep(t *testing.T) {
	c := New(time.Minute)
	now := time.Date(2025, 9, 22, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	var calls atomic.Int32

	_, _ = Fetch(context.Background(), c, Key{"a"}, counter(&calls, "a"))
	now = now.Add(30 * time.Second)
	_, _ = Fetch(context.Background(), c, Key{"b"}, counter(&calls, "b"))
	now = now.Add(45 * time.Second)

	assert.Equal(t, 1, c.Sweep())
	assert.Equal(t, 1, c.Len())
}

func TestStartSweeper(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s, err := StartSweeper(New(time.Minute), "@every 1m", logger)
	require.NoError(t, err)
	s.Stop()

	_, err = StartSweeper(New(time.Minute), "not a schedule", logger)
	assert.Error(t, err)
}

func TestFetch_CancelledCallerDoesNotFailOthers(t *testing.T) {
	c := New(time.Minute)
	started := make(chan struct{})
	release := make(chan struct{})
	key := Key{"employees", "page=1"}

	fetch := func(ctx context.Context) (string, error) {
		close(started)
		select {
		case <-release:
			return "rows", nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	firstCtx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := Fetch(firstCtx, c, key, fetch)
		firstErr <- err
	}()
	<-started

	secondDone := make(chan string, 1)
	go func() {
		v, err := Fetch(context.Background(), c, key, fetch)
		assert.NoError(t, err)
		secondDone <- v
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()
	require.ErrorIs(t, <-firstErr, context.Canceled)

	close(release)
	assert.Equal(t, "rows", <-secondDone)
	assert.Equal(t, 1, c.Len())
}
