package query

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"noticeadmin/internal/notices"
)

func TestKey(t *testing.T) {
	t.Run("NilParams", func(t *testing.T) {
		assert.Equal(t, "notices", Key("notices", nil))
	})

	t.Run("StructuralEquality", func(t *testing.T) {
		a := Key("notices", notices.SearchFilter{Text: "maintenance"})
		b := Key("notices", notices.SearchFilter{Text: "maintenance"})
		assert.Equal(t, a, b)
	})

	t.Run("DistinctFiltersDistinctKeys", func(t *testing.T) {
		a := Key("notices", notices.SearchFilter{Type: notices.TypeAll})
		b := Key("notices", notices.SearchFilter{Type: notices.TypeHidden})
		assert.NotEqual(t, a, b)
	})
}

func TestCache_Fetch(t *testing.T) {
	ctx := context.Background()

	t.Run("ReturnsAndCaches", func(t *testing.T) {
		cache := NewCache()
		var calls atomic.Int64
		fetch := func(ctx context.Context) (any, error) {
			calls.Add(1)
			return "payload", nil
		}

		for range 3 {
			v, err := cache.Fetch(ctx, "k", fetch)
			require.NoError(t, err)
			assert.Equal(t, "payload", v)
		}
		assert.Equal(t, int64(1), calls.Load(), "settled entry must not refetch")
	})

	t.Run("ErrorSettles", func(t *testing.T) {
		cache := NewCache()
		boom := errors.New("boom")
		var calls atomic.Int64
		fetch := func(ctx context.Context) (any, error) {
			calls.Add(1)
			return nil, boom
		}

		_, err := cache.Fetch(ctx, "k", fetch)
		assert.ErrorIs(t, err, boom)

		_, err = cache.Fetch(ctx, "k", fetch)
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, int64(1), calls.Load(), "a settled error is served from cache until invalidated")
	})

	t.Run("ContextCancelled", func(t *testing.T) {
		cache := NewCache()
		release := make(chan struct{})
		fetch := func(ctx context.Context) (any, error) {
			<-release
			return "late", nil
		}

		cancelCtx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := cache.Fetch(cancelCtx, "k", fetch)
		assert.ErrorIs(t, err, context.Canceled)
		close(release)
	})
}

func TestCache_ConcurrentReadsShareOneFetch(t *testing.T) {
	ctx := context.Background()
	cache := NewCache()

	var calls atomic.Int64
	release := make(chan struct{})
	fetch := func(ctx context.Context) (any, error) {
		calls.Add(1)
		<-release
		return "payload", nil
	}

	const readers = 16
	var wg sync.WaitGroup
	results := make([]any, readers)
	errs := make([]error, readers)
	for i := range readers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = cache.Fetch(ctx, "k", fetch)
		}()
	}

	// Let the readers pile up on the single in-flight fetch.
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int64(1), calls.Load())
	for i := range readers {
		require.NoError(t, errs[i])
		assert.Equal(t, "payload", results[i])
	}
}

func TestCache_DistinctKeysFetchIndependently(t *testing.T) {
	ctx := context.Background()
	cache := NewCache()

	var calls atomic.Int64
	fetch := func(ctx context.Context) (any, error) {
		return calls.Add(1), nil
	}

	a, err := cache.Fetch(ctx, Key("notices", notices.SearchFilter{}), fetch)
	require.NoError(t, err)
	b, err := cache.Fetch(ctx, Key("notices", notices.SearchFilter{Text: "x"}), fetch)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Equal(t, int64(2), calls.Load())
}

func TestCache_Read(t *testing.T) {
	ctx := context.Background()

	t.Run("FirstReadIsLoading", func(t *testing.T) {
		cache := NewCache()
		release := make(chan struct{})
		fetch := func(ctx context.Context) (any, error) {
			<-release
			return "payload", nil
		}

		snap := cache.Read(ctx, "k", fetch)
		assert.True(t, snap.IsLoading)
		assert.Nil(t, snap.Data)

		close(release)
		require.Eventually(t, func() bool {
			return cache.Read(ctx, "k", fetch).Data == "payload"
		}, time.Second, 5*time.Millisecond)
		assert.False(t, cache.Read(ctx, "k", fetch).IsLoading)
	})

	t.Run("FailedRefetchKeepsPreviousData", func(t *testing.T) {
		cache := NewCache()
		boom := errors.New("boom")
		var fail atomic.Bool
		fetch := func(ctx context.Context) (any, error) {
			if fail.Load() {
				return nil, boom
			}
			return "first", nil
		}

		_, err := cache.Fetch(ctx, "k", fetch)
		require.NoError(t, err)

		fail.Store(true)
		cache.Invalidate("k")

		require.Eventually(t, func() bool {
			snap := cache.Read(ctx, "k", fetch)
			return snap.Err != nil && !snap.IsLoading
		}, time.Second, 5*time.Millisecond)

		snap := cache.Read(ctx, "k", fetch)
		assert.ErrorIs(t, snap.Err, boom)
		assert.Equal(t, "first", snap.Data, "stale data stays visible alongside the error")
	})
}

func TestCache_Invalidate(t *testing.T) {
	ctx := context.Background()

	t.Run("PrefixMatchesListsNotGets", func(t *testing.T) {
		cache := NewCache()
		var listCalls, getCalls atomic.Int64

		listKey := Key("notices", notices.SearchFilter{})
		getKey := Key("notice", 1)

		_, err := cache.Fetch(ctx, listKey, func(ctx context.Context) (any, error) {
			return listCalls.Add(1), nil
		})
		require.NoError(t, err)
		_, err = cache.Fetch(ctx, getKey, func(ctx context.Context) (any, error) {
			return getCalls.Add(1), nil
		})
		require.NoError(t, err)

		cache.Invalidate("notices")

		_, err = cache.Fetch(ctx, listKey, func(ctx context.Context) (any, error) {
			return listCalls.Add(1), nil
		})
		require.NoError(t, err)
		_, err = cache.Fetch(ctx, getKey, func(ctx context.Context) (any, error) {
			return getCalls.Add(1), nil
		})
		require.NoError(t, err)

		assert.Equal(t, int64(2), listCalls.Load())
		assert.Equal(t, int64(1), getCalls.Load(), `"notices" prefix must not touch "notice?1"`)
	})

	t.Run("SupersedesInFlightFetch", func(t *testing.T) {
		cache := NewCache()
		first := make(chan struct{})
		var phase atomic.Int64

		fetch := func(ctx context.Context) (any, error) {
			if phase.Add(1) == 1 {
				<-first
				return "stale response", nil
			}
			return "fresh", nil
		}

		snap := cache.Read(ctx, "k", fetch)
		require.True(t, snap.IsLoading)

		// The invalidation lands while the first fetch is still in flight;
		// its response must be discarded when it finally arrives.
		cache.Invalidate("k")
		close(first)

		v, err := cache.Fetch(ctx, "k", fetch)
		require.NoError(t, err)
		assert.Equal(t, "fresh", v)

		time.Sleep(20 * time.Millisecond)
		assert.Equal(t, "fresh", cache.Read(ctx, "k", fetch).Data,
			"late first response must never overwrite newer data")
	})

	t.Run("RefetchesForSubscribers", func(t *testing.T) {
		cache := NewCache()
		var calls atomic.Int64
		fetch := func(ctx context.Context) (any, error) {
			return calls.Add(1), nil
		}

		notified := make(chan struct{}, 4)
		cancel := cache.Subscribe("k", func() {
			notified <- struct{}{}
		})
		defer cancel()

		_, err := cache.Fetch(ctx, "k", fetch)
		require.NoError(t, err)
		<-notified

		cache.Invalidate("k")

		select {
		case <-notified:
		case <-time.After(time.Second):
			t.Fatal("subscriber was not notified after invalidation refetch")
		}
		assert.Equal(t, int64(2), calls.Load())
	})

	t.Run("NoRefetchWithoutSubscribers", func(t *testing.T) {
		cache := NewCache()
		var calls atomic.Int64
		fetch := func(ctx context.Context) (any, error) {
			return calls.Add(1), nil
		}

		_, err := cache.Fetch(ctx, "k", fetch)
		require.NoError(t, err)

		cache.Invalidate("k")
		time.Sleep(20 * time.Millisecond)
		assert.Equal(t, int64(1), calls.Load(), "an unwatched stale entry refetches lazily on the next read")
	})
}

func TestCache_SubscribeCancel(t *testing.T) {
	ctx := context.Background()
	cache := NewCache()

	var fired atomic.Int64
	cancel := cache.Subscribe("k", func() {
		fired.Add(1)
	})
	cancel()

	_, err := cache.Fetch(ctx, "k", func(ctx context.Context) (any, error) {
		return "payload", nil
	})
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int64(0), fired.Load())
}

func TestCache_Mutate(t *testing.T) {
	ctx := context.Background()

	t.Run("RunsAndReleases", func(t *testing.T) {
		cache := NewCache()

		v, err := cache.Mutate(ctx, "notices", func(ctx context.Context) (any, error) {
			return "created", nil
		})
		require.NoError(t, err)
		assert.Equal(t, "created", v)

		_, err = cache.Mutate(ctx, "notices", func(ctx context.Context) (any, error) {
			return "again", nil
		})
		assert.NoError(t, err, "resource is free again after the first mutation returns")
	})

	t.Run("RejectsOverlapSameResource", func(t *testing.T) {
		cache := NewCache()
		entered := make(chan struct{})
		release := make(chan struct{})

		go func() {
			_, _ = cache.Mutate(ctx, "notices/1", func(ctx context.Context) (any, error) {
				close(entered)
				<-release
				return nil, nil
			})
		}()
		<-entered

		_, err := cache.Mutate(ctx, "notices/1", func(ctx context.Context) (any, error) {
			return nil, nil
		})
		assert.ErrorIs(t, err, ErrMutationInFlight)
		close(release)
	})

	t.Run("DistinctResourcesDoNotBlock", func(t *testing.T) {
		cache := NewCache()
		entered := make(chan struct{})
		release := make(chan struct{})

		go func() {
			_, _ = cache.Mutate(ctx, "notices/1", func(ctx context.Context) (any, error) {
				close(entered)
				<-release
				return nil, nil
			})
		}()
		<-entered

		_, err := cache.Mutate(ctx, "notices/2", func(ctx context.Context) (any, error) {
			return "ok", nil
		})
		assert.NoError(t, err)
		close(release)
	})
}
