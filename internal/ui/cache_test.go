package ui

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestQueryCache_FreshResultServedWithoutRefetch(t *testing.T) {
	now := time.Now()
	c := NewQueryCache()
	c.clock = func() time.Time { return now }

	fetches := 0
	fetch := func(ctx context.Context) (interface{}, error) {
		fetches++
		return fetches, nil
	}

	c.Get(context.Background(), "students", fetch)
	v, _ := c.Get(context.Background(), "students", fetch)
	if fetches != 1 {
		t.Fatalf("fresh entry must not refetch; fetches = %d", fetches)
	}
	if v.(int) != 1 {
		t.Fatalf("expected cached value 1, got %v", v)
	}

	// Past the freshness window the next read refetches.
	now = now.Add(DefaultFreshness + time.Second)
	c.Get(context.Background(), "students", fetch)
	if fetches != 2 {
		t.Fatalf("stale entry must refetch; fetches = %d", fetches)
	}
}

func TestQueryCache_SingleRetryOnFailure(t *testing.T) {
	c := NewQueryCache()

	attempts := 0
	_, err := c.Get(context.Background(), "content", func(ctx context.Context) (interface{}, error) {
		attempts++
		return nil, errors.New("boom")
	})
	if err == nil {
		t.Fatal("expected error after retry exhausted")
	}
	if attempts != 2 {
		t.Fatalf("expected exactly one retry (2 attempts), got %d", attempts)
	}

	// Second call within the retry succeeds and is cached.
	attempts = 0
	v, err := c.Get(context.Background(), "content", func(ctx context.Context) (interface{}, error) {
		attempts++
		if attempts == 1 {
			return nil, errors.New("flaky")
		}
		return "ok", nil
	})
	if err != nil || v != "ok" {
		t.Fatalf("retry should have recovered: v=%v err=%v", v, err)
	}
}

func TestQueryCache_FailuresNotCached(t *testing.T) {
	c := NewQueryCache()

	c.Get(context.Background(), "subjects", func(ctx context.Context) (interface{}, error) {
		return nil, errors.New("down")
	})

	fetches := 0
	v, err := c.Get(context.Background(), "subjects", func(ctx context.Context) (interface{}, error) {
		fetches++
		return "up", nil
	})
	if err != nil || v != "up" {
		t.Fatalf("error result must not be cached: v=%v err=%v", v, err)
	}
	if fetches != 1 {
		t.Fatalf("expected one fetch after failure, got %d", fetches)
	}
}

func TestQueryCache_InvalidateByPrefix(t *testing.T) {
	c := NewQueryCache()

	fetches := map[string]int{}
	fetchFor := func(key string) func(ctx context.Context) (interface{}, error) {
		return func(ctx context.Context) (interface{}, error) {
			fetches[key]++
			return key, nil
		}
	}

	pathsKey := Key("learning-paths", "s1")
	studentsKey := Key("students")
	c.Get(context.Background(), pathsKey, fetchFor(pathsKey))
	c.Get(context.Background(), studentsKey, fetchFor(studentsKey))

	c.Invalidate("learning-paths")

	c.Get(context.Background(), pathsKey, fetchFor(pathsKey))
	c.Get(context.Background(), studentsKey, fetchFor(studentsKey))

	if fetches[pathsKey] != 2 {
		t.Fatalf("invalidated key must refetch; fetches = %d", fetches[pathsKey])
	}
	if fetches[studentsKey] != 1 {
		t.Fatalf("unrelated key must stay cached; fetches = %d", fetches[studentsKey])
	}
}

func TestQueryCache_ConcurrentRequestsDeduplicated(t *testing.T) {
	c := NewQueryCache()

	var fetches int32
	release := make(chan struct{})
	fetch := func(ctx context.Context) (interface{}, error) {
		atomic.AddInt32(&fetches, 1)
		<-release
		return "value", nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := c.Get(context.Background(), "dedup", fetch)
			if err != nil || v != "value" {
				t.Errorf("unexpected result: v=%v err=%v", v, err)
			}
		}()
	}

	// Give the goroutines a chance to pile onto the same key.
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	if n := atomic.LoadInt32(&fetches); n != 1 {
		t.Fatalf("expected a single deduplicated fetch, got %d", n)
	}
}

func TestQueryCache_InvalidationDuringFetchNotCached(t *testing.T) {
	c := NewQueryCache()

	key := Key("learning-paths", "s1")
	started := make(chan struct{})
	release := make(chan struct{})

	go func() {
		c.Get(context.Background(), key, func(ctx context.Context) (interface{}, error) {
			close(started)
			<-release
			return "stale", nil
		})
	}()

	<-started
	c.Invalidate("learning-paths")
	close(release)

	// Wait for the in-flight fetch to finish and attempt to cache.
	time.Sleep(20 * time.Millisecond)

	fetches := 0
	v, _ := c.Get(context.Background(), key, func(ctx context.Context) (interface{}, error) {
		fetches++
		return "fresh", nil
	})
	if fetches != 1 || v != "fresh" {
		t.Fatalf("straddling fetch must not repopulate the cache: fetches=%d v=%v", fetches, v)
	}
}
