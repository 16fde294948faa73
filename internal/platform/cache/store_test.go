package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_CollapsesConcurrentLoads(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var loads atomic.Int32

	loader := func(context.Context) (any, error) {
		loads.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "catalog", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "players:catalog", loader)
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := v.(string); got != "catalog" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := loads.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_ServesCachedValue(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var loads atomic.Int32

	loader := func(context.Context) (any, error) {
		loads.Add(1)
		return "cached", nil
	}

	if _, err := store.GetOrLoad(context.Background(), "players:catalog", loader); err != nil {
		t.Fatalf("first GetOrLoad error: %v", err)
	}
	if _, err := store.GetOrLoad(context.Background(), "players:catalog", loader); err != nil {
		t.Fatalf("second GetOrLoad error: %v", err)
	}

	if got := loads.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_LoaderErrorIsNotCached(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var loads atomic.Int32
	loadErr := errors.New("repository down")

	if _, err := store.GetOrLoad(context.Background(), "k", func(context.Context) (any, error) {
		loads.Add(1)
		return nil, loadErr
	}); !errors.Is(err, loadErr) {
		t.Fatalf("expected loader error, got %v", err)
	}

	v, err := store.GetOrLoad(context.Background(), "k", func(context.Context) (any, error) {
		loads.Add(1)
		return "recovered", nil
	})
	if err != nil {
		t.Fatalf("unexpected error after retry: %v", err)
	}
	if v != "recovered" {
		t.Fatalf("unexpected value: %v", v)
	}
	if got := loads.Load(); got != 2 {
		t.Fatalf("loader called %d times, want 2", got)
	}
}

func TestStore_DeleteInvalidatesEntry(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()

	store.Set(ctx, "players:catalog", "stale")
	store.Delete(ctx, "players:catalog")

	if _, ok := store.Get(ctx, "players:catalog"); ok {
		t.Fatal("expected entry to be gone after Delete")
	}

	store.Set(ctx, "team:1:view", "a")
	store.Set(ctx, "team:2:view", "b")
	store.DeletePrefix(ctx, "team:")

	if _, ok := store.Get(ctx, "team:1:view"); ok {
		t.Fatal("expected prefixed entries to be gone after DeletePrefix")
	}
	if _, ok := store.Get(ctx, "team:2:view"); ok {
		t.Fatal("expected prefixed entries to be gone after DeletePrefix")
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")
