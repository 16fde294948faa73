package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_CollapsesConcurrentCalls(t *testing.T) {
	var g SingleFlight
	var loads int32
	var shared int32

	const callers = 25
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(callers)

	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			<-start
			val, err, wasShared := g.Do("players:catalog", func() (any, error) {
				atomic.AddInt32(&loads, 1)
				time.Sleep(25 * time.Millisecond)
				return "catalog", nil
			})
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if val != "catalog" {
				t.Errorf("unexpected value: %v", val)
			}
			if wasShared {
				atomic.AddInt32(&shared, 1)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := atomic.LoadInt32(&loads); got != 1 {
		t.Fatalf("expected one load, got %d", got)
	}
	if got := atomic.LoadInt32(&shared); got != callers-1 {
		t.Fatalf("expected %d shared callers, got %d", callers-1, got)
	}
}

func TestSingleFlight_DistinctKeysRunIndependently(t *testing.T) {
	var g SingleFlight

	val, err, shared := g.Do("team:1", func() (any, error) { return 1, nil })
	if err != nil || shared || val != 1 {
		t.Fatalf("unexpected result: val=%v err=%v shared=%v", val, err, shared)
	}

	val, err, shared = g.Do("team:2", func() (any, error) { return 2, nil })
	if err != nil || shared || val != 2 {
		t.Fatalf("unexpected result: val=%v err=%v shared=%v", val, err, shared)
	}
}
