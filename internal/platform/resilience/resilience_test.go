package resilience

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_DeduplicatesConcurrentCalls(t *testing.T) {
	var flight SingleFlight
	var runs atomic.Int32
	release := make(chan struct{})

	var wg sync.WaitGroup
	results := make([]any, 5)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			val, err, _ := flight.Do("season-1", func() (any, error) {
				runs.Add(1)
				<-release
				return "table", nil
			})
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			results[idx] = val
		}(i)
	}

	// Give the goroutines a moment to pile onto the same key.
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := runs.Load(); got != 1 {
		t.Fatalf("expected one execution, got %d", got)
	}
	for _, val := range results {
		if val != "table" {
			t.Fatalf("caller missed the shared result: %v", val)
		}
	}
}

func TestSingleFlight_IndependentKeysRunSeparately(t *testing.T) {
	var flight SingleFlight
	var runs atomic.Int32

	for _, key := range []string{"a", "b"} {
		if _, err, _ := flight.Do(key, func() (any, error) {
			runs.Add(1)
			return nil, nil
		}); err != nil {
			t.Fatalf("do %s: %v", key, err)
		}
	}

	if got := runs.Load(); got != 2 {
		t.Fatalf("expected two executions, got %d", got)
	}
}

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	breaker := NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	})

	if err := breaker.Allow(); err != nil {
		t.Fatalf("closed breaker must allow: %v", err)
	}
	breaker.RecordFailure()
	breaker.RecordFailure()

	if err := breaker.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected open circuit, got %v", err)
	}
	if breaker.State() != CircuitStateOpen {
		t.Fatalf("unexpected state: %s", breaker.State())
	}
}

func TestCircuitBreaker_HalfOpenRecovery(t *testing.T) {
	breaker := NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 1,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	})

	base := time.Now()
	breaker.now = func() time.Time { return base }
	breaker.RecordFailure()

	breaker.now = func() time.Time { return base.Add(2 * time.Minute) }
	if err := breaker.Allow(); err != nil {
		t.Fatalf("half-open breaker must allow a probe: %v", err)
	}
	breaker.RecordSuccess()

	if breaker.State() != CircuitStateClosed {
		t.Fatalf("expected closed after probe success, got %s", breaker.State())
	}
}
