package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func counting(calls *int, value string) func(context.Context) (string, error) {
	return func(context.Context) (string, error) {
		*calls++
		return value, nil
	}
}

func TestStore_FetchCachesWithinExpiry(t *testing.T) {
	ctx := context.Background()
	s := New[string](time.Hour)

	calls := 0
	for i := range 3 {
		v, err := s.Fetch(ctx, counting(&calls, "catalog"))
		if err != nil {
			t.Fatalf("Fetch() #%d error: %v", i, err)
		}
		if v != "catalog" {
			t.Errorf("Fetch() #%d = %q, want %q", i, v, "catalog")
		}
	}

	if calls != 1 {
		t.Errorf("producer called %d times, want 1", calls)
	}
	st := s.Stats()
	if st.Hits != 2 || st.Misses != 1 || st.Loads != 1 {
		t.Errorf("Stats() = %+v, want 2 hits, 1 miss, 1 load", st)
	}
}

func TestStore_FetchAfterExpiry(t *testing.T) {
	ctx := context.Background()
	s := New[string](10 * time.Millisecond)

	calls := 0
	if _, err := s.Fetch(ctx, counting(&calls, "first")); err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}

	time.Sleep(30 * time.Millisecond)

	v, err := s.Fetch(ctx, counting(&calls, "second"))
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if calls != 2 {
		t.Errorf("producer called %d times, want 2", calls)
	}
	if v != "second" {
		t.Errorf("Fetch() = %q, want refreshed value %q", v, "second")
	}
}

func TestStore_ProducerErrorNotCached(t *testing.T) {
	ctx := context.Background()
	s := New[string](time.Hour)
	errBoom := errors.New("listing unavailable")

	calls := 0
	_, err := s.Fetch(ctx, func(context.Context) (string, error) {
		calls++
		return "", errBoom
	})
	if err != errBoom {
		t.Fatalf("Fetch() error = %v, want the producer error unchanged", err)
	}

	v, err := s.Fetch(ctx, counting(&calls, "recovered"))
	if err != nil {
		t.Fatalf("Fetch() after failure error: %v", err)
	}
	if v != "recovered" || calls != 2 {
		t.Errorf("Fetch() = %q after %d calls; want %q after 2", v, calls, "recovered")
	}
	if st := s.Stats(); st.Failures != 1 || st.Loads != 2 {
		t.Errorf("Stats() = %+v, want 1 failure and 2 loads", st)
	}
}

func TestStore_NoStaleFallback(t *testing.T) {
	ctx := context.Background()
	s := New[string](10 * time.Millisecond)

	calls := 0
	if _, err := s.Fetch(ctx, counting(&calls, "old")); err != nil {
		t.Fatal(err)
	}
	time.Sleep(30 * time.Millisecond)

	// A stale value is not served as a fallback.
	_, err := s.Fetch(ctx, func(context.Context) (string, error) {
		return "", errors.New("down")
	})
	if err == nil {
		t.Fatal("expected producer error after expiry")
	}
}

func TestStore_ConcurrentMissesShareOneLoad(t *testing.T) {
	s := New[string](time.Hour)

	started := make(chan struct{})
	release := make(chan struct{})
	var mu sync.Mutex
	calls := 0
	produce := func(context.Context) (string, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		close(started)
		<-release
		return "shared", nil
	}

	const callers = 8
	results := make([]string, callers)
	errs := make([]error, callers)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], errs[0] = s.Fetch(context.Background(), produce)
	}()
	<-started

	for i := 1; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = s.Fetch(context.Background(), produce)
		}()
	}
	close(release)
	wg.Wait()

	for i := range callers {
		if errs[i] != nil {
			t.Errorf("caller %d error: %v", i, errs[i])
		}
		if results[i] != "shared" {
			t.Errorf("caller %d = %q, want %q", i, results[i], "shared")
		}
	}
	if calls != 1 {
		t.Errorf("producer called %d times, want 1", calls)
	}
}

func TestStore_CallerCancellation(t *testing.T) {
	s := New[string](time.Hour)

	release := make(chan struct{})
	done := make(chan struct{})
	produce := func(ctx context.Context) (string, error) {
		defer close(done)
		<-release
		if err := ctx.Err(); err != nil {
			return "", err
		}
		return "late", nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := s.Fetch(ctx, produce)
		errCh <- err
	}()

	cancel()
	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Fatalf("Fetch() error = %v, want context.Canceled", err)
	}

	close(release)
	<-done

	// The detached producer finished and filled the slot.
	v, err := s.Fetch(context.Background(), func(context.Context) (string, error) {
		t.Error("producer should not run again")
		return "", nil
	})
	if err != nil || v != "late" {
		t.Errorf("Fetch() = %q, %v; want %q, nil", v, err, "late")
	}
}

func TestStore_Invalidate(t *testing.T) {
	ctx := context.Background()
	s := New[int](time.Hour)

	n := 0
	produce := func(context.Context) (int, error) {
		n++
		return n, nil
	}

	first, _ := s.Fetch(ctx, produce)
	s.Invalidate()
	second, _ := s.Fetch(ctx, produce)

	if first != 1 || second != 2 {
		t.Errorf("Fetch() values = %d, %d; want 1, 2", first, second)
	}
}

func TestStore_SameValueReturned(t *testing.T) {
	ctx := context.Background()
	type catalog struct{ families []string }
	s := New[*catalog](time.Hour)

	produce := func(context.Context) (*catalog, error) {
		return &catalog{families: []string{"2.0", "1.8"}}, nil
	}
	a, _ := s.Fetch(ctx, produce)
	b, _ := s.Fetch(ctx, produce)
	if a != b {
		t.Error("Fetch() within expiry should return the identical value")
	}
}

func TestNew_DefaultExpiry(t *testing.T) {
	if got := New[string](0).Expiry(); got != DefaultExpiry {
		t.Errorf("Expiry() = %v, want %v", got, DefaultExpiry)
	}
	if got := New[string](time.Minute).Expiry(); got != time.Minute {
		t.Errorf("Expiry() = %v, want 1m", got)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}

	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}
