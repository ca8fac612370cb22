package jsonpath

import (
	"errors"
	"fmt"
	"sync"
	"testing"
)

func TestGetOrCompileSharesCompiledPath(t *testing.T) {
	cache, err := NewCache(DefaultCacheCapacity)
	if err != nil {
		t.Fatalf("NewCache() returned error: %v", err)
	}

	first, err := cache.GetOrCompile("$.a.b")
	if err != nil {
		t.Fatalf("GetOrCompile() returned error: %v", err)
	}
	second, err := cache.GetOrCompile("$.a.b")
	if err != nil {
		t.Fatalf("GetOrCompile() returned error: %v", err)
	}

	if first != second {
		t.Errorf("GetOrCompile() returned distinct pointers %p and %p for the same expression", first, second)
	}
	if cache.Len() != 1 {
		t.Errorf("Len() = %d, want 1", cache.Len())
	}
}

func TestGetOrCompileInvalidExpression(t *testing.T) {
	cache, err := NewCache(DefaultCacheCapacity)
	if err != nil {
		t.Fatalf("NewCache() returned error: %v", err)
	}

	if _, err := cache.GetOrCompile("$["); !errors.Is(err, ErrInvalidPath) {
		t.Fatalf("GetOrCompile($[) error = %v, want ErrInvalidPath", err)
	}
	if cache.Len() != 0 {
		t.Errorf("failed compilation was cached, Len() = %d, want 0", cache.Len())
	}

	// A corrected expression must succeed on retry.
	if _, err := cache.GetOrCompile("$[0]"); err != nil {
		t.Fatalf("GetOrCompile($[0]) after failure returned error: %v", err)
	}
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	cache, err := NewCache(2)
	if err != nil {
		t.Fatalf("NewCache() returned error: %v", err)
	}

	oldest, err := cache.GetOrCompile("$.a")
	if err != nil {
		t.Fatalf("GetOrCompile($.a) returned error: %v", err)
	}
	if _, err := cache.GetOrCompile("$.b"); err != nil {
		t.Fatalf("GetOrCompile($.b) returned error: %v", err)
	}
	if _, err := cache.GetOrCompile("$.c"); err != nil {
		t.Fatalf("GetOrCompile($.c) returned error: %v", err)
	}

	if cache.Len() != 2 {
		t.Errorf("Len() = %d, want capacity bound 2", cache.Len())
	}

	// The evicted path must stay usable for holders.
	if oldest.String() != "$.a" || len(oldest.Tokens()) != 1 {
		t.Errorf("evicted path mutated: %q with %d tokens", oldest.String(), len(oldest.Tokens()))
	}

	// Re-requesting the evicted path compiles a fresh instance.
	again, err := cache.GetOrCompile("$.a")
	if err != nil {
		t.Fatalf("GetOrCompile($.a) after eviction returned error: %v", err)
	}
	if !again.Equal(oldest) {
		t.Errorf("recompiled path differs from original: %+v vs %+v", again.Tokens(), oldest.Tokens())
	}
}

func TestGetOrCompileConcurrent(t *testing.T) {
	const (
		goroutines = 16
		iterations = 200
	)

	cache, err := NewCache(DefaultCacheCapacity)
	if err != nil {
		t.Fatalf("NewCache() returned error: %v", err)
	}

	exprs := make([]string, 8)
	for i := range exprs {
		exprs[i] = fmt.Sprintf("$.field%d[*].value", i)
	}

	var (
		mu   sync.Mutex
		seen = make(map[string]*Path)
		wg   sync.WaitGroup
	)

	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				expr := exprs[(g+i)%len(exprs)]
				p, err := cache.GetOrCompile(expr)
				if err != nil {
					t.Errorf("GetOrCompile(%q) returned error: %v", expr, err)
					return
				}
				if p.String() != expr {
					t.Errorf("GetOrCompile(%q) returned path for %q", expr, p.String())
					return
				}

				mu.Lock()
				if prev, ok := seen[expr]; ok && prev != p {
					t.Errorf("GetOrCompile(%q) returned two distinct instances", expr)
				} else {
					seen[expr] = p
				}
				mu.Unlock()
			}
		}(g)
	}
	wg.Wait()

	if cache.Len() != len(exprs) {
		t.Errorf("Len() = %d, want %d", cache.Len(), len(exprs))
	}
}

func BenchmarkGetOrCompileHit(b *testing.B) {
	cache, err := NewCache(DefaultCacheCapacity)
	if err != nil {
		b.Fatalf("NewCache() returned error: %v", err)
	}
	if _, err := cache.GetOrCompile("$.store.book[*].author"); err != nil {
		b.Fatalf("GetOrCompile() returned error: %v", err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := cache.GetOrCompile("$.store.book[*].author"); err != nil {
			b.Fatal(err)
		}
	}
}
