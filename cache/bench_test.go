package cache

import (
	"math/rand"
	"strconv"
	"sync/atomic"
	"testing"
)

// benchmarkEngineMix exercises a read/write mix against a warm bare engine
// on a single goroutine (the engine is not synchronized).
func benchmarkEngineMix(b *testing.B, readsPct int) {
	c, err := New(Options[string, string]{Capacity: 100_000})
	if err != nil {
		b.Fatal(err)
	}

	// Preload half the capacity to get a realistic hit-rate.
	for i := 0; i < 50_000; i++ {
		c.Set("k:"+strconv.Itoa(i), "v")
	}

	b.ReportAllocs()
	b.ResetTimer()

	r := rand.New(rand.NewSource(1))
	keyMask := (1 << 16) - 1 // hot keyspace (power of two for fast &-mask)
	for i := 0; i < b.N; i++ {
		k := "k:" + strconv.Itoa(i&keyMask)
		if r.Intn(100) < readsPct {
			_, _ = c.Get(k)
		} else {
			c.Set(k, "v")
		}
	}
}

func BenchmarkEngine_90r10w(b *testing.B) { benchmarkEngineMix(b, 90) }
func BenchmarkEngine_50r50w(b *testing.B) { benchmarkEngineMix(b, 50) }

// benchmarkSyncMix runs the same workload through the synchronized
// accessor with parallel workers (RunParallel spawns GOMAXPROCS goroutines).
func benchmarkSyncMix(b *testing.B, readsPct int) {
	engine, err := New(Options[string, string]{Capacity: 100_000})
	if err != nil {
		b.Fatal(err)
	}
	c := NewSync(engine, UnprotectedLoader)

	for i := 0; i < 50_000; i++ {
		c.Set("k:"+strconv.Itoa(i), "v")
	}

	b.ReportAllocs()
	b.ResetTimer()

	var seed int64 = 1
	keyMask := (1 << 16) - 1

	b.RunParallel(func(pb *testing.PB) {
		// Independent RNG stream for each worker.
		r := rand.New(rand.NewSource(atomic.AddInt64(&seed, 1)))
		i := 0
		for pb.Next() {
			k := "k:" + strconv.Itoa(i&keyMask)
			if r.Intn(100) < readsPct {
				_, _ = c.Get(k)
			} else {
				c.Set(k, "v")
			}
			i++
		}
	})
}

func BenchmarkSync_90r10w(b *testing.B) { benchmarkSyncMix(b, 90) }
func BenchmarkSync_50r50w(b *testing.B) { benchmarkSyncMix(b, 50) }

// Int keys remove strconv/alloc noise and better expose the hash-table
// hot path.
func BenchmarkEngine_IntKeys(b *testing.B) {
	c, err := New(Options[int, int]{Capacity: 100_000})
	if err != nil {
		b.Fatal(err)
	}
	for i := 0; i < 50_000; i++ {
		c.Set(i, 1)
	}

	b.ReportAllocs()
	b.ResetTimer()

	keyMask := (1 << 16) - 1
	for i := 0; i < b.N; i++ {
		k := i & keyMask
		if i%10 != 0 {
			_, _ = c.Get(k)
		} else {
			c.Set(k, 1)
		}
	}
}

// Loader hot path: every call is a hit after the first.
func BenchmarkEngine_GetOrLoadHit(b *testing.B) {
	c, err := New(Options[int, string]{
		Capacity: 1024,
		Loader:   func(k int) (string, error) { return strconv.Itoa(k), nil },
	})
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = c.Get(i & 1023)
	}
}
