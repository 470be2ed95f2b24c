// Command bench runs a synthetic workload against the cache and exposes optional pprof/Prometheus endpoints.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof/* on DefaultServeMux
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/SatvikPraveen/SmartCampus-sub001/cache"
	pmet "github.com/SatvikPraveen/SmartCampus-sub001/metrics/prom"
)

func main() {
	// ---- Flags ----
	var (
		maxSize = flag.Int("max", 100_000, "cache capacity (entries)")
		ttl     = flag.Duration("ttl", 0, "default TTL (0 = entries never expire)")
		variant = flag.String("variant", "bounded", "cache variant: bounded | lru")

		workers  = flag.Int("workers", 2*runtime.GOMAXPROCS(0), "worker goroutines (bounded variant only)")
		duration = flag.Duration("duration", 10*time.Second, "benchmark duration")
		readPct  = flag.Int("reads", 80, "read percentage [0..100]")

		keys    = flag.Int("keys", 1_000_000, "keyspace size")
		zipfS   = flag.Float64("zipf_s", 1.1, "Zipf s > 1 (skew)")
		zipfV   = flag.Float64("zipf_v", 1.0, "Zipf v")
		seed    = flag.Int64("seed", time.Now().UnixNano(), "random seed")
		preload = flag.Int("preload", 0, "preload entries (0 = max/2)")

		pprofAddr   = flag.String("pprof", "", "serve pprof at addr (e.g. :6060); empty = disabled")
		metricsAddr = flag.String("http", ":8080", "serve Prometheus metrics at addr")
	)
	flag.Parse()

	// ---- pprof server (on DefaultServeMux) ----
	if *pprofAddr != "" {
		go func() {
			log.Printf("pprof: serving at %s", *pprofAddr)
			log.Println(http.ListenAndServe(*pprofAddr, nil))
		}()
	}

	// ---- Prometheus metrics (on DefaultServeMux) ----
	metrics := pmet.New(nil, "smartcampus", "bench", nil)
	http.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Printf("metrics: serving at %s", *metricsAddr)
		log.Println(http.ListenAndServe(*metricsAddr, nil))
	}()

	np := *preload
	if np <= 0 {
		np = *maxSize / 2
	}

	switch *variant {
	case "bounded":
		runBounded(*maxSize, *ttl, metrics, *workers, *duration, *readPct, *keys, *zipfS, *zipfV, *seed, np)
	case "lru":
		// LRU carries no lock; drive it from a single goroutine.
		runLRU(*maxSize, *duration, *readPct, *keys, *zipfS, *zipfV, *seed, np)
	default:
		log.Fatalf("unknown variant: %q (use bounded or lru)", *variant)
	}
}

func runBounded(maxSize int, ttl time.Duration, m cache.Metrics,
	workers int, duration time.Duration, readPct, keys int,
	zipfS, zipfV float64, seed int64, preload int) {

	c := cache.New[string, string](cache.Options[string, string]{
		MaxSize:    maxSize,
		DefaultTTL: ttl,
		Metrics:    m,
	})

	// Preload to get a realistic hit-rate.
	for i := 0; i < preload; i++ {
		c.Set("k:"+strconv.Itoa(i), "v")
	}

	var ops atomic.Int64
	ctx, cancel := context.WithTimeout(context.Background(), duration)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(seed + int64(id)*7919))
			zipf := rand.NewZipf(r, zipfS, zipfV, uint64(keys-1))
			for ctx.Err() == nil {
				k := "k:" + strconv.FormatUint(zipf.Uint64(), 10)
				if r.Intn(100) < readPct {
					c.Get(k)
				} else {
					c.Set(k, "v")
				}
				ops.Add(1)
			}
		}(w)
	}
	wg.Wait()

	st := c.Stats()
	fmt.Printf("bounded: %d ops in %v (%.0f ops/s), size=%d\n",
		ops.Load(), duration, float64(ops.Load())/duration.Seconds(), st.Size)
}

func runLRU(maxSize int, duration time.Duration, readPct, keys int,
	zipfS, zipfV float64, seed int64, preload int) {

	l := cache.NewLRU[string, string](maxSize)
	for i := 0; i < preload; i++ {
		l.Set("k:"+strconv.Itoa(i), "v")
	}

	r := rand.New(rand.NewSource(seed))
	zipf := rand.NewZipf(r, zipfS, zipfV, uint64(keys-1))
	deadline := time.Now().Add(duration)

	var ops int64
	for time.Now().Before(deadline) {
		k := "k:" + strconv.FormatUint(zipf.Uint64(), 10)
		if r.Intn(100) < readPct {
			l.Get(k)
		} else {
			l.Set(k, "v")
		}
		ops++
	}

	fmt.Printf("lru: %d ops in %v (%.0f ops/s), size=%d\n",
		ops, duration, float64(ops)/duration.Seconds(), l.Len())
}
