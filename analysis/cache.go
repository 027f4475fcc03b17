package analysis

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/singleflight"
)

// cacheHits and cacheMisses track the process-wide analyzer-config
// cache. A host process registers these the way it registers any
// prometheus.Collector.
var (
	cacheHits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "iresearch",
		Subsystem: "analysis",
		Name:      "config_cache_hits_total",
		Help:      "Resolved analyzer configurations served from cache.",
	}, []string{"analyzer"})

	cacheMisses = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "iresearch",
		Subsystem: "analysis",
		Name:      "config_cache_misses_total",
		Help:      "Analyzer configuration lookups not served from the cache's fast path.",
	}, []string{"analyzer"})
)

func init() {
	prometheus.MustRegister(cacheHits, cacheMisses)
}

// configCache memoizes expensive, locale/stopword-dependent analyzer
// state by a hash of its JSON args behind a single process-wide mutex,
// with immortal entries (no eviction), and a singleflight.Group
// collapsing concurrent builds of the same key so two goroutines
// resolving the same "text" analyzer config at once do the
// locale/stopword I/O once, not twice: a Get-under-lock, then
// group.Do(key, compute).
type configCache struct {
	mu      sync.Mutex
	entries map[string]interface{}
	group   singleflight.Group
}

func newConfigCache() *configCache {
	return &configCache{entries: make(map[string]interface{})}
}

// GetOrCompute returns the cached value for key, computing it via fn on
// a miss. fn is invoked at most once per key even under concurrent
// callers requesting the same key.
func (c *configCache) GetOrCompute(analyzerName, key string, fn func() (interface{}, error)) (interface{}, error) {
	c.mu.Lock()
	if v, ok := c.entries[key]; ok {
		c.mu.Unlock()
		cacheHits.WithLabelValues(analyzerName).Inc()
		return v, nil
	}
	c.mu.Unlock()

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		c.mu.Lock()
		if v, ok := c.entries[key]; ok {
			c.mu.Unlock()
			return v, nil
		}
		c.mu.Unlock()

		v, err := fn()
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[key] = v
		c.mu.Unlock()
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	cacheMisses.WithLabelValues(analyzerName).Inc()
	return v, nil
}

// globalCache is the process-wide cache used by the text analyzer
// factory, shared by every text analyzer instance.
var globalCache = newConfigCache()

// hashArgs derives a stable cache key from an analyzer's name and the
// whole of its raw argument bytes.
func hashArgs(name string, args []byte) string {
	sum := sha256.Sum256(args)
	return name + ":" + hex.EncodeToString(sum[:])
}
