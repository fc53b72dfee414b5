// Package cache memoizes compiled patterns.
//
// Compiling a pattern runs subset construction and minimization, which is
// far more expensive than matching. Programs that compile patterns supplied
// at run time (from configuration, requests, or rules files) can keep them
// in a Cache keyed by source text and minimization flag.
//
// Example:
//
//	c, err := cache.New(cache.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer c.Close()
//
//	p, err := c.Get("(a|b)*abb", true)
package cache

import (
	"github.com/dgraph-io/ristretto/v2"
	"github.com/golang/glog"

	"github.com/coregx/tinydfa"
)

// Config configures a Cache.
type Config struct {
	// MaxPatterns is the number of compiled patterns the cache holds before
	// it starts evicting.
	// Default: 1024
	MaxPatterns int64

	// Metrics enables hit and miss counters. It costs some throughput.
	// Default: false
	Metrics bool
}

// DefaultConfig returns a configuration holding up to 1024 patterns
// without metrics.
func DefaultConfig() Config {
	return Config{
		MaxPatterns: 1024,
		Metrics:     false,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.MaxPatterns < 1 {
		return &tinydfa.ConfigError{
			Field:   "MaxPatterns",
			Message: "must be >= 1",
		}
	}
	return nil
}

// Cache is a concurrent cache of compiled patterns.
//
// Writes are buffered: a pattern compiled by Get may not be visible to the
// next Get until the buffer drains. Call Wait to force it.
type Cache struct {
	data *ristretto.Cache[string, *tinydfa.Pattern]
}

// New creates a cache.
func New(config Config) (*Cache, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	data, err := ristretto.NewCache(&ristretto.Config[string, *tinydfa.Pattern]{
		// About ten counters per entry keeps admission estimates accurate.
		NumCounters:        10 * config.MaxPatterns,
		MaxCost:            config.MaxPatterns,
		BufferItems:        64,
		Metrics:            config.Metrics,
		IgnoreInternalCost: true,
		Cost: func(*tinydfa.Pattern) int64 {
			return 1
		},
	})
	if err != nil {
		return nil, err
	}
	return &Cache{data: data}, nil
}

func key(pattern string, minimize bool) string {
	if minimize {
		return "1:" + pattern
	}
	return "0:" + pattern
}

// Get returns the compiled form of pattern, compiling and storing it on a
// miss. Compile errors are returned as from tinydfa.Compile and are not
// cached.
func (c *Cache) Get(pattern string, minimize bool) (*tinydfa.Pattern, error) {
	k := key(pattern, minimize)
	if p, ok := c.data.Get(k); ok {
		return p, nil
	}

	p, err := tinydfa.Compile(pattern, minimize)
	if err != nil {
		return nil, err
	}
	if !c.data.Set(k, p, 1) && bool(glog.V(2)) {
		glog.Infof("cache: dropped %q", pattern)
	}
	return p, nil
}

// Wait blocks until all buffered writes are applied.
func (c *Cache) Wait() {
	c.data.Wait()
}

// Clear removes every pattern.
func (c *Cache) Clear() {
	c.data.Clear()
}

// Close stops the cache's background goroutines. The cache must not be
// used afterwards.
func (c *Cache) Close() {
	c.data.Close()
}

// Metrics returns the cache counters, or nil if Config.Metrics was false.
func (c *Cache) Metrics() *ristretto.Metrics {
	return c.data.Metrics
}
