package providers

import "fittrack/internal/structures"

// MetricsCacheProvider counts view cache hits and misses.
type MetricsCacheProvider struct {
	CacheProviderInterface
	metrics MetricsProviderInterface
}

func (c *MetricsCacheProvider) Get(key string) ([]byte, bool) {
	val, ok := c.CacheProviderInterface.Get(key)
	if ok {
		c.metrics.IncCacheHits()
	} else {
		c.metrics.IncCacheMisses()
	}
	return val, ok
}

// NewInstrumentedCacheProvider returns a disabled cache bare so its misses are
// not reported.
func NewInstrumentedCacheProvider(conf *structures.Config, logger Logger, metrics MetricsProviderInterface) CacheProviderInterface {
	inner := NewCacheProvider(conf, logger)
	if _, disabled := inner.(*noopCache); disabled {
		return inner
	}
	return &MetricsCacheProvider{CacheProviderInterface: inner, metrics: metrics}
}
