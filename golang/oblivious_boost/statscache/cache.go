//Package statscache keeps statistics computed for split ensembles during split search.
//Keys are compared with the ensembles' own equality, so ensembles that differ only in
//inactive fields share one entry.
package statscache

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/tarstars/oblivious_split_boosting/golang/oblivious_boost/obl"
	"golang.org/x/sync/singleflight"
)

var log = logrus.WithField("pkg", "statscache")

//ComputeFunc computes the statistics of one ensemble. ctx carries the values of the caller that
//started the computation and is never canceled.
type ComputeFunc[V any] func(ctx context.Context, ensemble obl.SplitEnsemble) (V, error)

type metrics struct {
	hits         prometheus.Counter
	misses       prometheus.Counter
	computations prometheus.Counter
	failures     prometheus.Counter
}

func newMetrics(name string, reg prometheus.Registerer) metrics {
	counter := func(metric, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "obl_stats_cache_" + metric,
			Help:        help,
			ConstLabels: prometheus.Labels{"cache": name},
		})
	}
	m := metrics{
		hits:         counter("hits_total", "lookups answered from the cache"),
		misses:       counter("misses_total", "lookups that had to wait for a computation"),
		computations: counter("computations_total", "statistics computations started"),
		failures:     counter("failures_total", "statistics computations that returned an error"),
	}
	if reg != nil {
		reg.MustRegister(m.hits, m.misses, m.computations, m.failures)
	}
	return m
}

//Cache maps split ensembles to statistics. It is safe for concurrent use and runs at most
//one computation per distinct ensemble at a time.
type Cache[V any] struct {
	mu      sync.RWMutex
	entries map[string]V
	flight  singleflight.Group
	metrics metrics
	name    string
}

//New creates an empty cache. Its counters are registered on reg unless reg is nil.
func New[V any](name string, reg prometheus.Registerer) *Cache[V] {
	return &Cache[V]{
		entries: make(map[string]V),
		metrics: newMetrics(name, reg),
		name:    name,
	}
}

func (c *Cache[V]) Get(ensemble obl.SplitEnsemble) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	value, ok := c.entries[ensemble.Key()]
	return value, ok
}

//GetOrCompute returns the cached statistics of ensemble or computes them. Concurrent callers
//asking for equal ensembles share one computation, which is not canceled when one of them
//gives up; each caller returns as soon as its own ctx is done. Failed computations are not cached.
func (c *Cache[V]) GetOrCompute(ctx context.Context, ensemble obl.SplitEnsemble, compute ComputeFunc[V]) (V, error) {
	var zero V
	key := ensemble.Key()

	c.mu.RLock()
	value, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		c.metrics.hits.Inc()
		return value, nil
	}
	c.metrics.misses.Inc()

	if err := ctx.Err(); err != nil {
		return zero, err
	}

	computeCtx := context.WithoutCancel(ctx)
	results := c.flight.DoChan(key, func() (interface{}, error) {
		c.mu.RLock()
		value, ok := c.entries[key]
		c.mu.RUnlock()
		if ok {
			return value, nil
		}

		c.metrics.computations.Inc()
		value, err := compute(computeCtx, ensemble)
		if err != nil {
			c.metrics.failures.Inc()
			return nil, errors.Wrapf(err, "computing statistics of %s", ensemble)
		}

		c.mu.Lock()
		c.entries[key] = value
		c.mu.Unlock()
		return value, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case result := <-results:
		if result.Err != nil {
			return zero, result.Err
		}
		if result.Shared {
			log.Debugf("%s: shared computation of %s", c.name, ensemble)
		}
		return result.Val.(V), nil
	}
}

//Invalidate drops the entry of ensemble, if any.
func (c *Cache[V]) Invalidate(ensemble obl.SplitEnsemble) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, ensemble.Key())
}

func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

//Reset drops every entry, typically when the tree moves to its next level.
func (c *Cache[V]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]V)
}
