package client

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/zkceremonies/setupboard/store"
)

// WithPrometheus wraps the client's store so every call is counted and
// timed under the given registerer.
func WithPrometheus(r prometheus.Registerer) Option {
	return func(c *Client) error {
		metered, err := newMeteredStore(c.store, r)
		if err != nil {
			return err
		}
		c.store = metered
		return nil
	}
}

type meteredStore struct {
	base    store.Store
	calls   *prometheus.CounterVec
	errs    *prometheus.CounterVec
	latency *prometheus.HistogramVec
}

func newMeteredStore(base store.Store, r prometheus.Registerer) (store.Store, error) {
	m := &meteredStore{
		base: base,
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "setupboard",
			Name:      "store_calls_total",
			Help:      "Number of document store calls issued.",
		}, []string{"op"}),
		errs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "setupboard",
			Name:      "store_errors_total",
			Help:      "Number of document store calls that failed.",
		}, []string{"op"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "setupboard",
			Name:      "store_call_duration_seconds",
			Help:      "Latency of document store calls.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
	}
	for _, col := range []prometheus.Collector{m.calls, m.errs, m.latency} {
		if err := r.Register(col); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *meteredStore) observe(op string, start time.Time, err error) {
	m.calls.WithLabelValues(op).Inc()
	m.latency.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		m.errs.WithLabelValues(op).Inc()
	}
}

func (m *meteredStore) ListCollection(ctx context.Context, path string) ([]store.Document, error) {
	start := time.Now()
	docs, err := m.base.ListCollection(ctx, path)
	m.observe("list", start, err)
	return docs, err
}

func (m *meteredStore) GetDocument(ctx context.Context, path, id string) (*store.Document, error) {
	start := time.Now()
	doc, err := m.base.GetDocument(ctx, path, id)
	m.observe("get", start, err)
	return doc, err
}

func (m *meteredStore) QueryMembership(ctx context.Context, collection, field string, values []string) ([]store.Document, error) {
	start := time.Now()
	docs, err := m.base.QueryMembership(ctx, collection, field, values)
	m.observe("membership", start, err)
	return docs, err
}
