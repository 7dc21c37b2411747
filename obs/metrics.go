package obs

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the Prometheus collectors for the rerate service.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	ReqTotal      *prometheus.CounterVec
	ReqDur        *prometheus.HistogramVec
	RepriceTotal  prometheus.Counter
	QuoteTotal    prometheus.Counter
	MutationTotal *prometheus.CounterVec
	ExportTotal   *prometheus.CounterVec
}

// NewMetrics registers and returns the service collectors.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		ReqTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests handled by the server.",
		}, []string{"method", "route", "status"}),
		ReqDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_ms",
			Help:      "HTTP request latency distribution in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		}, []string{"method", "route"}),
		RepriceTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reprice_total",
			Help:      "Count of roster reprices.",
		}),
		QuoteTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quote_total",
			Help:      "Count of computed quotes.",
		}),
		MutationTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bill_mutation_total",
			Help:      "Count of bill mutations by operation and outcome.",
		}, []string{"op", "result"}),
		ExportTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "export_total",
			Help:      "Count of summary exports by format and outcome.",
		}, []string{"format", "result"}),
	}
	m.ReqTotal = mustRegisterCollector(reg, m.ReqTotal)
	m.ReqDur = mustRegisterCollector(reg, m.ReqDur)
	m.RepriceTotal = mustRegisterCollector(reg, m.RepriceTotal)
	m.QuoteTotal = mustRegisterCollector(reg, m.QuoteTotal)
	m.MutationTotal = mustRegisterCollector(reg, m.MutationTotal)
	m.ExportTotal = mustRegisterCollector(reg, m.ExportTotal)
	return m
}

// mustRegisterCollector reuses an already registered collector of the same type.
func mustRegisterCollector[T prometheus.Collector](reg prometheus.Registerer, c T) T {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing
			}
		}
		panic(fmt.Errorf("register collector: %w", err))
	}
	return c
}

// ObserveRequest records one HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.ReqTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.ReqDur.WithLabelValues(method, route).Observe(DurationMillis(d))
}

// Repriced counts a roster reprice.
func (m *Metrics) Repriced() {
	if m == nil {
		return
	}
	m.RepriceTotal.Inc()
}

// Quoted counts a computed quote.
func (m *Metrics) Quoted() {
	if m == nil {
		return
	}
	m.QuoteTotal.Inc()
}

// Mutation counts a bill mutation as applied or rejected.
func (m *Metrics) Mutation(op string, applied bool) {
	if m == nil {
		return
	}
	m.MutationTotal.WithLabelValues(op, result(applied, "applied", "rejected")).Inc()
}

// Export counts a summary export as ok or error.
func (m *Metrics) Export(format string, err error) {
	if m == nil {
		return
	}
	m.ExportTotal.WithLabelValues(format, result(err == nil, "ok", "error")).Inc()
}

func result(ok bool, yes, no string) string {
	if ok {
		return yes
	}
	return no
}

// DurationMillis converts a duration to milliseconds for metric observation.
func DurationMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
