// Package metrics exposes poller activity as Prometheus metrics.
//
// A Recorder owns its own registry, so several can coexist in tests and
// nothing leaks into the global default registry. All methods are safe on a
// nil *Recorder, which is how metrics are disabled.
package metrics

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rileyhilliard/rtad/internal/errors"
	"github.com/rileyhilliard/rtad/internal/logger"
	"github.com/rileyhilliard/rtad/internal/rtad"
)

const namespace = "rtad"

// Result label values.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Recorder implements rtad.Recorder.
type Recorder struct {
	registry *prometheus.Registry

	fetches     *prometheus.CounterVec
	rowsApplied *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	tableRows   *prometheus.GaugeVec
	poolRows    *prometheus.GaugeVec
	cursor      *prometheus.GaugeVec
	lastSuccess *prometheus.GaugeVec
}

var _ rtad.Recorder = (*Recorder)(nil)

// New creates a recorder with every metric registered, plus the Go runtime
// and process collectors.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetches_total",
			Help:      "Table fetches by outcome.",
		}, []string{"table", "result"}),
		rowsApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_applied_total",
			Help:      "Rows newer than the cursor merged into a table.",
		}, []string{"table"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Latency of table fetches, including failures.",
			Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}, []string{"table"}),
		tableRows: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "table_rows",
			Help:      "Rows currently displayed.",
		}, []string{"table"}),
		poolRows: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pool_rows",
			Help:      "Detached rows waiting for reuse.",
		}, []string{"table"}),
		cursor: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cursor",
			Help:      "Last processed row id, -1 when unset.",
		}, []string{"table"}),
		lastSuccess: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful fetch.",
		}, []string{"table"}),
	}

	r.registry.MustRegister(
		r.fetches,
		r.rowsApplied,
		r.duration,
		r.tableRows,
		r.poolRows,
		r.cursor,
		r.lastSuccess,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// Registry returns the recorder's registry.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// ObserveFetch records one fetch attempt.
func (r *Recorder) ObserveFetch(kind rtad.TableKind, elapsed time.Duration, err error) {
	if r == nil {
		return
	}
	table := kind.String()
	r.duration.WithLabelValues(table).Observe(elapsed.Seconds())
	if err != nil {
		r.fetches.WithLabelValues(table, ResultError).Inc()
		return
	}
	r.fetches.WithLabelValues(table, ResultOK).Inc()
	r.lastSuccess.WithLabelValues(table).SetToCurrentTime()
}

// ObserveFeed records a feed's state after an update or reset.
func (r *Recorder) ObserveFeed(stats rtad.FeedStats, added int) {
	if r == nil {
		return
	}
	table := stats.Kind.String()
	if added > 0 {
		r.rowsApplied.WithLabelValues(table).Add(float64(added))
	}
	r.tableRows.WithLabelValues(table).Set(float64(stats.Rows))
	r.poolRows.WithLabelValues(table).Set(float64(stats.PoolFree))

	cursor := float64(-1)
	if stats.Cursor.Valid() {
		cursor = float64(stats.Cursor.Value())
	}
	r.cursor.WithLabelValues(table).Set(cursor)
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Serve exposes /metrics on addr until ctx is done and returns the address
// actually bound (useful with ":0").
func (r *Recorder) Serve(ctx context.Context, addr string, log logger.Logger) (string, error) {
	if log == nil {
		log = logger.Noop()
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot listen on metrics address "+addr,
			"Pick a free address with --metrics-addr or metrics.addr in .rtad.yaml")
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()
	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			log.Error("metrics server stopped: %v", err)
		}
	}()

	log.Info("serving metrics on http://%s/metrics", ln.Addr())
	return ln.Addr().String(), nil
}
