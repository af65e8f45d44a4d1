package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// Collector bundles the prometheus instruments for the departures backend on
// its own registry.
type Collector struct {
	reg *prometheus.Registry

	RequestsTotal *prometheus.CounterVec // endpoint label

	FetchesTotal  prometheus.Counter
	FetchErrors   prometheus.Counter
	FetchDuration prometheus.Histogram

	DroppedRecords *prometheus.CounterVec // reason label: missing_destination|missing_time|unparseable_time
	BoardSize      *prometheus.GaugeVec   // direction label: citybound|outbound
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "departures_requests_total",
			Help: "Total API requests served.",
		}, []string{"endpoint"}),
		FetchesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "departures_upstream_fetches_total",
			Help: "Total upstream fetch attempts.",
		}),
		FetchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "departures_upstream_fetch_errors_total",
			Help: "Total upstream fetches that failed entirely.",
		}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "departures_upstream_fetch_duration_seconds",
			Help:    "Duration of upstream departure fetches.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		}),
		DroppedRecords: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "departures_dropped_records_total",
			Help: "Raw departure records filtered out, by reason.",
		}, []string{"reason"}),
		BoardSize: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "departures_board_size",
			Help: "Departures on the most recently served board, by direction.",
		}, []string{"direction"}),
	}

	reg.MustRegister(
		c.RequestsTotal,
		c.FetchesTotal, c.FetchErrors, c.FetchDuration,
		c.DroppedRecords, c.BoardSize,
	)

	return c
}

func (c *Collector) Handler() http.Handler { return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{}) }

// Serve starts an HTTP server exposing /metrics on the given address.
func (c *Collector) Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("Metrics server error")
		}
	}()
	log.Info().Str("addr", addr).Msg("Metrics listening")
	return srv
}
