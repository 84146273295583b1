package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sarthi",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "sarthi",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "path"})

	// Emergency metrics
	EmergenciesReported = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sarthi",
		Subsystem: "emergency",
		Name:      "reported_total",
		Help:      "Total emergency cases reported",
	}, []string{"type"})

	StatusUpdates = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sarthi",
		Subsystem: "emergency",
		Name:      "status_updates_total",
		Help:      "Total case status updates applied",
	}, []string{"status"})

	RemoteEventsApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sarthi",
		Subsystem: "emergency",
		Name:      "remote_events_applied_total",
		Help:      "Total relayed events merged into the local store",
	}, []string{"type"})

	// Relay metrics
	RelayPublishes = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "sarthi",
		Subsystem: "relay",
		Name:      "publishes_total",
		Help:      "Total events successfully published to the relay",
	})

	RelayRetries = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "sarthi",
		Subsystem: "relay",
		Name:      "retries_total",
		Help:      "Total relay publish retries",
	})

	RelayDrops = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "sarthi",
		Subsystem: "relay",
		Name:      "drops_total",
		Help:      "Total events dropped after exhausting the retry queue",
	})

	// Facility query metrics
	FacilityQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sarthi",
		Subsystem: "facility",
		Name:      "queries_total",
		Help:      "Total nearby-facility queries served",
	}, []string{"category"})

	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sarthi",
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Total cache hits",
	}, []string{"operation"})

	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sarthi",
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Total cache misses",
	}, []string{"operation"})

	ActiveWebSockets = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "sarthi",
		Subsystem: "ws",
		Name:      "active_connections",
		Help:      "Current number of active WebSocket connections",
	})
)

// Middleware records request metrics.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())
		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		method := c.Method()

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(duration)

		return err
	}
}

// Handler returns a Fiber handler serving the Prometheus /metrics endpoint.
func Handler() fiber.Handler {
	handler := promhttp.Handler()
	return func(c *fiber.Ctx) error {
		fasthttpadaptor.NewFastHTTPHandler(handler)(c.Context())
		return nil
	}
}
