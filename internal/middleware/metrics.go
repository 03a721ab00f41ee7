package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkstream_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// FeedQueryDuration records feed listing query latency by sort mode.
	FeedQueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inkstream_feed_query_duration_seconds",
		Help:    "Feed query latency in seconds by sort mode",
		Buckets: prometheus.DefBuckets,
	}, []string{"sort"})

	// ReactionToggles counts reaction toggles by type and resulting state.
	ReactionToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkstream_reaction_toggles_total",
		Help: "Total reaction toggles by type and resulting state",
	}, []string{"type", "active"})
)

var (
	promOnce sync.Once
	prom     *fiberprometheus.FiberPrometheus
)

// InitMetrics creates the Prometheus HTTP middleware for the given service
// name. The collectors live in the default registry, so repeated calls
// return the same instance.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		prom = fiberprometheus.New(serviceName)
	})
	return prom
}

// MetricsMiddleware wraps the fiberprometheus middleware as a fiber handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
