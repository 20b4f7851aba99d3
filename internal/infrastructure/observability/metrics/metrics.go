// Package metrics exposes Prometheus counters for fortune operations.
//
// The fallback counter exists so operators can detect provider outages even
// though failed generations are masked as successful responses.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry bundles the service's Prometheus collectors behind one registry.
type Registry struct {
	registry *prometheus.Registry

	RequestsTotal    *prometheus.CounterVec
	FallbackTotal    prometheus.Counter
	CacheHitsTotal   prometheus.Counter
	CacheMissesTotal prometheus.Counter
}

// NewRegistry creates a registry with all fortune collectors registered.
// Each instance owns its own prometheus.Registry so tests can construct
// registries independently without duplicate-registration panics.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Registry{
		registry: reg,
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fortune_requests_total",
			Help: "Fortune responses served, labeled by source.",
		}, []string{"source"}),
		FallbackTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "fortune_ai_fallback_total",
			Help: "AI generation failures masked with static fallback text.",
		}),
		CacheHitsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "fortune_ai_cache_hits_total",
			Help: "AI fortune requests answered from the daily cache.",
		}),
		CacheMissesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "fortune_ai_cache_misses_total",
			Help: "AI fortune requests that required a generation call.",
		}),
	}
}

// Handler returns an http.Handler serving the /metrics exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
