package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Engine aggregates the prometheus collectors for the generation engine.
type Engine struct {
	GuardrailVerdicts  *prometheus.CounterVec
	ProviderCalls      *prometheus.CounterVec
	FallbackAttempts   *prometheus.CounterVec
	BreakerOpens       *prometheus.CounterVec
	GenerationDuration *prometheus.HistogramVec
}

func NewEngine(registerer prometheus.Registerer) *Engine {
	e := &Engine{
		GuardrailVerdicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "guardrail_verdicts_total",
			Help: "Guardrail verdicts by action.",
		}, []string{"action"}),
		ProviderCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "provider_calls_total",
			Help: "Provider completion calls by provider and outcome.",
		}, []string{"provider", "outcome"}),
		FallbackAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "provider_fallback_attempts_total",
			Help: "Ring fallback attempts by original provider.",
		}, []string{"provider"}),
		BreakerOpens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "circuit_breaker_rejections_total",
			Help: "Calls rejected because the provider breaker was open.",
		}, []string{"provider"}),
		GenerationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "generation_duration_seconds",
			Help:    "End to end duration of one generation request.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
	}
	registerer.MustRegister(
		e.GuardrailVerdicts,
		e.ProviderCalls,
		e.FallbackAttempts,
		e.BreakerOpens,
		e.GenerationDuration,
	)
	return e
}
