package breaker

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sony/gobreaker"

	"github.com/complyport/compliance-engine/pkg/domain/generation"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitBreaker interface {
	Execute(fn func() (string, error)) (string, error)
	State() gobreaker.State
}

type circuitBreakerWrapper struct {
	breaker *gobreaker.CircuitBreaker
}

func NewCircuitBreaker(name string, cooldown time.Duration, maxFailures uint32) CircuitBreaker {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
	}
	return &circuitBreakerWrapper{
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

func (g *circuitBreakerWrapper) Execute(fn func() (string, error)) (string, error) {
	result, err := g.breaker.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", fmt.Errorf("breaker (%s): %w", g.breaker.Name(), ErrCircuitOpen)
		}
		return "", fmt.Errorf("breaker (%s): %w", g.breaker.Name(), err)
	}
	text, ok := result.(string)
	if !ok {
		return "", fmt.Errorf("breaker (%s): unexpected result type", g.breaker.Name())
	}
	return text, nil
}

func (g *circuitBreakerWrapper) State() gobreaker.State {
	return g.breaker.State()
}

// Registry holds one breaker per provider for the life of the process.
// Breakers are shared across all concurrent requests targeting the same
// provider; gobreaker serializes its own state transitions, the registry
// mutex only guards lazy creation.
type Registry struct {
	mu          sync.Mutex
	breakers    map[generation.Provider]CircuitBreaker
	cooldown    time.Duration
	maxFailures uint32
}

func NewRegistry(cooldown time.Duration, maxFailures uint32) *Registry {
	return &Registry{
		breakers:    make(map[generation.Provider]CircuitBreaker),
		cooldown:    cooldown,
		maxFailures: maxFailures,
	}
}

func (r *Registry) ForProvider(provider generation.Provider) CircuitBreaker {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cb, ok := r.breakers[provider]; ok {
		return cb
	}
	cb := NewCircuitBreaker(provider.String(), r.cooldown, r.maxFailures)
	r.breakers[provider] = cb
	return cb
}
