package search

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// CircuitState represents the state of a circuit breaker
type CircuitState int

const (
	CircuitClosed CircuitState = iota
	CircuitOpen
	CircuitHalfOpen
)

func (s CircuitState) String() string {
	switch s {
	case CircuitOpen:
		return "open"
	case CircuitHalfOpen:
		return "half_open"
	default:
		return "closed"
	}
}

// CircuitBreaker trips after consecutive provider failures and re-admits a
// probe request once the reset timeout elapses.
type CircuitBreaker struct {
	maxFailures  int
	resetTimeout time.Duration
	failureCount int
	lastFailTime time.Time
	state        CircuitState
	mu           sync.Mutex
}

// NewCircuitBreaker creates a closed breaker.
func NewCircuitBreaker(maxFailures int, resetTimeout time.Duration) *CircuitBreaker {
	return &CircuitBreaker{
		maxFailures:  maxFailures,
		resetTimeout: resetTimeout,
		state:        CircuitClosed,
	}
}

// Allow reports whether a request may proceed.
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case CircuitOpen:
		if time.Since(cb.lastFailTime) >= cb.resetTimeout {
			cb.state = CircuitHalfOpen
			return true
		}
		return false
	default:
		return true
	}
}

// RecordSuccess closes the breaker and clears the failure count.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.failureCount = 0
	cb.state = CircuitClosed
}

// RecordFailure counts a failure, tripping the breaker at the threshold.
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failureCount++
	cb.lastFailTime = time.Now()
	if cb.state == CircuitHalfOpen || cb.failureCount >= cb.maxFailures {
		cb.state = CircuitOpen
	}
}

// State returns the current breaker state.
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// ProviderLimiter combines a token-bucket rate limit with a circuit breaker
// for one search provider.
type ProviderLimiter struct {
	limiter *rate.Limiter
	breaker *CircuitBreaker
}

// NewProviderLimiter creates a limiter allowing requestsPerMinute with a
// burst of requestsPerMinute/4 (minimum 1).
func NewProviderLimiter(requestsPerMinute, maxFailures int, resetTimeout time.Duration) *ProviderLimiter {
	burst := requestsPerMinute / 4
	if burst < 1 {
		burst = 1
	}
	return &ProviderLimiter{
		limiter: rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), burst),
		breaker: NewCircuitBreaker(maxFailures, resetTimeout),
	}
}

// Allow reports whether a request may proceed right now.
func (pl *ProviderLimiter) Allow() bool {
	if !pl.breaker.Allow() {
		return false
	}
	return pl.limiter.Allow()
}

// RecordSuccess forwards to the breaker.
func (pl *ProviderLimiter) RecordSuccess() {
	pl.breaker.RecordSuccess()
}

// RecordFailure forwards to the breaker.
func (pl *ProviderLimiter) RecordFailure() {
	pl.breaker.RecordFailure()
}

// BreakerState exposes the breaker state for status reporting.
func (pl *ProviderLimiter) BreakerState() CircuitState {
	return pl.breaker.State()
}
