package search

import (
	"context"
	"fmt"

	"jobhunter/internal/logging"
	"jobhunter/pkg/models"
	"jobhunter/pkg/utils"
)

// Chain wraps a primary provider with rate limiting, circuit breaking and a
// soft-failure fallback source. Transient primary failures degrade to the
// fallback instead of aborting the search.
type Chain struct {
	primary  Provider
	fallback Provider
	limiter  *ProviderLimiter
	logger   logging.Logger
}

// NewChain composes the provider chain. The fallback is required; the
// primary may be nil, in which case every search is served from the fallback.
func NewChain(primary, fallback Provider, limiter *ProviderLimiter, logger logging.Logger) *Chain {
	return &Chain{
		primary:  primary,
		fallback: fallback,
		limiter:  limiter,
		logger:   logger,
	}
}

func (c *Chain) Name() string {
	if c.primary != nil {
		return c.primary.Name()
	}
	return c.fallback.Name()
}

// Search queries the primary provider when the limiter admits the request,
// falling back on any failure. A fallback failure is an infrastructure error.
func (c *Chain) Search(ctx context.Context, criteria Criteria) ([]*models.JobListing, error) {
	if c.primary != nil {
		if c.limiter == nil || c.limiter.Allow() {
			listings, err := c.primary.Search(ctx, criteria)
			if err == nil {
				if c.limiter != nil {
					c.limiter.RecordSuccess()
				}
				return listings, nil
			}

			if c.limiter != nil {
				c.limiter.RecordFailure()
			}
			c.logger.Warn("primary search provider failed, using fallback", map[string]interface{}{
				"provider": c.primary.Name(),
				"error":    err.Error(),
			})
		} else {
			c.logger.Warn("primary search provider throttled, using fallback", map[string]interface{}{
				"provider": c.primary.Name(),
			})
		}
	}

	listings, err := c.fallback.Search(ctx, criteria)
	if err != nil {
		return nil, utils.NewProviderError(c.fallback.Name(), fmt.Errorf("fallback search failed: %w", err))
	}
	return listings, nil
}

// BreakerState exposes the primary breaker state for status reporting.
func (c *Chain) BreakerState() CircuitState {
	if c.limiter == nil {
		return CircuitClosed
	}
	return c.limiter.BreakerState()
}
