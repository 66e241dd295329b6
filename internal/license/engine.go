package license

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"jobhunter/internal/logging"
)

// TierResolver maps a subject to its subscription tier.
type TierResolver interface {
	TierFor(ctx context.Context, subject string) (string, error)
}

// TierResolverFunc adapts a function to the TierResolver interface.
type TierResolverFunc func(ctx context.Context, subject string) (string, error)

func (f TierResolverFunc) TierFor(ctx context.Context, subject string) (string, error) {
	return f(ctx, subject)
}

// FeatureEntitlement is one row of an entitlement snapshot.
type FeatureEntitlement struct {
	Feature     string      `json:"feature"`
	Limit       int         `json:"limit"`
	Used        int         `json:"used"`
	ResetPeriod ResetPeriod `json:"reset_period"`
	ResetsAt    *time.Time  `json:"resets_at,omitempty"`
}

// Entitlements is a read-only projection of a subject's plan and live usage.
type Entitlements struct {
	Subject  string               `json:"subject"`
	Tier     string               `json:"tier"`
	Features []FeatureEntitlement `json:"features"`
}

// Engine enforces plan limits against the ledger. The check-and-increment in
// CheckAndConsume runs under a per-key lock so concurrent consumers of the
// same (subject, feature) can never overshoot the cap.
type Engine struct {
	ledger Ledger
	tiers  TierResolver
	logger logging.Logger
	locks  sync.Map // key string -> *sync.Mutex
}

// NewEngine creates a licensing engine over the given ledger and resolver.
func NewEngine(ledger Ledger, tiers TierResolver, logger logging.Logger) *Engine {
	return &Engine{
		ledger: ledger,
		tiers:  tiers,
		logger: logger,
	}
}

func (e *Engine) keyLock(subject, feature string) *sync.Mutex {
	v, _ := e.locks.LoadOrStore(ledgerKey(subject, feature), &sync.Mutex{})
	return v.(*sync.Mutex)
}

func (e *Engine) planFor(ctx context.Context, subject string) (Plan, error) {
	tier, err := e.tiers.TierFor(ctx, subject)
	if err != nil {
		return Plan{}, fmt.Errorf("failed to resolve tier for %s: %w", subject, err)
	}

	plan, ok := GetPlan(tier)
	if !ok {
		return Plan{}, fmt.Errorf("unknown tier %q for subject %s", tier, subject)
	}
	return plan, nil
}

// CanUse peeks at a feature without consuming quota.
func (e *Engine) CanUse(ctx context.Context, subject, feature string) (bool, error) {
	plan, err := e.planFor(ctx, subject)
	if err != nil {
		return false, err
	}

	fl, present := plan.Feature(feature)
	if !present || fl.Limit == 0 {
		return false, nil
	}
	if fl.Limit == Unlimited {
		return true, nil
	}

	used, err := e.ledger.GetUsage(ctx, subject, feature)
	if err != nil {
		return false, err
	}
	return used < fl.Limit, nil
}

// CheckAndConsume atomically verifies remaining quota and, when sufficient,
// consumes it. Returns (allowed, remaining). Remaining is the unlimited
// sentinel -1 for uncapped features. Disabled or absent features return
// (false, 0) without touching the ledger.
func (e *Engine) CheckAndConsume(ctx context.Context, subject, feature string, amount int) (bool, int, error) {
	if amount <= 0 {
		amount = 1
	}

	plan, err := e.planFor(ctx, subject)
	if err != nil {
		return false, 0, err
	}

	fl, present := plan.Feature(feature)
	if !present || fl.Limit == 0 {
		return false, 0, nil
	}

	if fl.Limit == Unlimited {
		// Increment anyway so usage telemetry stays meaningful.
		if _, err := e.ledger.Increment(ctx, subject, feature, amount); err != nil {
			return false, 0, err
		}
		return true, Unlimited, nil
	}

	lock := e.keyLock(subject, feature)
	lock.Lock()
	defer lock.Unlock()

	used, err := e.ledger.GetUsage(ctx, subject, feature)
	if err != nil {
		return false, 0, err
	}

	remaining := fl.Limit - used
	if remaining < amount {
		e.logger.Debug("quota check refused", map[string]interface{}{
			"subject":   subject,
			"feature":   feature,
			"limit":     fl.Limit,
			"used":      used,
			"requested": amount,
		})
		return false, remaining, nil
	}

	newUsed, err := e.ledger.Increment(ctx, subject, feature, amount)
	if err != nil {
		return false, remaining, err
	}
	return true, fl.Limit - newUsed, nil
}

// Usage returns the live counter for a feature, for error reporting.
func (e *Engine) Usage(ctx context.Context, subject, feature string) (int, error) {
	return e.ledger.GetUsage(ctx, subject, feature)
}

// Limit returns the plan limit for a feature, zero when absent.
func (e *Engine) Limit(ctx context.Context, subject, feature string) (int, error) {
	plan, err := e.planFor(ctx, subject)
	if err != nil {
		return 0, err
	}
	fl, _ := plan.Feature(feature)
	return fl.Limit, nil
}

// Tier resolves the subject's tier through the configured resolver.
func (e *Engine) Tier(ctx context.Context, subject string) (string, error) {
	return e.tiers.TierFor(ctx, subject)
}

// PlanIsUnlimited reports whether the subject's plan is fully uncapped.
func (e *Engine) PlanIsUnlimited(ctx context.Context, subject string) (bool, error) {
	plan, err := e.planFor(ctx, subject)
	if err != nil {
		return false, err
	}
	return plan.IsUnlimited(), nil
}

// ResetAllCounters zeroes every periodic counter in the subject's plan.
// Features with a "never" reset period represent lifetime caps and are left
// untouched. Idempotent.
func (e *Engine) ResetAllCounters(ctx context.Context, subject string) error {
	plan, err := e.planFor(ctx, subject)
	if err != nil {
		return err
	}

	for feature, fl := range plan.Features {
		if fl.ResetPeriod == ResetNever {
			continue
		}
		if err := e.ledger.Reset(ctx, subject, feature); err != nil {
			return fmt.Errorf("failed to reset %s for %s: %w", feature, subject, err)
		}
	}

	e.logger.Info("periodic quota counters reset", map[string]interface{}{
		"subject": subject,
		"tier":    plan.Tier,
	})
	return nil
}

// GetEntitlements assembles a display snapshot of the subject's plan and live
// usage. No caching: every call reads the ledger's current state.
func (e *Engine) GetEntitlements(ctx context.Context, subject string) (*Entitlements, error) {
	plan, err := e.planFor(ctx, subject)
	if err != nil {
		return nil, err
	}

	snapshot := &Entitlements{
		Subject:  subject,
		Tier:     plan.Tier,
		Features: make([]FeatureEntitlement, 0, len(plan.Features)),
	}

	for feature, fl := range plan.Features {
		used, err := e.ledger.GetUsage(ctx, subject, feature)
		if err != nil {
			return nil, err
		}
		resetsAt, err := e.ledger.GetResetTime(ctx, subject, feature)
		if err != nil {
			return nil, err
		}

		snapshot.Features = append(snapshot.Features, FeatureEntitlement{
			Feature:     feature,
			Limit:       fl.Limit,
			Used:        used,
			ResetPeriod: fl.ResetPeriod,
			ResetsAt:    resetsAt,
		})
	}

	sort.Slice(snapshot.Features, func(i, j int) bool {
		return snapshot.Features[i].Feature < snapshot.Features[j].Feature
	})
	return snapshot, nil
}
