package utils

import "fmt"

// ValidationError indicates malformed caller input.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Detail)
}

func NewValidationError(detail string) *ValidationError {
	return &ValidationError{Detail: detail}
}

// NotFoundError indicates a missing profile, job or application.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

func NewNotFoundError(kind, id string) *NotFoundError {
	return &NotFoundError{Kind: kind, ID: id}
}

// QuotaExceededError indicates a metered feature hit its cap. Recoverable by
// waiting for the reset period or upgrading the tier.
type QuotaExceededError struct {
	Feature string
	Limit   int
	Used    int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("quota exceeded for %s: used %d of %d", e.Feature, e.Used, e.Limit)
}

func NewQuotaExceededError(feature string, limit, used int) *QuotaExceededError {
	return &QuotaExceededError{Feature: feature, Limit: limit, Used: used}
}

// FeatureNotAvailableError indicates the feature limit is exactly zero for a
// non-unlimited tier. Signals "upgrade", distinct from "try later".
type FeatureNotAvailableError struct {
	Feature string
	Tier    string
}

func (e *FeatureNotAvailableError) Error() string {
	return fmt.Sprintf("feature %s is not available on the %s tier", e.Feature, e.Tier)
}

func NewFeatureNotAvailableError(feature, tier string) *FeatureNotAvailableError {
	return &FeatureNotAvailableError{Feature: feature, Tier: tier}
}

// ProviderError wraps an infrastructure failure from an external collaborator.
// Kept separate from domain outcomes so callers can branch on kind.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s failed: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func NewProviderError(provider string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Err: err}
}

// LifecycleError indicates an application status transition that the state
// machine does not allow.
type LifecycleError struct {
	From string
	To   string
}

func (e *LifecycleError) Error() string {
	return fmt.Sprintf("invalid application transition from %s to %s", e.From, e.To)
}

func NewLifecycleError(from, to string) *LifecycleError {
	return &LifecycleError{From: from, To: to}
}
