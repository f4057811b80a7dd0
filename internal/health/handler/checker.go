package handler

import (
	"context"
	"fmt"
	"time"
)

// Pinger is used for database readiness. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PolicyChecker is used for policy engine readiness. The insights OPA engine satisfies it.
type PolicyChecker interface {
	HealthCheck(ctx context.Context) error
}

// checkTimeout bounds a single readiness probe.
const checkTimeout = 2 * time.Second

// Checker aggregates readiness dependencies. Nil dependencies are skipped.
type Checker struct {
	pinger        Pinger
	policyChecker PolicyChecker
}

// NewChecker returns a Checker. Either argument may be nil.
func NewChecker(pinger Pinger, policyChecker PolicyChecker) *Checker {
	return &Checker{pinger: pinger, policyChecker: policyChecker}
}

// Ready returns nil when every configured dependency answers.
func (c *Checker) Ready(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()
	if c.pinger != nil {
		if err := c.pinger.PingContext(ctx); err != nil {
			return fmt.Errorf("database: %w", err)
		}
	}
	if c.policyChecker != nil {
		if err := c.policyChecker.HealthCheck(ctx); err != nil {
			return fmt.Errorf("policy: %w", err)
		}
	}
	return nil
}
