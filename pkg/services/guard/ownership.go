// Package guard gates every operation on an existing resource behind the
// ownership policy, and compute creation behind the running-instance quota.
package guard

import (
	"context"
	"log/slog"
	"platform-cli/pkg/services/clierr"
	"platform-cli/pkg/services/policy"
	"platform-cli/pkg/services/provider"
)

// TagFetcher looks up the current tags of one specific resource.
type TagFetcher func(ctx context.Context) (provider.FetchOutcome, error)

type OwnershipGuard struct {
	policy policy.Policy
}

func NewOwnershipGuard(p policy.Policy) *OwnershipGuard {
	return &OwnershipGuard{policy: p}
}

// CheckExisting returns nil when the fetched resource is CLI-owned. Missing,
// inaccessible and foreign resources all yield ErrNotOwned so callers cannot
// tell them apart.
func (g *OwnershipGuard) CheckExisting(ctx context.Context, resource string, fetch TagFetcher) error {
	outcome, err := fetch(ctx)
	if err != nil {
		return clierr.Remote(err, "could not read tags of %s", resource)
	}
	if !g.Owns(outcome) {
		slog.Debug("Ownership check denied", "prefix", "guard.CheckExisting", "resource", resource, "status", outcome.Status)
		return clierr.NotOwned("%s not managed by this CLI", resource)
	}
	return nil
}

// Owns is the list filter predicate: only a successful fetch whose tags
// satisfy the policy counts as owned.
func (g *OwnershipGuard) Owns(outcome provider.FetchOutcome) bool {
	return outcome.Status == provider.FetchFound && g.policy.Satisfies(outcome.Tags)
}

// IsOwned fails closed: any fetch error is treated as not owned.
func (g *OwnershipGuard) IsOwned(ctx context.Context, fetch TagFetcher) bool {
	outcome, err := fetch(ctx)
	if err != nil {
		slog.Debug("Tag lookup failed, treating resource as not owned", "prefix", "guard.IsOwned", "error", err)
		return false
	}
	return g.Owns(outcome)
}
