package guard

import (
	"platform-cli/pkg/services/clierr"
	"platform-cli/pkg/services/policy"
)

// QuotaGuard caps the number of CLI-owned instances running at once. The
// count is taken before the create call and is not held, so two concurrent
// callers can both pass.
type QuotaGuard struct {
	ceiling int
}

func NewQuotaGuard(p policy.Policy) *QuotaGuard {
	return &QuotaGuard{ceiling: p.MaxRunning()}
}

func (q *QuotaGuard) Ceiling() int {
	return q.ceiling
}

func (q *QuotaGuard) CheckCapacity(running int) error {
	if running >= q.ceiling {
		return clierr.New(clierr.ErrQuotaExceeded,
			"cap reached, you already have %d running instances created by this CLI (limit %d)", running, q.ceiling)
	}
	return nil
}
