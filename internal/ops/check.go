package ops

import (
	"context"

	"github.com/jacksmith/todo/internal/storage"
)

// Inspector reports on and resets the persisted slot.
// The concrete implementation is storage.SlotBackend.
type Inspector interface {
	Inspect(ctx context.Context) (*storage.Report, error)
	Reset(ctx context.Context) error
}

// CheckResult contains the results of a slot health check.
type CheckResult struct {
	Report *storage.Report `json:"report"`
	// Reset is true when a corrupted slot was cleared.
	Reset bool `json:"reset"`
}

// Healthy reports whether the check found no issues.
func (r *CheckResult) Healthy() bool {
	return len(r.Report.Issues) == 0
}

// RunCheck inspects the slot. With reset set, a corrupted slot is cleared so
// the next read starts from an empty collection. Other issues are reported
// but never repaired.
func RunCheck(ctx context.Context, in Inspector, reset bool) (*CheckResult, error) {
	report, err := in.Inspect(ctx)
	if err != nil {
		return nil, err
	}

	result := &CheckResult{Report: report}
	if reset && report.Corrupted() {
		if err := in.Reset(ctx); err != nil {
			return nil, err
		}
		result.Reset = true
	}
	return result, nil
}
