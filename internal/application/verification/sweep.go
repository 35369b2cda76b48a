package verification

import (
	"context"
	"log/slog"
)

// SweepJob adapts Store.Sweep to the scheduler's job interface.
type SweepJob struct {
	Store *Store
}

func (j SweepJob) Name() string { return "verification-sweep" }

func (j SweepJob) Run(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	removed := j.Store.Sweep()
	if removed > 0 {
		slog.Debug("swept verification challenges", "removed", removed, "remaining", j.Store.Len())
	}
	return nil
}
