package train

import "fmt"

// PeriodicCheckpoint saves a checkpoint every period epochs or iterations.
// Only the main process writes; on every other rank the hook is a no-op so
// all ranks can run the same hook set. Tags count completed units starting
// from 1, matching what a resumed run expects to find.
type PeriodicCheckpoint struct {
	HookBase

	byEpoch bool
	period  int
}

// NewPeriodicCheckpoint creates the hook. A period of 0 or less disables it.
func NewPeriodicCheckpoint(byEpoch bool, period int) *PeriodicCheckpoint {
	return &PeriodicCheckpoint{
		byEpoch: byEpoch,
		period:  period,
	}
}

func (h *PeriodicCheckpoint) Kind() string {
	return "PeriodicCheckpoint"
}

func (h *PeriodicCheckpoint) AfterEpoch(r *Runner) error {
	if !h.byEpoch || h.period <= 0 {
		return nil
	}

	if !r.IsMain() || r.Mode() != ModeTrain {
		return nil
	}

	if (r.Epoch()+1)%h.period != 0 {
		return nil
	}

	return r.SaveCheckpoint(fmt.Sprintf("epoch_%d", r.Epoch()+1))
}

func (h *PeriodicCheckpoint) AfterIter(r *Runner) error {
	if h.byEpoch || h.period <= 0 {
		return nil
	}

	if !r.IsMain() || r.Mode() != ModeTrain {
		return nil
	}

	if (r.Iter()+1)%h.period != 0 {
		return nil
	}

	return r.SaveCheckpoint(fmt.Sprintf("iter_%d", r.Iter()+1))
}
