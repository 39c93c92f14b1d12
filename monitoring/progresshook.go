package monitoring

import "github.com/sarchlab/trainkit/train"

// ProgressHook feeds the monitor's progress bars from a run: one bar for
// epochs when an epoch budget exists, one for iterations. Bars complete when
// the run ends.
type ProgressHook struct {
	train.HookBase

	monitor *Monitor

	epochBar *ProgressBar
	iterBar  *ProgressBar
}

// NewProgressHook creates the hook publishing into the given monitor.
func NewProgressHook(m *Monitor) *ProgressHook {
	return &ProgressHook{monitor: m}
}

func (h *ProgressHook) Kind() string {
	return "ProgressHook"
}

func (h *ProgressHook) BeforeRun(r *train.Runner) error {
	if r.MaxEpochs() > 0 {
		h.epochBar = h.monitor.CreateProgressBar(
			"epochs", uint64(r.MaxEpochs()))
	}

	h.iterBar = h.monitor.CreateProgressBar("iters", uint64(r.MaxIters()))

	return nil
}

func (h *ProgressHook) AfterIter(r *train.Runner) error {
	if r.Mode() != train.ModeTrain {
		return nil
	}

	h.iterBar.Set(uint64(r.Iter() + 1))

	return nil
}

func (h *ProgressHook) AfterEpoch(r *train.Runner) error {
	if r.Mode() != train.ModeTrain || h.epochBar == nil {
		return nil
	}

	h.epochBar.Set(uint64(r.Epoch() + 1))

	return nil
}

func (h *ProgressHook) AfterRun(*train.Runner) error {
	if h.epochBar != nil {
		h.monitor.CompleteProgressBar(h.epochBar)
		h.epochBar = nil
	}

	if h.iterBar != nil {
		h.monitor.CompleteProgressBar(h.iterBar)
		h.iterBar = nil
	}

	return nil
}
