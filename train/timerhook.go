package train

import "time"

// IterTimer measures per-iteration wall time and publishes it into the
// runner output under "iter_time", in seconds. Register it early, ahead of
// hooks that read the output.
type IterTimer struct {
	HookBase

	start time.Time
}

// NewIterTimer creates the hook.
func NewIterTimer() *IterTimer {
	return &IterTimer{}
}

func (h *IterTimer) Kind() string {
	return "IterTimer"
}

func (h *IterTimer) BeforeIter(*Runner) error {
	h.start = time.Now()

	return nil
}

func (h *IterTimer) AfterIter(r *Runner) error {
	r.SetOutput("iter_time", time.Since(h.start).Seconds())

	return nil
}
