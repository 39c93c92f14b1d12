package train

// SchedulerHook steps the learning-rate scheduler after every training epoch
// or iteration and publishes the current rate into the runner output under
// "lr". Without a scheduler collaborator the hook is a no-op.
type SchedulerHook struct {
	HookBase

	byEpoch bool
}

// NewSchedulerHook creates the hook. byEpoch selects whether the scheduler
// steps per epoch or per iteration.
func NewSchedulerHook(byEpoch bool) *SchedulerHook {
	return &SchedulerHook{byEpoch: byEpoch}
}

func (h *SchedulerHook) Kind() string {
	return "SchedulerHook"
}

func (h *SchedulerHook) BeforeIter(r *Runner) error {
	if r.Scheduler() == nil {
		return nil
	}

	r.SetOutput("lr", r.Scheduler().LR())

	return nil
}

func (h *SchedulerHook) AfterIter(r *Runner) error {
	if h.byEpoch || r.Scheduler() == nil || r.Mode() != ModeTrain {
		return nil
	}

	r.Scheduler().Step()

	return nil
}

func (h *SchedulerHook) AfterEpoch(r *Runner) error {
	if !h.byEpoch || r.Scheduler() == nil || r.Mode() != ModeTrain {
		return nil
	}

	r.Scheduler().Step()

	return nil
}
