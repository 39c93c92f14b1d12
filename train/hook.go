// Package train implements the control core of an iterative training loop:
// a priority-ordered hook registry dispatched at fixed lifecycle points,
// progress counters with an epoch or iteration budget, and snapshot/restore
// of the run's aggregate state for checkpoint and resume.
package train

// Pos is one lifecycle point of the run loop at which hooks are dispatched.
type Pos struct {
	Name string
}

var (
	PosBeforeRun   = &Pos{Name: "BeforeRun"}
	PosAfterRun    = &Pos{Name: "AfterRun"}
	PosBeforeEpoch = &Pos{Name: "BeforeEpoch"}
	PosAfterEpoch  = &Pos{Name: "AfterEpoch"}
	PosBeforeIter  = &Pos{Name: "BeforeIter"}
	PosAfterIter   = &Pos{Name: "AfterIter"}
)

// Hook observes the run loop. The dispatcher calls the method bound to each
// lifecycle position in registry order, passing the runner; returning an
// error aborts the dispatch and the run. Embed HookBase to inherit no-op
// defaults for every lifecycle method and the priority slot assigned at
// registration.
type Hook interface {
	// Kind is the stable identifier of this hook, used to key its saved
	// state in snapshots.
	Kind() string

	// Priority reports the priority assigned at registration.
	Priority() Priority

	BeforeRun(r *Runner) error
	AfterRun(r *Runner) error
	BeforeEpoch(r *Runner) error
	AfterEpoch(r *Runner) error
	BeforeIter(r *Runner) error
	AfterIter(r *Runner) error

	assignedPriority() (Priority, bool)
	assignPriority(p Priority)
}

// Stateful is implemented by hooks whose state belongs in snapshots. An
// empty or nil exported state is skipped during aggregation.
type Stateful interface {
	ExportState() map[string]any
	ImportState(state map[string]any) error
}

// HookBase provides no-op defaults for all lifecycle methods and carries the
// priority slot. The slot is written exactly once, by HookRegistry.Register.
type HookBase struct {
	priority Priority
	assigned bool
}

func (b *HookBase) BeforeRun(*Runner) error   { return nil }
func (b *HookBase) AfterRun(*Runner) error    { return nil }
func (b *HookBase) BeforeEpoch(*Runner) error { return nil }
func (b *HookBase) AfterEpoch(*Runner) error  { return nil }
func (b *HookBase) BeforeIter(*Runner) error  { return nil }
func (b *HookBase) AfterIter(*Runner) error   { return nil }

// Priority reports the priority assigned at registration, PriorityHighest
// before any assignment.
func (b *HookBase) Priority() Priority {
	return b.priority
}

func (b *HookBase) assignedPriority() (Priority, bool) {
	return b.priority, b.assigned
}

func (b *HookBase) assignPriority(p Priority) {
	b.priority = p
	b.assigned = true
}
