package train

// Model is the training-unit collaborator. It may wrap a replica group that
// spans several processes; the core treats it as a single unit and never
// inspects past its name.
type Model interface {
	Name() string
}

// Optimizer is the numeric-update collaborator. Its internals are opaque;
// the core only moves its state blob in and out of snapshots.
type Optimizer interface {
	Stateful
}

// Scheduler adjusts the learning rate over the course of a run. It is
// stepped by SchedulerHook; the numerics are opaque to the core.
type Scheduler interface {
	Step()
	LR() float64
}
