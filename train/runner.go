package train

import (
	"fmt"
	"log"
	"time"
)

// RunnerType selects what drives the run loop: whole epochs or single
// iterations. It is fixed at construction.
type RunnerType string

const (
	EpochBased RunnerType = "epoch"
	IterBased  RunnerType = "iter"
)

// Runner owns the progress counters, the hook registry, and the snapshot
// aggregation of one training run. It drives the loop single-threadedly,
// delegating per-batch work to the caller-supplied step function and
// dispatching hooks at fixed lifecycle points. One Runner is constructed per
// process and never restarted.
type Runner struct {
	ProgressCounters

	registry  *HookRegistry
	model     Model
	optimizer Optimizer
	scheduler Scheduler
	storage   Storage
	step      StepFunc
	logger    *log.Logger

	typ       RunnerType
	mode      string
	state     RunState
	rank      int
	worldSize int
	workDir   string
	meta      map[string]any
	id        string
	startTime time.Time

	output map[string]float64
}

// ModelName returns the name of the model collaborator, "" when absent.
func (r *Runner) ModelName() string {
	if r.model == nil {
		return ""
	}

	return r.model.Name()
}

// Rank returns this process's position in the training process group.
func (r *Runner) Rank() int {
	return r.rank
}

// WorldSize returns the size of the training process group.
func (r *Runner) WorldSize() int {
	return r.worldSize
}

// IsMain reports whether this process is the designated checkpoint writer.
func (r *Runner) IsMain() bool {
	return r.rank == 0
}

// Type returns the runner type fixed at construction.
func (r *Runner) Type() RunnerType {
	return r.typ
}

// Mode returns the tag of the workflow phase currently running.
func (r *Runner) Mode() string {
	return r.mode
}

// State returns the position of the run in its lifecycle.
func (r *Runner) State() RunState {
	return r.state
}

// WorkDir returns the absolute working directory, "" when none was set.
func (r *Runner) WorkDir() string {
	return r.workDir
}

// Meta returns the caller-supplied run metadata.
func (r *Runner) Meta() map[string]any {
	return r.meta
}

// ID returns the unique identifier of this run.
func (r *Runner) ID() string {
	return r.id
}

// StartTime returns the construction time of the runner.
func (r *Runner) StartTime() time.Time {
	return r.startTime
}

// Scheduler returns the learning-rate scheduler collaborator, nil when
// absent.
func (r *Runner) Scheduler() Scheduler {
	return r.scheduler
}

// Logger returns the runner's logger.
func (r *Runner) Logger() *log.Logger {
	return r.logger
}

// Hooks returns the registered hooks in dispatch order.
func (r *Runner) Hooks() []Hook {
	return r.registry.Hooks()
}

// RegisterHook assigns the priority to the hook and adds it to the
// registry. Hooks registered with the same priority dispatch in
// registration order.
func (r *Runner) RegisterHook(h Hook, p Priority) error {
	return r.registry.Register(h, p)
}

// Output returns the scalar outputs of the current iteration.
func (r *Runner) Output() map[string]float64 {
	return r.output
}

// SetOutput records a scalar into the current iteration's output, making it
// visible to later hooks in the same dispatch cycle.
func (r *Runner) SetOutput(key string, value float64) {
	r.output[key] = value
}

// CallHook dispatches one lifecycle event to every hook in registry order,
// passing the runner. The first hook failure propagates immediately; hooks
// that already ran are not rolled back.
func (r *Runner) CallHook(pos *Pos) error {
	var call func(Hook, *Runner) error

	switch pos {
	case PosBeforeRun:
		call = Hook.BeforeRun
	case PosAfterRun:
		call = Hook.AfterRun
	case PosBeforeEpoch:
		call = Hook.BeforeEpoch
	case PosAfterEpoch:
		call = Hook.AfterEpoch
	case PosBeforeIter:
		call = Hook.BeforeIter
	case PosAfterIter:
		call = Hook.AfterIter
	default:
		return fmt.Errorf("train: unknown lifecycle position %q: %w",
			pos.Name, ErrConfiguration)
	}

	for _, h := range r.registry.hooks {
		if err := call(h, r); err != nil {
			return fmt.Errorf("train: hook %q at %s: %w: %w",
				h.Kind(), pos.Name, ErrDispatch, err)
		}
	}

	return nil
}

// SaveCheckpoint snapshots the run and hands the snapshot to the storage
// collaborator under the given tag. It is a no-op without storage.
func (r *Runner) SaveCheckpoint(tag string) error {
	if r.storage == nil {
		return nil
	}

	return r.storage.Save(tag, r.Snapshot())
}

// Run drives the whole run: one data source per workflow phase, paired
// positionally. It dispatches BeforeRun, advances through the phases
// according to the runner type until the budget is reached, dispatches
// AfterRun, and moves the run state to Finished. Any step or hook failure
// aborts the run and returns.
func (r *Runner) Run(sources []DataSource, flow []Phase) error {
	if r.state != NotStarted {
		return fmt.Errorf("train: run already started: %w", ErrConfiguration)
	}

	if len(flow) == 0 {
		return fmt.Errorf("train: empty workflow: %w", ErrConfiguration)
	}

	if len(sources) != len(flow) {
		return fmt.Errorf(
			"train: %d data sources for %d workflow phases: %w",
			len(sources), len(flow), ErrConfiguration)
	}

	r.state = Running

	if err := r.CallHook(PosBeforeRun); err != nil {
		return r.abort(err)
	}

	var err error
	switch r.typ {
	case EpochBased:
		err = r.runByEpoch(sources, flow)
	case IterBased:
		err = r.runByIter(sources, flow)
	default:
		err = fmt.Errorf("train: unknown runner type %q: %w",
			r.typ, ErrConfiguration)
	}

	if err != nil {
		return r.abort(err)
	}

	if err := r.CallHook(PosAfterRun); err != nil {
		return r.abort(err)
	}

	r.state = Finished

	return nil
}

func (r *Runner) abort(err error) error {
	r.state = Aborted

	return err
}

// runByEpoch repeats the workflow until the budget is reached. Without a
// budget the workflow runs exactly once.
func (r *Runner) runByEpoch(sources []DataSource, flow []Phase) error {
	for pass := 0; ; pass++ {
		if r.budgetReached() {
			return nil
		}

		if r.unbounded() && pass > 0 {
			return nil
		}

		iterBefore, epochBefore := r.iter, r.epoch

		for i, phase := range flow {
			for u := 0; u < phase.Units; u++ {
				if phase.Mode == ModeTrain && r.budgetReached() {
					return nil
				}

				if err := r.runEpoch(sources[i], phase.Mode); err != nil {
					return err
				}
			}
		}

		if r.iter == iterBefore && r.epoch == epochBefore && !r.unbounded() {
			return fmt.Errorf(
				"train: workflow makes no progress toward the budget: %w",
				ErrConfiguration)
		}
	}
}

// runEpoch runs one pass over the source. Train epochs advance the global
// counters; val epochs only track the inner position.
func (r *Runner) runEpoch(src DataSource, mode string) error {
	r.mode = mode
	training := mode == ModeTrain

	if err := r.CallHook(PosBeforeEpoch); err != nil {
		return err
	}

	n := src.Len()
	for i := 0; i < n; i++ {
		if training && r.maxIters > 0 && r.iter >= r.maxIters {
			break
		}

		r.innerIter = i

		batch, err := src.Batch(i)
		if err != nil {
			return fmt.Errorf("train: batch %d of epoch %d: %w",
				i, r.epoch, err)
		}

		if err := r.runStep(batch, training); err != nil {
			return err
		}
	}

	if err := r.CallHook(PosAfterEpoch); err != nil {
		return err
	}

	if training {
		r.epoch++
		r.innerIter = 0
	}

	return nil
}

// runByIter cycles batches out of each phase's source, Units iterations per
// phase per pass, until the budget is reached. The epoch counter advances
// whenever a training source wraps around. Epoch hooks are not dispatched in
// this mode.
func (r *Runner) runByIter(sources []DataSource, flow []Phase) error {
	cursors := make([]int, len(sources))

	for pass := 0; ; pass++ {
		if r.budgetReached() {
			return nil
		}

		if r.unbounded() && pass > 0 {
			return nil
		}

		iterBefore := r.iter

		for i, phase := range flow {
			r.mode = phase.Mode
			training := phase.Mode == ModeTrain

			for u := 0; u < phase.Units; u++ {
				if training && r.budgetReached() {
					return nil
				}

				src := sources[i]
				if src.Len() == 0 {
					return fmt.Errorf("train: data source %d is empty: %w",
						i, ErrConfiguration)
				}

				idx := cursors[i]
				cursors[i] = (cursors[i] + 1) % src.Len()
				r.innerIter = idx

				batch, err := src.Batch(idx)
				if err != nil {
					return fmt.Errorf("train: batch %d at iter %d: %w",
						idx, r.iter, err)
				}

				if err := r.runStep(batch, training); err != nil {
					return err
				}

				if training && cursors[i] == 0 {
					r.epoch++
				}
			}
		}

		if r.iter == iterBefore && !r.unbounded() {
			return fmt.Errorf(
				"train: workflow makes no progress toward the budget: %w",
				ErrConfiguration)
		}
	}
}

// runStep performs one iteration: BeforeIter hooks, the step function,
// AfterIter hooks, then the counter update. The iteration counter only moves
// after AfterIter returns, so hooks observe the index of the iteration that
// just ran.
func (r *Runner) runStep(batch any, training bool) error {
	r.output = make(map[string]float64)

	if err := r.CallHook(PosBeforeIter); err != nil {
		return err
	}

	out, err := r.step(r, batch)
	if err != nil {
		return fmt.Errorf("train: step at iter %d: %w", r.iter, err)
	}

	for k, v := range out {
		r.output[k] = v
	}

	if err := r.CallHook(PosAfterIter); err != nil {
		return err
	}

	if training {
		r.iter++
	}

	return nil
}
