package train

// RunState tracks where a run is in its lifecycle. A run moves from
// NotStarted to Running on loop entry and ends in Finished when the budget
// is reached or Aborted when a step or hook fails.
type RunState int

const (
	NotStarted RunState = iota
	Running
	Finished
	Aborted
)

func (s RunState) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case Running:
		return "running"
	case Finished:
		return "finished"
	case Aborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// ProgressCounters tracks the position of a run. iter grows monotonically
// across the whole run, innerIter is the position within the current epoch,
// and at most one of maxEpochs and maxIters is set. A zero budget means
// unset.
type ProgressCounters struct {
	epoch     int
	iter      int
	innerIter int
	maxEpochs int
	maxIters  int
}

// Epoch returns the number of completed training epochs.
func (c *ProgressCounters) Epoch() int {
	return c.epoch
}

// Iter returns the number of completed training iterations.
func (c *ProgressCounters) Iter() int {
	return c.iter
}

// InnerIter returns the iteration position within the current epoch.
func (c *ProgressCounters) InnerIter() int {
	return c.innerIter
}

// MaxEpochs returns the epoch budget, 0 when unset.
func (c *ProgressCounters) MaxEpochs() int {
	return c.maxEpochs
}

// MaxIters returns the iteration budget, 0 when unset.
func (c *ProgressCounters) MaxIters() int {
	return c.maxIters
}

func (c *ProgressCounters) budgetReached() bool {
	if c.maxEpochs > 0 && c.epoch >= c.maxEpochs {
		return true
	}

	if c.maxIters > 0 && c.iter >= c.maxIters {
		return true
	}

	return false
}

func (c *ProgressCounters) unbounded() bool {
	return c.maxEpochs == 0 && c.maxIters == 0
}
