package train

import "fmt"

// BestTracker watches one scalar of the per-iteration output and remembers
// the best value seen and the iteration that produced it. The record
// survives checkpoint and resume.
type BestTracker struct {
	HookBase

	metric string
	larger bool

	best     float64
	bestIter int
	seen     bool
}

// NewBestTracker creates a tracker for the named output scalar. larger
// selects whether larger values are better.
func NewBestTracker(metric string, larger bool) *BestTracker {
	return &BestTracker{
		metric: metric,
		larger: larger,
	}
}

func (h *BestTracker) Kind() string {
	return "BestTracker"
}

// Best returns the best value seen and the iteration that produced it. The
// bool is false until the metric appears in an iteration output.
func (h *BestTracker) Best() (float64, int, bool) {
	return h.best, h.bestIter, h.seen
}

func (h *BestTracker) AfterIter(r *Runner) error {
	v, ok := r.Output()[h.metric]
	if !ok {
		return nil
	}

	if !h.seen || (h.larger && v > h.best) || (!h.larger && v < h.best) {
		h.best = v
		h.bestIter = r.Iter()
		h.seen = true
	}

	return nil
}

// ExportState contributes the record to snapshots. Before the metric is
// first seen there is nothing to save and the hook is skipped.
func (h *BestTracker) ExportState() map[string]any {
	if !h.seen {
		return nil
	}

	return map[string]any{
		"best_score": h.best,
		"best_iter":  h.bestIter,
	}
}

// ImportState restores the record from a snapshot entry.
func (h *BestTracker) ImportState(state map[string]any) error {
	score, ok := stateFloat(state, "best_score")
	if !ok {
		return fmt.Errorf("train: best tracker state has no best_score")
	}

	iter, ok := stateInt(state, "best_iter")
	if !ok {
		return fmt.Errorf("train: best tracker state has no best_iter")
	}

	h.best = score
	h.bestIter = iter
	h.seen = true

	return nil
}

// stateFloat reads a numeric state entry. JSON decoding turns all numbers
// into float64, so both in-memory and decoded snapshots must be accepted.
func stateFloat(state map[string]any, key string) (float64, bool) {
	switch v := state[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}

func stateInt(state map[string]any, key string) (int, bool) {
	switch v := state[key].(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}
