package train

import (
	"fmt"
	"maps"
	"slices"
)

// Snapshot is the serializable aggregate of one run: progress counters, the
// optimizer's opaque state blob, and the state of every stateful hook keyed
// by hook kind. A snapshot records the last completed unit of work.
type Snapshot struct {
	Iter      int                       `json:"iter"`
	Epoch     int                       `json:"epoch"`
	Optimizer map[string]any            `json:"optimizer,omitempty"`
	Hooks     map[string]map[string]any `json:"hooks,omitempty"`
}

// Snapshot composes the current snapshot. Hooks whose exported state is
// empty are skipped. When two registered hooks share a kind, the first
// registration's state is kept and the rest are dropped without notice.
// It is a pure read with no side effects on the run.
func (r *Runner) Snapshot() Snapshot {
	s := Snapshot{
		Iter:  r.iter,
		Epoch: r.epoch,
	}

	if r.optimizer != nil {
		s.Optimizer = r.optimizer.ExportState()
	}

	for _, h := range r.registry.hooks {
		st, ok := h.(Stateful)
		if !ok {
			continue
		}

		state := st.ExportState()
		if len(state) == 0 {
			continue
		}

		if _, taken := s.Hooks[h.Kind()]; taken {
			// TODO: surface repeated stateful kinds instead of dropping
			// the later ones.
			continue
		}

		if s.Hooks == nil {
			s.Hooks = make(map[string]map[string]any)
		}

		s.Hooks[h.Kind()] = state
	}

	return s
}

// Restore overwrites the counters with the snapshot's values, feeds the
// optimizer state back to the optimizer, and distributes each hook-state
// entry to the first registered hook of the matching kind. An entry whose
// kind matches no registered stateful hook is logged and skipped; a failure
// inside a hook's ImportState aborts the restore.
func (r *Runner) Restore(s Snapshot) error {
	r.iter = s.Iter
	r.epoch = s.Epoch

	if r.optimizer != nil && s.Optimizer != nil {
		if err := r.optimizer.ImportState(s.Optimizer); err != nil {
			return fmt.Errorf("train: optimizer state: %w", err)
		}
	}

	for _, kind := range slices.Sorted(maps.Keys(s.Hooks)) {
		h, found := r.registry.byKind(kind)

		var st Stateful
		if found {
			st, found = h.(Stateful)
		}

		if !found {
			r.logger.Printf(
				"train: cannot find hook %q, its saved state is ignored",
				kind)

			continue
		}

		if err := st.ImportState(s.Hooks[kind]); err != nil {
			return fmt.Errorf("train: hook %q state: %w", kind, err)
		}
	}

	return nil
}
