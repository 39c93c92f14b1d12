package train

import "fmt"

// HookRegistry is the ordered collection of hooks. The sequence stays sorted
// by non-decreasing priority; hooks sharing a priority keep their
// registration order. Hooks are never removed or reprioritized.
type HookRegistry struct {
	hooks []Hook
}

// NewHookRegistry creates an empty registry.
func NewHookRegistry() *HookRegistry {
	return &HookRegistry{}
}

// Register assigns the priority to the hook and inserts the hook into the
// sequence. It fails if the hook already carries an assigned priority, which
// means the hook is registered somewhere else already.
func (reg *HookRegistry) Register(h Hook, p Priority) error {
	if _, assigned := h.assignedPriority(); assigned {
		return fmt.Errorf(
			"train: hook %q already has a priority assigned: %w",
			h.Kind(), ErrConfiguration)
	}

	if !p.valid() {
		return fmt.Errorf("train: priority %d is outside [%d, %d]: %w",
			p, PriorityHighest, PriorityLowest, ErrConfiguration)
	}

	h.assignPriority(p)
	reg.insert(h, p)

	return nil
}

// insert scans from the tail backward and places h immediately after the
// first hook whose priority is not larger, so equal priorities end up in
// registration order. A hook with the strictly smallest priority goes to the
// head.
func (reg *HookRegistry) insert(h Hook, p Priority) {
	for i := len(reg.hooks) - 1; i >= 0; i-- {
		if p >= reg.hooks[i].Priority() {
			reg.hooks = append(reg.hooks, nil)
			copy(reg.hooks[i+2:], reg.hooks[i+1:])
			reg.hooks[i+1] = h

			return
		}
	}

	reg.hooks = append([]Hook{h}, reg.hooks...)
}

// Hooks returns the hooks in dispatch order. The returned slice is a copy.
func (reg *HookRegistry) Hooks() []Hook {
	out := make([]Hook, len(reg.hooks))
	copy(out, reg.hooks)

	return out
}

// Len returns the number of registered hooks.
func (reg *HookRegistry) Len() int {
	return len(reg.hooks)
}

// byKind returns the first registered hook of the given kind.
func (reg *HookRegistry) byKind(kind string) (Hook, bool) {
	for _, h := range reg.hooks {
		if h.Kind() == kind {
			return h, true
		}
	}

	return nil, false
}
