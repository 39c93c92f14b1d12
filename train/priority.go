package train

import "fmt"

// Priority is the ordering key for hook dispatch. Lower values run earlier.
// A hook receives its priority exactly once, at registration.
type Priority int

const (
	PriorityHighest     Priority = 0
	PriorityVeryHigh    Priority = 10
	PriorityHigh        Priority = 30
	PriorityAboveNormal Priority = 40
	PriorityNormal      Priority = 50
	PriorityBelowNormal Priority = 60
	PriorityLow         Priority = 70
	PriorityVeryLow     Priority = 90
	PriorityLowest      Priority = 100
)

var priorityNames = map[string]Priority{
	"HIGHEST":      PriorityHighest,
	"VERY_HIGH":    PriorityVeryHigh,
	"HIGH":         PriorityHigh,
	"ABOVE_NORMAL": PriorityAboveNormal,
	"NORMAL":       PriorityNormal,
	"BELOW_NORMAL": PriorityBelowNormal,
	"LOW":          PriorityLow,
	"VERY_LOW":     PriorityVeryLow,
	"LOWEST":       PriorityLowest,
}

// ParsePriority resolves a symbolic level name to its integer priority.
func ParsePriority(name string) (Priority, error) {
	p, ok := priorityNames[name]
	if !ok {
		return 0, fmt.Errorf("train: unknown priority level %q: %w",
			name, ErrConfiguration)
	}

	return p, nil
}

func (p Priority) String() string {
	for name, level := range priorityNames {
		if level == p {
			return name
		}
	}

	return fmt.Sprintf("%d", int(p))
}

func (p Priority) valid() bool {
	return p >= PriorityHighest && p <= PriorityLowest
}
