package train

import "fmt"

// HookConfig describes a hook declaratively, so run configuration files can
// assemble the hook set without touching code. Priority is a symbolic level
// name; empty means NORMAL.
type HookConfig struct {
	Type     string         `yaml:"type" json:"type"`
	Priority string         `yaml:"priority,omitempty" json:"priority,omitempty"`
	Params   map[string]any `yaml:"params,omitempty" json:"params,omitempty"`
}

// HookFactory builds a hook from descriptor parameters.
type HookFactory func(params map[string]any) (Hook, error)

var hookFactories = make(map[string]HookFactory)

// RegisterHookType makes a hook type buildable from configuration. It panics
// when the name is taken, as that is always a programming mistake.
func RegisterHookType(name string, f HookFactory) {
	if _, ok := hookFactories[name]; ok {
		panic("train: hook type " + name + " is already registered")
	}

	hookFactories[name] = f
}

// BuildHook builds a hook from its descriptor through the factory registry.
func BuildHook(cfg HookConfig) (Hook, error) {
	f, ok := hookFactories[cfg.Type]
	if !ok {
		return nil, fmt.Errorf("train: unknown hook type %q: %w",
			cfg.Type, ErrConfiguration)
	}

	return f(cfg.Params)
}

// RegisterHookFromConfig builds the described hook and registers it. A
// descriptor without a priority registers at NORMAL.
func (r *Runner) RegisterHookFromConfig(cfg HookConfig) error {
	h, err := BuildHook(cfg)
	if err != nil {
		return err
	}

	p := PriorityNormal
	if cfg.Priority != "" {
		p, err = ParsePriority(cfg.Priority)
		if err != nil {
			return err
		}
	}

	return r.RegisterHook(h, p)
}

func init() {
	RegisterHookType("PeriodicCheckpoint",
		func(params map[string]any) (Hook, error) {
			return NewPeriodicCheckpoint(
				paramBool(params, "by_epoch", true),
				paramInt(params, "period", 1)), nil
		})

	RegisterHookType("IterTimer",
		func(map[string]any) (Hook, error) {
			return NewIterTimer(), nil
		})

	RegisterHookType("SchedulerHook",
		func(params map[string]any) (Hook, error) {
			return NewSchedulerHook(paramBool(params, "by_epoch", true)), nil
		})

	RegisterHookType("BestTracker",
		func(params map[string]any) (Hook, error) {
			metric, ok := params["metric"].(string)
			if !ok || metric == "" {
				return nil, fmt.Errorf(
					"train: best tracker needs a metric name: %w",
					ErrConfiguration)
			}

			return NewBestTracker(metric,
				paramBool(params, "larger", true)), nil
		})
}

func paramBool(params map[string]any, key string, def bool) bool {
	if v, ok := params[key].(bool); ok {
		return v
	}

	return def
}

func paramInt(params map[string]any, key string, def int) int {
	switch v := params[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return def
	}
}
