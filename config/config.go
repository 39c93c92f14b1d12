// Package config loads declarative run configuration from YAML files, so
// the budget, workflow, and hook set of a run can change without a rebuild.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sarchlab/trainkit/train"
)

// Checkpoint configures the periodic checkpoint policy of a run.
type Checkpoint struct {
	// Dir is the checkpoint directory. Empty disables checkpointing.
	Dir string `yaml:"dir"`

	// ByEpoch selects checkpointing every Period epochs instead of every
	// Period iterations.
	ByEpoch bool `yaml:"by_epoch"`

	// Period is the checkpoint interval. 0 disables checkpointing.
	Period int `yaml:"period"`
}

// Monitor configures the monitoring server of a run.
type Monitor struct {
	Enable  bool `yaml:"enable"`
	Port    int  `yaml:"port"`
	Browser bool `yaml:"browser"`
}

// Run is the declarative description of one training run.
type Run struct {
	WorkDir    string `yaml:"work_dir"`
	RunnerType string `yaml:"runner_type"`
	MaxEpochs  int    `yaml:"max_epochs"`
	MaxIters   int    `yaml:"max_iters"`

	// MetricsDB names the SQLite metrics database, without extension.
	MetricsDB string `yaml:"metrics_db"`

	Checkpoint Checkpoint         `yaml:"checkpoint"`
	Monitor    Monitor            `yaml:"monitor"`
	Workflow   []train.Phase      `yaml:"workflow"`
	Hooks      []train.HookConfig `yaml:"hooks"`
}

// Load reads and validates a run configuration.
func Load(path string) (Run, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Run{}, fmt.Errorf("config: reading %s: %w", path, err)
	}

	return Parse(raw)
}

// Parse decodes and validates a run configuration.
func Parse(raw []byte) (Run, error) {
	var c Run

	if err := yaml.Unmarshal(raw, &c); err != nil {
		return Run{}, fmt.Errorf("config: %w", err)
	}

	if err := c.validate(); err != nil {
		return Run{}, err
	}

	return c, nil
}

func (c Run) validate() error {
	switch train.RunnerType(c.RunnerType) {
	case train.EpochBased, train.IterBased, "":
	default:
		return fmt.Errorf("config: unknown runner type %q", c.RunnerType)
	}

	if c.MaxEpochs > 0 && c.MaxIters > 0 {
		return fmt.Errorf(
			"config: only one of max_epochs and max_iters can be set")
	}

	for _, phase := range c.Workflow {
		if phase.Mode == "" {
			return fmt.Errorf("config: workflow phase without a mode")
		}

		if phase.Units < 0 {
			return fmt.Errorf("config: workflow phase with negative units")
		}
	}

	for _, h := range c.Hooks {
		if h.Type == "" {
			return fmt.Errorf("config: hook entry without a type")
		}

		if h.Priority != "" {
			if _, err := train.ParsePriority(h.Priority); err != nil {
				return err
			}
		}
	}

	return nil
}

// Type returns the configured runner type, epoch-based by default.
func (c Run) Type() train.RunnerType {
	if c.RunnerType == "" {
		return train.EpochBased
	}

	return train.RunnerType(c.RunnerType)
}

// ApplyHooks builds every configured hook and registers it on the runner.
func (c Run) ApplyHooks(r *train.Runner) error {
	for _, h := range c.Hooks {
		if err := r.RegisterHookFromConfig(h); err != nil {
			return err
		}
	}

	return nil
}
