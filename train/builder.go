package train

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/xid"
	"github.com/sarchlab/trainkit/dist"
)

// RunnerBuilder assembles a Runner. Use MakeRunnerBuilder to create one with
// the default settings.
type RunnerBuilder struct {
	model     Model
	optimizer Optimizer
	scheduler Scheduler
	storage   Storage
	step      StepFunc
	logger    *log.Logger
	meta      map[string]any
	workDir   string
	maxEpochs int
	maxIters  int
	typ       RunnerType
	info      dist.Info

	ckptByEpoch bool
	ckptPeriod  int
}

// MakeRunnerBuilder creates a builder for an epoch-based, single-process
// runner logging to stderr.
func MakeRunnerBuilder() RunnerBuilder {
	return RunnerBuilder{
		typ:    EpochBased,
		info:   dist.Single(),
		logger: log.New(os.Stderr, "", log.LstdFlags),
	}
}

// WithModel sets the model collaborator.
func (b RunnerBuilder) WithModel(m Model) RunnerBuilder {
	b.model = m
	return b
}

// WithOptimizer sets the optimizer collaborator.
func (b RunnerBuilder) WithOptimizer(o Optimizer) RunnerBuilder {
	b.optimizer = o
	return b
}

// WithScheduler sets the learning-rate scheduler collaborator.
func (b RunnerBuilder) WithScheduler(s Scheduler) RunnerBuilder {
	b.scheduler = s
	return b
}

// WithStorage sets the checkpoint storage collaborator.
func (b RunnerBuilder) WithStorage(s Storage) RunnerBuilder {
	b.storage = s
	return b
}

// WithStep sets the step function that performs one unit of work.
func (b RunnerBuilder) WithStep(fn StepFunc) RunnerBuilder {
	b.step = fn
	return b
}

// WithLogger sets the runner's logger.
func (b RunnerBuilder) WithLogger(l *log.Logger) RunnerBuilder {
	b.logger = l
	return b
}

// WithMeta attaches caller-defined metadata to the run.
func (b RunnerBuilder) WithMeta(meta map[string]any) RunnerBuilder {
	b.meta = meta
	return b
}

// WithWorkDir sets the working directory. The directory is absolutized and
// created at build time.
func (b RunnerBuilder) WithWorkDir(dir string) RunnerBuilder {
	b.workDir = dir
	return b
}

// WithMaxEpochs sets the epoch budget. Mutually exclusive with WithMaxIters.
func (b RunnerBuilder) WithMaxEpochs(n int) RunnerBuilder {
	b.maxEpochs = n
	return b
}

// WithMaxIters sets the iteration budget. Mutually exclusive with
// WithMaxEpochs.
func (b RunnerBuilder) WithMaxIters(n int) RunnerBuilder {
	b.maxIters = n
	return b
}

// WithRunnerType selects epoch-based or iteration-based driving.
func (b RunnerBuilder) WithRunnerType(t RunnerType) RunnerBuilder {
	b.typ = t
	return b
}

// WithDistInfo sets the process-group coordinates. They are resolved once
// here and passed by value afterward.
func (b RunnerBuilder) WithDistInfo(info dist.Info) RunnerBuilder {
	b.info = info
	return b
}

// WithCheckpointPolicy registers the built-in periodic checkpoint hook at
// build time: every period epochs when byEpoch is true, every period
// iterations otherwise. The hook writes only on the main process.
func (b RunnerBuilder) WithCheckpointPolicy(byEpoch bool, period int) RunnerBuilder {
	b.ckptByEpoch = byEpoch
	b.ckptPeriod = period
	return b
}

// Build validates the configuration and creates the Runner.
func (b RunnerBuilder) Build() (*Runner, error) {
	if b.maxEpochs > 0 && b.maxIters > 0 {
		return nil, fmt.Errorf(
			"train: only one of max epochs and max iters can be set: %w",
			ErrConfiguration)
	}

	if b.maxEpochs < 0 || b.maxIters < 0 {
		return nil, fmt.Errorf("train: negative budget: %w", ErrConfiguration)
	}

	if b.step == nil {
		return nil, fmt.Errorf("train: no step function: %w", ErrConfiguration)
	}

	if b.typ != EpochBased && b.typ != IterBased {
		return nil, fmt.Errorf("train: unknown runner type %q: %w",
			b.typ, ErrConfiguration)
	}

	if b.info.WorldSize < 1 ||
		b.info.Rank < 0 ||
		b.info.Rank >= b.info.WorldSize {
		return nil, fmt.Errorf(
			"train: rank %d does not fit a process group of %d: %w",
			b.info.Rank, b.info.WorldSize, ErrConfiguration)
	}

	workDir, err := b.resolveWorkDir()
	if err != nil {
		return nil, err
	}

	r := &Runner{
		ProgressCounters: ProgressCounters{
			maxEpochs: b.maxEpochs,
			maxIters:  b.maxIters,
		},
		registry:  NewHookRegistry(),
		model:     b.model,
		optimizer: b.optimizer,
		scheduler: b.scheduler,
		storage:   b.storage,
		step:      b.step,
		logger:    b.logger,
		typ:       b.typ,
		rank:      b.info.Rank,
		worldSize: b.info.WorldSize,
		workDir:   workDir,
		meta:      b.meta,
		id:        xid.New().String(),
		startTime: time.Now(),
		output:    make(map[string]float64),
	}

	if b.storage != nil && b.ckptPeriod > 0 {
		hook := NewPeriodicCheckpoint(b.ckptByEpoch, b.ckptPeriod)
		if err := r.RegisterHook(hook, PriorityNormal); err != nil {
			return nil, err
		}
	}

	return r, nil
}

func (b RunnerBuilder) resolveWorkDir() (string, error) {
	if b.workDir == "" {
		return "", nil
	}

	abs, err := filepath.Abs(b.workDir)
	if err != nil {
		return "", fmt.Errorf("train: work dir %q: %w: %w",
			b.workDir, ErrConfiguration, err)
	}

	if err := os.MkdirAll(abs, 0o755); err != nil {
		return "", fmt.Errorf("train: work dir %q: %w: %w",
			b.workDir, ErrConfiguration, err)
	}

	return abs, nil
}
