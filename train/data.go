package train

// Modes a workflow phase can run in. Mode is a free-form tag; only ModeTrain
// advances the global counters.
const (
	ModeTrain = "train"
	ModeVal   = "val"
)

// DataSource yields the batches of one workflow phase. Batch order within an
// epoch is the source's business.
type DataSource interface {
	// Len returns the number of batches per epoch.
	Len() int

	// Batch returns the i-th batch, 0 <= i < Len().
	Batch(i int) (any, error)
}

// Phase is one workflow entry. An epoch-based runner runs Units epochs in
// Mode; an iteration-based runner runs Units iterations. Phases pair
// positionally with the data sources passed to Run.
type Phase struct {
	Mode  string `yaml:"mode"`
	Units int    `yaml:"units"`
}

// StepFunc performs one unit of work on a batch. The returned scalars are
// merged into the runner's per-iteration output for hooks to consume.
type StepFunc func(r *Runner, batch any) (map[string]float64, error)
