package recording

import (
	"sort"

	"github.com/sarchlab/trainkit/train"
)

// MetricsTable is the table the metrics hook writes into.
const MetricsTable = "metrics"

// MetricSample is one scalar observed at one training iteration.
type MetricSample struct {
	Run    string
	Epoch  int
	Iter   int
	Mode   string
	Metric string
	Value  float64
}

// MetricsHook streams every per-iteration output scalar of a run into a
// Recorder. Register it with a low priority so hooks that publish outputs
// run first.
type MetricsHook struct {
	train.HookBase

	recorder Recorder
}

// NewMetricsHook creates the hook writing into the given recorder.
func NewMetricsHook(recorder Recorder) *MetricsHook {
	return &MetricsHook{recorder: recorder}
}

func (h *MetricsHook) Kind() string {
	return "MetricsHook"
}

func (h *MetricsHook) BeforeRun(*train.Runner) error {
	h.recorder.CreateTable(MetricsTable, MetricSample{})

	return nil
}

func (h *MetricsHook) AfterIter(r *train.Runner) error {
	out := r.Output()

	names := make([]string, 0, len(out))
	for name := range out {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		h.recorder.Insert(MetricsTable, MetricSample{
			Run:    r.ID(),
			Epoch:  r.Epoch(),
			Iter:   r.Iter(),
			Mode:   r.Mode(),
			Metric: name,
			Value:  out[name],
		})
	}

	return nil
}

func (h *MetricsHook) AfterRun(*train.Runner) error {
	h.recorder.Flush()

	return nil
}
