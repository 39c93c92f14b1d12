package recording

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sarchlab/trainkit/train"
)

// RunInfo is one property of a recorded run.
type RunInfo struct {
	Property string
	Value    string
}

// RunLogger records the identity of a run next to its metrics: the run ID,
// model, process command, working directory, and the start and end times.
type RunLogger struct {
	tableName string
	recorder  Recorder
	entries   []RunInfo
}

// NewRunLogger creates a run logger and its table on the recorder.
func NewRunLogger(recorder Recorder) *RunLogger {
	l := &RunLogger{
		recorder: recorder,
	}

	stamp := time.Now().Format("2006_01_02_15_04_05")
	l.tableName = "run_log_" + stamp

	l.recorder.CreateTable(l.tableName, RunInfo{})

	return l
}

// TableName returns the name of the run-log table.
func (l *RunLogger) TableName() string {
	return l.tableName
}

// Start captures the identity of the runner's process at run start.
func (l *RunLogger) Start(r *train.Runner) {
	l.add("Run ID", r.ID())
	l.add("Model", r.ModelName())
	l.add("Runner Type", string(r.Type()))
	l.add("Rank", strconv.Itoa(r.Rank()))
	l.add("World Size", strconv.Itoa(r.WorldSize()))
	l.add("Start Time", r.StartTime().Format("2006-01-02 15:04:05"))
	l.add("Command", strings.Join(os.Args, " "))

	if r.WorkDir() != "" {
		l.add("Work Dir", r.WorkDir())
	}
}

// Finish records the outcome and flushes everything to the database.
func (l *RunLogger) Finish(r *train.Runner) {
	l.add("End Time", time.Now().Format("2006-01-02 15:04:05"))
	l.add("Outcome", r.State().String())
	l.add("Epochs", strconv.Itoa(r.Epoch()))
	l.add("Iters", strconv.Itoa(r.Iter()))

	for _, entry := range l.entries {
		l.recorder.Insert(l.tableName, entry)
	}

	l.entries = nil

	l.recorder.Flush()
}

func (l *RunLogger) add(property, value string) {
	l.entries = append(l.entries, RunInfo{Property: property, Value: value})
}
