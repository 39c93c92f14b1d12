package monitoring

import (
	"sync"
	"time"

	"github.com/rs/xid"
)

// A ProgressBar tracks how far one dimension of a run has advanced. A Total
// of 0 means the end is unknown.
type ProgressBar struct {
	sync.Mutex
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartTime time.Time `json:"start_time"`
	Total     uint64    `json:"total"`
	Finished  uint64    `json:"finished"`
}

func newProgressBar(name string, total uint64) *ProgressBar {
	return &ProgressBar{
		ID:        xid.New().String(),
		Name:      name,
		StartTime: time.Now(),
		Total:     total,
	}
}

// Increment adds a certain amount to the finished count.
func (b *ProgressBar) Increment(amount uint64) {
	b.Lock()
	defer b.Unlock()

	b.Finished += amount
}

// Set overwrites the finished count.
func (b *ProgressBar) Set(finished uint64) {
	b.Lock()
	defer b.Unlock()

	b.Finished = finished
}
