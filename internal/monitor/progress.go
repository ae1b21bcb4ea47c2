package monitor

import (
	"sync"
	"time"

	"github.com/rs/xid"
)

// ProgressBar tracks how many frames of a sweep point have been decoded so
// far, for display by the HTTP monitor.
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

// SetFinished overwrites the finished count; the driver calls this with the
// current frame count for the sweep point in progress rather than
// incrementing, since frames is already tracked atomically elsewhere.
func (b *ProgressBar) SetFinished(finished uint64) {
	b.Lock()
	defer b.Unlock()
	b.Finished = finished
}
