package resultssink

import "sync"

// MemoryResultsSink reproduces the original sim_results_t struct: parallel
// slices, one entry per sweep point, holding the derived metrics. It is
// the in-memory results sink named in the specification's external
// interfaces section.
type MemoryResultsSink struct {
	mu sync.Mutex

	FER      []float64
	BER      []float64
	AvgIter  []float64
	Time     []float64
	FEC      []uint64
	Frames   []uint64
}

// NewMemoryResultsSink allocates parallel slices sized to sweepLen.
func NewMemoryResultsSink(sweepLen int) *MemoryResultsSink {
	return &MemoryResultsSink{
		FER:     make([]float64, sweepLen),
		BER:     make([]float64, sweepLen),
		AvgIter: make([]float64, sweepLen),
		Time:    make([]float64, sweepLen),
		FEC:     make([]uint64, sweepLen),
		Frames:  make([]uint64, sweepLen),
	}
}

func (s *MemoryResultsSink) Banner(sweepLen int) {}

func (s *MemoryResultsSink) RecordErrorEvent(pointIndex int, snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store(pointIndex, snap)
}

func (s *MemoryResultsSink) PointComplete(pointIndex int, snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store(pointIndex, snap)
}

func (s *MemoryResultsSink) store(pointIndex int, snap Snapshot) {
	s.FER[pointIndex] = snap.FER()
	s.BER[pointIndex] = snap.BER()
	s.AvgIter[pointIndex] = snap.AvgIters
	s.Time[pointIndex] = snap.FrameTimeSeconds
	s.FEC[pointIndex] = snap.FEC
	s.Frames[pointIndex] = snap.Frames
}

func (s *MemoryResultsSink) Close() error { return nil }
