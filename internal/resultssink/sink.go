// Package resultssink implements the ResultsSink abstraction named in the
// specification's design notes: it extracts console and file progress
// reporting out of the simulation driver's hot path into a single
// operation, RecordErrorEvent, called only from inside the driver's
// per-sweep-point critical section.
package resultssink

// Snapshot is the derived-metrics view of one sweep point at the moment
// an error frame was observed; it is exactly the shape of the optional
// in-memory results sink described in the specification's external
// interfaces section.
type Snapshot struct {
	Param            float64
	FEC              uint64
	MinFEC           uint64
	Frames           uint64
	MaxFrames        uint64
	BitErrors        uint64
	CodeLength       int
	AvgIters         float64
	FrameTimeSeconds float64
	IncludeFrameTime bool
}

// BER returns bit_errors/(frames*n).
func (s Snapshot) BER() float64 {
	if s.Frames == 0 || s.CodeLength == 0 {
		return 0
	}
	return float64(s.BitErrors) / float64(s.Frames*uint64(s.CodeLength))
}

// FER returns frame_errors/frames.
func (s Snapshot) FER() float64 {
	if s.Frames == 0 {
		return 0
	}
	return float64(s.FEC) / float64(s.Frames)
}

// ResultsSink receives formatted progress out of the simulation driver's
// hot path. Implementations must not block the critical section for long;
// RecordErrorEvent is called with the single mutex held.
type ResultsSink interface {
	// Banner is called once, before the sweep starts.
	Banner(sweepLen int)
	// RecordErrorEvent is called once per error-frame event, with the
	// snapshot of the sweep point's derived metrics at that instant.
	RecordErrorEvent(pointIndex int, snap Snapshot)
	// PointComplete is called once a sweep point's stop condition is
	// reached.
	PointComplete(pointIndex int, snap Snapshot)
	// Close releases any resources (open files, DB handles) the sink
	// holds.
	Close() error
}
