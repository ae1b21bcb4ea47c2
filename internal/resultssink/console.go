package resultssink

import (
	"fmt"
	"io"
	"os"
)

// ConsoleResultsSink reproduces the original implementation's fixed-width
// progress table: a banner printed once, one carriage-return-overwritten
// line per error event, and a newline when a sweep point completes.
type ConsoleResultsSink struct {
	out io.Writer
}

// NewConsoleResultsSink writes to os.Stdout.
func NewConsoleResultsSink() *ConsoleResultsSink {
	return &ConsoleResultsSink{out: os.Stdout}
}

func (s *ConsoleResultsSink) Banner(sweepLen int) {
	fmt.Fprintln(s.out, "========================================================================================")
	fmt.Fprintln(s.out, "  FEC   |      FRAME     |   PARAM  |    BER     |    FER     | AVGITERS  |  TIME/FRAME")
	fmt.Fprintln(s.out, "========+================+==========+============+============+===========+==============")
}

func (s *ConsoleResultsSink) RecordErrorEvent(pointIndex int, snap Snapshot) {
	fmt.Fprintf(s.out, "\r %2d/%2d  |  %12d  |  %.3f  |  %.2e  |  %.2e  |  %.1e  |  %.3fms",
		snap.FEC, snap.MinFEC, snap.Frames, snap.Param,
		snap.BER(), snap.FER(), snap.AvgIters, snap.FrameTimeSeconds*1e3)
}

func (s *ConsoleResultsSink) PointComplete(pointIndex int, snap Snapshot) {
	fmt.Fprintln(s.out)
}

func (s *ConsoleResultsSink) Close() error { return nil }
