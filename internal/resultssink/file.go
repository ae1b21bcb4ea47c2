package resultssink

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/sarchlab/ldpcsim/internal/ldpcerrors"
)

// FileResultsSink rewrites the entire results file on every
// RecordErrorEvent, matching the specification's "rewritten in full on
// every update" layout. The rewrite is done via a temp-file-plus-rename so
// a process killed mid-write never leaves a truncated results file
// behind, satisfying the design notes' atomicity requirement more
// strongly than the original's plain truncate-and-rewrite.
type FileResultsSink struct {
	mu sync.Mutex

	path             string
	log              *logrus.Logger
	rows             []string
	includeFrameTime bool
}

// NewFileResultsSink creates a sink that writes sweepLen rows to path.
func NewFileResultsSink(path string, sweepLen int, log *logrus.Logger) *FileResultsSink {
	rows := make([]string, sweepLen)
	return &FileResultsSink{path: path, rows: rows, log: log}
}

func (s *FileResultsSink) Banner(sweepLen int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = make([]string, sweepLen)
}

func (s *FileResultsSink) RecordErrorEvent(pointIndex int, snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rows[pointIndex] = formatRow(snap)
	s.includeFrameTime = s.includeFrameTime || snap.IncludeFrameTime
	s.rewriteLocked()
}

func (s *FileResultsSink) PointComplete(pointIndex int, snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rows[pointIndex] = formatRow(snap)
	s.includeFrameTime = s.includeFrameTime || snap.IncludeFrameTime
	s.rewriteLocked()
}

// resultRow is the already-derived, already-rounded view of one results-
// file row: the same five or six fields formatRow prints, kept separately
// from Snapshot so a row read back off disk can be reformatted and
// compared byte-for-byte against the original, proving the on-disk layout
// round-trips (results-file idempotence).
type resultRow struct {
	param            float64
	fer              float64
	ber              float64
	frames           uint64
	avgIters         float64
	frameTimeSeconds float64
	includeFrameTime bool
}

func newResultRow(snap Snapshot) resultRow {
	return resultRow{
		param:            snap.Param,
		fer:              snap.FER(),
		ber:              snap.BER(),
		frames:           snap.Frames,
		avgIters:         snap.AvgIters,
		frameTimeSeconds: snap.FrameTimeSeconds,
		includeFrameTime: snap.IncludeFrameTime,
	}
}

func (r resultRow) format() string {
	if r.includeFrameTime {
		return fmt.Sprintf("%f %.3e %.3e %d %.3e %.6f",
			r.param, r.fer, r.ber, r.frames, r.avgIters, r.frameTimeSeconds)
	}
	return fmt.Sprintf("%f %.3e %.3e %d %.3e",
		r.param, r.fer, r.ber, r.frames, r.avgIters)
}

func formatRow(snap Snapshot) string {
	return newResultRow(snap).format()
}

// parseRow parses one non-blank results-file data row (`snr fer ber frames
// avg_iter [frame_time]`) into its fields, the inverse of resultRow.format.
func parseRow(line string) (resultRow, error) {
	fields := strings.Fields(line)
	if len(fields) != 5 && len(fields) != 6 {
		return resultRow{}, ldpcerrors.NewConfigError("row", fmt.Sprintf("expected 5 or 6 fields, got %d: %q", len(fields), line))
	}

	var r resultRow
	var err error
	if r.param, err = strconv.ParseFloat(fields[0], 64); err != nil {
		return resultRow{}, ldpcerrors.NewConfigError("row", err.Error())
	}
	if r.fer, err = strconv.ParseFloat(fields[1], 64); err != nil {
		return resultRow{}, ldpcerrors.NewConfigError("row", err.Error())
	}
	if r.ber, err = strconv.ParseFloat(fields[2], 64); err != nil {
		return resultRow{}, ldpcerrors.NewConfigError("row", err.Error())
	}
	if r.frames, err = strconv.ParseUint(fields[3], 10, 64); err != nil {
		return resultRow{}, ldpcerrors.NewConfigError("row", err.Error())
	}
	if r.avgIters, err = strconv.ParseFloat(fields[4], 64); err != nil {
		return resultRow{}, ldpcerrors.NewConfigError("row", err.Error())
	}
	if len(fields) == 6 {
		r.includeFrameTime = true
		if r.frameTimeSeconds, err = strconv.ParseFloat(fields[5], 64); err != nil {
			return resultRow{}, ldpcerrors.NewConfigError("row", err.Error())
		}
	}
	return r, nil
}

func (s *FileResultsSink) rewriteLocked() {
	header := "snr fer ber frames avg_iter"
	if s.includeFrameTime {
		header += " frame_time"
	}
	lines := make([]string, 0, len(s.rows)+1)
	lines = append(lines, header)
	lines = append(lines, s.rows...)
	content := strings.Join(lines, "\n") + "\n"

	if err := atomicWriteFile(s.path, []byte(content)); err != nil {
		// Result-write I/O failures during the sweep are logged and
		// swallowed per the specification's error handling policy; the
		// in-memory results remain correct regardless.
		if s.log != nil {
			s.log.WithError(err).Warnf("can not open logfile %s for writing", s.path)
		}
	}
}

func atomicWriteFile(path string, content []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

func (s *FileResultsSink) Close() error { return nil }
