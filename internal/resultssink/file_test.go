package resultssink_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sarchlab/ldpcsim/internal/resultssink"
)

func TestFileResultsSinkRewritesWholeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "results.txt")

	sink := resultssink.NewFileResultsSink(path, 2, nil)
	sink.Banner(2)

	snap := resultssink.Snapshot{Param: 10.0, FEC: 1, MinFEC: 1, Frames: 100, CodeLength: 3, BitErrors: 5, AvgIters: 1}
	sink.RecordErrorEvent(0, snap)

	body, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(string(body), "\n"), "\n")
	require.Equal(t, "snr fer ber frames avg_iter", lines[0])
	require.Equal(t, "", lines[2]) // point 1 not yet reached

	snap2 := resultssink.Snapshot{Param: 10.5, FEC: 1, MinFEC: 1, Frames: 50, CodeLength: 3, BitErrors: 2, AvgIters: 2}
	sink.PointComplete(1, snap2)

	body2, err := os.ReadFile(path)
	require.NoError(t, err)
	lines2 := strings.Split(strings.TrimRight(string(body2), "\n"), "\n")
	require.NotEqual(t, "", lines2[1])
	require.NotEqual(t, "", lines2[2])
}

func TestFileResultsSinkHeaderGrowsAFrameTimeColumn(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "results.txt")

	sink := resultssink.NewFileResultsSink(path, 1, nil)
	sink.Banner(1)

	snap := resultssink.Snapshot{
		Param: 10.0, FEC: 1, MinFEC: 1, Frames: 100, CodeLength: 3, BitErrors: 5, AvgIters: 1,
		IncludeFrameTime: true, FrameTimeSeconds: 0.002,
	}
	sink.RecordErrorEvent(0, snap)

	body, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(body), "\n"), "\n")
	require.Equal(t, "snr fer ber frames avg_iter frame_time", lines[0])
	require.Len(t, strings.Fields(lines[1]), 6)
}

func TestFileResultsSinkIsIdempotentOnRewrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "results.txt")

	sink := resultssink.NewFileResultsSink(path, 1, nil)
	sink.Banner(1)
	snap := resultssink.Snapshot{Param: 10.0, FEC: 1, MinFEC: 1, Frames: 10, CodeLength: 3, BitErrors: 1, AvgIters: 1}
	sink.RecordErrorEvent(0, snap)

	first, err := os.ReadFile(path)
	require.NoError(t, err)

	sink.RecordErrorEvent(0, snap)
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	require.Equal(t, first, second)
}
