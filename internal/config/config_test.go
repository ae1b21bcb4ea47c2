package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sarchlab/ldpcsim/internal/config"
)

func TestLoadAppliesYamlAndValidates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")
	body := "alist_path: code.alist\n" +
		"channel_kind: BSC\n" +
		"sweep_start: 0.0\n" +
		"sweep_stop: 0.2\n" +
		"sweep_step: 0.05\n" +
		"threads: 4\n" +
		"max_frames: 1000\n" +
		"min_fec: 50\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := config.Load(path, "")
	require.NoError(t, err)
	require.Equal(t, "BSC", cfg.ChannelKind)
	require.Equal(t, 4, cfg.Threads)
	require.Equal(t, uint64(1000), cfg.MaxFrames)
}

func TestLoadRejectsMissingAlistPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("channel_kind: AWGN\n"), 0o644))

	_, err := config.Load(path, "")
	require.Error(t, err)
}

func TestLoadRejectsUnknownSinkKind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")
	body := "alist_path: code.alist\n" +
		"channel_kind: AWGN\n" +
		"sweep_start: 0.0\n" +
		"sweep_stop: 1.0\n" +
		"sweep_step: 0.5\n" +
		"threads: 1\n" +
		"max_frames: 10\n" +
		"min_fec: 1\n" +
		"sink_kind: carrier-pigeon\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	_, err := config.Load(path, "")
	require.Error(t, err)
}

func TestEnvOverridesTakePrecedenceOverYaml(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "run.yaml")
	body := "alist_path: code.alist\n" +
		"channel_kind: AWGN\n" +
		"sweep_start: 0.0\n" +
		"sweep_stop: 1.0\n" +
		"sweep_step: 0.5\n" +
		"threads: 1\n" +
		"max_frames: 10\n" +
		"min_fec: 1\n"
	require.NoError(t, os.WriteFile(yamlPath, []byte(body), 0o644))

	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("LDPCSIM_THREADS=8\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("LDPCSIM_THREADS") })

	cfg, err := config.Load(yamlPath, envPath)
	require.NoError(t, err)
	require.Equal(t, 8, cfg.Threads)
}

func TestDefaultIsNotValidWithoutAlistPath(t *testing.T) {
	cfg := config.Default()
	require.Error(t, cfg.Validate())
}
