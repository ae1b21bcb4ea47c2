// Package config loads and validates the flat configuration record that
// drives one simulation run: the code under test, the channel sweep, the
// decoder's runtime options, and where results are reported.
package config

import (
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/sarchlab/ldpcsim/internal/bpdecoder"
	"github.com/sarchlab/ldpcsim/internal/channel"
	"github.com/sarchlab/ldpcsim/internal/ldpcerrors"
)

// SinkKind selects which ResultsSink implementation a run reports through.
type SinkKind string

const (
	SinkConsole SinkKind = "console"
	SinkFile    SinkKind = "file"
	SinkMemory  SinkKind = "memory"
	SinkSQLite  SinkKind = "sqlite"
)

// Config is the complete set of knobs for one simulation run, loaded from
// a YAML file and then overridable by environment variables (typically
// populated from a .env file via godotenv).
type Config struct {
	AlistPath string `yaml:"alist_path"`

	ChannelKind string `yaml:"channel_kind"` // "AWGN" or "BSC"

	SweepStart float64 `yaml:"sweep_start"`
	SweepStop  float64 `yaml:"sweep_stop"`
	SweepStep  float64 `yaml:"sweep_step"`

	Threads   int    `yaml:"threads"`
	Seed      int64  `yaml:"seed"`
	MaxFrames uint64 `yaml:"max_frames"`
	MinFEC    uint64 `yaml:"min_fec"`

	IMax        int     `yaml:"i_max"`
	EarlyTerm   bool    `yaml:"early_term"`
	Variant     string  `yaml:"variant"` // "sum-product" or "min-sum"
	MinSumScale float64 `yaml:"min_sum_scale"`

	IncludeFrameTime bool `yaml:"include_frame_time"`

	SinkKind   SinkKind `yaml:"sink_kind"`
	OutputPath string   `yaml:"output_path"` // used by file and sqlite sinks

	LogLevel string `yaml:"log_level"`

	MonitorEnabled bool `yaml:"monitor_enabled"`
	MonitorPort    int  `yaml:"monitor_port"`
}

// Default returns a Config populated with the specification's defaults:
// one worker, sum-product decoding, early termination enabled.
func Default() Config {
	return Config{
		ChannelKind: "AWGN",
		Threads:     1,
		MaxFrames:   1,
		MinFEC:      1,
		IMax:        1,
		EarlyTerm:   true,
		Variant:     "sum-product",
		SinkKind:    SinkConsole,
		LogLevel:    "info",
	}
}

// Load reads a YAML config file, applies any environment overrides found
// in envPath (loaded via godotenv; a missing file is not an error), and
// validates the result. An empty path skips the YAML stage and returns
// Default with environment overrides applied.
func Load(yamlPath, envPath string) (Config, error) {
	cfg, err := LoadUnvalidated(yamlPath, envPath)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadUnvalidated runs the same YAML-then-environment merge as Load but
// skips the final Validate call, for callers (such as a CLI) that still
// have to merge in flag overrides before the record is complete.
func LoadUnvalidated(yamlPath, envPath string) (Config, error) {
	cfg := Default()

	if yamlPath != "" {
		data, err := os.ReadFile(yamlPath)
		if err != nil {
			return Config{}, ldpcerrors.NewIoError(yamlPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, ldpcerrors.NewConfigError("yaml", err.Error())
		}
	}

	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
			return Config{}, ldpcerrors.NewIoError(envPath, err)
		}
		applyEnvOverrides(&cfg)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v, ok := os.LookupEnv("LDPCSIM_SEED"); ok {
		if seed, err := parseInt64(v); err == nil {
			cfg.Seed = seed
		}
	}
	if v, ok := os.LookupEnv("LDPCSIM_THREADS"); ok {
		if threads, err := parseInt(v); err == nil {
			cfg.Threads = threads
		}
	}
	if v, ok := os.LookupEnv("LDPCSIM_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv("LDPCSIM_SINK_KIND"); ok {
		cfg.SinkKind = SinkKind(v)
	}
}

// Validate checks the record for the invariants the rest of the package
// relies on, returning a ConfigError naming the first offending field.
func (c Config) Validate() error {
	if c.AlistPath == "" {
		return ldpcerrors.NewConfigError("alist_path", "must be set")
	}
	if c.ChannelKind != "AWGN" && c.ChannelKind != "BSC" {
		return ldpcerrors.NewConfigError("channel_kind", "must be AWGN or BSC")
	}
	if c.Threads < 1 {
		return ldpcerrors.NewConfigError("threads", "must be at least 1")
	}
	if c.MaxFrames < 1 {
		return ldpcerrors.NewConfigError("max_frames", "must be at least 1")
	}
	if c.MinFEC < 1 {
		return ldpcerrors.NewConfigError("min_fec", "must be at least 1")
	}
	if c.SweepStep <= 0 {
		return ldpcerrors.NewConfigError("sweep_step", "must be positive")
	}
	if c.SweepStart >= c.SweepStop {
		return ldpcerrors.NewConfigError("sweep_start", "must be less than sweep_stop")
	}
	switch c.Variant {
	case "sum-product", "min-sum":
	default:
		return ldpcerrors.NewConfigError("variant", "must be sum-product or min-sum")
	}
	switch c.SinkKind {
	case SinkConsole, SinkFile, SinkMemory, SinkSQLite:
	default:
		return ldpcerrors.NewConfigError("sink_kind", "must be console, file, memory, or sqlite")
	}
	if (c.SinkKind == SinkFile || c.SinkKind == SinkSQLite) && c.OutputPath == "" {
		return ldpcerrors.NewConfigError("output_path", "must be set for file and sqlite sinks")
	}
	return nil
}

// ChannelKindValue resolves the configured channel model.
func (c Config) ChannelKindValue() (channel.Kind, error) {
	switch c.ChannelKind {
	case "AWGN":
		return channel.AWGN, nil
	case "BSC":
		return channel.BSC, nil
	default:
		return 0, ldpcerrors.NewConfigError("channel_kind", "must be AWGN or BSC")
	}
}

// DecoderVariant resolves the configured check-to-variable update rule.
func (c Config) DecoderVariant() (bpdecoder.Variant, error) {
	switch c.Variant {
	case "sum-product":
		return bpdecoder.SumProduct, nil
	case "min-sum":
		return bpdecoder.MinSum, nil
	default:
		return 0, ldpcerrors.NewConfigError("variant", "must be sum-product or min-sum")
	}
}
