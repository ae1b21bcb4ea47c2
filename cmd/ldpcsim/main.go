// Command ldpcsim runs Monte-Carlo LDPC belief-propagation simulations
// over a sweep of channel parameters and reports frame/bit error rates.
package main

import (
	"os"
	"strconv"
	"sync/atomic"

	"github.com/pkg/browser"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sarchlab/ldpcsim/internal/config"
	"github.com/sarchlab/ldpcsim/internal/ldpccode"
	"github.com/sarchlab/ldpcsim/internal/monitor"
	"github.com/sarchlab/ldpcsim/internal/resultssink"
	"github.com/sarchlab/ldpcsim/internal/simdriver"
)

var (
	configPath string
	envPath    string

	alistPath   string
	channelKind string

	sweepStart float64
	sweepStop  float64
	sweepStep  float64

	threads   int
	seed      int64
	maxFrames uint64
	minFEC    uint64

	iMax             int
	earlyTerm        bool
	variant          string
	minSumScale      float64
	includeFrameTime bool

	sinkKind   string
	outputPath string
	logLevel   string

	monitorEnabled bool
	monitorPort    int
	openBrowser    bool
)

var rootCmd = &cobra.Command{
	Use:   "ldpcsim",
	Short: "Monte-Carlo LDPC belief-propagation simulator",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a sweep of the configured channel parameter and report error rates",
}

func init() {
	runCmd.RunE = runSweep

	runCmd.Flags().StringVar(&configPath, "config", "", "YAML configuration file")
	runCmd.Flags().StringVar(&envPath, "env", "", ".env file with LDPCSIM_* overrides")

	runCmd.Flags().StringVar(&alistPath, "alist", "", "path to the parity-check code in alist format")
	runCmd.Flags().StringVar(&channelKind, "channel", "", "channel model: AWGN or BSC")

	runCmd.Flags().Float64Var(&sweepStart, "sweep-start", 0, "sweep start (inclusive)")
	runCmd.Flags().Float64Var(&sweepStop, "sweep-stop", 0, "sweep stop (exclusive)")
	runCmd.Flags().Float64Var(&sweepStep, "sweep-step", 0, "sweep step")

	runCmd.Flags().IntVar(&threads, "threads", 0, "worker pool size per sweep point")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "base PRNG seed")
	runCmd.Flags().Uint64Var(&maxFrames, "max-frames", 0, "per-point frame budget")
	runCmd.Flags().Uint64Var(&minFEC, "min-fec", 0, "per-point frame-error target")

	runCmd.Flags().IntVar(&iMax, "i-max", 0, "decoder iteration bound")
	runCmd.Flags().BoolVar(&earlyTerm, "early-term", true, "stop decoding once the syndrome is zero")
	runCmd.Flags().StringVar(&variant, "variant", "", "check-to-variable update rule: sum-product or min-sum")
	runCmd.Flags().Float64Var(&minSumScale, "min-sum-scale", 0, "min-sum normalization factor")
	runCmd.Flags().BoolVar(&includeFrameTime, "include-frame-time", false, "record per-frame wall-clock time")

	runCmd.Flags().StringVar(&sinkKind, "sink", "", "results sink: console, file, memory, or sqlite")
	runCmd.Flags().StringVar(&outputPath, "output", "", "output path for file and sqlite sinks")
	runCmd.Flags().StringVar(&logLevel, "log-level", "", "log level: trace, debug, info, warn, error")

	runCmd.Flags().BoolVar(&monitorEnabled, "monitor", false, "start the HTTP monitor alongside the run")
	runCmd.Flags().IntVar(&monitorPort, "monitor-port", 0, "monitor listen port (0 for random)")
	runCmd.Flags().BoolVar(&openBrowser, "open-browser", false, "open the monitor dashboard URL once it starts")

	rootCmd.AddCommand(runCmd)
}

func loadConfig() (config.Config, error) {
	cfg, err := config.LoadUnvalidated(configPath, envPath)
	if err != nil {
		return config.Config{}, err
	}

	applyFlagOverrides(&cfg)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func applyFlagOverrides(cfg *config.Config) {
	flags := runCmd.Flags()

	if flags.Changed("alist") {
		cfg.AlistPath = alistPath
	}
	if flags.Changed("channel") {
		cfg.ChannelKind = channelKind
	}
	if flags.Changed("sweep-start") {
		cfg.SweepStart = sweepStart
	}
	if flags.Changed("sweep-stop") {
		cfg.SweepStop = sweepStop
	}
	if flags.Changed("sweep-step") {
		cfg.SweepStep = sweepStep
	}
	if flags.Changed("threads") {
		cfg.Threads = threads
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("max-frames") {
		cfg.MaxFrames = maxFrames
	}
	if flags.Changed("min-fec") {
		cfg.MinFEC = minFEC
	}
	if flags.Changed("i-max") {
		cfg.IMax = iMax
	}
	if flags.Changed("early-term") {
		cfg.EarlyTerm = earlyTerm
	}
	if flags.Changed("variant") {
		cfg.Variant = variant
	}
	if flags.Changed("min-sum-scale") {
		cfg.MinSumScale = minSumScale
	}
	if flags.Changed("include-frame-time") {
		cfg.IncludeFrameTime = includeFrameTime
	}
	if flags.Changed("sink") {
		cfg.SinkKind = config.SinkKind(sinkKind)
	}
	if flags.Changed("output") {
		cfg.OutputPath = outputPath
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("monitor") {
		cfg.MonitorEnabled = monitorEnabled
	}
	if flags.Changed("monitor-port") {
		cfg.MonitorPort = monitorPort
	}
}

func buildSink(cfg config.Config, log *logrus.Logger, sweepLen int) (resultssink.ResultsSink, error) {
	switch cfg.SinkKind {
	case config.SinkConsole:
		return resultssink.NewConsoleResultsSink(), nil
	case config.SinkFile:
		return resultssink.NewFileResultsSink(cfg.OutputPath, sweepLen, log), nil
	case config.SinkMemory:
		return resultssink.NewMemoryResultsSink(sweepLen), nil
	case config.SinkSQLite:
		return resultssink.NewSQLiteResultsSink(cfg.OutputPath)
	default:
		return resultssink.NewConsoleResultsSink(), nil
	}
}

func runSweep(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := logrus.New()
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	code, err := ldpccode.LoadAlist(cfg.AlistPath)
	if err != nil {
		return err
	}

	channelKindVal, err := cfg.ChannelKindValue()
	if err != nil {
		return err
	}
	variantVal, err := cfg.DecoderVariant()
	if err != nil {
		return err
	}

	builder := simdriver.NewBuilder()
	builder.WithCode(code)
	builder.WithChannelKind(channelKindVal)
	builder.WithThreads(cfg.Threads)
	builder.WithSeed(cfg.Seed)
	builder.WithSweep(cfg.SweepStart, cfg.SweepStop, cfg.SweepStep)
	builder.WithMaxFrames(cfg.MaxFrames)
	builder.WithMinFEC(cfg.MinFEC)
	builder.WithIMax(cfg.IMax)
	builder.WithEarlyTerm(cfg.EarlyTerm)
	builder.WithVariant(variantVal)
	builder.WithMinSumScale(cfg.MinSumScale)
	builder.WithIncludeFrameTime(cfg.IncludeFrameTime)
	builder.WithLogger(log)

	var stopFlag atomic.Bool
	var mon *monitor.Monitor
	if cfg.MonitorEnabled {
		mon = monitor.NewMonitor(log).WithPortNumber(cfg.MonitorPort)
		mon.RegisterStopFlag(&stopFlag)
		builder.WithMonitor(mon)
	}

	sweepPreview, err := simdriver.Sweep(cfg.SweepStart, cfg.SweepStop, cfg.SweepStep)
	if err != nil {
		return err
	}

	sink, err := buildSink(cfg, log, len(sweepPreview))
	if err != nil {
		return err
	}
	builder.WithSink(sink)
	defer func() {
		if err := sink.Close(); err != nil {
			log.WithError(err).Warn("failed to close results sink")
		}
	}()

	driver, err := builder.Build()
	if err != nil {
		return err
	}

	if mon != nil {
		port, err := mon.StartServer()
		if err != nil {
			return err
		}
		log.Infof("monitor listening on http://localhost:%d", port)

		if openBrowser {
			url := "http://localhost:" + strconv.Itoa(port) + "/api/progress"
			if err := browser.OpenURL(url); err != nil {
				log.WithError(err).Warn("failed to open browser")
			}
		}
	}

	return driver.Start(&stopFlag)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
