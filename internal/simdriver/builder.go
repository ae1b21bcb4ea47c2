package simdriver

import (
	"github.com/sirupsen/logrus"

	"github.com/sarchlab/ldpcsim/internal/bpdecoder"
	"github.com/sarchlab/ldpcsim/internal/channel"
	"github.com/sarchlab/ldpcsim/internal/ldpccode"
	"github.com/sarchlab/ldpcsim/internal/ldpcerrors"
	"github.com/sarchlab/ldpcsim/internal/monitor"
	"github.com/sarchlab/ldpcsim/internal/resultssink"
	"github.com/sarchlab/ldpcsim/internal/simhook"
)

// Builder assembles a Driver. Unlike the teacher's builder, Build can fail:
// a sweep or worker count outside the code's valid domain is a
// configuration error the caller should see before a single frame runs.
type Builder struct {
	code *ldpccode.Code

	channelKind channel.Kind
	threads     int
	seed        int64

	sweepStart float64
	sweepStop  float64
	sweepStep  float64

	maxFrames uint64
	minFEC    uint64

	iMax             int
	earlyTerm        bool
	variant          bpdecoder.Variant
	minSumScale      float64
	includeFrameTime bool

	sinks   []resultssink.ResultsSink
	hooks   []simhook.Hook
	log     *logrus.Logger
	monitor *monitor.Monitor
}

// NewBuilder returns a Builder with the defaults the specification names:
// sum-product variant, early termination enabled, one worker.
func NewBuilder() *Builder {
	return &Builder{
		threads:   1,
		earlyTerm: true,
		variant:   bpdecoder.SumProduct,
		iMax:      1,
	}
}

// WithCode sets the parity-check code the driver simulates against.
func (b *Builder) WithCode(code *ldpccode.Code) { b.code = code }

// WithChannelKind selects AWGN or BSC.
func (b *Builder) WithChannelKind(kind channel.Kind) { b.channelKind = kind }

// WithThreads sets the worker pool size for each sweep point.
func (b *Builder) WithThreads(threads int) { b.threads = threads }

// WithSeed sets the base PRNG seed; worker w draws from seed+w.
func (b *Builder) WithSeed(seed int64) { b.seed = seed }

// WithSweep sets the channel parameter sweep (start, stop exclusive, step).
func (b *Builder) WithSweep(start, stop, step float64) {
	b.sweepStart = start
	b.sweepStop = stop
	b.sweepStep = step
}

// WithMaxFrames sets the per-point frame budget.
func (b *Builder) WithMaxFrames(maxFrames uint64) { b.maxFrames = maxFrames }

// WithMinFEC sets the per-point frame-error target.
func (b *Builder) WithMinFEC(minFEC uint64) { b.minFEC = minFEC }

// WithIMax sets the decoder's iteration bound.
func (b *Builder) WithIMax(iMax int) { b.iMax = iMax }

// WithEarlyTerm toggles zero-syndrome early termination.
func (b *Builder) WithEarlyTerm(earlyTerm bool) { b.earlyTerm = earlyTerm }

// WithVariant selects the check-to-variable update rule.
func (b *Builder) WithVariant(variant bpdecoder.Variant) { b.variant = variant }

// WithMinSumScale sets the min-sum normalization factor.
func (b *Builder) WithMinSumScale(scale float64) { b.minSumScale = scale }

// WithIncludeFrameTime toggles the LOG_FRAME_TIME column.
func (b *Builder) WithIncludeFrameTime(include bool) { b.includeFrameTime = include }

// WithSink appends a results sink; Build may be called with none, in which
// case the driver still runs but reports nothing.
func (b *Builder) WithSink(sink resultssink.ResultsSink) { b.sinks = append(b.sinks, sink) }

// WithLogger sets the logger used for driver-level diagnostics.
func (b *Builder) WithLogger(log *logrus.Logger) { b.log = log }

// WithHook registers a hook fired at sweep-point boundaries.
func (b *Builder) WithHook(hook simhook.Hook) { b.hooks = append(b.hooks, hook) }

// WithMonitor attaches an HTTP monitor; the driver creates a progress bar
// on it for every sweep point and keeps its finished-frame count current.
func (b *Builder) WithMonitor(m *monitor.Monitor) { b.monitor = m }

// Build validates the accumulated configuration, constructs one Channel
// and one Decoder per worker, and returns the assembled Driver.
func (b *Builder) Build() (*Driver, error) {
	if b.code == nil {
		return nil, ldpcerrors.NewConfigError("code", "must be set")
	}
	if b.threads < 1 {
		return nil, ldpcerrors.NewConfigError("threads", "must be at least 1")
	}
	if b.maxFrames < 1 {
		return nil, ldpcerrors.NewConfigError("maxFrames", "must be at least 1")
	}
	if b.minFEC < 1 {
		return nil, ldpcerrors.NewConfigError("minFEC", "must be at least 1")
	}

	sweep, err := Sweep(b.sweepStart, b.sweepStop, b.sweepStep)
	if err != nil {
		return nil, err
	}

	decoderConfig := bpdecoder.Config{
		IMax:        b.iMax,
		EarlyTerm:   b.earlyTerm,
		Variant:     b.variant,
		MinSumScale: b.minSumScale,
	}
	if err := bpdecoder.ValidateConfig(decoderConfig); err != nil {
		return nil, err
	}

	channels := make([]simChannel, b.threads)
	decoders := make([]*bpdecoder.Decoder, b.threads)
	for w := 0; w < b.threads; w++ {
		ch, err := channel.New(b.channelKind, b.code.N(), b.code.Rate(), b.seed, w)
		if err != nil {
			return nil, err
		}
		channels[w] = ch
		decoders[w] = bpdecoder.New(b.code, decoderConfig)
	}

	driver := &Driver{
		code:             b.code,
		channels:         channels,
		decoders:         decoders,
		sweep:            sweep,
		threads:          b.threads,
		maxFrames:        b.maxFrames,
		minFEC:           b.minFEC,
		channelKind:      b.channelKind,
		seed:             b.seed,
		iMax:             b.iMax,
		includeFrameTime: b.includeFrameTime,
		sinks:            b.sinks,
		log:              b.log,
		monitor:          b.monitor,
	}
	for _, hook := range b.hooks {
		driver.AddHook(hook)
	}

	return driver, nil
}
