// Package simdriver orchestrates the Monte-Carlo sweep: it fans out to a
// fixed pool of worker goroutines per sweep point, accumulates bit/frame
// error counters with the atomic/mutex discipline described in the
// specification's concurrency model, and reports through a ResultsSink.
package simdriver

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sarchlab/ldpcsim/internal/bpdecoder"
	"github.com/sarchlab/ldpcsim/internal/channel"
	"github.com/sarchlab/ldpcsim/internal/ldpccode"
	"github.com/sarchlab/ldpcsim/internal/ldpcerrors"
	"github.com/sarchlab/ldpcsim/internal/monitor"
	"github.com/sarchlab/ldpcsim/internal/resultssink"
	"github.com/sarchlab/ldpcsim/internal/simhook"
)

// pointState holds the per-sweep-point mutable counters. frames and
// iterationsSum are updated atomically on every decoded frame; bitErrors,
// frameErrors, and timeStart are touched only inside the critical section
// guarded by mu, entered only on an error-frame event.
type pointState struct {
	mu sync.Mutex

	frames            uint64 // atomic
	iterationsSum     uint64 // atomic
	frameErrorsAtomic uint64 // atomic mirror of frameErrors, for the lock-free hot-path gate

	frameErrors uint64 // guarded by mu
	bitErrors   uint64 // guarded by mu
	timeStart   time.Time // guarded by mu
}

// frameErrorsLoaded reads the atomic mirror of frameErrors without taking
// mu, so runWorker and shouldStop can poll it on every frame without
// contending on the mutex that guards the error-frame critical section.
func (p *pointState) frameErrorsLoaded() uint64 {
	return atomic.LoadUint64(&p.frameErrorsAtomic)
}

// Driver is constructed once from parsed configuration via Builder and
// discarded after Start returns.
type Driver struct {
	code     *ldpccode.Code
	channels []simChannel
	decoders []*bpdecoder.Decoder

	sweep   []float64
	threads int

	maxFrames uint64
	minFEC    uint64

	channelKind      channel.Kind
	seed             int64
	iMax             int
	includeFrameTime bool

	sinks   []resultssink.ResultsSink
	log     *logrus.Logger
	monitor *monitor.Monitor

	// Hookable lets external code observe sweep-point boundaries; see
	// AddHook/RemoveHook promoted from simhook.Hookable.
	simhook.Hookable
}

// N returns the code length this driver is simulating against.
func (d *Driver) N() int { return d.code.N() }

// Sweep returns the ordered list of channel parameters this driver will
// visit, computed by the arithmetic sweep (start, stop-exclusive, step).
func (d *Driver) Sweep() []float64 { return d.sweep }

// String renders the same human-readable configuration summary the
// original implementation's stream-insertion operator produced.
func (d *Driver) String() string {
	s := "threads: " + itoa(d.threads) + "\n"
	s += "params: "
	for _, p := range d.sweep {
		s += ftoa(p) + ", "
	}
	s += "\n"
	s += "max frames: " + utoa(d.maxFrames) + "\n"
	s += "min fec: " + utoa(d.minFEC) + "\n"
	s += "iterations: " + itoa(d.iMax) + "\n"
	s += "RNG: math/rand (rand.NewSource), per-worker seeded\n"
	return s
}

// Start runs the full sweep, visiting each parameter in order, and
// returns once every point has completed its stop condition or
// *stopFlag becomes true. stopFlag is polled at the bottom of every
// worker's inner loop; Start returns once all workers for the current
// point have exited.
func (d *Driver) Start(stopFlag *atomic.Bool) error {
	if d.log != nil {
		d.log.Info(d.String())
	}

	for _, sink := range d.sinks {
		sink.Banner(len(d.sweep))
	}

	for pointIdx, param := range d.sweep {
		if stopFlag.Load() {
			break
		}
		if err := d.runSweepPoint(pointIdx, param, stopFlag); err != nil {
			return err
		}
	}
	return nil
}

func (d *Driver) runSweepPoint(pointIdx int, param float64, stopFlag *atomic.Bool) error {
	d.InvokeHook(simhook.Before, simhook.Info{PointIndex: pointIdx, Param: param})

	for _, ch := range d.channels {
		if err := ch.SetParameter(param); err != nil {
			return err
		}
	}

	state := &pointState{timeStart: time.Now()}

	var bar *monitor.ProgressBar
	if d.monitor != nil {
		bar = d.monitor.CreateProgressBar("point "+itoa(pointIdx)+" ("+ftoa(param)+")", d.maxFrames)
	}

	var wg sync.WaitGroup
	wg.Add(d.threads)
	for w := 0; w < d.threads; w++ {
		go d.runWorker(pointIdx, param, w, state, stopFlag, bar, &wg)
	}
	wg.Wait()

	if bar != nil {
		d.monitor.CompleteProgressBar(bar)
	}

	snap := d.buildSnapshot(param, state)
	for _, sink := range d.sinks {
		sink.PointComplete(pointIdx, snap)
	}

	d.InvokeHook(simhook.After, simhook.Info{PointIndex: pointIdx, Param: param})
	return nil
}

func (d *Driver) runWorker(
	pointIdx int,
	param float64,
	workerID int,
	state *pointState,
	stopFlag *atomic.Bool,
	bar *monitor.ProgressBar,
	wg *sync.WaitGroup,
) {
	defer wg.Done()

	ch := d.channels[workerID]
	dec := d.decoders[workerID]

	for {
		if err := ch.Simulate(); err != nil {
			if d.log != nil {
				d.log.WithError(err).Error("channel simulate failed")
			}
			return
		}
		ch.ComputeLLRs(dec.ChannelLLRs())

		iters := dec.Decode()
		atomic.AddUint64(&state.iterationsSum, uint64(iters))

		if state.frameErrorsLoaded() < d.minFEC {
			frames := atomic.AddUint64(&state.frames, 1)
			if bar != nil {
				bar.SetFinished(frames)
			}

			bitErrors := countBitErrors(dec.OutputLLRs())
			if bitErrors > 0 {
				d.recordErrorFrame(pointIdx, param, state, frames, bitErrors)
			}
		}

		if d.shouldStop(state, stopFlag) {
			return
		}
	}
}

// recordErrorFrame is the critical section named in the design notes: it
// runs only on an error-frame event, folds the worker-local bit-error
// tally into the shared totals, recomputes derived metrics, and hands a
// snapshot to every results sink. It also shifts timeStart forward by its
// own duration so per-frame timing excludes sink I/O.
func (d *Driver) recordErrorFrame(pointIdx int, param float64, state *pointState, frames, bitErrors uint64) {
	state.mu.Lock()
	defer state.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(state.timeStart)
	frameTime := elapsed / time.Duration(frames)

	state.bitErrors += bitErrors
	state.frameErrors++
	atomic.StoreUint64(&state.frameErrorsAtomic, state.frameErrors)

	snap := resultssink.Snapshot{
		Param:            param,
		FEC:              state.frameErrors,
		MinFEC:           d.minFEC,
		Frames:           frames,
		MaxFrames:        d.maxFrames,
		BitErrors:        state.bitErrors,
		CodeLength:       d.code.N(),
		AvgIters:         float64(atomic.LoadUint64(&state.iterationsSum)) / float64(frames),
		FrameTimeSeconds: frameTime.Seconds(),
		IncludeFrameTime: d.includeFrameTime,
	}

	for _, sink := range d.sinks {
		sink.RecordErrorEvent(pointIdx, snap)
	}

	state.timeStart = state.timeStart.Add(time.Since(now))
}

func (d *Driver) shouldStop(state *pointState, stopFlag *atomic.Bool) bool {
	if state.frameErrorsLoaded() >= d.minFEC {
		return true
	}
	if atomic.LoadUint64(&state.frames) >= d.maxFrames {
		return true
	}
	return stopFlag.Load()
}

func (d *Driver) buildSnapshot(param float64, state *pointState) resultssink.Snapshot {
	state.mu.Lock()
	defer state.mu.Unlock()

	frames := atomic.LoadUint64(&state.frames)
	avgIters := 0.0
	frameTime := 0.0
	if frames > 0 {
		avgIters = float64(atomic.LoadUint64(&state.iterationsSum)) / float64(frames)
		frameTime = time.Since(state.timeStart).Seconds() / float64(frames)
	}

	return resultssink.Snapshot{
		Param:            param,
		FEC:              state.frameErrors,
		MinFEC:           d.minFEC,
		Frames:           frames,
		MaxFrames:        d.maxFrames,
		BitErrors:        state.bitErrors,
		CodeLength:       d.code.N(),
		AvgIters:         avgIters,
		FrameTimeSeconds: frameTime,
		IncludeFrameTime: d.includeFrameTime,
	}
}

func countBitErrors(outLLR []float64) uint64 {
	var n uint64
	for _, v := range outLLR {
		if v <= 0 {
			n++
		}
	}
	return n
}

// Sweep computes the arithmetic sequence of channel parameters visited by
// a sweep: start, start+step, ... while strictly less than stop. Mirrors
// the original implementation's accumulation loop so floating-point
// sweep boundaries behave identically to the source this was distilled
// from.
func Sweep(start, stop, step float64) ([]float64, error) {
	if step <= 0 {
		return nil, ldpcerrors.NewConfigError("step", "must be positive")
	}
	if start >= stop {
		return nil, ldpcerrors.NewConfigError("start", "must be less than stop")
	}

	var params []float64
	for val := start; val < stop; val += step {
		params = append(params, val)
	}
	return params, nil
}
