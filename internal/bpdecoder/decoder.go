// Package bpdecoder implements iterative sum-product / min-sum belief
// propagation on the Tanner graph of an LDPC code.
package bpdecoder

import (
	"math"

	"github.com/sarchlab/ldpcsim/internal/ldpccode"
	"github.com/sarchlab/ldpcsim/internal/ldpcerrors"
)

// Variant selects the check-to-variable update rule. SumProduct is the
// standard belief-propagation rule; MinSum is the documented build-time
// variant from the original implementation, modeled here as a runtime
// choice per Design Note 4.
type Variant int

const (
	SumProduct Variant = iota
	MinSum
)

// tanhClampEpsilon bounds tanh arguments away from +/-1 before atanh, per
// the specification's numerical policy.
const tanhClampEpsilon = 1 - 1.0/(1<<30)

// Config holds the decoder's build-time-switch-turned-runtime options.
type Config struct {
	IMax        int
	EarlyTerm   bool
	Variant     Variant
	MinSumScale float64 // only used when Variant == MinSum; 0 means 1.0
}

// Decoder runs iterative message passing on a fixed ParityCheckCode. One
// Decoder instance is owned by exactly one simulation worker and reused
// across frames; Decode zeros the edge messages at the start of every call,
// so no reset is needed between frames.
type Decoder struct {
	code   *ldpccode.Code
	config Config

	edges      []ldpccode.Edge
	varEdges   [][]int
	checkEdges [][]int

	channelLLR []float64
	outLLR     []float64
	vToC       []float64
	cToV       []float64
	syndrome   []int

	// scratch buffers reused across iterations to avoid per-iteration
	// allocation in the hot path.
	prefix []float64
	suffix []float64
	tanhs  []float64
}

// New builds a Decoder bound to code with the given configuration.
func New(code *ldpccode.Code, config Config) *Decoder {
	if config.IMax <= 0 {
		config.IMax = 1
	}
	if config.MinSumScale == 0 {
		config.MinSumScale = 1.0
	}

	edges, varEdges, checkEdges := code.Edges()
	numEdges := len(edges)

	maxDeg := 0
	for _, vars := range checkEdges {
		if len(vars) > maxDeg {
			maxDeg = len(vars)
		}
	}

	return &Decoder{
		code:       code,
		config:     config,
		edges:      edges,
		varEdges:   varEdges,
		checkEdges: checkEdges,
		channelLLR: make([]float64, code.N()),
		outLLR:     make([]float64, code.N()),
		vToC:       make([]float64, numEdges),
		cToV:       make([]float64, numEdges),
		syndrome:   make([]int, code.M()),
		prefix:     make([]float64, maxDeg+1),
		suffix:     make([]float64, maxDeg+1),
		tanhs:      make([]float64, maxDeg),
	}
}

// ChannelLLRs returns the input buffer the channel should write into
// before Decode is called.
func (d *Decoder) ChannelLLRs() []float64 { return d.channelLLR }

// OutputLLRs returns the a posteriori LLR buffer, valid after Decode
// returns.
func (d *Decoder) OutputLLRs() []float64 { return d.outLLR }

// Syndrome returns the syndrome buffer, valid after Decode returns.
func (d *Decoder) Syndrome() []int { return d.syndrome }

// IMax returns the configured iteration cap.
func (d *Decoder) IMax() int { return d.config.IMax }

// Decode runs up to IMax iterations of belief propagation against the
// current contents of ChannelLLRs, and returns the number of iterations
// actually executed (1..IMax). Edge messages are reset to zero at the
// start of every call, matching "initial edge messages are zero" in the
// specification.
func (d *Decoder) Decode() int {
	for i := range d.vToC {
		d.vToC[i] = 0
		d.cToV[i] = 0
	}

	iter := 0
	for iter = 1; iter <= d.config.IMax; iter++ {
		d.updateVarToCheck()
		d.updateCheckToVar()
		d.updateAPosteriori()
		d.updateSyndrome()

		if d.config.EarlyTerm && d.syndromeIsZero() {
			return iter
		}
	}
	return iter - 1
}

func (d *Decoder) updateVarToCheck() {
	for v := 0; v < d.code.N(); v++ {
		checks := d.code.ChecksOf(v)
		edgeIDs := d.varEdges[v]

		sum := d.channelLLR[v]
		for _, e := range edgeIDs {
			sum += d.cToV[e]
		}
		for i := range checks {
			e := edgeIDs[i]
			d.vToC[e] = sum - d.cToV[e]
		}
	}
}

func (d *Decoder) updateCheckToVar() {
	switch d.config.Variant {
	case MinSum:
		d.updateCheckToVarMinSum()
	default:
		d.updateCheckToVarSumProduct()
	}
}

func (d *Decoder) updateCheckToVarSumProduct() {
	for c := 0; c < d.code.M(); c++ {
		edgeIDs := d.checkEdges[c]
		k := len(edgeIDs)
		if k == 0 {
			continue
		}

		tanhs := d.tanhs[:k]
		for i, e := range edgeIDs {
			t := math.Tanh(d.vToC[e] / 2)
			if t > tanhClampEpsilon {
				t = tanhClampEpsilon
			} else if t < -tanhClampEpsilon {
				t = -tanhClampEpsilon
			}
			tanhs[i] = t
		}

		prefix := d.prefix[:k+1]
		suffix := d.suffix[:k+1]
		prefix[0] = 1
		for i := 0; i < k; i++ {
			prefix[i+1] = prefix[i] * tanhs[i]
		}
		suffix[k] = 1
		for i := k - 1; i >= 0; i-- {
			suffix[i] = suffix[i+1] * tanhs[i]
		}

		for i, e := range edgeIDs {
			product := prefix[i] * suffix[i+1]
			d.cToV[e] = 2 * math.Atanh(product)
		}
	}
}

func (d *Decoder) updateCheckToVarMinSum() {
	scale := d.config.MinSumScale
	for c := 0; c < d.code.M(); c++ {
		edgeIDs := d.checkEdges[c]
		k := len(edgeIDs)
		if k == 0 {
			continue
		}

		totalSign := 1.0
		min1, min2 := math.Inf(1), math.Inf(1)
		argmin := -1

		for i, e := range edgeIDs {
			v := d.vToC[e]
			mag := math.Abs(v)
			if v < 0 {
				totalSign = -totalSign
			}
			if mag < min1 {
				min2 = min1
				min1 = mag
				argmin = i
			} else if mag < min2 {
				min2 = mag
			}
		}

		for i, e := range edgeIDs {
			sign := d.vToC[e]
			excludedSign := totalSign
			if sign < 0 {
				excludedSign = -excludedSign
			}

			mag := min1
			if i == argmin {
				mag = min2
			}
			d.cToV[e] = excludedSign * scale * mag
		}
	}
}

func (d *Decoder) updateAPosteriori() {
	for v := 0; v < d.code.N(); v++ {
		sum := d.channelLLR[v]
		for _, e := range d.varEdges[v] {
			sum += d.cToV[e]
		}
		d.outLLR[v] = sum
	}
}

func (d *Decoder) updateSyndrome() {
	for c := 0; c < d.code.M(); c++ {
		parity := 0
		for _, v := range d.code.VarsOf(c) {
			if d.outLLR[v] <= 0 {
				parity ^= 1
			}
		}
		d.syndrome[c] = parity
	}
}

func (d *Decoder) syndromeIsZero() bool {
	for _, s := range d.syndrome {
		if s != 0 {
			return false
		}
	}
	return true
}

// ValidateConfig checks that a Config is usable before a decoder is
// constructed, returning a ConfigError otherwise. SimDriver calls this at
// startup so malformed configuration fails fast.
func ValidateConfig(c Config) error {
	if c.IMax < 1 {
		return ldpcerrors.NewConfigError("IMax", "must be >= 1")
	}
	return nil
}
