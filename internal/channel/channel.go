// Package channel models the per-worker stochastic channel: it draws a
// received vector for the all-zero codeword and converts it into per-bit
// LLRs for the belief-propagation decoder.
package channel

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/sarchlab/ldpcsim/internal/ldpcerrors"
)

// Kind identifies the channel model.
type Kind int

const (
	// AWGN is the additive-white-Gaussian-noise binary channel with BPSK
	// mapping; SetParameter takes an Eb/N0 in dB.
	AWGN Kind = iota
	// BSC is the binary symmetric channel; SetParameter takes a crossover
	// probability in [0, 0.5].
	BSC
)

// Channel is a per-worker, mutable stochastic channel. It owns a
// deterministically seeded PRNG (derived from a base seed plus the
// worker's index) and the current channel parameter. Channel is not safe
// for concurrent use: each simulation worker owns exactly one instance.
type Channel struct {
	kind     Kind
	rng      *rand.Rand
	norm     distuv.Normal
	codeRate float64

	n int

	sigma  float64 // AWGN noise std dev, derived from the Eb/N0 parameter
	cross  float64 // BSC crossover probability
	llrMag float64 // BSC |LLR| magnitude, derived from cross

	parameterized bool

	received []float64 // AWGN: real-valued received samples
	bits     []int      // BSC: received hard bits
}

// New creates a Channel of the given kind for a code of length n, seeded
// deterministically from baseSeed+workerID (the convention documented in
// §5 of the specification: per-worker sequences are reproducible, but
// cross-worker interleaving is not). Returns a ConfigError for an unknown
// kind.
func New(kind Kind, n int, codeRate float64, baseSeed int64, workerID int) (*Channel, error) {
	if kind != AWGN && kind != BSC {
		return nil, ldpcerrors.NewConfigError("kind", "unknown channel kind")
	}

	seed := baseSeed + int64(workerID)
	src := rand.NewSource(seed)

	ch := &Channel{
		kind:     kind,
		rng:      rand.New(src),
		codeRate: codeRate,
		n:        n,
		received: make([]float64, n),
		bits:     make([]int, n),
	}
	ch.norm = distuv.Normal{Mu: 0, Sigma: 1, Src: ch.rng}
	return ch, nil
}

// SetParameter replaces the current channel parameter. For AWGN, x is an
// Eb/N0 in dB and sigma is derived as sqrt(1/(2*R*10^(x/10))) with R the
// code's design rate. For BSC, x is the crossover probability and must lie
// in [0, 0.5]; values outside that range fail with a DomainError.
func (c *Channel) SetParameter(x float64) error {
	switch c.kind {
	case AWGN:
		snrLinear := math.Pow(10, x/10)
		c.sigma = math.Sqrt(1 / (2 * c.codeRate * snrLinear))
		c.norm.Sigma = c.sigma
	case BSC:
		if x < 0 || x > 0.5 {
			return ldpcerrors.NewDomainError("crossoverProbability", x)
		}
		c.cross = x
		if c.cross > 0 {
			c.llrMag = math.Log((1 - c.cross) / c.cross)
		} else {
			c.llrMag = math.Inf(1)
		}
	}
	c.parameterized = true
	return nil
}

// Simulate draws a fresh received vector for the all-zero BPSK/binary
// codeword using the owned PRNG. Must be called after SetParameter.
func (c *Channel) Simulate() error {
	if !c.parameterized {
		return ldpcerrors.NewConfigError("channel", "SetParameter must be called before Simulate")
	}

	switch c.kind {
	case AWGN:
		for i := 0; i < c.n; i++ {
			c.received[i] = 1 + c.norm.Rand()
		}
	case BSC:
		for i := 0; i < c.n; i++ {
			if c.rng.Float64() < c.cross {
				c.bits[i] = 1
			} else {
				c.bits[i] = 0
			}
		}
	}
	return nil
}

// ComputeLLRs writes the per-bit log-likelihood ratios for the vector
// produced by the last Simulate call into out, which must have length n.
//
// AWGN: llr(v) = 2*received(v)/sigma^2.
// BSC:  llr(v) = log((1-p)/p) * (1 - 2*received(v)).
func (c *Channel) ComputeLLRs(out []float64) {
	switch c.kind {
	case AWGN:
		scale := 2 / (c.sigma * c.sigma)
		for i := 0; i < c.n; i++ {
			out[i] = scale * c.received[i]
		}
	case BSC:
		for i := 0; i < c.n; i++ {
			out[i] = c.llrMag * float64(1-2*c.bits[i])
		}
	}
}

// N returns the length of the vectors this channel produces.
func (c *Channel) N() int { return c.n }

// Kind returns the channel model in use.
func (c *Channel) Kind() Kind { return c.kind }

func (k Kind) String() string {
	switch k {
	case AWGN:
		return "AWGN"
	case BSC:
		return "BSC"
	default:
		return "unknown"
	}
}
