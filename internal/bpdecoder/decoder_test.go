package bpdecoder_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/ldpcsim/internal/bpdecoder"
	"github.com/sarchlab/ldpcsim/internal/ldpccode"
)

func trivialCode() *ldpccode.Code {
	code, err := ldpccode.New(3, 1, [][]int{{0}, {0}, {0}}, [][]int{{0, 1, 2}})
	Expect(err).NotTo(HaveOccurred())
	return code
}

func syndromeOf(code *ldpccode.Code, outLLR []float64) []int {
	synd := make([]int, code.M())
	for c := 0; c < code.M(); c++ {
		parity := 0
		for _, v := range code.VarsOf(c) {
			if outLLR[v] <= 0 {
				parity ^= 1
			}
		}
		synd[c] = parity
	}
	return synd
}

var _ = Describe("Decoder", func() {
	It("produces zero bit errors on a noise-free channel in one iteration", func() {
		code := trivialCode()
		dec := bpdecoder.New(code, bpdecoder.Config{IMax: 10, EarlyTerm: true})

		llrs := dec.ChannelLLRs()
		for i := range llrs {
			llrs[i] = 10.0 // strongly favors bit 0
		}

		iters := dec.Decode()
		Expect(iters).To(Equal(1))

		for _, v := range dec.OutputLLRs() {
			Expect(v).To(BeNumerically(">", 0))
		}
		for _, s := range dec.Syndrome() {
			Expect(s).To(Equal(0))
		}
	})

	It("keeps the iteration count within [1, IMax]", func() {
		code := trivialCode()
		dec := bpdecoder.New(code, bpdecoder.Config{IMax: 5, EarlyTerm: false})

		llrs := dec.ChannelLLRs()
		for i := range llrs {
			llrs[i] = 0 // all zero LLR: cannot terminate early, uses min-sum safe values
		}

		iters := dec.Decode()
		Expect(iters).To(BeNumerically(">=", 1))
		Expect(iters).To(BeNumerically("<=", 5))
	})

	It("always satisfies syndrome consistency with the output LLRs", func() {
		varToChecks := [][]int{{0, 1}, {0}, {1}, {0, 1}}
		checkToVars := [][]int{{0, 1, 3}, {0, 2, 3}}
		code, err := ldpccode.New(4, 2, varToChecks, checkToVars)
		Expect(err).NotTo(HaveOccurred())

		dec := bpdecoder.New(code, bpdecoder.Config{IMax: 8, EarlyTerm: true})
		llrs := dec.ChannelLLRs()
		llrs[0], llrs[1], llrs[2], llrs[3] = 2.5, -1.0, 0.3, -0.2

		dec.Decode()

		Expect(dec.Syndrome()).To(Equal(syndromeOf(code, dec.OutputLLRs())))
	})

	It("returns a zero syndrome whenever it terminates early", func() {
		code := trivialCode()
		dec := bpdecoder.New(code, bpdecoder.Config{IMax: 20, EarlyTerm: true})

		llrs := dec.ChannelLLRs()
		llrs[0], llrs[1], llrs[2] = 3.0, 2.0, 1.5

		iters := dec.Decode()
		if iters < dec.IMax() {
			for _, s := range dec.Syndrome() {
				Expect(s).To(Equal(0))
			}
		}
	})

	It("leaves a degree-zero variable's output LLR equal to its channel LLR", func() {
		varToChecks := [][]int{{0}, {}}
		checkToVars := [][]int{{0}}
		code, err := ldpccode.New(2, 1, varToChecks, checkToVars)
		Expect(err).NotTo(HaveOccurred())

		dec := bpdecoder.New(code, bpdecoder.Config{IMax: 3, EarlyTerm: false})
		llrs := dec.ChannelLLRs()
		llrs[0], llrs[1] = 1.0, -4.2

		dec.Decode()
		Expect(dec.OutputLLRs()[1]).To(BeNumerically("==", -4.2))
	})

	It("produces the same syndrome-consistent result with the MinSum variant", func() {
		varToChecks := [][]int{{0, 1}, {0}, {1}, {0, 1}}
		checkToVars := [][]int{{0, 1, 3}, {0, 2, 3}}
		code, err := ldpccode.New(4, 2, varToChecks, checkToVars)
		Expect(err).NotTo(HaveOccurred())

		dec := bpdecoder.New(code, bpdecoder.Config{IMax: 8, EarlyTerm: true, Variant: bpdecoder.MinSum})
		llrs := dec.ChannelLLRs()
		llrs[0], llrs[1], llrs[2], llrs[3] = 2.5, -1.0, 0.3, -0.2

		dec.Decode()

		Expect(dec.Syndrome()).To(Equal(syndromeOf(code, dec.OutputLLRs())))
	})

	It("rejects a non-positive iteration cap at validation time", func() {
		err := bpdecoder.ValidateConfig(bpdecoder.Config{IMax: 0})
		Expect(err).To(HaveOccurred())
	})
})
