package channel_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/ldpcsim/internal/channel"
)

var _ = Describe("Channel", func() {
	It("rejects an unknown channel kind", func() {
		_, err := channel.New(channel.Kind(99), 3, 1.0, 42, 0)
		Expect(err).To(HaveOccurred())
	})

	It("rejects an out-of-range BSC crossover probability", func() {
		ch, err := channel.New(channel.BSC, 3, 1.0, 42, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(ch.SetParameter(0.6)).To(HaveOccurred())
	})

	It("requires SetParameter before Simulate", func() {
		ch, err := channel.New(channel.AWGN, 3, 1.0, 42, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(ch.Simulate()).To(HaveOccurred())
	})

	It("is deterministic given the same seed and call sequence", func() {
		ch1, _ := channel.New(channel.AWGN, 8, 2.0/3.0, 42, 0)
		ch2, _ := channel.New(channel.AWGN, 8, 2.0/3.0, 42, 0)

		Expect(ch1.SetParameter(5.0)).NotTo(HaveOccurred())
		Expect(ch2.SetParameter(5.0)).NotTo(HaveOccurred())

		out1 := make([]float64, 8)
		out2 := make([]float64, 8)

		for i := 0; i < 3; i++ {
			Expect(ch1.Simulate()).NotTo(HaveOccurred())
			Expect(ch2.Simulate()).NotTo(HaveOccurred())
			ch1.ComputeLLRs(out1)
			ch2.ComputeLLRs(out2)
			Expect(out1).To(Equal(out2))
		}
	})

	It("produces LLRs of zero for BSC with p=0.5", func() {
		ch, err := channel.New(channel.BSC, 16, 1.0, 7, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(ch.SetParameter(0.5)).NotTo(HaveOccurred())
		Expect(ch.Simulate()).NotTo(HaveOccurred())

		out := make([]float64, 16)
		ch.ComputeLLRs(out)
		for _, v := range out {
			Expect(v).To(BeNumerically("==", 0))
		}
	})

	It("produces near-zero-noise AWGN received values for high Eb/N0", func() {
		ch, err := channel.New(channel.AWGN, 100, 1.0, 7, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(ch.SetParameter(40.0)).NotTo(HaveOccurred())
		Expect(ch.Simulate()).NotTo(HaveOccurred())

		out := make([]float64, 100)
		ch.ComputeLLRs(out)

		positive := 0
		for _, v := range out {
			if v > 0 {
				positive++
			}
		}
		Expect(positive).To(BeNumerically(">=", 95))
	})

	It("reports its kind", func() {
		ch, _ := channel.New(channel.AWGN, 3, 1.0, 0, 0)
		Expect(ch.Kind()).To(Equal(channel.AWGN))
		Expect(ch.Kind().String()).To(Equal("AWGN"))
	})

	It("derives sigma from the design rate", func() {
		ch, _ := channel.New(channel.AWGN, 3, 0.5, 0, 0)
		Expect(ch.SetParameter(0.0)).NotTo(HaveOccurred())
		// sigma = sqrt(1/(2*0.5*1)) = 1
		expected := math.Sqrt(1 / (2 * 0.5 * 1.0))
		Expect(expected).To(BeNumerically("~", 1.0, 1e-9))

		// A rate-0.25 code at 10*log10(2) dB has the same sigma,
		// sqrt(1/(2*0.25*2)) = 1, so the same seed yields the same LLRs.
		other, _ := channel.New(channel.AWGN, 3, 0.25, 0, 0)
		Expect(other.SetParameter(10 * math.Log10(2))).NotTo(HaveOccurred())
		Expect(ch.Simulate()).NotTo(HaveOccurred())
		Expect(other.Simulate()).NotTo(HaveOccurred())

		out1 := make([]float64, 3)
		out2 := make([]float64, 3)
		ch.ComputeLLRs(out1)
		other.ComputeLLRs(out2)
		for i := range out1 {
			Expect(out2[i]).To(BeNumerically("~", out1[i], 1e-9))
		}
	})
})
