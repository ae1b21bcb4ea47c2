package ldpccode_test

import (
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/ldpcsim/internal/ldpccode"
)

var _ = Describe("Code", func() {
	It("rejects mismatched adjacency lengths", func() {
		_, err := ldpccode.New(3, 1, [][]int{{0}, {0}}, [][]int{{0, 1}})
		Expect(err).To(HaveOccurred())
	})

	It("rejects adjacency lists that are not consistent transposes", func() {
		varToChecks := [][]int{{0}, {0}, {}}
		checkToVars := [][]int{{0}} // missing variable 1
		_, err := ldpccode.New(3, 1, varToChecks, checkToVars)
		Expect(err).To(HaveOccurred())
	})

	It("builds a trivial repetition-like code and exposes accessors", func() {
		// n=3, m=1, H = [1 1 1]
		varToChecks := [][]int{{0}, {0}, {0}}
		checkToVars := [][]int{{0, 1, 2}}

		code, err := ldpccode.New(3, 1, varToChecks, checkToVars)
		Expect(err).NotTo(HaveOccurred())
		Expect(code.N()).To(Equal(3))
		Expect(code.M()).To(Equal(1))
		Expect(code.Rate()).To(BeNumerically("~", 2.0/3.0, 1e-9))
		Expect(code.ChecksOf(0)).To(Equal([]int{0}))
		Expect(code.VarsOf(0)).To(Equal([]int{0, 1, 2}))
		Expect(code.EdgeCount()).To(Equal(3))
	})

	It("enumerates edges consistently with both adjacency views", func() {
		varToChecks := [][]int{{0, 1}, {0}, {1}}
		checkToVars := [][]int{{0, 1}, {0, 2}}
		code, err := ldpccode.New(3, 2, varToChecks, checkToVars)
		Expect(err).NotTo(HaveOccurred())

		edges, varEdges, checkEdges := code.Edges()
		Expect(edges).To(HaveLen(4))

		for v := 0; v < code.N(); v++ {
			Expect(varEdges[v]).To(HaveLen(len(code.ChecksOf(v))))
			for i, edgeID := range varEdges[v] {
				Expect(edges[edgeID].V).To(Equal(v))
				Expect(edges[edgeID].C).To(Equal(code.ChecksOf(v)[i]))
			}
		}
		for c := 0; c < code.M(); c++ {
			Expect(checkEdges[c]).To(HaveLen(len(code.VarsOf(c))))
			for i, edgeID := range checkEdges[c] {
				Expect(edges[edgeID].C).To(Equal(c))
				Expect(edges[edgeID].V).To(Equal(code.VarsOf(c)[i]))
			}
		}
	})

	It("parses an alist file into a Code", func() {
		alist := "3 1\n1 3\n1 1 1\n3\n1\n1\n1\n1 2 3\n"

		f, err := os.CreateTemp("", "alist-*.txt")
		Expect(err).NotTo(HaveOccurred())
		defer os.Remove(f.Name())
		_, err = f.WriteString(alist)
		Expect(err).NotTo(HaveOccurred())
		Expect(f.Close()).To(Succeed())

		code, err := ldpccode.LoadAlist(f.Name())
		Expect(err).NotTo(HaveOccurred())
		Expect(code.N()).To(Equal(3))
		Expect(code.M()).To(Equal(1))
		Expect(code.VarsOf(0)).To(Equal([]int{0, 1, 2}))
	})
})
