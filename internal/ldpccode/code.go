// Package ldpccode represents the sparse parity-check matrix of an LDPC
// code as two adjacency lists, immutable for the lifetime of a simulation.
package ldpccode

import "github.com/sarchlab/ldpcsim/internal/ldpcerrors"

// Code is the immutable sparse representation of an LDPC parity-check
// matrix H. N is the code length (variable nodes), M the number of parity
// checks. ChecksOf(v) lists the checks incident to variable v and VarsOf(c)
// the variables incident to check c, each in the order given to New (New
// does not sort them). The two lists are consistent transposes of each
// other: edge (v, c) appears exactly once on each side.
type Code struct {
	n            int
	m            int
	varToChecks  [][]int
	checkToVars  [][]int
}

// New builds a Code from explicit adjacency lists. It validates the
// transpose-consistency and index-range invariants described in the data
// model and returns a ConfigError if either is violated.
func New(n, m int, varToChecks, checkToVars [][]int) (*Code, error) {
	if n <= 0 {
		return nil, ldpcerrors.NewConfigError("n", "code length must be positive")
	}
	if m <= 0 {
		return nil, ldpcerrors.NewConfigError("m", "parity check count must be positive")
	}
	if len(varToChecks) != n {
		return nil, ldpcerrors.NewConfigError("varToChecks", "length must equal n")
	}
	if len(checkToVars) != m {
		return nil, ldpcerrors.NewConfigError("checkToVars", "length must equal m")
	}

	edgeCount := 0
	for _, checks := range varToChecks {
		for _, c := range checks {
			if c < 0 || c >= m {
				return nil, ldpcerrors.NewConfigError("varToChecks", "check index out of range")
			}
			edgeCount++
		}
	}

	seen := make(map[[2]int]bool, edgeCount)
	for v, checks := range varToChecks {
		for _, c := range checks {
			seen[[2]int{v, c}] = true
		}
	}

	reverseCount := 0
	for c, vars := range checkToVars {
		for _, v := range vars {
			if v < 0 || v >= n {
				return nil, ldpcerrors.NewConfigError("checkToVars", "variable index out of range")
			}
			if !seen[[2]int{v, c}] {
				return nil, ldpcerrors.NewConfigError("checkToVars", "adjacency lists are not consistent transposes")
			}
			reverseCount++
		}
	}
	if reverseCount != edgeCount {
		return nil, ldpcerrors.NewConfigError("checkToVars", "adjacency lists are not consistent transposes")
	}

	return &Code{
		n:           n,
		m:           m,
		varToChecks: varToChecks,
		checkToVars: checkToVars,
	}, nil
}

// N returns the code length (number of variable nodes / coded bits).
func (c *Code) N() int { return c.n }

// M returns the number of parity checks.
func (c *Code) M() int { return c.m }

// Rate returns the design rate (n-m)/n, assuming H is full rank.
func (c *Code) Rate() float64 {
	return float64(c.n-c.m) / float64(c.n)
}

// ChecksOf returns the ordered list of checks incident to variable v.
// The returned slice must not be mutated by the caller.
func (c *Code) ChecksOf(v int) []int { return c.varToChecks[v] }

// VarsOf returns the ordered list of variables incident to check ch.
// The returned slice must not be mutated by the caller.
func (c *Code) VarsOf(ch int) []int { return c.checkToVars[ch] }

// EdgeCount returns the total number of edges in the Tanner graph.
func (c *Code) EdgeCount() int {
	total := 0
	for _, checks := range c.varToChecks {
		total += len(checks)
	}
	return total
}
