package ldpccode

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sarchlab/ldpcsim/internal/ldpcerrors"
)

// LoadAlist reads a Code from an alist-format parity-check file: the
// collaborator named in the external-interfaces section of the
// specification. The alist grammar is:
//
//	n m
//	maxColWeight maxRowWeight
//	<n column weights>
//	<m row weights>
//	<n columns: 1-based variable-node's incident check indices, zero-padded>
//	<m rows: 1-based check-node's incident variable indices, zero-padded>
//
// Indices in the file are 1-based; LoadAlist converts them to the 0-based
// indices used throughout this package.
func LoadAlist(path string) (*Code, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ldpcerrors.NewIoError(path, err)
	}
	defer f.Close()

	code, err := parseAlist(f)
	if err != nil {
		return nil, ldpcerrors.NewIoError(path, err)
	}
	return code, nil
}

func parseAlist(r io.Reader) (*Code, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	readInts := func() ([]int, error) {
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line == "" {
				continue
			}
			fields := strings.Fields(line)
			vals := make([]int, 0, len(fields))
			for _, f := range fields {
				x, err := strconv.Atoi(f)
				if err != nil {
					return nil, err
				}
				vals = append(vals, x)
			}
			return vals, nil
		}
		if err := sc.Err(); err != nil {
			return nil, err
		}
		return nil, io.ErrUnexpectedEOF
	}

	dims, err := readInts()
	if err != nil {
		return nil, err
	}
	if len(dims) < 2 {
		return nil, strconvErrorf("alist header must give n and m")
	}
	n, m := dims[0], dims[1]

	if _, err := readInts(); err != nil { // max column/row weight, unused
		return nil, err
	}
	if _, err := readInts(); err != nil { // per-column weights, unused
		return nil, err
	}
	if _, err := readInts(); err != nil { // per-row weights, unused
		return nil, err
	}

	varToChecks := make([][]int, n)
	for v := 0; v < n; v++ {
		ints, err := readInts()
		if err != nil {
			return nil, err
		}
		checks := make([]int, 0, len(ints))
		for _, x := range ints {
			if x == 0 {
				continue // zero-padding
			}
			checks = append(checks, x-1)
		}
		varToChecks[v] = checks
	}

	checkToVars := make([][]int, m)
	for c := 0; c < m; c++ {
		ints, err := readInts()
		if err != nil {
			return nil, err
		}
		vars := make([]int, 0, len(ints))
		for _, x := range ints {
			if x == 0 {
				continue
			}
			vars = append(vars, x-1)
		}
		checkToVars[c] = vars
	}

	return New(n, m, varToChecks, checkToVars)
}

type parseError string

func (e parseError) Error() string { return string(e) }

func strconvErrorf(msg string) error { return parseError(msg) }
