package ldpccode

// Edge identifies one incidence of the Tanner graph: variable V, check C,
// and each endpoint's position within the other's adjacency list. The
// decoder's edge-message arrays are indexed by Edge.ID, the position of
// the edge in Code.Edges(), which always enumerates edges ordered by
// variable then by the variable's adjacency position.
type Edge struct {
	ID   int
	V    int
	C    int
	VPos int // position of C within ChecksOf(V)
	CPos int // position of V within VarsOf(C)
}

// Edges enumerates every edge of the Tanner graph, ordered by variable and
// then by the variable's adjacency position. It also returns, for each
// variable, its edge IDs in ChecksOf order, and for each check, its edge
// IDs in ascending variable order (the VarsOf order whenever that list is
// ascending), so the decoder can walk v->c and c->v messages by edge ID
// without recomputing positions.
func (c *Code) Edges() (edges []Edge, varEdges [][]int, checkEdges [][]int) {
	varEdges = make([][]int, c.n)
	checkEdges = make([][]int, c.m)

	// position of each variable within every check's adjacency list,
	// so CPos can be looked up in O(1) instead of rescanning VarsOf(ch).
	posInCheck := make([]map[int]int, c.m)
	for ch, vars := range c.checkToVars {
		posInCheck[ch] = make(map[int]int, len(vars))
		for pos, v := range vars {
			posInCheck[ch][v] = pos
		}
	}

	id := 0
	for v, checks := range c.varToChecks {
		for vpos, ch := range checks {
			cpos := posInCheck[ch][v]

			e := Edge{ID: id, V: v, C: ch, VPos: vpos, CPos: cpos}
			edges = append(edges, e)
			varEdges[v] = append(varEdges[v], id)
			checkEdges[ch] = append(checkEdges[ch], id)
			id++
		}
	}
	return edges, varEdges, checkEdges
}
