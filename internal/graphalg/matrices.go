package graphalg

import (
	"gonum.org/v1/gonum/mat"
)

// adjacency returns the dense adjacency matrix A with A[i][j] = 1 when
// an arc i -> j exists. For citation graphs the arc direction is
// citer -> cited.
func (gr *Graph) adjacency() *mat.Dense {
	n := gr.Order()
	a := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for _, j := range gr.outNeighbors(i) {
			a.Set(i, j, 1)
		}
	}
	return a
}

// CocitationMatrix computes the cocitation counts of the graph: entry
// (i, j) is the number of vertices with arcs to both i and j, i.e.
// (A^T A)(i, j). Diagonal entries are in-degrees and carry no meaning
// for cocitation; callers skip self-pairs.
func CocitationMatrix(gr *Graph) [][]int {
	a := gr.adjacency()
	var m mat.Dense
	m.Mul(a.T(), a)
	return toIntMatrix(&m, gr.Order())
}

// CouplingMatrix computes the bibliographic coupling counts of the
// graph: entry (i, j) is the number of vertices both i and j have arcs
// to, i.e. (A A^T)(i, j). Diagonal entries are out-degrees.
func CouplingMatrix(gr *Graph) [][]int {
	a := gr.adjacency()
	var m mat.Dense
	m.Mul(a, a.T())
	return toIntMatrix(&m, gr.Order())
}

// toIntMatrix rounds a dense product of 0/1 matrices back to ints.
func toIntMatrix(m *mat.Dense, n int) [][]int {
	out := make([][]int, n)
	for i := 0; i < n; i++ {
		out[i] = make([]int, n)
		for j := 0; j < n; j++ {
			out[i][j] = int(m.At(i, j) + 0.5)
		}
	}
	return out
}
