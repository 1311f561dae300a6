package bicgstab

import (
	"cmp"
	"fmt"
	"slices"

	"gonum.org/v1/gonum/mat"
)

// Triplet is a single (row, column, value) entry of a sparse matrix.
type Triplet struct {
	Row, Col int
	Value    float64
}

// CSR is a sparse matrix in compressed sparse row form. Build one with
// NewCSR.
type CSR struct {
	rows, cols int
	indptr     []int
	indices    []int
	data       []float64
}

var _ Operator = (*CSR)(nil)

// NewCSR builds an r×c matrix from triplets in any order. Duplicate entries
// are summed, as in the coordinate format matrix files use.
func NewCSR(r, c int, triplets []Triplet) (*CSR, error) {
	if r <= 0 || c <= 0 {
		return nil, fmt.Errorf("bicgstab: invalid csr shape %dx%d", r, c)
	}

	sorted := make([]Triplet, len(triplets))
	copy(sorted, triplets)
	for _, t := range sorted {
		if t.Row < 0 || t.Row >= r || t.Col < 0 || t.Col >= c {
			return nil, fmt.Errorf("bicgstab: entry (%d, %d) outside %dx%d matrix", t.Row, t.Col, r, c)
		}
	}
	slices.SortStableFunc(sorted, func(a, b Triplet) int {
		if d := cmp.Compare(a.Row, b.Row); d != 0 {
			return d
		}
		return cmp.Compare(a.Col, b.Col)
	})

	m := &CSR{
		rows:   r,
		cols:   c,
		indptr: make([]int, r+1),
	}
	for i, t := range sorted {
		if i > 0 && t.Row == sorted[i-1].Row && t.Col == sorted[i-1].Col {
			m.data[len(m.data)-1] += t.Value
			continue
		}
		m.indices = append(m.indices, t.Col)
		m.data = append(m.data, t.Value)
		m.indptr[t.Row+1]++
	}
	for i := 0; i < r; i++ {
		m.indptr[i+1] += m.indptr[i]
	}
	return m, nil
}

func (m *CSR) Dims() (r, c int) { return m.rows, m.cols }

// NNZ returns the number of stored entries.
func (m *CSR) NNZ() int { return len(m.data) }

// At returns the element at row i, column j.
func (m *CSR) At(i, j int) float64 {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic(mat.ErrIndexOutOfRange)
	}
	for p := m.indptr[i]; p < m.indptr[i+1]; p++ {
		if m.indices[p] == j {
			return m.data[p]
		}
	}
	return 0
}

func (m *CSR) MulVecTo(dst *mat.VecDense, x mat.Vector) {
	if x.Len() != m.cols {
		panic(mat.ErrShape)
	}
	if dst.IsEmpty() {
		dst.ReuseAsVec(m.rows)
	} else if dst.Len() != m.rows {
		panic(mat.ErrShape)
	}
	for i := 0; i < m.rows; i++ {
		var sum float64
		for p := m.indptr[i]; p < m.indptr[i+1]; p++ {
			sum += m.data[p] * x.AtVec(m.indices[p])
		}
		dst.SetVec(i, sum)
	}
}

// ToDense expands m into a gonum dense matrix.
func (m *CSR) ToDense() *mat.Dense {
	d := mat.NewDense(m.rows, m.cols, nil)
	for i := 0; i < m.rows; i++ {
		for p := m.indptr[i]; p < m.indptr[i+1]; p++ {
			d.Set(i, m.indices[p], m.data[p])
		}
	}
	return d
}
