package matrix

// Cell addresses one element of a SparseMatrix
type Cell struct {
	Row uint32
	Col uint32
}

// SparseMatrix stores only the nonzero elements of an r x c count matrix.
// Unset elements read as zero.
type SparseMatrix struct {
	nrow uint32
	ncol uint32
	data map[Cell]float64
}

// NewSparseMatrix creates an empty SparseMatrix with r rows and c columns.
// Unlike a dense matrix, zero dimensions are allowed, an empty matrix
// simply has no addressable element.
func NewSparseMatrix(r, c uint32) *SparseMatrix {
	return &SparseMatrix{
		nrow: r,
		ncol: c,
		data: make(map[Cell]float64),
	}
}

// get the shape of the matrix
func (m *SparseMatrix) Shape() (uint32, uint32) {
	return m.nrow, m.ncol
}

// get the [r, c]-th element of the matrix
func (m *SparseMatrix) Get(r, c uint32) float64 {
	if r >= m.nrow || c >= m.ncol {
		panic(ErrIndexOutOfRange)
	}
	return m.data[Cell{r, c}]
}

// increment the [r, c]-th element of the matrix by val
func (m *SparseMatrix) Incr(r, c uint32, val float64) {
	if r >= m.nrow || c >= m.ncol {
		panic(ErrIndexOutOfRange)
	}
	if val < 0 {
		panic(ErrNegativeCount)
	}
	if val == 0 {
		return
	}
	m.data[Cell{r, c}] += val
}

// number of nonzero elements
func (m *SparseMatrix) Len() int {
	return len(m.data)
}

// Each calls fn for every nonzero element, in no particular order
func (m *SparseMatrix) Each(fn func(r, c uint32, val float64)) {
	for cell, val := range m.data {
		fn(cell.Row, cell.Col, val)
	}
}

// Merge adds every element of o into m. The shapes must match.
func (m *SparseMatrix) Merge(o *SparseMatrix) {
	if m.nrow != o.nrow || m.ncol != o.ncol {
		panic(ErrIndexOutOfRange)
	}
	for cell, val := range o.data {
		m.data[cell] += val
	}
}
