package matrix

// DenseVector is a fixed length float64 count vector, i.e. a matrix with
// a single column.
type DenseVector struct {
	data []float64
}

func NewDenseVector(n uint32) *DenseVector {
	return &DenseVector{data: make([]float64, n)}
}

// get the shape of the vector
func (v *DenseVector) Shape() (uint32, uint32) {
	return uint32(len(v.data)), uint32(1)
}

// get the [r, c]-th element, c must be 0
func (v *DenseVector) Get(r, c uint32) float64 {
	if r >= uint32(len(v.data)) || c != 0 {
		panic(ErrIndexOutOfRange)
	}
	return v.data[r]
}

// increment the [r, c]-th element by val, c must be 0
func (v *DenseVector) Incr(r, c uint32, val float64) {
	if r >= uint32(len(v.data)) || c != 0 {
		panic(ErrIndexOutOfRange)
	}
	if val < 0 {
		panic(ErrNegativeCount)
	}
	v.data[r] += val
}

// Merge adds o into v element-wise. The lengths must match.
func (v *DenseVector) Merge(o *DenseVector) {
	if len(v.data) != len(o.data) {
		panic(ErrIndexOutOfRange)
	}
	for i, val := range o.data {
		v.data[i] += val
	}
}

// Data returns the underlying slice
func (v *DenseVector) Data() []float64 {
	return v.data
}
