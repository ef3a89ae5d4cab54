package matrix

// Matrix accumulates non-negative float64 counts indexed by [row, col]
type Matrix interface {
	Shape() (uint32, uint32)
	Get(uint32, uint32) float64
	Incr(uint32, uint32, float64)
}
