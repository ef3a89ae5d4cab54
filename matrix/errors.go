package matrix

import "errors"

var (
	ErrIndexOutOfRange = errors.New("matrix: index out of range")
	ErrNegativeCount   = errors.New("matrix: negative count not allowed")
)
