package model

import "errors"

var (
	ErrBadIterations = errors.New("model: iteration count must be positive")
	ErrBadWorkers    = errors.New("model: worker count must be positive")
	ErrBadThreshold  = errors.New("model: convergence threshold must not be negative")

	// the queried token was never observed
	ErrNotFound = errors.New("model: token not found")
	// the token was observed but carries no alignment mass, or the
	// table is empty
	ErrNoData = errors.New("model: no data")
)
