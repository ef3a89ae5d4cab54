package model

import "fmt"

type Options struct {
	// number of EM iterations run by the command line driver
	Iterations int
	// stop early once no probability moves by more than Threshold
	// in one iteration, 0 disables the check
	Threshold float64
	// number of goroutines sharing the E-step
	Workers int
	// show a progress bar for each E-step
	Progress bool
}

func DefaultOptions() Options {
	return Options{
		Iterations: 10,
		Workers:    1,
	}
}

func (o Options) Validate() error {
	if o.Iterations <= 0 {
		return fmt.Errorf("%w: %d", ErrBadIterations, o.Iterations)
	}
	if o.Workers <= 0 {
		return fmt.Errorf("%w: %d", ErrBadWorkers, o.Workers)
	}
	if o.Threshold < 0 {
		return fmt.Errorf("%w: %v", ErrBadThreshold, o.Threshold)
	}
	return nil
}
