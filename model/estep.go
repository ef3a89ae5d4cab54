package model

import (
	"sync"

	"github.com/cheggaaa/pb/v3"
	log "github.com/golang/glog"

	"github.com/bobonovski/goalign/matrix"
	"github.com/bobonovski/goalign/table"
)

// expect computes the expected alignment counts count(f, e) and the per
// source totals under the current table. The corpus is split into
// contiguous shards, one goroutine each; partial counts are merged in
// shard order so the result does not depend on scheduling.
func (this *IBM1) expect() (*matrix.SparseMatrix, *matrix.DenseVector) {
	n := len(this.pairs)
	workers := min(this.opts.Workers, n)
	shardSize := (n + workers - 1) / workers

	var bar *pb.ProgressBar
	if this.opts.Progress {
		bar = pb.StartNew(n)
	}

	counts := make([]*matrix.SparseMatrix, workers)
	totals := make([]*matrix.DenseVector, workers)
	wg := sync.WaitGroup{}
	for s := 0; s < workers; s += 1 {
		counts[s] = matrix.NewSparseMatrix(uint32(this.tgt.Size()), uint32(this.src.Size()))
		totals[s] = matrix.NewDenseVector(uint32(this.src.Size()))

		lo := min(s*shardSize, n)
		hi := min(lo+shardSize, n)
		wg.Add(1)
		go func(s, lo, hi int) {
			defer wg.Done()
			for _, p := range this.pairs[lo:hi] {
				accumulate(p, this.t, counts[s], totals[s])
				if bar != nil {
					bar.Increment()
				}
			}
			log.V(1).Infof("shard %d: pairs [%d, %d), %d cells", s, lo, hi, counts[s].Len())
		}(s, lo, hi)
	}
	wg.Wait()
	if bar != nil {
		bar.Finish()
	}

	for s := 1; s < workers; s += 1 {
		counts[0].Merge(counts[s])
		totals[0].Merge(totals[s])
	}
	return counts[0], totals[0]
}

// accumulate adds the fractional counts t[f][e] / Z of one sentence pair,
// Z being the sum of t[f][e] over its source positions. Repeated source
// tokens are separate positions and are counted once per occurrence.
func accumulate(p encodedPair, t *table.TranslationTable,
	counts *matrix.SparseMatrix, totals *matrix.DenseVector) {
	for _, f := range p.target {
		z := 0.0
		for _, e := range p.source {
			z += t.GetId(f, e)
		}
		if z == 0 {
			log.V(1).Infof("target %d has no mass in its sentence", f)
			continue
		}
		for _, e := range p.source {
			delta := t.GetId(f, e) / z
			counts.Incr(f, e, delta)
			totals.Incr(e, 0, delta)
		}
	}
}
