package model

import (
	"fmt"

	log "github.com/golang/glog"

	"github.com/bobonovski/goalign/corpus"
	"github.com/bobonovski/goalign/matrix"
	"github.com/bobonovski/goalign/table"
)

func init() {
	Register("cooccurrence", func(dat *corpus.Corpus, opts Options) Model {
		return NewCooccurrence(dat)
	})
}

// Cooccurrence estimates t[f][e] as the relative frequency of f among all
// target words sharing a sentence with e, in a single pass. Null shares
// every sentence, so its column is the target unigram distribution.
type Cooccurrence struct {
	src   *corpus.Vocabulary
	tgt   *corpus.Vocabulary
	pairs []encodedPair
	t     *table.TranslationTable
}

func NewCooccurrence(dat *corpus.Corpus) *Cooccurrence {
	src, tgt := dat.Vocabularies()
	return &Cooccurrence{
		src:   src,
		tgt:   tgt,
		pairs: encodePairs(dat, src, tgt),
		t:     table.NewUniform(src, tgt),
	}
}

func (this *Cooccurrence) Table() *table.TranslationTable {
	return this.t
}

// Train counts co-occurrences once; the estimate does not depend on iter
// beyond it being positive.
func (this *Cooccurrence) Train(iter int) error {
	if iter <= 0 {
		return fmt.Errorf("%w: %d", ErrBadIterations, iter)
	}
	if iter > 1 {
		log.Infof("co-occurrence estimate is a single pass, ignoring %d extra iterations", iter-1)
	}
	this.t = table.NewUniform(this.src, this.tgt)
	if len(this.pairs) == 0 {
		log.Warning("empty corpus, nothing to train")
		return nil
	}

	counts := matrix.NewSparseMatrix(uint32(this.tgt.Size()), uint32(this.src.Size()))
	totals := matrix.NewDenseVector(uint32(this.src.Size()))
	for _, p := range this.pairs {
		for _, e := range p.source {
			for _, f := range p.target {
				counts.Incr(f, e, 1)
				totals.Incr(e, 0, 1)
			}
		}
	}

	this.t.Reset(0)
	counts.Each(func(f, e uint32, c float64) {
		this.t.SetId(f, e, c/totals.Get(e, 0))
	})
	log.Infof("likelihood %f", this.Likelihood())
	return nil
}

func (this *Cooccurrence) Likelihood() float64 {
	return likelihood(this.pairs, this.t)
}
