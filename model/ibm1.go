package model

import (
	"fmt"
	"math"

	log "github.com/golang/glog"
	"gonum.org/v1/gonum/floats"

	"github.com/bobonovski/goalign/corpus"
	"github.com/bobonovski/goalign/matrix"
	"github.com/bobonovski/goalign/table"
)

func init() {
	Register("ibm1", func(dat *corpus.Corpus, opts Options) Model {
		return NewIBM1(dat, opts)
	})
}

// sentence pair encoded with vocabulary ids, the source side starts
// with the Null token
type encodedPair struct {
	source []uint32
	target []uint32
}

// IBM1 estimates the translation table with expectation maximization
// over word alignments, each target word being generated by exactly one
// source position or by Null.
type IBM1 struct {
	opts Options
	src  *corpus.Vocabulary
	tgt  *corpus.Vocabulary

	pairs  []encodedPair
	t      *table.TranslationTable
	totals *matrix.DenseVector // per source alignment mass of the last M-step
	hooks  []func(iter int, t *table.TranslationTable)
}

// NewIBM1 builds the vocabularies of dat and the uniform initial table.
// A nonpositive worker count falls back to one worker.
func NewIBM1(dat *corpus.Corpus, opts Options) *IBM1 {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	src, tgt := dat.Vocabularies()
	this := &IBM1{
		opts:  opts,
		src:   src,
		tgt:   tgt,
		pairs: encodePairs(dat, src, tgt),
	}
	this.Init()

	log.Infof("source vocabulary size %d", src.Size())
	log.Infof("target vocabulary size %d", tgt.Size())
	return this
}

func encodePairs(dat *corpus.Corpus, src, tgt *corpus.Vocabulary) []encodedPair {
	null, _ := src.Id(corpus.Null)
	pairs := make([]encodedPair, 0, dat.Len())
	for _, p := range dat.Pairs {
		ep := encodedPair{
			source: make([]uint32, 0, len(p.Source)+1),
			target: make([]uint32, 0, len(p.Target)),
		}
		ep.source = append(ep.source, null)
		for _, w := range p.Source {
			ep.source = append(ep.source, mustId(src, w))
		}
		for _, w := range p.Target {
			ep.target = append(ep.target, mustId(tgt, w))
		}
		pairs = append(pairs, ep)
	}
	return pairs
}

// vocabularies are built from the same corpus, a miss is a bug
func mustId(v *corpus.Vocabulary, token string) uint32 {
	id, ok := v.Id(token)
	if !ok {
		panic(fmt.Sprintf("model: token %q missing from vocabulary", token))
	}
	return id
}

// Init resets the table to the uniform prior
func (this *IBM1) Init() {
	this.t = table.NewUniform(this.src, this.tgt)
	this.totals = nil
}

// OnIteration registers fn to be called with the table after every
// completed iteration. fn must not modify the table.
func (this *IBM1) OnIteration(fn func(iter int, t *table.TranslationTable)) {
	this.hooks = append(this.hooks, fn)
}

func (this *IBM1) Table() *table.TranslationTable {
	return this.t
}

// Train runs iter EM iterations starting from the uniform prior, so
// repeated calls with the same iter give the same table.
func (this *IBM1) Train(iter int) error {
	if iter <= 0 {
		return fmt.Errorf("%w: %d", ErrBadIterations, iter)
	}
	this.Init()
	if len(this.pairs) == 0 {
		log.Warning("empty corpus, nothing to train")
		return nil
	}

	for iterIdx := 1; iterIdx <= iter; iterIdx += 1 {
		counts, totals := this.expect()
		delta := this.maximize(counts, totals)
		log.Infof("iter %5d, likelihood %f, max change %e", iterIdx, this.Likelihood(), delta)

		for _, fn := range this.hooks {
			fn(iterIdx, this.t)
		}
		if this.opts.Threshold > 0 && delta < this.opts.Threshold {
			log.Infof("converged after %d iterations", iterIdx)
			break
		}
	}

	if zero := this.ZeroMass(); len(zero) > 0 {
		log.Warningf("%d source tokens never aligned: %v", len(zero), zero)
	}
	return nil
}

// maximize re-estimates t[f][e] = count(f, e) / total(e) in place and
// returns the largest absolute change of any cell. Source tokens with no
// mass end up with an all zero column.
func (this *IBM1) maximize(counts *matrix.SparseMatrix, totals *matrix.DenseVector) float64 {
	delta := 0.0
	counts.Each(func(f, e uint32, c float64) {
		delta = math.Max(delta, math.Abs(c/totals.Get(e, 0)-this.t.GetId(f, e)))
	})
	// cells that drop to zero
	covered := counts.Len()
	this.t.Each(func(f, e uint32, p float64) {
		if counts.Get(f, e) == 0 {
			covered += 1
			delta = math.Max(delta, p)
		}
	})
	if covered < this.src.Size()*this.tgt.Size() {
		delta = math.Max(delta, this.t.Default())
	}

	this.t.Reset(0)
	counts.Each(func(f, e uint32, c float64) {
		p := c / totals.Get(e, 0)
		// a lone count may exceed its total by an ulp
		if p > 1 {
			p = 1
		}
		this.t.SetId(f, e, p)
	})
	this.totals = totals
	return delta
}

// ZeroMass lists the source tokens that received no alignment mass in
// the last iteration, in vocabulary order.
func (this *IBM1) ZeroMass() []string {
	if this.totals == nil {
		return nil
	}
	var zero []string
	for e, total := range this.totals.Data() {
		if total == 0 {
			zero = append(zero, this.src.Token(uint32(e)))
		}
	}
	return zero
}

func (this *IBM1) Likelihood() float64 {
	return likelihood(this.pairs, this.t)
}

// compute sum over pairs and target words of log(sum_e t[f][e]), where e
// runs over the source positions including Null
func likelihood(pairs []encodedPair, t *table.TranslationTable) float64 {
	sum := 0.0
	var probs []float64
	for _, p := range pairs {
		for _, f := range p.target {
			probs = probs[:0]
			for _, e := range p.source {
				probs = append(probs, t.GetId(f, e))
			}
			sum += math.Log(floats.Sum(probs))
		}
	}
	return sum
}
