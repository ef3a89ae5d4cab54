// Package table holds the sparse translation probability table t[f][e],
// the current estimate of P(target | source).
package table

import (
	"errors"

	"gonum.org/v1/gonum/floats"

	"github.com/bobonovski/goalign/corpus"
)

var ErrProbabilityOutOfRange = errors.New("table: probability outside [0, 1]")

// Cell addresses t[f][e] by target and source vocabulary ids
type Cell struct {
	Target uint32
	Source uint32
}

// TranslationTable maps (target, source) to a probability. Only explicitly
// written cells are stored; every other cell reads as Default(). A freshly
// initialized table has no cells and a default of 1/|source vocabulary|,
// i.e. the uniform prior.
type TranslationTable struct {
	source *corpus.Vocabulary
	target *corpus.Vocabulary
	def    float64
	cells  map[Cell]float64
}

// NewUniform creates the uniform initial table over the two vocabularies.
// An empty source vocabulary gives an empty table with default 0.
func NewUniform(source, target *corpus.Vocabulary) *TranslationTable {
	t := &TranslationTable{source: source, target: target}
	prior := 0.0
	if source.Size() > 0 {
		prior = 1 / float64(source.Size())
	}
	t.Reset(prior)
	return t
}

func (t *TranslationTable) Source() *corpus.Vocabulary {
	return t.source
}

func (t *TranslationTable) Target() *corpus.Vocabulary {
	return t.target
}

// Default returns the value read for cells that were never written
func (t *TranslationTable) Default() float64 {
	return t.def
}

// Reset drops every stored cell and sets the value unwritten cells read as
func (t *TranslationTable) Reset(def float64) {
	checkProbability(def)
	t.def = def
	t.cells = make(map[Cell]float64)
}

// Len returns the number of explicitly stored cells
func (t *TranslationTable) Len() int {
	return len(t.cells)
}

// Get returns t[f][e]. Unknown tokens and unwritten cells read as Default().
func (t *TranslationTable) Get(f, e string) float64 {
	fid, ok := t.target.Id(f)
	if !ok {
		return t.def
	}
	eid, ok := t.source.Id(e)
	if !ok {
		return t.def
	}
	return t.GetId(fid, eid)
}

// GetId returns t[f][e] by vocabulary ids
func (t *TranslationTable) GetId(f, e uint32) float64 {
	if p, ok := t.cells[Cell{f, e}]; ok {
		return p
	}
	return t.def
}

// Set overwrites t[f][e]. Both tokens must be in the vocabularies and p must
// lie in [0, 1]; anything else is a programming error and panics.
func (t *TranslationTable) Set(f, e string, p float64) {
	fid, ok := t.target.Id(f)
	if !ok {
		panic("table: unknown target token " + f)
	}
	eid, ok := t.source.Id(e)
	if !ok {
		panic("table: unknown source token " + e)
	}
	t.SetId(fid, eid, p)
}

// SetId overwrites t[f][e] by vocabulary ids
func (t *TranslationTable) SetId(f, e uint32, p float64) {
	if int(f) >= t.target.Size() || int(e) >= t.source.Size() {
		panic("table: cell out of vocabulary range")
	}
	checkProbability(p)
	t.cells[Cell{f, e}] = p
}

// Each calls fn for every stored cell, in no particular order
func (t *TranslationTable) Each(fn func(f, e uint32, p float64)) {
	for c, p := range t.cells {
		fn(c.Target, c.Source, p)
	}
}

// Row returns t[f][e] for every source token e in vocabulary order
func (t *TranslationTable) Row(f uint32) []float64 {
	row := make([]float64, t.source.Size())
	for e := range row {
		row[e] = t.GetId(f, uint32(e))
	}
	return row
}

// Column returns t[f][e] for every target token f in vocabulary order
func (t *TranslationTable) Column(e uint32) []float64 {
	col := make([]float64, t.target.Size())
	for f := range col {
		col[f] = t.GetId(uint32(f), e)
	}
	return col
}

// ColumnSum returns the total probability mass of source token e
func (t *TranslationTable) ColumnSum(e uint32) float64 {
	return floats.Sum(t.Column(e))
}

// Clone returns a deep copy sharing the read-only vocabularies
func (t *TranslationTable) Clone() *TranslationTable {
	o := &TranslationTable{
		source: t.source,
		target: t.target,
		def:    t.def,
		cells:  make(map[Cell]float64, len(t.cells)),
	}
	for c, p := range t.cells {
		o.cells[c] = p
	}
	return o
}

// Equal reports whether both tables read the same value for every cell
func (t *TranslationTable) Equal(o *TranslationTable) bool {
	if t.def != o.def || len(t.cells) != len(o.cells) {
		return false
	}
	for c, p := range t.cells {
		if q, ok := o.cells[c]; !ok || q != p {
			return false
		}
	}
	return true
}

func checkProbability(p float64) {
	if !(p >= 0 && p <= 1) {
		panic(ErrProbabilityOutOfRange)
	}
}
