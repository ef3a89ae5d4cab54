package table

import (
	"sort"

	"github.com/bobonovski/goalign/corpus"
)

// Triple is one flattened table entry
type Triple struct {
	Target string
	Source string
	Prob   float64
}

// SortTriples orders triples by target, then by descending probability,
// then by source.
func SortTriples(ts []Triple) {
	sort.Slice(ts, func(i, j int) bool {
		if ts[i].Target != ts[j].Target {
			return ts[i].Target < ts[j].Target
		}
		if ts[i].Prob != ts[j].Prob {
			return ts[i].Prob > ts[j].Prob
		}
		return ts[i].Source < ts[j].Source
	})
}

// Triples flattens the nonzero cells of the table. While the default is
// nonzero (an untrained table) every (target, source) pair is listed.
func (t *TranslationTable) Triples() []Triple {
	var ts []Triple
	if t.def > 0 {
		ts = make([]Triple, 0, t.target.Size()*t.source.Size())
		for f := 0; f < t.target.Size(); f += 1 {
			for e := 0; e < t.source.Size(); e += 1 {
				ts = append(ts, t.triple(uint32(f), uint32(e), t.GetId(uint32(f), uint32(e))))
			}
		}
	} else {
		ts = make([]Triple, 0, len(t.cells))
		for c, p := range t.cells {
			if p > 0 {
				ts = append(ts, t.triple(c.Target, c.Source, p))
			}
		}
	}
	SortTriples(ts)
	return ts
}

// Export is Triples plus one zero-probability entry for every token that
// has no nonzero cell, so that FromTriples restores both vocabularies.
func (t *TranslationTable) Export() []Triple {
	ts := t.Triples()
	if t.target.Size() == 0 || t.source.Size() == 0 {
		return ts
	}
	hasTarget := make(map[string]bool, t.target.Size())
	hasSource := make(map[string]bool, t.source.Size())
	for _, tr := range ts {
		hasTarget[tr.Target] = true
		hasSource[tr.Source] = true
	}
	for _, f := range t.target.Tokens() {
		if !hasTarget[f] {
			ts = append(ts, Triple{Target: f, Source: t.source.Token(0), Prob: 0})
			hasSource[t.source.Token(0)] = true
		}
	}
	for _, e := range t.source.Tokens() {
		if !hasSource[e] {
			ts = append(ts, Triple{Target: t.target.Token(0), Source: e, Prob: 0})
		}
	}
	SortTriples(ts)
	return ts
}

func (t *TranslationTable) triple(f, e uint32, p float64) Triple {
	return Triple{Target: t.target.Token(f), Source: t.source.Token(e), Prob: p}
}

// FromTriples rebuilds a table from flattened entries. The vocabularies are
// the tokens named by the triples and unlisted cells read as 0. A Null source
// token in the input keeps its place at the end of the source vocabulary.
func FromTriples(ts []Triple) *TranslationTable {
	var srcTokens, tgtTokens []string
	hasNull := false
	for _, tr := range ts {
		if tr.Source == corpus.Null {
			hasNull = true
		}
		srcTokens = append(srcTokens, tr.Source)
		tgtTokens = append(tgtTokens, tr.Target)
	}

	t := &TranslationTable{
		source: corpus.NewVocabulary(srcTokens, hasNull),
		target: corpus.NewVocabulary(tgtTokens, false),
	}
	t.Reset(0)
	for _, tr := range ts {
		t.Set(tr.Target, tr.Source, tr.Prob)
	}
	return t
}
