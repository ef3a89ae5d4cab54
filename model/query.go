package model

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/bobonovski/goalign/corpus"
	"github.com/bobonovski/goalign/table"
)

// Candidate is a token with its translation probability
type Candidate struct {
	Token string
	Prob  float64
}

// BestSource returns the source token e maximizing t[f][e]. Ties go to the
// token that comes first in the source vocabulary.
func BestSource(t *table.TranslationTable, f string) (Candidate, error) {
	if err := checkTable(t); err != nil {
		return Candidate{}, err
	}
	fid, ok := t.Target().Id(f)
	if !ok {
		return Candidate{}, fmt.Errorf("%w: target %q", ErrNotFound, f)
	}
	return best(t.Row(fid), t.Source(), f)
}

// BestTarget returns the target token f maximizing t[f][e]. Ties go to the
// token that comes first in the target vocabulary.
func BestTarget(t *table.TranslationTable, e string) (Candidate, error) {
	if err := checkTable(t); err != nil {
		return Candidate{}, err
	}
	eid, ok := t.Source().Id(e)
	if !ok {
		return Candidate{}, fmt.Errorf("%w: source %q", ErrNotFound, e)
	}
	return best(t.Column(eid), t.Target(), e)
}

// TopSources returns up to k source tokens with nonzero t[f][e], most
// probable first.
func TopSources(t *table.TranslationTable, f string, k int) ([]Candidate, error) {
	if err := checkTable(t); err != nil {
		return nil, err
	}
	fid, ok := t.Target().Id(f)
	if !ok {
		return nil, fmt.Errorf("%w: target %q", ErrNotFound, f)
	}
	return top(t.Row(fid), t.Source(), f, k)
}

// TopTargets returns up to k target tokens with nonzero t[f][e], most
// probable first.
func TopTargets(t *table.TranslationTable, e string, k int) ([]Candidate, error) {
	if err := checkTable(t); err != nil {
		return nil, err
	}
	eid, ok := t.Source().Id(e)
	if !ok {
		return nil, fmt.Errorf("%w: source %q", ErrNotFound, e)
	}
	return top(t.Column(eid), t.Target(), e, k)
}

func checkTable(t *table.TranslationTable) error {
	if t.Source().Size() == 0 || t.Target().Size() == 0 {
		return fmt.Errorf("%w: empty table", ErrNoData)
	}
	return nil
}

func best(probs []float64, vocab *corpus.Vocabulary, query string) (Candidate, error) {
	idx := floats.MaxIdx(probs)
	if probs[idx] == 0 {
		return Candidate{}, fmt.Errorf("%w: %q", ErrNoData, query)
	}
	return Candidate{Token: vocab.Token(uint32(idx)), Prob: probs[idx]}, nil
}

func top(probs []float64, vocab *corpus.Vocabulary, query string, k int) ([]Candidate, error) {
	var cands []Candidate
	for i, p := range probs {
		if p > 0 {
			cands = append(cands, Candidate{Token: vocab.Token(uint32(i)), Prob: p})
		}
	}
	if len(cands) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoData, query)
	}
	// candidates are in vocabulary order, keep it among equal probabilities
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].Prob > cands[j].Prob
	})
	if k > 0 && len(cands) > k {
		cands = cands[:k]
	}
	return cands, nil
}
