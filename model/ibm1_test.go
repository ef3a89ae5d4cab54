package model

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobonovski/goalign/corpus"
	"github.com/bobonovski/goalign/sstable"
	"github.com/bobonovski/goalign/table"
)

func newCorpus(pairs ...string) *corpus.Corpus {
	c := &corpus.Corpus{}
	for i := 0; i+1 < len(pairs); i += 2 {
		c.Add(pairs[i], pairs[i+1])
	}
	return c
}

func catDogCorpus() *corpus.Corpus {
	return newCorpus("the cat", "le chat", "the dog", "le chien")
}

func richCorpus() *corpus.Corpus {
	return newCorpus(
		"the the cat", "le le chat",
		"a dog", "un chien",
		"the dog", "le chien",
		"a cat sleeps", "un chat dort",
	)
}

func TestIBM1Init(t *testing.T) {
	m := NewIBM1(catDogCorpus(), DefaultOptions())

	assert.Equal(t, []string{"cat", "dog", "the", corpus.Null}, m.Table().Source().Tokens())
	assert.Equal(t, []string{"chat", "chien", "le"}, m.Table().Target().Tokens())
	assert.Equal(t, 0.25, m.Table().Get("le", "the"))
	assert.Nil(t, m.ZeroMass())
}

func TestIBM1EndToEnd(t *testing.T) {
	m := NewIBM1(catDogCorpus(), DefaultOptions())
	require.NoError(t, m.Train(10))

	tt := m.Table()
	le := tt.Get("le", "the")
	for _, e := range []string{"cat", "dog", corpus.Null} {
		assert.GreaterOrEqual(t, le, tt.Get("le", e), e)
	}
	assert.Greater(t, le, tt.Get("le", "cat"))
	assert.Greater(t, tt.Get("chat", "cat"), tt.Get("chat", "the"))

	best, err := BestSource(tt, "le")
	require.NoError(t, err)
	assert.Equal(t, "the", best.Token)
	assert.Equal(t, le, best.Prob)

	best, err = BestTarget(tt, "cat")
	require.NoError(t, err)
	assert.Equal(t, "chat", best.Token)
}

func TestIBM1SinglePair(t *testing.T) {
	m := NewIBM1(newCorpus("a b", "x y"), DefaultOptions())
	require.NoError(t, m.Train(1))

	tt := m.Table()
	for _, f := range []string{"x", "y"} {
		a := tt.Get(f, "a")
		assert.InDelta(t, a, tt.Get(f, "b"), 1e-15)
		assert.InDelta(t, a, tt.Get(f, corpus.Null), 1e-15)
		// every source column spreads evenly over the two targets
		assert.InDelta(t, 0.5, a, 1e-15)
	}
}

func TestIBM1ColumnNormalization(t *testing.T) {
	m := NewIBM1(richCorpus(), DefaultOptions())
	iters := 0
	m.OnIteration(func(iter int, tt *table.TranslationTable) {
		iters += 1
		assert.Equal(t, iters, iter)
		for e := 0; e < tt.Source().Size(); e += 1 {
			assert.InDelta(t, 1.0, tt.ColumnSum(uint32(e)), 1e-9, tt.Source().Token(uint32(e)))
		}
	})
	require.NoError(t, m.Train(10))
	assert.Equal(t, 10, iters)
	assert.Empty(t, m.ZeroMass())
}

func TestIBM1LikelihoodMonotonic(t *testing.T) {
	m := NewIBM1(richCorpus(), DefaultOptions())
	prev := m.Likelihood()
	m.OnIteration(func(iter int, tt *table.TranslationTable) {
		cur := m.Likelihood()
		assert.GreaterOrEqual(t, cur, prev-1e-12, "iteration %d", iter)
		prev = cur
	})
	require.NoError(t, m.Train(15))
}

func TestIBM1Deterministic(t *testing.T) {
	a := NewIBM1(richCorpus(), DefaultOptions())
	b := NewIBM1(richCorpus(), DefaultOptions())
	require.NoError(t, a.Train(10))
	require.NoError(t, b.Train(10))

	assert.True(t, a.Table().Equal(b.Table()))
}

func TestIBM1Retrain(t *testing.T) {
	m := NewIBM1(richCorpus(), DefaultOptions())
	require.NoError(t, m.Train(10))
	first := m.Table().Clone()

	require.NoError(t, m.Train(10))
	assert.True(t, first.Equal(m.Table()))
}

func TestIBM1Workers(t *testing.T) {
	serial := NewIBM1(richCorpus(), DefaultOptions())
	require.NoError(t, serial.Train(10))

	opts := DefaultOptions()
	opts.Workers = 3
	sharded := NewIBM1(richCorpus(), opts)
	require.NoError(t, sharded.Train(10))

	want := serial.Table().Triples()
	got := sharded.Table().Triples()
	require.Equal(t, len(want), len(got))
	for i := range want {
		assert.Equal(t, want[i].Target, got[i].Target)
		assert.InDelta(t, want[i].Prob, got[i].Prob, 1e-12)
	}

	// more workers than sentence pairs
	opts.Workers = 16
	wide := NewIBM1(richCorpus(), opts)
	require.NoError(t, wide.Train(10))
	for _, tr := range want {
		assert.InDelta(t, tr.Prob, wide.Table().Get(tr.Target, tr.Source), 1e-12)
	}
}

func TestIBM1ZeroMass(t *testing.T) {
	m := NewIBM1(newCorpus("the cat", "le chat", "lonely", ""), DefaultOptions())
	require.NoError(t, m.Train(5))

	assert.Equal(t, []string{"lonely"}, m.ZeroMass())

	tt := m.Table()
	lonely, ok := tt.Source().Id("lonely")
	require.True(t, ok)
	assert.Equal(t, []float64{0, 0}, tt.Column(lonely))

	_, err := BestTarget(tt, "lonely")
	assert.ErrorIs(t, err, ErrNoData)
	_, err = BestTarget(tt, "bird")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIBM1ZeroMassSerialized(t *testing.T) {
	m := NewIBM1(newCorpus("the cat", "le chat", "lonely", ""), DefaultOptions())
	require.NoError(t, m.Train(5))

	var buf bytes.Buffer
	require.NoError(t, sstable.Write(&buf, m.Table()))
	ts, err := sstable.Read(&buf)
	require.NoError(t, err)
	loaded := table.FromTriples(ts)

	_, err = BestTarget(loaded, "lonely")
	assert.ErrorIs(t, err, ErrNoData)
	_, err = TopTargets(loaded, "lonely", 3)
	assert.ErrorIs(t, err, ErrNoData)

	best, err := BestTarget(loaded, "cat")
	require.NoError(t, err)
	want, _ := BestTarget(m.Table(), "cat")
	assert.Equal(t, want, best)
}

func TestIBM1EmptyCorpus(t *testing.T) {
	m := NewIBM1(&corpus.Corpus{}, DefaultOptions())
	require.NoError(t, m.Train(10))

	assert.Equal(t, 0, m.Table().Len())
	assert.Equal(t, 0.0, m.Likelihood())

	_, err := BestSource(m.Table(), "le")
	assert.ErrorIs(t, err, ErrNoData)
	_, err = BestTarget(m.Table(), "the")
	assert.ErrorIs(t, err, ErrNoData)
}

func TestIBM1BadIterations(t *testing.T) {
	m := NewIBM1(catDogCorpus(), DefaultOptions())

	assert.ErrorIs(t, m.Train(0), ErrBadIterations)
	assert.ErrorIs(t, m.Train(-3), ErrBadIterations)
	// the table keeps its uniform initialization
	assert.Equal(t, 0.25, m.Table().Get("chat", "dog"))
}

func TestIBM1Threshold(t *testing.T) {
	opts := DefaultOptions()
	opts.Threshold = 0.05
	m := NewIBM1(catDogCorpus(), opts)

	iters := 0
	m.OnIteration(func(iter int, tt *table.TranslationTable) { iters = iter })
	require.NoError(t, m.Train(500))

	assert.Greater(t, iters, 1)
	assert.Less(t, iters, 500)
}

func TestIBM1TargetNullWord(t *testing.T) {
	c := &corpus.Corpus{Tokenizer: strings.Fields}
	c.Add("hello", "NULL")
	m := NewIBM1(c, DefaultOptions())
	require.NoError(t, m.Train(1))

	assert.Equal(t, []string{corpus.Null}, m.Table().Target().Tokens())
	assert.Equal(t, 1.0, m.Table().Get(corpus.Null, "hello"))

	c = &corpus.Corpus{Tokenizer: strings.Fields}
	c.Add("hello", "bonjour NULL")
	m = NewIBM1(c, DefaultOptions())
	require.NoError(t, m.Train(3))

	tt := m.Table()
	assert.InDelta(t, 0.5, tt.Get("bonjour", "hello"), 1e-12)
	assert.InDelta(t, 0.5, tt.Get(corpus.Null, "hello"), 1e-12)
	assert.InDelta(t, 1.0, tt.ColumnSum(1), 1e-12)
}

func TestIBM1SourceNullWord(t *testing.T) {
	c := &corpus.Corpus{Tokenizer: strings.Fields}
	c.Add("NULL a", "x")
	m := NewIBM1(c, DefaultOptions())
	require.NoError(t, m.Train(1))

	// the word joins the synthetic token: two Null positions and one for a
	assert.Equal(t, []string{"a", corpus.Null}, m.Table().Source().Tokens())
	assert.InDelta(t, 1.0, m.Table().Get("x", corpus.Null), 1e-12)
	assert.InDelta(t, 1.0, m.Table().Get("x", "a"), 1e-12)
	assert.InDelta(t, math.Log(3), m.Likelihood(), 1e-12)
}

func TestEncodePairsUnknownToken(t *testing.T) {
	c := newCorpus("a", "x")
	src := corpus.NewVocabulary([]string{"a"}, true)
	tgt := corpus.NewVocabulary([]string{"y"}, false)

	assert.Panics(t, func() { encodePairs(c, src, tgt) })
}
