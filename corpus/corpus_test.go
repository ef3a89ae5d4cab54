package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorpusAdd(t *testing.T) {
	c := &Corpus{}
	c.Add("The cat", "Le chat")

	assert.Equal(t, 1, c.Len())
	assert.Equal(t, []string{"the", "cat"}, c.Pairs[0].Source)
	assert.Equal(t, []string{"le", "chat"}, c.Pairs[0].Target)
}

func TestCorpusCustomTokenizer(t *testing.T) {
	c := &Corpus{Tokenizer: func(s string) []string { return []string{s} }}
	c.Add("a b", "x y")

	assert.Equal(t, []string{"a b"}, c.Pairs[0].Source)
	assert.Equal(t, []string{"x y"}, c.Pairs[0].Target)
}

func TestCorpusLoad(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "pairs.tsv")
	data := "the cat\tle chat\n\nno tab here\nthe dog\tle chien\nlonely\t\n"
	require.NoError(t, os.WriteFile(fn, []byte(data), 0644))

	c := &Corpus{}
	require.NoError(t, c.Load(fn))

	require.Equal(t, 3, c.Len())
	assert.Equal(t, []string{"the", "dog"}, c.Pairs[1].Source)
	assert.Equal(t, []string{"lonely"}, c.Pairs[2].Source)
	assert.Empty(t, c.Pairs[2].Target)
}

func TestCorpusLoadMissingFile(t *testing.T) {
	c := &Corpus{}
	assert.Error(t, c.Load(filepath.Join(t.TempDir(), "missing")))
}

func TestSample(t *testing.T) {
	c := Sample()

	assert.Equal(t, 5, c.Len())
	assert.Equal(t, []string{"i", "love", "reading", "books"}, c.Pairs[0].Source)
	assert.Len(t, c.Pairs[2].Target, 2)
}

func TestCorpusSwap(t *testing.T) {
	c := &Corpus{}
	c.Add("the cat", "le chat")

	s := c.Swap()
	assert.Equal(t, []string{"le", "chat"}, s.Pairs[0].Source)
	assert.Equal(t, []string{"the", "cat"}, s.Pairs[0].Target)
	assert.Equal(t, []string{"the", "cat"}, c.Pairs[0].Source)
}
