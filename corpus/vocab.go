package corpus

import (
	"sort"

	log "github.com/golang/glog"
)

// Null is the synthetic source token that accounts for target words
// without a source counterpart. It is an ordinary member of the source
// vocabulary.
const Null = "NULL"

// Vocabulary is an immutable set of tokens with dense ids. Tokens are
// sorted lexicographically, except that Null, when present, always takes
// the last id so that observed words win ties against it.
type Vocabulary struct {
	tokens []string
	ids    map[string]uint32
}

// NewVocabulary builds a vocabulary from tokens, dropping duplicates.
// If withNull is set, Null is appended after the sorted tokens and an
// observed Null token is the same entry; otherwise Null is an ordinary token.
func NewVocabulary(tokens []string, withNull bool) *Vocabulary {
	seen := make(map[string]bool, len(tokens))
	uniq := make([]string, 0, len(tokens)+1)
	for _, tok := range tokens {
		if (withNull && tok == Null) || seen[tok] {
			continue
		}
		seen[tok] = true
		uniq = append(uniq, tok)
	}
	sort.Strings(uniq)
	if withNull {
		uniq = append(uniq, Null)
	}

	v := &Vocabulary{
		tokens: uniq,
		ids:    make(map[string]uint32, len(uniq)),
	}
	for i, tok := range uniq {
		v.ids[tok] = uint32(i)
	}
	return v
}

// Size returns the number of tokens
func (v *Vocabulary) Size() int {
	return len(v.tokens)
}

// Id returns the id of token and whether it is in the vocabulary
func (v *Vocabulary) Id(token string) (uint32, bool) {
	id, ok := v.ids[token]
	return id, ok
}

// Token returns the token with the given id
func (v *Vocabulary) Token(id uint32) string {
	return v.tokens[id]
}

func (v *Vocabulary) Contains(token string) bool {
	_, ok := v.ids[token]
	return ok
}

// Tokens returns the tokens in id order. The slice must not be modified.
func (v *Vocabulary) Tokens() []string {
	return v.tokens
}

// Vocabularies derives the source vocabulary (with Null) and the target
// vocabulary of the corpus. An empty corpus yields two empty vocabularies.
// A source word spelled like Null is merged with the synthetic token, each
// occurrence acting as one more Null position in its sentence.
func (this *Corpus) Vocabularies() (source *Vocabulary, target *Vocabulary) {
	var srcTokens, tgtTokens []string
	collisions := 0
	for _, p := range this.Pairs {
		for _, tok := range p.Source {
			if tok == Null {
				collisions += 1
			}
		}
		srcTokens = append(srcTokens, p.Source...)
		tgtTokens = append(tgtTokens, p.Target...)
	}
	if collisions > 0 {
		log.Warningf("%d source tokens spelled %s merged with the synthetic null token", collisions, Null)
	}
	return NewVocabulary(srcTokens, this.Len() > 0), NewVocabulary(tgtTokens, false)
}
