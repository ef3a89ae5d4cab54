package corpus

import (
	"bufio"
	"os"
	"strings"

	log "github.com/golang/glog"
)

// SentencePair holds the tokens of one source sentence and its translation.
type SentencePair struct {
	Source []string
	Target []string
}

type Corpus struct {
	// Tokenizer splits a raw sentence into tokens, Tokenize is used when nil
	Tokenizer func(string) []string
	Pairs     []*SentencePair
}

func (this *Corpus) tokenize(s string) []string {
	if this.Tokenizer == nil {
		return Tokenize(s)
	}
	return this.Tokenizer(s)
}

// Add tokenizes a raw sentence pair and appends it to the corpus
func (this *Corpus) Add(source, target string) {
	this.Pairs = append(this.Pairs, &SentencePair{
		Source: this.tokenize(source),
		Target: this.tokenize(target),
	})
}

func (this *Corpus) Len() int {
	return len(this.Pairs)
}

// load parallel sentences from file, the file format should be like:
// [source sentence<TAB>target sentence]
// blank lines are ignored, lines without a tab are logged and skipped
func (this *Corpus) Load(fn string) error {
	f, err := os.Open(fn)
	if err != nil {
		return err
	}
	defer f.Close()

	lineIdx := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineIdx += 1
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		vals := strings.SplitN(line, "\t", 2)
		if len(vals) != 2 {
			log.Warningf("bad sentence pair, line %d: %s", lineIdx, line)
			continue
		}
		this.Add(vals[0], vals[1])
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	log.Infof("number of sentence pairs %d", this.Len())
	return nil
}

// Swap returns a corpus with the source and target sides exchanged, for
// estimating the reverse direction. Token slices are shared.
func (this *Corpus) Swap() *Corpus {
	swapped := &Corpus{
		Tokenizer: this.Tokenizer,
		Pairs:     make([]*SentencePair, 0, this.Len()),
	}
	for _, p := range this.Pairs {
		swapped.Pairs = append(swapped.Pairs, &SentencePair{Source: p.Target, Target: p.Source})
	}
	return swapped
}
