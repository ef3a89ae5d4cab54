package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	log "github.com/golang/glog"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/bobonovski/goalign/corpus"
	"github.com/bobonovski/goalign/model"
	"github.com/bobonovski/goalign/sstable"
	"github.com/bobonovski/goalign/storage"
	"github.com/bobonovski/goalign/table"
)

var (
	app     = kingpin.New("goalign", "Estimate word translation tables from parallel sentences.")
	verbose = app.Flag("verbose", "log verbosity").Short('v').Default("0").Int()

	trainCmd  = app.Command("train", "train a translation table")
	input     = trainCmd.Flag("input", "tab separated sentence pairs, the built-in sample when empty").String()
	modelType = trainCmd.Flag("model", "model type").Default("ibm1").Enum(model.Models()...)
	iteration = trainCmd.Flag("iter", "number of iterations").Default("10").Int()
	threshold = trainCmd.Flag("threshold", "stop once no probability changes by more than this, 0 disables").Default("0").Float64()
	workers   = trainCmd.Flag("workers", "goroutines sharing the E-step").Default("1").Int()
	reverse   = trainCmd.Flag("reverse", "swap source and target sentences").Bool()
	progress  = trainCmd.Flag("progress", "show a progress bar per iteration").Bool()
	output    = trainCmd.Flag("output", "write the final table to this file").String()
	dbpath    = trainCmd.Flag("db", "store a table snapshot per iteration in this sqlite database").String()
	report    = trainCmd.Flag("report", "print the corpus and top translations").Default("true").Bool()
	words     = trainCmd.Arg("words", "source words to translate").Strings()

	queryCmd    = app.Command("query", "look up translations in a stored table")
	tablePath   = queryCmd.Arg("table", "table file written by train --output").Required().ExistingFile()
	queryWords  = queryCmd.Arg("words", "words to translate").Strings()
	queryTarget = queryCmd.Flag("target", "treat words as target words").Bool()
	topK        = queryCmd.Flag("top", "number of candidates per word").Default("3").Int()
)

func main() {
	cmd := kingpin.MustParse(app.Parse(os.Args[1:]))

	flag.Set("logtostderr", "true")
	flag.Set("v", strconv.Itoa(*verbose))
	flag.CommandLine.Parse(nil)
	defer log.Flush()

	var err error
	switch cmd {
	case trainCmd.FullCommand():
		err = train()
	case queryCmd.FullCommand():
		err = query()
	}
	if err != nil {
		log.Exit(err)
	}
}

func train() error {
	opts := model.DefaultOptions()
	opts.Iterations = *iteration
	opts.Threshold = *threshold
	opts.Workers = *workers
	opts.Progress = *progress
	if err := opts.Validate(); err != nil {
		return err
	}

	// read training data
	data := corpus.Sample()
	if *input != "" {
		data = &corpus.Corpus{}
		if err := data.Load(*input); err != nil {
			return err
		}
	}
	if *reverse {
		data = data.Swap()
	}

	// init model
	ctor, err := model.GetModel(*modelType)
	if err != nil {
		return err
	}
	m := ctor(data, opts)

	var db *sql.DB
	if *dbpath != "" {
		db, err = storage.MakeDB(*dbpath, true)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := storage.SetParameter(db, "model", *modelType); err != nil {
			return err
		}
		if em, ok := m.(*model.IBM1); ok {
			em.OnIteration(func(iter int, t *table.TranslationTable) {
				if err := storage.SaveTable(db, iter, t); err != nil {
					log.Errorf("snapshot of iteration %d: %v", iter, err)
				}
			})
		}
	}

	if err := m.Train(opts.Iterations); err != nil {
		return err
	}
	if _, ok := m.(*model.IBM1); db != nil && !ok {
		// single pass models only have a final table
		if err := storage.SaveTable(db, 1, m.Table()); err != nil {
			return err
		}
	}

	if *output != "" {
		if err := sstable.Serialize(m.Table(), *output); err != nil {
			return err
		}
		log.Infof("table written to %s", *output)
	}

	if *report {
		printCorpus(os.Stdout, data)
		printTop(os.Stdout, m.Table(), 10, 3)
	}
	printBest(os.Stdout, m.Table(), *words)
	return nil
}

func query() error {
	t, err := sstable.Deserialize(*tablePath)
	if err != nil {
		return err
	}
	for _, w := range *queryWords {
		var cands []model.Candidate
		if *queryTarget {
			cands, err = model.TopSources(t, w, *topK)
		} else {
			cands, err = model.TopTargets(t, w, *topK)
		}
		if err != nil {
			fmt.Printf("%s: %v\n", w, err)
			continue
		}
		fmt.Printf("%s →\n", w)
		for _, c := range cands {
			fmt.Printf("  %s: %.3f\n", c.Token, c.Prob)
		}
	}
	return nil
}

func printCorpus(w io.Writer, data *corpus.Corpus) {
	fmt.Fprintln(w, "Parallel corpus:")
	for i, p := range data.Pairs {
		fmt.Fprintf(w, "%d. %v\n   %v\n", i+1, p.Source, p.Target)
	}
}

// print the k best translations of the first n words in each direction
func printTop(w io.Writer, t *table.TranslationTable, n, k int) {
	fmt.Fprintln(w, "\nP(target|source), top translations:")
	for i, e := range t.Source().Tokens() {
		if i == n {
			break
		}
		printCandidates(w, e, k, model.TopTargets, t)
	}

	fmt.Fprintln(w, "\nP(target|source), most likely sources:")
	for i, f := range t.Target().Tokens() {
		if i == n {
			break
		}
		printCandidates(w, f, k, model.TopSources, t)
	}
}

func printCandidates(w io.Writer, word string, k int,
	lookup func(*table.TranslationTable, string, int) ([]model.Candidate, error),
	t *table.TranslationTable) {
	cands, err := lookup(t, word, k)
	if errors.Is(err, model.ErrNoData) {
		fmt.Fprintf(w, "'%s' → no data\n", word)
		return
	}
	if err != nil {
		fmt.Fprintf(w, "'%s' → %v\n", word, err)
		return
	}
	fmt.Fprintf(w, "'%s' →\n", word)
	for _, c := range cands {
		fmt.Fprintf(w, "  %s: %.3f\n", c.Token, c.Prob)
	}
}

func printBest(w io.Writer, t *table.TranslationTable, words []string) {
	for _, word := range words {
		tokens := corpus.Tokenize(word)
		if len(tokens) == 0 {
			continue
		}
		best, err := model.BestTarget(t, tokens[0])
		if err != nil {
			fmt.Fprintf(w, "  %s → %v\n", tokens[0], err)
			continue
		}
		fmt.Fprintf(w, "  %s → %s (P=%.3f)\n", tokens[0], best.Token, best.Prob)
	}
}
