// Package sstable reads and writes translation tables as sorted text
// tables. The first line holds the target and source vocabulary sizes,
// every other line one "target<TAB>source<TAB>probability" triple sorted
// by target, descending probability and source. Tokens without any nonzero
// cell are written with probability 0 so the vocabularies survive.
package sstable

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	log "github.com/golang/glog"

	"github.com/bobonovski/goalign/table"
)

// Write serializes the nonzero cells and the vocabularies of t to w
func Write(w io.Writer, t *table.TranslationTable) error {
	bw := bufio.NewWriter(w)

	// write the table shape
	if _, err := fmt.Fprintf(bw, "%d,%d\n", t.Target().Size(), t.Source().Size()); err != nil {
		return err
	}
	for _, tr := range t.Export() {
		_, err := fmt.Fprintf(bw, "%s\t%s\t%s\n",
			tr.Target, tr.Source, strconv.FormatFloat(tr.Prob, 'g', -1, 64))
		if err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Read parses triples written by Write. Malformed rows are logged and
// skipped, a malformed probability is an error.
func Read(r io.Reader) ([]table.Triple, error) {
	var ts []table.Triple
	var rows, cols uint64

	lineIdx := 0
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		txt := scanner.Text()
		if lineIdx == 0 {
			shape := strings.Split(txt, ",")
			if len(shape) != 2 {
				return nil, fmt.Errorf("table corrupted, shape not found: %s", txt)
			}
			var err error
			if rows, err = strconv.ParseUint(shape[0], 10, 32); err != nil {
				return nil, err
			}
			if cols, err = strconv.ParseUint(shape[1], 10, 32); err != nil {
				return nil, err
			}
			lineIdx += 1
			continue
		}

		value := strings.Split(txt, "\t")
		if len(value) != 3 {
			log.Infof("data corrupted, row %d, data %s", lineIdx, txt)
			lineIdx += 1
			continue
		}
		p, err := strconv.ParseFloat(value[2], 64)
		if err != nil {
			return nil, err
		}
		if p < 0 || p > 1 {
			return nil, fmt.Errorf("table corrupted, row %d: probability %v", lineIdx, p)
		}
		ts = append(ts, table.Triple{Target: value[0], Source: value[1], Prob: p})

		lineIdx += 1
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if lineIdx == 0 {
		return nil, fmt.Errorf("table corrupted, shape not found")
	}
	if len(ts) > 0 {
		targets, sources := countTokens(ts)
		if uint64(targets) != rows || uint64(sources) != cols {
			return nil, fmt.Errorf("table corrupted, shape %d,%d but found %d targets and %d sources",
				rows, cols, targets, sources)
		}
	}
	return ts, nil
}

func countTokens(ts []table.Triple) (int, int) {
	targets := make(map[string]bool)
	sources := make(map[string]bool)
	for _, tr := range ts {
		targets[tr.Target] = true
		sources[tr.Source] = true
	}
	return len(targets), len(sources)
}

// serialize table to file
func Serialize(t *table.TranslationTable, fn string) error {
	out, err := os.OpenFile(fn, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0644)
	if err != nil {
		return err
	}

	if err := Write(out, t); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// deserialize table from file
func Deserialize(fn string) (*table.TranslationTable, error) {
	file, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	ts, err := Read(file)
	if err != nil {
		return nil, err
	}
	return table.FromTriples(ts), nil
}
