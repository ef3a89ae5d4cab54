package model

import (
	"fmt"
	"sort"

	"github.com/bobonovski/goalign/corpus"
	"github.com/bobonovski/goalign/table"
)

var constructors = make(map[string]ModelCtor)

// the common interface translation table estimators should follow
type Model interface {
	// train model for iter iteration, starting from its initial table
	Train(iter int) error
	// get the current translation table
	Table() *table.TranslationTable
	// corpus log-likelihood under the current table
	Likelihood() float64
}

// new estimators should register themselves using this function
func Register(modelType string, m ModelCtor) {
	constructors[modelType] = m
}

type ModelCtor func(dat *corpus.Corpus, opts Options) Model

func GetModel(modelType string) (ModelCtor, error) {
	if _, ok := constructors[modelType]; !ok {
		return nil, fmt.Errorf("model %s not registered", modelType)
	}
	return constructors[modelType], nil
}

// Models returns the registered model names in sorted order
func Models() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
