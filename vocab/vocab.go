package vocab

import (
	"sort"

	"github.com/geekalexis/sentiment/corpus"
)

// Vocabulary is the fixed set of terms a model was trained on
type Vocabulary map[string]struct{}

// Build returns the distinct terms found across both training corpora.
func Build(pos, neg corpus.Corpus) Vocabulary {
	v := make(Vocabulary)
	for _, c := range []corpus.Corpus{pos, neg} {
		for _, doc := range c {
			for _, term := range doc {
				v[term] = struct{}{}
			}
		}
	}
	return v
}

func (v Vocabulary) Contains(term string) bool {
	_, ok := v[term]
	return ok
}

func (v Vocabulary) Len() int {
	return len(v)
}

// Terms returns the vocabulary in sorted order
func (v Vocabulary) Terms() []string {
	terms := make([]string, 0, len(v))
	for term := range v {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}
