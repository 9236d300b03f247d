package tfidf

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/geekalexis/sentiment/corpus"
	"github.com/geekalexis/sentiment/vocab"
)

// Mode selects how document feature values are computed
type Mode int

const (
	// BoW keeps the raw per-document term counts
	BoW Mode = iota
	// TFIDF reweights counts by term frequency and inverse document frequency
	TFIDF
)

func (m Mode) String() string {
	switch m {
	case BoW:
		return "BoW"
	case TFIDF:
		return "TFIDF"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode accepts "BoW" or "TFIDF" in any case
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bow":
		return BoW, nil
	case "tfidf", "tf-idf":
		return TFIDF, nil
	}
	return BoW, fmt.Errorf("tfidf: unknown feature mode %q", s)
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(text []byte) error {
	mode, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// Vector maps a vocabulary term to its feature value in one document
type Vector map[string]float64

type DocFreq = map[string]int

// Features holds the per-document vectors of one extraction call together with
// the corpus statistics gathered while building them. The statistics are only
// meaningful for the corpus they were extracted from.
type Features struct {
	Vectors []Vector
	// CountSum is the per-term sum of feature values over the corpus
	CountSum map[string]float64
	// SquareSum is the per-term sum of squared feature values over the corpus
	SquareSum map[string]float64
	// DF is the number of documents containing each term at least once
	DF DocFreq
}

// Extract converts every document of c into a feature vector restricted to v.
// Terms outside the vocabulary are skipped. Vectors keep the order of c.
func Extract(c corpus.Corpus, v vocab.Vocabulary, mode Mode) *Features {
	f := &Features{
		Vectors:   make([]Vector, len(c)),
		CountSum:  make(map[string]float64),
		SquareSum: make(map[string]float64),
		DF:        make(DocFreq),
	}

	for i, doc := range c {
		vec := make(Vector)
		for _, term := range doc {
			if v.Contains(term) {
				vec[term] += 1
				f.CountSum[term] += 1
			}
		}
		for term, count := range vec {
			f.DF[term] += 1
			f.SquareSum[term] += count * count
		}
		f.Vectors[i] = vec
	}

	if mode == TFIDF {
		f.reweight(c)
	}
	return f
}

// reweight replaces raw counts with tf-idf values and recomputes the
// aggregate statistics from them.
func (f *Features) reweight(c corpus.Corpus) {
	f.CountSum = make(map[string]float64)
	f.SquareSum = make(map[string]float64)
	for i, vec := range f.Vectors {
		// a document with features has at least one token, so len(c[i]) > 0
		for term := range vec {
			vec[term] = ComputeTF(term, len(c[i]), vec) * ComputeIDF(term, len(c), f.DF)
			f.CountSum[term] += vec[term]
			f.SquareSum[term] += vec[term] * vec[term]
		}
	}
}

// TotalSquareSum returns the sum of SquareSum over every term. Terms are added
// in sorted order so repeated calls give bit-identical results.
func (f *Features) TotalSquareSum() float64 {
	terms := make([]string, 0, len(f.SquareSum))
	for term := range f.SquareSum {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	values := make([]float64, len(terms))
	for i, term := range terms {
		values[i] = f.SquareSum[term]
	}
	return floats.Sum(values)
}

// This function computes the term frequency of a given term in a document
func ComputeTF(t string, N int, d Vector) float64 {
	//N is the total number of tokens (not unique) in the document, vocabulary or not
	if count, ok := d[t]; ok && N > 0 {
		return count / float64(N)
	}
	return 0
}

// Compute Inverse document frequency, ln(N/M) where N is the number of documents
// in the corpus and M the number of them that contain t.
// A term found in every document scores 0.
func ComputeIDF(t string, N int, df DocFreq) float64 {
	M := df[t]
	if M == 0 {
		return 0
	}
	return math.Log(float64(N) / float64(M))
}
