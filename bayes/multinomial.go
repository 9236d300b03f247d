package bayes

import (
	"fmt"
	"math"

	"github.com/geekalexis/sentiment/corpus"
	"github.com/geekalexis/sentiment/tfidf"
	"github.com/geekalexis/sentiment/vocab"
)

// DefaultAlpha is the calibrated Laplace smoothing constant
const DefaultAlpha = 45.0

// MultinomialNB learns per-class term probabilities from bag of words counts
type MultinomialNB struct {
	Alpha   float64 // additive smoothing constant, must be > 0
	Workers int     // goroutines used by Classify, <= 1 scores sequentially
}

// NewMultinomialNB returns a MultinomialNB with default settings
func NewMultinomialNB() *MultinomialNB {
	return &MultinomialNB{
		Alpha:   DefaultAlpha,
		Workers: 1,
	}
}

// MultinomialModel is the result of MultinomialNB.Learn. The zero value is
// untrained.
type MultinomialModel struct {
	vocab   vocab.Vocabulary
	posP    map[string]float64
	negP    map[string]float64
	logPosP map[string]float64
	logNegP map[string]float64
	workers int
}

// Learn estimates smoothed term probabilities for both classes:
//
//	p[term] = (count[term] + alpha) / (tokens + alpha*|vocabulary|)
//
// where tokens is the raw token length of the class corpus.
func (nb *MultinomialNB) Learn(pos, neg corpus.Corpus) (*MultinomialModel, error) {
	if !(nb.Alpha > 0) {
		return nil, fmt.Errorf("%w: smoothing constant %v must be positive", ErrInvalidParameter, nb.Alpha)
	}

	v := vocab.Build(pos, neg)
	m := &MultinomialModel{
		vocab:   v,
		posP:    nb.smooth(tfidf.Extract(pos, v, tfidf.BoW).CountSum, pos.TokenCount(), v),
		negP:    nb.smooth(tfidf.Extract(neg, v, tfidf.BoW).CountSum, neg.TokenCount(), v),
		workers: nb.Workers,
	}
	m.logPosP = logTable(m.posP)
	m.logNegP = logTable(m.negP)
	return m, nil
}

// Fit implements Learner
func (nb *MultinomialNB) Fit(pos, neg corpus.Corpus) (Classifier, error) {
	m, err := nb.Learn(pos, neg)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (nb *MultinomialNB) smooth(counts map[string]float64, tokens int, v vocab.Vocabulary) map[string]float64 {
	denom := float64(tokens) + nb.Alpha*float64(v.Len())
	p := make(map[string]float64, v.Len())
	for term := range v {
		p[term] = (counts[term] + nb.Alpha) / denom
	}
	return p
}

func logTable(p map[string]float64) map[string]float64 {
	logs := make(map[string]float64, len(p))
	for term, prob := range p {
		logs[term] = math.Log(prob)
	}
	return logs
}

// Classify scores each document as the sum of count*ln(p) over the terms it
// contains. Vocabulary terms absent from a document add nothing, which
// approximates the full multinomial likelihood.
func (m *MultinomialModel) Classify(c corpus.Corpus) ([]bool, error) {
	if m == nil || m.vocab.Len() == 0 {
		return nil, ErrNotTrained
	}

	f := tfidf.Extract(c, m.vocab, tfidf.BoW)
	return predict(f.Vectors, m.workers, func(vec tfidf.Vector) (float64, float64) {
		pos := make([]float64, 0, len(vec))
		neg := make([]float64, 0, len(vec))
		for term, count := range vec {
			pos = append(pos, count*m.logPosP[term])
			neg = append(neg, count*m.logNegP[term])
		}
		return orderedSum(pos), orderedSum(neg)
	})
}

// Vocabulary returns the terms the model was learned on, nil for a nil model
func (m *MultinomialModel) Vocabulary() vocab.Vocabulary {
	if m == nil {
		return nil
	}
	return m.vocab
}

// PosP returns the positive class probability of term and whether it is in the vocabulary
func (m *MultinomialModel) PosP(term string) (float64, bool) {
	if m == nil {
		return 0, false
	}
	p, ok := m.posP[term]
	return p, ok
}

// NegP returns the negative class probability of term and whether it is in the vocabulary
func (m *MultinomialModel) NegP(term string) (float64, bool) {
	if m == nil {
		return 0, false
	}
	p, ok := m.negP[term]
	return p, ok
}
