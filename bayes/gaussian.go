package bayes

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/geekalexis/sentiment/corpus"
	"github.com/geekalexis/sentiment/tfidf"
	"github.com/geekalexis/sentiment/vocab"
)

// Default priors of the MAP mean estimator
const (
	DefaultMeanPrior = 0.5
	DefaultVarPrior  = 0.5
)

// GaussianNB models every feature value as normally distributed around a per
// class, per term mean with one variance pooled over all terms and both classes.
type GaussianNB struct {
	MeanPrior float64
	VarPrior  float64
	Mode      tfidf.Mode // feature mode used for learning and, through the model, classifying
	Workers   int
}

// NewGaussianNB returns a GaussianNB with default priors using the given feature mode
func NewGaussianNB(mode tfidf.Mode) *GaussianNB {
	return &GaussianNB{
		MeanPrior: DefaultMeanPrior,
		VarPrior:  DefaultVarPrior,
		Mode:      mode,
		Workers:   1,
	}
}

// GaussianModel is the result of GaussianNB.Learn. The zero value is untrained.
type GaussianModel struct {
	vocab    vocab.Vocabulary
	mode     tfidf.Mode
	variance float64
	posMean  map[string]float64
	negMean  map[string]float64
	workers  int
}

// Learn estimates the pooled variance
//
//	var = (posSquares + negSquares) / (docs*|V|) - (tokens / (docs*|V|))^2
//
// and the per term class means
//
//	mean = (varPrior*sum + var*meanPrior) / (varPrior*classDocs + var)
//
// The shared mean is taken from raw token counts in both feature modes.
// A non-positive variance is kept and reported by Classify.
func (nb *GaussianNB) Learn(pos, neg corpus.Corpus) (*GaussianModel, error) {
	if !(nb.MeanPrior > 0) || !(nb.VarPrior > 0) {
		return nil, fmt.Errorf("%w: priors must be positive, got mean %v and variance %v", ErrInvalidParameter, nb.MeanPrior, nb.VarPrior)
	}

	v := vocab.Build(pos, neg)
	docs := len(pos) + len(neg)
	if docs == 0 || v.Len() == 0 {
		return nil, ErrEmptyTraining
	}

	posF := tfidf.Extract(pos, v, nb.Mode)
	negF := tfidf.Extract(neg, v, nb.Mode)

	dataNum := float64(docs * v.Len())
	sharedMean := float64(pos.TokenCount()+neg.TokenCount()) / dataNum
	variance := (posF.TotalSquareSum()+negF.TotalSquareSum())/dataNum - sharedMean*sharedMean

	return &GaussianModel{
		vocab:    v,
		mode:     nb.Mode,
		variance: variance,
		posMean:  nb.estimateMAP(posF.CountSum, len(pos), variance, v),
		negMean:  nb.estimateMAP(negF.CountSum, len(neg), variance, v),
		workers:  nb.Workers,
	}, nil
}

// Fit implements Learner
func (nb *GaussianNB) Fit(pos, neg corpus.Corpus) (Classifier, error) {
	m, err := nb.Learn(pos, neg)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (nb *GaussianNB) estimateMAP(sums map[string]float64, n int, variance float64, v vocab.Vocabulary) map[string]float64 {
	means := make(map[string]float64, v.Len())
	for term := range v {
		means[term] = (nb.VarPrior*sums[term] + variance*nb.MeanPrior) / (nb.VarPrior*float64(n) + variance)
	}
	return means
}

// Classify re-extracts features in the mode the model was learned with and
// sums the log gaussian density of every term present in each document.
func (m *GaussianModel) Classify(c corpus.Corpus) ([]bool, error) {
	if m == nil || m.vocab.Len() == 0 {
		return nil, ErrNotTrained
	}
	if !(m.variance > 0) {
		return nil, &DegeneracyError{Variance: m.variance}
	}

	sigma := math.Sqrt(m.variance)
	f := tfidf.Extract(c, m.vocab, m.mode)
	return predict(f.Vectors, m.workers, func(vec tfidf.Vector) (float64, float64) {
		pos := make([]float64, 0, len(vec))
		neg := make([]float64, 0, len(vec))
		for term, x := range vec {
			pos = append(pos, distuv.Normal{Mu: m.posMean[term], Sigma: sigma}.LogProb(x))
			neg = append(neg, distuv.Normal{Mu: m.negMean[term], Sigma: sigma}.LogProb(x))
		}
		return orderedSum(pos), orderedSum(neg)
	})
}

// Vocabulary returns the terms the model was learned on, nil for a nil model
func (m *GaussianModel) Vocabulary() vocab.Vocabulary {
	if m == nil {
		return nil
	}
	return m.vocab
}

// Variance returns the pooled variance, NaN for a nil model
func (m *GaussianModel) Variance() float64 {
	if m == nil {
		return math.NaN()
	}
	return m.variance
}

// Mode returns the feature mode the model was learned with
func (m *GaussianModel) Mode() tfidf.Mode {
	if m == nil {
		return tfidf.BoW
	}
	return m.mode
}

// PosMean returns the positive class mean of term and whether it is in the vocabulary
func (m *GaussianModel) PosMean(term string) (float64, bool) {
	if m == nil {
		return 0, false
	}
	mean, ok := m.posMean[term]
	return mean, ok
}

// NegMean returns the negative class mean of term and whether it is in the vocabulary
func (m *GaussianModel) NegMean(term string) (float64, bool) {
	if m == nil {
		return 0, false
	}
	mean, ok := m.negMean[term]
	return mean, ok
}
