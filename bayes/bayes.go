// Package bayes implements the two Naive Bayes sentiment models, a multinomial
// model over word counts and a gaussian model over count derived features.
//
// Learn never mutates the learner: every call returns a new, immutable model,
// so a trained model can be shared between goroutines calling Classify.
package bayes

import (
	"errors"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/geekalexis/sentiment/corpus"
	"github.com/geekalexis/sentiment/tfidf"
	"github.com/geekalexis/sentiment/vocab"
)

var (
	// ErrNotTrained is returned when classifying with a model that has no vocabulary.
	ErrNotTrained = errors.New("bayes: attempt to predict before learning")
	// ErrModelDegeneracy is wrapped by DegeneracyError.
	ErrModelDegeneracy = errors.New("bayes: model is degenerate")
	// ErrEmptyTraining is returned when the training corpora hold no documents or no terms.
	ErrEmptyTraining = errors.New("bayes: training corpora are empty")
	// ErrInvalidParameter is wrapped when a smoothing constant or prior is not positive.
	ErrInvalidParameter = errors.New("bayes: invalid parameter")
)

// DegeneracyError reports a pooled variance that makes the gaussian density undefined.
type DegeneracyError struct {
	Variance float64
}

func (e *DegeneracyError) Error() string {
	return fmt.Sprintf("bayes: pooled variance %g is not positive", e.Variance)
}

func (e *DegeneracyError) Unwrap() error {
	return ErrModelDegeneracy
}

// Classifier is a trained model. Classify returns one prediction per document,
// in input order, true meaning positive.
type Classifier interface {
	Classify(c corpus.Corpus) ([]bool, error)
	Vocabulary() vocab.Vocabulary
}

// Learner trains a Classifier from a positive and a negative corpus
type Learner interface {
	Fit(pos, neg corpus.Corpus) (Classifier, error)
}

// Decide is the decision rule shared by both models. Equal scores predict negative.
func Decide(scorePos, scoreNeg float64) bool {
	return scorePos > scoreNeg
}

// orderedSum adds the per term contributions of a score in ascending order.
// Two classes with the same multiset of contributions get bit-identical
// scores, whatever order the terms were visited in.
func orderedSum(contributions []float64) float64 {
	sort.Float64s(contributions)
	return floats.Sum(contributions)
}

// scoreFunc returns the positive and negative log scores of one document
type scoreFunc func(vec tfidf.Vector) (float64, float64)

// predict applies the decision rule to every vector. With more than one worker
// the vectors are split into contiguous chunks scored concurrently; each chunk
// writes only its own slots so the output order matches the input.
func predict(vectors []tfidf.Vector, workers int, score scoreFunc) ([]bool, error) {
	predictions := make([]bool, len(vectors))
	if workers <= 1 || len(vectors) < 2 {
		for i, vec := range vectors {
			predictions[i] = Decide(score(vec))
		}
		return predictions, nil
	}

	chunk := (len(vectors) + workers - 1) / workers
	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < len(vectors); start += chunk {
		start, end := start, min(start+chunk, len(vectors))
		g.Go(func() error {
			for i := start; i < end; i++ {
				predictions[i] = Decide(score(vectors[i]))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return predictions, nil
}
