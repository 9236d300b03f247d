package bayes

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geekalexis/sentiment/corpus"
	"github.com/geekalexis/sentiment/tfidf"
)

func TestGaussianClassifyBeforeLearn(t *testing.T) {
	var m GaussianModel
	_, err := m.Classify(corpus.Corpus{{"good"}})
	assert.ErrorIs(t, err, ErrNotTrained)

	var nilModel *GaussianModel
	_, err = nilModel.Classify(corpus.Corpus{{"good"}})
	assert.ErrorIs(t, err, ErrNotTrained)
}

func TestGaussianLearnParameters(t *testing.T) {
	pos := corpus.Corpus{{"good", "good", "fine"}}
	neg := corpus.Corpus{{"bad"}, {"bad", "fine"}}

	m, err := NewGaussianNB(tfidf.BoW).Learn(pos, neg)
	require.NoError(t, err)

	// squares 5 + 3 over 9 cells, shared mean 6/9
	assert.InDelta(t, 4.0/9.0, m.Variance(), 1e-12)
	assert.Equal(t, tfidf.BoW, m.Mode())

	tests := []struct {
		term    string
		posMean float64
		negMean float64
	}{
		{term: "good", posMean: 22.0 / 17.0, negMean: 2.0 / 13.0},
		{term: "bad", posMean: 4.0 / 17.0, negMean: 11.0 / 13.0},
		{term: "fine", posMean: 13.0 / 17.0, negMean: 13.0 / 26.0},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			mean, ok := m.PosMean(tt.term)
			require.True(t, ok)
			assert.InDelta(t, tt.posMean, mean, 1e-12)
			mean, ok = m.NegMean(tt.term)
			require.True(t, ok)
			assert.InDelta(t, tt.negMean, mean, 1e-12)
		})
	}
}

func TestGaussianLogDensity(t *testing.T) {
	pos := corpus.Corpus{{"good", "good", "fine"}}
	neg := corpus.Corpus{{"bad"}, {"bad", "fine"}}
	m, err := NewGaussianNB(tfidf.BoW).Learn(pos, neg)
	require.NoError(t, err)

	logGaussian := func(x, mean, variance float64) float64 {
		return -0.5*math.Log(2*math.Pi*variance) - (x-mean)*(x-mean)/(2*variance)
	}

	posMean, _ := m.PosMean("good")
	negMean, _ := m.NegMean("good")
	scorePos := logGaussian(2, posMean, m.Variance())
	scoreNeg := logGaussian(2, negMean, m.Variance())

	predictions, err := m.Classify(corpus.Corpus{{"good", "good"}})
	require.NoError(t, err)
	assert.Equal(t, []bool{scorePos > scoreNeg}, predictions)
	assert.True(t, predictions[0])
}

func TestGaussianSeparable(t *testing.T) {
	m, err := NewGaussianNB(tfidf.BoW).Fit(separablePos, separableNeg)
	require.NoError(t, err)

	predictions, err := m.Classify(corpus.Corpus{{"great", "love"}, {"awful", "hate"}})
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false}, predictions)
}

func TestGaussianTFIDF(t *testing.T) {
	pos := corpus.Corpus{{"p1"}, {"p2"}, {"p3"}, {"p4"}}
	neg := corpus.Corpus{{"n1"}, {"n2"}, {"n3"}, {"n4"}}

	m, err := NewGaussianNB(tfidf.TFIDF).Learn(pos, neg)
	require.NoError(t, err)
	assert.Equal(t, tfidf.TFIDF, m.Mode())

	// every feature is ln(4), the shared mean still comes from token counts
	expectedVar := 8*math.Log(4)*math.Log(4)/64 - 1.0/64
	assert.InDelta(t, expectedVar, m.Variance(), 1e-12)

	mean, _ := m.PosMean("p1")
	assert.InDelta(t, (0.5*math.Log(4)+expectedVar*0.5)/(0.5*4+expectedVar), mean, 1e-12)

	// idf comes from the classified corpus itself, so classify two documents at once
	predictions, err := m.Classify(corpus.Corpus{{"p1"}, {"n1"}})
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false}, predictions)
}

func TestGaussianTiesAreNegative(t *testing.T) {
	m, err := NewGaussianNB(tfidf.BoW).Learn(separablePos, separableNeg)
	require.NoError(t, err)

	predictions, err := m.Classify(corpus.Corpus{{"nothing", "known"}, {}})
	require.NoError(t, err)
	assert.Equal(t, []bool{false, false}, predictions)
}

func TestGaussianDegenerateVariance(t *testing.T) {
	tests := []struct {
		name string
		mode tfidf.Mode
		pos  corpus.Corpus
		neg  corpus.Corpus
	}{
		{
			name: "zero variance",
			mode: tfidf.BoW,
			pos:  corpus.Corpus{{"good"}},
			neg:  corpus.Corpus{},
		},
		{
			// one document per class gives every term an idf of zero
			name: "negative variance",
			mode: tfidf.TFIDF,
			pos:  corpus.Corpus{{"a", "b"}},
			neg:  corpus.Corpus{{"a", "c"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewGaussianNB(tt.mode).Learn(tt.pos, tt.neg)
			require.NoError(t, err)
			assert.LessOrEqual(t, m.Variance(), 0.0)

			_, err = m.Classify(corpus.Corpus{{"a"}})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrModelDegeneracy)

			var degeneracy *DegeneracyError
			require.ErrorAs(t, err, &degeneracy)
			assert.Equal(t, m.Variance(), degeneracy.Variance)
		})
	}
}

func TestGaussianEmptyTraining(t *testing.T) {
	_, err := NewGaussianNB(tfidf.BoW).Learn(corpus.Corpus{}, nil)
	assert.ErrorIs(t, err, ErrEmptyTraining)

	_, err = NewGaussianNB(tfidf.TFIDF).Learn(corpus.Corpus{{}}, corpus.Corpus{{}})
	assert.ErrorIs(t, err, ErrEmptyTraining)
}

func TestGaussianInvalidPriors(t *testing.T) {
	nb := NewGaussianNB(tfidf.BoW)
	nb.VarPrior = 0
	_, err := nb.Learn(separablePos, separableNeg)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestGaussianLearnIsDeterministic(t *testing.T) {
	nb := NewGaussianNB(tfidf.TFIDF)
	first, err := nb.Learn(separablePos, separableNeg)
	require.NoError(t, err)
	second, err := nb.Learn(separablePos, separableNeg)
	require.NoError(t, err)

	assert.Equal(t, first.Variance(), second.Variance())
	assert.Equal(t, first.posMean, second.posMean)
	assert.Equal(t, first.negMean, second.negMean)
}

func TestGaussianShuffledTrainingOrder(t *testing.T) {
	pos := corpus.Corpus{{"great", "superb"}, {"great", "love"}, {"fine", "great"}}
	shuffled := corpus.Corpus{pos[2], pos[0], pos[1]}

	first, err := NewGaussianNB(tfidf.BoW).Learn(pos, separableNeg)
	require.NoError(t, err)
	second, err := NewGaussianNB(tfidf.BoW).Learn(shuffled, separableNeg)
	require.NoError(t, err)

	assert.Equal(t, first.Variance(), second.Variance())
	assert.Equal(t, first.posMean, second.posMean)
}

func TestGaussianPermutedTieIsStable(t *testing.T) {
	pos, neg, test := permutedTie(23)
	m, err := NewGaussianNB(tfidf.BoW).Learn(pos, neg)
	require.NoError(t, err)
	require.InDelta(t, 44.0, m.Variance(), 1e-9)

	for i := 0; i < 2000; i++ {
		predictions, err := m.Classify(test)
		require.NoError(t, err)
		require.Equal(t, []bool{false}, predictions, "call %d", i)
	}
}

func TestGaussianNilModelAccessors(t *testing.T) {
	var m *GaussianModel
	_, ok := m.PosMean("good")
	assert.False(t, ok)
	_, ok = m.NegMean("good")
	assert.False(t, ok)
	assert.Nil(t, m.Vocabulary())
	assert.True(t, math.IsNaN(m.Variance()))
	assert.Equal(t, tfidf.BoW, m.Mode())
}
