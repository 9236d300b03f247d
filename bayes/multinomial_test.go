package bayes

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geekalexis/sentiment/corpus"
)

var (
	separablePos = corpus.Corpus{{"great", "superb"}, {"great", "love"}}
	separableNeg = corpus.Corpus{{"awful", "boring"}, {"awful", "hate"}}
)

func TestMultinomialClassifyBeforeLearn(t *testing.T) {
	var m MultinomialModel
	_, err := m.Classify(corpus.Corpus{{"good"}})
	assert.ErrorIs(t, err, ErrNotTrained)

	var nilModel *MultinomialModel
	_, err = nilModel.Classify(corpus.Corpus{{"good"}})
	assert.ErrorIs(t, err, ErrNotTrained)
}

func TestMultinomialSymmetricData(t *testing.T) {
	m, err := NewMultinomialNB().Learn(
		corpus.Corpus{{"good", "good", "good"}},
		corpus.Corpus{{"bad", "bad", "bad"}},
	)
	require.NoError(t, err)

	p, ok := m.PosP("good")
	require.True(t, ok)
	assert.InDelta(t, 48.0/93.0, p, 1e-12)
	p, ok = m.NegP("good")
	require.True(t, ok)
	assert.InDelta(t, 45.0/93.0, p, 1e-12)

	tests := []struct {
		name     string
		doc      corpus.Document
		expected bool
	}{
		{name: "positive terms", doc: corpus.Document{"good", "good"}, expected: true},
		{name: "negative terms", doc: corpus.Document{"bad", "bad"}, expected: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			predictions, err := m.Classify(corpus.Corpus{tt.doc})
			require.NoError(t, err)
			assert.Equal(t, []bool{tt.expected}, predictions)
		})
	}
}

func TestMultinomialTiesAreNegative(t *testing.T) {
	same := corpus.Corpus{{"plot", "cast", "plot"}, {"music"}}
	m, err := NewMultinomialNB().Learn(same, same)
	require.NoError(t, err)

	predictions, err := m.Classify(corpus.Corpus{
		{"unknown", "words"},
		{},
		{"plot", "music"},
	})
	require.NoError(t, err)
	assert.Equal(t, []bool{false, false, false}, predictions)
}

func TestMultinomialProbabilitiesInUnitInterval(t *testing.T) {
	pos := corpus.Corpus{{"a", "a", "a", "a", "b"}, {"a", "c"}}
	neg := corpus.Corpus{{"c"}, {}}

	for _, alpha := range []float64{0.01, 1, DefaultAlpha, 1000} {
		nb := &MultinomialNB{Alpha: alpha}
		m, err := nb.Learn(pos, neg)
		require.NoError(t, err)

		for _, term := range m.Vocabulary().Terms() {
			p, _ := m.PosP(term)
			assert.True(t, p > 0 && p < 1, "pos_p[%s] = %v with alpha %v", term, p, alpha)
			p, _ = m.NegP(term)
			assert.True(t, p > 0 && p < 1, "neg_p[%s] = %v with alpha %v", term, p, alpha)
		}
	}
}

func TestMultinomialInvalidAlpha(t *testing.T) {
	for _, alpha := range []float64{0, -1, math.NaN()} {
		_, err := (&MultinomialNB{Alpha: alpha}).Learn(separablePos, separableNeg)
		assert.ErrorIs(t, err, ErrInvalidParameter)
	}
}

func TestMultinomialLearnIsDeterministic(t *testing.T) {
	nb := NewMultinomialNB()
	first, err := nb.Learn(separablePos, separableNeg)
	require.NoError(t, err)
	second, err := nb.Learn(separablePos, separableNeg)
	require.NoError(t, err)

	assert.Equal(t, first.posP, second.posP)
	assert.Equal(t, first.negP, second.negP)
	assert.Equal(t, first.Vocabulary(), second.Vocabulary())
}

func TestMultinomialEmptyTraining(t *testing.T) {
	m, err := NewMultinomialNB().Learn(corpus.Corpus{}, corpus.Corpus{{}})
	require.NoError(t, err)
	assert.Equal(t, 0, m.Vocabulary().Len())

	_, err = m.Classify(corpus.Corpus{{"good"}})
	assert.ErrorIs(t, err, ErrNotTrained)
}

func TestMultinomialSeparable(t *testing.T) {
	m, err := NewMultinomialNB().Fit(separablePos, separableNeg)
	require.NoError(t, err)

	predictions, err := m.Classify(corpus.Corpus{{"great", "love"}, {"superb"}})
	require.NoError(t, err)
	assert.Equal(t, []bool{true, true}, predictions)

	predictions, err = m.Classify(corpus.Corpus{{"awful", "hate"}, {"boring", "unknown"}})
	require.NoError(t, err)
	assert.Equal(t, []bool{false, false}, predictions)

	predictions, err = m.Classify(corpus.Corpus{})
	require.NoError(t, err)
	assert.Empty(t, predictions)
}

func TestMultinomialParallelMatchesSequential(t *testing.T) {
	words := []string{"great", "superb", "love", "awful", "boring", "hate", "plot"}
	rng := rand.New(rand.NewSource(7))
	test := make(corpus.Corpus, 257)
	for i := range test {
		doc := make(corpus.Document, 1+rng.Intn(6))
		for j := range doc {
			doc[j] = words[rng.Intn(len(words))]
		}
		test[i] = doc
	}

	sequential, err := (&MultinomialNB{Alpha: DefaultAlpha, Workers: 1}).Learn(separablePos, separableNeg)
	require.NoError(t, err)
	parallel, err := (&MultinomialNB{Alpha: DefaultAlpha, Workers: 8}).Learn(separablePos, separableNeg)
	require.NoError(t, err)

	want, err := sequential.Classify(test)
	require.NoError(t, err)
	got, err := parallel.Classify(test)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDecide(t *testing.T) {
	assert.True(t, Decide(-1, -2))
	assert.False(t, Decide(-2, -1))
	assert.False(t, Decide(-3, -3))
}

// permutedTie builds one positive and one negative document where term i
// occurs i times in pos and (i+1) mod n times in neg. Both classes then hold
// the same multiset of counts, so a document with every term once ties.
func permutedTie(n int) (pos, neg, test corpus.Corpus) {
	var posDoc, negDoc, testDoc corpus.Document
	for i := 0; i < n; i++ {
		term := fmt.Sprintf("t%02d", i)
		for j := 0; j < i; j++ {
			posDoc = append(posDoc, term)
		}
		for j := 0; j < (i+1)%n; j++ {
			negDoc = append(negDoc, term)
		}
		testDoc = append(testDoc, term)
	}
	return corpus.Corpus{posDoc}, corpus.Corpus{negDoc}, corpus.Corpus{testDoc}
}

func TestMultinomialPermutedTieIsStable(t *testing.T) {
	pos, neg, test := permutedTie(23)
	m, err := (&MultinomialNB{Alpha: 0.37}).Learn(pos, neg)
	require.NoError(t, err)

	for i := 0; i < 2000; i++ {
		predictions, err := m.Classify(test)
		require.NoError(t, err)
		require.Equal(t, []bool{false}, predictions, "call %d", i)
	}
}

func TestMultinomialNilModelAccessors(t *testing.T) {
	var m *MultinomialModel
	_, ok := m.PosP("good")
	assert.False(t, ok)
	_, ok = m.NegP("good")
	assert.False(t, ok)
	assert.Nil(t, m.Vocabulary())
}
