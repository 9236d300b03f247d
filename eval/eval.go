package eval

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/geekalexis/sentiment/bayes"
	"github.com/geekalexis/sentiment/config"
	"github.com/geekalexis/sentiment/corpus"
	"github.com/geekalexis/sentiment/lexer"
	"github.com/geekalexis/sentiment/logger"
	"github.com/geekalexis/sentiment/metrics"
	"github.com/geekalexis/sentiment/tfidf"
	"github.com/geekalexis/sentiment/util"
)

var ErrNoDocuments = errors.New("eval: no documents to score")

// Dataset is a pair of label separated corpora
type Dataset struct {
	Pos corpus.Corpus
	Neg corpus.Corpus
}

// Run names one learner configuration to evaluate. Heading is announced
// before training in batch output.
type Run struct {
	Name    string
	Heading string
	Learner bayes.Learner
}

// Result is the outcome of evaluating one Run
type Result struct {
	Name         string
	Model        bayes.Classifier
	PosTotal     int
	PosCorrect   int
	NegTotal     int
	NegCorrect   int
	Accuracy     float64
	TrainTime    time.Duration
	ClassifyTime time.Duration
}

// Accuracy returns (true positives + true negatives) / documents, where posPred
// are the predictions for positive documents and negPred for negative ones.
func Accuracy(posPred, negPred []bool) (float64, error) {
	total := len(posPred) + len(negPred)
	if total == 0 {
		return 0, ErrNoDocuments
	}
	return float64(countTrue(posPred)+len(negPred)-countTrue(negPred)) / float64(total), nil
}

func countTrue(predictions []bool) int {
	var n int
	for _, p := range predictions {
		if p {
			n++
		}
	}
	return n
}

// Suite returns the three standard runs configured by cfg
func Suite(cfg config.Config) []Run {
	multinomial := bayes.NewMultinomialNB()
	multinomial.Alpha = cfg.Alpha
	multinomial.Workers = cfg.Workers

	gaussian := func(mode tfidf.Mode) *bayes.GaussianNB {
		nb := bayes.NewGaussianNB(mode)
		nb.MeanPrior = cfg.MeanPrior
		nb.VarPrior = cfg.VarPrior
		nb.Workers = cfg.Workers
		return nb
	}

	return []Run{
		{Name: "Multinomial Naive Bayes w/ BoW", Heading: "Training Multinomial Naive Bayes", Learner: multinomial},
		{Name: "Gaussian Naive Bayes w/ BoW", Heading: "Training Gaussian Naive Bayes", Learner: gaussian(tfidf.BoW)},
		{Name: "Gaussian Naive Bayes w/ TFIDF", Heading: "Retraining Gaussian Naive Bayes w/ TFIDF", Learner: gaussian(tfidf.TFIDF)},
	}
}

// Evaluate trains run on train and classifies both test corpora. m may be nil.
func Evaluate(run Run, train, test Dataset, m *metrics.Metrics) (*Result, error) {
	logger.HandleLog("training %s", run.Name)
	start := time.Now()
	model, err := run.Learner.Fit(train.Pos, train.Neg)
	if err != nil {
		return nil, fmt.Errorf("training %s: %w", run.Name, err)
	}
	result := &Result{
		Name:      run.Name,
		Model:     model,
		TrainTime: time.Since(start),
	}
	if m != nil {
		m.ObserveLearn(run.Name, result.TrainTime, model.Vocabulary().Len())
	}

	start = time.Now()
	posPred, err := model.Classify(test.Pos)
	if err != nil {
		return nil, fmt.Errorf("classifying with %s: %w", run.Name, err)
	}
	negPred, err := model.Classify(test.Neg)
	if err != nil {
		return nil, fmt.Errorf("classifying with %s: %w", run.Name, err)
	}
	result.ClassifyTime = time.Since(start)

	result.Accuracy, err = Accuracy(posPred, negPred)
	if err != nil {
		return nil, err
	}
	result.PosTotal = len(posPred)
	result.PosCorrect = countTrue(posPred)
	result.NegTotal = len(negPred)
	result.NegCorrect = len(negPred) - countTrue(negPred)

	if m != nil {
		m.ObserveClassify(run.Name, result.ClassifyTime, append(posPred, negPred...))
		m.SetAccuracy(run.Name, result.Accuracy)
	}
	return result, nil
}

// LoadDataset reads and tokenizes a positive and a negative corpus file
func LoadDataset(posPath, negPath string, cfg config.Config) (Dataset, error) {
	tokenize := lexer.Tokenizer(cfg.LexerOptions()...)
	var ops corpus.FileOps = corpus.FileOpsImpl{}
	if cfg.ReadOnlyCache {
		ops = corpus.FileOpsNoOp{}
	}

	pos, err := corpus.Load(posPath, cfg.CacheDir, tokenize, ops)
	if err != nil {
		return Dataset{}, err
	}
	neg, err := corpus.Load(negPath, cfg.CacheDir, tokenize, ops)
	if err != nil {
		return Dataset{}, err
	}
	return Dataset{Pos: pos, Neg: neg}, nil
}

// LoadDir loads the training and test datasets stored under dir, see util.DatasetFiles
func LoadDir(dir string, cfg config.Config) (train Dataset, test Dataset, err error) {
	train, err = LoadDataset(filepath.Join(dir, util.TrainPosFile), filepath.Join(dir, util.TrainNegFile), cfg)
	if err != nil {
		return train, test, err
	}
	test, err = LoadDataset(filepath.Join(dir, util.TestPosFile), filepath.Join(dir, util.TestNegFile), cfg)
	return train, test, err
}

// Report writes the summary of r, posName and negName label the test corpora
func (r *Result) Report(w io.Writer, posName, negName string) {
	fmt.Fprintf(w, "Training time: %v seconds\n", r.TrainTime.Seconds())
	fmt.Fprintln(w, "\nClassifying...")
	fmt.Fprintf(w, "Classification time: %v seconds\n", r.ClassifyTime.Seconds())
	fmt.Fprintf(w, "%s classifications:\n", posName)
	fmt.Fprintf(w, "Total review count: %d\nPositive review count: %d\n", r.PosTotal, r.PosCorrect)
	fmt.Fprintf(w, "%s classifications:\n", negName)
	fmt.Fprintf(w, "Total review count: %d\nNegative review count: %d\n", r.NegTotal, r.NegCorrect)
	fmt.Fprintf(w, util.TerminalGreen+"%s accuracy: %v"+util.TerminalReset+"\n", r.Name, r.Accuracy)
}

// RunAll evaluates every run in order and writes the heading and report of
// each to w. A run that fails is reported on w and skipped.
func RunAll(w io.Writer, runs []Run, train, test Dataset, posName, negName string, m *metrics.Metrics) []*Result {
	results := []*Result{}
	for _, run := range runs {
		fmt.Fprintf(w, "\n%s...\n", run.Heading)
		result, err := Evaluate(run, train, test, m)
		if err != nil {
			fmt.Fprintln(w, util.TerminalYellow+err.Error()+util.TerminalReset)
			continue
		}
		result.Report(w, posName, negName)
		results = append(results, result)
	}
	return results
}
