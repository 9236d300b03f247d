package cli

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/geekalexis/sentiment/config"
	"github.com/geekalexis/sentiment/eval"
	"github.com/geekalexis/sentiment/lexer"
	"github.com/geekalexis/sentiment/metrics"
	"github.com/geekalexis/sentiment/util"
)

//CLI Interface of the sentiment classifier

const (
	optionNewReview     = "○ Sentiment: New Review"
	optionSelectDataset = "○ Sentiment: Select Dataset"
	optionExit          = "○ Sentiment: Exit"
)

// Utility function to show the trained models and their accuracy
func logStatus(results []*eval.Result) {
	for _, r := range results {
		fmt.Printf(util.TerminalGreen+"%s | %d terms | accuracy %.4f\n"+util.TerminalReset, r.Name, r.Model.Vocabulary().Len(), r.Accuracy)
	}
	fmt.Println("Type a review or press Ctrl+C to exit")
}

// Utility function to pick the models to train
func selectRuns(runs []eval.Run) ([]eval.Run, error) {
	options := []string{}
	byName := map[string]eval.Run{}
	for _, run := range runs {
		options = append(options, run.Name)
		byName[run.Name] = run
	}

	prompt := &survey.MultiSelect{
		Message: "Select the models to train:",
		Options: options,
		Default: options,
	}

	var selected []string
	if err := survey.AskOne(prompt, &selected, survey.WithValidator(survey.MinItems(1))); err != nil {
		return nil, err
	}

	chosen := []eval.Run{}
	for _, name := range selected {
		chosen = append(chosen, byName[name])
	}
	return chosen, nil
}

// Start the CLI. Returns nil when the user exits.
func InitialPrompt(cfg config.Config, dataRoot string, m *metrics.Metrics) error {
	for {
		dir, err := util.SelectDataset(dataRoot)
		if err != nil {
			return exitOnInterrupt(err)
		}

		runs, err := selectRuns(eval.Suite(cfg))
		if err != nil {
			return exitOnInterrupt(err)
		}

		fmt.Println("Parsing texts in dataset: ", dir)
		train, test, err := eval.LoadDir(dir, cfg)
		if err != nil {
			return err
		}

		results := []*eval.Result{}
		for _, run := range runs {
			result, err := eval.Evaluate(run, train, test, m)
			if err != nil {
				log.Println(util.TerminalRed, err, util.TerminalReset)
				continue
			}
			result.Report(os.Stdout, filepath.Join(dir, util.TestPosFile), filepath.Join(dir, util.TestNegFile))
			results = append(results, result)
		}
		if len(results) == 0 {
			log.Println(util.TerminalRed + "No model could be trained, select another dataset" + util.TerminalReset)
			continue
		}

		next, err := StartReviewPrompt(cfg, results)
		if err != nil || next != optionSelectDataset {
			return exitOnInterrupt(err)
		}
	}
}

// StartReviewPrompt classifies typed reviews until the user picks another
// action, which it returns.
func StartReviewPrompt(cfg config.Config, results []*eval.Result) (string, error) {
	logStatus(results)
	for {
		prompt := &survey.Input{
			Message: "Enter a review:",
		}

		var review string
		fmt.Println()
		if err := survey.AskOne(prompt, &review); err != nil {
			return "", err
		}

		classifyReview(cfg, review, results)

		actions := &survey.Select{
			Message: "Next:",
			Options: []string{optionNewReview, optionSelectDataset, optionExit},
		}
		var selected string
		fmt.Println("------------------------------------------------")
		if err := survey.AskOne(actions, &selected); err != nil {
			return "", err
		}
		if selected != optionNewReview {
			return selected, nil
		}
	}
}

func classifyReview(cfg config.Config, review string, results []*eval.Result) {
	start := time.Now()
	c := lexer.Parse(review, cfg.LexerOptions()...)
	if len(c) == 0 {
		fmt.Println("Review is empty")
		return
	}
	fmt.Println("Terms: ", strings.Join(lexer.TopTerms(c, 10), ", "))

	for _, r := range results {
		predictions, err := r.Model.Classify(c)
		if err != nil {
			log.Println(util.TerminalRed, r.Name, err, util.TerminalReset)
			continue
		}
		for i, positive := range predictions {
			label := util.TerminalRed + "negative"
			if positive {
				label = util.TerminalGreen + "positive"
			}
			fmt.Printf("%s [review %d]: %s%s\n", r.Name, i+1, label, util.TerminalReset)
		}
	}

	log.Println("------------------------------------")
	log.Println(util.TerminalCyan+"Classified ", len(c), " reviews in ", time.Since(start).Milliseconds(), " ms"+util.TerminalReset)
	log.Println("------------------------------------")
}

func exitOnInterrupt(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return nil
	}
	return err
}
