package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/geekalexis/sentiment/cli"
	"github.com/geekalexis/sentiment/config"
	"github.com/geekalexis/sentiment/eval"
	"github.com/geekalexis/sentiment/metrics"
	"github.com/geekalexis/sentiment/server"
)

func help() {
	fmt.Println("Sentiment - Naive Bayes review classifier written in Go")
	fmt.Println("Version: 0.1")
	fmt.Println("License: MIT")

	fmt.Println("Usage: PROGRAM [OPTIONS] TRAIN_POS TRAIN_NEG TEST_POS TEST_NEG")
	fmt.Println("       PROGRAM [OPTIONS] [SUBCOMMAND]")
	fmt.Println("----------------------------------")
	fmt.Println("Subcommands:")
	fmt.Println("    cli [DIR]:                      train on a dataset under DIR (default ./data) and classify typed reviews")
	fmt.Println("    serve [DIR]:                    start the classification server, datasets are read from DIR")
	fmt.Println("    help:                           list all commands")
	fmt.Println("----------------------------------")
	fmt.Println("Options:")
	flag.PrintDefaults()
}

// Trains and evaluates the three standard models on the given files
func runBatch(cfg config.Config, trainPos, trainNeg, testPos, testNeg string) error {
	fmt.Println("Estimated runtime: 10 seconds")
	fmt.Println("\nParsing texts...")
	train, err := eval.LoadDataset(trainPos, trainNeg, cfg)
	if err != nil {
		return err
	}
	test, err := eval.LoadDataset(testPos, testNeg, cfg)
	if err != nil {
		return err
	}
	fmt.Println("Done.")

	eval.RunAll(os.Stdout, eval.Suite(cfg), train, test, testPos, testNeg, nil)
	return nil
}

func dataRoot(args []string) string {
	if len(args) > 1 {
		return args[1]
	}
	return "./data"
}

func main() {
	configPath := flag.String("config", "", "YAML configuration file.")
	cfg := config.Default()
	config.RegisterFlags(flag.CommandLine, &cfg)
	flag.Usage = help
	flag.Parse()

	// Load the file first so that explicitly passed flags win
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = loaded
		flag.Parse()
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	args := flag.Args()
	if len(args) < 1 {
		help()
		os.Exit(1)
	}

	switch args[0] {
	case "cli":
		if err := cli.InitialPrompt(cfg, dataRoot(args), metrics.New()); err != nil {
			log.Fatal(err)
		}

	case "serve":
		s := server.New(cfg, dataRoot(args), metrics.New())
		log.Fatal(s.Serve())

	case "help", "-help":
		help()

	default:
		if len(args) != 4 {
			help()
			os.Exit(1)
		}
		if err := runBatch(cfg, args[0], args[1], args[2], args[3]); err != nil {
			log.Fatal(err)
		}
	}
}
