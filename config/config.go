package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/geekalexis/sentiment/bayes"
	"github.com/geekalexis/sentiment/lexer"
)

// Config holds the tuneables of the models and of the application around them.
// ReadOnlyCache reuses corpora already cached under CacheDir without writing new ones.
type Config struct {
	Alpha         float64 `yaml:"alpha"`
	MeanPrior     float64 `yaml:"mean_prior"`
	VarPrior      float64 `yaml:"var_prior"`
	Workers       int     `yaml:"workers"`
	Stemmer       string  `yaml:"stemmer"`
	StripMarkup   bool    `yaml:"strip_markup"`
	CacheDir      string  `yaml:"cache_dir"`
	ReadOnlyCache bool    `yaml:"read_only_cache"`
	Addr          string  `yaml:"addr"`
}

// Default returns the calibrated configuration
func Default() Config {
	return Config{
		Alpha:     bayes.DefaultAlpha,
		MeanPrior: bayes.DefaultMeanPrior,
		VarPrior:  bayes.DefaultVarPrior,
		Workers:   runtime.NumCPU(),
		Stemmer:   lexer.NaiveStemmer.String(),
		CacheDir:  "./indexes",
		Addr:      ":8080",
	}
}

// Load reads a YAML file over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("error reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("error parsing config file %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// RegisterFlags binds command line flags to cfg, so flags parsed after Load override the file
func RegisterFlags(fs *flag.FlagSet, cfg *Config) {
	fs.Float64Var(&cfg.Alpha, "alpha", cfg.Alpha, "Laplace smoothing constant of the multinomial model.")
	fs.Float64Var(&cfg.MeanPrior, "mean-prior", cfg.MeanPrior, "Prior mean of the gaussian MAP estimator.")
	fs.Float64Var(&cfg.VarPrior, "var-prior", cfg.VarPrior, "Prior variance of the gaussian MAP estimator.")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "Goroutines used to classify a corpus.")
	fs.StringVar(&cfg.Stemmer, "stemmer", cfg.Stemmer, "Stemmer: naive, snowball or none.")
	fs.BoolVar(&cfg.StripMarkup, "strip-markup", cfg.StripMarkup, "Remove html markup inside reviews.")
	fs.StringVar(&cfg.CacheDir, "cache", cfg.CacheDir, "Directory for tokenized corpora, empty disables caching.")
	fs.BoolVar(&cfg.ReadOnlyCache, "cache-readonly", cfg.ReadOnlyCache, "Read cached corpora but never write them.")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "Listen address of the server.")
}

func (cfg Config) Validate() error {
	if !(cfg.Alpha > 0) {
		return fmt.Errorf("config: alpha must be positive, got %v", cfg.Alpha)
	}
	if !(cfg.MeanPrior > 0) || !(cfg.VarPrior > 0) {
		return fmt.Errorf("config: priors must be positive, got mean %v and variance %v", cfg.MeanPrior, cfg.VarPrior)
	}
	if _, err := lexer.ParseStemmer(cfg.Stemmer); err != nil {
		return err
	}
	return nil
}

// LexerOptions returns the tokenizer options selected by cfg
func (cfg Config) LexerOptions() []lexer.Option {
	stemmer, err := lexer.ParseStemmer(cfg.Stemmer)
	if err != nil {
		stemmer = lexer.NaiveStemmer
	}
	return []lexer.Option{
		lexer.WithStemmer(stemmer),
		lexer.WithMarkupStripping(cfg.StripMarkup),
	}
}
