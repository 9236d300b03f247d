package lexer

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/net/html"

	"github.com/tebeka/snowball"

	"github.com/geekalexis/sentiment/corpus"
	"github.com/geekalexis/sentiment/logger"
)

// ReviewSeparator splits a corpus file into reviews
const ReviewSeparator = "<br /><br />"

// ASCII punctuation and digits are deleted from inside words, so "don't" becomes "dont"
const stripped = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~0123456789"

type Lexer struct {
	content []rune
}

type stat struct {
	token string
	freq  int
}

// NewLexer creates a new Lexer
func NewLexer(content string) *Lexer {
	return &Lexer{[]rune(content)}
}

// TrimLeft trims empty spaces from the left of the content
func (l *Lexer) TrimLeft() {
	for len(l.content) > 0 && unicode.IsSpace(rune(l.content[0])) {
		l.content = l.content[1:]
	}
}

// Chop chops the content by n and returns the chopped content
func (l *Lexer) Chop(n int) (token []rune) {
	token = l.content[:n]
	l.content = l.content[n:]
	return token
}

// ChopWhile chops the content while the predicate f returns true
func (l *Lexer) ChopWhile(f func(rune) bool) (token []rune) {
	n := 0
	for n < len(l.content) && f(l.content[n]) {
		n += 1
	}
	return l.Chop(n)
}

// NextToken returns the next whitespace separated word with punctuation and
// digits removed. Words made only of removed characters are skipped.
func (l *Lexer) NextToken() []rune {
	for {
		l.TrimLeft()

		if len(l.content) == 0 {
			return nil
		}

		word := l.ChopWhile(func(r rune) bool {
			return !unicode.IsSpace(r)
		})

		token := make([]rune, 0, len(word))
		for _, r := range word {
			if !strings.ContainsRune(stripped, r) {
				token = append(token, r)
			}
		}
		if len(token) > 0 {
			return token
		}
	}
}

// Next returns the next token as a string
func (l *Lexer) Next() (string, error) {

	token := l.NextToken()
	if token == nil {
		return "EOF", errors.New("no more tokens")
	}
	return (string(token)), nil
}

// Stemmer selects how words are reduced before they become terms
type Stemmer int

const (
	// NaiveStemmer strips every trailing "s"
	NaiveStemmer Stemmer = iota
	// SnowballStemmer uses the english snowball stemmer
	SnowballStemmer
	// NoStemmer keeps words as they are
	NoStemmer
)

func (s Stemmer) String() string {
	switch s {
	case NaiveStemmer:
		return "naive"
	case SnowballStemmer:
		return "snowball"
	case NoStemmer:
		return "none"
	}
	return fmt.Sprintf("Stemmer(%d)", int(s))
}

// ParseStemmer accepts "naive", "snowball" or "none"
func ParseStemmer(name string) (Stemmer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "naive", "":
		return NaiveStemmer, nil
	case "snowball":
		return SnowballStemmer, nil
	case "none":
		return NoStemmer, nil
	}
	return NaiveStemmer, fmt.Errorf("lexer: unknown stemmer %q", name)
}

type options struct {
	stemmer     Stemmer
	stripMarkup bool
}

type Option func(*options)

func WithStemmer(s Stemmer) Option {
	return func(o *options) {
		o.stemmer = s
	}
}

// WithMarkupStripping removes html markup left inside a review, such as a
// single <br />, before it is tokenized
func WithMarkupStripping(on bool) Option {
	return func(o *options) {
		o.stripMarkup = on
	}
}

// Parse splits a raw corpus into reviews and turns each into a document of
// lowercase, stopword free, stemmed tokens.
func Parse(raw string, opts ...Option) corpus.Corpus {
	o := options{stemmer: NaiveStemmer}
	for _, opt := range opts {
		opt(&o)
	}

	stem := func(word string) string { return word }
	switch o.stemmer {
	case NaiveStemmer:
		stem = func(word string) string { return strings.TrimRight(word, "s") }
	case SnowballStemmer:
		stemmer, err := snowball.New("english")
		if err != nil {
			logger.HandleError(err)
			stem = func(word string) string { return strings.TrimRight(word, "s") }
			break
		}
		defer stemmer.Close()
		stem = stemmer.Stem
	}

	reviews := strings.Split(raw, ReviewSeparator)
	c := make(corpus.Corpus, 0, len(reviews))
	for _, review := range reviews {
		if o.stripMarkup {
			review = ParseHtmlTextContent(review)
		}

		doc := corpus.Document{}
		reviewLexer := NewLexer(review)
		for {
			token, err := reviewLexer.Next()
			if err != nil {
				break
			}
			word := strings.ToLower(token)
			if IsStopword(word) {
				continue
			}
			doc = append(doc, stem(word))
		}
		c = append(c, doc)
	}
	return c
}

// Tokenizer returns Parse bound to opts
func Tokenizer(opts ...Option) corpus.Tokenizer {
	return func(raw string) corpus.Corpus {
		return Parse(raw, opts...)
	}
}

// ParseHtmlTextContent returns the text of an html fragment with the markup
// replaced by spaces
func ParseHtmlTextContent(htmlContent string) string {
	var content strings.Builder

	d := html.NewTokenizer(strings.NewReader(htmlContent))
	for {
		tt := d.Next()
		switch tt {
		case html.ErrorToken:
			return content.String()
		case html.TextToken:
			content.Write(d.Text())
		default:
			content.WriteByte(' ')
		}
	}
}

// Utility function to sort a map by value
func MapToSortedSlice(m map[string]int) (stats []stat) {
	for k, v := range m {
		stats = append(stats, struct {
			token string
			freq  int
		}{k, v})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].freq == stats[j].freq {
			return stats[i].token < stats[j].token
		}
		return stats[i].freq > stats[j].freq
	})

	return stats
}

// TopTerms returns up to n of the most frequent terms of c as "term (count)"
func TopTerms(c corpus.Corpus, n int) []string {
	counts := make(map[string]int)
	for _, doc := range c {
		for _, term := range doc {
			counts[term] += 1
		}
	}

	stats := MapToSortedSlice(counts)
	if len(stats) > n {
		stats = stats[:n]
	}
	top := make([]string, len(stats))
	for i, s := range stats {
		top[i] = fmt.Sprintf("%s (%d)", s.token, s.freq)
	}
	return top
}
