package corpus

// A Document is one tokenized review. Token order carries no meaning to the
// models but is kept as read.
type Document []string

// A Corpus is an ordered collection of documents sharing one label.
type Corpus []Document

// TokenCount returns the raw token length of the whole corpus, counting every
// token whether or not it ends up in a vocabulary.
func (c Corpus) TokenCount() int {
	var n int
	for _, doc := range c {
		n += len(doc)
	}
	return n
}

// Tokenizer turns the raw text of a corpus file into documents
type Tokenizer func(raw string) Corpus
