package lexer

// English stopwords from the Stanford CoreNLP list. Entries made only of
// punctuation or containing apostrophes are left out: they cannot survive
// punctuation stripping.
var stopwords = toSet(
	"a", "about", "above", "after", "again", "against", "all", "am", "an", "and", "any",
	"are", "as", "at", "be", "because", "been", "before", "being", "below", "between",
	"both", "but", "by", "can", "cannot", "could", "did", "do", "does", "doing", "down",
	"during", "each", "few", "for", "from", "further", "had", "has", "have", "having", "he",
	"her", "here", "hers", "herself", "him", "himself", "his", "how", "i", "if", "in",
	"into", "is", "it", "its", "itself", "me", "more", "most", "my", "myself", "no", "nor",
	"not", "of", "off", "on", "once", "only", "or", "other", "ought", "our",
	"ourselves", "out", "over", "own", "same", "she", "should", "so", "some", "such",
	"than", "that", "the", "their", "theirs", "them", "themselves", "then", "there",
	"these", "they", "this", "those", "through", "to", "too", "under", "until", "up",
	"very", "was", "we", "were", "what", "when", "where", "which", "while", "who", "whom",
	"why", "with", "would", "you", "your", "yours", "yourself", "yourselves", "return",
	"arent", "cant", "couldnt", "didnt", "doesnt", "dont", "hadnt", "hasnt", "havent",
	"hes", "heres", "hows", "im", "isnt", "lets", "mustnt", "shant", "shes", "shouldnt",
	"thats", "theres", "theyll", "theyre", "theyve", "wasnt", "werent", "whats", "whens",
	"wheres", "whos", "whys", "wont", "wouldnt", "youd", "youll", "youre", "youve",
)

func toSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// IsStopword reports whether the lowercase word is filtered out of documents
func IsStopword(word string) bool {
	_, ok := stopwords[word]
	return ok
}
