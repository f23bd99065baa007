package analyzer

import porterstemmer "github.com/blevesearch/go-porterstemmer"

// Stem applies the Porter stemming algorithm to a single lowercase token.
// The implementation is a pure function: identical input always produces
// identical output, independent of platform or process.
func Stem(token string) string {
	return porterstemmer.StemString(token)
}
