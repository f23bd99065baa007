package analyzer

import "regexp"

// wordPattern splits on non-alphanumeric runs.
var wordPattern = regexp.MustCompile(`[A-Za-z0-9]+`)

// splitWords extracts raw candidate tokens from a line of text, in their
// original case (normalize lowercases them), without yet dropping
// stopwords or short tokens.
func splitWords(line string) []string {
	return wordPattern.FindAllString(line, -1)
}

// normalize lowercases a raw word. ASCII-only lowercasing matches the
// analyzer's ASCII word pattern.
func normalize(word string) string {
	b := []byte(word)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// acceptToken reports whether a normalized word should be indexed: length
// >= 2 and not a stopword.
func acceptToken(word string) bool {
	if len(word) < 2 {
		return false
	}
	return !isStopword(word)
}
