package assembler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateTokens_CeilingOfLengthOverFour(t *testing.T) {
	assert.Equal(t, 0, EstimateTokens(""))
	assert.Equal(t, 1, EstimateTokens("abc"))
	assert.Equal(t, 1, EstimateTokens("abcd"))
	assert.Equal(t, 2, EstimateTokens("abcde"))
}

func TestTruncateAtSentence_NeverCutsMidSentence(t *testing.T) {
	text := "First sentence here. Second sentence follows. Third one too."
	got := truncateAtSentence(text, 30)
	assert.True(t, len(got) <= 30 || got == text)
	assert.Contains(t, text, got)
	if got != text {
		assert.Regexp(t, `[.!?]\)?"?$|\s$`, got)
	}
}

func TestTruncateAtSentence_ReturnsWholeTextWhenUnderLimit(t *testing.T) {
	text := "Short text."
	assert.Equal(t, text, truncateAtSentence(text, 100))
}

func TestSnapToAtomicBoundary_NeverLandsInsideCodeFence(t *testing.T) {
	text := "intro text\n```go\nfunc main() {}\n```\nmore text after"
	fenceStart := len("intro text\n")

	// A cut point landing mid-fence snaps back to the fence's start
	cut := snapToAtomicBoundary(text, fenceStart+10)
	assert.Equal(t, fenceStart, cut)
}
