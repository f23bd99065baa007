package assembler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdmitSection_FitsWholesaleWhenUnderBudget(t *testing.T) {
	body := "short body"
	got, used, ok := admitSection(body, 100)

	require.True(t, ok)
	assert.Equal(t, body, got)
	assert.Equal(t, EstimateTokens(body), used)
}

func TestAdmitSection_TruncatesAtSentenceBoundaryWhenOverBudget(t *testing.T) {
	body := "First sentence is here. Second sentence follows after that. Third one too."
	got, used, ok := admitSection(body, 10)

	require.True(t, ok)
	assert.LessOrEqual(t, used, 10)
	assert.True(t, got == "" || got[len(got)-1] == '.' || got[len(got)-1] == ' ')
}

func TestAdmitSection_ZeroBudgetNeverAdmits(t *testing.T) {
	_, _, ok := admitSection("anything", 0)
	assert.False(t, ok)
}
