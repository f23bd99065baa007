package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze_IsDeterministicForIdenticalInput(t *testing.T) {
	raw := []byte("# Deploy Guide\n\nSteps to deploy a kubernetes cluster safely.\n")

	a := Analyze(raw)
	b := Analyze(raw)

	assert.Equal(t, a.TermFreq, b.TermFreq)
	assert.Equal(t, a.DocLength, b.DocLength)
	assert.Equal(t, a.Sections, b.Sections)
}

func TestAnalyze_HeadingTokensWeightedDouble(t *testing.T) {
	raw := []byte("# Kubernetes\n\nUnrelated filler body without the term.\n")

	result := Analyze(raw)

	stem := Stem("kubernetes")
	assert.Equal(t, headingWeight, result.TermFreq[stem])
}

func TestAnalyze_SkipsFrontmatterTokensEntirely(t *testing.T) {
	raw := []byte("---\ntitle: zzzzsentinel\n---\n# Heading\n\nbody text.\n")

	result := Analyze(raw)

	assert.NotContains(t, result.TermFreq, Stem("zzzzsentinel"))
}

func TestAnalyze_CodeLinesExcludedFromTermFrequency(t *testing.T) {
	raw := []byte("# Title\n\n```\nsentinelcodeterm\n```\n\nnormal text here.\n")

	result := Analyze(raw)

	assert.NotContains(t, result.TermFreq, Stem("sentinelcodeterm"))
}

func TestTokenizeQuery_DropsStopwordsAndStems(t *testing.T) {
	terms := TokenizeQuery("how to deploy the kubernetes cluster")

	assert.NotContains(t, terms, "the")
	assert.Contains(t, terms, Stem("kubernetes"))
}

func TestSectionTermFreq_WeightsHeadingLineWhenFlagged(t *testing.T) {
	body := "Kubernetes\nsome unrelated body text"

	withHeading := SectionTermFreq(body, true)
	withoutHeading := SectionTermFreq(body, false)

	stem := Stem("kubernetes")
	require.Contains(t, withHeading, stem)
	assert.Greater(t, withHeading[stem], withoutHeading[stem])
}
