package assembler

import (
	"testing"
	"time"

	"github.com/Aman-CERP/ctxforge/internal/analyzer"
	cferrors "github.com/Aman-CERP/ctxforge/internal/errors"
	"github.com/Aman-CERP/ctxforge/internal/model"
	"github.com/Aman-CERP/ctxforge/internal/rank"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTermFreq tokenizes text the same way the analyzer would, so test
// fixtures stay consistent with whatever the stemmer actually does without
// hardcoding its output.
func buildTermFreq(words ...string) map[string]int {
	tf := make(map[string]int)
	for _, w := range words {
		tf[analyzer.Stem(w)]++
	}
	return tf
}

func newFixtureIndex() *model.ForwardIndex {
	deployBody := "Kubernetes Deployment Guide\n\nSteps to deploy a kubernetes cluster safely."
	deploySection := model.Section{Heading: "Kubernetes Deployment Guide", Level: 1, StartLine: 1, EndLine: 4, Body: deployBody}
	deployDoc := &model.Document{
		Path:      "docs/runbook/deploy.md",
		ModTime:   time.Unix(0, 0),
		Sections:  []model.Section{deploySection},
		TermFreq:  buildTermFreq("kubernetes", "deployment", "guide", "steps", "deploy", "kubernetes", "cluster", "safely"),
		DocLength: 8,
	}

	otherBody := "Frontend Styling\n\nNotes on CSS and React components."
	otherSection := model.Section{Heading: "Frontend Styling", Level: 1, StartLine: 1, EndLine: 4, Body: otherBody}
	otherDoc := &model.Document{
		Path:      "docs/frontend.md",
		ModTime:   time.Unix(0, 0),
		Sections:  []model.Section{otherSection},
		TermFreq:  buildTermFreq("frontend", "styling", "notes", "css", "react", "components"),
		DocLength: 6,
	}

	idf := make(map[string]float64)
	for term := range deployDoc.TermFreq {
		idf[term] = 2.0
	}
	for term := range otherDoc.TermFreq {
		idf[term] = 2.0
	}

	return &model.ForwardIndex{
		Files:        map[string]*model.Document{deployDoc.Path: deployDoc, otherDoc.Path: otherDoc},
		AvgDocLength: 7,
		IDF:          idf,
	}
}

func TestAssemble_EmptyQueryReturnsEmptyQueryError(t *testing.T) {
	fi := newFixtureIndex()
	a := New("", fi, rank.DefaultConfig())

	_, err := a.Assemble(DefaultRequest("   "))

	require.Error(t, err)
	assert.Equal(t, cferrors.CodeEmptyQuery, cferrors.GetCode(err))
}

func TestAssemble_NilIndexReturnsIndexMissing(t *testing.T) {
	a := New("", nil, rank.DefaultConfig())

	_, err := a.Assemble(DefaultRequest("kubernetes"))

	require.Error(t, err)
	assert.Equal(t, cferrors.CodeIndexMissing, cferrors.GetCode(err))
}

func TestAssemble_RelevantQueryProducesNonEmptyDigest(t *testing.T) {
	fi := newFixtureIndex()
	a := New("", fi, rank.DefaultConfig())

	digest, err := a.Assemble(DefaultRequest("kubernetes deployment"))

	require.NoError(t, err)
	require.NotNil(t, digest)
	assert.False(t, digest.Partial)
	require.Len(t, digest.Primary, 1)
	assert.Equal(t, "docs/runbook/deploy.md", digest.Primary[0].Path)
	assert.Contains(t, digest.Markdown, "Kubernetes Deployment Guide")
}

func TestAssemble_TinyTokenBudgetStillEnforcesLimit(t *testing.T) {
	fi := newFixtureIndex()
	a := New("", fi, rank.DefaultConfig())

	req := DefaultRequest("kubernetes deployment")
	req.MaxTokens = 5

	digest, err := a.Assemble(req)

	require.NoError(t, err)
	require.NotNil(t, digest)
	// Then: the estimated token count never exceeds the budget plus the
	// single largest admitted section's own size
	assert.LessOrEqual(t, digest.EstimatedTokens, req.MaxTokens+EstimateTokens(fi.Files["docs/runbook/deploy.md"].Sections[0].Body))
}

func TestAssemble_UnrelatedQueryYieldsPartialDigest(t *testing.T) {
	fi := newFixtureIndex()
	a := New("", fi, rank.DefaultConfig())

	digest, err := a.Assemble(DefaultRequest("blockchain nonexistentterm"))

	require.NoError(t, err)
	require.NotNil(t, digest)
	assert.True(t, digest.Partial)
	assert.Empty(t, digest.Primary)
}
