package linkgraph

import (
	"testing"

	"github.com/Aman-CERP/ctxforge/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrokenLinks_DetectsMissingFilePlaceholderAndMissingAnchor(t *testing.T) {
	// Given: a.md references a missing file, a placeholder, and a real file
	// with a bad anchor
	target := &model.Document{
		Path: "target.md",
		Sections: []model.Section{
			{Heading: "Setup", Level: 1, StartLine: 1, EndLine: 5},
		},
	}
	a := &model.Document{
		Path: "a.md",
		References: []model.Reference{
			{Kind: model.RefRelativePath, Raw: "missing.md", SourceLine: 1, Resolved: false},
			{Kind: model.RefRelativePath, Raw: "#", SourceLine: 2, Resolved: false},
			{Kind: model.RefRelativePath, Raw: "target.md#does-not-exist", Target: "target.md", Anchor: "does-not-exist", SourceLine: 3, Resolved: true},
			{Kind: model.RefRelativePath, Raw: "target.md#setup", Target: "target.md", Anchor: "setup", SourceLine: 4, Resolved: true},
		},
	}

	fi := buildIndex(map[string]*model.Document{"a.md": a, "target.md": target})
	broken := BrokenLinks(fi)

	require.Len(t, broken, 3)
	assert.Equal(t, ReasonMissingFile, broken[0].Reason)
	assert.Equal(t, ReasonPlaceholder, broken[1].Reason)
	assert.Equal(t, ReasonMissingAnchor, broken[2].Reason)
	assert.Equal(t, "target.md#does-not-exist", broken[2].RawTarget)
}

func TestBrokenLinks_NoBrokenLinksReturnsEmptyNotNil(t *testing.T) {
	a := &model.Document{Path: "a.md"}
	fi := buildIndex(map[string]*model.Document{"a.md": a})

	got := BrokenLinks(fi)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestBrokenLinks_SetextHeadingsNeverMatchAnchors(t *testing.T) {
	// Given: target.md has only a synthetic level-0 section, no ATX heading
	target := &model.Document{
		Path:     "target.md",
		Sections: []model.Section{{Heading: "", Level: 0, StartLine: 1, EndLine: 3}},
	}
	a := &model.Document{
		Path: "a.md",
		References: []model.Reference{
			{Kind: model.RefRelativePath, Raw: "target.md#intro", Target: "target.md", Anchor: "intro", SourceLine: 1, Resolved: true},
		},
	}
	fi := buildIndex(map[string]*model.Document{"a.md": a, "target.md": target})

	broken := BrokenLinks(fi)
	require.Len(t, broken, 1)
	assert.Equal(t, ReasonMissingAnchor, broken[0].Reason)
}
