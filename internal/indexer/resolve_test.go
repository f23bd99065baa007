package indexer

import (
	"testing"

	"github.com/Aman-CERP/ctxforge/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestResolveReferences_ResolvesRelativePathAgainstSourceDirectory(t *testing.T) {
	a := &model.Document{Path: "docs/guide.md", References: []model.Reference{
		{Kind: model.RefRelativePath, Target: "../adr/0001-decision.md"},
	}}
	adr := &model.Document{Path: "adr/0001-decision.md"}

	fi := &model.ForwardIndex{Files: map[string]*model.Document{
		"docs/guide.md": a, "adr/0001-decision.md": adr,
	}}

	resolveReferences(fi)

	assert.True(t, a.References[0].Resolved)
	assert.Equal(t, "adr/0001-decision.md", a.References[0].Target)
}

func TestResolveReferences_UnresolvableTargetLeftUnresolved(t *testing.T) {
	a := &model.Document{Path: "docs/guide.md", References: []model.Reference{
		{Kind: model.RefRelativePath, Target: "ghost.md"},
	}}
	fi := &model.ForwardIndex{Files: map[string]*model.Document{"docs/guide.md": a}}

	resolveReferences(fi)

	assert.False(t, a.References[0].Resolved)
}

func TestResolveReferences_IdentifierResolvesViaIdentifierTable(t *testing.T) {
	adr := &model.Document{Path: "adr/0013-use-postgres.md"}
	a := &model.Document{Path: "docs/guide.md", References: []model.Reference{
		{Kind: model.RefIdentifier, Raw: "ADR-013"},
	}}

	fi := &model.ForwardIndex{
		Files:           map[string]*model.Document{"docs/guide.md": a, "adr/0013-use-postgres.md": adr},
		IdentifierKeys:  map[string]string{"0013": "adr/0013-use-postgres.md"},
		IdentifierWidth: 4,
	}

	resolveReferences(fi)

	assert.True(t, a.References[0].Resolved)
	assert.Equal(t, "adr/0013-use-postgres.md", a.References[0].Target)
}

func TestBuildIdentifierTable_PadsToLongestDigitRunMinThree(t *testing.T) {
	table, width := buildIdentifierTable([]string{"adr/ADR-0013-use-postgres.md", "adr/ADR-12-short.md"})

	assert.Equal(t, 4, width)
	assert.Equal(t, "adr/ADR-0013-use-postgres.md", table["0013"])
	assert.Equal(t, "adr/ADR-12-short.md", table["0012"])
}

func TestBuildIdentifierTable_FirstSortedPathWinsKeyCollision(t *testing.T) {
	// Given: paths already in sorted order, as the caller (Build) guarantees
	table, _ := buildIdentifierTable([]string{"adr/ADR-0013-a.md", "adr/ADR-0013-b.md"})

	assert.Equal(t, "adr/ADR-0013-a.md", table["0013"])
}
