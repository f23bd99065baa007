package similarity

import (
	"testing"

	"github.com/Aman-CERP/ctxforge/internal/fingerprint"
	"github.com/Aman-CERP/ctxforge/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sectionWithHash(heading string, tokens map[string]int) model.Section {
	return model.Section{Heading: heading, Level: 1, StartLine: 1, EndLine: 5, SimHash: fingerprint.SimHash(tokens)}
}

func TestClusterSections_GroupsNearDuplicatesAcrossFiles(t *testing.T) {
	// Given: three files, two of which share a near-identical "Installation" section
	weights := map[string]int{"run": 3, "npm": 2, "install": 2, "package": 1}
	docA := &model.Document{Path: "a.md", Sections: []model.Section{sectionWithHash("Installation", weights)}}
	docB := &model.Document{Path: "b.md", Sections: []model.Section{sectionWithHash("Installation", weights)}}
	docC := &model.Document{Path: "c.md", Sections: []model.Section{sectionWithHash("Unrelated", map[string]int{"foo": 1, "bar": 1})}}

	files := map[string]*model.Document{"a.md": docA, "b.md": docB, "c.md": docC}

	clusters := ClusterSections(files, 0.9, 2)

	require.Len(t, clusters, 1)
	assert.Equal(t, "Installation", clusters[0].Label)
	assert.Len(t, clusters[0].Sections, 2)
}

func TestClusterSections_ExcludesClustersBelowMinFiles(t *testing.T) {
	weights := map[string]int{"run": 3, "npm": 2}
	docA := &model.Document{Path: "a.md", Sections: []model.Section{
		sectionWithHash("Setup", weights),
		sectionWithHash("Setup copy", weights),
	}}

	files := map[string]*model.Document{"a.md": docA}

	// Only one distinct file contributes, so no cluster should qualify at minFiles=2
	clusters := ClusterSections(files, 0.9, 2)
	assert.Empty(t, clusters)
}
