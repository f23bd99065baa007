package linkgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInferDocType_MatchesKnownSubstrings(t *testing.T) {
	assert.Equal(t, TypeADR, InferDocType("docs/adr/0001-use-postgres.md"))
	assert.Equal(t, TypeArchitecture, InferDocType("docs/architecture/overview.md"))
	assert.Equal(t, TypeRunbook, InferDocType("ops/runbooks/deploy.md"))
	assert.Equal(t, TypeUnknown, InferDocType("docs/misc/notes.md"))
}

func TestInferDocType_FirstRuleWins(t *testing.T) {
	// "architecture" appears before "testing" in the rule table
	got := InferDocType("docs/architecture/testing-approach.md")
	assert.Equal(t, TypeArchitecture, got)
}

func TestDocTypeWeight_UnknownIsTwoTenthsAndBelowADR(t *testing.T) {
	assert.Equal(t, 0.2, DocTypeWeight(TypeUnknown))
	assert.Greater(t, DocTypeWeight(TypeADR), DocTypeWeight(TypeUnknown))
}
