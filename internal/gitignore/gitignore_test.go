package gitignore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatcher_SimpleFilePattern(t *testing.T) {
	m := New()
	m.AddPattern("*.log")

	assert.True(t, m.Match("debug.log", false))
	assert.False(t, m.Match("debug.txt", false))
}

func TestMatcher_DirOnlyPatternIgnoresWholeTree(t *testing.T) {
	m := New()
	m.AddPattern("node_modules/")

	assert.True(t, m.Match("node_modules", true))
	assert.True(t, m.Match("node_modules/pkg/index.js", false))
	assert.False(t, m.Match("vendored/node_modules_backup", true))
}

func TestMatcher_AnchoredPatternOnlyMatchesFromRoot(t *testing.T) {
	m := New()
	m.AddPattern("/build")

	assert.True(t, m.Match("build", true))
	assert.False(t, m.Match("sub/build", true))
}

func TestMatcher_NegationReincludesPath(t *testing.T) {
	m := New()
	m.AddPattern("*.md")
	m.AddPattern("!README.md")

	assert.True(t, m.Match("notes.md", false))
	assert.False(t, m.Match("README.md", false))
}

func TestMatcher_BaseScopesPatternToSubdirectory(t *testing.T) {
	m := New()
	m.AddPatternWithBase("local.md", "docs/drafts")

	assert.True(t, m.Match("docs/drafts/local.md", false))
	assert.False(t, m.Match("docs/local.md", false))
}

func TestMatcher_DoubleStarMatchesAnyDepth(t *testing.T) {
	m := New()
	m.AddPattern("**/generated/*.md")

	assert.True(t, m.Match("a/b/generated/file.md", false))
	assert.True(t, m.Match("generated/file.md", false))
}
