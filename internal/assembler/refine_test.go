package assembler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRefine_ShortSectionsReturnedUnchanged(t *testing.T) {
	body := "A short section body."
	assert.Equal(t, body, refine(body, "query"))
}

func TestRefine_NeverDropsCodeFencesOrListItems(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 40; i++ {
		b.WriteString("This is an unrelated filler sentence about nothing useful at all today.\n")
	}
	b.WriteString("```go\nfunc mustKeepThisFence() {}\n```\n")
	b.WriteString("- must keep this list item\n")
	body := b.String()

	got := refine(body, "kubernetes")

	assert.Contains(t, got, "mustKeepThisFence")
	assert.Contains(t, got, "must keep this list item")
}

func TestRefine_KeepsHigherScoringSentencesOverFiller(t *testing.T) {
	var b strings.Builder
	b.WriteString("kubernetes deployment guide covers kubernetes cluster setup in depth. ")
	for i := 0; i < 30; i++ {
		b.WriteString("Completely unrelated filler text goes on and on without any relevant terms. ")
	}
	body := b.String()

	got := refine(body, "kubernetes deployment")

	assert.Contains(t, got, "kubernetes deployment guide")
}
