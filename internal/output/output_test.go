package output

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriter_StatusSuppressedInJSONMode(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf).WithJSON(true)

	w.Success("built index")

	assert.Empty(t, buf.String())
}

func TestWriter_StatusPrintsIconAndMessageInTextMode(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)

	w.Success("built index")

	assert.Equal(t, "✓ built index\n", buf.String())
}

func TestWriter_ResultEncodesJSONInJSONMode(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf).WithJSON(true)

	w.Result(map[string]int{"count": 3}, func(io.Writer, any) {
		t.Fatal("plain renderer should not run in JSON mode")
	})

	assert.Contains(t, buf.String(), `"count": 3`)
}

func TestWriter_ResultUsesPlainRendererInTextMode(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)

	w.Result("ignored", func(out io.Writer, v any) {
		_, _ = io.WriteString(out, "rendered: "+v.(string))
	})

	assert.Equal(t, "rendered: ignored", buf.String())
}

func TestWriter_RawWritesRegardlessOfMode(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf).WithJSON(true)

	w.Raw("# Markdown\n")

	assert.Equal(t, "# Markdown\n", buf.String())
}
