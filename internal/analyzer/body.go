package analyzer

import (
	"os"
	"path/filepath"
)

// LoadSectionBody re-reads the source file at root/path and extracts the
// line range [startLine, endLine), mirroring a Section's "lazily-loadable
// body text": the forward index never persists section bodies, so every
// query-time consumer that needs one re-derives it from the original file.
func LoadSectionBody(root, path string, startLine, endLine int) (string, error) {
	data, err := os.ReadFile(filepath.Join(root, path))
	if err != nil {
		return "", err
	}
	lines := splitLines(decodeValid(data))
	return sectionBody(lines, startLine, endLine), nil
}

func decodeValid(raw []byte) string {
	return toValidUTF8(raw)
}
