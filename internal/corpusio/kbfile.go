package corpusio

import (
	"fmt"
	"os"
	"strings"

	"github.com/kbfrost/layoutforge/internal/engine"
)

// ReadLayout reads a .kb layout file: whitespace and newlines are
// stripped, and the first 30 remaining characters fill the layout.
// The name is derived from the file's base name by the caller, not
// stored in the file itself.
func ReadLayout(path string) (*engine.Layout, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout %s: %w", path, err)
	}
	layout, err := engine.ParseLayout(string(raw))
	if err != nil {
		return nil, fmt.Errorf("read layout %s: %w", path, err)
	}
	return layout, nil
}

// WriteLayout renders layout and writes it to path, trailed by a
// newline.
func WriteLayout(path string, layout *engine.Layout) error {
	var b strings.Builder
	b.WriteString(layout.Render())
	b.WriteByte('\n')
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write layout %s: %w", path, err)
	}
	return nil
}
