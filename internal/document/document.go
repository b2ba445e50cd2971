// Package document produces the client-facing invoice files: the resolved
// text document from the template, the rendered PDF, and the copy into the
// shared folder.
package document

import (
	"fmt"
	"os"
	"strings"

	"github.com/digitaldrywood/invoicegen/internal/template"
)

// Document is an invoice template with its placeholder tokens resolved.
type Document struct {
	Lines        []string
	Replacements int
}

// RenderText loads the template file and substitutes the token map.
// Replacements reports how many token occurrences were resolved; zero means
// the template carried no known placeholders, which callers surface as a
// warning.
func RenderText(templatePath string, values template.Values) (*Document, error) {
	b, err := os.ReadFile(templatePath)
	if err != nil {
		return nil, fmt.Errorf("read template %q: %w", templatePath, err)
	}

	resolved, n := values.Apply(strings.ReplaceAll(string(b), "\r\n", "\n"))
	return &Document{
		Lines:        strings.Split(resolved, "\n"),
		Replacements: n,
	}, nil
}

// WriteText saves the resolved document.
func (d *Document) WriteText(path string) error {
	content := strings.Join(d.Lines, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write invoice document: %w", err)
	}
	return nil
}
