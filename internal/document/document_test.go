package document

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digitaldrywood/invoicegen/internal/template"
)

func writeTemplate(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "template.txt")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestRenderTextSubstitutesTokens(t *testing.T) {
	path := writeTemplate(t, "Invoice\nDate: [TODAY]\nBilling period: [LAST_MONTH]\n")
	values := template.Values{
		"[TODAY]":      "January 01, 2025",
		"[LAST_MONTH]": "December 2024",
	}

	doc, err := RenderText(path, values)

	require.NoError(t, err)
	assert.Equal(t, 2, doc.Replacements)
	assert.Contains(t, doc.Lines, "Date: January 01, 2025")
	assert.Contains(t, doc.Lines, "Billing period: December 2024")
}

func TestRenderTextReportsZeroReplacements(t *testing.T) {
	path := writeTemplate(t, "No placeholders here\n")

	doc, err := RenderText(path, template.Values{"[TODAY]": "x"})

	require.NoError(t, err)
	assert.Zero(t, doc.Replacements)
}

func TestRenderTextNormalizesLineEndings(t *testing.T) {
	path := writeTemplate(t, "a\r\nb\r\n")

	doc, err := RenderText(path, template.Values{})

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", ""}, doc.Lines)
}

func TestRenderTextMissingTemplate(t *testing.T) {
	_, err := RenderText(filepath.Join(t.TempDir(), "nope.txt"), template.Values{})

	require.Error(t, err)
}

func TestWriteText(t *testing.T) {
	doc := &Document{Lines: []string{"a", "b"}}
	path := filepath.Join(t.TempDir(), "out.txt")

	require.NoError(t, doc.WriteText(path))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a\nb", string(b))
}

func TestCopyPDFCreatesFolderAndCopies(t *testing.T) {
	srcDir := t.TempDir()
	src := filepath.Join(srcDir, "invoice.pdf")
	require.NoError(t, os.WriteFile(src, []byte("%PDF-1.4 fake"), 0o644))
	destBase := t.TempDir()

	dest, err := CopyPDF(src, destBase, "2025-02-03 January 2025")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(destBase, "2025-02-03 January 2025", "invoice.pdf"), dest)
	b, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake", string(b))
}

func TestCopyPDFMissingSource(t *testing.T) {
	_, err := CopyPDF(filepath.Join(t.TempDir(), "nope.pdf"), t.TempDir(), "folder")

	require.Error(t, err)
}
