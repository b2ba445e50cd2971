package document

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digitaldrywood/invoicegen/internal/invoice"
	"github.com/digitaldrywood/invoicegen/internal/workitems"
)

func TestWritePDFProducesDocument(t *testing.T) {
	doc := &Document{Lines: []string{
		"Invoice",
		"Date: January 01, 2025",
		"",
		"Billing period: December 2024",
	}}
	items := []workitems.WorkItem{
		{
			Date:        time.Date(2024, time.December, 5, 0, 0, 0, 0, time.UTC),
			Topic:       "Maintenance",
			Description: "Dependency updates",
			Hours:       3.5,
		},
		{
			Date:        time.Date(2024, time.December, 20, 0, 0, 0, 0, time.UTC),
			Topic:       "Feature",
			Description: "Report export",
			Hours:       2,
		},
	}
	inv, err := invoice.Build(5.5, "CHF", 100, true)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "invoice.pdf")
	require.NoError(t, doc.WritePDF(path, items, inv))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotEmpty(t, b)
	assert.Equal(t, "%PDF", string(b[:4]))
}

func TestWritePDFWithoutItems(t *testing.T) {
	doc := &Document{Lines: []string{"Invoice"}}
	inv, err := invoice.Build(0, "CHF", 100, false)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "empty.pdf")
	require.NoError(t, doc.WritePDF(path, nil, inv))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
