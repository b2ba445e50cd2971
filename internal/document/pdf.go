package document

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/digitaldrywood/invoicegen/internal/invoice"
	"github.com/digitaldrywood/invoicegen/internal/workitems"
)

var (
	pdfHeaderColor = props.Color{Red: 50, Green: 50, Blue: 50}
	pdfMutedColor  = props.Color{Red: 120, Green: 120, Blue: 120}
	pdfLineColor   = props.Color{Red: 200, Green: 200, Blue: 200}
)

// WritePDF renders the invoice PDF: the resolved template text as the
// header block, the work item table, and the totals.
func (d *Document) WritePDF(path string, items []workitems.WorkItem, inv *invoice.Invoice) error {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		Build()

	m := maroto.New(cfg)

	for i, ln := range d.Lines {
		trimmed := strings.TrimSpace(ln)
		if trimmed == "" {
			m.AddRow(3)
			continue
		}
		if i == 0 {
			m.AddRow(10, text.NewCol(12, trimmed, props.Text{
				Style: fontstyle.Bold,
				Size:  14,
				Color: &pdfHeaderColor,
			}))
			continue
		}
		m.AddRow(5, text.NewCol(12, trimmed, props.Text{
			Size:  9,
			Color: &pdfHeaderColor,
		}))
	}

	m.AddRow(4, line.NewCol(12, props.Line{Color: &pdfLineColor}))

	// Table header
	m.AddRow(7,
		text.NewCol(2, "Date", props.Text{Style: fontstyle.Bold, Size: 9, Color: &pdfHeaderColor}),
		text.NewCol(3, "Topic", props.Text{Style: fontstyle.Bold, Size: 9, Color: &pdfHeaderColor}),
		text.NewCol(5, "Description", props.Text{Style: fontstyle.Bold, Size: 9, Color: &pdfHeaderColor}),
		text.NewCol(2, "Hours", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: &pdfHeaderColor}),
	)

	for _, item := range items {
		m.AddRow(6,
			text.NewCol(2, item.Date.Format("2006-01-02"), props.Text{Size: 9}),
			text.NewCol(3, item.Topic, props.Text{Size: 9}),
			text.NewCol(5, item.Description, props.Text{Size: 9, Color: &pdfMutedColor}),
			text.NewCol(2, formatHours(item.Hours), props.Text{Size: 9, Align: align.Right}),
		)
	}

	m.AddRow(4, line.NewCol(12, props.Line{Color: &pdfLineColor}))

	m.AddRow(7,
		text.NewCol(10, "Total hours", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, formatHours(inv.TotalHours), props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	if inv.VATEnabled {
		m.AddRow(6,
			text.NewCol(10, "Subtotal", props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, inv.Money(inv.Subtotal), props.Text{Size: 9, Align: align.Right}),
		)
		m.AddRow(6,
			text.NewCol(10, "VAT 8.1%", props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, inv.Money(inv.VATAmount), props.Text{Size: 9, Align: align.Right}),
		)
	}
	m.AddRow(8,
		text.NewCol(10, "Total", props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right}),
		text.NewCol(2, inv.Money(inv.Total), props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right}),
	)

	doc, err := m.Generate()
	if err != nil {
		return fmt.Errorf("generate invoice PDF: %w", err)
	}
	if err := doc.Save(path); err != nil {
		return fmt.Errorf("save invoice PDF: %w", err)
	}
	return nil
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}
