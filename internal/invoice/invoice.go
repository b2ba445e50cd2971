// Package invoice computes the money side of an invoice: subtotal, VAT and
// total from the aggregated hours, plus the formatted strings substituted
// into the document.
package invoice

import (
	"fmt"
	"math"
	"strconv"

	"github.com/dustin/go-humanize"
)

// Swiss standard VAT rate applied when the config enables VAT.
const vatRate = 0.081

type Invoice struct {
	Currency   string
	Rate       float64
	TotalHours float64
	VATEnabled bool

	Subtotal  float64
	VATAmount float64
	Total     float64
}

// Build computes invoice amounts from the aggregated hours and the currency
// and rate read from the spreadsheet. A non-positive rate is rejected: it
// means the rate cell is missing or broken, and billing zero silently would
// be worse than failing.
func Build(totalHours float64, currency string, rate float64, vatEnabled bool) (*Invoice, error) {
	if rate <= 0 {
		return nil, fmt.Errorf("hourly rate must be positive, got %v", rate)
	}

	inv := &Invoice{
		Currency:   currency,
		Rate:       rate,
		TotalHours: totalHours,
		VATEnabled: vatEnabled,
	}
	inv.Subtotal = totalHours * rate
	if vatEnabled {
		inv.VATAmount = inv.Subtotal * vatRate
	}
	inv.Total = inv.Subtotal + inv.VATAmount
	return inv, nil
}

// Money renders an amount with the invoice currency, rounded half-up to
// cents and thousand-separated, e.g. "CHF 1,234.50".
func (i *Invoice) Money(amount float64) string {
	return i.Currency + " " + humanize.FormatFloat("#,###.##", roundHalfUp(amount))
}

// RateString is the [RATE] substitution, whole currency units.
func (i *Invoice) RateString() string {
	return fmt.Sprintf("%s %.0f", i.Currency, i.Rate)
}

// Tokens returns the placeholder substitutions this invoice resolves. The
// VAT tokens only appear when VAT is enabled; a VAT-free template keeps its
// markers untouched and visible rather than silently showing zero.
func (i *Invoice) Tokens() map[string]string {
	tokens := map[string]string{
		"[TOTAL_HOURS]": strconv.FormatFloat(i.TotalHours, 'f', -1, 64),
		"[RATE]":        i.RateString(),
		"[MONEY_TOTAL]": i.Money(i.Total),
	}
	if i.VATEnabled {
		tokens["[VAT]"] = i.Money(i.VATAmount)
		tokens["[MONEY_NO_VAT]"] = i.Money(i.Subtotal)
	}
	return tokens
}

// roundHalfUp rounds to cents with 0.5 going up, matching how the amounts
// appear on the printed invoice.
func roundHalfUp(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
