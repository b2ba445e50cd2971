// Package workitems turns raw spreadsheet rows into billable work items for
// a target month or custom period. Row schema: column A date, B topic,
// C description, D hours.
package workitems

import (
	"strconv"
	"strings"
	"time"

	"github.com/digitaldrywood/invoicegen/internal/dates"
)

// DefaultDateFormats is the ordered list of layouts accepted for column A.
// The first layout that parses wins, so MM/DD/YYYY shadows DD/MM/YYYY for
// ambiguous values. Override per run via the date_formats config key.
var DefaultDateFormats = []string{
	"2006-01-02",
	"01/02/2006",
	"02/01/2006",
	"2006-01-02 15:04:05",
	"01/02/2006 15:04:05",
}

// WorkItem is one billable unit derived from a spreadsheet row.
type WorkItem struct {
	Date        time.Time
	Topic       string
	Description string
	Hours       float64
}

// Month identifies a target calendar month.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month containing d.
func MonthOf(d time.Time) Month {
	return Month{Year: d.Year(), Month: d.Month()}
}

// Contains reports whether d falls in the month, ignoring the day.
func (m Month) Contains(d time.Time) bool {
	return d.Year() == m.Year && d.Month() == m.Month
}

func (m Month) String() string {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
}

// Summary is the aggregation result. Items keeps the input row order;
// skipped counts surface rows dropped for unparsable dates or hours.
type Summary struct {
	Items        []WorkItem
	TotalHours   float64
	SkippedDates int
	SkippedHours int
}

// Parser parses and aggregates rows using an ordered date-format list.
type Parser struct {
	formats []string
}

// NewParser builds a parser; an empty format list means DefaultDateFormats.
func NewParser(formats []string) Parser {
	if len(formats) == 0 {
		formats = DefaultDateFormats
	}
	return Parser{formats: formats}
}

// ParseDate tries each accepted layout in order. The second return is false
// when no layout matches.
func (p Parser) ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range p.formats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Aggregate filters rows to the target month and sums their hours.
func (p Parser) Aggregate(rows [][]string, month Month) Summary {
	return p.aggregate(rows, month.Contains)
}

// AggregatePeriod is Aggregate for a custom billing period.
func (p Parser) AggregatePeriod(rows [][]string, period dates.Period) Summary {
	return p.aggregate(rows, period.Contains)
}

func (p Parser) aggregate(rows [][]string, inRange func(time.Time) bool) Summary {
	summary := Summary{}
	for _, row := range rows {
		if len(row) < 4 {
			continue
		}

		date, ok := p.ParseDate(row[0])
		if !ok {
			summary.SkippedDates++
			continue
		}
		if !inRange(date) {
			continue
		}

		hours, ok := parseHours(row[3])
		if !ok {
			summary.SkippedHours++
			continue
		}

		summary.Items = append(summary.Items, WorkItem{
			Date:        date,
			Topic:       strings.TrimSpace(row[1]),
			Description: strings.TrimSpace(row[2]),
			Hours:       hours,
		})
		summary.TotalHours += hours
	}
	return summary
}

// parseHours accepts a non-negative decimal. Values that fail a direct parse
// get one more chance with unit suffixes stripped ("3.5h" -> 3.5); negative
// values are rejected either way.
func parseHours(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	if h, err := strconv.ParseFloat(s, 64); err == nil {
		if h < 0 {
			return 0, false
		}
		return h, true
	}

	if strings.HasPrefix(s, "-") {
		return 0, false
	}

	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, s)
	if cleaned == "" {
		return 0, false
	}

	h, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return h, true
}
