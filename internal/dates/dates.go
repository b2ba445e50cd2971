// Package dates derives the calendar strings substituted into invoice
// templates and folder names from a single reference date.
package dates

import (
	"fmt"
	"time"
)

const (
	dayLayout   = "January 02, 2006"
	monthLayout = "January 2006"
	isoLayout   = "2006-01-02"
)

// Triple holds the three substitution strings computed from one reference
// date. It is recomputed on every run and never persisted.
type Triple struct {
	Today     string
	LastMonth string
	PayByDate string
}

// Resolve computes the substitution strings for a reference date.
func Resolve(ref time.Time) Triple {
	return Triple{
		Today:     ref.Format(dayLayout),
		LastMonth: LastMonthDate(ref).Format(monthLayout),
		PayByDate: ref.AddDate(0, 0, 30).Format(dayLayout),
	}
}

// LastMonthDate returns the last day of the month preceding ref's month.
// Going back from the first of the current month handles the January to
// December rollover.
func LastMonthDate(ref time.Time) time.Time {
	firstOfMonth := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	return firstOfMonth.AddDate(0, 0, -1)
}

// FolderName names the invoice folder for the default billing target:
// today's date followed by the billed month, e.g. "2025-02-03 January 2025".
func FolderName(ref time.Time) string {
	return ref.Format(isoLayout) + " " + LastMonthDate(ref).Format(monthLayout)
}

// Period is a billing date range, inclusive on both ends.
type Period struct {
	From time.Time
	To   time.Time
}

// NewPeriod validates the range and applies the single-month extension rule:
// when both ends fall in the same month, To is pushed to that month's last
// day so a bare "period_from = period_to = first of month" bills the whole
// month.
func NewPeriod(from, to time.Time) (Period, error) {
	if from.After(to) {
		return Period{}, fmt.Errorf("period start %s is after period end %s",
			from.Format(isoLayout), to.Format(isoLayout))
	}
	if from.Year() == to.Year() && from.Month() == to.Month() {
		to = time.Date(to.Year(), to.Month(), 1, 0, 0, 0, 0, to.Location()).AddDate(0, 1, -1)
	}
	return Period{From: from, To: to}, nil
}

// LastMonthPeriod is the default billing period: the whole calendar month
// preceding ref.
func LastMonthPeriod(ref time.Time) Period {
	last := LastMonthDate(ref)
	first := time.Date(last.Year(), last.Month(), 1, 0, 0, 0, 0, last.Location())
	return Period{From: first, To: last}
}

// Contains reports whether d's calendar date falls within the period.
// Comparison is by date components, so a period built in one zone still
// matches rows parsed in another.
func (p Period) Contains(d time.Time) bool {
	day := dateOnly(d)
	return !day.Before(dateOnly(p.From)) && !day.After(dateOnly(p.To))
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Display renders the period for documents. A period inside one month
// collapses to "January 2025"; anything longer spells out both ends.
func (p Period) Display() string {
	if p.oneMonth() {
		return p.From.Format(monthLayout)
	}
	return fmt.Sprintf("%s - %s", p.From.Format("January 2, 2006"), p.To.Format("January 2, 2006"))
}

// FolderName names the invoice folder for a custom period.
func (p Period) FolderName() string {
	return p.From.Format(isoLayout) + " " + p.Display()
}

func (p Period) oneMonth() bool {
	return p.From.Year() == p.To.Year() && p.From.Month() == p.To.Month()
}
