// Package template resolves placeholder tokens in invoice templates and
// filenames. A token is a bracketed marker like [TODAY]; substitution is a
// single mapping applied in one pass, so a new placeholder is one Set call.
package template

import (
	"strings"

	"github.com/digitaldrywood/invoicegen/internal/dates"
)

// Values maps placeholder tokens to their resolved strings.
type Values map[string]string

// FromDates builds the base token map from a resolved date triple.
func FromDates(t dates.Triple) Values {
	return Values{
		"[TODAY]":       t.Today,
		"[LAST_MONTH]":  t.LastMonth,
		"[PAY_BY_DATE]": t.PayByDate,
	}
}

// Set adds or overrides a token.
func (v Values) Set(token, value string) {
	v[token] = value
}

// Apply substitutes every known token in s and reports how many occurrences
// were replaced. Markers without a mapping pass through untouched, so
// templates may carry placeholders this version does not resolve yet.
func (v Values) Apply(s string) (string, int) {
	if len(v) == 0 {
		return s, 0
	}

	count := 0
	pairs := make([]string, 0, len(v)*2)
	for token, value := range v {
		count += strings.Count(s, token)
		pairs = append(pairs, token, value)
	}
	return strings.NewReplacer(pairs...).Replace(s), count
}
