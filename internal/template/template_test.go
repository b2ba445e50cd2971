package template

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digitaldrywood/invoicegen/internal/config"
	"github.com/digitaldrywood/invoicegen/internal/dates"
)

func testValues() Values {
	return Values{
		"[TODAY]":       "January 01, 2025",
		"[LAST_MONTH]":  "December 2024",
		"[PAY_BY_DATE]": "January 31, 2025",
	}
}

func TestApplyReplacesKnownTokens(t *testing.T) {
	out, n := testValues().Apply("Invoice date: [TODAY], billing [LAST_MONTH], pay by [PAY_BY_DATE]")

	assert.Equal(t, "Invoice date: January 01, 2025, billing December 2024, pay by January 31, 2025", out)
	assert.Equal(t, 3, n)
}

func TestApplyCountsRepeatedTokens(t *testing.T) {
	_, n := testValues().Apply("[TODAY] [TODAY]")

	assert.Equal(t, 2, n)
}

func TestApplyLeavesUnknownTokensUntouched(t *testing.T) {
	out, n := testValues().Apply("total: [MONEY_TOTAL]")

	assert.Equal(t, "total: [MONEY_TOTAL]", out)
	assert.Equal(t, 0, n)
}

func TestApplyIsIdempotent(t *testing.T) {
	values := testValues()
	resolved, _ := values.Apply("Invoice [LAST_MONTH].txt")

	again, n := values.Apply(resolved)

	assert.Equal(t, resolved, again)
	assert.Equal(t, 0, n)
}

func TestFromDates(t *testing.T) {
	triple := dates.Triple{Today: "a", LastMonth: "b", PayByDate: "c"}

	v := FromDates(triple)

	assert.Equal(t, "a", v["[TODAY]"])
	assert.Equal(t, "b", v["[LAST_MONTH]"])
	assert.Equal(t, "c", v["[PAY_BY_DATE]"])
}

func TestSetAddsNewToken(t *testing.T) {
	v := testValues()
	v.Set("[TOTAL_HOURS]", "7.5")

	out, n := v.Apply("hours: [TOTAL_HOURS]")

	assert.Equal(t, "hours: 7.5", out)
	assert.Equal(t, 1, n)
}

func TestResolveFilenameSubstitutesTokens(t *testing.T) {
	dir := t.TempDir()

	got, err := ResolveFilename(filepath.Join(dir, "Invoice [LAST_MONTH].txt"), testValues())

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Invoice December 2024.txt"), got)
}

func TestResolveFilenameNoPathComponent(t *testing.T) {
	_, err := ResolveFilename("Invoice [LAST_MONTH].txt", testValues())

	require.Error(t, err)
	var cerr *config.Error
	assert.ErrorAs(t, err, &cerr)
	assert.Contains(t, err.Error(), "no directory component")
}

func TestResolveFilenameMissingDirectory(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")

	_, err := ResolveFilename(filepath.Join(missing, "Invoice.txt"), testValues())

	require.Error(t, err)
	var cerr *config.Error
	assert.ErrorAs(t, err, &cerr)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestResolveFilenameDirIsFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "plain")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	_, err := ResolveFilename(filepath.Join(file, "Invoice.txt"), testValues())

	require.Error(t, err)
}

func TestResolveFilenameIdempotent(t *testing.T) {
	dir := t.TempDir()
	values := testValues()

	first, err := ResolveFilename(filepath.Join(dir, "Invoice [LAST_MONTH].txt"), values)
	require.NoError(t, err)

	second, err := ResolveFilename(first, values)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
