package invoice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildWithVAT(t *testing.T) {
	inv, err := Build(10, "CHF", 100, true)

	require.NoError(t, err)
	assert.Equal(t, 1000.0, inv.Subtotal)
	assert.InDelta(t, 81.0, inv.VATAmount, 1e-9)
	assert.InDelta(t, 1081.0, inv.Total, 1e-9)
}

func TestBuildWithoutVAT(t *testing.T) {
	inv, err := Build(7.5, "EUR", 120, false)

	require.NoError(t, err)
	assert.Equal(t, 900.0, inv.Subtotal)
	assert.Equal(t, 0.0, inv.VATAmount)
	assert.Equal(t, 900.0, inv.Total)
}

func TestBuildRejectsNonPositiveRate(t *testing.T) {
	_, err := Build(10, "CHF", 0, false)
	require.Error(t, err)

	_, err = Build(10, "CHF", -5, false)
	require.Error(t, err)
}

func TestBuildZeroHours(t *testing.T) {
	inv, err := Build(0, "CHF", 100, true)

	require.NoError(t, err)
	assert.Equal(t, 0.0, inv.Total)
}

func TestMoneyFormatsThousandsAndCents(t *testing.T) {
	inv, err := Build(10, "CHF", 100, true)
	require.NoError(t, err)

	assert.Equal(t, "CHF 1,000.00", inv.Money(inv.Subtotal))
	assert.Equal(t, "CHF 81.00", inv.Money(inv.VATAmount))
	assert.Equal(t, "CHF 1,081.00", inv.Money(inv.Total))
}

func TestMoneyRoundsHalfUp(t *testing.T) {
	inv, err := Build(1, "CHF", 1, false)
	require.NoError(t, err)

	assert.Equal(t, "CHF 0.13", inv.Money(0.125))
	assert.Equal(t, "CHF 0.12", inv.Money(0.124))
}

func TestRateString(t *testing.T) {
	inv, err := Build(1, "CHF", 120, false)
	require.NoError(t, err)

	assert.Equal(t, "CHF 120", inv.RateString())
}

func TestTokensWithVAT(t *testing.T) {
	inv, err := Build(7.5, "CHF", 100, true)
	require.NoError(t, err)

	tokens := inv.Tokens()

	assert.Equal(t, "7.5", tokens["[TOTAL_HOURS]"])
	assert.Equal(t, "CHF 100", tokens["[RATE]"])
	assert.Equal(t, "CHF 750.00", tokens["[MONEY_NO_VAT]"])
	assert.Equal(t, "CHF 60.75", tokens["[VAT]"])
	assert.Equal(t, "CHF 810.75", tokens["[MONEY_TOTAL]"])
}

func TestTokensWithoutVATOmitVATMarkers(t *testing.T) {
	inv, err := Build(5, "EUR", 80, false)
	require.NoError(t, err)

	tokens := inv.Tokens()

	assert.Equal(t, "EUR 400.00", tokens["[MONEY_TOTAL]"])
	assert.NotContains(t, tokens, "[VAT]")
	assert.NotContains(t, tokens, "[MONEY_NO_VAT]")
}
