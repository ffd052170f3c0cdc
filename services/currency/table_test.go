package currency

import (
	"errors"
	"testing"

	"github.com/AbdulWasayUl/go-country-explorer/internal/apperrors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() Table {
	return Table{
		Base: "USD",
		Rates: map[string]decimal.Decimal{
			"USD": decimal.NewFromInt(1),
			"EUR": decimal.RequireFromString("0.9"),
			"JPY": decimal.NewFromInt(150),
			"GBP": decimal.RequireFromString("0.79"),
			"XXX": decimal.Zero,
		},
	}
}

func TestTableConvert(t *testing.T) {
	tests := []struct {
		name       string
		amount     string
		from, to   string
		wantAmount string
		wantRate   string
	}{
		{"cross rate through base", "10", "EUR", "JPY", "1666.67", "166.6667"},
		{"identity on base", "100", "USD", "USD", "100.00", "1.0000"},
		{"from base", "2", "USD", "EUR", "1.80", "0.9000"},
		{"to base", "90", "EUR", "USD", "100.00", "1.1111"},
		{"identity off base", "7.5", "JPY", "JPY", "7.50", "1.0000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := sampleTable().Convert(ConversionRequest{
				Amount: decimal.RequireFromString(tt.amount),
				From:   tt.from,
				To:     tt.to,
			})

			require.NoError(t, err)
			assert.Equal(t, tt.wantAmount, res.FormattedAmount())
			assert.Equal(t, tt.wantRate, res.FormattedRate())
		})
	}
}

func TestTableConvertRoundTrip(t *testing.T) {
	table := sampleTable()
	pairs := [][2]string{{"EUR", "JPY"}, {"GBP", "EUR"}, {"JPY", "USD"}, {"USD", "GBP"}}

	for _, amount := range []string{"0.01", "1", "19.99", "12345.67"} {
		x := decimal.RequireFromString(amount)
		for _, p := range pairs {
			there, err := table.Convert(ConversionRequest{Amount: x, From: p[0], To: p[1]})
			require.NoError(t, err)
			back, err := table.Convert(ConversionRequest{Amount: there.Amount, From: p[1], To: p[0]})
			require.NoError(t, err)

			assert.Equal(t, x.StringFixed(2), back.FormattedAmount(), "%s %s->%s->%s", amount, p[0], p[1], p[0])
		}
	}
}

func TestTableConvertErrors(t *testing.T) {
	table := sampleTable()
	one := decimal.NewFromInt(1)

	_, err := table.Convert(ConversionRequest{Amount: one, From: "EUR", To: "ABC"})
	assert.True(t, errors.Is(err, apperrors.ErrUnknownCurrency))

	_, err = table.Convert(ConversionRequest{Amount: one, From: "XXX", To: "EUR"})
	assert.True(t, errors.Is(err, apperrors.ErrUnknownCurrency), "zero rate is unusable")

	_, err = table.Convert(ConversionRequest{Amount: one, From: "eur", To: "JPY"})
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	_, err = table.Convert(ConversionRequest{Amount: one, From: "", To: "JPY"})
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestTableCodes(t *testing.T) {
	assert.Equal(t, []string{"EUR", "GBP", "JPY", "USD", "XXX"}, sampleTable().Codes())
	assert.True(t, sampleTable().Has("USD"))
	assert.False(t, sampleTable().Has("CHF"))
}

func TestResultSummary(t *testing.T) {
	res, err := sampleTable().Convert(ConversionRequest{Amount: decimal.NewFromInt(10), From: "EUR", To: "JPY"})

	require.NoError(t, err)
	assert.Equal(t, "10.00 EUR = 1666.67 JPY (1 EUR = 166.6667 JPY)", res.Summary())
}
