package currency

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/AbdulWasayUl/go-country-explorer/internal/apperrors"
	"github.com/AbdulWasayUl/go-country-explorer/services/country"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	table Table
	err   error
	calls int32
}

func (f *fakeSource) Latest(context.Context) (Table, error) {
	atomic.AddInt32(&f.calls, 1)
	return f.table, f.err
}

func japan() country.Country {
	return country.Country{
		CCA3: "JPN",
		Currencies: country.CurrencySet{
			Codes:  []string{"JPY"},
			ByCode: map[string]country.Currency{"JPY": {Name: "Japanese yen", Symbol: "¥"}},
		},
	}
}

func TestDefaultTarget(t *testing.T) {
	assert.Equal(t, "JPY", DefaultTarget(japan()))
	assert.Equal(t, "USD", DefaultTarget(country.Country{CCA3: "ATA"}))
}

func TestConverterInitializeOnce(t *testing.T) {
	src := &fakeSource{table: sampleTable()}
	cv := NewConverter(src)

	_, err := cv.Initialize(context.Background(), japan())
	require.NoError(t, err)
	_, err = cv.Initialize(context.Background(), japan())
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&src.calls))
	assert.True(t, cv.State().IsReady())

	from, to := cv.Selection()
	assert.Equal(t, "USD", from)
	assert.Equal(t, "JPY", to)
}

func TestConverterFailureIsTerminal(t *testing.T) {
	src := &fakeSource{err: &apperrors.ApplicationError{Source: sourceName, Reason: "invalid-key"}}
	cv := NewConverter(src)

	_, err := cv.Initialize(context.Background(), japan())
	require.Error(t, err)

	_, err = cv.Initialize(context.Background(), japan())
	assert.True(t, errors.Is(err, apperrors.ErrApplication))
	assert.Equal(t, int32(1), atomic.LoadInt32(&src.calls))
	assert.True(t, cv.State().IsFailed())

	_, ok := cv.Convert("10")
	assert.False(t, ok)
}

func TestConverterConvertAndSwap(t *testing.T) {
	src := &fakeSource{table: sampleTable()}
	cv := NewConverter(src)
	_, err := cv.Initialize(context.Background(), japan())
	require.NoError(t, err)

	res, ok := cv.Convert("2")
	require.True(t, ok)
	assert.Equal(t, "300.00", res.FormattedAmount())

	cv.Swap()
	res, ok = cv.Convert("300")
	require.True(t, ok)
	assert.Equal(t, "2.00", res.FormattedAmount())
	assert.Equal(t, "JPY", res.From)

	require.NoError(t, cv.SetFrom("eur"))
	res, ok = cv.Convert(" 10 ")
	require.True(t, ok)
	assert.Equal(t, "11.11", res.FormattedAmount())

	assert.Equal(t, int32(1), atomic.LoadInt32(&src.calls))
}

func TestConverterInvalidAmount(t *testing.T) {
	cv := NewConverter(&fakeSource{table: sampleTable()})
	_, err := cv.Initialize(context.Background(), japan())
	require.NoError(t, err)

	for _, text := range []string{"", "abc", "1,5", "--1"} {
		_, ok := cv.Convert(text)
		assert.False(t, ok, "amount %q", text)
	}
}

func TestConverterSetUnknownCode(t *testing.T) {
	cv := NewConverter(&fakeSource{table: sampleTable()})

	assert.Error(t, cv.SetTo("EUR"), "rates not loaded yet")

	_, err := cv.Initialize(context.Background(), japan())
	require.NoError(t, err)

	err = cv.SetTo("CHF")
	assert.True(t, errors.Is(err, apperrors.ErrUnknownCurrency))
}

func TestConverterFallsBackToBaseWhenTargetMissing(t *testing.T) {
	swiss := country.Country{CCA3: "CHE", Currencies: country.CurrencySet{Codes: []string{"CHF"}}}
	cv := NewConverter(&fakeSource{table: sampleTable()})

	_, err := cv.Initialize(context.Background(), swiss)
	require.NoError(t, err)

	_, to := cv.Selection()
	assert.Equal(t, "USD", to)
}
