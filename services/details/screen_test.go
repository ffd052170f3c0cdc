package details

import (
	"bytes"
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/AbdulWasayUl/go-country-explorer/internal/apperrors"
	"github.com/AbdulWasayUl/go-country-explorer/internal/state"
	"github.com/AbdulWasayUl/go-country-explorer/services/country"
	"github.com/AbdulWasayUl/go-country-explorer/services/currency"
	"github.com/AbdulWasayUl/go-country-explorer/services/geo"
	"github.com/AbdulWasayUl/go-country-explorer/services/mapview"
	"github.com/AbdulWasayUl/go-country-explorer/services/weather"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCountries struct {
	country country.Country
	err     error
}

func (f *fakeCountries) Get(_ context.Context, code string) (country.Country, error) {
	if f.err != nil {
		return country.Country{}, f.err
	}
	return f.country, nil
}

type fakeWeather struct {
	err   error
	calls int32
	block chan struct{}
}

func (f *fakeWeather) Current(ctx context.Context, q weather.Query) (weather.Sample, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return weather.Sample{}, ctx.Err()
		}
	}
	if f.err != nil {
		return weather.Sample{}, f.err
	}
	return weather.Sample{Timestamp: 1717416000, TemperatureC: 21.4, ConditionText: "clear sky"}, nil
}

func (f *fakeWeather) Forecast(ctx context.Context, q weather.Query) ([]weather.Sample, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.err != nil {
		return nil, f.err
	}
	return []weather.Sample{{Timestamp: 1717416000, TemperatureC: 20, ConditionMain: "Clear"}}, nil
}

type fakeRates struct {
	err error
}

func (f *fakeRates) Latest(context.Context) (currency.Table, error) {
	if f.err != nil {
		return currency.Table{}, f.err
	}
	return currency.Table{
		Base: "USD",
		Rates: map[string]decimal.Decimal{
			"USD": decimal.NewFromInt(1),
			"EUR": decimal.RequireFromString("0.9"),
		},
	}, nil
}

type fakeProbe struct {
	err error
}

func (f fakeProbe) Probe(ctx context.Context, _ geo.Region, _ int) error {
	return f.err
}

func france() country.Country {
	return country.Country{
		CCA2:       "FR",
		CCA3:       "FRA",
		Name:       country.Name{Common: "France", Official: "French Republic"},
		Capital:    []string{"Paris"},
		Population: 67391582,
		Area:       551695,
		LatLng:     []float64{46, 2},
		Currencies: country.CurrencySet{
			Codes:  []string{"EUR"},
			ByCode: map[string]country.Currency{"EUR": {Name: "Euro", Symbol: "€"}},
		},
	}
}

func testDeps(w *fakeWeather, r *fakeRates, probeErr error) Deps {
	return Deps{
		Countries: &fakeCountries{country: france()},
		Weather:   w,
		Rates:     r,
		MapOptions: []mapview.Option{
			mapview.WithTimeout(time.Second),
			mapview.WithProber(fakeProbe{err: probeErr}),
		},
		WeatherOptions: []weather.Option{weather.WithLocation(time.UTC)},
	}
}

func mountAndWait(t *testing.T, s *Screen) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	s.Mount(ctx)
	require.NoError(t, s.Wait(ctx))
}

func TestScreenAllReady(t *testing.T) {
	s := NewScreen("fr", testDeps(&fakeWeather{}, &fakeRates{}, nil))
	defer s.Unmount()

	mountAndWait(t, s)
	v := s.View()

	assert.Equal(t, "FR", v.Code)
	assert.NotEmpty(t, v.SessionID)
	assert.True(t, v.Profile.IsReady())
	require.NotNil(t, v.Map)
	assert.Equal(t, mapview.Ready, v.Map.Status)
	assert.Nil(t, v.Map.Fallback)
	assert.True(t, v.Weather.IsReady())
	assert.Equal(t, "Paris,FR", v.Weather.Key)
	assert.True(t, v.Currency.IsReady())
	require.NotNil(t, v.Conversion)
	assert.Equal(t, "EUR", v.Conversion.To)
	assert.Equal(t, "0.90", v.Conversion.FormattedAmount())
}

func TestScreenComponentsDegradeIndependently(t *testing.T) {
	weatherErr := &apperrors.TransportError{Source: "Weather API", StatusCode: 401}
	ratesErr := &apperrors.ApplicationError{Source: "Exchange Rate API", Reason: "invalid-key"}

	s := NewScreen("FR", testDeps(&fakeWeather{err: weatherErr}, &fakeRates{err: ratesErr}, errors.New("tile 503")))
	defer s.Unmount()

	mountAndWait(t, s)
	v := s.View()

	assert.True(t, v.Profile.IsReady())
	assert.True(t, v.Weather.IsFailed())
	assert.True(t, v.Currency.IsFailed())
	require.NotNil(t, v.Map)
	assert.Equal(t, mapview.Failed, v.Map.Status)
	require.NotNil(t, v.Map.Fallback)
	assert.Contains(t, v.Map.Fallback.StaticMapURL, "zoom=4")

	var out bytes.Buffer
	require.NoError(t, Render(&out, v))
	text := out.String()
	assert.Contains(t, text, "France (French Republic)")
	assert.Contains(t, text, "Weather:     error: Weather API error: 401")
	assert.Contains(t, text, "Currency:    error: Exchange Rate API: invalid-key")
	assert.Contains(t, text, "Map:         static (failed)")
}

func TestScreenWithoutCapitalSkipsWeatherRequest(t *testing.T) {
	w := &fakeWeather{}
	deps := testDeps(w, &fakeRates{}, nil)
	c := france()
	c.Capital = nil
	deps.Countries = &fakeCountries{country: c}

	s := NewScreen("FR", deps)
	defer s.Unmount()
	mountAndWait(t, s)

	st := s.View().Weather
	assert.True(t, st.IsFailed())
	assert.True(t, errors.Is(st.Err, apperrors.ErrMissingInput))
	assert.Equal(t, int32(0), atomic.LoadInt32(&w.calls))
	assert.True(t, s.View().Currency.IsReady())
}

func TestScreenProfileFailureStopsEarly(t *testing.T) {
	w := &fakeWeather{}
	deps := testDeps(w, &fakeRates{}, nil)
	deps.Countries = &fakeCountries{err: &apperrors.TransportError{Source: "Country API", StatusCode: 404}}

	s := NewScreen("ZZ", deps)
	defer s.Unmount()
	mountAndWait(t, s)

	v := s.View()
	assert.True(t, v.Profile.IsFailed())
	assert.Nil(t, v.Map)
	assert.Equal(t, state.Idle, v.Weather.Status)
	assert.Equal(t, int32(0), atomic.LoadInt32(&w.calls))

	var out bytes.Buffer
	require.NoError(t, Render(&out, v))
	assert.Contains(t, out.String(), "Country: error: Country API error: 404")
	assert.NotContains(t, out.String(), "Weather")
}

func TestScreenUnmountDropsInFlight(t *testing.T) {
	w := &fakeWeather{block: make(chan struct{})}
	s := NewScreen("FR", testDeps(w, &fakeRates{}, nil))

	s.Mount(context.Background())
	require.Eventually(t, func() bool { return s.View().Weather.IsLoading() }, time.Second, 5*time.Millisecond)

	s.Unmount()
	close(w.block)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Wait(ctx))
	assert.True(t, s.View().Weather.IsLoading(), "late result must not land after unmount")

	s.Mount(context.Background())
	assert.True(t, s.View().Weather.IsLoading(), "mount after unmount is a no-op")
}

func TestExplorerOpenAndRender(t *testing.T) {
	var out bytes.Buffer
	e := &Explorer{Deps: testDeps(&fakeWeather{}, &fakeRates{}, nil), Out: &out, SettleTimeout: 3 * time.Second}

	req := e.Request("FR")
	assert.Equal(t, "FR", req.CountryCode)
	assert.Equal(t, sourceName, req.Source)

	view, err := req.OpenFunc(context.Background(), req.CountryCode)
	require.NoError(t, err)
	require.NoError(t, req.RenderFunc(context.Background(), view))

	text := out.String()
	assert.Contains(t, text, "=== FR")
	assert.Contains(t, text, "Population:  67,391,582")
	assert.Contains(t, text, "Weather:     21°C, clear sky")
	assert.Contains(t, text, "1.00 USD = 0.90 EUR")

	assert.Error(t, req.RenderFunc(context.Background(), "not a view"))
}

func TestExplorerRequests(t *testing.T) {
	e := &Explorer{}

	reqs := e.Requests([]string{"FR", "JP"})

	require.Len(t, reqs, 2)
	assert.Equal(t, "JP", reqs[1].CountryCode)
}
