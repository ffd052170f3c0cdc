package details

import (
	"fmt"
	"io"
	"strings"

	"github.com/AbdulWasayUl/go-country-explorer/internal/state"
	"github.com/AbdulWasayUl/go-country-explorer/services/country"
	"github.com/AbdulWasayUl/go-country-explorer/services/currency"
	"github.com/AbdulWasayUl/go-country-explorer/services/geo"
	"github.com/AbdulWasayUl/go-country-explorer/services/mapview"
	"github.com/AbdulWasayUl/go-country-explorer/services/weather"
)

// sampleAmount is what the converter shows before the user types anything.
const sampleAmount = "1"

type MapView struct {
	Status   mapview.Status
	Region   geo.Region
	Markers  []mapview.Marker
	Fallback *mapview.Fallback
}

// View is a point-in-time copy of every component's state.
type View struct {
	SessionID  string
	Code       string
	Profile    state.State[country.Country]
	Map        *MapView
	Weather    state.State[weather.Report]
	Unit       weather.Unit
	Currency   state.State[currency.Table]
	Conversion *currency.Result
}

func (s *Screen) View() View {
	v := View{
		SessionID: s.ID.String(),
		Code:      s.Code,
		Profile:   s.profile.Snapshot(),
		Weather:   s.weather.State(),
		Unit:      s.weather.Unit(),
		Currency:  s.currency.State(),
	}

	if mv := s.Map(); mv != nil {
		m := &MapView{
			Status:  mv.Status(),
			Region:  mv.Region(),
			Markers: mv.Markers(),
		}
		if fb, ok := mv.Fallback(); ok {
			m.Fallback = &fb
		}
		v.Map = m
	}
	if res, ok := s.currency.Convert(sampleAmount); ok {
		v.Conversion = &res
	}
	return v
}

// Render writes v as plain text. Every section renders something, whatever
// state its component is in.
func Render(w io.Writer, v View) error {
	var b strings.Builder

	fmt.Fprintf(&b, "=== %s (session %s) ===\n", v.Code, v.SessionID)
	renderProfile(&b, v.Profile)
	if v.Profile.IsReady() {
		renderMap(&b, v.Map)
		renderWeather(&b, v.Weather, v.Unit)
		renderCurrency(&b, v.Currency, v.Conversion)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func renderProfile(b *strings.Builder, st state.State[country.Country]) {
	switch st.Status {
	case state.Ready:
	case state.Failed:
		fmt.Fprintf(b, "Country: error: %v\n", st.Err)
		return
	default:
		fmt.Fprintf(b, "Country: %s\n", st.Status)
		return
	}

	c := st.Data
	fmt.Fprintf(b, "Country:     %s (%s)\n", c.Name.Common, c.Name.Official)
	fmt.Fprintf(b, "Capital:     %s\n", orNA(c.PrimaryCapital()))
	fmt.Fprintf(b, "Region:      %s / %s\n", orNA(c.Region), orNA(c.Subregion))
	fmt.Fprintf(b, "Population:  %s\n", c.FormattedPopulation())
	if c.Area > 0 {
		fmt.Fprintf(b, "Area:        %s km²\n", country.FormatArea(c.Area))
	}
	fmt.Fprintf(b, "Languages:   %s\n", orNA(strings.Join(c.LanguageNames(), ", ")))
	fmt.Fprintf(b, "Calling:     %s\n", orNA(c.CallingCode()))
	fmt.Fprintf(b, "Drives on:   %s\n", orNA(c.CarSide))
	if c.HasCoordinates() {
		fmt.Fprintf(b, "Coordinates: %s, %s\n", country.LatitudeLabel(c.LatLng[0]), country.LongitudeLabel(c.LatLng[1]))
	}
}

func renderMap(b *strings.Builder, m *MapView) {
	if m == nil {
		b.WriteString("Map:         loading\n")
		return
	}
	if !m.Region.Precise {
		b.WriteString("Map:         no precise location\n")
	}
	switch {
	case m.Fallback != nil:
		fmt.Fprintf(b, "Map:         static (%s): %s\n", m.Status, m.Fallback.StaticMapURL)
	default:
		fmt.Fprintf(b, "Map:         %s, centre %.2f,%.2f span %.0f°\n",
			m.Status, m.Region.CenterLat, m.Region.CenterLng, m.Region.LatSpan)
	}
	for _, mk := range m.Markers {
		fmt.Fprintf(b, "  marker %s (%.2f, %.2f)\n", mk.Title, mk.Lat, mk.Lng)
	}
}

func renderWeather(b *strings.Builder, st state.State[weather.Report], unit weather.Unit) {
	switch st.Status {
	case state.Ready:
	case state.Failed:
		fmt.Fprintf(b, "Weather:     error: %v\n", st.Err)
		return
	default:
		fmt.Fprintf(b, "Weather:     %s\n", st.Status)
		return
	}

	r := st.Data
	cur := r.Current
	fmt.Fprintf(b, "Weather:     %s, %s (%s / %s), humidity %.0f%%, wind %d km/h\n",
		weather.FormatTemp(cur.TemperatureC, unit), orNA(cur.ConditionText),
		weather.FormatTemp(cur.MinTemperatureC, unit), weather.FormatTemp(cur.MaxTemperatureC, unit),
		cur.HumidityPercent, weather.WindKPH(cur.WindSpeedMS))
	for _, d := range r.Forecast {
		fmt.Fprintf(b, "  %s %s %s\n", d.Label, weather.FormatTemp(d.TemperatureC, unit), d.ConditionMain)
	}
}

func renderCurrency(b *strings.Builder, st state.State[currency.Table], res *currency.Result) {
	switch st.Status {
	case state.Ready:
	case state.Failed:
		fmt.Fprintf(b, "Currency:    error: %v\n", st.Err)
		return
	default:
		fmt.Fprintf(b, "Currency:    %s\n", st.Status)
		return
	}

	fmt.Fprintf(b, "Currency:    %d currencies against %s\n", len(st.Data.Rates), st.Data.Base)
	if res != nil {
		fmt.Fprintf(b, "  %s\n", res.Summary())
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
