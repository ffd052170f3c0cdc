// Package geo derives map viewports from country profiles.
package geo

import (
	"github.com/AbdulWasayUl/go-country-explorer/services/country"
)

const (
	// DefaultSpan is used when a country has no usable coordinates.
	DefaultSpan = 50.0
	// UnknownAreaSpan is used when coordinates exist but the area does not.
	UnknownAreaSpan = 5.0
)

// Region is a map viewport: a centre and the latitude/longitude span shown.
type Region struct {
	CenterLat float64
	CenterLng float64
	LatSpan   float64
	LngSpan   float64
	// Precise is false for the default world view.
	Precise bool
}

type band struct {
	above float64
	value float64
}

// spanBands must stay sorted by descending threshold.
var spanBands = []band{
	{5_000_000, 10},
	{1_000_000, 8},
	{500_000, 6},
	{100_000, 4},
	{20_000, 3},
}

const smallestSpan = 2.0

// DefaultRegion is the wide world view centred on (0,0).
func DefaultRegion() Region {
	return Region{LatSpan: DefaultSpan, LngSpan: DefaultSpan}
}

// ComputeRegion centres on the country's coordinates and sizes the span by area.
// It is a pure function and is never cached.
func ComputeRegion(c country.Country) Region {
	if !c.HasCoordinates() {
		return DefaultRegion()
	}
	span := SpanForArea(c.Area)
	return Region{
		CenterLat: c.LatLng[0],
		CenterLng: c.LatLng[1],
		LatSpan:   span,
		LngSpan:   span,
		Precise:   true,
	}
}

// SpanForArea maps an area in km² onto the span staircase. Boundaries belong
// to the lower band. A non-positive area counts as unknown.
func SpanForArea(area float64) float64 {
	if area <= 0 {
		return UnknownAreaSpan
	}
	for _, b := range spanBands {
		if area > b.above {
			return b.value
		}
	}
	return smallestSpan
}
