package country

import (
	"fmt"
	"math"
	"sort"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Identifier is the 3-letter code, falling back to the 2-letter one.
func (c Country) Identifier() string {
	if c.CCA3 != "" {
		return c.CCA3
	}
	return c.CCA2
}

// LocalityCode is the code weather lookups pair with the capital name.
func (c Country) LocalityCode() string {
	if c.CCA2 != "" {
		return c.CCA2
	}
	return c.CCA3
}

// PrimaryCapital returns the first listed capital or "".
func (c Country) PrimaryCapital() string {
	if len(c.Capital) == 0 {
		return ""
	}
	return c.Capital[0]
}

// CallingCode joins the IDD root with its suffix when there is exactly one
// suffix; countries with many suffixes (e.g. "+1") report the root only.
func (c Country) CallingCode() string {
	if c.IDD.Root == "" {
		return ""
	}
	if len(c.IDD.Suffixes) == 1 {
		return c.IDD.Root + c.IDD.Suffixes[0]
	}
	return c.IDD.Root
}

func (c Country) LanguageNames() []string {
	names := make([]string, 0, len(c.Languages))
	for _, name := range c.Languages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FormattedPopulation renders the population with thousands separators.
func (c Country) FormattedPopulation() string {
	return printer.Sprintf("%d", c.Population)
}

// FormatArea renders an area in km² with thousands separators and no decimals.
func FormatArea(area float64) string {
	return printer.Sprintf("%.0f", area)
}

// HasCoordinates reports whether latlng carries at least two finite numbers.
func (c Country) HasCoordinates() bool {
	if len(c.LatLng) < 2 {
		return false
	}
	return finite(c.LatLng[0]) && finite(c.LatLng[1])
}

// CapitalPoint returns the capital's coordinates when exactly two are given.
func (c Country) CapitalPoint() (lat, lng float64, ok bool) {
	if len(c.CapitalLatLng) != 2 || !finite(c.CapitalLatLng[0]) || !finite(c.CapitalLatLng[1]) {
		return 0, 0, false
	}
	return c.CapitalLatLng[0], c.CapitalLatLng[1], true
}

// LatitudeLabel formats a latitude as "48.86° N".
func LatitudeLabel(lat float64) string {
	hemi := "N"
	if lat < 0 {
		hemi = "S"
	}
	return fmt.Sprintf("%.2f° %s", math.Abs(lat), hemi)
}

// LongitudeLabel formats a longitude as "2.35° E".
func LongitudeLabel(lng float64) string {
	hemi := "E"
	if lng < 0 {
		hemi = "W"
	}
	return fmt.Sprintf("%.2f° %s", math.Abs(lng), hemi)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
