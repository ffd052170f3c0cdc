package weather

import (
	"fmt"
	"math"
	"strings"
)

type Unit string

const (
	Celsius    Unit = "C"
	Fahrenheit Unit = "F"
)

// ParseUnit accepts "C" or "F" in any case; anything else is Celsius.
func ParseUnit(s string) Unit {
	if strings.EqualFold(strings.TrimSpace(s), string(Fahrenheit)) {
		return Fahrenheit
	}
	return Celsius
}

func (u Unit) Toggle() Unit {
	if u == Fahrenheit {
		return Celsius
	}
	return Fahrenheit
}

func CelsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}

// FormatTemp renders a Celsius reading in unit, rounded to the nearest degree.
func FormatTemp(celsius float64, unit Unit) string {
	if unit == Fahrenheit {
		return fmt.Sprintf("%d°F", roundHalfUp(CelsiusToFahrenheit(celsius)))
	}
	return fmt.Sprintf("%d°C", roundHalfUp(celsius))
}

// WindKPH converts m/s to whole km/h.
func WindKPH(metersPerSecond float64) int {
	return roundHalfUp(metersPerSecond * 3.6)
}

// IconURL is the OpenWeatherMap icon for a condition code.
func IconURL(code string) string {
	if code == "" {
		return ""
	}
	return fmt.Sprintf("https://openweathermap.org/img/wn/%s@2x.png", code)
}

// roundHalfUp rounds .5 towards +Inf, so -2.5 becomes -2.
func roundHalfUp(f float64) int {
	return int(math.Floor(f + 0.5))
}
