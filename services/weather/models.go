package weather

import (
	"strings"
	"time"
)

// Query keys both weather requests.
type Query struct {
	Locality    string
	CountryCode string
}

func (q Query) String() string {
	if q.CountryCode == "" {
		return q.Locality
	}
	return q.Locality + "," + q.CountryCode
}

func newQuery(locality, countryCode string) Query {
	return Query{
		Locality:    strings.TrimSpace(locality),
		CountryCode: strings.TrimSpace(countryCode),
	}
}

// Sample is one reading in metric units.
type Sample struct {
	Timestamp       int64
	TemperatureC    float64
	MinTemperatureC float64
	MaxTemperatureC float64
	HumidityPercent float64
	PressureHPa     float64
	WindSpeedMS     float64
	ConditionCode   string
	ConditionMain   string
	ConditionText   string
}

func (s Sample) Time() time.Time { return time.Unix(s.Timestamp, 0) }

// ForecastDay is the sample chosen to represent one calendar day.
type ForecastDay struct {
	Sample
	Label     string
	LocalHour int
}

// Report is what the aggregator exposes once both fetches succeed.
type Report struct {
	Query     Query
	Current   Sample
	Forecast  []ForecastDay
	FetchedAt time.Time
}

type condition struct {
	Icon        string `json:"icon"`
	Main        string `json:"main"`
	Description string `json:"description"`
}

// CurrentAPIResponse mirrors GET /weather.
type CurrentAPIResponse struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp     float64 `json:"temp"`
		TempMin  float64 `json:"temp_min"`
		TempMax  float64 `json:"temp_max"`
		Humidity float64 `json:"humidity"`
		Pressure float64 `json:"pressure"`
	} `json:"main"`
	Weather []condition `json:"weather"`
	Wind    struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Name string `json:"name"`
}

// ForecastAPIResponse mirrors GET /forecast (3-hour cadence).
type ForecastAPIResponse struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp     float64 `json:"temp"`
			TempMin  float64 `json:"temp_min"`
			TempMax  float64 `json:"temp_max"`
			Humidity float64 `json:"humidity"`
			Pressure float64 `json:"pressure"`
		} `json:"main"`
		Weather []condition `json:"weather"`
		Wind    struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
	} `json:"list"`
}
