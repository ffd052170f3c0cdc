package weather

import (
	"sort"
	"time"
)

const (
	maxForecastDays = 5
	solarNoon       = 12
)

// BucketByDay keeps one sample per weekday label, the one whose local hour is
// closest to noon, and returns at most five of them in time order. On equal
// distance the first-seen sample stays. loc defaults to time.Local.
func BucketByDay(samples []Sample, loc *time.Location) []ForecastDay {
	if len(samples) == 0 {
		return []ForecastDay{}
	}
	if loc == nil {
		loc = time.Local
	}

	byLabel := make(map[string]int, maxForecastDays+1)
	days := make([]ForecastDay, 0, maxForecastDays+1)

	for _, s := range samples {
		local := s.Time().In(loc)
		candidate := ForecastDay{
			Sample:    s,
			Label:     local.Format("Mon"),
			LocalHour: local.Hour(),
		}

		idx, seen := byLabel[candidate.Label]
		if !seen {
			byLabel[candidate.Label] = len(days)
			days = append(days, candidate)
			continue
		}
		if noonDistance(candidate.LocalHour) < noonDistance(days[idx].LocalHour) {
			days[idx] = candidate
		}
	}

	sort.SliceStable(days, func(i, j int) bool {
		return days[i].Timestamp < days[j].Timestamp
	})
	if len(days) > maxForecastDays {
		days = days[:maxForecastDays]
	}
	return days
}

func noonDistance(hour int) int {
	d := hour - solarNoon
	if d < 0 {
		return -d
	}
	return d
}
