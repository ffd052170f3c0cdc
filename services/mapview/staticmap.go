package mapview

import (
	"fmt"
	"math"
	"net/url"
	"strconv"

	"github.com/AbdulWasayUl/go-country-explorer/services/geo"
)

const (
	DefaultStaticMapBase = "https://staticmap.openstreetmap.de/staticmap.php"
	staticMapSize        = "600x400"
	unknownAreaZoom      = 5
	deepLinkZoom         = 5
)

type zoomBand struct {
	above float64
	zoom  int
}

// coarser than the region staircase; sorted by descending threshold
var zoomBands = []zoomBand{
	{1_000_000, 3},
	{500_000, 4},
	{100_000, 5},
	{20_000, 6},
}

const smallestZoom = 7

// StaticZoom picks the static-map zoom level for an area in km².
func StaticZoom(area float64) int {
	if area <= 0 {
		return unknownAreaZoom
	}
	for _, b := range zoomBands {
		if area > b.above {
			return b.zoom
		}
	}
	return smallestZoom
}

// StaticMapURL builds the fallback image URL centred and marked on the region centre.
func StaticMapURL(base string, r geo.Region, zoom int) string {
	if base == "" {
		base = DefaultStaticMapBase
	}
	lat, lng := coord(r.CenterLat), coord(r.CenterLng)
	return fmt.Sprintf("%s?center=%s,%s&zoom=%d&size=%s&maptype=mapnik&markers=%s,%s,red",
		base, lat, lng, zoom, staticMapSize, lat, lng)
}

// OpenStreetMapURL is the deep link for the generic map service.
func OpenStreetMapURL(lat, lng float64) string {
	la, lo := coord(lat), coord(lng)
	return fmt.Sprintf("https://www.openstreetmap.org/?mlat=%s&mlon=%s#map=%d/%s/%s", la, lo, deepLinkZoom, la, lo)
}

// GoogleMapsURL is the deep link for the second map service.
func GoogleMapsURL(lat, lng float64) string {
	q := url.Values{}
	q.Set("api", "1")
	q.Set("query", coord(lat)+","+coord(lng))
	return "https://www.google.com/maps/search/?" + q.Encode()
}

// TileXY converts a point into slippy-map tile indices at zoom.
func TileXY(lat, lng float64, zoom int) (x, y int) {
	const maxLat = 85.05112878
	lat = math.Max(-maxLat, math.Min(maxLat, lat))
	n := math.Exp2(float64(zoom))
	latRad := lat * math.Pi / 180

	x = int(math.Floor((lng + 180) / 360 * n))
	y = int(math.Floor((1 - math.Log(math.Tan(latRad)+1/math.Cos(latRad))/math.Pi) / 2 * n))

	limit := int(n) - 1
	x = clamp(x, 0, limit)
	y = clamp(y, 0, limit)
	return x, y
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func coord(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
