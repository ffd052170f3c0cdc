package mapview

import (
	"context"
	"fmt"
	"time"

	"github.com/AbdulWasayUl/go-country-explorer/internal/api"
	"github.com/AbdulWasayUl/go-country-explorer/internal/config"
	"github.com/AbdulWasayUl/go-country-explorer/models"
	"github.com/AbdulWasayUl/go-country-explorer/services/geo"
)

// Prober stands in for the interactive map: a nil error means the map can render.
type Prober interface {
	Probe(ctx context.Context, r geo.Region, zoom int) error
}

// TileProbe fetches the tile under the region centre from a slippy-map tile server.
type TileProbe struct {
	BaseURL string
	Client  *api.Client
}

func NewTileProbe(cfg *config.Config) *TileProbe {
	// tile servers ask clients to stay well under 2 req/s
	rlSettings := models.RateLimitSettings{
		MaxRequests: 2,
		PerDuration: time.Second,
		Burst:       2,
	}
	return &TileProbe{
		BaseURL: cfg.MapTileBaseURL,
		Client: api.NewClient(rlSettings,
			api.WithSource("Map tiles"),
			api.WithTimeout(cfg.HTTPTimeout),
			api.WithUserAgent(cfg.UserAgent),
		),
	}
}

func (p *TileProbe) TileURL(r geo.Region, zoom int) string {
	x, y := TileXY(r.CenterLat, r.CenterLng, zoom)
	return fmt.Sprintf("%s/%d/%d/%d.png", p.BaseURL, zoom, x, y)
}

func (p *TileProbe) Probe(ctx context.Context, r geo.Region, zoom int) error {
	_, err := p.Client.Do(ctx, p.TileURL(r, zoom), nil)
	return err
}
