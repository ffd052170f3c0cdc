package details

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/AbdulWasayUl/go-country-explorer/internal/config"
	"github.com/AbdulWasayUl/go-country-explorer/internal/logger"
	"github.com/AbdulWasayUl/go-country-explorer/models"
	"github.com/AbdulWasayUl/go-country-explorer/services/country"
	"github.com/AbdulWasayUl/go-country-explorer/services/currency"
	"github.com/AbdulWasayUl/go-country-explorer/services/mapview"
	"github.com/AbdulWasayUl/go-country-explorer/services/weather"
)

const sourceName = "details"

// Explorer opens a fresh screen per request. Nothing is cached between screens.
type Explorer struct {
	Deps          Deps
	Out           io.Writer
	SettleTimeout time.Duration

	outMu sync.Mutex
}

// NewExplorer wires the live HTTP services from cfg.
func NewExplorer(cfg *config.Config, out io.Writer) *Explorer {
	return &Explorer{
		Deps: Deps{
			Countries: country.NewService(cfg),
			Weather:   weather.NewService(cfg),
			Rates:     currency.NewService(cfg),
			MapOptions: []mapview.Option{
				mapview.WithTimeout(cfg.MapReadyTimeout),
				mapview.WithStaticMapBase(cfg.StaticMapBaseURL),
				mapview.WithProber(mapview.NewTileProbe(cfg)),
			},
			WeatherOptions: []weather.Option{
				weather.WithLocation(cfg.ForecastLocation()),
				weather.WithUnit(weather.ParseUnit(cfg.TemperatureUnit)),
			},
		},
		Out:           out,
		SettleTimeout: settleBudget(cfg),
	}
}

// Open mounts a screen for code, waits for every component to settle, then
// unmounts it and returns the final view.
func (e *Explorer) Open(ctx context.Context, code string) (View, error) {
	screen := NewScreen(code, e.Deps)
	screen.Mount(ctx)
	defer screen.Unmount()

	waitCtx := ctx
	if e.SettleTimeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, e.SettleTimeout)
		defer cancel()
	}
	if err := screen.Wait(waitCtx); err != nil {
		logger.Warn("[%s] %s did not settle: %v", sourceName, screen.Code, err)
	}
	return screen.View(), nil
}

// Request builds the work item the worker pool runs for one country.
func (e *Explorer) Request(code string) models.ViewRequest {
	return models.ViewRequest{
		CountryCode: code,
		Source:      sourceName,
		OpenFunc: func(ctx context.Context, code string) (interface{}, error) {
			return e.Open(ctx, code)
		},
		RenderFunc: e.render,
	}
}

func (e *Explorer) render(_ context.Context, view interface{}) error {
	v, ok := view.(View)
	if !ok {
		return fmt.Errorf("unexpected view type %T", view)
	}
	e.outMu.Lock()
	defer e.outMu.Unlock()
	return Render(e.Out, v)
}

// Requests builds one ViewRequest per code.
func (e *Explorer) Requests(codes []string) []models.ViewRequest {
	reqs := make([]models.ViewRequest, 0, len(codes))
	for _, code := range codes {
		reqs = append(reqs, e.Request(code))
	}
	return reqs
}

// settleBudget bounds how long one screen may take to settle.
func settleBudget(cfg *config.Config) time.Duration {
	return cfg.MapReadyTimeout + 2*cfg.HTTPTimeout
}
