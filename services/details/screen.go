// Package details assembles the per-country detail view. Each component is
// fetched, fails and renders on its own; nothing is shared between them.
package details

import (
	"context"
	"strings"
	"sync"

	"github.com/AbdulWasayUl/go-country-explorer/internal/apperrors"
	"github.com/AbdulWasayUl/go-country-explorer/internal/logger"
	"github.com/AbdulWasayUl/go-country-explorer/internal/state"
	"github.com/AbdulWasayUl/go-country-explorer/services/country"
	"github.com/AbdulWasayUl/go-country-explorer/services/currency"
	"github.com/AbdulWasayUl/go-country-explorer/services/mapview"
	"github.com/AbdulWasayUl/go-country-explorer/services/weather"
	"github.com/google/uuid"
)

// CountrySource loads one country profile by code.
type CountrySource interface {
	Get(ctx context.Context, code string) (country.Country, error)
}

// Deps are the collaborators every screen is built from.
type Deps struct {
	Countries      CountrySource
	Weather        weather.Source
	Rates          currency.Source
	MapOptions     []mapview.Option
	WeatherOptions []weather.Option
}

type Screen struct {
	ID   uuid.UUID
	Code string

	deps     Deps
	profile  *state.Holder[country.Country]
	weather  *weather.Aggregator
	currency *currency.Converter

	mu      sync.Mutex
	mapView *mapview.Supervisor
	mounted bool
	closed  bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func NewScreen(code string, deps Deps) *Screen {
	return &Screen{
		ID:       uuid.New(),
		Code:     strings.ToUpper(strings.TrimSpace(code)),
		deps:     deps,
		profile:  state.NewHolder[country.Country](),
		weather:  weather.NewAggregator(deps.Weather, deps.WeatherOptions...),
		currency: currency.NewConverter(deps.Rates),
	}
}

// Mount starts loading in the background. The profile comes first; once it is
// in, the map, weather and currency components start independently.
func (s *Screen) Mount(ctx context.Context) {
	s.mu.Lock()
	if s.mounted || s.closed {
		s.mu.Unlock()
		return
	}
	s.mounted = true
	ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	s.mu.Unlock()

	logger.Info("[details] %s mounting %s", s.ID, s.Code)
	go func() {
		defer s.wg.Done()
		s.loadProfile(ctx)
	}()
}

func (s *Screen) loadProfile(ctx context.Context) {
	if s.Code == "" {
		s.profile.Fail(s.Code, apperrors.MissingInput("country", "no country selected"))
		return
	}

	tok := s.profile.Begin(s.Code)
	c, err := s.deps.Countries.Get(ctx, s.Code)
	if err != nil {
		if s.profile.Reject(tok, err) {
			logger.Error("[details] %s profile: %v", s.Code, err)
		}
		return
	}
	if !s.profile.Resolve(tok, c) {
		return
	}

	s.startMap(ctx, c)
	s.spawn(func() {
		if err := s.weather.Load(ctx, c.PrimaryCapital(), c.LocalityCode()); err != nil {
			logger.Debug("[details] %s weather: %v", s.Code, err)
		}
	})
	s.spawn(func() {
		if _, err := s.currency.Initialize(ctx, c); err != nil {
			logger.Debug("[details] %s currency: %v", s.Code, err)
		}
	})
}

func (s *Screen) startMap(ctx context.Context, c country.Country) {
	settled := make(chan struct{})
	var once sync.Once
	opts := append([]mapview.Option{}, s.deps.MapOptions...)
	opts = append(opts, mapview.OnChange(func(st mapview.Status) {
		if st.Terminal() {
			once.Do(func() { close(settled) })
		}
	}))

	mv := mapview.New(c, opts...)
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.mapView = mv
	s.mu.Unlock()

	mv.Start(ctx)
	s.spawn(func() {
		select {
		case <-settled:
		case <-ctx.Done():
		}
	})
}

func (s *Screen) spawn(fn func()) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		fn()
	}()
}

// Wait blocks until every component has settled or ctx is done.
func (s *Screen) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Unmount cancels the map timer and drops every in-flight result. The last
// rendered state stays readable.
func (s *Screen) Unmount() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	mv, cancel := s.mapView, s.cancel
	s.mu.Unlock()

	s.profile.Invalidate()
	s.weather.Close()
	s.currency.Close()
	if mv != nil {
		mv.Close()
	}
	if cancel != nil {
		cancel()
	}
	logger.Info("[details] %s unmounted %s", s.ID, s.Code)
}

func (s *Screen) Weather() *weather.Aggregator { return s.weather }

func (s *Screen) Currency() *currency.Converter { return s.currency }

// Map is nil until the profile has loaded.
func (s *Screen) Map() *mapview.Supervisor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mapView
}

func (s *Screen) Profile() state.State[country.Country] {
	return s.profile.Snapshot()
}
