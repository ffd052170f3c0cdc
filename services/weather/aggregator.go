package weather

import (
	"context"
	"sync"
	"time"

	"github.com/AbdulWasayUl/go-country-explorer/internal/apperrors"
	"github.com/AbdulWasayUl/go-country-explorer/internal/logger"
	"github.com/AbdulWasayUl/go-country-explorer/internal/state"
	"golang.org/x/sync/errgroup"
)

const noLocalityMessage = "no locality data available"

type Option func(*Aggregator)

// WithLocation sets the zone used to label forecast days.
func WithLocation(loc *time.Location) Option {
	return func(a *Aggregator) {
		if loc != nil {
			a.loc = loc
		}
	}
}

func WithUnit(u Unit) Option {
	return func(a *Aggregator) { a.unit = u }
}

// Aggregator fetches current conditions and a forecast for one locality at a
// time and exposes them as a single state record.
type Aggregator struct {
	source Source
	loc    *time.Location
	holder *state.Holder[Report]
	now    func() time.Time

	mu   sync.Mutex
	unit Unit
}

func NewAggregator(source Source, opts ...Option) *Aggregator {
	a := &Aggregator{
		source: source,
		loc:    time.Local,
		holder: state.NewHolder[Report](),
		now:    time.Now,
		unit:   Celsius,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Load issues both requests concurrently and settles the state once both are
// in, or as soon as one fails. Only the most recent Load may settle the state;
// an older one that finishes late returns state.ErrStale.
func (a *Aggregator) Load(ctx context.Context, locality, countryCode string) error {
	q := newQuery(locality, countryCode)
	if q.Locality == "" {
		err := apperrors.MissingInput("locality", noLocalityMessage)
		a.holder.Fail(q.String(), err)
		return err
	}

	tok := a.holder.Begin(q.String())
	logger.Info("[weather] Loading %s", q)

	var (
		current Sample
		series  []Sample
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := a.source.Current(gctx, q)
		if err != nil {
			return err
		}
		current = s
		return nil
	})
	g.Go(func() error {
		s, err := a.source.Forecast(gctx, q)
		if err != nil {
			return err
		}
		series = s
		return nil
	})

	if err := g.Wait(); err != nil {
		if !a.holder.Reject(tok, err) {
			logger.Debug("[weather] Discarding stale failure for %s: %v", q, err)
			return state.ErrStale
		}
		logger.Error("[weather] %s: %v", q, err)
		return err
	}

	report := Report{
		Query:     q,
		Current:   current,
		Forecast:  BucketByDay(series, a.loc),
		FetchedAt: a.now(),
	}
	if !a.holder.Resolve(tok, report) {
		logger.Debug("[weather] Discarding stale response for %s", q)
		return state.ErrStale
	}
	return nil
}

func (a *Aggregator) State() state.State[Report] {
	return a.holder.Snapshot()
}

// OnChange subscribes to state transitions.
func (a *Aggregator) OnChange(fn func(state.State[Report])) {
	a.holder.OnChange(fn)
}

// Close drops any in-flight result.
func (a *Aggregator) Close() {
	a.holder.Invalidate()
}

func (a *Aggregator) Unit() Unit {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.unit
}

// ToggleUnit flips between Celsius and Fahrenheit. Nothing is re-fetched.
func (a *Aggregator) ToggleUnit() Unit {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.unit = a.unit.Toggle()
	return a.unit
}

// FormatTemp renders a Celsius reading in the active unit.
func (a *Aggregator) FormatTemp(celsius float64) string {
	return FormatTemp(celsius, a.Unit())
}
