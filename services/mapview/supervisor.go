// Package mapview arbitrates between an interactive map and a static image
// fallback without blocking the caller indefinitely.
package mapview

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/AbdulWasayUl/go-country-explorer/internal/apperrors"
	"github.com/AbdulWasayUl/go-country-explorer/internal/logger"
	"github.com/AbdulWasayUl/go-country-explorer/services/country"
	"github.com/AbdulWasayUl/go-country-explorer/services/geo"
)

// DefaultReadyTimeout is how long the interactive map gets to signal readiness.
const DefaultReadyTimeout = 5000 * time.Millisecond

type Status int

const (
	Loading Status = iota
	Ready
	TimedOut
	Failed
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case TimedOut:
		return "timed out"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition can happen.
func (s Status) Terminal() bool { return s != Loading }

// URLOpener hands a URL to whatever can display it. Fire-and-forget.
type URLOpener func(rawURL string)

// Marker is a labelled point drawn on the map.
type Marker struct {
	Lat, Lng    float64
	Title       string
	Description string
}

// Fallback is what gets rendered once the interactive map is abandoned.
type Fallback struct {
	StaticMapURL string
	Zoom         int
	Reason       error
}

type Option func(*Supervisor)

func WithTimeout(d time.Duration) Option {
	return func(s *Supervisor) {
		if d > 0 {
			s.timeout = d
		}
	}
}

func WithStaticMapBase(base string) Option {
	return func(s *Supervisor) { s.staticBase = base }
}

func WithOpener(open URLOpener) Option {
	return func(s *Supervisor) {
		if open != nil {
			s.opener = open
		}
	}
}

// WithProber lets Start drive readiness from a probe instead of external signals.
func WithProber(p Prober) Option {
	return func(s *Supervisor) { s.prober = p }
}

// OnChange registers fn to run after every transition.
func OnChange(fn func(Status)) Option {
	return func(s *Supervisor) { s.listeners = append(s.listeners, fn) }
}

type Supervisor struct {
	country    country.Country
	region     geo.Region
	timeout    time.Duration
	staticBase string
	opener     URLOpener
	prober     Prober
	listeners  []func(Status)

	mu          sync.Mutex
	status      Status
	err         error
	started     bool
	closed      bool
	timer       *time.Timer
	cancelProbe context.CancelFunc
}

func New(c country.Country, opts ...Option) *Supervisor {
	s := &Supervisor{
		country:    c,
		region:     geo.ComputeRegion(c),
		timeout:    DefaultReadyTimeout,
		staticBase: DefaultStaticMapBase,
		opener:     logOpener,
		status:     Loading,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start arms the one-shot readiness timer and, when a prober is set, starts
// probing. Calling Start again, after a terminal state or after Close is a no-op.
func (s *Supervisor) Start(ctx context.Context) {
	s.mu.Lock()
	if s.started || s.closed || s.status.Terminal() {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.timer = time.AfterFunc(s.timeout, s.onTimeout)

	var probeCtx context.Context
	if s.prober != nil {
		probeCtx, s.cancelProbe = context.WithCancel(ctx)
	}
	s.mu.Unlock()

	if probeCtx != nil {
		go s.runProbe(probeCtx)
	}
}

// MarkReady records the interactive map's readiness signal.
func (s *Supervisor) MarkReady() bool {
	return s.transition(Ready, nil)
}

// MarkFailed records an error reported by the interactive map.
func (s *Supervisor) MarkFailed(err error) bool {
	if err == nil {
		err = fmt.Errorf("map failed to render")
	}
	return s.transition(Failed, err)
}

// Close is the unmount: it cancels the timer and any probe, and no transition
// happens afterwards.
func (s *Supervisor) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.releaseLocked()
}

func (s *Supervisor) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Err is the reason for a TimedOut or Failed state.
func (s *Supervisor) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Supervisor) Region() geo.Region { return s.region }

func (s *Supervisor) Country() country.Country { return s.country }

// Markers lists the country marker and, when known, the capital marker.
func (s *Supervisor) Markers() []Marker {
	markers := []Marker{{
		Lat:         s.region.CenterLat,
		Lng:         s.region.CenterLng,
		Title:       s.country.Name.Common,
		Description: "Country location",
	}}
	if lat, lng, ok := s.country.CapitalPoint(); ok {
		title := s.country.PrimaryCapital()
		if title == "" {
			title = "Capital"
		}
		markers = append(markers, Marker{
			Lat:         lat,
			Lng:         lng,
			Title:       title,
			Description: "Capital of " + s.country.Name.Common,
		})
	}
	return markers
}

// Fallback returns the static map once the interactive map timed out or failed.
// Both routes produce the same fallback.
func (s *Supervisor) Fallback() (Fallback, bool) {
	s.mu.Lock()
	status, reason := s.status, s.err
	s.mu.Unlock()

	if status != TimedOut && status != Failed {
		return Fallback{}, false
	}
	zoom := StaticZoom(s.country.Area)
	return Fallback{
		StaticMapURL: StaticMapURL(s.staticBase, s.region, zoom),
		Zoom:         zoom,
		Reason:       reason,
	}, true
}

func (s *Supervisor) OpenInOpenStreetMap() {
	s.opener(OpenStreetMapURL(s.region.CenterLat, s.region.CenterLng))
}

func (s *Supervisor) OpenInGoogleMaps() {
	s.opener(GoogleMapsURL(s.region.CenterLat, s.region.CenterLng))
}

func (s *Supervisor) onTimeout() {
	err := fmt.Errorf("map not ready after %s: %w", s.timeout, apperrors.ErrTimeout)
	if s.transition(TimedOut, err) {
		logger.Warn("[map] %s: %v, using static map", s.country.Name.Common, err)
	}
}

func (s *Supervisor) runProbe(ctx context.Context) {
	err := s.prober.Probe(ctx, s.region, StaticZoom(s.country.Area))
	if err != nil {
		if s.MarkFailed(err) {
			logger.Warn("[map] %s: %v, using static map", s.country.Name.Common, err)
		}
		return
	}
	s.MarkReady()
}

func (s *Supervisor) transition(to Status, err error) bool {
	s.mu.Lock()
	if s.closed || s.status.Terminal() {
		s.mu.Unlock()
		return false
	}
	s.status = to
	s.err = err
	s.releaseLocked()
	listeners := s.listeners
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(to)
	}
	return true
}

func (s *Supervisor) releaseLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.cancelProbe != nil {
		s.cancelProbe()
		s.cancelProbe = nil
	}
}

func logOpener(rawURL string) {
	logger.Info("[map] open %s", rawURL)
}
