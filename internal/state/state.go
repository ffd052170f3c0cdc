// Package state models per-component fetch lifecycles as explicit records
// {Idle, Loading, Ready, Error} and suppresses stale responses by tagging every
// in-flight request with a token.
package state

import (
	"errors"
	"sync"
)

// ErrStale is returned by loaders whose result arrived after a newer request
// (or an unmount) superseded it.
var ErrStale = errors.New("response superseded by a newer request")

type Status int

const (
	Idle Status = iota
	Loading
	Ready
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "error"
	default:
		return "unknown"
	}
}

// State is an immutable snapshot. Data is only meaningful when Status is
// Ready and Err only when Status is Failed.
type State[T any] struct {
	Status Status
	Key    string
	Data   T
	Err    error
}

func (s State[T]) IsReady() bool   { return s.Status == Ready }
func (s State[T]) IsLoading() bool { return s.Status == Loading }
func (s State[T]) IsFailed() bool  { return s.Status == Failed }

// Token identifies one request. It stays current until the next Begin or
// Invalidate on the same Holder.
type Token struct {
	gen uint64
	key string
}

func (t Token) Key() string { return t.key }

// Holder owns one component's state. Transitions are only accepted for the
// current token, so a late response issued for an older key is dropped.
type Holder[T any] struct {
	mu        sync.Mutex
	gen       uint64
	state     State[T]
	listeners []func(State[T])
}

func NewHolder[T any]() *Holder[T] {
	return &Holder[T]{}
}

// OnChange registers fn to be called, outside the lock, after every accepted transition.
func (h *Holder[T]) OnChange(fn func(State[T])) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.listeners = append(h.listeners, fn)
}

// Begin moves to Loading for key and returns the token that later results must present.
func (h *Holder[T]) Begin(key string) Token {
	h.mu.Lock()
	h.gen++
	tok := Token{gen: h.gen, key: key}
	h.state = State[T]{Status: Loading, Key: key}
	snap, listeners := h.state, h.listeners
	h.mu.Unlock()

	notify(listeners, snap)
	return tok
}

// Resolve moves to Ready. It returns false when tok is stale.
func (h *Holder[T]) Resolve(tok Token, data T) bool {
	return h.settle(tok, State[T]{Status: Ready, Key: tok.key, Data: data})
}

// Reject moves to Failed. It returns false when tok is stale.
func (h *Holder[T]) Reject(tok Token, err error) bool {
	return h.settle(tok, State[T]{Status: Failed, Key: tok.key, Err: err})
}

// Fail records an error for key without a request ever being issued.
func (h *Holder[T]) Fail(key string, err error) {
	tok := h.next(key)
	h.Reject(tok, err)
}

// Current reports whether tok is still the latest request.
func (h *Holder[T]) Current(tok Token) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return tok.gen == h.gen
}

// Invalidate makes every outstanding token stale without touching the
// visible state. Used on unmount.
func (h *Holder[T]) Invalidate() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.gen++
}

func (h *Holder[T]) Snapshot() State[T] {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

func (h *Holder[T]) next(key string) Token {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.gen++
	return Token{gen: h.gen, key: key}
}

func (h *Holder[T]) settle(tok Token, next State[T]) bool {
	h.mu.Lock()
	if tok.gen != h.gen {
		h.mu.Unlock()
		return false
	}
	// a settled token cannot transition again
	h.gen++
	h.state = next
	listeners := h.listeners
	h.mu.Unlock()

	notify(listeners, next)
	return true
}

func notify[T any](listeners []func(State[T]), s State[T]) {
	for _, fn := range listeners {
		fn(s)
	}
}
