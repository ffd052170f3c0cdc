package models

import (
	"context"
	"time"
)

// ViewRequest asks a worker to open the detail view for one country and hand
// the assembled view to RenderFunc.
type ViewRequest struct {
	CountryCode string
	Source      string
	OpenFunc    func(ctx context.Context, code string) (interface{}, error)
	RenderFunc  func(ctx context.Context, view interface{}) error
}

type RateLimitSettings struct {
	MaxRequests int
	PerDuration time.Duration
	Burst       int
}
