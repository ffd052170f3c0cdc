package workpool

import (
	"context"
	"time"

	"github.com/AbdulWasayUl/go-country-explorer/internal/channels"
	"github.com/AbdulWasayUl/go-country-explorer/internal/logger"
	"github.com/AbdulWasayUl/go-country-explorer/models"
)

// DefaultJobTimeout bounds one open-and-render cycle.
const DefaultJobTimeout = 30 * time.Second

type WorkerPool struct {
	WorkerCount int
	Channels    *channels.Channels
	JobTimeout  time.Duration
}

func New(channels *channels.Channels, workerCount int) *WorkerPool {
	return &WorkerPool{
		WorkerCount: workerCount,
		Channels:    channels,
		JobTimeout:  DefaultJobTimeout,
	}
}

func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.WorkerCount; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	logger.Info("Worker %d started.", id)
	for req := range wp.Channels.ViewRequest {
		wp.process(ctx, id, req)
	}
	logger.Info("Worker %d stopped.", id)
}

func (wp *WorkerPool) process(ctx context.Context, id int, req models.ViewRequest) {
	defer wp.Channels.WG.Done()

	opCtx, cancel := context.WithTimeout(ctx, wp.JobTimeout)
	defer cancel()

	logger.Info("[%s] Worker %d opening %s", req.Source, id, req.CountryCode)

	// 1. Open the view; components settle or degrade on their own
	view, err := req.OpenFunc(opCtx, req.CountryCode)
	if err != nil {
		logger.Error("[%s] Worker %d failed to open %s: %v", req.Source, id, req.CountryCode, err)
		return
	}

	// 2. Render it
	if err := req.RenderFunc(opCtx, view); err != nil {
		logger.Error("[%s] Worker %d failed to render %s: %v", req.Source, id, req.CountryCode, err)
		return
	}

	logger.Info("[%s] Worker %d finished %s", req.Source, id, req.CountryCode)
}

// Stop closes the request channel; workers drain it and exit.
func (wp *WorkerPool) Stop() {
	close(wp.Channels.ViewRequest)
}
