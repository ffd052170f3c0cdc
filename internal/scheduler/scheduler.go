package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/AbdulWasayUl/go-country-explorer/internal/channels"
	"github.com/AbdulWasayUl/go-country-explorer/internal/logger"
	"github.com/AbdulWasayUl/go-country-explorer/models"
	"github.com/go-co-op/gocron"
)

// ViewSource turns country codes into work for the pool.
type ViewSource interface {
	Requests(codes []string) []models.ViewRequest
}

type Scheduler struct {
	Cron  *gocron.Scheduler
	Codes []string
}

func New(codes []string) (*Scheduler, error) {
	if len(codes) == 0 {
		return nil, fmt.Errorf("scheduler: no country codes configured")
	}
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{
		Cron:  s,
		Codes: codes,
	}, nil
}

// StartJob re-opens every configured view each interval. Each run fetches
// everything again; nothing carries over between runs.
func (s *Scheduler) StartJob(ctx context.Context, every time.Duration, chans *channels.Channels, source ViewSource) error {
	if every <= 0 {
		return fmt.Errorf("scheduler: refresh interval must be positive, got %s", every)
	}

	_, err := s.Cron.Every(every).WaitForSchedule().Do(func() {
		s.runAllJobs(ctx, chans, source)
	})
	if err != nil {
		logger.Error("Failed to schedule refresh job: %v", err)
		return err
	}

	s.Cron.StartAsync()
	return nil
}

func (s *Scheduler) runAllJobs(ctx context.Context, chans *channels.Channels, source ViewSource) {
	logger.Info("--- Refresh Started (%d countries) ---", len(s.Codes))
	defer logger.Info("--- Refresh Finished ---")

	for _, req := range source.Requests(s.Codes) {
		if ctx.Err() != nil {
			logger.Warn("Refresh cancelled: %v", ctx.Err())
			break
		}
		chans.Submit(req)
	}

	logger.Info("Waiting for all submitted views to render...")
	chans.WG.Wait()
	logger.Info("All views rendered.")
}

func (s *Scheduler) RunImmediateJob(ctx context.Context, chans *channels.Channels, source ViewSource) {
	logger.Info("--- Immediate Run Started ---")
	defer logger.Info("--- Immediate Run Finished ---")

	s.runAllJobs(ctx, chans, source)
}

func (s *Scheduler) Stop() {
	s.Cron.Stop()
}
