package scheduler_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/AbdulWasayUl/go-country-explorer/internal/channels"
	"github.com/AbdulWasayUl/go-country-explorer/internal/scheduler"
	"github.com/AbdulWasayUl/go-country-explorer/internal/workpool"
	"github.com/AbdulWasayUl/go-country-explorer/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSource records every country it was asked to open.
type mockSource struct {
	mu     sync.Mutex
	opened []string
	runs   int32
}

func (m *mockSource) Requests(codes []string) []models.ViewRequest {
	atomic.AddInt32(&m.runs, 1)
	reqs := make([]models.ViewRequest, 0, len(codes))
	for _, code := range codes {
		reqs = append(reqs, models.ViewRequest{
			CountryCode: code,
			Source:      "mock",
			OpenFunc: func(ctx context.Context, code string) (interface{}, error) {
				m.mu.Lock()
				m.opened = append(m.opened, code)
				m.mu.Unlock()
				return code, nil
			},
			RenderFunc: func(ctx context.Context, view interface{}) error { return nil },
		})
	}
	return reqs
}

func (m *mockSource) Opened() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.opened...)
}

func startPool(t *testing.T) *channels.Channels {
	t.Helper()
	ch := channels.New()
	wp := workpool.New(ch, 2)
	wp.Start(context.Background())
	t.Cleanup(wp.Stop)
	return ch
}

func TestScheduler_NewRequiresCodes(t *testing.T) {
	_, err := scheduler.New(nil)
	assert.Error(t, err)

	sched, err := scheduler.New([]string{"FR"})
	require.NoError(t, err)
	assert.Equal(t, []string{"FR"}, sched.Codes)
}

func TestScheduler_RunImmediateJob_Table(t *testing.T) {
	tests := []struct {
		name  string
		codes []string
	}{
		{"SingleCountry", []string{"FR"}},
		{"SeveralCountries", []string{"FR", "JP", "BR"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sched, err := scheduler.New(tt.codes)
			require.NoError(t, err)

			mock := &mockSource{}
			ch := startPool(t)

			sched.RunImmediateJob(context.Background(), ch, mock)

			assert.ElementsMatch(t, tt.codes, mock.Opened())
		})
	}
}

func TestScheduler_RunImmediateJob_Cancelled(t *testing.T) {
	sched, err := scheduler.New([]string{"FR", "JP"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mock := &mockSource{}
	sched.RunImmediateJob(ctx, startPool(t), mock)

	assert.Empty(t, mock.Opened())
}

func TestScheduler_StartJob(t *testing.T) {
	sched, err := scheduler.New([]string{"FR"})
	require.NoError(t, err)
	defer sched.Stop()

	mock := &mockSource{}
	require.NoError(t, sched.StartJob(context.Background(), 50*time.Millisecond, startPool(t), mock))

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&mock.runs) >= 2
	}, 2*time.Second, 10*time.Millisecond)
}

func TestScheduler_StartJobRejectsZeroInterval(t *testing.T) {
	sched, err := scheduler.New([]string{"FR"})
	require.NoError(t, err)

	assert.Error(t, sched.StartJob(context.Background(), 0, channels.New(), &mockSource{}))
}
