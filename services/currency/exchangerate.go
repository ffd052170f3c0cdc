package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/AbdulWasayUl/go-country-explorer/internal/api"
	"github.com/AbdulWasayUl/go-country-explorer/internal/apperrors"
	"github.com/AbdulWasayUl/go-country-explorer/internal/config"
	"github.com/AbdulWasayUl/go-country-explorer/models"
)

const (
	sourceName       = "Exchange Rate API"
	successResult    = "success"
	defaultErrReason = "exchange rate API error"
)

// Source returns one complete rate table relative to BaseCurrency.
type Source interface {
	Latest(ctx context.Context) (Table, error)
}

type Service struct {
	Config *config.Config
	Client *api.Client
}

var _ Source = (*Service)(nil)

func NewService(cfg *config.Config) *Service {
	rlSettings := models.RateLimitSettings{
		MaxRequests: 10,
		PerDuration: time.Minute,
		Burst:       2,
	}
	client := api.NewClient(rlSettings,
		api.WithSource(sourceName),
		api.WithTimeout(cfg.HTTPTimeout),
		api.WithUserAgent(cfg.UserAgent),
		api.WithRedacted(cfg.ExchangeRateAPIKey),
	)

	return &Service{
		Config: cfg,
		Client: client,
	}
}

func (s *Service) FetchData(ctx context.Context) ([]byte, error) {
	u := fmt.Sprintf("%s/%s/latest/%s",
		s.Config.ExchangeRateAPIBaseURL, url.PathEscape(s.Config.ExchangeRateAPIKey), BaseCurrency)
	return s.Client.Do(ctx, u, nil)
}

// ParseData rejects payloads whose result is not "success", even on HTTP 200.
func (s *Service) ParseData(data []byte) (Table, error) {
	var resp ExchangeRateAPIResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return Table{}, fmt.Errorf("failed to parse exchange rate data: %w", err)
	}

	if resp.Result != successResult {
		reason := resp.ErrorType
		if reason == "" {
			reason = defaultErrReason
		}
		return Table{}, &apperrors.ApplicationError{Source: sourceName, Reason: reason}
	}
	if len(resp.ConversionRates) == 0 {
		return Table{}, &apperrors.ApplicationError{Source: sourceName, Reason: "empty rate table"}
	}

	base := resp.BaseCode
	if base == "" {
		base = BaseCurrency
	}
	return Table{
		Base:      base,
		Rates:     resp.ConversionRates,
		UpdatedAt: resp.TimeLastUpdate,
	}, nil
}

func (s *Service) Latest(ctx context.Context) (Table, error) {
	data, err := s.FetchData(ctx)
	if err != nil {
		return Table{}, err
	}
	return s.ParseData(data)
}
