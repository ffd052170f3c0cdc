package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/AbdulWasayUl/go-country-explorer/internal/api"
	"github.com/AbdulWasayUl/go-country-explorer/internal/config"
	"github.com/AbdulWasayUl/go-country-explorer/models"
)

// Source fetches the two weather feeds the aggregator combines.
type Source interface {
	Current(ctx context.Context, q Query) (Sample, error)
	Forecast(ctx context.Context, q Query) ([]Sample, error)
}

// Service is the OpenWeatherMap implementation of Source.
type Service struct {
	Config         *config.Config
	CurrentClient  *api.Client
	ForecastClient *api.Client
}

var _ Source = (*Service)(nil)

func NewService(cfg *config.Config) *Service {
	// free tier allows 60 calls/minute, split across both endpoints
	rlSettings := models.RateLimitSettings{
		MaxRequests: 30,
		PerDuration: time.Minute,
		Burst:       5,
	}
	newClient := func(source string) *api.Client {
		return api.NewClient(rlSettings,
			api.WithSource(source),
			api.WithTimeout(cfg.HTTPTimeout),
			api.WithUserAgent(cfg.UserAgent),
			api.WithRedacted(cfg.OpenWeatherAPIKey),
		)
	}

	return &Service{
		Config:         cfg,
		CurrentClient:  newClient("Weather API"),
		ForecastClient: newClient("Forecast API"),
	}
}

func (s *Service) endpoint(path string, q Query) string {
	params := url.Values{}
	params.Set("q", q.String())
	params.Set("units", "metric")
	params.Set("appid", s.Config.OpenWeatherAPIKey)
	return fmt.Sprintf("%s/%s?%s", s.Config.OpenWeatherAPIBaseURL, path, params.Encode())
}

func (s *Service) Current(ctx context.Context, q Query) (Sample, error) {
	data, err := s.CurrentClient.Do(ctx, s.endpoint("weather", q), nil)
	if err != nil {
		return Sample{}, err
	}
	return ParseCurrent(data)
}

func (s *Service) Forecast(ctx context.Context, q Query) ([]Sample, error) {
	data, err := s.ForecastClient.Do(ctx, s.endpoint("forecast", q), nil)
	if err != nil {
		return nil, err
	}
	return ParseForecast(data)
}

func ParseCurrent(data []byte) (Sample, error) {
	var resp CurrentAPIResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return Sample{}, fmt.Errorf("failed to parse weather data: %w", err)
	}

	s := Sample{
		Timestamp:       resp.Dt,
		TemperatureC:    resp.Main.Temp,
		MinTemperatureC: resp.Main.TempMin,
		MaxTemperatureC: resp.Main.TempMax,
		HumidityPercent: resp.Main.Humidity,
		PressureHPa:     resp.Main.Pressure,
		WindSpeedMS:     resp.Wind.Speed,
	}
	applyCondition(&s, resp.Weather)
	return s, nil
}

func ParseForecast(data []byte) ([]Sample, error) {
	var resp ForecastAPIResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse forecast data: %w", err)
	}

	samples := make([]Sample, 0, len(resp.List))
	for _, item := range resp.List {
		s := Sample{
			Timestamp:       item.Dt,
			TemperatureC:    item.Main.Temp,
			MinTemperatureC: item.Main.TempMin,
			MaxTemperatureC: item.Main.TempMax,
			HumidityPercent: item.Main.Humidity,
			PressureHPa:     item.Main.Pressure,
			WindSpeedMS:     item.Wind.Speed,
		}
		applyCondition(&s, item.Weather)
		samples = append(samples, s)
	}
	return samples, nil
}

func applyCondition(s *Sample, conditions []condition) {
	if len(conditions) == 0 {
		return
	}
	s.ConditionCode = conditions[0].Icon
	s.ConditionMain = conditions[0].Main
	s.ConditionText = conditions[0].Description
}
