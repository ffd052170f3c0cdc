package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	OpenWeatherAPIKey  string
	ExchangeRateAPIKey string

	RestCountriesAPIBaseURL string `validate:"required,url"`
	OpenWeatherAPIBaseURL   string `validate:"required,url"`
	ExchangeRateAPIBaseURL  string `validate:"required,url"`
	StaticMapBaseURL        string `validate:"required,url"`
	MapTileBaseURL          string `validate:"required,url"`

	MapReadyTimeout time.Duration `validate:"gt=0"`
	HTTPTimeout     time.Duration `validate:"gt=0"`
	UserAgent       string        `validate:"required"`

	CountryCodes     []string      `validate:"dive,alpha,min=2,max=3"`
	RefreshInterval  time.Duration `validate:"gte=0"`
	WorkerCount      int           `validate:"gte=1,lte=32"`
	TemperatureUnit  string        `validate:"oneof=C F"`
	ForecastTimezone string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("OPENWEATHER_API_KEY", "")
	v.SetDefault("EXCHANGE_RATE_API_KEY", "")
	v.SetDefault("RESTCOUNTRIES_API_BASE_URL", "https://restcountries.com/v3.1")
	v.SetDefault("OPENWEATHER_API_BASE_URL", "https://api.openweathermap.org/data/2.5")
	v.SetDefault("EXCHANGE_RATE_API_BASE_URL", "https://v6.exchangerate-api.com/v6")
	v.SetDefault("STATIC_MAP_BASE_URL", "https://staticmap.openstreetmap.de/staticmap.php")
	v.SetDefault("MAP_TILE_BASE_URL", "https://tile.openstreetmap.org")
	v.SetDefault("MAP_READY_TIMEOUT", "5s")
	v.SetDefault("HTTP_TIMEOUT", "10s")
	v.SetDefault("HTTP_USER_AGENT", "go-country-explorer/1.0")
	v.SetDefault("COUNTRY_CODES", "FRA,JPN,BRA")
	v.SetDefault("REFRESH_INTERVAL", "0s")
	v.SetDefault("WORKER_COUNT", 3)
	v.SetDefault("TEMPERATURE_UNIT", "C")
	v.SetDefault("FORECAST_TIMEZONE", "")
}

// Load reads an optional .env file, then the environment, and validates the result.
func Load() (*Config, error) {
	// Ignore err if .env file is not found in deployment
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		OpenWeatherAPIKey:       v.GetString("OPENWEATHER_API_KEY"),
		ExchangeRateAPIKey:      v.GetString("EXCHANGE_RATE_API_KEY"),
		RestCountriesAPIBaseURL: strings.TrimRight(v.GetString("RESTCOUNTRIES_API_BASE_URL"), "/"),
		OpenWeatherAPIBaseURL:   strings.TrimRight(v.GetString("OPENWEATHER_API_BASE_URL"), "/"),
		ExchangeRateAPIBaseURL:  strings.TrimRight(v.GetString("EXCHANGE_RATE_API_BASE_URL"), "/"),
		StaticMapBaseURL:        v.GetString("STATIC_MAP_BASE_URL"),
		MapTileBaseURL:          strings.TrimRight(v.GetString("MAP_TILE_BASE_URL"), "/"),
		MapReadyTimeout:         v.GetDuration("MAP_READY_TIMEOUT"),
		HTTPTimeout:             v.GetDuration("HTTP_TIMEOUT"),
		UserAgent:               v.GetString("HTTP_USER_AGENT"),
		CountryCodes:            splitCodes(v.GetString("COUNTRY_CODES")),
		RefreshInterval:         v.GetDuration("REFRESH_INTERVAL"),
		WorkerCount:             v.GetInt("WORKER_COUNT"),
		TemperatureUnit:         strings.ToUpper(strings.TrimSpace(v.GetString("TEMPERATURE_UNIT"))),
		ForecastTimezone:        strings.TrimSpace(v.GetString("FORECAST_TIMEZONE")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.ForecastTimezone != "" {
		if _, err := time.LoadLocation(c.ForecastTimezone); err != nil {
			return fmt.Errorf("invalid configuration: FORECAST_TIMEZONE: %w", err)
		}
	}
	return nil
}

// ForecastLocation is the zone used to label forecast days.
func (c *Config) ForecastLocation() *time.Location {
	if c.ForecastTimezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.ForecastTimezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func splitCodes(raw string) []string {
	var codes []string
	for _, part := range strings.Split(raw, ",") {
		code := strings.ToUpper(strings.TrimSpace(part))
		if code != "" {
			codes = append(codes, code)
		}
	}
	return codes
}
