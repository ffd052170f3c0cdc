package country

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/AbdulWasayUl/go-country-explorer/internal/api"
	"github.com/AbdulWasayUl/go-country-explorer/internal/apperrors"
	"github.com/AbdulWasayUl/go-country-explorer/internal/config"
	"github.com/AbdulWasayUl/go-country-explorer/internal/logger"
	"github.com/AbdulWasayUl/go-country-explorer/models"
)

const (
	sourceName     = "Country API"
	listFields     = "name,flags,cca2,cca3,independent,status"
	assignedStatus = "officially-assigned"
)

type Service struct {
	Config *config.Config
	Client *api.Client
}

func NewService(cfg *config.Config) *Service {
	rlSettings := models.RateLimitSettings{
		MaxRequests: 20,
		PerDuration: time.Second,
		Burst:       5,
	}
	client := api.NewClient(rlSettings,
		api.WithSource(sourceName),
		api.WithTimeout(cfg.HTTPTimeout),
		api.WithUserAgent(cfg.UserAgent),
	)

	return &Service{
		Config: cfg,
		Client: client,
	}
}

func (s *Service) FetchData(ctx context.Context, code string) ([]byte, error) {
	countryCode := url.PathEscape(strings.TrimSpace(code))
	u := fmt.Sprintf("%s/alpha/%s", s.Config.RestCountriesAPIBaseURL, countryCode)
	return s.Client.Do(ctx, u, nil)
}

func (s *Service) ParseData(data []byte) (Country, error) {
	var resp RestCountriesAPIResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return Country{}, fmt.Errorf("failed to parse country data: %w", err)
	}

	if len(resp) == 0 {
		return Country{}, &apperrors.ApplicationError{Source: sourceName, Reason: "empty response"}
	}

	r := resp[0]
	return Country{
		CCA2:          r.CCA2,
		CCA3:          r.CCA3,
		Name:          r.Name,
		FlagPNG:       r.Flags.PNG,
		Population:    r.Population,
		Capital:       r.Capital,
		Region:        r.Region,
		Subregion:     r.Subregion,
		Currencies:    r.Currencies,
		Languages:     r.Languages,
		IDD:           r.IDD,
		Area:          r.Area,
		Timezones:     r.Timezones,
		CarSide:       r.Car.Side,
		GoogleMapsURL: r.Maps.GoogleMaps,
		LatLng:        r.LatLng,
		CapitalLatLng: r.CapitalInfo.LatLng,
		Independent:   r.Independent,
		UNMember:      r.UnMember,
		Status:        r.Status,
	}, nil
}

// Get fetches one country profile by its 2- or 3-letter code.
func (s *Service) Get(ctx context.Context, code string) (Country, error) {
	if strings.TrimSpace(code) == "" {
		return Country{}, apperrors.MissingInput("country code", "no country code provided")
	}

	data, err := s.FetchData(ctx, code)
	if err != nil {
		logger.Error("[%s] Failed to fetch %s: %v", sourceName, code, err)
		return Country{}, err
	}
	return s.ParseData(data)
}

// List returns independent, officially assigned countries sorted by common name.
func (s *Service) List(ctx context.Context) ([]Summary, error) {
	u := fmt.Sprintf("%s/all?fields=%s", s.Config.RestCountriesAPIBaseURL, listFields)

	var all []Summary
	if err := s.Client.GetJSON(ctx, u, nil, &all); err != nil {
		logger.Error("[%s] Failed to list countries: %v", sourceName, err)
		return nil, err
	}

	official := make([]Summary, 0, len(all))
	for _, c := range all {
		if c.Independent && c.Status == assignedStatus {
			official = append(official, c)
		}
	}
	sort.SliceStable(official, func(i, j int) bool {
		return strings.ToLower(official[i].Name.Common) < strings.ToLower(official[j].Name.Common)
	})

	logger.Info("[%s] Listed %d of %d countries", sourceName, len(official), len(all))
	return official, nil
}

// Filter keeps entries whose common name contains query, ignoring case.
// A blank query returns list unchanged.
func Filter(list []Summary, query string) []Summary {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return list
	}
	var out []Summary
	for _, c := range list {
		if strings.Contains(strings.ToLower(c.Name.Common), q) {
			out = append(out, c)
		}
	}
	return out
}
