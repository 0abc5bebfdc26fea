package service

import (
	"context"
	"fmt"
	"net/url"

	"github.com/katiamach/ornl/internal/api"
	"github.com/katiamach/ornl/internal/model"
)

// defaultDataFormat is sent to the data endpoint when no format is given.
const defaultDataFormat = "json"

// Requester performs a single GET request.
type Requester interface {
	Get(ctx context.Context, baseURL, endpoint string, params url.Values) (*api.Body, error)
}

// BaseURLSource resolves the service base URL. It is consulted on every request.
type BaseURLSource interface {
	BaseURL() (string, error)
}

// WeatherService provides Daymet weather data.
type WeatherService struct {
	client Requester
	config BaseURLSource
}

// New creates new WeatherService.
func New(client Requester, config BaseURLSource) *WeatherService {
	return &WeatherService{
		client: client,
		config: config,
	}
}

// GetWeatherData retrieves daily weather data for loc. Format defaults to json.
func (ws *WeatherService) GetWeatherData(ctx context.Context, loc model.Location, opts model.QueryOptions) (model.Response, error) {
	return ws.request(ctx, api.DataEndpoint, opts.Values(loc, defaultDataFormat))
}

// PreviewData retrieves the preview variant of the same query. No format is implied.
func (ws *WeatherService) PreviewData(ctx context.Context, loc model.Location, opts model.QueryOptions) (model.Response, error) {
	return ws.request(ctx, api.PreviewEndpoint, opts.Values(loc, ""))
}

func (ws *WeatherService) request(ctx context.Context, endpoint string, params url.Values) (model.Response, error) {
	baseURL, err := ws.config.BaseURL()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base url: %w", err)
	}

	body, err := ws.client.Get(ctx, baseURL, endpoint, params)
	if err != nil {
		return nil, err
	}

	return decodeResponse(body)
}
