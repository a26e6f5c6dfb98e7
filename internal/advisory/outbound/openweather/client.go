// Package openweather calls the OpenWeatherMap forecast API.
package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dailyvegies/api/internal/advisory/entity"
	"github.com/dailyvegies/api/internal/pkg/instrument"
)

type Client struct {
	httpc   *http.Client
	baseURL string
	apiKey  string
	ins     instrument.Instrumentation
}

func NewClient(httpc *http.Client, baseURL, apiKey string, ins instrument.Instrumentation) *Client {
	return &Client{httpc: httpc, baseURL: baseURL, apiKey: apiKey, ins: ins}
}

type forecastResponse struct {
	City struct {
		Name string `json:"name"`
	} `json:"city"`
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity int32   `json:"humidity"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
	} `json:"list"`
}

// Forecast fetches the 5-day forecast for a coordinate, metric units.
func (c *Client) Forecast(ctx context.Context, lat, lon float64) (f *entity.Forecast, err error) {
	ctx, span := c.startSpan(ctx, "Forecast")
	defer func() { c.endSpan(span, err) }()

	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("units", "metric")
	q.Set("appid", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/data/2.5/forecast?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	res, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openweather: unexpected status %d", res.StatusCode)
	}

	var body forecastResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("openweather: decode response: %w", err)
	}

	out := &entity.Forecast{
		City:   body.City.Name,
		Points: make([]entity.ForecastPoint, 0, len(body.List)),
	}
	for _, it := range body.List {
		point := entity.ForecastPoint{
			At:        time.Unix(it.Dt, 0).UTC(),
			Temp:      it.Main.Temp,
			Humidity:  it.Main.Humidity,
			WindSpeed: it.Wind.Speed,
		}
		if len(it.Weather) > 0 {
			point.Condition = it.Weather[0].Description
		}
		out.Points = append(out.Points, point)
	}

	return out, nil
}

func (c *Client) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return c.ins.Tracer("advisory.outbound.openweather").Start(ctx, name)
}

func (c *Client) endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	span.End()
}
