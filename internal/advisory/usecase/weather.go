package usecase

import (
	"context"
	"log/slog"

	"github.com/dailyvegies/api/internal/advisory/entity"
	"github.com/dailyvegies/api/internal/pkg/goerror"
)

type WeatherInput struct {
	Lat float64 `validate:"latitude"`
	Lon float64 `validate:"longitude"`
}

type WeatherOutput struct {
	Forecast entity.Forecast
}

// Weather proxies the upstream forecast provider for the given coordinate.
func (s *Usecase) Weather(ctx context.Context, in WeatherInput) (*WeatherOutput, error) {
	ctx, span := s.startSpan(ctx, "Weather")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	forecast, err := s.weather.Forecast(ctx, in.Lat, in.Lon)
	if err != nil {
		slog.ErrorContext(ctx, "failed to fetch weather forecast", "lat", in.Lat, "lon", in.Lon, "error", err)
		return nil, goerror.NewUpstream(err, "Weather service is unavailable")
	}

	return &WeatherOutput{Forecast: *forecast}, nil
}
