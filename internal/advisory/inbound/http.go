package inbound

import (
	"context"

	"github.com/dailyvegies/api/internal/advisory/usecase"
	"github.com/dailyvegies/api/internal/pkg/router"
)

type uc interface {
	Weather(ctx context.Context, in usecase.WeatherInput) (*usecase.WeatherOutput, error)
	NDVI(ctx context.Context, in usecase.NDVIInput) (*usecase.NDVIOutput, error)
	Guide(ctx context.Context, in usecase.GuideInput) (*usecase.GuideOutput, error)
	Geocode(ctx context.Context, in usecase.GeocodeInput) (*usecase.GeocodeOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/api/v1/advisory/weather", end.Weather)
	r.GETRaw("/api/v1/advisory/ndvi", end.NDVIImage())
	r.POST("/api/v1/advisory/guide", end.Guide)
	r.GET("/api/v1/advisory/geocode", end.Geocode)
}
