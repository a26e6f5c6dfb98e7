package usecase

import (
	"context"

	"github.com/dailyvegies/api/internal/advisory/entity"
	"github.com/dailyvegies/api/internal/pkg/instrument"
	"github.com/dailyvegies/api/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type weatherClient interface {
	Forecast(ctx context.Context, lat, lon float64) (*entity.Forecast, error)
}

type satelliteClient interface {
	// NDVI returns a rendered vegetation-index image around the coordinate,
	// as PNG bytes.
	NDVI(ctx context.Context, lat, lon float64) ([]byte, error)
}

type geocodeClient interface {
	Search(ctx context.Context, query string) (*entity.Place, error)
}

type guideClient interface {
	Ask(ctx context.Context, system, prompt string) (string, error)
}

type Usecase struct {
	weather   weatherClient
	satellite satelliteClient
	geocode   geocodeClient
	guide     guideClient
	validator validator.Validator
	ins       instrument.Instrumentation
}

type Dependency struct {
	Weather    weatherClient
	Satellite  satelliteClient
	Geocode    geocodeClient
	Guide      guideClient
	Validator  validator.Validator
	Instrument instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		weather:   dep.Weather,
		satellite: dep.Satellite,
		geocode:   dep.Geocode,
		guide:     dep.Guide,
		validator: dep.Validator,
		ins:       dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("advisory.usecase").Start(ctx, name)
}
