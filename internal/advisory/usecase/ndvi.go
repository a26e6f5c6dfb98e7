package usecase

import (
	"context"
	"log/slog"

	"github.com/dailyvegies/api/internal/pkg/goerror"
)

type NDVIInput struct {
	Lat float64 `validate:"latitude"`
	Lon float64 `validate:"longitude"`
}

type NDVIOutput struct {
	// Image is a rendered PNG of the vegetation index around the coordinate.
	Image []byte
}

// NDVI returns a satellite vegetation-index image centered on the coordinate.
func (s *Usecase) NDVI(ctx context.Context, in NDVIInput) (*NDVIOutput, error) {
	ctx, span := s.startSpan(ctx, "NDVI")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	img, err := s.satellite.NDVI(ctx, in.Lat, in.Lon)
	if err != nil {
		slog.ErrorContext(ctx, "failed to fetch ndvi image", "lat", in.Lat, "lon", in.Lon, "error", err)
		return nil, goerror.NewUpstream(err, "Satellite imagery service is unavailable")
	}

	return &NDVIOutput{Image: img}, nil
}
