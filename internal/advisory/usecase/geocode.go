package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/dailyvegies/api/internal/advisory/entity"
	"github.com/dailyvegies/api/internal/pkg/goerror"
)

type GeocodeInput struct {
	Query string `validate:"required,min=2,max=200"`
}

type GeocodeOutput struct {
	Place entity.Place
}

// Geocode resolves a free-form address into a coordinate.
func (s *Usecase) Geocode(ctx context.Context, in GeocodeInput) (*GeocodeOutput, error) {
	ctx, span := s.startSpan(ctx, "Geocode")
	defer span.End()

	in.Query = strings.TrimSpace(in.Query)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	place, err := s.geocode.Search(ctx, in.Query)
	if err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return nil, goerror.NewBusiness("No location found for that query", goerror.CodeNotFound)
		}

		slog.ErrorContext(ctx, "failed to geocode query", "query", in.Query, "error", err)
		return nil, goerror.NewUpstream(err, "Geocoding service is unavailable")
	}

	return &GeocodeOutput{Place: *place}, nil
}
