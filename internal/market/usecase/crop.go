package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/dailyvegies/api/internal/market/entity"
	"github.com/dailyvegies/api/internal/pkg/goerror"
	"github.com/dailyvegies/api/internal/pkg/jwt"
)

type CropAddInput struct {
	Name            string    `validate:"required,min=2,max=100"`
	SowingDate      time.Time `validate:"required"`
	ExpectedHarvest time.Time `validate:"required"`
	Lat             float64   `validate:"required,latitude"`
	Lon             float64   `validate:"required,longitude"`
	Address         string    `validate:"required,min=2,max=200"`
}

type CropAddOutput struct {
	Crop entity.Crop
}

func (s *Usecase) CropAdd(ctx context.Context, in CropAddInput) (*CropAddOutput, error) {
	ctx, span := s.startSpan(ctx, "CropAdd")
	defer span.End()

	claims := jwt.GetAuth(ctx)
	if claims == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	in.Name = strings.TrimSpace(in.Name)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if !in.ExpectedHarvest.After(in.SowingDate) {
		return nil, goerror.NewInvalidInput(nil, "expected_harvest", "Expected harvest must be after the sowing date")
	}

	crop := entity.Crop{
		ID:              s.uid.Generate(),
		FarmerID:        claims.UserID,
		Name:            in.Name,
		SowingDate:      in.SowingDate,
		ExpectedHarvest: in.ExpectedHarvest,
		Lat:             in.Lat,
		Lon:             in.Lon,
		Address:         in.Address,
		CreatedAt:       s.clock.Now(),
	}

	if err := s.repoDB.CreateCrop(ctx, crop); err != nil {
		slog.ErrorContext(ctx, "failed to repo create crop", "farmer_id", claims.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &CropAddOutput{Crop: crop}, nil
}

type CropListOutput struct {
	Crops []entity.Crop
}

func (s *Usecase) CropList(ctx context.Context) (*CropListOutput, error) {
	ctx, span := s.startSpan(ctx, "CropList")
	defer span.End()

	claims := jwt.GetAuth(ctx)
	if claims == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	crops, err := s.repoDB.GetCropsByFarmer(ctx, claims.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get crops by farmer", "farmer_id", claims.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &CropListOutput{Crops: crops}, nil
}
