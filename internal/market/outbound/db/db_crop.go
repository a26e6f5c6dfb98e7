package db

import (
	"context"

	"github.com/dailyvegies/api/internal/market/entity"
)

func (s *DB) CreateCrop(ctx context.Context, in entity.Crop) (err error) {
	ctx, span := s.startSpan(ctx, "CreateCrop")
	defer func() { s.endSpan(span, err) }()

	query := `
		INSERT INTO crops (id, farmer_id, name, sowing_date, expected_harvest, lat, lon, address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = s.conn.Exec(ctx, query,
		in.ID, in.FarmerID, in.Name, in.SowingDate, in.ExpectedHarvest,
		in.Lat, in.Lon, in.Address, in.CreatedAt,
	)

	err = s.mapError(err)
	return err
}

func (s *DB) GetCropsByFarmer(ctx context.Context, farmerID int64) (_ []entity.Crop, err error) {
	ctx, span := s.startSpan(ctx, "GetCropsByFarmer")
	defer func() { s.endSpan(span, err) }()

	query := `
		SELECT id, farmer_id, name, sowing_date, expected_harvest, lat, lon, address, created_at
		FROM crops
		WHERE farmer_id = $1
		ORDER BY sowing_date DESC`

	rows, err := s.conn.Query(ctx, query, farmerID)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	crops := make([]entity.Crop, 0)
	for rows.Next() {
		var c entity.Crop
		err = rows.Scan(&c.ID, &c.FarmerID, &c.Name, &c.SowingDate, &c.ExpectedHarvest, &c.Lat, &c.Lon, &c.Address, &c.CreatedAt)
		if err != nil {
			return nil, s.mapError(err)
		}
		crops = append(crops, c)
	}

	return crops, s.mapError(rows.Err())
}
