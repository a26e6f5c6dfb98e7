package db

import (
	"context"
	"time"

	"github.com/dailyvegies/api/internal/market/entity"
	"github.com/dailyvegies/api/internal/pkg/goerror"
)

const productColumns = `id, farmer_id, name, category, description, price, quantity, city, image_key, expiry_date, created_at`

func (s *DB) scanProduct(row interface{ Scan(dest ...any) error }) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.FarmerID, &p.Name, &p.Category, &p.Description,
		&p.Price, &p.Quantity, &p.City, &p.ImageKey, &p.ExpiryDate, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (s *DB) CreateProduct(ctx context.Context, in entity.Product) (err error) {
	ctx, span := s.startSpan(ctx, "CreateProduct")
	defer func() { s.endSpan(span, err) }()

	query := `
		INSERT INTO products (id, farmer_id, name, category, description, price, quantity, city, image_key, expiry_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err = s.conn.Exec(ctx, query,
		in.ID, in.FarmerID, in.Name, in.Category, in.Description,
		in.Price, in.Quantity, in.City, in.ImageKey, in.ExpiryDate, in.CreatedAt,
	)

	err = s.mapError(err)
	return err
}

func (s *DB) GetProductByID(ctx context.Context, id int64) (_ *entity.Product, err error) {
	ctx, span := s.startSpan(ctx, "GetProductByID")
	defer func() { s.endSpan(span, err) }()

	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	product, err := s.scanProduct(s.conn.QueryRow(ctx, query, id))
	if err != nil {
		return nil, s.mapError(err)
	}

	return product, nil
}

func (s *DB) GetProducts(ctx context.Context, filter entity.ProductFilter) (_ []entity.Product, err error) {
	ctx, span := s.startSpan(ctx, "GetProducts")
	defer func() { s.endSpan(span, err) }()

	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	args := make([]any, 0, 5)

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		query += ` AND name ILIKE $` + itoa(len(args))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		query += ` AND category = $` + itoa(len(args))
	}
	if filter.City != "" {
		args = append(args, filter.City)
		query += ` AND city = $` + itoa(len(args))
	}
	if filter.LiveOnly {
		args = append(args, filter.Now)
		query += ` AND quantity > 0 AND expiry_date >= $` + itoa(len(args))
	}

	query += ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += ` LIMIT $` + itoa(len(args))
	}

	rows, err := s.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	products := make([]entity.Product, 0)
	for rows.Next() {
		product, err := s.scanProduct(rows)
		if err != nil {
			return nil, s.mapError(err)
		}
		products = append(products, *product)
	}

	return products, s.mapError(rows.Err())
}

// GetSimilarProducts mirrors the recommendation rule: same category and city,
// in stock, not expired, excluding the product itself, newest first.
func (s *DB) GetSimilarProducts(ctx context.Context, p entity.Product, now time.Time, limit int32) (_ []entity.Product, err error) {
	ctx, span := s.startSpan(ctx, "GetSimilarProducts")
	defer func() { s.endSpan(span, err) }()

	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE id <> $1 AND category = $2 AND city = $3 AND quantity > 0 AND expiry_date >= $4
		ORDER BY created_at DESC
		LIMIT $5`

	rows, err := s.conn.Query(ctx, query, p.ID, p.Category, p.City, now, limit)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	products := make([]entity.Product, 0)
	for rows.Next() {
		product, err := s.scanProduct(rows)
		if err != nil {
			return nil, s.mapError(err)
		}
		products = append(products, *product)
	}

	return products, s.mapError(rows.Err())
}

func (s *DB) UpdateProductImage(ctx context.Context, id, farmerID int64, imageKey string) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateProductImage")
	defer func() { s.endSpan(span, err) }()

	query := `UPDATE products SET image_key = $3 WHERE id = $1 AND farmer_id = $2`

	tag, err := s.conn.Exec(ctx, query, id, farmerID, imageKey)
	if err != nil {
		err = s.mapError(err)
		return err
	}

	if tag.RowsAffected() == 0 {
		err = goerror.ErrNotFound
		return err
	}

	return nil
}

func (s *DB) DeleteExpiredProducts(ctx context.Context, farmerID int64, now time.Time) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "DeleteExpiredProducts")
	defer func() { s.endSpan(span, err) }()

	query := `DELETE FROM products WHERE farmer_id = $1 AND expiry_date < $2`

	tag, err := s.conn.Exec(ctx, query, farmerID, now)
	if err != nil {
		err = s.mapError(err)
		return 0, err
	}

	return tag.RowsAffected(), nil
}
