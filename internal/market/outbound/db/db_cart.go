package db

import (
	"context"

	"github.com/dailyvegies/api/internal/market/entity"
)

func (s *DB) UpsertCartItem(ctx context.Context, in entity.CartUpsert) (err error) {
	ctx, span := s.startSpan(ctx, "UpsertCartItem")
	defer func() { s.endSpan(span, err) }()

	query := `
		INSERT INTO cart_items (id, consumer_id, product_id, quantity, created_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (consumer_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity`

	_, err = s.conn.Exec(ctx, query, in.ID, in.ConsumerID, in.ProductID, in.Quantity)

	err = s.mapError(err)
	return err
}

func (s *DB) GetCartByConsumer(ctx context.Context, consumerID int64) (_ []entity.CartLine, err error) {
	ctx, span := s.startSpan(ctx, "GetCartByConsumer")
	defer func() { s.endSpan(span, err) }()

	query := `
		SELECT c.id, c.quantity, c.created_at,
			p.id, p.farmer_id, p.name, p.category, p.description, p.price, p.quantity, p.city, p.image_key, p.expiry_date, p.created_at
		FROM cart_items c
		JOIN products p ON p.id = c.product_id
		WHERE c.consumer_id = $1
		ORDER BY c.created_at ASC`

	rows, err := s.conn.Query(ctx, query, consumerID)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	lines := make([]entity.CartLine, 0)
	for rows.Next() {
		var l entity.CartLine
		err = rows.Scan(
			&l.ID, &l.Quantity, &l.CreatedAt,
			&l.Product.ID, &l.Product.FarmerID, &l.Product.Name, &l.Product.Category, &l.Product.Description,
			&l.Product.Price, &l.Product.Quantity, &l.Product.City, &l.Product.ImageKey, &l.Product.ExpiryDate, &l.Product.CreatedAt,
		)
		if err != nil {
			return nil, s.mapError(err)
		}
		lines = append(lines, l)
	}

	return lines, s.mapError(rows.Err())
}

func (s *DB) ClearCart(ctx context.Context, consumerID int64) (err error) {
	ctx, span := s.startSpan(ctx, "ClearCart")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `DELETE FROM cart_items WHERE consumer_id = $1`, consumerID)

	err = s.mapError(err)
	return err
}
